package terrain

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/effect"
)

// HeightFieldFromImage converts a decoded heightmap into normalized samples.
// 16-bit grayscale keeps its native range; everything else is reduced to
// 8-bit luminance and divided by 255.
func HeightFieldFromImage(img image.Image) (*HeightField, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < 2 || h < 2 {
		return nil, fmt.Errorf("heightmap %dx%d: need at least 2x2 samples", w, h)
	}

	field := &HeightField{
		Width:   w,
		Height:  h,
		Samples: make([]float32, w*h),
	}

	if g16, ok := img.(*image.Gray16); ok {
		for row := 0; row < h; row++ {
			for col := 0; col < w; col++ {
				v := g16.Gray16At(b.Min.X+col, b.Min.Y+row).Y
				field.Samples[row*w+col] = float32(v) / 65535
			}
		}
		return field, nil
	}

	// Grayscale stores luminance in every colour channel.
	gray := effect.Grayscale(img)
	for row := 0; row < h; row++ {
		off := row * gray.Stride
		for col := 0; col < w; col++ {
			field.Samples[row*w+col] = float32(gray.Pix[off+col*4]) / 255
		}
	}
	return field, nil
}
