// Package texture provides image decoding and texture processing utilities.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	TGATypeTrueColor    = 2
	TGATypeGray         = 3
	TGATypeTrueColorRLE = 10
	TGATypeGrayRLE      = 11
)

const tgaHeaderSize = 18

var errTGATruncated = errors.New("TGA data truncated")

// DecodeTGA decodes a TGA image file.
// Supports uncompressed and RLE true-color (24/32 bit) and grayscale
// (8 bit) images. True-color images decode to *image.RGBA, grayscale to
// *image.Gray.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("TGA has zero size %dx%d", width, height)
	}

	gray := imageType == TGATypeGray || imageType == TGATypeGrayRLE
	switch {
	case imageType != TGATypeTrueColor && imageType != TGATypeTrueColorRLE && !gray:
		return nil, fmt.Errorf("unsupported TGA type %d", imageType)
	case gray && bpp != 8:
		return nil, fmt.Errorf("unsupported grayscale TGA bit depth %d", bpp)
	case !gray && bpp != 24 && bpp != 32:
		return nil, fmt.Errorf("unsupported TGA bit depth %d (only 24/32 supported)", bpp)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}

	d := tgaDecoder{
		width:       width,
		height:      height,
		bytesPP:     bpp / 8,
		topToBottom: descriptor&0x20 != 0,
	}
	var img image.Image
	if gray {
		g := image.NewGray(image.Rect(0, 0, width, height))
		d.put = func(x, y int, px []byte) { g.SetGray(x, y, color.Gray{Y: px[0]}) }
		img = g
	} else {
		rgba := image.NewRGBA(image.Rect(0, 0, width, height))
		d.put = func(x, y int, px []byte) {
			a := uint8(255)
			if len(px) == 4 {
				a = px[3]
			}
			rgba.SetRGBA(x, y, color.RGBA{R: px[2], G: px[1], B: px[0], A: a})
		}
		img = rgba
	}

	var err error
	if imageType == TGATypeTrueColorRLE || imageType == TGATypeGrayRLE {
		err = d.decodeRLE(data[offset:])
	} else {
		err = d.decodeRaw(data[offset:])
	}
	if err != nil {
		return nil, err
	}
	return img, nil
}

type tgaDecoder struct {
	width, height int
	bytesPP       int
	topToBottom   bool
	put           func(x, y int, px []byte)
}

// set writes the n-th pixel in file order.
func (d *tgaDecoder) set(n int, px []byte) {
	x := n % d.width
	y := n / d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	d.put(x, y, px)
}

func (d *tgaDecoder) decodeRaw(data []byte) error {
	total := d.width * d.height
	if len(data) < total*d.bytesPP {
		return errTGATruncated
	}
	for n := 0; n < total; n++ {
		i := n * d.bytesPP
		d.set(n, data[i:i+d.bytesPP])
	}
	return nil
}

// decodeRLE stops quietly at the end of data; missing pixels stay zero.
func (d *tgaDecoder) decodeRLE(data []byte) error {
	total := d.width * d.height
	n, i := 0, 0
	for n < total && i < len(data) {
		packet := data[i]
		i++
		count := int(packet&0x7f) + 1

		if packet&0x80 != 0 {
			if i+d.bytesPP > len(data) {
				break
			}
			px := data[i : i+d.bytesPP]
			i += d.bytesPP
			for k := 0; k < count && n < total; k++ {
				d.set(n, px)
				n++
			}
			continue
		}

		for k := 0; k < count && n < total; k++ {
			if i+d.bytesPP > len(data) {
				return nil
			}
			d.set(n, data[i:i+d.bytesPP])
			i += d.bytesPP
			n++
		}
	}
	return nil
}
