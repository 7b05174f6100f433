package terrain

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/wildwest/pkg/math"
)

// Terrain is a square height field centred on the world origin.
// Heightmap column maps to world X and row maps to world Z.
type Terrain struct {
	Size      float32 // footprint edge length in world units
	MaxHeight float32 // world height of a full-scale sample

	field  *HeightField
	origin math.Vec2 // world (x, z) of pixel (0, 0)
	cellX  float32   // world units between adjacent columns
	cellZ  float32   // world units between adjacent rows
}

// New builds a sampler over field spanning size×size world units.
func New(field *HeightField, size, maxHeight float32) (*Terrain, error) {
	if field == nil || field.Width < 2 || field.Height < 2 {
		return nil, fmt.Errorf("terrain: height field must be at least 2x2")
	}
	if len(field.Samples) != field.Width*field.Height {
		return nil, fmt.Errorf("terrain: %d samples for a %dx%d field", len(field.Samples), field.Width, field.Height)
	}
	if size <= 0 {
		return nil, fmt.Errorf("terrain: size %g must be positive", size)
	}

	return &Terrain{
		Size:      size,
		MaxHeight: maxHeight,
		field:     field,
		origin:    math.Vec2{X: -size / 2, Y: -size / 2},
		cellX:     size / float32(field.Width-1),
		cellZ:     size / float32(field.Height-1),
	}, nil
}

// Field returns the underlying samples.
func (t *Terrain) Field() *HeightField {
	return t.field
}

// PixelFromPosition maps world (x, z) to fractional heightmap coordinates.
// The result is not clamped.
func (t *Terrain) PixelFromPosition(x, z float32) (px, py float32) {
	return (x - t.origin.X) / t.cellX, (z - t.origin.Y) / t.cellZ
}

// PositionFromPixel maps a heightmap pixel to a world position resting on
// the ground. Pixels outside the grid clamp to its edge.
func (t *Terrain) PositionFromPixel(px, py int) math.Vec3 {
	px = clampi(px, 0, t.field.Width-1)
	py = clampi(py, 0, t.field.Height-1)
	x := t.origin.X + float32(px)*t.cellX
	z := t.origin.Y + float32(py)*t.cellZ
	return math.Vec3{X: x, Y: t.HeightAt(x, z), Z: z}
}

// IsOnTerrain reports whether (x, z) lies inside the footprint.
func (t *Terrain) IsOnTerrain(x, z float32) bool {
	half := t.Size / 2
	return x >= -half && x <= half && z >= -half && z <= half
}

// HeightAt returns the bilinearly interpolated ground height at (x, z).
// Positions outside the footprint clamp to the nearest edge.
func (t *Terrain) HeightAt(x, z float32) float32 {
	w, h := t.field.Width, t.field.Height

	fx, fz := t.PixelFromPosition(x, z)
	fx = math.Clamp(fx, 0, float32(w-1))
	fz = math.Clamp(fz, 0, float32(h-1))

	col := int(fx)
	row := int(fz)
	if col > w-2 {
		col = w - 2
	}
	if row > h-2 {
		row = h - 2
	}
	tx := fx - float32(col)
	tz := fz - float32(row)

	h00 := t.field.At(col, row)
	h10 := t.field.At(col+1, row)
	h01 := t.field.At(col, row+1)
	h11 := t.field.At(col+1, row+1)

	near := math.Lerp(h00, h10, tx)
	far := math.Lerp(h01, h11, tx)
	return math.Lerp(near, far, tz) * t.MaxHeight
}

// AngleX returns the rotation about the vehicle's local X axis that lines
// its forward axis up with the ground slope under heading yaw.
// Nose-up on a rising slope is a negative angle.
func (t *Terrain) AngleX(x, z, yaw float32) float32 {
	s, c := math32.Sincos(yaw)
	return -t.slope(x, z, s, c)
}

// AngleZ returns the roll about the vehicle's local Z axis that lines its
// side axis up with the ground. A positive angle raises the local +X side.
func (t *Terrain) AngleZ(x, z, yaw float32) float32 {
	s, c := math32.Sincos(yaw)
	// Local +X after yaw is (cos, 0, -sin).
	return t.slope(x, z, c, -s)
}

// slope is the central-difference incline along the unit direction (dx, dz).
func (t *Terrain) slope(x, z, dx, dz float32) float32 {
	step := math32.Min(t.cellX, t.cellZ)
	ahead := t.HeightAt(x+dx*step, z+dz*step)
	behind := t.HeightAt(x-dx*step, z-dz*step)
	return math32.Atan2(ahead-behind, 2*step)
}
