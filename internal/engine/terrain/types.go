// Package terrain samples a heightmapped ground and builds its mesh.
package terrain

// Vertex represents a terrain mesh vertex with all attributes.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32 // blend map UV in [0,1]
}

// Mesh holds the complete terrain mesh data ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of the terrain.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// HeightField is a row-major grid of elevation samples normalized to [0,1].
type HeightField struct {
	Width   int
	Height  int
	Samples []float32
}

// At returns the sample at (col, row), clamped to the grid edge.
func (h *HeightField) At(col, row int) float32 {
	col = clampi(col, 0, h.Width-1)
	row = clampi(row, 0, h.Height-1)
	return h.Samples[row*h.Width+col]
}

// Contains reports whether (col, row) is a pixel of the grid.
func (h *HeightField) Contains(col, row int) bool {
	return col >= 0 && col < h.Width && row >= 0 && row < h.Height
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
