package terrain

import "github.com/chewxy/math32"

// BuildMesh generates one vertex per heightmap sample with smooth normals
// and two counter-clockwise (seen from above) triangles per grid cell.
func (t *Terrain) BuildMesh() *Mesh {
	w, h := t.field.Width, t.field.Height

	mesh := &Mesh{
		Vertices: make([]Vertex, 0, w*h),
		Indices:  make([]uint32, 0, (w-1)*(h-1)*6),
		Bounds: Bounds{
			Min: [3]float32{1e10, 1e10, 1e10},
			Max: [3]float32{-1e10, -1e10, -1e10},
		},
	}

	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			pos := [3]float32{
				t.origin.X + float32(col)*t.cellX,
				t.field.At(col, row) * t.MaxHeight,
				t.origin.Y + float32(row)*t.cellZ,
			}
			updateBounds(&mesh.Bounds, pos)

			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position: pos,
				Normal:   t.normalAt(col, row),
				TexCoord: [2]float32{float32(col) / float32(w-1), float32(row) / float32(h-1)},
			})
		}
	}

	for row := 0; row < h-1; row++ {
		for col := 0; col < w-1; col++ {
			i0 := uint32(row*w + col)
			i1 := i0 + 1
			i2 := i0 + uint32(w)
			i3 := i2 + 1
			mesh.Indices = append(mesh.Indices,
				i0, i2, i1,
				i1, i2, i3,
			)
		}
	}

	return mesh
}

// normalAt uses central differences over neighbouring samples.
func (t *Terrain) normalAt(col, row int) [3]float32 {
	left := t.field.At(col-1, row) * t.MaxHeight
	right := t.field.At(col+1, row) * t.MaxHeight
	up := t.field.At(col, row-1) * t.MaxHeight
	down := t.field.At(col, row+1) * t.MaxHeight

	nx := (left - right) / (2 * t.cellX)
	nz := (up - down) / (2 * t.cellZ)
	l := math32.Sqrt(nx*nx + 1 + nz*nz)
	return [3]float32{nx / l, 1 / l, nz / l}
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}
