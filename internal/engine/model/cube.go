package model

// Cube returns an 8-vertex, 36-index box of half-extent size centred on
// the origin. Only positions are meaningful; the skybox samples by
// direction.
func Cube(size float32) Geometry {
	s := size
	corners := [8][3]float32{
		{-s, -s, s}, {s, -s, s}, {s, s, s}, {-s, s, s},
		{-s, -s, -s}, {s, -s, -s}, {s, s, -s}, {-s, s, -s},
	}

	g := Geometry{Vertices: make([]Vertex, len(corners))}
	for i, c := range corners {
		g.Vertices[i] = Vertex{Position: c}
	}
	g.Indices = []uint32{
		0, 1, 2, 2, 3, 0, // front
		1, 5, 6, 6, 2, 1, // right
		7, 6, 5, 5, 4, 7, // back
		4, 0, 3, 3, 7, 4, // left
		4, 5, 1, 1, 0, 4, // bottom
		3, 2, 6, 6, 7, 3, // top
	}
	return g
}
