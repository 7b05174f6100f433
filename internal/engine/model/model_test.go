package model

import "testing"

func TestGeometryBounds(t *testing.T) {
	g := Geometry{Vertices: []Vertex{
		{Position: [3]float32{1, -2, 3}},
		{Position: [3]float32{-4, 5, 0}},
		{Position: [3]float32{2, 0, -6}},
	}}

	b := g.Bounds()
	if b.Min != [3]float32{-4, -2, -6} || b.Max != [3]float32{2, 5, 3} {
		t.Errorf("Bounds() = %+v", b)
	}
	if !b.Valid() {
		t.Error("bounds should be valid")
	}
	if b.Size() != [3]float32{6, 7, 9} {
		t.Errorf("Size() = %v, want (6, 7, 9)", b.Size())
	}
}

func TestEmptyBoundsInvalid(t *testing.T) {
	if EmptyBounds().Valid() {
		t.Error("empty bounds should be invalid")
	}
	var g Geometry
	if g.Bounds().Valid() {
		t.Error("bounds of empty geometry should be invalid")
	}
}

func TestUnion(t *testing.T) {
	a := Bounds{Min: [3]float32{0, 0, 0}, Max: [3]float32{1, 1, 1}}
	a.Union(Bounds{Min: [3]float32{-1, 0.5, 0}, Max: [3]float32{0.5, 3, 0.5}})
	if a.Min != [3]float32{-1, 0, 0} || a.Max != [3]float32{1, 3, 1} {
		t.Errorf("Union = %+v", a)
	}
}

func TestCube(t *testing.T) {
	g := Cube(200)
	if len(g.Vertices) != 8 || len(g.Indices) != 36 {
		t.Fatalf("cube has %d vertices, %d indices", len(g.Vertices), len(g.Indices))
	}
	b := g.Bounds()
	if b.Min != [3]float32{-200, -200, -200} || b.Max != [3]float32{200, 200, 200} {
		t.Errorf("cube bounds = %+v", b)
	}
	for _, idx := range g.Indices {
		if idx >= 8 {
			t.Fatalf("index %d out of range", idx)
		}
	}
}
