package model

// EmptyBounds returns inverted bounds that any Extend call will replace.
func EmptyBounds() Bounds {
	return Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
}

// Extend grows b to include p.
func (b *Bounds) Extend(p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// Union grows b to include other.
func (b *Bounds) Union(other Bounds) {
	b.Extend(other.Min)
	b.Extend(other.Max)
}

// Valid reports whether b has been extended at least once.
func (b Bounds) Valid() bool {
	return b.Min[0] <= b.Max[0] && b.Min[1] <= b.Max[1] && b.Min[2] <= b.Max[2]
}

// Size returns the extent along each axis.
func (b Bounds) Size() [3]float32 {
	return [3]float32{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}
}

// Bounds computes the bounding box of the geometry's vertices.
func (g *Geometry) Bounds() Bounds {
	b := EmptyBounds()
	for _, v := range g.Vertices {
		b.Extend(v.Position)
	}
	return b
}
