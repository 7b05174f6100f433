package math

// Vec4 is a 4-component vector. Lights use W to tell directional (0)
// from positional (1) sources.
type Vec4 [4]float32

// Point returns a positional Vec4 (w=1).
func Point(v Vec3) Vec4 {
	return Vec4{v.X, v.Y, v.Z, 1}
}

// Direction returns a directional Vec4 (w=0).
func Direction(v Vec3) Vec4 {
	return Vec4{v.X, v.Y, v.Z, 0}
}

// XYZ drops the W component.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v[0], v[1], v[2]}
}
