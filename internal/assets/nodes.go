package assets

import (
	"math"

	"github.com/qmuntal/gltf"

	"github.com/Faultbox/wildwest/internal/engine/model"
)

// mat4d is a column-major 4x4 matrix in glTF's float64 layout.
type mat4d = [16]float64

var identity4 = mat4d{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// meshInstance is one node's use of a mesh with its world transform.
type meshInstance struct {
	mesh      int
	transform mat4d
}

// sceneMeshes walks the default scene (or the first one) and returns every
// mesh node with its accumulated transform, in depth-first order.
func sceneMeshes(doc *gltf.Document) []meshInstance {
	if len(doc.Scenes) == 0 {
		return nil
	}
	si := 0
	if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
		si = *doc.Scene
	}

	var out []meshInstance
	onPath := make(map[int]bool)
	var walk func(ni int, parent mat4d)
	walk = func(ni int, parent mat4d) {
		if ni < 0 || ni >= len(doc.Nodes) || onPath[ni] {
			return
		}
		onPath[ni] = true
		defer delete(onPath, ni)

		n := doc.Nodes[ni]
		world := mul4(parent, localMatrix(n))
		if n.Mesh != nil && *n.Mesh >= 0 && *n.Mesh < len(doc.Meshes) {
			out = append(out, meshInstance{mesh: *n.Mesh, transform: world})
		}
		for _, c := range n.Children {
			walk(c, world)
		}
	}
	for _, root := range doc.Scenes[si].Nodes {
		walk(root, identity4)
	}
	return out
}

// localMatrix is the node's explicit matrix, or T·R·S when it has none.
func localMatrix(n *gltf.Node) mat4d {
	if m := n.MatrixOrDefault(); m != identity4 {
		return m
	}

	t := n.TranslationOrDefault()
	q := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	x, y, z, w := q[0], q[1], q[2], q[3]

	return mat4d{
		(1 - 2*(y*y+z*z)) * s[0], 2 * (x*y + z*w) * s[0], 2 * (x*z - y*w) * s[0], 0,
		2 * (x*y - z*w) * s[1], (1 - 2*(x*x+z*z)) * s[1], 2 * (y*z + x*w) * s[1], 0,
		2 * (x*z + y*w) * s[2], 2 * (y*z - x*w) * s[2], (1 - 2*(x*x+y*y)) * s[2], 0,
		t[0], t[1], t[2], 1,
	}
}

func mul4(a, b mat4d) mat4d {
	var m mat4d
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += a[k*4+r] * b[c*4+k]
			}
			m[c*4+r] = sum
		}
	}
	return m
}

// transformGeometry returns a copy of g with m applied. Normals use the
// cofactor matrix, which is the inverse transpose up to scale. A mirroring
// transform also flips triangle winding so front faces stay front.
func transformGeometry(g model.Geometry, m mat4d) model.Geometry {
	a := func(r, c int) float64 { return m[c*4+r] }
	cof := [3][3]float64{
		{a(1, 1)*a(2, 2) - a(1, 2)*a(2, 1), -(a(1, 0)*a(2, 2) - a(1, 2)*a(2, 0)), a(1, 0)*a(2, 1) - a(1, 1)*a(2, 0)},
		{-(a(0, 1)*a(2, 2) - a(0, 2)*a(2, 1)), a(0, 0)*a(2, 2) - a(0, 2)*a(2, 0), -(a(0, 0)*a(2, 1) - a(0, 1)*a(2, 0))},
		{a(0, 1)*a(1, 2) - a(0, 2)*a(1, 1), -(a(0, 0)*a(1, 2) - a(0, 2)*a(1, 0)), a(0, 0)*a(1, 1) - a(0, 1)*a(1, 0)},
	}
	det := a(0, 0)*cof[0][0] + a(0, 1)*cof[0][1] + a(0, 2)*cof[0][2]
	sign := 1.0
	if det < 0 {
		sign = -1
	}

	out := model.Geometry{Vertices: make([]model.Vertex, len(g.Vertices)), Indices: g.Indices}
	for i, v := range g.Vertices {
		p := [3]float64{float64(v.Position[0]), float64(v.Position[1]), float64(v.Position[2])}
		n := [3]float64{float64(v.Normal[0]), float64(v.Normal[1]), float64(v.Normal[2])}

		var tn [3]float64
		for r := 0; r < 3; r++ {
			v.Position[r] = float32(a(r, 0)*p[0] + a(r, 1)*p[1] + a(r, 2)*p[2] + a(r, 3))
			tn[r] = sign * (cof[r][0]*n[0] + cof[r][1]*n[1] + cof[r][2]*n[2])
		}
		if l := math.Sqrt(tn[0]*tn[0] + tn[1]*tn[1] + tn[2]*tn[2]); l > 0 {
			v.Normal = [3]float32{float32(tn[0] / l), float32(tn[1] / l), float32(tn[2] / l)}
		}
		out.Vertices[i] = v
	}

	if det < 0 {
		out.Indices = make([]uint32, len(g.Indices))
		copy(out.Indices, g.Indices)
		for t := 0; t+2 < len(out.Indices); t += 3 {
			out.Indices[t+1], out.Indices[t+2] = out.Indices[t+2], out.Indices[t+1]
		}
	}
	return out
}
