// Package model holds mesh geometry, materials and GPU handles for the
// entity pass.
package model

// Vertex represents a model mesh vertex with position, normal, and texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Bounds holds the axis-aligned bounding box of the model.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Material is a Phong surface description.
type Material struct {
	Ambient   [3]float32
	Diffuse   [3]float32
	Specular  [3]float32
	Emission  [3]float32
	Shininess float32
}

// DefaultMaterial is used when a mesh part carries no material.
func DefaultMaterial() Material {
	return Material{
		Ambient:   [3]float32{0.2, 0.2, 0.2},
		Diffuse:   [3]float32{0.8, 0.8, 0.8},
		Specular:  [3]float32{0.1, 0.1, 0.1},
		Shininess: 16,
	}
}

// Geometry is CPU-side indexed triangle data.
type Geometry struct {
	Vertices []Vertex
	Indices  []uint32
}

// Buffers are the GPU objects backing one uploaded Geometry.
type Buffers struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
}

// Component is one drawable sub-mesh with its own material and texture.
type Component struct {
	Name     string
	Buffers  Buffers
	Texture  uint32 // 0 binds no texture
	Material Material
}

// Mesh is a shared, loaded model. Entities reference it without owning it.
type Mesh struct {
	Name       string
	Components []Component
	Bounds     Bounds
}
