// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

const version = "#version 410 core\n"

//go:embed lighting.glsl
var prelude string

//go:embed skybox.vert
var skyboxVert string

//go:embed skybox.frag
var skyboxFrag string

//go:embed entity_phong.vert
var phongVert string

//go:embed entity_phong.frag
var phongFrag string

//go:embed entity_gouraud.vert
var gouraudVert string

//go:embed entity_gouraud.frag
var gouraudFrag string

//go:embed terrain.vert
var terrainVert string

//go:embed terrain.frag
var terrainFrag string

// Source is a vertex/fragment pair ready to compile.
type Source struct {
	Name     string
	Vertex   string
	Fragment string
}

// Lit stages get the shared lighting and fog functions prepended.
var (
	// Skybox samples a cubemap on the inside of a cube.
	Skybox = Source{"skybox", version + skyboxVert, version + skyboxFrag}

	// EntityPhong lights entities per fragment.
	EntityPhong = Source{"entity_phong", version + phongVert, version + prelude + phongFrag}

	// EntityGouraud lights entities per vertex.
	EntityGouraud = Source{"entity_gouraud", version + prelude + gouraudVert, version + prelude + gouraudFrag}

	// Terrain blends four ground layers through a blend map.
	Terrain = Source{"terrain", version + terrainVert, version + prelude + terrainFrag}
)
