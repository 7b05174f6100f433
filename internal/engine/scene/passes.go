package scene

import (
	"github.com/Faultbox/wildwest/internal/engine/model"
	"github.com/Faultbox/wildwest/pkg/math"
)

// SkyboxPass draws the sky cube from the inside.
type SkyboxPass struct {
	program Program
	cube    model.Buffers
	day     uint32
	night   uint32
}

// NewSkyboxPass creates a skybox pass over an uploaded cube and the two
// cubemaps.
func NewSkyboxPass(p Program, cube model.Buffers, day, night uint32) *SkyboxPass {
	return &SkyboxPass{program: p, cube: cube, day: day, night: night}
}

// Render draws the cube unless the frame hides the skybox. It returns the
// number of draw calls.
func (s *SkyboxPass) Render(d Device, f *Frame) int {
	if !f.Skybox {
		return 0
	}

	tex := s.day
	if f.Night {
		tex = s.night
	}

	// The camera is inside the cube.
	d.SetCulling(false)
	s.program.Use()
	s.program.SetMat4(uProjection, f.Projection)
	s.program.SetMat4(uView, f.View)
	s.program.SetInt("skybox", 0)
	d.BindCubemap(0, tex)
	d.DrawIndexed(s.cube.VAO, s.cube.IndexCount, 1)
	d.SetCulling(true)
	return 1
}

// EntityPass draws every mesh component of every instance with either the
// per-fragment or per-vertex lighting program.
type EntityPass struct {
	phong   Program
	gouraud Program
}

// NewEntityPass creates an entity pass.
func NewEntityPass(phong, gouraud Program) *EntityPass {
	return &EntityPass{phong: phong, gouraud: gouraud}
}

// Render returns the number of draw calls and of instances drawn.
func (e *EntityPass) Render(d Device, f *Frame, instances []Instance) (draws, drawn int) {
	p := e.gouraud
	if f.Phong {
		p = e.phong
	}

	p.Use()
	uploadFrame(p, f)
	p.SetMat4("inv_view", f.View.Inverse())
	p.SetInt("texMap", 0)

	for i := range instances {
		inst := &instances[i]
		if inst.Mesh == nil {
			continue
		}
		p.SetMat4(uModel, inst.Model)
		for j := range inst.Mesh.Components {
			c := &inst.Mesh.Components[j]
			setMaterial(p, &c.Material)
			d.BindTexture(0, c.Texture)
			d.DrawIndexed(c.Buffers.VAO, c.Buffers.IndexCount, 3)
			draws++
		}
		drawn++
	}
	return draws, drawn
}

func setMaterial(p Program, m *model.Material) {
	p.SetVec3("mtl_ambient", vec3(m.Ambient))
	p.SetVec3("mtl_diffuse", vec3(m.Diffuse))
	p.SetVec3("mtl_specular", vec3(m.Specular))
	p.SetVec3("emission", vec3(m.Emission))
	p.SetFloat("shininess", m.Shininess)
}

func vec3(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}

// Terrain texture units.
const (
	UnitBlend = iota
	UnitBackground
	UnitRed
	UnitGreen
	UnitBlue
	terrainUnits
)

var terrainSamplers = [terrainUnits]string{
	UnitBlend:      "blendMap",
	UnitBackground: "backMap",
	UnitRed:        "rMap",
	UnitGreen:      "gMap",
	UnitBlue:       "bMap",
}

// TerrainMesh is the uploaded ground with its blend map and four layer
// textures, indexed by the Unit constants.
type TerrainMesh struct {
	Buffers  model.Buffers
	Textures [terrainUnits]uint32
	Model    math.Mat4
	Tiling   float32 // layer texture repeats across the terrain
}

// TerrainPass draws the terrain mesh.
type TerrainPass struct {
	program Program
	mesh    TerrainMesh
}

// NewTerrainPass creates a terrain pass for an uploaded mesh.
func NewTerrainPass(p Program, mesh TerrainMesh) *TerrainPass {
	return &TerrainPass{program: p, mesh: mesh}
}

// Render draws the terrain and returns the number of draw calls.
func (t *TerrainPass) Render(d Device, f *Frame) int {
	p := t.program
	p.Use()
	uploadFrame(p, f)
	p.SetMat4(uModel, t.mesh.Model)
	p.SetFloat("tiling", t.mesh.Tiling)

	for unit, name := range terrainSamplers {
		p.SetInt(name, int32(unit))
		d.BindTexture(unit, t.mesh.Textures[unit])
	}
	d.DrawIndexed(t.mesh.Buffers.VAO, t.mesh.Buffers.IndexCount, 3)
	return 1
}
