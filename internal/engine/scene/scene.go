// Package scene draws a frame: skybox, entities, then terrain. The passes
// talk to the GPU through the Program and Device interfaces so they can be
// exercised without a GL context.
package scene

import (
	"github.com/Faultbox/wildwest/internal/engine/lighting"
	"github.com/Faultbox/wildwest/internal/engine/model"
	"github.com/Faultbox/wildwest/pkg/math"
)

// Program is a linked shader program. Setters for names the program does
// not declare are ignored.
type Program interface {
	Use()
	SetInt(name string, v int32)
	SetFloat(name string, v float32)
	SetVec3(name string, v math.Vec3)
	SetVec4(name string, v math.Vec4)
	SetMat4(name string, m math.Mat4)
}

// Device is the fixed-function state the passes touch.
type Device interface {
	SetCulling(enabled bool)
	BindTexture(unit int, tex uint32)
	BindCubemap(unit int, tex uint32)
	// DrawIndexed binds vao, enables attributes 0..attribs-1, draws
	// count indices as triangles, then disables the attributes and
	// unbinds the vertex array.
	DrawIndexed(vao uint32, count int32, attribs int)
}

// Frame is everything the passes need besides geometry.
type Frame struct {
	Projection math.Mat4
	View       math.Mat4
	Lights     []lighting.Light

	Fog    bool
	Phong  bool
	Skybox bool // draw the sky cube at all
	Night  bool // use the night cubemap
}

// Instance is one entity to draw.
type Instance struct {
	Mesh  *model.Mesh // nil instances are skipped
	Model math.Mat4
}

// Stats counts the work of one frame.
type Stats struct {
	DrawCalls int
	Instances int
}

// Renderer runs the passes in their fixed order.
type Renderer struct {
	Skybox  *SkyboxPass
	Entity  *EntityPass
	Terrain *TerrainPass
}

// Render draws one frame. Any nil pass is skipped.
func (r *Renderer) Render(d Device, f *Frame, instances []Instance) Stats {
	var st Stats
	if r.Skybox != nil {
		st.DrawCalls += r.Skybox.Render(d, f)
	}
	if r.Entity != nil {
		n, drawn := r.Entity.Render(d, f, instances)
		st.DrawCalls += n
		st.Instances = drawn
	}
	if r.Terrain != nil {
		st.DrawCalls += r.Terrain.Render(d, f)
	}
	return st
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
