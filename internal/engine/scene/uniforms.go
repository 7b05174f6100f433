package scene

import (
	"fmt"

	"github.com/Faultbox/wildwest/internal/engine/lighting"
)

// Uniforms shared by the entity and terrain programs.
const (
	uProjection = "projection"
	uView       = "view"
	uModel      = "model"
	uNumLights  = "num_lights"
	uUseFog     = "use_fog"
)

type lightNames struct {
	position, ambient, diffuse, specular string
	radius, coneAngle, coneDirection     string
}

var lightUniforms [lighting.MaxLights]lightNames

func init() {
	for i := range lightUniforms {
		p := fmt.Sprintf("lights[%d].", i)
		lightUniforms[i] = lightNames{
			position:      p + "position",
			ambient:       p + "ambient",
			diffuse:       p + "diffuse",
			specular:      p + "specular",
			radius:        p + "radius",
			coneAngle:     p + "coneAngle",
			coneDirection: p + "coneDirection",
		}
	}
}

// uploadLights sets num_lights and the lights array. Lights past
// MaxLights are dropped.
func uploadLights(p Program, lights []lighting.Light) {
	n := len(lights)
	if n > lighting.MaxLights {
		n = lighting.MaxLights
	}
	p.SetInt(uNumLights, int32(n))
	for i := 0; i < n; i++ {
		l := &lights[i]
		u := &lightUniforms[i]
		p.SetVec4(u.position, l.Position)
		p.SetVec3(u.ambient, l.Ambient)
		p.SetVec3(u.diffuse, l.Diffuse)
		p.SetVec3(u.specular, l.Specular)
		p.SetFloat(u.radius, l.Radius)
		p.SetFloat(u.coneAngle, l.ConeAngle)
		p.SetVec3(u.coneDirection, l.ConeDirection)
	}
}

// uploadFrame sets the per-pass uniforms every lit program shares.
func uploadFrame(p Program, f *Frame) {
	p.SetMat4(uProjection, f.Projection)
	p.SetMat4(uView, f.View)
	uploadLights(p, f.Lights)
	p.SetInt(uUseFog, boolInt(f.Fog))
}
