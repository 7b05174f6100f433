package shaders

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Faultbox/wildwest/internal/engine/lighting"
)

func TestSourcesStartWithVersion(t *testing.T) {
	for _, src := range []Source{Skybox, EntityPhong, EntityGouraud, Terrain} {
		if !strings.HasPrefix(src.Vertex, version) {
			t.Errorf("%s vertex stage has no version line", src.Name)
		}
		if !strings.HasPrefix(src.Fragment, version) {
			t.Errorf("%s fragment stage has no version line", src.Name)
		}
		if strings.Count(src.Vertex+src.Fragment, "#version") != 2 {
			t.Errorf("%s: expected exactly one #version per stage", src.Name)
		}
	}
}

func TestMaxLightsMatches(t *testing.T) {
	want := fmt.Sprintf("#define MAX_LIGHTS %d", lighting.MaxLights)
	if !strings.Contains(prelude, want) {
		t.Errorf("lighting prelude does not contain %q", want)
	}
}

func TestUniformsDeclared(t *testing.T) {
	tests := []struct {
		src      Source
		uniforms []string
	}{
		{Skybox, []string{"mat4 projection", "mat4 view", "samplerCube skybox"}},
		{EntityPhong, []string{
			"mat4 projection", "mat4 view", "mat4 model", "mat4 inv_view", "sampler2D texMap",
			"vec3 mtl_ambient", "vec3 mtl_diffuse", "vec3 mtl_specular", "vec3 emission", "float shininess",
			"int num_lights", "bool use_fog",
		}},
		{EntityGouraud, []string{
			"mat4 projection", "mat4 view", "mat4 model", "mat4 inv_view", "sampler2D texMap",
			"vec3 mtl_ambient", "vec3 mtl_diffuse", "vec3 mtl_specular", "vec3 emission", "float shininess",
			"int num_lights", "bool use_fog",
		}},
		{Terrain, []string{
			"mat4 projection", "mat4 view", "mat4 model",
			"sampler2D blendMap", "sampler2D backMap", "sampler2D rMap", "sampler2D gMap", "sampler2D bMap",
			"float tiling", "int num_lights", "bool use_fog",
		}},
	}
	for _, tt := range tests {
		all := tt.src.Vertex + tt.src.Fragment
		for _, u := range tt.uniforms {
			if !strings.Contains(all, "uniform "+u+";") {
				t.Errorf("%s: missing uniform %q", tt.src.Name, u)
			}
		}
	}
}
