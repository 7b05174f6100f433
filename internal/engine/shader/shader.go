// Package shader provides OpenGL shader compilation utilities.
package shader

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/wildwest/internal/logger"
	"github.com/Faultbox/wildwest/pkg/math"
)

// Program is a linked shader program with its active uniforms resolved
// once at link time. Setting a uniform the program does not use is a
// no-op, which lets passes upload a common set to every program.
type Program struct {
	Name     string
	id       uint32
	uniforms map[string]int32
}

// New compiles and links a program and resolves its uniforms.
func New(name, vertexSrc, fragmentSrc string) (*Program, error) {
	id, err := CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	p := &Program{Name: name, id: id, uniforms: activeUniforms(id)}
	logger.Debug("shader program linked",
		zap.String("name", name),
		zap.Uint32("id", id),
		zap.Int("uniforms", len(p.uniforms)),
	)
	return p, nil
}

// activeUniforms maps every active uniform to its location. Array
// uniforms are reported as "name[0]"; each element is looked up so that
// "lights[3].radius" resolves too.
func activeUniforms(program uint32) map[string]int32 {
	var count, maxLen int32
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORMS, &count)
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORM_MAX_LENGTH, &maxLen)

	out := make(map[string]int32, count)
	buf := make([]byte, maxLen+1)
	for i := int32(0); i < count; i++ {
		var length, size int32
		var typ uint32
		gl.GetActiveUniform(program, uint32(i), maxLen, &length, &size, &typ, &buf[0])
		name := string(buf[:length])

		if size > 1 && strings.HasSuffix(name, "[0]") {
			base := strings.TrimSuffix(name, "[0]")
			for e := int32(0); e < size; e++ {
				elem := fmt.Sprintf("%s[%d]", base, e)
				if loc := GetUniform(program, elem); loc >= 0 {
					out[elem] = loc
				}
			}
			continue
		}
		if loc := GetUniform(program, name); loc >= 0 {
			out[name] = loc
		}
	}
	return out
}

// ID returns the GL program name.
func (p *Program) ID() uint32 {
	return p.id
}

// Has reports whether the program uses the uniform.
func (p *Program) Has(name string) bool {
	_, ok := p.uniforms[name]
	return ok
}

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.id)
}

func (p *Program) SetInt(name string, v int32) {
	if loc, ok := p.uniforms[name]; ok {
		gl.Uniform1i(loc, v)
	}
}

func (p *Program) SetFloat(name string, v float32) {
	if loc, ok := p.uniforms[name]; ok {
		gl.Uniform1f(loc, v)
	}
}

func (p *Program) SetVec3(name string, v math.Vec3) {
	if loc, ok := p.uniforms[name]; ok {
		gl.Uniform3f(loc, v.X, v.Y, v.Z)
	}
}

func (p *Program) SetVec4(name string, v math.Vec4) {
	if loc, ok := p.uniforms[name]; ok {
		gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
	}
}

func (p *Program) SetMat4(name string, m math.Mat4) {
	if loc, ok := p.uniforms[name]; ok {
		gl.UniformMatrix4fv(loc, 1, false, m.Ptr())
	}
}

// Destroy deletes the program.
func (p *Program) Destroy() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

// CompileProgram compiles vertex and fragment shaders and links them into a program.
// Returns the program ID or an error if compilation/linking fails.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.BindAttribLocation(program, 0, gl.Str("aPos\x00"))
	gl.BindAttribLocation(program, 1, gl.Str("aNormal\x00"))
	gl.BindAttribLocation(program, 2, gl.Str("aTexCoords\x00"))
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", strings.TrimRight(string(log), "\x00"))
	}

	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, strings.TrimRight(string(log), "\x00"))
	}

	return shader, nil
}

// GetUniform returns the uniform location for the given name, or -1.
func GetUniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}
