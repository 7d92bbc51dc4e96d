package shaders

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nframe/logging"
	"github.com/go-gl/gl/v4.5-core/gl"
)

type ShaderProgram struct {
	Id uint32

	// Name is the file the program was loaded from, if any
	Name string

	VertShaderId uint32
	FragShaderId uint32
	GeomShaderId uint32

	// unifLocs caches uniform locations, including -1 for names the program doesn't have
	unifLocs map[string]int32
}

func (sp *ShaderProgram) AttachShader(shader Shader) {

	gl.AttachShader(sp.Id, shader.Id)
	switch shader.Type {
	case ShaderType_Vertex:
		sp.VertShaderId = shader.Id
	case ShaderType_Fragment:
		sp.FragShaderId = shader.Id
	case ShaderType_Geometry:
		sp.GeomShaderId = shader.Id
	default:
		logging.ErrLog.Fatalf("Unknown shader type '%d' for shader id '%d'\n", shader.Type, shader.Id)
	}
}

// Link links the attached shaders then deletes them, since the program keeps what it needs
func (sp *ShaderProgram) Link() error {

	gl.LinkProgram(sp.Id)
	err := getProgramLinkErrors(sp.Id)

	sp.deleteShaders()
	return err
}

func (sp *ShaderProgram) deleteShaders() {

	if sp.VertShaderId != 0 {
		gl.DeleteShader(sp.VertShaderId)
		sp.VertShaderId = 0
	}

	if sp.FragShaderId != 0 {
		gl.DeleteShader(sp.FragShaderId)
		sp.FragShaderId = 0
	}

	if sp.GeomShaderId != 0 {
		gl.DeleteShader(sp.GeomShaderId)
		sp.GeomShaderId = 0
	}
}

func (sp *ShaderProgram) Bind() {
	gl.UseProgram(sp.Id)
}

func (sp *ShaderProgram) UnBind() {
	gl.UseProgram(0)
}

// GetUnifLoc returns the location of a uniform, querying GL only the first time a name is used.
// Missing uniforms log a warning once and return -1, which GL ignores on set.
func (sp *ShaderProgram) GetUnifLoc(uniformName string) int32 {

	loc, ok := sp.unifLocs[uniformName]
	if ok {
		return loc
	}

	if sp.unifLocs == nil {
		sp.unifLocs = map[string]int32{}
	}

	loc = gl.GetUniformLocation(sp.Id, gl.Str(uniformName+"\x00"))
	if loc == -1 {
		logging.WarnLog.Warnf("uniform '%s' doesn't exist on shader program '%s' (id=%d)", uniformName, sp.Name, sp.Id)
	}

	sp.unifLocs[uniformName] = loc
	return loc
}

func (sp *ShaderProgram) SetUnifInt32(uniformName string, val int32) {
	gl.ProgramUniform1i(sp.Id, sp.GetUnifLoc(uniformName), val)
}

func (sp *ShaderProgram) SetUnifFloat32(uniformName string, val float32) {
	gl.ProgramUniform1f(sp.Id, sp.GetUnifLoc(uniformName), val)
}

func (sp *ShaderProgram) SetUnifVec2(uniformName string, vec2 *gglm.Vec2) {
	gl.ProgramUniform2fv(sp.Id, sp.GetUnifLoc(uniformName), 1, &vec2.Data[0])
}

func (sp *ShaderProgram) SetUnifVec4(uniformName string, vec4 *gglm.Vec4) {
	gl.ProgramUniform4fv(sp.Id, sp.GetUnifLoc(uniformName), 1, &vec4.Data[0])
}

func (sp *ShaderProgram) SetUnifMat4(uniformName string, mat4 *gglm.Mat4) {
	gl.ProgramUniformMatrix4fv(sp.Id, sp.GetUnifLoc(uniformName), 1, false, &mat4.Data[0][0])
}

// Delete releases the program. Calling it more than once is a no-op.
func (sp *ShaderProgram) Delete() {

	if sp.Id == 0 {
		return
	}

	sp.deleteShaders()
	gl.DeleteProgram(sp.Id)
	sp.Id = 0
	sp.unifLocs = nil
}
