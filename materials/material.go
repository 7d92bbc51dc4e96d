package materials

import (
	"fmt"
	"sync/atomic"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nframe/assert"
	"github.com/bloeys/nframe/shaders"
	"github.com/go-gl/gl/v4.5-core/gl"
)

var (
	lastMatId atomic.Uint32
)

type TextureSlot uint32

const (
	TextureSlot_Diffuse TextureSlot = 0
	TextureSlot_Overlay TextureSlot = 1

	MaxTextureSlots = 4
)

// Material is a shader program plus the textures it samples.
// Materials must stay at the same address once created so that shader reloads can replace the program in place.
type Material struct {
	Id         uint32
	Name       string
	ShaderProg shaders.ShaderProgram

	// Textures holds a 2D texture id per slot. Zero slots are left untouched on Bind
	Textures [MaxTextureSlots]uint32
}

func (m *Material) Bind() {

	m.ShaderProg.Bind()

	for i := 0; i < len(m.Textures); i++ {

		if m.Textures[i] == 0 {
			continue
		}

		gl.ActiveTexture(gl.TEXTURE0 + uint32(i))
		gl.BindTexture(gl.TEXTURE_2D, m.Textures[i])
	}
}

func (m *Material) UnBind() {
	gl.UseProgram(0)
}

func (m *Material) SetTexture(slot TextureSlot, texId uint32) {
	assert.T(slot < MaxTextureSlots, "texture slot %d on material '%s' is out of range. Max slots=%d", slot, m.Name, MaxTextureSlots)
	m.Textures[slot] = texId
}

func (m *Material) SetUnifInt32(uniformName string, val int32) {
	m.ShaderProg.SetUnifInt32(uniformName, val)
}

func (m *Material) SetUnifFloat32(uniformName string, val float32) {
	m.ShaderProg.SetUnifFloat32(uniformName, val)
}

func (m *Material) SetUnifVec2(uniformName string, vec2 *gglm.Vec2) {
	m.ShaderProg.SetUnifVec2(uniformName, vec2)
}

func (m *Material) SetUnifVec4(uniformName string, vec4 *gglm.Vec4) {
	m.ShaderProg.SetUnifVec4(uniformName, vec4)
}

func (m *Material) SetUnifMat4(uniformName string, mat4 *gglm.Mat4) {
	m.ShaderProg.SetUnifMat4(uniformName, mat4)
}

func (m *Material) Delete() {
	m.ShaderProg.Delete()
}

func getNewMatId() uint32 {
	return lastMatId.Add(1)
}

// NewMaterial loads a combined shader file. The program's Name is the file path, so it can be watched for reloads.
func NewMaterial(matName, shaderPath string) (*Material, error) {

	shdrProg, err := shaders.LoadAndCompileCombinedShader(shaderPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create new material '%s': %w", matName, err)
	}

	return &Material{
		Id:         getNewMatId(),
		Name:       matName,
		ShaderProg: shdrProg,
	}, nil
}

func NewMaterialSrc(matName string, shaderSrc []byte) (*Material, error) {

	shdrProg, err := shaders.LoadAndCompileCombinedShaderSrc(shaderSrc)
	if err != nil {
		return nil, fmt.Errorf("failed to create new material '%s': %w", matName, err)
	}

	return &Material{
		Id:         getNewMatId(),
		Name:       matName,
		ShaderProg: shdrProg,
	}, nil
}
