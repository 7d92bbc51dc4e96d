package shaders

import (
	"fmt"
	"os"
	"strings"

	"github.com/bloeys/nframe/logging"
	"github.com/go-gl/gl/v4.5-core/gl"
)

type Shader struct {
	Id   uint32
	Type ShaderType
}

func (s *Shader) Delete() {

	if s.Id == 0 {
		return
	}

	gl.DeleteShader(s.Id)
	s.Id = 0
}

func NewShaderProgram() (ShaderProgram, error) {

	id := gl.CreateProgram()
	if id == 0 {
		return ShaderProgram{}, fmt.Errorf("failed to create shader program. GlError=%d", gl.GetError())
	}

	return ShaderProgram{Id: id, unifLocs: map[string]int32{}}, nil
}

// LoadAndCompileCombinedShader reads a file holding all stages of a program (see SplitCombinedSource) and links them
func LoadAndCompileCombinedShader(shaderPath string) (ShaderProgram, error) {

	combinedSource, err := os.ReadFile(shaderPath)
	if err != nil {
		return ShaderProgram{}, fmt.Errorf("failed to read shader '%s': %w", shaderPath, err)
	}

	shdrProg, err := LoadAndCompileCombinedShaderSrc(combinedSource)
	if err != nil {
		return ShaderProgram{}, fmt.Errorf("failed to load shader '%s': %w", shaderPath, err)
	}

	shdrProg.Name = shaderPath
	return shdrProg, nil
}

func LoadAndCompileCombinedShaderSrc(shaderSrc []byte) (ShaderProgram, error) {

	stages, err := SplitCombinedSource(shaderSrc)
	if err != nil {
		return ShaderProgram{}, err
	}

	shdrProg, err := NewShaderProgram()
	if err != nil {
		return ShaderProgram{}, err
	}

	for i := 0; i < len(stages); i++ {

		shdr, err := CompileShaderOfType(stages[i].Src, stages[i].Type)
		if err != nil {
			shdrProg.Delete()
			return ShaderProgram{}, err
		}

		shdrProg.AttachShader(shdr)
	}

	if err := shdrProg.Link(); err != nil {
		shdrProg.Delete()
		return ShaderProgram{}, err
	}

	return shdrProg, nil
}

func CompileShaderOfType(shaderSource []byte, shaderType ShaderType) (Shader, error) {

	shaderId := gl.CreateShader(shaderType.ToGl())
	if shaderId == 0 {
		return Shader{}, fmt.Errorf("failed to create OpenGl shader. OpenGl Error=%d", gl.GetError())
	}

	//Load shader source and compile
	shaderCStr, shaderFree := gl.Strs(string(shaderSource) + "\x00")
	defer shaderFree()
	gl.ShaderSource(shaderId, 1, shaderCStr, nil)

	gl.CompileShader(shaderId)
	if err := getShaderCompileErrors(shaderId, shaderType); err != nil {
		gl.DeleteShader(shaderId)
		return Shader{}, err
	}

	return Shader{Id: shaderId, Type: shaderType}, nil
}

// CompileError holds the driver's log for a shader that failed to compile or a program that failed to link
type CompileError struct {
	// Stage is empty for link errors
	Stage ShaderType
	Log   string
}

func (e *CompileError) Error() string {

	if e.Stage == ShaderType_Unknown {
		return "link failed: " + e.Log
	}

	return e.Stage.String() + " shader compile failed: " + e.Log
}

func getShaderCompileErrors(shaderId uint32, shaderType ShaderType) error {

	errMsg, ok := glInfoLog(shaderId, gl.COMPILE_STATUS, gl.GetShaderiv, gl.GetShaderInfoLog)
	if ok {
		return nil
	}

	logging.ErrLog.Errorf("compilation of %s shader with id %d failed. Err: %s", shaderType, shaderId, errMsg)
	return &CompileError{Stage: shaderType, Log: errMsg}
}

func getProgramLinkErrors(progId uint32) error {

	errMsg, ok := glInfoLog(progId, gl.LINK_STATUS, gl.GetProgramiv, gl.GetProgramInfoLog)
	if ok {
		return nil
	}

	logging.ErrLog.Errorf("linking of shader program with id %d failed. Err: %s", progId, errMsg)
	return &CompileError{Log: errMsg}
}

// glInfoLog returns ok=true if the status is GL_TRUE, otherwise the info log of the shader or program
func glInfoLog(id, status uint32, getiv func(uint32, uint32, *int32), getLog func(uint32, int32, *int32, *uint8)) (string, bool) {

	var success int32
	getiv(id, status, &success)
	if success == gl.TRUE {
		return "", true
	}

	var logLength int32
	getiv(id, gl.INFO_LOG_LENGTH, &logLength)

	log := gl.Str(strings.Repeat("\x00", int(logLength+1)))
	getLog(id, logLength, nil, log)

	return gl.GoStr(log), false
}
