package shaders

import (
	"strings"

	"github.com/bloeys/nframe/logging"
	"github.com/go-gl/gl/v4.5-core/gl"
)

type ShaderType int32

const (
	ShaderType_Unknown ShaderType = iota
	ShaderType_Vertex
	ShaderType_Fragment
	ShaderType_Geometry
)

func (s ShaderType) ToGl() uint32 {

	switch s {
	case ShaderType_Vertex:
		return gl.VERTEX_SHADER
	case ShaderType_Fragment:
		return gl.FRAGMENT_SHADER
	case ShaderType_Geometry:
		return gl.GEOMETRY_SHADER

	default:
		logging.ErrLog.Fatalf("Unknown shader type '%d'\n", s)
		return 0
	}
}

func (s ShaderType) String() string {

	switch s {
	case ShaderType_Vertex:
		return "vertex"
	case ShaderType_Fragment:
		return "fragment"
	case ShaderType_Geometry:
		return "geometry"
	default:
		return "unknown"
	}
}

// parseShaderType accepts the names used after a stage marker. 'pixel' is an alias of 'fragment'.
func parseShaderType(name string) ShaderType {

	switch strings.ToLower(strings.TrimSpace(name)) {
	case "vertex":
		return ShaderType_Vertex
	case "fragment", "pixel":
		return ShaderType_Fragment
	case "geometry":
		return ShaderType_Geometry
	default:
		return ShaderType_Unknown
	}
}
