package buffers

import (
	"github.com/bloeys/nframe/logging"
	"github.com/go-gl/gl/v4.5-core/gl"
)

// Element is one vertex attribute inside a buffer (e.g. Vec2 at an offset of 8 bytes)
type Element struct {
	Offset int
	ElementType
}

// ElementType is the type of one vertex attribute
type ElementType uint8

const (
	DataTypeUnknown ElementType = iota

	DataTypeUint32
	DataTypeInt32
	DataTypeFloat32

	DataTypeVec2
	DataTypeVec3
	DataTypeVec4

	// DataTypeRgba8Norm is four bytes read by shaders as a vec4 in [0, 1] (e.g. ui vertex colors)
	DataTypeRgba8Norm

	dataTypeCount
)

type elementTypeInfo struct {
	name       string
	glType     uint32
	compCount  int32
	compSize   int32
	normalized bool
}

var elementTypeInfos = [dataTypeCount]elementTypeInfo{
	DataTypeUint32:  {name: "uint32", glType: gl.UNSIGNED_INT, compCount: 1, compSize: 4},
	DataTypeInt32:   {name: "int32", glType: gl.INT, compCount: 1, compSize: 4},
	DataTypeFloat32: {name: "float32", glType: gl.FLOAT, compCount: 1, compSize: 4},

	DataTypeVec2: {name: "Vec2", glType: gl.FLOAT, compCount: 2, compSize: 4},
	DataTypeVec3: {name: "Vec3", glType: gl.FLOAT, compCount: 3, compSize: 4},
	DataTypeVec4: {name: "Vec4", glType: gl.FLOAT, compCount: 4, compSize: 4},

	DataTypeRgba8Norm: {name: "Rgba8Norm", glType: gl.UNSIGNED_BYTE, compCount: 4, compSize: 1, normalized: true},
}

func (dt ElementType) info() *elementTypeInfo {

	if dt == DataTypeUnknown || dt >= dataTypeCount {
		logging.ErrLog.Fatalf("unknown element type '%d'\n", dt)
	}

	return &elementTypeInfos[dt]
}

func (dt ElementType) GLType() uint32 {
	return dt.info().glType
}

// CompCount returns the number of components in the element (e.g. for Vec2 its 2)
func (dt ElementType) CompCount() int32 {
	return dt.info().compCount
}

// Size returns the total size in bytes (e.g. for Vec3 its 3*4=12 bytes)
func (dt ElementType) Size() int32 {
	i := dt.info()
	return i.compCount * i.compSize
}

// Normalized reports whether integer components are mapped to [0, 1] when read by a shader
func (dt ElementType) Normalized() bool {
	return dt.info().normalized
}

// IsInteger reports whether the shader reads the element as integers (e.g. int or uint attributes)
func (dt ElementType) IsInteger() bool {
	return dt == DataTypeUint32 || dt == DataTypeInt32
}

func (dt ElementType) String() string {

	if dt == DataTypeUnknown || dt >= dataTypeCount {
		return "Unknown"
	}

	return elementTypeInfos[dt].name
}
