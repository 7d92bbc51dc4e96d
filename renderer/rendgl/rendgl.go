package rendgl

import (
	_ "embed"
	"fmt"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nframe/buffers"
	"github.com/bloeys/nframe/materials"
	"github.com/bloeys/nframe/renderer"
	"github.com/go-gl/gl/v4.5-core/gl"
)

var _ renderer.Render = &RendGL{}

//go:embed screen_quad.glsl
var screenQuadShaderSrc []byte

// Two triangles covering NDC, as (x, y, u, v)
var screenQuadVerts = []float32{
	-1, -1, 0, 0,
	1, -1, 1, 0,
	1, 1, 1, 1,

	-1, -1, 0, 0,
	1, 1, 1, 1,
	-1, 1, 0, 1,
}

type RendGL struct {
	BoundVaoId uint32
	BoundMatId uint32

	screenQuadVao buffers.VertexArray
	screenQuadMat *materials.Material
}

func (r *RendGL) DrawVertexArray(mat *materials.Material, vao *buffers.VertexArray, firstElement int32, elementCount int32) {

	if vao.Id != r.BoundVaoId {
		vao.Bind()
		r.BoundVaoId = vao.Id
	}

	if mat.Id != r.BoundMatId {
		mat.Bind()
		r.BoundMatId = mat.Id
	}

	gl.DrawArrays(gl.TRIANGLES, firstElement, elementCount)
}

func (r *RendGL) DrawScreenQuad(tex uint32, scale, offset *gglm.Vec2) {

	r.screenQuadMat.SetTexture(materials.TextureSlot_Diffuse, tex)
	r.screenQuadMat.SetUnifVec2("scale", scale)
	r.screenQuadMat.SetUnifVec2("offset", offset)

	// The texture can change between calls with the same material, so always rebind
	r.screenQuadMat.Bind()
	r.BoundMatId = r.screenQuadMat.Id

	depthTestWasOn := gl.IsEnabled(gl.DEPTH_TEST)
	if depthTestWasOn {
		gl.Disable(gl.DEPTH_TEST)
	}

	r.DrawVertexArray(r.screenQuadMat, &r.screenQuadVao, 0, int32(len(screenQuadVerts)/4))

	if depthTestWasOn {
		gl.Enable(gl.DEPTH_TEST)
	}
}

func (r *RendGL) FrameEnd() {
	r.BoundVaoId = 0
	r.BoundMatId = 0
}

func (r *RendGL) Delete() {
	r.screenQuadVao.Delete()
	r.screenQuadMat.Delete()
}

// NewRendGL compiles the built-in shaders and uploads the screen quad. It needs a current graphics context.
func NewRendGL() (*RendGL, error) {

	mat, err := materials.NewMaterialSrc("screen-quad", screenQuadShaderSrc)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	mat.SetUnifInt32("screenTex", int32(materials.TextureSlot_Diffuse))

	vbo := buffers.NewVertexBuffer(
		buffers.Element{ElementType: buffers.DataTypeVec2},
		buffers.Element{ElementType: buffers.DataTypeVec2},
	)
	vbo.SetData(screenQuadVerts, buffers.BufUsage_Static_Draw)

	vao := buffers.NewVertexArray()
	vao.AddVertexBuffer(vbo)
	vao.UnBind()
	vbo.UnBind()

	return &RendGL{
		screenQuadVao: vao,
		screenQuadMat: mat,
	}, nil
}
