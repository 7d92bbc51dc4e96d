// Package imgui draws Dear ImGui frames with OpenGL and translates SDL keys for it
package imgui

import (
	_ "embed"
	"fmt"
	"image"
	"unsafe"

	imgui "github.com/AllenDang/cimgui-go"
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nframe/assert"
	"github.com/bloeys/nframe/buffers"
	"github.com/bloeys/nframe/glapi"
	"github.com/bloeys/nframe/materials"
	"github.com/bloeys/nframe/textures"
	"github.com/bloeys/nframe/timing"
	"github.com/go-gl/gl/v4.5-core/gl"
)

//go:embed imgui.glsl
var imguiShaderSrc []byte

type ImguiInfo struct {
	ImCtx imgui.Context

	Mat      *materials.Material
	Vao      buffers.VertexArray
	Vbo      buffers.VertexBuffer
	IndexBuf buffers.IndexBuffer
	FontTex  *textures.Texture
}

// FrameStart begins a new ui frame. Widgets can be submitted until Render.
func (i *ImguiInfo) FrameStart(winWidth, winHeight float32) {

	imIO := imgui.CurrentIO()
	imIO.SetDisplaySize(imgui.Vec2{X: winWidth, Y: winHeight})

	dt := timing.DT()
	if dt <= 0 {
		dt = 1.0 / 60
	}
	imIO.SetDeltaTime(dt)

	imgui.NewFrame()
}

// Render draws the ui on the current framebuffer, which is expected to be the default one.
// Window size is in screen coordinates and framebuffer size in pixels, which differ on high dpi displays.
func (i *ImguiInfo) Render(winWidth, winHeight float32, fbWidth, fbHeight int32) {

	imgui.Render()

	// Avoid rendering when minimized
	if fbWidth <= 0 || fbHeight <= 0 || winWidth <= 0 || winHeight <= 0 {
		return
	}

	drawData := imgui.CurrentDrawData()
	drawData.ScaleClipRects(imgui.Vec2{
		X: float32(fbWidth) / winWidth,
		Y: float32(fbHeight) / winHeight,
	})

	// Setup render state: alpha-blending enabled, no face culling, no depth testing, scissor enabled, polygon fill
	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)

	// Top left is (0, 0) for imgui
	orthoMat := gglm.Ortho(0, winWidth, winHeight, 0, -1, 1)
	i.Mat.SetUnifMat4("ProjMtx", &orthoMat.Mat4)

	i.Mat.Bind()
	i.Vao.Bind()
	gl.ActiveTexture(gl.TEXTURE0)

	indexSize := imgui.IndexBufferLayout()
	drawType := uint32(gl.UNSIGNED_SHORT)
	if indexSize == 4 {
		drawType = gl.UNSIGNED_INT
	}

	for _, list := range drawData.CommandLists() {

		vertexBuffer, vertexBufferSize := list.GetVertexBuffer()
		i.Vbo.SetDataRaw(vertexBuffer, vertexBufferSize, buffers.BufUsage_Stream_Draw)

		indexBuffer, indexBufferSize := list.GetIndexBuffer()
		i.IndexBuf.SetDataRaw(indexBuffer, int32(indexBufferSize/indexSize), drawType, buffers.BufUsage_Stream_Draw)

		for _, cmd := range list.Commands() {

			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
				continue
			}

			gl.BindTexture(gl.TEXTURE_2D, uint32(uintptr(cmd.TextureId())))

			clipRect := cmd.ClipRect()
			gl.Scissor(int32(clipRect.X), fbHeight-int32(clipRect.W), int32(clipRect.Z-clipRect.X), int32(clipRect.W-clipRect.Y))

			gl.DrawElementsBaseVertexWithOffset(gl.TRIANGLES, int32(cmd.ElemCount()), drawType, uintptr(int(cmd.IdxOffset())*indexSize), int32(cmd.VtxOffset()))
		}
	}

	// Reset gl state
	gl.Disable(gl.BLEND)
	gl.Disable(gl.SCISSOR_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.DEPTH_TEST)

	i.Vao.UnBind()
}

func (i *ImguiInfo) Delete() {
	i.Vao.Delete()
	i.FontTex.Delete()
	i.Mat.Delete()
	imgui.DestroyContext()
}

// NewImGui creates the imgui context and the GL resources needed to draw it
func NewImGui(ctx glapi.Context) (*ImguiInfo, error) {

	mat, err := materials.NewMaterialSrc("imgui", imguiShaderSrc)
	if err != nil {
		return nil, fmt.Errorf("failed to create imgui renderer: %w", err)
	}
	mat.SetUnifInt32("Texture", 0)

	imguiInfo := &ImguiInfo{
		ImCtx: imgui.CreateContext(),
		Mat:   mat,
	}

	io := imgui.CurrentIO()
	io.SetBackendFlags(io.BackendFlags() | imgui.BackendFlagsRendererHasVtxOffset)

	vertexSize, vertexOffsetPos, vertexOffsetUv, vertexOffsetCol := imgui.VertexBufferLayout()

	imguiInfo.Vbo = buffers.NewVertexBuffer(
		buffers.Element{ElementType: buffers.DataTypeVec2},
		buffers.Element{ElementType: buffers.DataTypeVec2},
		buffers.Element{ElementType: buffers.DataTypeRgba8Norm},
	)

	layout := imguiInfo.Vbo.GetLayout()
	assert.T(
		int(imguiInfo.Vbo.Stride) == vertexSize && layout[0].Offset == vertexOffsetPos && layout[1].Offset == vertexOffsetUv && layout[2].Offset == vertexOffsetCol,
		"imgui vertex layout (size=%d, pos=%d, uv=%d, col=%d) doesn't match the renderer's", vertexSize, vertexOffsetPos, vertexOffsetUv, vertexOffsetCol,
	)

	imguiInfo.IndexBuf = buffers.NewIndexBuffer()
	imguiInfo.Vao = buffers.NewVertexArray()
	imguiInfo.Vao.AddVertexBuffer(imguiInfo.Vbo)
	imguiInfo.Vao.SetIndexBuffer(imguiInfo.IndexBuf)
	imguiInfo.Vao.UnBind()

	// Upload font atlas
	pixels, width, height, _ := io.Fonts().GetTextureDataAsRGBA32()
	fontImg := &image.NRGBA{
		Pix:    unsafe.Slice((*uint8)(pixels), int(width)*int(height)*4),
		Stride: int(width) * 4,
		Rect:   image.Rect(0, 0, int(width), int(height)),
	}

	imguiInfo.FontTex = textures.LoadTextureFromImage(ctx, fontImg, &textures.TextureLoadOptions{NoFlip: true, NoMipmaps: true})
	imguiInfo.FontTex.Name = "imgui-font-atlas"
	io.Fonts().SetTexID(imgui.TextureID(uintptr(imguiInfo.FontTex.Id)))

	return imguiInfo, nil
}
