package renderer

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nframe/buffers"
	"github.com/bloeys/nframe/materials"
)

type Render interface {
	DrawVertexArray(mat *materials.Material, vao *buffers.VertexArray, firstElement int32, count int32)

	// DrawScreenQuad draws the 2D texture tex over the current render target.
	// The quad covers the whole target at scale (1, 1) and offset (0, 0), both in normalized device coordinates.
	DrawScreenQuad(tex uint32, scale, offset *gglm.Vec2)

	FrameEnd()
}
