package buffers

import (
	"unsafe"

	"github.com/bloeys/nframe/logging"
	"github.com/go-gl/gl/v4.5-core/gl"
)

type VertexBuffer struct {
	Id     uint32
	Stride int32
	layout []Element
}

func (vb *VertexBuffer) Bind() {
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.Id)
}

func (vb *VertexBuffer) UnBind() {
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (vb *VertexBuffer) SetData(values []float32, usage BufUsage) {

	if len(values) == 0 {
		vb.SetDataRaw(nil, 0, usage)
		return
	}

	vb.SetDataRaw(unsafe.Pointer(&values[0]), len(values)*4, usage)
}

// SetDataRaw uploads sizeInBytes bytes starting at data, which is how ui draw lists hand over their vertices
func (vb *VertexBuffer) SetDataRaw(data unsafe.Pointer, sizeInBytes int, usage BufUsage) {

	vb.Bind()
	gl.BufferData(gl.ARRAY_BUFFER, sizeInBytes, data, usage.ToGL())
}

func (vb *VertexBuffer) GetLayout() []Element {
	e := make([]Element, len(vb.layout))
	copy(e, vb.layout)
	return e
}

// SetLayout sets the interleaved attributes of one vertex. Offsets and the stride are computed from the element sizes.
func (vb *VertexBuffer) SetLayout(layout ...Element) {

	vb.Stride = 0
	vb.layout = append(vb.layout[:0], layout...)

	for i := 0; i < len(vb.layout); i++ {

		vb.layout[i].Offset = int(vb.Stride)
		vb.Stride += vb.layout[i].Size()
	}
}

func (vb *VertexBuffer) Delete() {

	if vb.Id == 0 {
		return
	}

	gl.DeleteBuffers(1, &vb.Id)
	vb.Id = 0
}

func NewVertexBuffer(layout ...Element) VertexBuffer {

	vb := VertexBuffer{}

	gl.GenBuffers(1, &vb.Id)
	if vb.Id == 0 {
		logging.ErrLog.Fatalf("failed to create OpenGL buffer. GlError=%d\n", gl.GetError())
	}

	vb.SetLayout(layout...)
	return vb
}
