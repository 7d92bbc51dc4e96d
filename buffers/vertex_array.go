package buffers

import (
	"github.com/bloeys/nframe/logging"
	"github.com/go-gl/gl/v4.5-core/gl"
)

type VertexArray struct {
	Id          uint32
	Vbos        []VertexBuffer
	IndexBuffer IndexBuffer
}

func (va *VertexArray) Bind() {
	gl.BindVertexArray(va.Id)
}

func (va *VertexArray) UnBind() {
	gl.BindVertexArray(0)
}

// AddVertexBuffer records the layout of vbo into the vao. Attribute locations continue
// after those of previously added buffers.
func (va *VertexArray) AddVertexBuffer(vbo VertexBuffer) {

	// NOTE: VBOs are only bound at 'VertexAttribPointer' (and related) calls

	va.Bind()
	vbo.Bind()

	firstLoc := uint32(0)
	for i := 0; i < len(va.Vbos); i++ {
		firstLoc += uint32(len(va.Vbos[i].layout))
	}

	for i := 0; i < len(vbo.layout); i++ {

		l := &vbo.layout[i]
		loc := firstLoc + uint32(i)

		gl.EnableVertexAttribArray(loc)

		// Integer attributes must use the I variant or the shader sees them converted to float
		if l.IsInteger() {
			gl.VertexAttribIPointer(loc, l.CompCount(), l.GLType(), vbo.Stride, gl.PtrOffset(l.Offset))
			continue
		}

		gl.VertexAttribPointerWithOffset(loc, l.CompCount(), l.GLType(), l.Normalized(), vbo.Stride, uintptr(l.Offset))
	}

	va.Vbos = append(va.Vbos, vbo)
}

func (va *VertexArray) SetIndexBuffer(ib IndexBuffer) {
	va.Bind()
	ib.Bind()
	va.IndexBuffer = ib
}

// Delete releases the vao together with the vertex and index buffers added to it
func (va *VertexArray) Delete() {

	for i := 0; i < len(va.Vbos); i++ {
		va.Vbos[i].Delete()
	}
	va.Vbos = nil

	va.IndexBuffer.Delete()

	if va.Id != 0 {
		gl.DeleteVertexArrays(1, &va.Id)
		va.Id = 0
	}
}

func NewVertexArray() VertexArray {

	vao := VertexArray{}

	gl.GenVertexArrays(1, &vao.Id)
	if vao.Id == 0 {
		logging.ErrLog.Fatalf("failed to create OpenGL vertex array object. GlError=%d\n", gl.GetError())
	}

	return vao
}
