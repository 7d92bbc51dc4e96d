package buffers

import (
	"unsafe"

	"github.com/bloeys/nframe/logging"
	"github.com/go-gl/gl/v4.5-core/gl"
)

type IndexBuffer struct {
	Id uint32

	// IndexBufCount is the number of indices in the buffer. Updated by the SetData functions
	IndexBufCount int32

	// IndexType is gl.UNSIGNED_INT or gl.UNSIGNED_SHORT depending on the last upload
	IndexType uint32
}

func (ib *IndexBuffer) Bind() {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ib.Id)
}

func (ib *IndexBuffer) UnBind() {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
}

func (ib *IndexBuffer) SetData(values []uint32) {

	if len(values) == 0 {
		ib.SetDataRaw(nil, 0, gl.UNSIGNED_INT, BufUsage_Static_Draw)
		return
	}

	ib.SetDataRaw(unsafe.Pointer(&values[0]), int32(len(values)), gl.UNSIGNED_INT, BufUsage_Static_Draw)
}

// SetDataRaw uploads count indices of indexType (gl.UNSIGNED_INT or gl.UNSIGNED_SHORT) starting at data
func (ib *IndexBuffer) SetDataRaw(data unsafe.Pointer, count int32, indexType uint32, usage BufUsage) {

	indexSize := 4
	switch indexType {
	case gl.UNSIGNED_INT:
	case gl.UNSIGNED_SHORT:
		indexSize = 2
	default:
		logging.ErrLog.Fatalf("unsupported index type 0x%x\n", indexType)
	}

	ib.Bind()

	ib.IndexBufCount = count
	ib.IndexType = indexType
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, int(count)*indexSize, data, usage.ToGL())
}

func (ib *IndexBuffer) Delete() {

	if ib.Id == 0 {
		return
	}

	gl.DeleteBuffers(1, &ib.Id)
	ib.Id = 0
}

func NewIndexBuffer() IndexBuffer {

	ib := IndexBuffer{IndexType: gl.UNSIGNED_INT}

	gl.GenBuffers(1, &ib.Id)
	if ib.Id == 0 {
		logging.ErrLog.Fatalf("failed to create OpenGL buffer. GlError=%d\n", gl.GetError())
	}

	return ib
}
