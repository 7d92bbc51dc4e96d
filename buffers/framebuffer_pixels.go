package buffers

import (
	"unsafe"

	"github.com/bloeys/nframe/assert"
	"github.com/go-gl/gl/v4.5-core/gl"
)

// pixelType is the element type used to clear or read a color attachment.
//
// Only uint8 and int32 are supported, and each has its own exported method pair below,
// so asking for any other element type fails to compile.
type pixelType uint32

const (
	pixelTypeUint8 pixelType = gl.UNSIGNED_BYTE
	pixelTypeInt32 pixelType = gl.INT
)

// ClearColorAttachmentUint8 sets every texel of the color attachment in slot index to value.
// value holds one element per channel of the attachment's transfer format (e.g. 4 for ColorRGBA8).
//
// The index is not validated beyond Go's bounds check, and the element type must suit the
// attachment (e.g. uint8 for ColorRGBA8 or UnsignedByte).
func (fbo *Framebuffer) ClearColorAttachmentUint8(index int, value []uint8) {

	a := &fbo.colorAttachments[index]
	assert.T(len(value) >= transferChannelCount(a.GlFormat), "clear value for attachment %d of framebuffer '%s' has %d elements but the attachment needs %d", index, fbo.Name, len(value), transferChannelCount(a.GlFormat))

	fbo.clearColorAttachment(a, pixelTypeUint8, unsafe.Pointer(&value[0]))
}

// ClearColorAttachmentInt32 is ClearColorAttachmentUint8 for integer attachments (e.g. SignedInt32 id buffers)
func (fbo *Framebuffer) ClearColorAttachmentInt32(index int, value []int32) {

	a := &fbo.colorAttachments[index]
	assert.T(len(value) >= transferChannelCount(a.GlFormat), "clear value for attachment %d of framebuffer '%s' has %d elements but the attachment needs %d", index, fbo.Name, len(value), transferChannelCount(a.GlFormat))

	fbo.clearColorAttachment(a, pixelTypeInt32, unsafe.Pointer(&value[0]))
}

func (fbo *Framebuffer) clearColorAttachment(a *FramebufferAttachment, pt pixelType, data unsafe.Pointer) {
	fbo.ctx.ClearTexImage(a.Id, 0, a.GlFormat, uint32(pt), data)
}

// ReadPixelsUint8 copies the rectangle (x, y, width, height) of the color attachment in slot index into out.
// out must hold at least width*height*channels elements, and rows are tightly packed starting from the bottom row.
//
// The read framebuffer binding and pack alignment are restored to what they were before the call,
// so reading while the framebuffer is bound for drawing leaves it bound.
//
// Like the clear methods, the index is only bounds checked by Go and the element type is the caller's responsibility.
func (fbo *Framebuffer) ReadPixelsUint8(index int, x, y, width, height int32, out []uint8) {

	a := &fbo.colorAttachments[index]
	assert.T(len(out) >= pixelCount(width, height, a), "read buffer for attachment %d of framebuffer '%s' has %d elements but %d are needed", index, fbo.Name, len(out), pixelCount(width, height, a))

	if len(out) == 0 {
		return
	}

	fbo.readPixels(index, a, x, y, width, height, pixelTypeUint8, unsafe.Pointer(&out[0]))
}

// ReadPixelsInt32 is ReadPixelsUint8 for integer attachments
func (fbo *Framebuffer) ReadPixelsInt32(index int, x, y, width, height int32, out []int32) {

	a := &fbo.colorAttachments[index]
	assert.T(len(out) >= pixelCount(width, height, a), "read buffer for attachment %d of framebuffer '%s' has %d elements but %d are needed", index, fbo.Name, len(out), pixelCount(width, height, a))

	if len(out) == 0 {
		return
	}

	fbo.readPixels(index, a, x, y, width, height, pixelTypeInt32, unsafe.Pointer(&out[0]))
}

func (fbo *Framebuffer) readPixels(index int, a *FramebufferAttachment, x, y, width, height int32, pt pixelType, out unsafe.Pointer) {

	prevReadFbo := uint32(fbo.ctx.GetInteger(gl.READ_FRAMEBUFFER_BINDING))
	prevPackAlignment := fbo.ctx.GetInteger(gl.PACK_ALIGNMENT)

	fbo.ctx.BindFramebuffer(gl.READ_FRAMEBUFFER, fbo.Id)
	fbo.ctx.ReadBuffer(gl.COLOR_ATTACHMENT0 + uint32(index))

	// Without this RGB rows get padded to 4 bytes
	fbo.ctx.PixelStorei(gl.PACK_ALIGNMENT, 1)
	fbo.ctx.ReadPixels(x, y, width, height, a.GlFormat, uint32(pt), out)

	fbo.ctx.PixelStorei(gl.PACK_ALIGNMENT, prevPackAlignment)
	fbo.ctx.BindFramebuffer(gl.READ_FRAMEBUFFER, prevReadFbo)
}

func pixelCount(width, height int32, a *FramebufferAttachment) int {
	return int(width) * int(height) * transferChannelCount(a.GlFormat)
}
