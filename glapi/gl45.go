package glapi

import (
	"unsafe"

	"github.com/go-gl/gl/v4.5-core/gl"
)

var _ Context = &GL45{}

// GL45 forwards to the OpenGL 4.5 core bindings. gl.Init must have been called
// after the context was made current.
type GL45 struct{}

func NewGL45() *GL45 {
	return &GL45{}
}

func (c *GL45) GenFramebuffer() uint32 {
	var id uint32
	gl.GenFramebuffers(1, &id)
	return id
}

func (c *GL45) DeleteFramebuffer(id uint32) {
	gl.DeleteFramebuffers(1, &id)
}

func (c *GL45) BindFramebuffer(target, id uint32) {
	gl.BindFramebuffer(target, id)
}

func (c *GL45) CheckFramebufferStatus(target uint32) uint32 {
	return gl.CheckFramebufferStatus(target)
}

func (c *GL45) FramebufferTexture2D(target, attachment, texTarget, texture uint32, level int32) {
	gl.FramebufferTexture2D(target, attachment, texTarget, texture, level)
}

func (c *GL45) DrawBuffers(buffers []uint32) {

	if len(buffers) == 0 {
		return
	}

	gl.DrawBuffers(int32(len(buffers)), &buffers[0])
}

func (c *GL45) DrawBuffer(buffer uint32) {
	gl.DrawBuffer(buffer)
}

func (c *GL45) ReadBuffer(buffer uint32) {
	gl.ReadBuffer(buffer)
}

func (c *GL45) GenTexture() uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	return id
}

func (c *GL45) DeleteTexture(id uint32) {
	gl.DeleteTextures(1, &id)
}

func (c *GL45) BindTexture(target, id uint32) {
	gl.BindTexture(target, id)
}

func (c *GL45) ActiveTexture(unit uint32) {
	gl.ActiveTexture(unit)
}

func (c *GL45) TexParameteri(target, pname uint32, param int32) {
	gl.TexParameteri(target, pname, param)
}

func (c *GL45) TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels unsafe.Pointer) {
	gl.TexImage2D(target, level, internalFormat, width, height, 0, format, xtype, pixels)
}

func (c *GL45) TexSubImage2D(target uint32, level, xOffset, yOffset, width, height int32, format, xtype uint32, pixels unsafe.Pointer) {
	gl.TexSubImage2D(target, level, xOffset, yOffset, width, height, format, xtype, pixels)
}

func (c *GL45) GenerateMipmap(target uint32) {
	gl.GenerateMipmap(target)
}

func (c *GL45) ClearTexImage(texture uint32, level int32, format, xtype uint32, data unsafe.Pointer) {
	gl.ClearTexImage(texture, level, format, xtype, data)
}

func (c *GL45) ReadPixels(x, y, width, height int32, format, xtype uint32, pixels unsafe.Pointer) {
	gl.ReadPixels(x, y, width, height, format, xtype, pixels)
}

func (c *GL45) PixelStorei(pname uint32, param int32) {
	gl.PixelStorei(pname, param)
}

func (c *GL45) GetInteger(pname uint32) int32 {
	var v int32
	gl.GetIntegerv(pname, &v)
	return v
}

func (c *GL45) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (c *GL45) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (c *GL45) Clear(mask uint32) {
	gl.Clear(mask)
}

func (c *GL45) GetError() uint32 {
	return gl.GetError()
}
