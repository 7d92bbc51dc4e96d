// Package glapi is the explicit handle to the graphics context.
//
// Every resource wrapper that owns GPU objects (framebuffers, textures) takes a Context
// instead of calling the native bindings directly. The context must be current on the
// calling OS thread for every method; Contexts are not safe for concurrent use.
package glapi

import "unsafe"

type Context interface {
	GenFramebuffer() uint32
	DeleteFramebuffer(id uint32)
	BindFramebuffer(target, id uint32)
	CheckFramebufferStatus(target uint32) uint32
	FramebufferTexture2D(target, attachment, texTarget, texture uint32, level int32)
	DrawBuffers(buffers []uint32)
	DrawBuffer(buffer uint32)
	ReadBuffer(buffer uint32)

	GenTexture() uint32
	DeleteTexture(id uint32)
	BindTexture(target, id uint32)
	ActiveTexture(unit uint32)
	TexParameteri(target, pname uint32, param int32)
	TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels unsafe.Pointer)
	TexSubImage2D(target uint32, level, xOffset, yOffset, width, height int32, format, xtype uint32, pixels unsafe.Pointer)
	GenerateMipmap(target uint32)
	ClearTexImage(texture uint32, level int32, format, xtype uint32, data unsafe.Pointer)

	ReadPixels(x, y, width, height int32, format, xtype uint32, pixels unsafe.Pointer)
	PixelStorei(pname uint32, param int32)
	GetInteger(pname uint32) int32

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	GetError() uint32
}
