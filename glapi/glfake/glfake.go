// Package glfake is an in-memory glapi.Context used by tests that need GPU resources
// without a window or driver.
//
// It models the subset of OpenGL the resource wrappers use: object names (never reused),
// framebuffer attachment points, draw/read buffer state, completeness rules, texture
// storage per texel and channel, ClearTexImage, ReadPixels with pack alignment, and
// records deletions so tests can check lifetimes.
package glfake

import (
	"unsafe"

	"github.com/bloeys/nframe/glapi"
	"github.com/go-gl/gl/v4.5-core/gl"
)

var _ glapi.Context = &Context{}

type Framebuffer struct {
	Id uint32

	// Attachments maps an attachment point (e.g. gl.COLOR_ATTACHMENT1) to a texture name
	Attachments map[uint32]uint32
	DrawBuffers []uint32
	ReadBuffer  uint32
}

type Texture struct {
	Id             uint32
	Target         uint32
	InternalFormat int32
	Width          int32
	Height         int32
	Params         map[uint32]int32
	HasMipmaps     bool

	// Texels holds Width*Height*StorageChannels values, row by row starting at y=0
	Texels []float64
}

// StorageChannels returns how many channels a texel of this texture stores
func (t *Texture) StorageChannels() int {
	return storageChannels(t.InternalFormat)
}

// Texel returns the channels of the texel at (x, y)
func (t *Texture) Texel(x, y int) []float64 {
	ch := t.StorageChannels()
	start := (y*int(t.Width) + x) * ch
	return t.Texels[start : start+ch]
}

type Context struct {
	nextFramebufferId uint32
	nextTextureId     uint32

	framebuffers map[uint32]*Framebuffer
	textures     map[uint32]*Texture

	DrawFramebuffer uint32
	ReadFramebuffer uint32

	ActiveUnit    uint32
	boundTextures map[uint32]map[uint32]uint32

	PackAlignment   int32
	UnpackAlignment int32

	LastViewport   [4]int32
	LastClearColor [4]float32
	LastClearMask  uint32

	DeletedFramebuffers []uint32
	DeletedTextures     []uint32

	// ZeroDeletes counts delete calls that were passed the zero name
	ZeroDeletes int

	// ForceIncomplete makes CheckFramebufferStatus report an incomplete framebuffer
	ForceIncomplete bool

	errors []uint32
}

func New() *Context {
	return &Context{
		framebuffers:    make(map[uint32]*Framebuffer),
		textures:        make(map[uint32]*Texture),
		boundTextures:   make(map[uint32]map[uint32]uint32),
		ActiveUnit:      gl.TEXTURE0,
		PackAlignment:   4,
		UnpackAlignment: 4,
	}
}

// Framebuffer returns the live framebuffer with this name, or nil
func (c *Context) Framebuffer(id uint32) *Framebuffer {
	return c.framebuffers[id]
}

// Texture returns the live texture with this name, or nil
func (c *Context) Texture(id uint32) *Texture {
	return c.textures[id]
}

func (c *Context) LiveFramebufferCount() int {
	return len(c.framebuffers)
}

func (c *Context) LiveTextureCount() int {
	return len(c.textures)
}

// TextureSize returns the dimensions of a live texture, or (0, 0)
func (c *Context) TextureSize(id uint32) (width, height int32) {

	t := c.textures[id]
	if t == nil {
		return 0, 0
	}

	return t.Width, t.Height
}

// BoundTexture returns the texture bound to target on the active unit
func (c *Context) BoundTexture(target uint32) uint32 {
	return c.boundTextures[c.ActiveUnit][target]
}

func (c *Context) setError(e uint32) {
	c.errors = append(c.errors, e)
}

func (c *Context) GetError() uint32 {

	if len(c.errors) == 0 {
		return gl.NO_ERROR
	}

	e := c.errors[0]
	c.errors = c.errors[1:]
	return e
}

func (c *Context) GenFramebuffer() uint32 {

	c.nextFramebufferId++
	id := c.nextFramebufferId

	c.framebuffers[id] = &Framebuffer{
		Id:          id,
		Attachments: make(map[uint32]uint32),
		DrawBuffers: []uint32{gl.COLOR_ATTACHMENT0},
		ReadBuffer:  gl.COLOR_ATTACHMENT0,
	}

	return id
}

func (c *Context) DeleteFramebuffer(id uint32) {

	if id == 0 {
		c.ZeroDeletes++
		return
	}

	if _, ok := c.framebuffers[id]; !ok {
		c.setError(gl.INVALID_VALUE)
		return
	}

	delete(c.framebuffers, id)
	c.DeletedFramebuffers = append(c.DeletedFramebuffers, id)

	if c.DrawFramebuffer == id {
		c.DrawFramebuffer = 0
	}

	if c.ReadFramebuffer == id {
		c.ReadFramebuffer = 0
	}
}

func (c *Context) BindFramebuffer(target, id uint32) {

	if id != 0 && c.framebuffers[id] == nil {
		c.setError(gl.INVALID_OPERATION)
		return
	}

	switch target {
	case gl.FRAMEBUFFER:
		c.DrawFramebuffer = id
		c.ReadFramebuffer = id
	case gl.DRAW_FRAMEBUFFER:
		c.DrawFramebuffer = id
	case gl.READ_FRAMEBUFFER:
		c.ReadFramebuffer = id
	default:
		c.setError(gl.INVALID_ENUM)
	}
}

func (c *Context) targetFramebuffer(target uint32) *Framebuffer {

	if target == gl.READ_FRAMEBUFFER {
		return c.framebuffers[c.ReadFramebuffer]
	}

	return c.framebuffers[c.DrawFramebuffer]
}

func (c *Context) FramebufferTexture2D(target, attachment, texTarget, texture uint32, level int32) {

	fb := c.targetFramebuffer(target)
	if fb == nil {
		c.setError(gl.INVALID_OPERATION)
		return
	}

	if texture == 0 {
		delete(fb.Attachments, attachment)
		return
	}

	if c.textures[texture] == nil {
		c.setError(gl.INVALID_OPERATION)
		return
	}

	fb.Attachments[attachment] = texture
}

func (c *Context) DrawBuffers(buffers []uint32) {

	fb := c.framebuffers[c.DrawFramebuffer]
	if fb == nil {
		c.setError(gl.INVALID_OPERATION)
		return
	}

	fb.DrawBuffers = append([]uint32(nil), buffers...)
}

func (c *Context) DrawBuffer(buffer uint32) {

	fb := c.framebuffers[c.DrawFramebuffer]
	if fb == nil {
		c.setError(gl.INVALID_OPERATION)
		return
	}

	fb.DrawBuffers = []uint32{buffer}
}

func (c *Context) ReadBuffer(buffer uint32) {

	fb := c.framebuffers[c.ReadFramebuffer]
	if fb == nil {
		c.setError(gl.INVALID_OPERATION)
		return
	}

	fb.ReadBuffer = buffer
}

func (c *Context) CheckFramebufferStatus(target uint32) uint32 {

	if c.ForceIncomplete {
		return gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT
	}

	fb := c.targetFramebuffer(target)
	if fb == nil {
		// Default framebuffer
		return gl.FRAMEBUFFER_COMPLETE
	}

	if len(fb.Attachments) == 0 {
		return gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT
	}

	var width, height int32 = -1, -1
	for point, texId := range fb.Attachments {

		tex := c.textures[texId]
		if tex == nil || tex.Width == 0 || tex.Height == 0 {
			return gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT
		}

		if (point == gl.DEPTH_ATTACHMENT) != isDepthFormat(tex.InternalFormat) {
			return gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT
		}

		// Attachments of one fbo share a size in this model
		if width != -1 && (tex.Width != width || tex.Height != height) {
			return gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT
		}
		width, height = tex.Width, tex.Height
	}

	for _, db := range fb.DrawBuffers {
		if db == gl.NONE {
			continue
		}

		if _, ok := fb.Attachments[db]; !ok {
			return gl.FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER
		}
	}

	if fb.ReadBuffer != gl.NONE {
		if _, ok := fb.Attachments[fb.ReadBuffer]; !ok {
			return gl.FRAMEBUFFER_INCOMPLETE_READ_BUFFER
		}
	}

	return gl.FRAMEBUFFER_COMPLETE
}

func (c *Context) GenTexture() uint32 {

	c.nextTextureId++
	id := c.nextTextureId

	c.textures[id] = &Texture{
		Id:     id,
		Params: make(map[uint32]int32),
	}

	return id
}

func (c *Context) DeleteTexture(id uint32) {

	if id == 0 {
		c.ZeroDeletes++
		return
	}

	if _, ok := c.textures[id]; !ok {
		c.setError(gl.INVALID_VALUE)
		return
	}

	delete(c.textures, id)
	c.DeletedTextures = append(c.DeletedTextures, id)

	for _, targets := range c.boundTextures {
		for target, bound := range targets {
			if bound == id {
				targets[target] = 0
			}
		}
	}

	for _, fb := range c.framebuffers {
		for point, texId := range fb.Attachments {
			if texId == id {
				delete(fb.Attachments, point)
			}
		}
	}
}

func (c *Context) BindTexture(target, id uint32) {

	if id != 0 && c.textures[id] == nil {
		c.setError(gl.INVALID_OPERATION)
		return
	}

	if id != 0 {
		c.textures[id].Target = target
	}

	unit, ok := c.boundTextures[c.ActiveUnit]
	if !ok {
		unit = make(map[uint32]uint32)
		c.boundTextures[c.ActiveUnit] = unit
	}

	unit[target] = id
}

func (c *Context) ActiveTexture(unit uint32) {
	c.ActiveUnit = unit
}

func (c *Context) boundTexture(target uint32) *Texture {
	return c.textures[c.BoundTexture(target)]
}

func (c *Context) TexParameteri(target, pname uint32, param int32) {

	tex := c.boundTexture(target)
	if tex == nil {
		c.setError(gl.INVALID_OPERATION)
		return
	}

	tex.Params[pname] = param
}

func (c *Context) TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels unsafe.Pointer) {

	tex := c.boundTexture(target)
	if tex == nil {
		c.setError(gl.INVALID_OPERATION)
		return
	}

	if level != 0 {
		return
	}

	tex.InternalFormat = internalFormat
	tex.Width = width
	tex.Height = height
	tex.HasMipmaps = false
	tex.Texels = make([]float64, int(width)*int(height)*storageChannels(internalFormat))

	if pixels != nil {
		c.upload(tex, 0, 0, width, height, format, xtype, pixels)
	}
}

func (c *Context) TexSubImage2D(target uint32, level, xOffset, yOffset, width, height int32, format, xtype uint32, pixels unsafe.Pointer) {

	tex := c.boundTexture(target)
	if tex == nil || pixels == nil {
		c.setError(gl.INVALID_OPERATION)
		return
	}

	if xOffset < 0 || yOffset < 0 || xOffset+width > tex.Width || yOffset+height > tex.Height {
		c.setError(gl.INVALID_VALUE)
		return
	}

	if level != 0 {
		return
	}

	c.upload(tex, xOffset, yOffset, width, height, format, xtype, pixels)
}

func (c *Context) upload(tex *Texture, xOffset, yOffset, width, height int32, format, xtype uint32, pixels unsafe.Pointer) {

	srcChannels := formatChannels(format)
	rowStride := alignedRowElements(width, srcChannels, xtype, c.UnpackAlignment)
	src := readComponents(pixels, xtype, rowStride*int(height))

	dstChannels := tex.StorageChannels()
	for y := 0; y < int(height); y++ {
		for x := 0; x < int(width); x++ {

			texel := tex.Texel(int(xOffset)+x, int(yOffset)+y)
			for ch := 0; ch < srcChannels && ch < dstChannels; ch++ {
				texel[ch] = src[y*rowStride+x*srcChannels+ch]
			}
		}
	}
}

func (c *Context) GenerateMipmap(target uint32) {

	tex := c.boundTexture(target)
	if tex == nil {
		c.setError(gl.INVALID_OPERATION)
		return
	}

	tex.HasMipmaps = true
}

func (c *Context) ClearTexImage(texture uint32, level int32, format, xtype uint32, data unsafe.Pointer) {

	tex := c.textures[texture]
	if tex == nil || tex.Texels == nil {
		c.setError(gl.INVALID_OPERATION)
		return
	}

	channels := formatChannels(format)
	values := make([]float64, channels)
	if data != nil {
		values = readComponents(data, xtype, channels)
	}

	dstChannels := tex.StorageChannels()
	for i := 0; i < len(tex.Texels); i += dstChannels {
		for ch := 0; ch < dstChannels; ch++ {

			if ch < channels {
				tex.Texels[i+ch] = values[ch]
			} else {
				tex.Texels[i+ch] = 0
			}
		}
	}
}

func (c *Context) ReadPixels(x, y, width, height int32, format, xtype uint32, pixels unsafe.Pointer) {

	fb := c.framebuffers[c.ReadFramebuffer]
	if fb == nil || fb.ReadBuffer == gl.NONE {
		c.setError(gl.INVALID_OPERATION)
		return
	}

	tex := c.textures[fb.Attachments[fb.ReadBuffer]]
	if tex == nil {
		c.setError(gl.INVALID_OPERATION)
		return
	}

	channels := formatChannels(format)
	rowStride := alignedRowElements(width, channels, xtype, c.PackAlignment)

	for row := 0; row < int(height); row++ {
		for col := 0; col < int(width); col++ {

			tx, ty := int(x)+col, int(y)+row
			if tx < 0 || ty < 0 || tx >= int(tex.Width) || ty >= int(tex.Height) {
				continue
			}

			texel := tex.Texel(tx, ty)
			for ch := 0; ch < channels; ch++ {

				var v float64
				if ch < len(texel) {
					v = texel[ch]
				}

				writeComponent(pixels, xtype, row*rowStride+col*channels+ch, v)
			}
		}
	}
}

func (c *Context) PixelStorei(pname uint32, param int32) {

	switch pname {
	case gl.PACK_ALIGNMENT:
		c.PackAlignment = param
	case gl.UNPACK_ALIGNMENT:
		c.UnpackAlignment = param
	}
}

// GetInteger answers the queries framebuffers need to restore state. Other names set INVALID_ENUM.
func (c *Context) GetInteger(pname uint32) int32 {

	switch pname {
	case gl.PACK_ALIGNMENT:
		return c.PackAlignment
	case gl.UNPACK_ALIGNMENT:
		return c.UnpackAlignment
	case gl.READ_FRAMEBUFFER_BINDING:
		return int32(c.ReadFramebuffer)
	case gl.DRAW_FRAMEBUFFER_BINDING:
		return int32(c.DrawFramebuffer)
	case gl.ACTIVE_TEXTURE:
		return int32(c.ActiveUnit)
	}

	c.setError(gl.INVALID_ENUM)
	return 0
}

func (c *Context) Viewport(x, y, width, height int32) {
	c.LastViewport = [4]int32{x, y, width, height}
}

func (c *Context) ClearColor(r, g, b, a float32) {
	c.LastClearColor = [4]float32{r, g, b, a}
}

func (c *Context) Clear(mask uint32) {
	c.LastClearMask = mask
}

func isDepthFormat(internalFormat int32) bool {

	switch internalFormat {
	case gl.DEPTH_COMPONENT, gl.DEPTH_COMPONENT16, gl.DEPTH_COMPONENT24, gl.DEPTH_COMPONENT32F, gl.DEPTH24_STENCIL8:
		return true
	default:
		return false
	}
}

func storageChannels(internalFormat int32) int {

	switch internalFormat {
	case gl.RGBA8, gl.SRGB8_ALPHA8, gl.RGBA16F, gl.RGBA32F, gl.RGBA:
		return 4
	case gl.RGB8, gl.SRGB8, gl.RGB:
		return 3
	case gl.R8, gl.R8UI, gl.R8I, gl.R32UI, gl.R32I, gl.R32F:
		return 1
	case gl.DEPTH_COMPONENT, gl.DEPTH_COMPONENT16, gl.DEPTH_COMPONENT24, gl.DEPTH_COMPONENT32F:
		return 1
	default:
		return 4
	}
}

func formatChannels(format uint32) int {

	switch format {
	case gl.RGBA, gl.RGBA_INTEGER, gl.BGRA:
		return 4
	case gl.RGB, gl.RGB_INTEGER, gl.BGR:
		return 3
	case gl.RG, gl.RG_INTEGER:
		return 2
	default:
		return 1
	}
}

func componentSize(xtype uint32) int {

	switch xtype {
	case gl.UNSIGNED_BYTE, gl.BYTE:
		return 1
	case gl.UNSIGNED_SHORT, gl.SHORT:
		return 2
	default:
		return 4
	}
}

// alignedRowElements returns the row length in components once rows are padded to alignment bytes
func alignedRowElements(width int32, channels int, xtype uint32, alignment int32) int {

	compSize := componentSize(xtype)
	rowBytes := int(width) * channels * compSize

	if alignment > 1 && rowBytes%int(alignment) != 0 {
		rowBytes += int(alignment) - rowBytes%int(alignment)
	}

	return rowBytes / compSize
}

func readComponents(p unsafe.Pointer, xtype uint32, count int) []float64 {

	out := make([]float64, count)
	switch xtype {
	case gl.UNSIGNED_BYTE:
		for i, v := range unsafe.Slice((*uint8)(p), count) {
			out[i] = float64(v)
		}
	case gl.BYTE:
		for i, v := range unsafe.Slice((*int8)(p), count) {
			out[i] = float64(v)
		}
	case gl.UNSIGNED_INT:
		for i, v := range unsafe.Slice((*uint32)(p), count) {
			out[i] = float64(v)
		}
	case gl.INT:
		for i, v := range unsafe.Slice((*int32)(p), count) {
			out[i] = float64(v)
		}
	case gl.FLOAT:
		for i, v := range unsafe.Slice((*float32)(p), count) {
			out[i] = float64(v)
		}
	}

	return out
}

func writeComponent(p unsafe.Pointer, xtype uint32, index int, v float64) {

	switch xtype {
	case gl.UNSIGNED_BYTE:
		unsafe.Slice((*uint8)(p), index+1)[index] = uint8(int64(v))
	case gl.BYTE:
		unsafe.Slice((*int8)(p), index+1)[index] = int8(int64(v))
	case gl.UNSIGNED_INT:
		unsafe.Slice((*uint32)(p), index+1)[index] = uint32(int64(v))
	case gl.INT:
		unsafe.Slice((*int32)(p), index+1)[index] = int32(int64(v))
	case gl.FLOAT:
		unsafe.Slice((*float32)(p), index+1)[index] = float32(v)
	}
}
