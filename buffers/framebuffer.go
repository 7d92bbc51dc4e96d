package buffers

import (
	"github.com/bloeys/nframe/assert"
	"github.com/bloeys/nframe/glapi"
	"github.com/bloeys/nframe/logging"
	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/google/uuid"
)

const (
	// MaxColorAttachments is the number of color attachments that can be drawn into simultaneously
	MaxColorAttachments = 4

	// NoAttachment is returned when asking for an attachment that doesn't exist
	NoAttachment uint32 = 0
)

var colorDrawBuffers = [MaxColorAttachments]uint32{
	gl.COLOR_ATTACHMENT0,
	gl.COLOR_ATTACHMENT1,
	gl.COLOR_ATTACHMENT2,
	gl.COLOR_ATTACHMENT3,
}

type FramebufferSpec struct {
	Width  int32
	Height int32

	// Attachments are created in order. The color slot of a color attachment is its
	// position among the color entries only, so depth entries don't take a slot.
	// At most MaxColorAttachments color entries and one depth entry are allowed.
	Attachments []AttachmentFormat
}

func (s *FramebufferSpec) ColorCount() int {

	count := 0
	for _, a := range s.Attachments {
		if a.IsColorFormat() {
			count++
		}
	}

	return count
}

func (s *FramebufferSpec) DepthCount() int {

	count := 0
	for _, a := range s.Attachments {
		if a.IsDepthFormat() {
			count++
		}
	}

	return count
}

type FramebufferAttachment struct {
	Id             uint32
	Format         AttachmentFormat
	InternalFormat int32
	GlFormat       uint32
}

// noCopy makes `go vet` report copies of types embedding it
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Framebuffer is an off-screen render target owning its attachment textures.
//
// The zero value is a framebuffer that was never created; SetSpec followed by Create realizes it.
// Framebuffers must not be copied, since two copies would delete the same GPU objects.
//
// Every method requires the graphics context to be current on the calling thread.
type Framebuffer struct {
	noCopy noCopy

	Id uint32

	// Name only shows up in logs
	Name string

	ctx              glapi.Context
	spec             FramebufferSpec
	colorAttachments []FramebufferAttachment
	depthAttachment  FramebufferAttachment
}

// NewFramebuffer creates a framebuffer and all its attachments on ctx
func NewFramebuffer(ctx glapi.Context, spec FramebufferSpec) *Framebuffer {

	fbo := &Framebuffer{}
	fbo.SetSpec(spec)
	fbo.Create(ctx)
	return fbo
}

// SetSpec stores the spec used by the next Create. It does not touch GPU resources.
func (fbo *Framebuffer) SetSpec(spec FramebufferSpec) {

	// Copy so the caller can't change our attachments list behind our back
	spec.Attachments = append([]AttachmentFormat(nil), spec.Attachments...)
	fbo.spec = spec
}

func (fbo *Framebuffer) Spec() FramebufferSpec {
	s := fbo.spec
	s.Attachments = append([]AttachmentFormat(nil), fbo.spec.Attachments...)
	return s
}

func (fbo *Framebuffer) Width() int32 {
	return fbo.spec.Width
}

func (fbo *Framebuffer) Height() int32 {
	return fbo.spec.Height
}

// Create realizes the fbo and its attachments from the current spec.
// Resources from a previous Create are released first.
func (fbo *Framebuffer) Create(ctx glapi.Context) {

	assert.T(ctx != nil, "framebuffer created without a graphics context")
	assert.T(fbo.spec.Width > 0 && fbo.spec.Height > 0, "framebuffer size must be positive. Width=%d, Height=%d", fbo.spec.Width, fbo.spec.Height)
	assert.T(fbo.spec.ColorCount() <= MaxColorAttachments, "framebuffer spec has %d color attachments but the max is %d", fbo.spec.ColorCount(), MaxColorAttachments)
	assert.T(fbo.spec.DepthCount() <= 1, "framebuffer spec has %d depth attachments but only one is allowed", fbo.spec.DepthCount())

	if fbo.Id != 0 {
		fbo.deleteResources()
	}

	fbo.ctx = ctx
	if fbo.Name == "" {
		fbo.Name = "fbo-" + uuid.NewString()[:8]
	}

	fbo.Id = ctx.GenFramebuffer()
	if fbo.Id == 0 {
		logging.ErrLog.Fatalf("failed to generate framebuffer. GlError=%d\n", ctx.GetError())
	}

	ctx.BindFramebuffer(gl.FRAMEBUFFER, fbo.Id)

	for _, format := range fbo.spec.Attachments {

		if format.IsDepthFormat() {
			fbo.attachDepthTexture()
			continue
		}

		fbo.attachColorTexture(format)
	}

	if len(fbo.colorAttachments) > 0 {
		ctx.DrawBuffers(colorDrawBuffers[:len(fbo.colorAttachments)])
	} else {
		// Depth only targets must say they have no color to draw or read
		ctx.DrawBuffer(gl.NONE)
		ctx.ReadBuffer(gl.NONE)
	}

	status := ctx.CheckFramebufferStatus(gl.FRAMEBUFFER)
	assert.T(status == gl.FRAMEBUFFER_COMPLETE, "framebuffer '%s' is not complete after creation. Status=0x%x, Spec=%v", fbo.Name, status, fbo.spec.Attachments)

	ctx.BindFramebuffer(gl.FRAMEBUFFER, 0)

	logging.InfoLog.Debugf("created framebuffer '%s' (id=%d) %dx%d with attachments %v", fbo.Name, fbo.Id, fbo.spec.Width, fbo.spec.Height, fbo.spec.Attachments)
}

func (fbo *Framebuffer) newAttachmentTexture(format AttachmentFormat) FramebufferAttachment {

	a := FramebufferAttachment{
		Format:         format,
		InternalFormat: format.GlInternalFormat(),
		GlFormat:       format.GlFormat(),
	}

	a.Id = fbo.ctx.GenTexture()
	if a.Id == 0 {
		logging.ErrLog.Fatalf("failed to generate texture for framebuffer. GlError=%d\n", fbo.ctx.GetError())
	}

	fbo.ctx.BindTexture(gl.TEXTURE_2D, a.Id)

	fbo.ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	fbo.ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	fbo.ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	fbo.ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	fbo.ctx.TexImage2D(gl.TEXTURE_2D, 0, a.InternalFormat, fbo.spec.Width, fbo.spec.Height, a.GlFormat, format.GlCreationType(), nil)
	fbo.ctx.BindTexture(gl.TEXTURE_2D, 0)

	return a
}

func (fbo *Framebuffer) attachColorTexture(format AttachmentFormat) {

	a := fbo.newAttachmentTexture(format)

	slot := uint32(len(fbo.colorAttachments))
	fbo.ctx.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0+slot, gl.TEXTURE_2D, a.Id, 0)

	fbo.colorAttachments = append(fbo.colorAttachments, a)
}

func (fbo *Framebuffer) attachDepthTexture() {

	a := fbo.newAttachmentTexture(AttachmentFormat_Depth)
	fbo.ctx.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, a.Id, 0)

	fbo.depthAttachment = a
}

func (fbo *Framebuffer) Bind() {
	fbo.ctx.BindFramebuffer(gl.FRAMEBUFFER, fbo.Id)
}

func (fbo *Framebuffer) BindWithViewport() {
	fbo.ctx.BindFramebuffer(gl.FRAMEBUFFER, fbo.Id)
	fbo.ctx.Viewport(0, 0, fbo.spec.Width, fbo.spec.Height)
}

func (fbo *Framebuffer) UnBind() {
	fbo.ctx.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

func (fbo *Framebuffer) UnBindWithViewport(width, height int32) {
	fbo.ctx.BindFramebuffer(gl.FRAMEBUFFER, 0)
	fbo.ctx.Viewport(0, 0, width, height)
}

// Resize destroys the fbo and every attachment and recreates them all at the new size.
// Attachment ids are not stable across a resize, so anything holding one must fetch it again.
func (fbo *Framebuffer) Resize(width, height int32) {

	assert.T(fbo.ctx != nil, "framebuffer '%s' resized before being created", fbo.Name)

	fbo.deleteResources()

	fbo.spec.Width = width
	fbo.spec.Height = height

	fbo.Create(fbo.ctx)
}

func (fbo *Framebuffer) ColorAttachmentCount() int {
	return len(fbo.colorAttachments)
}

func (fbo *Framebuffer) HasColorAttachment() bool {
	return len(fbo.colorAttachments) > 0
}

func (fbo *Framebuffer) HasDepthAttachment() bool {
	return fbo.depthAttachment.Id != 0
}

// GetColorAttachment returns the texture id of the color attachment in the given slot,
// or NoAttachment if there is no such slot
func (fbo *Framebuffer) GetColorAttachment(index int) uint32 {

	if index < 0 || index >= len(fbo.colorAttachments) {
		return NoAttachment
	}

	return fbo.colorAttachments[index].Id
}

// GetColorAttachmentInfo is like GetColorAttachment but also returns the formats the attachment was created with
func (fbo *Framebuffer) GetColorAttachmentInfo(index int) (FramebufferAttachment, bool) {

	if index < 0 || index >= len(fbo.colorAttachments) {
		return FramebufferAttachment{}, false
	}

	return fbo.colorAttachments[index], true
}

// GetDepthAttachment returns the depth texture id, or NoAttachment if the framebuffer has none
func (fbo *Framebuffer) GetDepthAttachment() uint32 {
	return fbo.depthAttachment.Id
}

// IsComplete returns true if the backend reports that the fbo is complete/usable.
// Note that this function binds and then unbinds the fbo
func (fbo *Framebuffer) IsComplete() bool {

	if fbo.Id == 0 {
		return false
	}

	fbo.Bind()
	isComplete := fbo.ctx.CheckFramebufferStatus(gl.FRAMEBUFFER) == gl.FRAMEBUFFER_COMPLETE
	fbo.UnBind()
	return isComplete
}

func (fbo *Framebuffer) deleteResources() {

	if fbo.Id != 0 {
		fbo.ctx.DeleteFramebuffer(fbo.Id)
		fbo.Id = 0
	}

	for i := 0; i < len(fbo.colorAttachments); i++ {

		a := &fbo.colorAttachments[i]
		if a.Id != 0 {
			fbo.ctx.DeleteTexture(a.Id)
		}
	}
	fbo.colorAttachments = fbo.colorAttachments[:0]

	if fbo.depthAttachment.Id != 0 {
		fbo.ctx.DeleteTexture(fbo.depthAttachment.Id)
	}
	fbo.depthAttachment = FramebufferAttachment{}
}

// Delete releases the fbo and all its attachments. It is safe to call on a framebuffer
// that was never created, and calling it more than once is a no-op.
func (fbo *Framebuffer) Delete() {

	if fbo.ctx == nil {
		return
	}

	hadFbo := fbo.Id != 0
	fbo.deleteResources()

	if hadFbo {
		logging.InfoLog.Debugf("deleted framebuffer '%s'", fbo.Name)
	}
}
