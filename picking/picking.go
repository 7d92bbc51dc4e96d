// Package picking finds which object is under a pixel by having every draw also write
// the object's id into an integer attachment of the scene framebuffer.
package picking

import (
	"errors"

	"github.com/bloeys/nframe/buffers"
	"github.com/bloeys/nframe/glapi"
	"github.com/go-gl/gl/v4.5-core/gl"
)

// NoObject is the id of pixels no object was drawn on
const NoObject int32 = -1

var ErrNoIdAttachment = errors.New("picking framebuffer needs a SignedInt32 color attachment to hold object ids")

// DefaultAttachments is a color target, an object id target and depth
var DefaultAttachments = []buffers.AttachmentFormat{
	buffers.AttachmentFormat_ColorRGBA8,
	buffers.AttachmentFormat_SignedInt32,
	buffers.AttachmentFormat_Depth,
}

type Picker struct {
	Fbo *buffers.Framebuffer

	// IdSlot is the color slot holding object ids
	IdSlot int

	// ClearColor is used for every 8-bit color attachment on Begin
	ClearColor [4]uint8

	ctx   glapi.Context
	idBuf [1]int32
}

func NewPicker(ctx glapi.Context, width, height int32) *Picker {

	p, err := NewPickerFromSpec(ctx, buffers.FramebufferSpec{Width: width, Height: height, Attachments: DefaultAttachments})
	if err != nil {
		// Unreachable since DefaultAttachments has an id slot
		panic(err)
	}

	return p
}

// NewPickerFromSpec uses the first SignedInt32 color attachment of spec for object ids
func NewPickerFromSpec(ctx glapi.Context, spec buffers.FramebufferSpec) (*Picker, error) {

	idSlot := -1
	colorSlot := 0
	for _, f := range spec.Attachments {

		if !f.IsColorFormat() {
			continue
		}

		if f == buffers.AttachmentFormat_SignedInt32 {
			idSlot = colorSlot
			break
		}

		colorSlot++
	}

	if idSlot == -1 {
		return nil, ErrNoIdAttachment
	}

	fbo := buffers.NewFramebuffer(ctx, spec)
	fbo.Name = "picking"

	return &Picker{
		Fbo:    fbo,
		IdSlot: idSlot,
		ctx:    ctx,
	}, nil
}

// Begin binds the picking framebuffer with a matching viewport and clears it: colors to ClearColor,
// ids to NoObject and depth to 1
func (p *Picker) Begin() {

	p.Fbo.BindWithViewport()

	noObject := []int32{NoObject}
	zeroInt := []int32{0}
	zeroByte := []uint8{0}
	clearColor := p.ClearColor

	for i := 0; i < p.Fbo.ColorAttachmentCount(); i++ {

		info, _ := p.Fbo.GetColorAttachmentInfo(i)
		switch info.Format {
		case buffers.AttachmentFormat_ColorRGBA8, buffers.AttachmentFormat_ColorRGB8:
			p.Fbo.ClearColorAttachmentUint8(i, clearColor[:info.Format.ChannelCount()])

		case buffers.AttachmentFormat_UnsignedByte, buffers.AttachmentFormat_SignedByte:
			p.Fbo.ClearColorAttachmentUint8(i, zeroByte)

		default:
			if i == p.IdSlot {
				p.Fbo.ClearColorAttachmentInt32(i, noObject)
			} else {
				p.Fbo.ClearColorAttachmentInt32(i, zeroInt)
			}
		}
	}

	if p.Fbo.HasDepthAttachment() {
		p.ctx.Clear(gl.DEPTH_BUFFER_BIT)
	}
}

// End makes the default framebuffer the render target again with a viewport of the given size
func (p *Picker) End(viewportWidth, viewportHeight int32) {
	p.Fbo.UnBindWithViewport(viewportWidth, viewportHeight)
}

// PickAt returns the id drawn at window coordinates (x, y), where (0, 0) is the top left.
// Positions outside the framebuffer return NoObject.
func (p *Picker) PickAt(x, y int32) int32 {

	if x < 0 || y < 0 || x >= p.Fbo.Width() || y >= p.Fbo.Height() {
		return NoObject
	}

	// GL rows start at the bottom
	glY := p.Fbo.Height() - 1 - y

	p.idBuf[0] = NoObject
	p.Fbo.ReadPixelsInt32(p.IdSlot, x, glY, 1, 1, p.idBuf[:])
	return p.idBuf[0]
}

// ColorAttachment returns the texture of the first color slot that is not the id slot,
// which is what gets presented on screen
func (p *Picker) ColorAttachment() uint32 {

	for i := 0; i < p.Fbo.ColorAttachmentCount(); i++ {
		if i != p.IdSlot {
			return p.Fbo.GetColorAttachment(i)
		}
	}

	return buffers.NoAttachment
}

func (p *Picker) Resize(width, height int32) {
	p.Fbo.Resize(width, height)
}

func (p *Picker) Delete() {
	p.Fbo.Delete()
}
