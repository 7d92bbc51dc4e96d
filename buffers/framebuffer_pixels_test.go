package buffers

import (
	"testing"

	"github.com/bloeys/nframe/glapi/glfake"
	"github.com/go-gl/gl/v4.5-core/gl"
)

func TestClearAndReadRGBA8(t *testing.T) {

	ctx := glfake.New()
	fbo := NewFramebuffer(ctx, FramebufferSpec{
		Width:       4,
		Height:      3,
		Attachments: []AttachmentFormat{AttachmentFormat_ColorRGBA8, AttachmentFormat_Depth},
	})

	fbo.ClearColorAttachmentUint8(0, []uint8{10, 20, 30, 255})

	out := make([]uint8, 4*3*4)
	fbo.ReadPixelsUint8(0, 0, 0, 4, 3, out)

	for i := 0; i < len(out); i += 4 {
		if out[i] != 10 || out[i+1] != 20 || out[i+2] != 30 || out[i+3] != 255 {
			t.Fatalf("expected every texel to be [10 20 30 255]; got %v at %d", out[i:i+4], i/4)
		}
	}

	if ctx.ReadFramebuffer != 0 {
		t.Fatalf("expected read framebuffer to be restored to 0; got %d", ctx.ReadFramebuffer)
	}
}

func TestClearAndReadRGB8IsTightlyPacked(t *testing.T) {

	ctx := glfake.New()

	// 3 wide RGB rows are 9 bytes, which would be padded to 12 with the default alignment
	fbo := NewFramebuffer(ctx, FramebufferSpec{Width: 3, Height: 2, Attachments: []AttachmentFormat{AttachmentFormat_ColorRGB8}})
	fbo.ClearColorAttachmentUint8(0, []uint8{1, 2, 3})

	out := make([]uint8, 3*2*3)
	fbo.ReadPixelsUint8(0, 0, 0, 3, 2, out)

	for i := 0; i < len(out); i += 3 {
		if out[i] != 1 || out[i+1] != 2 || out[i+2] != 3 {
			t.Fatalf("expected tightly packed [1 2 3] texels; got %v", out)
		}
	}
}

func TestClearAndReadInt32(t *testing.T) {

	ctx := glfake.New()
	fbo := NewFramebuffer(ctx, FramebufferSpec{
		Width:       5,
		Height:      5,
		Attachments: []AttachmentFormat{AttachmentFormat_ColorRGBA8, AttachmentFormat_SignedInt32, AttachmentFormat_Depth},
	})

	fbo.ClearColorAttachmentUint8(0, []uint8{0, 0, 0, 0})
	fbo.ClearColorAttachmentInt32(1, []int32{-1})

	out := make([]int32, 1)
	fbo.ReadPixelsInt32(1, 2, 3, 1, 1, out)
	if out[0] != -1 {
		t.Fatalf("expected id -1 after clear; got %d", out[0])
	}

	// Slot 0 must be untouched by the int clear
	color := make([]uint8, 4)
	fbo.ReadPixelsUint8(0, 2, 3, 1, 1, color)
	if color[0] != 0 || color[3] != 0 {
		t.Fatalf("expected slot 0 to keep its clear value; got %v", color)
	}

	// Write an id into one texel the way a draw would
	ctx.Texture(fbo.GetColorAttachment(1)).Texel(2, 3)[0] = 42

	fbo.ReadPixelsInt32(1, 2, 3, 1, 1, out)
	if out[0] != 42 {
		t.Fatalf("expected id 42 at (2, 3); got %d", out[0])
	}

	fakeFbo := ctx.Framebuffer(fbo.Id)
	if fakeFbo.ReadBuffer != gl.COLOR_ATTACHMENT1 {
		t.Fatalf("expected read buffer COLOR_ATTACHMENT1 after reading slot 1; got 0x%x", fakeFbo.ReadBuffer)
	}
}

func TestClearAndReadUnsignedInt32(t *testing.T) {

	ctx := glfake.New()
	fbo := NewFramebuffer(ctx, FramebufferSpec{
		Width:       2,
		Height:      2,
		Attachments: []AttachmentFormat{AttachmentFormat_UnsignedInt32},
	})

	fbo.ClearColorAttachmentInt32(0, []int32{7})

	out := make([]int32, 4)
	fbo.ReadPixelsInt32(0, 0, 0, 2, 2, out)
	for i, v := range out {
		if v != 7 {
			t.Fatalf("expected 7 at index %d; got %d", i, v)
		}
	}
}

func TestClearAndReadByteFormats(t *testing.T) {

	tests := []struct {
		format AttachmentFormat
		value  uint8
	}{
		{AttachmentFormat_UnsignedByte, 200},
		{AttachmentFormat_SignedByte, 0x7f},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {

			ctx := glfake.New()
			fbo := NewFramebuffer(ctx, FramebufferSpec{
				Width:       3,
				Height:      2,
				Attachments: []AttachmentFormat{AttachmentFormat_ColorRGBA8, tt.format},
			})

			fbo.ClearColorAttachmentUint8(1, []uint8{tt.value})

			// Odd widths would be padded to 4 bytes per row without tight packing
			out := make([]uint8, 3*2)
			fbo.ReadPixelsUint8(1, 0, 0, 3, 2, out)

			for i, v := range out {
				if v != tt.value {
					t.Fatalf("expected %d at index %d; got %d (all: %v)", tt.value, i, v, out)
				}
			}

			info, _ := fbo.GetColorAttachmentInfo(1)
			if info.GlFormat != gl.RED_INTEGER {
				t.Fatalf("expected RED_INTEGER transfer format; got 0x%x", info.GlFormat)
			}
		})
	}
}

func TestReadPixelsRestoresCallerState(t *testing.T) {

	ctx := glfake.New()
	fbo := NewFramebuffer(ctx, FramebufferSpec{
		Width:       4,
		Height:      4,
		Attachments: []AttachmentFormat{AttachmentFormat_ColorRGBA8, AttachmentFormat_SignedInt32},
	})

	fbo.ClearColorAttachmentInt32(1, []int32{9})

	fbo.Bind()
	ctx.PixelStorei(gl.PACK_ALIGNMENT, 8)

	out := make([]int32, 1)
	fbo.ReadPixelsInt32(1, 1, 1, 1, 1, out)
	if out[0] != 9 {
		t.Fatalf("expected 9; got %d", out[0])
	}

	if ctx.DrawFramebuffer != fbo.Id || ctx.ReadFramebuffer != fbo.Id {
		t.Fatalf("expected draw and read to stay on framebuffer %d; got draw=%d read=%d", fbo.Id, ctx.DrawFramebuffer, ctx.ReadFramebuffer)
	}

	if ctx.PackAlignment != 8 {
		t.Fatalf("expected pack alignment 8 to be restored; got %d", ctx.PackAlignment)
	}

	fbo.UnBind()
	fbo.ReadPixelsInt32(1, 0, 0, 1, 1, out)
	if ctx.ReadFramebuffer != 0 || ctx.DrawFramebuffer != 0 {
		t.Fatalf("expected the default framebuffer to stay bound; got draw=%d read=%d", ctx.DrawFramebuffer, ctx.ReadFramebuffer)
	}
}

func TestShortBuffersAreFatal(t *testing.T) {

	ctx := glfake.New()
	fbo := NewFramebuffer(ctx, FramebufferSpec{Width: 2, Height: 2, Attachments: []AttachmentFormat{AttachmentFormat_ColorRGBA8}})

	expectFatal(t, "clear value", func() {
		fbo.ClearColorAttachmentUint8(0, []uint8{1, 2})
	})

	expectFatal(t, "read buffer", func() {
		fbo.ReadPixelsUint8(0, 0, 0, 2, 2, make([]uint8, 15))
	})
}

func TestBadIndexPanics(t *testing.T) {

	ctx := glfake.New()
	fbo := NewFramebuffer(ctx, FramebufferSpec{Width: 2, Height: 2, Attachments: []AttachmentFormat{AttachmentFormat_ColorRGBA8}})

	defer func() {
		if recover() == nil {
			t.Fatalf("expected out of range slot to panic")
		}
	}()

	fbo.ClearColorAttachmentUint8(3, []uint8{0, 0, 0, 0})
}
