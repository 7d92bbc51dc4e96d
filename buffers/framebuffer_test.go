package buffers

import (
	"strings"
	"testing"

	"github.com/bloeys/nframe/glapi/glfake"
	"github.com/go-gl/gl/v4.5-core/gl"
)

func expectFatal(t *testing.T, contains string, fn func()) {
	t.Helper()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected a fatal assert containing '%s'; got none", contains)
		}

		msg, _ := r.(string)
		if !strings.Contains(msg, contains) {
			t.Fatalf("expected fatal assert to contain '%s'; got '%v'", contains, r)
		}
	}()

	fn()
}

func TestFramebufferSlotsFollowColorEntries(t *testing.T) {

	colorFormats := []AttachmentFormat{
		AttachmentFormat_ColorRGBA8,
		AttachmentFormat_UnsignedInt32,
		AttachmentFormat_ColorRGB8,
		AttachmentFormat_SignedByte,
	}

	for colorCount := 0; colorCount <= MaxColorAttachments; colorCount++ {
		for _, withDepth := range []bool{false, true} {

			ctx := glfake.New()

			formats := append([]AttachmentFormat(nil), colorFormats[:colorCount]...)
			if withDepth {
				// Depth in the middle must not take a color slot
				formats = append(formats[:colorCount/2], append([]AttachmentFormat{AttachmentFormat_Depth}, formats[colorCount/2:]...)...)
			}

			if len(formats) == 0 {
				continue
			}

			fbo := NewFramebuffer(ctx, FramebufferSpec{Width: 8, Height: 4, Attachments: formats})

			if fbo.ColorAttachmentCount() != colorCount {
				t.Fatalf("expected %d color attachments; got %d", colorCount, fbo.ColorAttachmentCount())
			}

			if fbo.HasDepthAttachment() != withDepth {
				t.Fatalf("expected HasDepthAttachment=%v; got %v", withDepth, fbo.HasDepthAttachment())
			}

			fakeFbo := ctx.Framebuffer(fbo.Id)
			for slot := 0; slot < colorCount; slot++ {

				info, ok := fbo.GetColorAttachmentInfo(slot)
				if !ok {
					t.Fatalf("expected color attachment in slot %d", slot)
				}

				if info.Format != colorFormats[slot] {
					t.Fatalf("expected slot %d to have format %s; got %s", slot, colorFormats[slot], info.Format)
				}

				attached := fakeFbo.Attachments[gl.COLOR_ATTACHMENT0+uint32(slot)]
				if attached != info.Id {
					t.Fatalf("expected texture %d attached to COLOR_ATTACHMENT%d; got %d", info.Id, slot, attached)
				}

				tex := ctx.Texture(info.Id)
				if tex.InternalFormat != colorFormats[slot].GlInternalFormat() {
					t.Fatalf("expected slot %d storage 0x%x; got 0x%x", slot, colorFormats[slot].GlInternalFormat(), tex.InternalFormat)
				}

				if tex.Params[gl.TEXTURE_MIN_FILTER] != gl.NEAREST || tex.Params[gl.TEXTURE_WRAP_S] != gl.CLAMP_TO_EDGE {
					t.Fatalf("expected nearest filtering and clamp to edge on slot %d; got %v", slot, tex.Params)
				}
			}

			if withDepth && fakeFbo.Attachments[gl.DEPTH_ATTACHMENT] != fbo.GetDepthAttachment() {
				t.Fatalf("expected depth texture %d attached; got %d", fbo.GetDepthAttachment(), fakeFbo.Attachments[gl.DEPTH_ATTACHMENT])
			}

			if colorCount > 0 && len(fakeFbo.DrawBuffers) != colorCount {
				t.Fatalf("expected %d draw buffers; got %v", colorCount, fakeFbo.DrawBuffers)
			}

			if ctx.DrawFramebuffer != 0 || ctx.BoundTexture(gl.TEXTURE_2D) != 0 {
				t.Fatalf("expected framebuffer and texture to be unbound after create; got fbo=%d tex=%d", ctx.DrawFramebuffer, ctx.BoundTexture(gl.TEXTURE_2D))
			}
		}
	}
}

func TestFramebufferColorIdDepth(t *testing.T) {

	ctx := glfake.New()
	fbo := NewFramebuffer(ctx, FramebufferSpec{
		Width:  256,
		Height: 256,
		Attachments: []AttachmentFormat{
			AttachmentFormat_ColorRGBA8,
			AttachmentFormat_UnsignedInt32,
			AttachmentFormat_Depth,
		},
	})
	defer fbo.Delete()

	if fbo.ColorAttachmentCount() != 2 {
		t.Fatalf("expected 2 color attachments; got %d", fbo.ColorAttachmentCount())
	}

	if !fbo.HasDepthAttachment() {
		t.Fatalf("expected a depth attachment")
	}

	if !fbo.IsComplete() {
		t.Fatalf("expected framebuffer to be complete")
	}

	slot1, _ := fbo.GetColorAttachmentInfo(1)
	if slot1.InternalFormat != gl.R32UI || slot1.GlFormat != gl.RED_INTEGER {
		t.Fatalf("expected slot 1 to be R32UI/RED_INTEGER; got 0x%x/0x%x", slot1.InternalFormat, slot1.GlFormat)
	}

	w, h := ctx.TextureSize(fbo.GetColorAttachment(0))
	if w != 256 || h != 256 {
		t.Fatalf("expected attachment size 256x256; got %dx%d", w, h)
	}

	if ctx.LiveTextureCount() != 3 {
		t.Fatalf("expected 3 live textures; got %d", ctx.LiveTextureCount())
	}
}

func TestFramebufferGetColorAttachmentOutOfRange(t *testing.T) {

	ctx := glfake.New()
	fbo := NewFramebuffer(ctx, FramebufferSpec{Width: 4, Height: 4, Attachments: []AttachmentFormat{AttachmentFormat_ColorRGBA8}})

	for _, index := range []int{-1, 1, 4, 100} {
		if id := fbo.GetColorAttachment(index); id != NoAttachment {
			t.Fatalf("expected NoAttachment for index %d; got %d", index, id)
		}

		if _, ok := fbo.GetColorAttachmentInfo(index); ok {
			t.Fatalf("expected no attachment info for index %d", index)
		}
	}

	if fbo.GetColorAttachment(0) == NoAttachment {
		t.Fatalf("expected a valid attachment in slot 0")
	}
}

func TestFramebufferDepthOnly(t *testing.T) {

	ctx := glfake.New()
	fbo := NewFramebuffer(ctx, FramebufferSpec{Width: 16, Height: 16, Attachments: []AttachmentFormat{AttachmentFormat_Depth}})

	if fbo.HasColorAttachment() {
		t.Fatalf("expected no color attachments")
	}

	fakeFbo := ctx.Framebuffer(fbo.Id)
	if len(fakeFbo.DrawBuffers) != 1 || fakeFbo.DrawBuffers[0] != gl.NONE {
		t.Fatalf("expected draw buffer NONE; got %v", fakeFbo.DrawBuffers)
	}

	if fakeFbo.ReadBuffer != gl.NONE {
		t.Fatalf("expected read buffer NONE; got 0x%x", fakeFbo.ReadBuffer)
	}

	if fbo.GetColorAttachment(0) != NoAttachment {
		t.Fatalf("expected NoAttachment for slot 0 of a depth only framebuffer")
	}
}

func TestFramebufferResize(t *testing.T) {

	ctx := glfake.New()
	fbo := NewFramebuffer(ctx, FramebufferSpec{
		Width:       64,
		Height:      32,
		Attachments: []AttachmentFormat{AttachmentFormat_ColorRGBA8, AttachmentFormat_SignedInt32, AttachmentFormat_Depth},
	})

	oldFbo := fbo.Id
	oldColor := fbo.GetColorAttachment(0)
	oldDepth := fbo.GetDepthAttachment()

	fbo.Resize(128, 96)

	if fbo.Width() != 128 || fbo.Height() != 96 {
		t.Fatalf("expected spec size 128x96; got %dx%d", fbo.Width(), fbo.Height())
	}

	if fbo.Id == oldFbo || ctx.Framebuffer(oldFbo) != nil {
		t.Fatalf("expected old framebuffer %d to be replaced and deleted; now %d", oldFbo, fbo.Id)
	}

	if ctx.Texture(oldColor) != nil || ctx.Texture(oldDepth) != nil {
		t.Fatalf("expected old attachment textures to be deleted")
	}

	if fbo.ColorAttachmentCount() != 2 || !fbo.HasDepthAttachment() {
		t.Fatalf("expected same attachment layout after resize; got %d color, depth=%v", fbo.ColorAttachmentCount(), fbo.HasDepthAttachment())
	}

	for i := 0; i < fbo.ColorAttachmentCount(); i++ {
		w, h := ctx.TextureSize(fbo.GetColorAttachment(i))
		if w != 128 || h != 96 {
			t.Fatalf("expected slot %d to be 128x96 after resize; got %dx%d", i, w, h)
		}
	}

	if ctx.LiveFramebufferCount() != 1 || ctx.LiveTextureCount() != 3 {
		t.Fatalf("expected 1 framebuffer and 3 textures alive; got %d and %d", ctx.LiveFramebufferCount(), ctx.LiveTextureCount())
	}

	if !fbo.IsComplete() {
		t.Fatalf("expected framebuffer to be complete after resize")
	}
}

func TestFramebufferCreateTwiceReleasesOld(t *testing.T) {

	ctx := glfake.New()
	fbo := &Framebuffer{}
	fbo.SetSpec(FramebufferSpec{Width: 8, Height: 8, Attachments: []AttachmentFormat{AttachmentFormat_ColorRGBA8}})

	fbo.Create(ctx)
	fbo.Create(ctx)

	if ctx.LiveFramebufferCount() != 1 || ctx.LiveTextureCount() != 1 {
		t.Fatalf("expected 1 framebuffer and 1 texture alive; got %d and %d", ctx.LiveFramebufferCount(), ctx.LiveTextureCount())
	}
}

func TestFramebufferSpecIsCopied(t *testing.T) {

	formats := []AttachmentFormat{AttachmentFormat_ColorRGBA8}

	ctx := glfake.New()
	fbo := NewFramebuffer(ctx, FramebufferSpec{Width: 8, Height: 8, Attachments: formats})
	formats[0] = AttachmentFormat_Depth

	if fbo.Spec().Attachments[0] != AttachmentFormat_ColorRGBA8 {
		t.Fatalf("expected spec to be unaffected by changes to the caller's slice; got %v", fbo.Spec().Attachments)
	}
}

func TestFramebufferDelete(t *testing.T) {

	ctx := glfake.New()
	fbo := NewFramebuffer(ctx, FramebufferSpec{
		Width:       8,
		Height:      8,
		Attachments: []AttachmentFormat{AttachmentFormat_ColorRGBA8, AttachmentFormat_Depth},
	})

	fbo.Delete()
	fbo.Delete()

	if ctx.LiveFramebufferCount() != 0 || ctx.LiveTextureCount() != 0 {
		t.Fatalf("expected everything deleted; got %d framebuffers and %d textures", ctx.LiveFramebufferCount(), ctx.LiveTextureCount())
	}

	if len(ctx.DeletedFramebuffers) != 1 || len(ctx.DeletedTextures) != 2 {
		t.Fatalf("expected each object deleted exactly once; got %v and %v", ctx.DeletedFramebuffers, ctx.DeletedTextures)
	}

	if ctx.ZeroDeletes != 0 {
		t.Fatalf("expected no deletes of the zero name; got %d", ctx.ZeroDeletes)
	}

	if fbo.Id != 0 || fbo.HasColorAttachment() || fbo.HasDepthAttachment() {
		t.Fatalf("expected deleted framebuffer to hold no handles")
	}
}

func TestFramebufferDeleteNeverCreated(t *testing.T) {

	ctx := glfake.New()
	other := NewFramebuffer(ctx, FramebufferSpec{Width: 8, Height: 8, Attachments: []AttachmentFormat{AttachmentFormat_ColorRGBA8}})

	fbo := &Framebuffer{}
	fbo.Delete()

	if ctx.ZeroDeletes != 0 {
		t.Fatalf("expected no deletes of the zero name; got %d", ctx.ZeroDeletes)
	}

	if ctx.LiveFramebufferCount() != 1 || ctx.LiveTextureCount() != 1 {
		t.Fatalf("expected the other framebuffer to be untouched")
	}

	other.Delete()
}

func TestFramebufferFatalPaths(t *testing.T) {

	t.Run("incomplete", func(t *testing.T) {
		ctx := glfake.New()
		ctx.ForceIncomplete = true

		expectFatal(t, "not complete", func() {
			NewFramebuffer(ctx, FramebufferSpec{Width: 8, Height: 8, Attachments: []AttachmentFormat{AttachmentFormat_ColorRGBA8}})
		})
	})

	t.Run("too many colors", func(t *testing.T) {
		formats := make([]AttachmentFormat, MaxColorAttachments+1)
		for i := range formats {
			formats[i] = AttachmentFormat_ColorRGBA8
		}

		expectFatal(t, "color attachments", func() {
			NewFramebuffer(glfake.New(), FramebufferSpec{Width: 8, Height: 8, Attachments: formats})
		})
	})

	t.Run("two depths", func(t *testing.T) {
		expectFatal(t, "depth attachments", func() {
			NewFramebuffer(glfake.New(), FramebufferSpec{Width: 8, Height: 8, Attachments: []AttachmentFormat{AttachmentFormat_Depth, AttachmentFormat_Depth}})
		})
	})

	t.Run("zero size", func(t *testing.T) {
		expectFatal(t, "size must be positive", func() {
			NewFramebuffer(glfake.New(), FramebufferSpec{Width: 0, Height: 8, Attachments: []AttachmentFormat{AttachmentFormat_ColorRGBA8}})
		})
	})
}

func TestFramebufferBindWithViewport(t *testing.T) {

	ctx := glfake.New()
	fbo := NewFramebuffer(ctx, FramebufferSpec{Width: 320, Height: 200, Attachments: []AttachmentFormat{AttachmentFormat_ColorRGBA8}})

	fbo.BindWithViewport()
	if ctx.DrawFramebuffer != fbo.Id || ctx.LastViewport != [4]int32{0, 0, 320, 200} {
		t.Fatalf("expected fbo %d bound with viewport 320x200; got fbo %d viewport %v", fbo.Id, ctx.DrawFramebuffer, ctx.LastViewport)
	}

	fbo.UnBindWithViewport(800, 600)
	if ctx.DrawFramebuffer != 0 || ctx.LastViewport != [4]int32{0, 0, 800, 600} {
		t.Fatalf("expected default framebuffer with viewport 800x600; got fbo %d viewport %v", ctx.DrawFramebuffer, ctx.LastViewport)
	}
}
