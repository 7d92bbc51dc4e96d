package buffers

import (
	"testing"

	"github.com/go-gl/gl/v4.5-core/gl"
)

func TestAttachmentFormatMapping(t *testing.T) {

	tests := []struct {
		format         AttachmentFormat
		internalFormat int32
		glFormat       uint32
		channels       int
	}{
		{AttachmentFormat_ColorRGBA8, gl.RGBA8, gl.RGBA, 4},
		{AttachmentFormat_ColorRGB8, gl.RGB8, gl.RGB, 3},
		{AttachmentFormat_UnsignedByte, gl.R8UI, gl.RED_INTEGER, 1},
		{AttachmentFormat_SignedByte, gl.R8I, gl.RED_INTEGER, 1},
		{AttachmentFormat_UnsignedInt32, gl.R32UI, gl.RED_INTEGER, 1},
		{AttachmentFormat_SignedInt32, gl.R32I, gl.RED_INTEGER, 1},
		{AttachmentFormat_Depth, gl.DEPTH_COMPONENT, gl.DEPTH_COMPONENT, 1},
	}

	for _, tt := range tests {

		if got := tt.format.GlInternalFormat(); got != tt.internalFormat {
			t.Errorf("%s: expected internal format 0x%x; got 0x%x", tt.format, tt.internalFormat, got)
		}

		if got := tt.format.GlFormat(); got != tt.glFormat {
			t.Errorf("%s: expected format 0x%x; got 0x%x", tt.format, tt.glFormat, got)
		}

		if got := tt.format.ChannelCount(); got != tt.channels {
			t.Errorf("%s: expected %d channels; got %d", tt.format, tt.channels, got)
		}

		expectedType := uint32(gl.UNSIGNED_BYTE)
		if tt.format == AttachmentFormat_Depth {
			expectedType = gl.FLOAT
		}

		if got := tt.format.GlCreationType(); got != expectedType {
			t.Errorf("%s: expected creation type 0x%x; got 0x%x", tt.format, expectedType, got)
		}

		if tt.format.IsColorFormat() == tt.format.IsDepthFormat() {
			t.Errorf("%s: expected exactly one of color/depth", tt.format)
		}
	}

	if AttachmentFormat_Unknown.IsValid() || AttachmentFormat_Unknown.IsColorFormat() {
		t.Fatalf("expected unknown format to be neither valid nor color")
	}
}

func TestParseAttachmentFormat(t *testing.T) {

	f, err := ParseAttachmentFormat(" signedint32 ")
	if err != nil {
		t.Fatal(err)
	}

	if f != AttachmentFormat_SignedInt32 {
		t.Fatalf("expected SignedInt32; got %s", f)
	}

	if _, err := ParseAttachmentFormat("Unknown"); err == nil {
		t.Fatalf("expected error when parsing 'Unknown'")
	}

	if _, err := ParseAttachmentFormat("RGBA16F"); err == nil {
		t.Fatalf("expected error when parsing an unsupported format")
	}
}

func TestAttachmentFormatText(t *testing.T) {

	var f AttachmentFormat
	if err := f.UnmarshalText([]byte("Depth")); err != nil || f != AttachmentFormat_Depth {
		t.Fatalf("expected Depth with no error; got %s and %v", f, err)
	}

	if _, err := AttachmentFormat_Unknown.MarshalText(); err == nil {
		t.Fatalf("expected error marshalling the unknown format")
	}

	if s := AttachmentFormat(99).String(); s != "AttachmentFormat(99)" {
		t.Fatalf("expected 'AttachmentFormat(99)'; got '%s'", s)
	}
}
