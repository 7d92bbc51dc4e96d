package buffers

import (
	"fmt"
	"strings"

	"github.com/bloeys/nframe/logging"
	"github.com/go-gl/gl/v4.5-core/gl"
)

// AttachmentFormat is the logical pixel format requested for one framebuffer attachment
type AttachmentFormat int32

const (
	AttachmentFormat_Unknown AttachmentFormat = iota
	AttachmentFormat_ColorRGBA8
	AttachmentFormat_ColorRGB8
	AttachmentFormat_UnsignedByte
	AttachmentFormat_SignedByte
	AttachmentFormat_UnsignedInt32
	AttachmentFormat_SignedInt32
	AttachmentFormat_Depth
)

var attachmentFormatNames = [...]string{
	AttachmentFormat_Unknown:       "Unknown",
	AttachmentFormat_ColorRGBA8:    "ColorRGBA8",
	AttachmentFormat_ColorRGB8:     "ColorRGB8",
	AttachmentFormat_UnsignedByte:  "UnsignedByte",
	AttachmentFormat_SignedByte:    "SignedByte",
	AttachmentFormat_UnsignedInt32: "UnsignedInt32",
	AttachmentFormat_SignedInt32:   "SignedInt32",
	AttachmentFormat_Depth:         "Depth",
}

func (f AttachmentFormat) IsValid() bool {
	return f > AttachmentFormat_Unknown && f <= AttachmentFormat_Depth
}

func (f AttachmentFormat) IsColorFormat() bool {
	return f.IsValid() && f != AttachmentFormat_Depth
}

func (f AttachmentFormat) IsDepthFormat() bool {
	return f == AttachmentFormat_Depth
}

// GlInternalFormat is the storage format of the texture backing the attachment
func (f AttachmentFormat) GlInternalFormat() int32 {

	switch f {
	case AttachmentFormat_ColorRGBA8:
		return gl.RGBA8
	case AttachmentFormat_ColorRGB8:
		return gl.RGB8
	case AttachmentFormat_UnsignedByte:
		return gl.R8UI
	case AttachmentFormat_SignedByte:
		return gl.R8I
	case AttachmentFormat_UnsignedInt32:
		return gl.R32UI
	case AttachmentFormat_SignedInt32:
		return gl.R32I
	case AttachmentFormat_Depth:
		return gl.DEPTH_COMPONENT

	default:
		logging.ErrLog.Fatalf("unknown framebuffer attachment format. Format=%d\n", f)
		return 0
	}
}

// GlFormat is the transfer format used when uploading, clearing or reading the attachment
func (f AttachmentFormat) GlFormat() uint32 {

	switch f {
	case AttachmentFormat_ColorRGBA8:
		return gl.RGBA
	case AttachmentFormat_ColorRGB8:
		return gl.RGB

	case AttachmentFormat_UnsignedByte:
		fallthrough
	case AttachmentFormat_SignedByte:
		fallthrough
	case AttachmentFormat_UnsignedInt32:
		fallthrough
	case AttachmentFormat_SignedInt32:
		return gl.RED_INTEGER

	case AttachmentFormat_Depth:
		return gl.DEPTH_COMPONENT

	default:
		logging.ErrLog.Fatalf("unknown framebuffer attachment format. Format=%d\n", f)
		return 0
	}
}

// GlCreationType is the transfer type passed when allocating the attachment storage.
// Only depth differs, and it is never used for typed clears or reads.
func (f AttachmentFormat) GlCreationType() uint32 {

	if f == AttachmentFormat_Depth {
		return gl.FLOAT
	}

	return gl.UNSIGNED_BYTE
}

// ChannelCount is the number of elements per texel in the transfer format
func (f AttachmentFormat) ChannelCount() int {
	return transferChannelCount(f.GlFormat())
}

func transferChannelCount(glFormat uint32) int {

	switch glFormat {
	case gl.RGBA:
		return 4
	case gl.RGB:
		return 3
	default:
		return 1
	}
}

func (f AttachmentFormat) String() string {

	if f < 0 || int(f) >= len(attachmentFormatNames) {
		return fmt.Sprintf("AttachmentFormat(%d)", int32(f))
	}

	return attachmentFormatNames[f]
}

func (f AttachmentFormat) MarshalText() ([]byte, error) {

	if !f.IsValid() {
		return nil, fmt.Errorf("can not marshal invalid attachment format %d", int32(f))
	}

	return []byte(f.String()), nil
}

// UnmarshalText accepts the format names case insensitively, e.g. "ColorRGBA8" or "depth"
func (f *AttachmentFormat) UnmarshalText(text []byte) error {

	parsed, err := ParseAttachmentFormat(string(text))
	if err != nil {
		return err
	}

	*f = parsed
	return nil
}

func ParseAttachmentFormat(s string) (AttachmentFormat, error) {

	s = strings.TrimSpace(s)
	for i := AttachmentFormat_ColorRGBA8; i <= AttachmentFormat_Depth; i++ {
		if strings.EqualFold(s, attachmentFormatNames[i]) {
			return i, nil
		}
	}

	return AttachmentFormat_Unknown, fmt.Errorf("unknown attachment format '%s'", s)
}
