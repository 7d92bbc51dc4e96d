package buffers

import (
	"github.com/bloeys/nframe/logging"
	"github.com/go-gl/gl/v4.5-core/gl"
)

// BufUsage is a hint on how often a buffer's data changes.
// Full docs can be found here: https://registry.khronos.org/OpenGL-Refpages/gl4/html/glBufferData.xhtml
type BufUsage int

const (
	BufUsage_Unknown BufUsage = iota

	// Set once and drawn many times (e.g. the screen quad)
	BufUsage_Static_Draw

	// Changed a lot and drawn many times
	BufUsage_Dynamic_Draw

	// Set once and drawn at most a few times (e.g. ui vertices rebuilt every frame)
	BufUsage_Stream_Draw
)

func (b BufUsage) ToGL() uint32 {

	switch b {
	case BufUsage_Static_Draw:
		return gl.STATIC_DRAW
	case BufUsage_Dynamic_Draw:
		return gl.DYNAMIC_DRAW
	case BufUsage_Stream_Draw:
		return gl.STREAM_DRAW

	default:
		logging.ErrLog.Fatalf("unexpected BufUsage value '%d'\n", b)
		return 0
	}
}
