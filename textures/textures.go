package textures

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"runtime"
	"unsafe"

	"github.com/bloeys/nframe/assert"
	"github.com/bloeys/nframe/glapi"
	"github.com/bloeys/nframe/logging"
	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/google/uuid"
	"github.com/mandykoh/prism"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var ErrUnsupportedImage = errors.New("unsupported image format")

type TextureLoadOptions struct {
	// NoFlip keeps the image rows in file order. By default rows are flipped so that
	// the first row of the file ends up at the top when sampled with GL texture coordinates.
	NoFlip bool

	NoMipmaps bool

	// Srgba stores the texture as sRGB so sampling returns linear colors
	Srgba bool

	// KeepPixels retains the uploaded RGBA bytes in Texture.Pixels
	KeepPixels bool
}

// Texture is an RGBA 2D texture. Every method requires the graphics context to be current on the calling thread.
type Texture struct {
	Id uint32

	// Name is the file path for loaded textures, and a generated label otherwise
	Name string

	Width  int32
	Height int32

	// Pixels is only set when loaded with KeepPixels
	Pixels []byte

	ctx glapi.Context
}

// NewTexture creates a blank RGBA8 texture with nearest filtering that clamps to edge
func NewTexture(ctx glapi.Context, width, height int32) *Texture {

	assert.T(ctx != nil, "texture created without a graphics context")
	assert.T(width > 0 && height > 0, "texture size must be positive. Width=%d, Height=%d", width, height)

	tex := &Texture{
		Name:   "tex-" + uuid.NewString()[:8],
		Width:  width,
		Height: height,
		ctx:    ctx,
	}

	tex.gen()
	ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	ctx.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, width, height, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	tex.UnBind()

	return tex
}

// LoadTexture decodes a png, jpeg, gif, bmp, tiff or webp file and uploads it
func LoadTexture(ctx glapi.Context, path string, opts *TextureLoadOptions) (*Texture, error) {

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture file '%s': %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("failed to decode texture file '%s': %w", path, ErrUnsupportedImage)
		}

		return nil, fmt.Errorf("failed to decode texture file '%s': %w", path, err)
	}

	tex := LoadTextureFromImage(ctx, img, opts)
	tex.Name = path

	logging.InfoLog.Infof("loaded texture '%s' (%dx%d)", path, tex.Width, tex.Height)
	return tex, nil
}

// LoadTextureFromImage uploads an already decoded image the same way LoadTexture does
func LoadTextureFromImage(ctx glapi.Context, img image.Image, opts *TextureLoadOptions) *Texture {

	assert.T(ctx != nil, "texture created without a graphics context")

	if opts == nil {
		opts = &TextureLoadOptions{}
	}

	nrgba := prism.ConvertImageToNRGBA(img, runtime.NumCPU())

	// Never flip the caller's image, and uploads expect rows without padding
	if src, ok := img.(*image.NRGBA); (ok && src == nrgba) || nrgba.Stride != nrgba.Rect.Dx()*4 {
		nrgba = tightCopy(nrgba)
	}

	if !opts.NoFlip {
		flipRows(nrgba)
	}

	size := nrgba.Rect.Size()
	tex := &Texture{
		Name:   "tex-" + uuid.NewString()[:8],
		Width:  int32(size.X),
		Height: int32(size.Y),
		ctx:    ctx,
	}

	tex.gen()
	ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	if opts.NoMipmaps {
		ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	} else {
		ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	}

	internalFormat := int32(gl.RGBA8)
	if opts.Srgba {
		internalFormat = gl.SRGB8_ALPHA8
	}

	var pixels unsafe.Pointer
	if len(nrgba.Pix) > 0 {
		pixels = unsafe.Pointer(&nrgba.Pix[0])
	}

	ctx.TexImage2D(gl.TEXTURE_2D, 0, internalFormat, tex.Width, tex.Height, gl.RGBA, gl.UNSIGNED_BYTE, pixels)

	if !opts.NoMipmaps {
		ctx.GenerateMipmap(gl.TEXTURE_2D)
	}

	tex.UnBind()

	if opts.KeepPixels {
		tex.Pixels = nrgba.Pix
	}

	return tex
}

func (tex *Texture) gen() {

	tex.Id = tex.ctx.GenTexture()
	if tex.Id == 0 {
		logging.ErrLog.Fatalf("failed to generate texture. GlError=%d\n", tex.ctx.GetError())
	}

	tex.Bind()
}

func tightCopy(src *image.NRGBA) *image.NRGBA {

	dst := image.NewNRGBA(image.Rect(0, 0, src.Rect.Dx(), src.Rect.Dy()))
	for y := 0; y < dst.Rect.Dy(); y++ {
		srcStart := y * src.Stride
		copy(dst.Pix[y*dst.Stride:(y+1)*dst.Stride], src.Pix[srcStart:srcStart+dst.Stride])
	}

	return dst
}

// flipRows mirrors img vertically in place
func flipRows(img *image.NRGBA) {

	h := img.Rect.Dy()
	rowLen := img.Rect.Dx() * 4
	tmp := make([]byte, rowLen)

	for top, bottom := 0, h-1; top < bottom; top, bottom = top+1, bottom-1 {

		topRow := img.Pix[top*img.Stride : top*img.Stride+rowLen]
		bottomRow := img.Pix[bottom*img.Stride : bottom*img.Stride+rowLen]

		copy(tmp, topRow)
		copy(topRow, bottomRow)
		copy(bottomRow, tmp)
	}
}

func (tex *Texture) Bind() {
	tex.ctx.BindTexture(gl.TEXTURE_2D, tex.Id)
}

func (tex *Texture) UnBind() {
	tex.ctx.BindTexture(gl.TEXTURE_2D, 0)
}

// Active binds the texture to texture unit 'slot' (e.g. 0 for gl.TEXTURE0).
// The unit stays active after the call.
func (tex *Texture) Active(slot uint32) {
	tex.ctx.ActiveTexture(gl.TEXTURE0 + slot)
	tex.ctx.BindTexture(gl.TEXTURE_2D, tex.Id)
}

// SetPixels replaces the bottom left width*height region with tightly packed RGBA bytes
func (tex *Texture) SetPixels(width, height int32, rgba []byte) {

	assert.T(width <= tex.Width && height <= tex.Height, "SetPixels region %dx%d is larger than texture '%s' (%dx%d)", width, height, tex.Name, tex.Width, tex.Height)
	assert.T(len(rgba) >= int(width)*int(height)*4, "SetPixels got %d bytes but a %dx%d RGBA region needs %d", len(rgba), width, height, int(width)*int(height)*4)

	if len(rgba) == 0 {
		return
	}

	tex.Bind()
	tex.ctx.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, width, height, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&rgba[0]))
	tex.UnBind()
}

// Delete releases the texture. Calling it more than once is a no-op.
func (tex *Texture) Delete() {

	if tex.Id == 0 {
		return
	}

	tex.ctx.DeleteTexture(tex.Id)
	tex.Id = 0
	tex.Pixels = nil

	logging.InfoLog.Debugf("deleted texture '%s'", tex.Name)
}
