package textures

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// WritePNG saves tightly packed RGBA bytes as a png file.
// Pass bottomUp for data read back from the GPU, whose first row is the bottom of the image.
func WritePNG(path string, width, height int, rgba []byte, bottomUp bool) error {

	if width <= 0 || height <= 0 || len(rgba) < width*height*4 {
		return fmt.Errorf("can not write png '%s': %d bytes is not a %dx%d RGBA image", path, len(rgba), width, height)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, rgba[:width*height*4])

	if bottomUp {
		flipRows(img)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create png '%s': %w", path, err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode png '%s': %w", path, err)
	}

	return f.Close()
}
