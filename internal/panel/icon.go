package panel

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"

	"github.com/ftrvxmtrx/tga"
)

var (
	pngMagic  = []byte("\x89PNG\r\n\x1a\n")
	jpegMagic = []byte{0xff, 0xd8, 0xff}
)

// LoadIcon decodes a png, jpeg or tga file. TGA has no magic number, so
// anything that is not png or jpeg is handed to the tga decoder.
func LoadIcon(path string) (image.Image, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("panel: read icon %s: %w", path, err)
	}
	img, err := decodeIcon(raw)
	if err != nil {
		return nil, fmt.Errorf("panel: decode icon %s: %w", path, err)
	}
	return img, nil
}

func decodeIcon(raw []byte) (image.Image, error) {
	r := bytes.NewReader(raw)
	switch {
	case bytes.HasPrefix(raw, pngMagic):
		return png.Decode(r)
	case bytes.HasPrefix(raw, jpegMagic):
		return jpeg.Decode(r)
	default:
		return tga.Decode(r)
	}
}
