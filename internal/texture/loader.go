package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"
)

// Load reads a texture file and returns an NRGBA image. DDS containers are
// decompressed; anything else goes through the registered raster decoders
// (PNG, JPEG, TGA). A missing file or malformed container is an error; the
// pipeline treats both as fatal.
func Load(path string) (*image.NRGBA, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".dds") {
		img, err := DecodeDDS(raw)
		if err != nil {
			return nil, fmt.Errorf("texture: %s: %w", path, err)
		}
		return img, nil
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	return toNRGBA(img), nil
}

// toNRGBA converts any image to NRGBA format.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	return dst
}

// FlatColor reduces an image to a single averaged pixel and returns its
// color channels normalized to the 0.0-1.0 range.
func FlatColor(img *image.NRGBA) [3]float64 {
	pixel := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	draw.CatmullRom.Scale(pixel, pixel.Bounds(), img, img.Bounds(), draw.Src, nil)
	return [3]float64{
		float64(pixel.Pix[0]) / 255,
		float64(pixel.Pix[1]) / 255,
		float64(pixel.Pix[2]) / 255,
	}
}

// SwapMRAOChannels reorders a combined metallic/roughness/occlusion image in
// place from (metallic, roughness, occlusion, alpha) to (occlusion,
// roughness, metallic, alpha).
func SwapMRAOChannels(img *image.NRGBA) {
	for i := 0; i+3 < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+2] = img.Pix[i+2], img.Pix[i]
	}
}
