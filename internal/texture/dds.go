package texture

import (
	"encoding/binary"
	"fmt"
	"image"
)

// DDS container constants.
const (
	ddsMagic      = 0x20534444 // "DDS "
	ddsHeaderSize = 128        // magic + header + pixel format
	ddsMaxDim     = 1 << 16    // no game texture comes close
)

// ddsHeader is the fixed-size DDS file header.
type ddsHeader struct {
	Magic             uint32
	Size              uint32
	Flags             uint32
	Height            uint32
	Width             uint32
	PitchOrLinearSize uint32
	Depth             uint32
	MipMapCount       uint32
	Reserved1         [11]uint32
	PixelFormat       ddsPixelFormat
	Caps              uint32
	Caps2             uint32
	Caps3             uint32
	Caps4             uint32
	Reserved2         uint32
}

type ddsPixelFormat struct {
	Size        uint32
	Flags       uint32
	FourCC      [4]byte
	RGBBitCount uint32
	RBitMask    uint32
	GBitMask    uint32
	BBitMask    uint32
	ABitMask    uint32
}

// DecodeDDS decompresses a block-compressed DDS container to an NRGBA
// buffer. Only the top mip level is decoded. A malformed header is an error;
// callers treat it as fatal for the run.
func DecodeDDS(data []byte) (*image.NRGBA, error) {
	if len(data) < ddsHeaderSize {
		return nil, fmt.Errorf("dds: file too short: %d bytes", len(data))
	}

	var header ddsHeader
	if _, err := binary.Decode(data[:ddsHeaderSize], binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("dds: read header: %w", err)
	}
	if header.Magic != ddsMagic {
		return nil, fmt.Errorf("dds: invalid magic: 0x%08x", header.Magic)
	}

	width := int(header.Width)
	height := int(header.Height)
	if width <= 0 || height <= 0 || width > ddsMaxDim || height > ddsMaxDim {
		return nil, fmt.Errorf("dds: invalid dimensions %dx%d", header.Width, header.Height)
	}

	blocks := data[ddsHeaderSize:]
	fourCC := string(header.PixelFormat.FourCC[:])
	var blockSize int
	switch fourCC {
	case "DXT1":
		blockSize = 8
	case "DXT3", "DXT5":
		blockSize = 16
	default:
		return nil, fmt.Errorf("dds: unsupported fourCC: %q", fourCC)
	}

	// The payload must cover every block the header claims before anything
	// is allocated from the declared dimensions. int64 math keeps a huge
	// width*height from wrapping.
	need := int64((width+3)/4) * int64((height+3)/4) * int64(blockSize)
	if int64(len(blocks)) < need {
		return nil, fmt.Errorf("dds: %s data too short for %dx%d: have %d bytes, need %d",
			fourCC, width, height, len(blocks), need)
	}

	switch fourCC {
	case "DXT1":
		return decompressBC1(blocks, width, height)
	case "DXT3":
		return decompressBC2(blocks, width, height)
	default:
		return decompressBC3(blocks, width, height)
	}
}

// decodeColorBlock expands the two RGB565 endpoints of a BC color block into
// the 4-entry palette. opaque selects the 4-color interpolation mode
// unconditionally (BC2/BC3 always use it).
func decodeColorBlock(block []byte, opaque bool) [4][4]uint8 {
	c0 := uint16(block[0]) | uint16(block[1])<<8
	c1 := uint16(block[2]) | uint16(block[3])<<8

	expand := func(c uint16) (uint8, uint8, uint8) {
		r5 := (c >> 11) & 0x1F
		g6 := (c >> 5) & 0x3F
		b5 := c & 0x1F
		return uint8((r5 << 3) | (r5 >> 2)),
			uint8((g6 << 2) | (g6 >> 4)),
			uint8((b5 << 3) | (b5 >> 2))
	}
	r0, g0, b0 := expand(c0)
	r1, g1, b1 := expand(c1)

	var colors [4][4]uint8
	colors[0] = [4]uint8{r0, g0, b0, 255}
	colors[1] = [4]uint8{r1, g1, b1, 255}

	if opaque || c0 > c1 {
		colors[2] = [4]uint8{uint8((2*int(r0) + int(r1)) / 3), uint8((2*int(g0) + int(g1)) / 3), uint8((2*int(b0) + int(b1)) / 3), 255}
		colors[3] = [4]uint8{uint8((int(r0) + 2*int(r1)) / 3), uint8((int(g0) + 2*int(g1)) / 3), uint8((int(b0) + 2*int(b1)) / 3), 255}
	} else {
		colors[2] = [4]uint8{uint8((int(r0) + int(r1)) / 2), uint8((int(g0) + int(g1)) / 2), uint8((int(b0) + int(b1)) / 2), 255}
		colors[3] = [4]uint8{0, 0, 0, 0}
	}
	return colors
}

// writeColorIndices fills one 4x4 block of the output from the palette and
// the 32-bit index field.
func writeColorIndices(img *image.NRGBA, bx, by, width, height int, colors [4][4]uint8, indices uint32) {
	for py := 0; py < 4; py++ {
		for px := 0; px < 4; px++ {
			x := bx*4 + px
			y := by*4 + py
			if x >= width || y >= height {
				continue
			}
			c := colors[(indices>>(2*(py*4+px)))&3]
			off := img.PixOffset(x, y)
			img.Pix[off+0] = c[0]
			img.Pix[off+1] = c[1]
			img.Pix[off+2] = c[2]
			img.Pix[off+3] = c[3]
		}
	}
}

// decompressBC1 decodes DXT1 blocks (8 bytes each, RGB + 1-bit alpha).
func decompressBC1(data []byte, width, height int) (*image.NRGBA, error) {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	blockW := (width + 3) / 4
	blockH := (height + 3) / 4

	offset := 0
	for by := 0; by < blockH; by++ {
		for bx := 0; bx < blockW; bx++ {
			if offset+8 > len(data) {
				return nil, fmt.Errorf("dds: BC1 data truncated at block (%d,%d)", bx, by)
			}
			colors := decodeColorBlock(data[offset:], false)
			indices := binary.LittleEndian.Uint32(data[offset+4:])
			writeColorIndices(img, bx, by, width, height, colors, indices)
			offset += 8
		}
	}
	return img, nil
}

// decompressBC2 decodes DXT3 blocks (16 bytes: 8 of explicit 4-bit alpha,
// then a BC1-style color block).
func decompressBC2(data []byte, width, height int) (*image.NRGBA, error) {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	blockW := (width + 3) / 4
	blockH := (height + 3) / 4

	offset := 0
	for by := 0; by < blockH; by++ {
		for bx := 0; bx < blockW; bx++ {
			if offset+16 > len(data) {
				return nil, fmt.Errorf("dds: BC2 data truncated at block (%d,%d)", bx, by)
			}
			alphaBits := binary.LittleEndian.Uint64(data[offset:])
			colors := decodeColorBlock(data[offset+8:], true)
			indices := binary.LittleEndian.Uint32(data[offset+12:])
			writeColorIndices(img, bx, by, width, height, colors, indices)

			for py := 0; py < 4; py++ {
				for px := 0; px < 4; px++ {
					x := bx*4 + px
					y := by*4 + py
					if x >= width || y >= height {
						continue
					}
					a4 := uint8((alphaBits >> (4 * (py*4 + px))) & 0xF)
					img.Pix[img.PixOffset(x, y)+3] = (a4 << 4) | a4
				}
			}
			offset += 16
		}
	}
	return img, nil
}

// decompressBC3 decodes DXT5 blocks (16 bytes: interpolated alpha block,
// then a BC1-style color block).
func decompressBC3(data []byte, width, height int) (*image.NRGBA, error) {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	blockW := (width + 3) / 4
	blockH := (height + 3) / 4

	offset := 0
	for by := 0; by < blockH; by++ {
		for bx := 0; bx < blockW; bx++ {
			if offset+16 > len(data) {
				return nil, fmt.Errorf("dds: BC3 data truncated at block (%d,%d)", bx, by)
			}

			alpha0 := data[offset]
			alpha1 := data[offset+1]
			var alphaIndices uint64
			for i := 0; i < 6; i++ {
				alphaIndices |= uint64(data[offset+2+i]) << (8 * i)
			}

			var alphas [8]uint8
			alphas[0] = alpha0
			alphas[1] = alpha1
			if alpha0 > alpha1 {
				for i := 2; i < 8; i++ {
					alphas[i] = uint8((int(alpha0)*(8-i) + int(alpha1)*(i-1)) / 7)
				}
			} else {
				for i := 2; i < 6; i++ {
					alphas[i] = uint8((int(alpha0)*(6-i) + int(alpha1)*(i-1)) / 5)
				}
				alphas[6] = 0
				alphas[7] = 255
			}

			colors := decodeColorBlock(data[offset+8:], true)
			indices := binary.LittleEndian.Uint32(data[offset+12:])
			writeColorIndices(img, bx, by, width, height, colors, indices)

			for py := 0; py < 4; py++ {
				for px := 0; px < 4; px++ {
					x := bx*4 + px
					y := by*4 + py
					if x >= width || y >= height {
						continue
					}
					ai := (alphaIndices >> (3 * (py*4 + px))) & 7
					img.Pix[img.PixOffset(x, y)+3] = alphas[ai]
				}
			}
			offset += 16
		}
	}
	return img, nil
}
