// Package qoi decodes images in the QOI "Quite OK Image" format
// (https://qoiformat.org). The package registers itself with the
// standard image package, so image.Decode recognizes QOI streams after
// a blank import.
package qoi

import (
	"image/color"
)

// Chunk tag values. The two 8-bit tags take precedence over the 2-bit
// prefixes: a decoder must test for them first, since 0xfe and 0xff
// would otherwise parse as run chunks.
const (
	opRGB   byte = 0xfe // 11111110
	opRGBA  byte = 0xff // 11111111
	opIndex byte = 0x00 // 00xxxxxx
	opDiff  byte = 0x40 // 01xxxxxx
	opLuma  byte = 0x80 // 10xxxxxx
	opRun   byte = 0xc0 // 11xxxxxx

	opMask2 byte = 0xc0 // 11000000
)

// Colorspace values carried in the header. The decoder treats the field
// as opaque metadata; it never changes how pixels are reconstructed.
const (
	SRGB   uint8 = 0
	Linear uint8 = 1
)

const (
	cacheSize = 64

	// maxPixels bounds the whole-image Decode path so a corrupt header
	// cannot demand an absurd allocation. 400 million pixels is a 2GB
	// NRGBA buffer.
	maxPixels = 400_000_000
)

var (
	// Magic is the four-byte signature that opens every QOI stream.
	Magic = string(magicBytes[:])

	magicBytes = [4]byte{'q', 'o', 'i', 'f'}

	// endMarker terminates the chunk stream. Its first byte is also a
	// valid index tag, which is why the decoder matches the marker
	// against the full lookahead window before dispatching on tags.
	endMarker = [8]byte{0, 0, 0, 0, 0, 0, 0, 1}

	// opaqueBlack is the previous-pixel value both encoders and
	// decoders start from.
	opaqueBlack = color.NRGBA{0, 0, 0, 255}
)

// hash gives the pixel's slot in the 64-entry seen cache. The
// multiplications wrap modulo 256 like every other byte operation in
// the format.
func hash(px color.NRGBA) uint8 {
	return (px.R*3 + px.G*5 + px.B*7 + px.A*11) % cacheSize
}

// AppendChannels appends the wire serialization of px to dst: r,g,b for
// channels == 3, r,g,b,a for channels == 4. This matches the layout a
// stream's header promises to consumers of the decoded pixels.
func AppendChannels(dst []byte, px color.NRGBA, channels uint8) []byte {
	if channels == 3 {
		return append(dst, px.R, px.G, px.B)
	}
	return append(dst, px.R, px.G, px.B, px.A)
}

// RGBA32 packs px into a single big-endian word, 0xRRGGBBAA.
func RGBA32(px color.NRGBA) uint32 {
	return uint32(px.R)<<24 | uint32(px.G)<<16 | uint32(px.B)<<8 | uint32(px.A)
}
