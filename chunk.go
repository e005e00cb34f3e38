package qoi

import (
	"errors"
	"image/color"
)

// ErrUnrecognizedChunk reports a tag byte that matches none of the six
// chunk kinds. The four 2-bit prefixes cover all 256 byte values, so a
// conformant stream can never trigger it; it exists so a faulty chunk
// is a distinct, inspectable failure rather than a silent skip.
var ErrUnrecognizedChunk = errors.New("unrecognized chunk")

type chunkKind uint8

const (
	chunkRGB chunkKind = iota
	chunkRGBA
	chunkIndex
	chunkDiff
	chunkLuma
	chunkRun
)

// chunk is one classified wire unit. Which payload fields are
// meaningful depends on kind; the rest stay zero.
type chunk struct {
	kind chunkKind

	px   color.NRGBA // rgb, rgba: the literal color
	idx  uint8       // index: cache slot, 0..63
	dr   uint8       // diff: red delta, bias already removed (wrapped)
	dg   uint8       // diff and luma: green delta, bias removed
	db   uint8       // diff: blue delta, bias removed
	drdg uint8       // luma: red delta minus green delta, bias removed
	dbdg uint8       // luma: blue delta minus green delta, bias removed
	run  uint8       // run: stored 6-bit payload, 0..61; one less than the repetition count
}

// size reports how many stream bytes the chunk occupied, tag included.
func (c chunk) size() int {
	switch c.kind {
	case chunkRGB:
		return 4
	case chunkRGBA:
		return 5
	case chunkLuma:
		return 2
	default: // index, diff, run
		return 1
	}
}

// decodeChunk classifies the tag byte at the front of the lookahead
// window and extracts the chunk's payload from the bytes behind it. It
// never touches decoder state; the one input besides the window is
// prevAlpha, because an rgb literal inherits the previous pixel's alpha
// and that value must be captured now, before the previous pixel is
// replaced.
//
// Bias removal uses plain uint8 subtraction: the deltas stay in
// wraparound form and are applied with wraparound addition later, which
// is exactly the arithmetic the format defines.
func decodeChunk(buf *[8]byte, prevAlpha uint8) (chunk, error) {
	tag := buf[0]

	switch {
	case tag == opRGB:
		return chunk{
			kind: chunkRGB,
			px:   color.NRGBA{R: buf[1], G: buf[2], B: buf[3], A: prevAlpha},
		}, nil

	case tag == opRGBA:
		return chunk{
			kind: chunkRGBA,
			px:   color.NRGBA{R: buf[1], G: buf[2], B: buf[3], A: buf[4]},
		}, nil

	case tag&opMask2 == opIndex:
		return chunk{kind: chunkIndex, idx: tag & 0x3f}, nil

	case tag&opMask2 == opDiff:
		return chunk{
			kind: chunkDiff,
			dr:   (tag>>4)&0x03 - 2,
			dg:   (tag>>2)&0x03 - 2,
			db:   tag&0x03 - 2,
		}, nil

	case tag&opMask2 == opLuma:
		return chunk{
			kind: chunkLuma,
			dg:   tag&0x3f - 32,
			drdg: (buf[1]>>4)&0x0f - 8,
			dbdg: buf[1]&0x0f - 8,
		}, nil

	case tag&opMask2 == opRun:
		return chunk{kind: chunkRun, run: tag & 0x3f}, nil
	}

	return chunk{}, ErrUnrecognizedChunk
}
