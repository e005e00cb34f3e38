package qoi

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

var (
	// ErrBadMagic reports a header that does not open with "qoif".
	ErrBadMagic = errors.New("bad magic value")

	// ErrTooFewPixels reports a stream whose end marker arrived before
	// the header's width x height pixels were produced.
	ErrTooFewPixels = errors.New("stream ended before supplying every pixel")
)

func init() {
	image.RegisterFormat("qoi", Magic, Decode, DecodeConfig)
}

// Header is the fixed 14-byte descriptor at the front of every stream,
// read once per decode session. Channels says whether consumers should
// serialize pixels as 3 or 4 bytes; reconstruction always tracks alpha
// regardless.
type Header struct {
	Width      uint32
	Height     uint32
	Channels   uint8 // 3 or 4
	Colorspace uint8 // SRGB or Linear; informative only
}

// rawHeader is the wire layout, suitable for binary.Read.
type rawHeader struct {
	Magic                [4]byte
	Width, Height        uint32
	Channels, Colorspace uint8
}

func readHeader(r io.Reader) (Header, error) {
	var raw rawHeader
	if err := binary.Read(r, binary.BigEndian, &raw); err != nil {
		return Header{}, err
	}
	if raw.Magic != magicBytes {
		return Header{}, ErrBadMagic
	}
	if raw.Channels < 3 || raw.Channels > 4 {
		return Header{}, fmt.Errorf("bad channels: %d", raw.Channels)
	}
	return Header{
		Width:      raw.Width,
		Height:     raw.Height,
		Channels:   raw.Channels,
		Colorspace: raw.Colorspace,
	}, nil
}

// Decode reads a complete QOI image from r. The pixel count is taken
// from the header; a stream whose end marker arrives early fails with
// ErrTooFewPixels, and any bytes after the header-promised pixel count
// are left unread.
func Decode(r io.Reader) (image.Image, error) {
	d, err := NewDecoder(r)
	if err != nil {
		return nil, err
	}
	hdr := d.Header()

	if uint64(hdr.Width)*uint64(hdr.Height) > maxPixels {
		return nil, fmt.Errorf("image too large: %dx%d", hdr.Width, hdr.Height)
	}
	n := int(hdr.Width) * int(hdr.Height)

	img := image.NewNRGBA(image.Rect(0, 0, int(hdr.Width), int(hdr.Height)))
	for i := 0; i < n; i++ {
		if !d.Next() {
			if err := d.Err(); err != nil {
				return nil, err
			}
			return nil, ErrTooFewPixels
		}
		px := d.Current()
		off := i * 4
		img.Pix[off+0] = px.R
		img.Pix[off+1] = px.G
		img.Pix[off+2] = px.B
		img.Pix[off+3] = px.A
	}
	return img, nil
}

// DecodeConfig returns the dimensions and color model of a QOI image
// without decoding any pixels.
func DecodeConfig(r io.Reader) (image.Config, error) {
	hdr, err := readHeader(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      int(hdr.Width),
		Height:     int(hdr.Height),
	}, nil
}

// Decoder streams the pixels of one QOI image, one pixel per Next call,
// in row-major order. It is forward-only and owns all of its state;
// independent Decoders never share anything and may run on separate
// goroutines. After Next returns false the decoder reads no further
// bytes, and Err separates a clean end (nil) from a decode fault.
type Decoder struct {
	hdr Header
	win *window

	// consumed is how many stream bytes the previous chunk used, which
	// is exactly how far the window must advance before the next chunk.
	// Starts at the full window size so the first refill populates all
	// eight bytes.
	consumed int

	cur  color.NRGBA
	prev color.NRGBA
	seen [cacheSize]color.NRGBA

	// run counts queued repetitions of prev that are still owed to the
	// caller. While it drains, Next does no stream I/O.
	run int

	done bool
	err  error
}

// NewDecoder reads and validates the stream header, returning a decoder
// positioned at the first chunk. Header problems (short read, bad
// magic, channel count outside 3..4) surface here, before any chunk is
// touched.
func NewDecoder(r io.Reader) (*Decoder, error) {
	hdr, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	return &Decoder{
		hdr:      hdr,
		win:      newWindow(bufio.NewReader(r)),
		consumed: len(endMarker),
		prev:     opaqueBlack,
	}, nil
}

// Header returns the stream's descriptor.
func (d *Decoder) Header() Header {
	return d.hdr
}

// Next advances to the next pixel, reporting false at the stream's end
// marker or on a decode fault; Err tells those apart. The result stays
// false once the stream has ended or faulted.
func (d *Decoder) Next() bool {
	// Repetitions queued by a run chunk are served without touching
	// the stream, the cache, or the previous pixel.
	if d.run > 0 {
		d.run--
		d.cur = d.prev
		return true
	}

	if d.done || d.err != nil {
		return false
	}

	if err := d.win.refill(d.consumed); err != nil {
		d.err = err
		return false
	}

	// The marker test must precede tag dispatch: the marker's leading
	// 0x00 is also a well-formed index tag.
	if d.win.isEndMarker() {
		d.done = true
		return false
	}

	c, err := decodeChunk(&d.win.buf, d.prev.A)
	if err != nil {
		d.err = err
		return false
	}
	d.consumed = c.size()

	if c.kind == chunkRun {
		// The stored payload is one less than the repetition count:
		// emit the previous pixel now and queue the remaining c.run.
		d.run = int(c.run)
		d.cur = d.prev
		return true
	}

	d.cur = d.reconstruct(c)
	if c.kind != chunkIndex {
		d.seen[hash(d.cur)] = d.cur
	}
	d.prev = d.cur
	return true
}

// reconstruct applies a classified non-run chunk against the previous
// pixel and the seen cache. All delta arithmetic wraps modulo 256, so
// red 2 with delta -3 lands on 255 rather than clamping.
func (d *Decoder) reconstruct(c chunk) color.NRGBA {
	switch c.kind {
	case chunkRGB, chunkRGBA:
		return c.px
	case chunkIndex:
		return d.seen[c.idx]
	case chunkDiff:
		return color.NRGBA{
			R: d.prev.R + c.dr,
			G: d.prev.G + c.dg,
			B: d.prev.B + c.db,
			A: d.prev.A,
		}
	case chunkLuma:
		// Red and blue each ride on the green delta; blue must use the
		// blue-vs-green field, not red's.
		return color.NRGBA{
			R: d.prev.R + c.dg + c.drdg,
			G: d.prev.G + c.dg,
			B: d.prev.B + c.dg + c.dbdg,
			A: d.prev.A,
		}
	}
	// Run chunks are expanded by Next and never reach reconstruction.
	panic("qoi: reconstruct called with run chunk")
}

// Current returns the pixel produced by the last successful Next.
func (d *Decoder) Current() color.NRGBA {
	return d.cur
}

// Err returns the fault that stopped the decoder, or nil after a clean
// end at the stream marker.
func (d *Decoder) Err() error {
	return d.err
}
