package qoi

import "io"

// window is the fixed 8-byte lookahead over the source. Eight bytes
// comfortably hold the largest chunk (5 bytes) and exactly cover the
// end marker, so the marker test can run on raw lookahead before any
// tag byte is interpreted.
//
// On a conformant stream the lookahead never outruns the data: every
// chunk boundary has at least the 8-byte end marker still ahead of it.
type window struct {
	src io.Reader
	buf [8]byte
}

func newWindow(src io.Reader) *window {
	return &window{src: src}
}

// refill rotates the buffer left by n (the byte count the previous
// chunk consumed) and reads exactly n fresh bytes into the vacated
// tail, keeping the first 8-n bytes as carried-over lookahead. A source
// that cannot supply n bytes means the stream was truncated, which is
// fatal; the error propagates unretried, normalized to
// io.ErrUnexpectedEOF since end-of-input here is always premature.
func (w *window) refill(n int) error {
	if n == 0 {
		return nil
	}
	copy(w.buf[:], w.buf[n:])
	_, err := io.ReadFull(w.src, w.buf[len(w.buf)-n:])
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// isEndMarker reports whether the whole window holds the stream
// terminator 00 00 00 00 00 00 00 01.
func (w *window) isEndMarker() bool {
	return w.buf == endMarker
}
