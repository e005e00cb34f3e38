package qoi

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every byte value classifies as exactly one chunk kind: the two
// literal tags, then 64 tags per 2-bit prefix, minus the two run slots
// the literals shadow.
func TestDecodeChunkExhaustive(t *testing.T) {
	counts := map[chunkKind]int{}
	for tag := 0; tag < 256; tag++ {
		buf := [8]byte{byte(tag), 1, 2, 3, 4}
		c, err := decodeChunk(&buf, 200)
		require.NoError(t, err, "tag 0x%02x", tag)
		counts[c.kind]++
	}

	assert.Equal(t, map[chunkKind]int{
		chunkRGB:   1,
		chunkRGBA:  1,
		chunkIndex: 64,
		chunkDiff:  64,
		chunkLuma:  64,
		chunkRun:   62,
	}, counts)
}

func TestDecodeChunkPayloads(t *testing.T) {
	tests := []struct {
		name      string
		window    []byte
		prevAlpha uint8
		want      chunk
		size      int
	}{
		{
			name:      "rgb captures the previous alpha",
			window:    []byte{opRGB, 1, 2, 3},
			prevAlpha: 99,
			want:      chunk{kind: chunkRGB, px: color.NRGBA{1, 2, 3, 99}},
			size:      4,
		},
		{
			name:   "rgba carries its own alpha",
			window: []byte{opRGBA, 1, 2, 3, 4},
			want:   chunk{kind: chunkRGBA, px: color.NRGBA{1, 2, 3, 4}},
			size:   5,
		},
		{
			name:   "index",
			window: []byte{0x2a},
			want:   chunk{kind: chunkIndex, idx: 42},
			size:   1,
		},
		{
			name:   "diff at the bias floor",
			window: []byte{0x40},
			// Raw 0 in every field: -2, stored wrapped as 254.
			want: chunk{kind: chunkDiff, dr: 254, dg: 254, db: 254},
			size: 1,
		},
		{
			name:   "diff mixed deltas",
			window: []byte{0x6e},
			// 01 10 11 10: dr=0, dg=+1, db=0.
			want: chunk{kind: chunkDiff, dr: 0, dg: 1, db: 0},
			size: 1,
		},
		{
			name:   "luma splits the second byte",
			window: []byte{0xa3, 0x51},
			// dg=35-32=+3; drdg=5-8=-3; dbdg=1-8=-7.
			want: chunk{kind: chunkLuma, dg: 3, drdg: 253, dbdg: 249},
			size: 2,
		},
		{
			name:   "run keeps the raw payload",
			window: []byte{0xc5},
			want:   chunk{kind: chunkRun, run: 5},
			size:   1,
		},
		{
			name:   "run floor",
			window: []byte{0xc0},
			want:   chunk{kind: chunkRun, run: 0},
			size:   1,
		},
		{
			name:   "run ceiling below the literal tags",
			window: []byte{0xfd},
			want:   chunk{kind: chunkRun, run: 61},
			size:   1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf [8]byte
			copy(buf[:], tc.window)

			c, err := decodeChunk(&buf, tc.prevAlpha)
			require.NoError(t, err)
			assert.Equal(t, tc.want, c)
			assert.Equal(t, tc.size, c.size())
		})
	}
}
