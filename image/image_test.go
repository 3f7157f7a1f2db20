package image_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigilmesh/telepack/bitio"
	"github.com/sigilmesh/telepack/format"
	"github.com/sigilmesh/telepack/image"
)

func TestControlByteRoundTrip(t *testing.T) {
	c := image.Control{
		PixelFormat: format.ImageGrey4,
		SizeTier:    format.ImageSize32x24,
		Compression: format.ImageCompressionRLE,
		Flags:       0b10,
	}
	got := image.ParseControl(c.Byte())
	assert.Equal(t, c, got)
}

func TestBufferGetSetBilevel(t *testing.T) {
	buf := image.NewBuffer(format.ImageBilevel, 24, 18)
	buf.Set(0, 0, 1)
	buf.Set(1, 0, 0)
	buf.Set(23, 17, 1)

	assert.Equal(t, uint8(1), buf.Get(0, 0))
	assert.Equal(t, uint8(0), buf.Get(1, 0))
	assert.Equal(t, uint8(1), buf.Get(23, 17))
}

func TestBufferGetSetGrey16(t *testing.T) {
	buf := image.NewBuffer(format.ImageGrey16, 4, 1)
	buf.Set(0, 0, 0xF)
	buf.Set(1, 0, 0x3)
	buf.Set(2, 0, 0x0)
	buf.Set(3, 0, 0xA)

	assert.Equal(t, uint8(0xF), buf.Get(0, 0))
	assert.Equal(t, uint8(0x3), buf.Get(1, 0))
	assert.Equal(t, uint8(0xA), buf.Get(3, 0))
}

func TestRLEBilevelRoundTrip(t *testing.T) {
	buf := image.NewBuffer(format.ImageBilevel, 24, 18)
	for x := 0; x < 24; x++ {
		buf.Set(x, 0, uint8(x%2))
	}

	encoded := image.EncodeRLE(format.ImageBilevel, buf.Bytes(), 24*18)
	decoded := image.DecodeRLE(format.ImageBilevel, encoded, len(buf.Bytes()))
	assert.Equal(t, buf.Bytes(), decoded)
}

func TestLZSSRoundTrip(t *testing.T) {
	data := []byte("aaaaaaaabbbbbbbbccccccccaaaaaaaabbbbbbbb")
	encoded, err := image.EncodeLZSS(data)
	require.NoError(t, err)

	r := bitio.NewReader(encoded, len(encoded)*8)
	decoded, err := image.DecodeLZSS(r, len(data))
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestFullImageFieldEncodeDecodeRaw(t *testing.T) {
	buf := image.NewBuffer(format.ImageBilevel, 24, 18)
	buf.Set(5, 5, 1)
	ctrl := image.Control{PixelFormat: format.ImageBilevel, SizeTier: format.ImageSize24x18, Compression: format.ImageCompressionRaw}

	out := make([]byte, 128)
	w := bitio.NewWriter(out)
	require.NoError(t, image.Encode(w, ctrl, buf))

	r := bitio.NewReader(out, w.Cursor())
	gotCtrl, gotBuf, err := image.Decode(r)
	require.NoError(t, err)
	assert.Equal(t, ctrl, gotCtrl)
	assert.Equal(t, uint8(1), gotBuf.Get(5, 5))
}
