package tlv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigilmesh/telepack/bitio"
	"github.com/sigilmesh/telepack/errs"
	"github.com/sigilmesh/telepack/format"
	"github.com/sigilmesh/telepack/tlv"
)

func TestChainEncodeDecodeRoundTrip(t *testing.T) {
	c := &tlv.Chain{}
	require.NoError(t, c.AddRaw(format.TLVTypeVersion, []byte{0x01, 0x02, 0x03, 0x04}))
	require.NoError(t, c.AddString(0x21, "HELLO"))
	require.NoError(t, c.AddRaw(0x22, []byte{0xFF}))

	buf := make([]byte, 64)
	w := bitio.NewWriter(buf)
	require.NoError(t, c.Encode(w))

	r := bitio.NewReader(buf, w.Cursor())
	decoded, err := tlv.Decode(r)
	require.NoError(t, err)
	require.Equal(t, 3, decoded.Len())

	entries := decoded.Entries()
	assert.Equal(t, format.TLVFormatRaw, entries[0].Format)
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, entries[0].Data)
	assert.Equal(t, format.TLVFormatString6, entries[1].Format)
	assert.Equal(t, "HELLO", entries[1].Text)
	assert.Equal(t, uint8(0x22), entries[2].Type)
}

func TestChainCapacityEnforced(t *testing.T) {
	c := &tlv.Chain{}
	for i := 0; i < tlv.Capacity; i++ {
		require.NoError(t, c.AddRaw(0x20, []byte{byte(i)}))
	}
	err := c.AddRaw(0x20, []byte{0x00})
	require.ErrorIs(t, err, errs.ErrTLVFull)
}

func TestStringRejectsCharacterOutsideAlphabet(t *testing.T) {
	c := &tlv.Chain{}
	err := c.AddString(0x20, "hello!")
	require.Error(t, err)
}

func TestTypeAboveSixtyThreeRejected(t *testing.T) {
	c := &tlv.Chain{}
	err := c.AddRaw(64, []byte{0x00})
	require.Error(t, err)
}

func TestAddKVEnforcesEvenCountAndNonEmptyValue(t *testing.T) {
	c := &tlv.Chain{}
	require.Error(t, c.AddKV(0x20, []byte("key")))
	require.Error(t, c.AddKV(0x20, []byte("key"), []byte{}))
	require.NoError(t, c.AddKV(0x20, []byte("key"), []byte("value")))
	assert.Equal(t, 2, c.Len())
}
