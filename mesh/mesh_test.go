package mesh_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigilmesh/telepack/bitio"
	"github.com/sigilmesh/telepack/format"
	"github.com/sigilmesh/telepack/mesh"
)

func TestModularNewerAgreesWithIntegerOrderingNearby(t *testing.T) {
	assert.True(t, mesh.ModularNewer(10, 5))
	assert.False(t, mesh.ModularNewer(5, 10))
	assert.False(t, mesh.ModularNewer(5, 5))
}

func TestModularNewerGenerationRollover(t *testing.T) {
	// scenario 3: last_gen=4090, beacon gen=3 -> newer.
	assert.True(t, mesh.ModularNewer(3, 4090))
	assert.False(t, mesh.ModularNewer(4090, 3))
}

func TestModularNewerIrreflexiveAndAntisymmetric(t *testing.T) {
	for a := uint16(0); a < 4096; a += 137 {
		assert.False(t, mesh.ModularNewer(a, a))
		for b := uint16(0); b < 4096; b += 251 {
			if a == b {
				continue
			}
			assert.False(t, mesh.ModularNewer(a, b) && mesh.ModularNewer(b, a))
		}
	}
}

func TestDedupRingAcceptsEachPairExactlyOnce(t *testing.T) {
	ring := mesh.NewDedupRing(64)
	key := mesh.DedupKey(7, 123)

	assert.True(t, ring.Admit(key))
	assert.False(t, ring.Admit(key))
	assert.True(t, ring.Contains(key))
}

func TestDedupRingEvictsOldestAfterSixtyFour(t *testing.T) {
	ring := mesh.NewDedupRing(64)
	for i := uint16(0); i < 64; i++ {
		assert.True(t, ring.Admit(mesh.DedupKey(1, i)))
	}
	assert.Equal(t, 64, ring.Len())

	first := mesh.DedupKey(1, 0)
	assert.True(t, ring.Contains(first))

	ring.Admit(mesh.DedupKey(1, 64))
	assert.False(t, ring.Contains(first))
	assert.Equal(t, 64, ring.Len())
}

func TestForwardDedupScenario(t *testing.T) {
	engine, err := mesh.NewEngine(10)
	require.NoError(t, err)
	engine.OnBeacon(mesh.Beacon{
		Header: mesh.SharedHeader{SenderStation: 1, Control: format.ControlBeacon},
		Cost:   0, Generation: 1,
	})
	require.True(t, engine.HasParent())

	fwd := mesh.Forward{Header: mesh.SharedHeader{SenderStation: 7, SenderSeq: 123, Control: format.ControlForward}, TTL: 5}

	out, err := engine.AdmitForward(fwd, 7, 123)
	require.NoError(t, err)
	assert.EqualValues(t, 4, out.TTL)
	assert.EqualValues(t, 10, out.Header.SenderStation)

	_, err = engine.AdmitForward(fwd, 7, 123)
	require.Error(t, err)
}

func TestRSSIQuantizationRoundTrip(t *testing.T) {
	assert.EqualValues(t, 0, mesh.QuantizeRSSI(-200))
	assert.EqualValues(t, 15, mesh.QuantizeRSSI(0))
	q := mesh.QuantizeRSSI(-90)
	assert.InDelta(t, -90, mesh.DequantizeRSSI(q), 5)
}

func TestBeaconEncodeDecodeRoundTrip(t *testing.T) {
	b := mesh.Beacon{
		Header:     mesh.SharedHeader{SenderStation: 5, SenderSeq: 9, Control: format.ControlBeacon},
		GatewayID:  1,
		Cost:       3,
		Flags:      0b1010,
		Generation: 4090,
	}
	buf := make([]byte, 16)
	w := bitio.NewWriter(buf)
	require.NoError(t, b.Encode(w))
	assert.Equal(t, 9, w.BytesWritten())

	r := bitio.NewReader(buf, w.Cursor())
	got, err := mesh.DecodeBeacon(r)
	require.NoError(t, err)
	assert.Equal(t, b, got)
}

func TestPingPongEncodeDecodeRoundTrip(t *testing.T) {
	p := mesh.PingPong{Header: mesh.SharedHeader{SenderStation: 2, SenderSeq: 1}, Tag: 0xBEEF}
	buf := make([]byte, 16)
	w := bitio.NewWriter(buf)
	require.NoError(t, p.Encode(w))
	assert.Equal(t, 9, w.BytesWritten())

	r := bitio.NewReader(buf, w.Cursor())
	got, err := mesh.DecodePingPong(r)
	require.NoError(t, err)
	assert.False(t, got.Pong)
	assert.EqualValues(t, 0xBEEF, got.Tag)
}

func TestAckAndRouteErrorAndForwardEncodeDecodeRoundTrip(t *testing.T) {
	ack := mesh.Ack{Header: mesh.SharedHeader{SenderStation: 9, Control: format.ControlAck}, FwdStation: 42, FwdSeq: 999}
	buf := make([]byte, 16)
	w := bitio.NewWriter(buf)
	require.NoError(t, ack.Encode(w))
	assert.Equal(t, 8, w.BytesWritten())
	r := bitio.NewReader(buf, w.Cursor())
	gotAck, err := mesh.DecodeAck(r)
	require.NoError(t, err)
	assert.Equal(t, ack, gotAck)

	re := mesh.RouteError{Header: mesh.SharedHeader{SenderStation: 3, Control: format.ControlRouteError}, Reason: format.RouteErrorOverloaded}
	buf2 := make([]byte, 16)
	w2 := bitio.NewWriter(buf2)
	require.NoError(t, re.Encode(w2))
	assert.Equal(t, 5, w2.BytesWritten())
	r2 := bitio.NewReader(buf2, w2.Cursor())
	gotRE, err := mesh.DecodeRouteError(r2)
	require.NoError(t, err)
	assert.Equal(t, re, gotRE)

	fwd := mesh.Forward{Header: mesh.SharedHeader{SenderStation: 1, Control: format.ControlForward}, TTL: 6, Inner: []byte{0xAA, 0xBB}}
	buf3 := make([]byte, 16)
	w3 := bitio.NewWriter(buf3)
	require.NoError(t, fwd.Encode(w3))
	r3 := bitio.NewReader(buf3, w3.Cursor())
	gotFwd, err := mesh.DecodeForward(r3, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 6, gotFwd.TTL)
	assert.Equal(t, []byte{0xAA, 0xBB}, gotFwd.Inner)
}

func TestNeighbourReportRoundTrip(t *testing.T) {
	engine, err := mesh.NewEngine(1)
	require.NoError(t, err)
	require.NoError(t, engine.AddNeighbour(2, 10))
	require.NoError(t, engine.AddNeighbour(3, 5))

	report := engine.BuildNeighbourReport()
	buf := make([]byte, 32)
	w := bitio.NewWriter(buf)
	require.NoError(t, report.Encode(w))

	r := bitio.NewReader(buf, w.Cursor())
	got, err := mesh.DecodeNeighbourReport(r)
	require.NoError(t, err)
	require.Len(t, got.Entries, 2)
	assert.EqualValues(t, 2, got.Entries[0].Station)
}
