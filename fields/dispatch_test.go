package fields_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigilmesh/telepack/bitio"
	"github.com/sigilmesh/telepack/fields"
	"github.com/sigilmesh/telepack/format"
)

func TestScalarFieldRoundTrip(t *testing.T) {
	enc := &fields.EncoderState{Temperature: 21.5}
	enc.Set(format.FieldTemperature)

	buf := make([]byte, 4)
	w := bitio.NewWriter(buf)
	require.NoError(t, fields.Pack(format.FieldTemperature, enc, w))

	dec := &fields.DecodedState{}
	r := bitio.NewReader(buf, w.Cursor())
	require.NoError(t, fields.Unpack(format.FieldTemperature, dec, r))

	assert.True(t, dec.Present(format.FieldTemperature))
	assert.InDelta(t, 21.5, dec.Temperature, 0.25)
}

func TestEnvironmentCompositeRoundTrip(t *testing.T) {
	enc := &fields.EncoderState{Temperature: 18.0, Pressure: 1013, Humidity: 55}
	enc.Set(format.FieldEnvironment)

	buf := make([]byte, 4)
	w := bitio.NewWriter(buf)
	require.NoError(t, fields.Pack(format.FieldEnvironment, enc, w))
	assert.Equal(t, 24, w.Cursor())

	dec := &fields.DecodedState{}
	r := bitio.NewReader(buf, w.Cursor())
	require.NoError(t, fields.Unpack(format.FieldEnvironment, dec, r))

	assert.InDelta(t, 18.0, dec.Temperature, 0.25)
	assert.InDelta(t, 1013, dec.Pressure, 1)
	assert.InDelta(t, 55, dec.Humidity, 1)
}

func TestBooleanAndFlagsPassthrough(t *testing.T) {
	enc := &fields.EncoderState{BatteryCharging: true, Flags: 0b10110010}
	buf := make([]byte, 2)
	w := bitio.NewWriter(buf)
	require.NoError(t, fields.Pack(format.FieldBatteryCharging, enc, w))
	require.NoError(t, fields.Pack(format.FieldFlags, enc, w))

	dec := &fields.DecodedState{}
	r := bitio.NewReader(buf, w.Cursor())
	require.NoError(t, fields.Unpack(format.FieldBatteryCharging, dec, r))
	require.NoError(t, fields.Unpack(format.FieldFlags, dec, r))

	assert.True(t, dec.BatteryCharging)
	assert.Equal(t, uint8(0b10110010), dec.Flags)
}

func TestUnknownFieldTypeFails(t *testing.T) {
	enc := &fields.EncoderState{}
	buf := make([]byte, 1)
	w := bitio.NewWriter(buf)
	err := fields.Pack(format.FieldImage, enc, w)
	require.Error(t, err)
}
