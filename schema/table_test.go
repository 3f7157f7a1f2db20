package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sigilmesh/telepack/format"
	"github.com/sigilmesh/telepack/schema"
)

func TestEveryVariantZeroToFourteenHasASchema(t *testing.T) {
	for v := format.Variant(0); v <= format.MaxSensorVariant; v++ {
		_, ok := schema.Lookup(v)
		assert.True(t, ok, "missing schema for variant %d", v)
	}
}

func TestMeshControlVariantHasNoSensorSchema(t *testing.T) {
	_, ok := schema.Lookup(format.VariantMeshControl)
	assert.False(t, ok)
}

func TestWeatherStationIsSinglePresenceByte(t *testing.T) {
	s, ok := schema.Lookup(format.VariantWeatherStation)
	assert.True(t, ok)
	assert.Len(t, s.Fields, 6)
	assert.Equal(t, 1, s.NumPresenceBytes())
}

func TestExtendedWeatherBoundaryAtTwelveFields(t *testing.T) {
	s, ok := schema.Lookup(format.VariantExtendedWeather)
	assert.True(t, ok)
	assert.Len(t, s.Fields, 12)
	assert.Equal(t, 2, s.NumPresenceBytes())
}

func TestFullScalarFillsExactlyThirteenSlots(t *testing.T) {
	s, ok := schema.Lookup(format.VariantFullScalar)
	assert.True(t, ok)
	assert.Len(t, s.Fields, 13)
	assert.Equal(t, 2, s.NumPresenceBytes())
}

func TestIndexOfFindsAndMisses(t *testing.T) {
	s, _ := schema.Lookup(format.VariantWeatherStation)
	assert.Equal(t, 0, s.IndexOf(format.FieldBatteryLevel))
	assert.Equal(t, -1, s.IndexOf(format.FieldDepth))
}
