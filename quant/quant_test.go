package quant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sigilmesh/telepack/format"
	"github.com/sigilmesh/telepack/quant"
)

func TestLinearRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		q    quant.Linear
		v    float64
		want float64
	}{
		{"battery mid", quant.Linear{Min: 0, Max: 100, Resolution: 5, BitWidth: 5}, 52, 50},
		{"temperature exact", quant.Linear{Min: -40, Max: 80, Resolution: 0.25, BitWidth: 9}, 21.25, 21.25},
		{"rssi clamp low", quant.Linear{Min: -120, Max: -60, Resolution: 4, BitWidth: 4}, -200, -120},
		{"rssi clamp high", quant.Linear{Min: -120, Max: -60, Resolution: 4, BitWidth: 4}, 0, -60},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			raw := c.q.Quantize(c.v)
			got := c.q.Dequantize(raw)
			assert.InDelta(t, c.want, got, c.q.Resolution/2+1e-9)
		})
	}
}

func TestLinearMaxRawFitsBitWidth(t *testing.T) {
	q := quant.Linear{Min: 0, Max: 100, Resolution: 5, BitWidth: 5}
	assert.Equal(t, uint32(31), q.MaxRaw())
	assert.LessOrEqual(t, q.Quantize(1000), q.MaxRaw())
}

func TestBitmaskWrapsAroundFullRange(t *testing.T) {
	q := quant.Bitmask{FullRange: 360, BitWidth: 8}

	assert.Equal(t, uint32(0), q.Quantize(0))
	assert.Equal(t, uint32(0), q.Quantize(360))
	assert.Equal(t, uint32(0), q.Quantize(-360))

	raw := q.Quantize(180)
	got := q.Dequantize(raw)
	assert.InDelta(t, 180, got, 360.0/256)
}

func TestTableCoversEveryScalarField(t *testing.T) {
	scalars := []format.FieldType{
		format.FieldBatteryLevel, format.FieldLinkRSSI, format.FieldLinkSNR,
		format.FieldTemperature, format.FieldPressure, format.FieldHumidity,
		format.FieldWindSpeed, format.FieldWindGust, format.FieldWindDirection,
		format.FieldRainRate, format.FieldRainSize, format.FieldSolarIrradiance,
		format.FieldSolarUV, format.FieldCloudCover, format.FieldAQIndex,
		format.FieldRadiationCPM, format.FieldRadiationDose, format.FieldDepth,
		format.FieldPositionLat, format.FieldPositionLon, format.FieldDateTime,
	}

	for _, ft := range scalars {
		_, ok := quant.Table[ft]
		assert.True(t, ok, "missing quantizer for %s", ft)
	}
}

func TestPositionQuantizersFitDeclaredBitWidth(t *testing.T) {
	lat := quant.Table[format.FieldPositionLat]
	lon := quant.Table[format.FieldPositionLon]
	assert.Equal(t, 24, lat.Bits())
	assert.Equal(t, 25, lon.Bits())

	assert.InDelta(t, 45.0, lat.Dequantize(lat.Quantize(45.0)), 1e-4)
	assert.InDelta(t, -123.45, lon.Dequantize(lon.Quantize(-123.45)), 1e-4)
}
