package quant

import "github.com/sigilmesh/telepack/format"

// Table maps each scalar FieldType to the quantizer that packs its physical
// value onto the wire. FieldEnvironment, FieldFlags,
// FieldBatteryCharging and FieldImage are not in this table: the first is
// a composite of three entries already present here, the middle two are
// raw passthroughs with no quantization, and Image has its own sub-codec.
var Table = map[format.FieldType]Quantizer{
	format.FieldBatteryLevel:    Linear{Min: 0, Max: 100, Resolution: 5, BitWidth: 5},
	format.FieldLinkRSSI:        Linear{Min: -120, Max: -60, Resolution: 4, BitWidth: 4},
	format.FieldLinkSNR:         Linear{Min: -20, Max: 10, Resolution: 1, BitWidth: 5},
	format.FieldTemperature:     Linear{Min: -40, Max: 80, Resolution: 0.25, BitWidth: 9},
	format.FieldPressure:        Linear{Min: 850, Max: 1105, Resolution: 1, BitWidth: 8},
	format.FieldHumidity:        Linear{Min: 0, Max: 100, Resolution: 1, BitWidth: 7},
	format.FieldWindSpeed:       Linear{Min: 0, Max: 63.5, Resolution: 0.5, BitWidth: 7},
	format.FieldWindGust:        Linear{Min: 0, Max: 63.5, Resolution: 0.5, BitWidth: 7},
	format.FieldWindDirection:   Bitmask{FullRange: 360, BitWidth: 8},
	format.FieldRainRate:        Linear{Min: 0, Max: 255, Resolution: 1, BitWidth: 8},
	format.FieldRainSize:        Linear{Min: 0, Max: 6.0, Resolution: 0.2, BitWidth: 5},
	format.FieldSolarIrradiance: Linear{Min: 0, Max: 1023, Resolution: 1, BitWidth: 10},
	format.FieldSolarUV:         Linear{Min: 0, Max: 15, Resolution: 1, BitWidth: 4},
	format.FieldCloudCover:      Linear{Min: 0, Max: 8, Resolution: 1, BitWidth: 4},
	format.FieldAQIndex:         Linear{Min: 0, Max: 500, Resolution: 1, BitWidth: 9},
	format.FieldRadiationCPM:    Linear{Min: 0, Max: 65535, Resolution: 1, BitWidth: 16},
	format.FieldRadiationDose:   Linear{Min: 0, Max: 163.83, Resolution: 0.01, BitWidth: 14},
	format.FieldDepth:           Linear{Min: 0, Max: 1023, Resolution: 1, BitWidth: 10},
	format.FieldPositionLat:     Linear{Min: -90, Max: 90, Resolution: 180.0 / (1<<24 - 1), BitWidth: 24},
	format.FieldPositionLon:     Linear{Min: -180, Max: 180, Resolution: 360.0 / (1<<25 - 1), BitWidth: 25},
	format.FieldDateTime:        Linear{Min: 0, Max: (1<<20 - 1) * 5, Resolution: 5, BitWidth: 20},
}

// Bits returns the wire width of a quantized field, looking the field up
// in Table. It panics if ft has no entry — a programmer error, not a
// runtime condition a caller can recover from.
func Bits(ft format.FieldType) int {
	q, ok := Table[ft]
	if !ok {
		panic("quant: no quantizer registered for " + ft.String())
	}

	return q.Bits()
}
