// Package schema defines, for every sensor variant, the ordered field list
// that drives both the presence-chain layout and the pack/unpack walk.
// The presence byte count is a property of the schema alone — it
// never depends on which fields a given packet actually sets.
package schema

import "github.com/sigilmesh/telepack/format"

// Schema is the fixed, ordered field list for one sensor variant.
type Schema struct {
	Variant format.Variant
	Name    string
	Fields  []format.FieldType
}

// firstByteBits and extByteBits match package packet's presence-chain layout: the
// first byte carries 6 presence bits (the other 2 are ext/tlv flags), every
// subsequent byte carries 7 (1 ext flag + 7 presence bits).
const (
	firstByteBits = 6
	extByteBits   = 7
)

// NumPresenceBytes returns the schema-level constant number of presence
// bytes needed to carry one presence bit per declared field, regardless of
// which fields any particular packet actually sets.
func (s Schema) NumPresenceBytes() int {
	n := len(s.Fields)
	if n <= firstByteBits {
		return 1
	}

	remaining := n - firstByteBits
	extra := (remaining + extByteBits - 1) / extByteBits

	return 1 + extra
}

// Table holds every sensor variant, 0 through 14. Variant 0x0F (mesh
// control) deliberately has no entry here; it is handled entirely by
// package mesh, since it carries no sensor field schema at all.
var Table = map[format.Variant]Schema{
	format.VariantWeatherStation: {
		Variant: format.VariantWeatherStation, Name: "weather_station",
		Fields: []format.FieldType{
			format.FieldBatteryLevel, format.FieldBatteryCharging, format.FieldEnvironment,
			format.FieldWindSpeed, format.FieldWindDirection, format.FieldFlags,
		},
	},
	format.VariantExtendedWeather: {
		Variant: format.VariantExtendedWeather, Name: "extended_weather",
		Fields: []format.FieldType{
			format.FieldWindGust, format.FieldRainRate, format.FieldRainSize,
			format.FieldSolarIrradiance, format.FieldSolarUV, format.FieldCloudCover,
			format.FieldAQIndex, format.FieldLinkRSSI, format.FieldLinkSNR,
			format.FieldPositionLat, format.FieldPositionLon, format.FieldDateTime,
		},
	},
	format.VariantEnvironmentalSplit: {
		Variant: format.VariantEnvironmentalSplit, Name: "environmental_split",
		Fields: []format.FieldType{
			format.FieldTemperature, format.FieldPressure, format.FieldHumidity,
			format.FieldBatteryLevel, format.FieldFlags, format.FieldImage,
		},
	},
	format.VariantAirQuality: {
		Variant: format.VariantAirQuality, Name: "air_quality",
		Fields: []format.FieldType{
			format.FieldAQIndex, format.FieldSolarUV, format.FieldCloudCover,
			format.FieldBatteryLevel, format.FieldFlags,
		},
	},
	format.VariantRadiationMonitor: {
		Variant: format.VariantRadiationMonitor, Name: "radiation_monitor",
		Fields: []format.FieldType{
			format.FieldRadiationCPM, format.FieldRadiationDose,
			format.FieldBatteryLevel, format.FieldLinkRSSI, format.FieldFlags,
		},
	},
	format.VariantRainGauge: {
		Variant: format.VariantRainGauge, Name: "rain_gauge",
		Fields: []format.FieldType{
			format.FieldRainRate, format.FieldRainSize, format.FieldBatteryLevel, format.FieldFlags,
		},
	},
	format.VariantWindStation: {
		Variant: format.VariantWindStation, Name: "wind_station",
		Fields: []format.FieldType{
			format.FieldWindSpeed, format.FieldWindGust, format.FieldWindDirection,
			format.FieldBatteryLevel, format.FieldFlags,
		},
	},
	format.VariantDepthSensor: {
		Variant: format.VariantDepthSensor, Name: "depth_sensor",
		Fields: []format.FieldType{format.FieldDepth, format.FieldBatteryLevel, format.FieldFlags},
	},
	format.VariantPositionTracker: {
		Variant: format.VariantPositionTracker, Name: "position_tracker",
		Fields: []format.FieldType{
			format.FieldPositionLat, format.FieldPositionLon, format.FieldDateTime,
			format.FieldBatteryLevel, format.FieldFlags,
		},
	},
	format.VariantLinkQuality: {
		Variant: format.VariantLinkQuality, Name: "link_quality",
		Fields: []format.FieldType{
			format.FieldLinkRSSI, format.FieldLinkSNR, format.FieldBatteryLevel, format.FieldFlags,
		},
	},
	format.VariantImageCapture: {
		Variant: format.VariantImageCapture, Name: "image_capture",
		Fields: []format.FieldType{format.FieldImage, format.FieldBatteryLevel, format.FieldFlags},
	},
	format.VariantSolarMonitor: {
		Variant: format.VariantSolarMonitor, Name: "solar_monitor",
		Fields: []format.FieldType{
			format.FieldSolarIrradiance, format.FieldSolarUV, format.FieldBatteryLevel, format.FieldFlags,
		},
	},
	format.VariantDateTimeBeacon: {
		Variant: format.VariantDateTimeBeacon, Name: "datetime_beacon",
		Fields: []format.FieldType{format.FieldDateTime, format.FieldBatteryLevel, format.FieldFlags},
	},
	format.VariantFullScalar: {
		Variant: format.VariantFullScalar, Name: "full_scalar",
		Fields: []format.FieldType{
			format.FieldBatteryLevel, format.FieldBatteryCharging, format.FieldLinkRSSI, format.FieldLinkSNR,
			format.FieldTemperature, format.FieldPressure, format.FieldHumidity,
			format.FieldWindSpeed, format.FieldWindDirection, format.FieldRainRate,
			format.FieldSolarIrradiance, format.FieldAQIndex, format.FieldFlags,
		},
	},
	format.VariantDiagnostic: {
		Variant: format.VariantDiagnostic, Name: "diagnostic",
		Fields: []format.FieldType{
			format.FieldFlags, format.FieldBatteryLevel, format.FieldLinkRSSI, format.FieldLinkSNR,
		},
	},
}

// Lookup returns the schema for v, or false if v has no declared schema
// (reserved, unknown, or the mesh-control variant).
func Lookup(v format.Variant) (Schema, bool) {
	s, ok := Table[v]

	return s, ok
}

// IndexOf returns the position of ft within the schema's ordered field
// list, or -1 if ft is not part of this schema.
func (s Schema) IndexOf(ft format.FieldType) int {
	for i, f := range s.Fields {
		if f == ft {
			return i
		}
	}

	return -1
}
