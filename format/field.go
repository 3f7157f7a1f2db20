package format

import "fmt"

// FieldType identifies one declarable slot in a variant schema. Values are
// stable across the module; they are never serialized directly on the wire
// (presence is positional, tracked by the presence chain), but they key
// the field registry in package fields and the quantizer table in
// package quant.
type FieldType uint8

const (
	FieldBatteryLevel FieldType = iota + 1
	FieldBatteryCharging
	FieldLinkRSSI
	FieldLinkSNR
	FieldTemperature
	FieldPressure
	FieldHumidity
	FieldEnvironment // composite: temperature+pressure+humidity, 24 bits
	FieldWindSpeed
	FieldWindGust
	FieldWindDirection
	FieldRainRate
	FieldRainSize
	FieldSolarIrradiance
	FieldSolarUV
	FieldCloudCover
	FieldAQIndex
	FieldRadiationCPM
	FieldRadiationDose
	FieldDepth
	FieldPositionLat
	FieldPositionLon
	FieldDateTime
	FieldFlags
	FieldImage

	// fieldTypeCount must stay last: it sizes presence-bitmap arrays.
	fieldTypeCount
)

// FieldTypeCount is the number of distinct field types the registry knows
// about, used to size fixed presence-bitmap arrays without a map.
const FieldTypeCount = int(fieldTypeCount) - 1

var fieldNames = map[FieldType]string{
	FieldBatteryLevel:    "battery_level",
	FieldBatteryCharging: "battery_charging",
	FieldLinkRSSI:        "link_rssi",
	FieldLinkSNR:         "link_snr",
	FieldTemperature:     "temperature",
	FieldPressure:        "pressure",
	FieldHumidity:        "humidity",
	FieldEnvironment:     "environment",
	FieldWindSpeed:       "wind_speed",
	FieldWindGust:        "wind_gust",
	FieldWindDirection:   "wind_direction",
	FieldRainRate:        "rain_rate",
	FieldRainSize:        "rain_size",
	FieldSolarIrradiance: "solar_irradiance",
	FieldSolarUV:         "solar_uv",
	FieldCloudCover:      "cloud_cover",
	FieldAQIndex:         "aq_index",
	FieldRadiationCPM:    "radiation_cpm",
	FieldRadiationDose:   "radiation_dose",
	FieldDepth:           "depth",
	FieldPositionLat:     "position_lat",
	FieldPositionLon:     "position_lon",
	FieldDateTime:        "datetime",
	FieldFlags:           "flags",
	FieldImage:           "image",
}

func (f FieldType) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}

	return fmt.Sprintf("FieldType(%d)", uint8(f))
}

// Index returns the zero-based slot used by presence bitmaps.
func (f FieldType) Index() int {
	return int(f) - 1
}
