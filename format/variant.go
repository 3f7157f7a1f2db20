// Package format holds the small, allocation-free enum types shared across
// telepack: wire-level tags whose meaning is fixed (variant numbers,
// field types, control types, TLV formats, image sub-fields) rather
// than anything configurable at runtime.
package format

import "fmt"

// Variant is the 4-bit schema selector carried in every packet header.
type Variant uint8

const (
	VariantWeatherStation     Variant = 0
	VariantExtendedWeather    Variant = 1
	VariantEnvironmentalSplit Variant = 2
	VariantAirQuality         Variant = 3
	VariantRadiationMonitor   Variant = 4
	VariantRainGauge          Variant = 5
	VariantWindStation        Variant = 6
	VariantDepthSensor        Variant = 7
	VariantPositionTracker    Variant = 8
	VariantLinkQuality        Variant = 9
	VariantImageCapture       Variant = 10
	VariantSolarMonitor       Variant = 11
	VariantDateTimeBeacon     Variant = 12
	VariantFullScalar         Variant = 13
	VariantDiagnostic         Variant = 14

	// VariantMeshControl is the reserved variant: never a sensor
	// schema, always dispatched to the mesh package.
	VariantMeshControl Variant = 0x0F

	// MaxSensorVariant is the highest variant number usable as a sensor
	// schema; anything above it but below VariantMeshControl is invalid,
	// and VariantMeshControl itself is reserved.
	MaxSensorVariant Variant = 14
)

var variantNames = map[Variant]string{
	VariantWeatherStation:     "weather_station",
	VariantExtendedWeather:    "extended_weather",
	VariantEnvironmentalSplit: "environmental_split",
	VariantAirQuality:         "air_quality",
	VariantRadiationMonitor:   "radiation_monitor",
	VariantRainGauge:          "rain_gauge",
	VariantWindStation:        "wind_station",
	VariantDepthSensor:        "depth_sensor",
	VariantPositionTracker:    "position_tracker",
	VariantLinkQuality:        "link_quality",
	VariantImageCapture:       "image_capture",
	VariantSolarMonitor:       "solar_monitor",
	VariantDateTimeBeacon:     "datetime_beacon",
	VariantFullScalar:         "full_scalar",
	VariantDiagnostic:         "diagnostic",
	VariantMeshControl:        "mesh_control",
}

func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}

	return fmt.Sprintf("Variant(%d)", uint8(v))
}

// IsReserved reports whether v is the mesh-control variant.
func (v Variant) IsReserved() bool {
	return v == VariantMeshControl
}

// IsSensorRange reports whether v falls in the 0..14 sensor range,
// independent of whether a schema is actually registered for it.
func (v Variant) IsSensorRange() bool {
	return v <= MaxSensorVariant
}
