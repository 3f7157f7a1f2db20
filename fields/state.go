// Package fields holds the physical field state a packet carries and the
// pack/unpack dispatch table that moves values between that state and the
// bit-packed wire form. It mirrors the way mebo's blob.encoderState
// carries offset/length bookkeeping across an encode pass
// (blob/numeric_encoder.go) — here the state is the set of physical
// sensor readings rather than byte offsets.
package fields

import "github.com/sigilmesh/telepack/format"

// EncoderState holds every physical field slot a variant schema might
// reference, plus a presence bitmap. Only one struct exists regardless of
// which variant is being built; the schema decides which slots get read.
type EncoderState struct {
	present [format.FieldTypeCount]bool

	BatteryLevel    float64
	BatteryCharging bool
	LinkRSSI        float64
	LinkSNR         float64
	Temperature     float64
	Pressure        float64
	Humidity        float64
	WindSpeed       float64
	WindGust        float64
	WindDirection   float64
	RainRate        float64
	RainSize        float64
	SolarIrradiance float64
	SolarUV         float64
	CloudCover      float64
	AQIndex         float64
	RadiationCPM    float64
	RadiationDose   float64
	Depth           float64
	PositionLat     float64
	PositionLon     float64
	DateTime        float64
	Flags           uint8
	Image           []byte
}

// Set marks ft present. Set writes no slot value itself: slot values are written
// directly by the Encoder.EncodeXxx methods in package packet; Set exists
// so those methods only need a field type, not a second setter per field.
func (s *EncoderState) Set(ft format.FieldType) {
	s.present[ft.Index()] = true
}

// Present reports whether ft was marked by Set.
func (s *EncoderState) Present(ft format.FieldType) bool {
	return s.present[ft.Index()]
}

// DecodedState is the decode-side mirror of EncoderState: every slot a
// decoded packet can populate, plus the presence bitmap read back off the
// wire.
type DecodedState struct {
	present [format.FieldTypeCount]bool

	BatteryLevel    float64
	BatteryCharging bool
	LinkRSSI        float64
	LinkSNR         float64
	Temperature     float64
	Pressure        float64
	Humidity        float64
	WindSpeed       float64
	WindGust        float64
	WindDirection   float64
	RainRate        float64
	RainSize        float64
	SolarIrradiance float64
	SolarUV         float64
	CloudCover      float64
	AQIndex         float64
	RadiationCPM    float64
	RadiationDose   float64
	Depth           float64
	PositionLat     float64
	PositionLon     float64
	DateTime        float64
	Flags           uint8
	Image           []byte
}

func (s *DecodedState) setPresent(ft format.FieldType) {
	s.present[ft.Index()] = true
}

// Present reports whether ft was decoded off the wire.
func (s *DecodedState) Present(ft format.FieldType) bool {
	return s.present[ft.Index()]
}
