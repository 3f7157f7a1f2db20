package fields

import (
	"fmt"

	"github.com/sigilmesh/telepack/bitio"
	"github.com/sigilmesh/telepack/errs"
	"github.com/sigilmesh/telepack/format"
	"github.com/sigilmesh/telepack/quant"
)

// PackFunc writes one field's bits from state onto w.
type PackFunc func(s *EncoderState, w *bitio.Writer) error

// UnpackFunc reads one field's bits from r into state.
type UnpackFunc func(s *DecodedState, r *bitio.Reader) error

// packTable and unpackTable are keyed by format.FieldType so that encoding
// and decoding a variant schema is a loop over its field list, one map
// lookup per field, rather than a growing type switch over field types.
// FieldImage has no entry: its variable-length sub-codec is driven
// directly by package packet, not through this fixed-width dispatch.
var packTable map[format.FieldType]PackFunc
var unpackTable map[format.FieldType]UnpackFunc

func scalarPack(ft format.FieldType) PackFunc {
	q := quant.Table[ft]

	return func(s *EncoderState, w *bitio.Writer) error {
		return w.WriteBits(uint64(q.Quantize(s.get(ft))), q.Bits())
	}
}

func scalarUnpack(ft format.FieldType) UnpackFunc {
	q := quant.Table[ft]

	return func(s *DecodedState, r *bitio.Reader) error {
		raw, err := r.ReadBits(q.Bits())
		if err != nil {
			return err
		}
		s.set(ft, q.Dequantize(uint32(raw)))
		s.setPresent(ft)

		return nil
	}
}

func init() {
	packTable = map[format.FieldType]PackFunc{
		format.FieldBatteryCharging: func(s *EncoderState, w *bitio.Writer) error {
			v := uint64(0)
			if s.BatteryCharging {
				v = 1
			}

			return w.WriteBits(v, 1)
		},
		format.FieldFlags: func(s *EncoderState, w *bitio.Writer) error {
			return w.WriteBits(uint64(s.Flags), 8)
		},
		format.FieldEnvironment: func(s *EncoderState, w *bitio.Writer) error {
			qt, qp, qh := quant.Table[format.FieldTemperature], quant.Table[format.FieldPressure], quant.Table[format.FieldHumidity]
			if err := w.WriteBits(uint64(qt.Quantize(s.Temperature)), qt.Bits()); err != nil {
				return err
			}
			if err := w.WriteBits(uint64(qp.Quantize(s.Pressure)), qp.Bits()); err != nil {
				return err
			}

			return w.WriteBits(uint64(qh.Quantize(s.Humidity)), qh.Bits())
		},
	}

	unpackTable = map[format.FieldType]UnpackFunc{
		format.FieldBatteryCharging: func(s *DecodedState, r *bitio.Reader) error {
			v, err := r.ReadBits(1)
			if err != nil {
				return err
			}
			s.BatteryCharging = v != 0
			s.setPresent(format.FieldBatteryCharging)

			return nil
		},
		format.FieldFlags: func(s *DecodedState, r *bitio.Reader) error {
			v, err := r.ReadBits(8)
			if err != nil {
				return err
			}
			s.Flags = uint8(v)
			s.setPresent(format.FieldFlags)

			return nil
		},
		format.FieldEnvironment: func(s *DecodedState, r *bitio.Reader) error {
			qt, qp, qh := quant.Table[format.FieldTemperature], quant.Table[format.FieldPressure], quant.Table[format.FieldHumidity]

			t, err := r.ReadBits(qt.Bits())
			if err != nil {
				return err
			}
			p, err := r.ReadBits(qp.Bits())
			if err != nil {
				return err
			}
			h, err := r.ReadBits(qh.Bits())
			if err != nil {
				return err
			}

			s.Temperature = qt.Dequantize(uint32(t))
			s.Pressure = qp.Dequantize(uint32(p))
			s.Humidity = qh.Dequantize(uint32(h))
			s.setPresent(format.FieldEnvironment)

			return nil
		},
	}

	for ft := range quant.Table {
		packTable[ft] = scalarPack(ft)
		unpackTable[ft] = scalarUnpack(ft)
	}
}

// Pack writes ft's bits from s onto w, dispatching through packTable.
func Pack(ft format.FieldType, s *EncoderState, w *bitio.Writer) error {
	fn, ok := packTable[ft]
	if !ok {
		return fmt.Errorf("%w: %s", errs.ErrUnknownFieldType, ft)
	}

	return fn(s, w)
}

// Unpack reads ft's bits from r into s, dispatching through unpackTable.
func Unpack(ft format.FieldType, s *DecodedState, r *bitio.Reader) error {
	fn, ok := unpackTable[ft]
	if !ok {
		return fmt.Errorf("%w: %s", errs.ErrUnknownFieldType, ft)
	}

	return fn(s, r)
}

// get returns the physical value last written for ft, for the scalar
// fields that share the generic quantizer-table pack path.
func (s *EncoderState) get(ft format.FieldType) float64 {
	switch ft {
	case format.FieldBatteryLevel:
		return s.BatteryLevel
	case format.FieldLinkRSSI:
		return s.LinkRSSI
	case format.FieldLinkSNR:
		return s.LinkSNR
	case format.FieldTemperature:
		return s.Temperature
	case format.FieldPressure:
		return s.Pressure
	case format.FieldHumidity:
		return s.Humidity
	case format.FieldWindSpeed:
		return s.WindSpeed
	case format.FieldWindGust:
		return s.WindGust
	case format.FieldWindDirection:
		return s.WindDirection
	case format.FieldRainRate:
		return s.RainRate
	case format.FieldRainSize:
		return s.RainSize
	case format.FieldSolarIrradiance:
		return s.SolarIrradiance
	case format.FieldSolarUV:
		return s.SolarUV
	case format.FieldCloudCover:
		return s.CloudCover
	case format.FieldAQIndex:
		return s.AQIndex
	case format.FieldRadiationCPM:
		return s.RadiationCPM
	case format.FieldRadiationDose:
		return s.RadiationDose
	case format.FieldDepth:
		return s.Depth
	case format.FieldPositionLat:
		return s.PositionLat
	case format.FieldPositionLon:
		return s.PositionLon
	case format.FieldDateTime:
		return s.DateTime
	default:
		return 0
	}
}

// set writes v into the physical slot for ft, the decode-side counterpart
// of get.
func (s *DecodedState) set(ft format.FieldType, v float64) {
	switch ft {
	case format.FieldBatteryLevel:
		s.BatteryLevel = v
	case format.FieldLinkRSSI:
		s.LinkRSSI = v
	case format.FieldLinkSNR:
		s.LinkSNR = v
	case format.FieldTemperature:
		s.Temperature = v
	case format.FieldPressure:
		s.Pressure = v
	case format.FieldHumidity:
		s.Humidity = v
	case format.FieldWindSpeed:
		s.WindSpeed = v
	case format.FieldWindGust:
		s.WindGust = v
	case format.FieldWindDirection:
		s.WindDirection = v
	case format.FieldRainRate:
		s.RainRate = v
	case format.FieldRainSize:
		s.RainSize = v
	case format.FieldSolarIrradiance:
		s.SolarIrradiance = v
	case format.FieldSolarUV:
		s.SolarUV = v
	case format.FieldCloudCover:
		s.CloudCover = v
	case format.FieldAQIndex:
		s.AQIndex = v
	case format.FieldRadiationCPM:
		s.RadiationCPM = v
	case format.FieldRadiationDose:
		s.RadiationDose = v
	case format.FieldDepth:
		s.Depth = v
	case format.FieldPositionLat:
		s.PositionLat = v
	case format.FieldPositionLon:
		s.PositionLon = v
	case format.FieldDateTime:
		s.DateTime = v
	}
}
