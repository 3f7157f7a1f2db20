// Package packet implements the Idle→Begun→Ended encoder state machine
// and the single-shot Decode function, wiring together package bitio, fields,
// schema, tlv, and image the way mebo's
// blob.NumericEncoder/NumericDecoder wire together section, encoding,
// and compress (blob/numeric_encoder.go, blob/numeric_decoder.go).
package packet

import (
	"fmt"

	"github.com/sigilmesh/telepack/bitio"
	"github.com/sigilmesh/telepack/errs"
	"github.com/sigilmesh/telepack/fields"
	"github.com/sigilmesh/telepack/format"
	"github.com/sigilmesh/telepack/image"
	"github.com/sigilmesh/telepack/quant"
	"github.com/sigilmesh/telepack/schema"
	"github.com/sigilmesh/telepack/tlv"
)

// encoderState is the Encoder's lifecycle position, mirroring mebo's
// mode-exclusivity validation pattern but with exactly three states
// rather than mode flags.
type encoderState int

const (
	stateIdle encoderState = iota
	stateBegun
	stateEnded
)

// minHeaderBytes is the smallest buffer End can ever produce: 4-byte
// header plus a single presence byte.
const minHeaderBytes = 5

// Encoder builds one packet. It is not safe for concurrent use, and a
// single instance is meant to be reused across packets via repeated
// Begin/End calls (Begin resets all state).
type Encoder struct {
	state encoderState
	buf   []byte

	variant  format.Variant
	station  uint16
	sequence uint16
	schema   schema.Schema

	estate   fields.EncoderState
	tlv      tlv.Chain
	imgCtrl  image.Control
	imgBuf   *image.Buffer
}

// NewEncoder wraps out for a single encode pass. out's full capacity is
// the encode buffer; a new Encoder (or a Begin call on this one) is
// required per packet.
func NewEncoder(out []byte) *Encoder {
	return &Encoder{buf: out}
}

// Begin validates variant and station and transitions Idle→Begun,
// zeroing any state left over from a previous packet.
func (e *Encoder) Begin(variant format.Variant, station, sequence uint16) error {
	if e.state == stateBegun {
		return errs.ErrAlreadyBegun
	}
	if variant == format.VariantMeshControl {
		return errs.ErrVariantReserved
	}
	if variant > format.MaxSensorVariant {
		return errs.ErrVariantHigh
	}
	if station > 0xFFF {
		return errs.ErrStationHigh
	}
	if station == 0 {
		return errs.ErrStationReserved
	}
	sc, ok := schema.Lookup(variant)
	if !ok {
		return errs.ErrVariantUnknown
	}
	if len(e.buf) < minHeaderBytes {
		return errs.ErrBufferTooSmall
	}

	e.state = stateBegun
	e.variant = variant
	e.station = station
	e.sequence = sequence
	e.schema = sc
	e.estate = fields.EncoderState{}
	e.tlv = tlv.Chain{}
	e.imgBuf = nil

	return nil
}

func (e *Encoder) checkBegun() error {
	if e.state != stateBegun {
		return errs.ErrNotBegun
	}

	return nil
}

// encodeScalar stages one scalar physical value into estate after
// checking lifecycle, duplicate-presence, and the field's declared
// range, the shared contract every per-field encode method follows.
func (e *Encoder) encodeScalar(ft format.FieldType, v float64, set func(*fields.EncoderState, float64)) error {
	if err := e.checkBegun(); err != nil {
		return err
	}
	if e.estate.Present(ft) {
		return fmt.Errorf("%w: %s", errs.ErrDuplicateField, ft)
	}

	q, ok := quant.Table[ft]
	if ok {
		min, max := q.Bounds()
		if v < min || v > max {
			return errs.NewFieldRangeError(ft.String(), v, min, max)
		}
	}

	set(&e.estate, v)
	e.estate.Set(ft)

	return nil
}

func (e *Encoder) EncodeBatteryLevel(v float64) error {
	return e.encodeScalar(format.FieldBatteryLevel, v, func(s *fields.EncoderState, v float64) { s.BatteryLevel = v })
}

func (e *Encoder) EncodeBatteryCharging(charging bool) error {
	if err := e.checkBegun(); err != nil {
		return err
	}
	if e.estate.Present(format.FieldBatteryCharging) {
		return fmt.Errorf("%w: %s", errs.ErrDuplicateField, format.FieldBatteryCharging)
	}
	e.estate.BatteryCharging = charging
	e.estate.Set(format.FieldBatteryCharging)

	return nil
}

func (e *Encoder) EncodeLinkRSSI(v float64) error {
	return e.encodeScalar(format.FieldLinkRSSI, v, func(s *fields.EncoderState, v float64) { s.LinkRSSI = v })
}

func (e *Encoder) EncodeLinkSNR(v float64) error {
	return e.encodeScalar(format.FieldLinkSNR, v, func(s *fields.EncoderState, v float64) { s.LinkSNR = v })
}

func (e *Encoder) EncodeTemperature(v float64) error {
	return e.encodeScalar(format.FieldTemperature, v, func(s *fields.EncoderState, v float64) { s.Temperature = v })
}

func (e *Encoder) EncodePressure(v float64) error {
	return e.encodeScalar(format.FieldPressure, v, func(s *fields.EncoderState, v float64) { s.Pressure = v })
}

func (e *Encoder) EncodeHumidity(v float64) error {
	return e.encodeScalar(format.FieldHumidity, v, func(s *fields.EncoderState, v float64) { s.Humidity = v })
}

// EncodeEnvironment is the composite form: it sets FieldEnvironment's
// presence bit while writing into the same Temperature/Pressure/Humidity
// slots the standalone setters use.
func (e *Encoder) EncodeEnvironment(t, p, h float64) error {
	if err := e.checkBegun(); err != nil {
		return err
	}
	if e.estate.Present(format.FieldEnvironment) {
		return fmt.Errorf("%w: %s", errs.ErrDuplicateField, format.FieldEnvironment)
	}
	for ft, v := range map[format.FieldType]float64{
		format.FieldTemperature: t, format.FieldPressure: p, format.FieldHumidity: h,
	} {
		min, max := quant.Table[ft].Bounds()
		if v < min || v > max {
			return errs.NewFieldRangeError(ft.String(), v, min, max)
		}
	}

	e.estate.Temperature = t
	e.estate.Pressure = p
	e.estate.Humidity = h
	e.estate.Set(format.FieldEnvironment)

	return nil
}

func (e *Encoder) EncodeWindSpeed(v float64) error {
	return e.encodeScalar(format.FieldWindSpeed, v, func(s *fields.EncoderState, v float64) { s.WindSpeed = v })
}

func (e *Encoder) EncodeWindGust(v float64) error {
	return e.encodeScalar(format.FieldWindGust, v, func(s *fields.EncoderState, v float64) { s.WindGust = v })
}

func (e *Encoder) EncodeWindDirection(v float64) error {
	return e.encodeScalar(format.FieldWindDirection, v, func(s *fields.EncoderState, v float64) { s.WindDirection = v })
}

func (e *Encoder) EncodeRainRate(v float64) error {
	return e.encodeScalar(format.FieldRainRate, v, func(s *fields.EncoderState, v float64) { s.RainRate = v })
}

func (e *Encoder) EncodeRainSize(v float64) error {
	return e.encodeScalar(format.FieldRainSize, v, func(s *fields.EncoderState, v float64) { s.RainSize = v })
}

func (e *Encoder) EncodeSolarIrradiance(v float64) error {
	return e.encodeScalar(format.FieldSolarIrradiance, v, func(s *fields.EncoderState, v float64) { s.SolarIrradiance = v })
}

func (e *Encoder) EncodeSolarUV(v float64) error {
	return e.encodeScalar(format.FieldSolarUV, v, func(s *fields.EncoderState, v float64) { s.SolarUV = v })
}

func (e *Encoder) EncodeCloudCover(v float64) error {
	return e.encodeScalar(format.FieldCloudCover, v, func(s *fields.EncoderState, v float64) { s.CloudCover = v })
}

func (e *Encoder) EncodeAQIndex(v float64) error {
	return e.encodeScalar(format.FieldAQIndex, v, func(s *fields.EncoderState, v float64) { s.AQIndex = v })
}

func (e *Encoder) EncodeRadiationCPM(v float64) error {
	return e.encodeScalar(format.FieldRadiationCPM, v, func(s *fields.EncoderState, v float64) { s.RadiationCPM = v })
}

func (e *Encoder) EncodeRadiationDose(v float64) error {
	return e.encodeScalar(format.FieldRadiationDose, v, func(s *fields.EncoderState, v float64) { s.RadiationDose = v })
}

func (e *Encoder) EncodeDepth(v float64) error {
	return e.encodeScalar(format.FieldDepth, v, func(s *fields.EncoderState, v float64) { s.Depth = v })
}

func (e *Encoder) EncodePositionLat(v float64) error {
	return e.encodeScalar(format.FieldPositionLat, v, func(s *fields.EncoderState, v float64) { s.PositionLat = v })
}

func (e *Encoder) EncodePositionLon(v float64) error {
	return e.encodeScalar(format.FieldPositionLon, v, func(s *fields.EncoderState, v float64) { s.PositionLon = v })
}

func (e *Encoder) EncodeDateTime(v float64) error {
	return e.encodeScalar(format.FieldDateTime, v, func(s *fields.EncoderState, v float64) { s.DateTime = v })
}

func (e *Encoder) EncodeFlags(v uint8) error {
	if err := e.checkBegun(); err != nil {
		return err
	}
	if e.estate.Present(format.FieldFlags) {
		return fmt.Errorf("%w: %s", errs.ErrDuplicateField, format.FieldFlags)
	}
	e.estate.Flags = v
	e.estate.Set(format.FieldFlags)

	return nil
}

// EncodeImage stages an image field. ctrl and buf are borrowed, not
// copied; callers must not mutate buf after passing it in.
func (e *Encoder) EncodeImage(ctrl image.Control, buf *image.Buffer) error {
	if err := e.checkBegun(); err != nil {
		return err
	}
	if e.estate.Present(format.FieldImage) {
		return fmt.Errorf("%w: %s", errs.ErrDuplicateField, format.FieldImage)
	}
	if err := ctrl.Validate(); err != nil {
		return err
	}

	e.imgCtrl = ctrl
	e.imgBuf = buf
	e.estate.Set(format.FieldImage)

	return nil
}

// EncodeTLVRaw appends a raw TLV entry to the pending tail.
func (e *Encoder) EncodeTLVRaw(typ uint8, data []byte) error {
	if err := e.checkBegun(); err != nil {
		return err
	}

	return e.tlv.AddRaw(typ, data)
}

// EncodeTLVString appends a 6-bit-alphabet string TLV entry.
func (e *Encoder) EncodeTLVString(typ uint8, s string) error {
	if err := e.checkBegun(); err != nil {
		return err
	}

	return e.tlv.AddString(typ, s)
}

// End transitions Begun→Ended and serializes header, presence chain,
// field bits, and any TLV tail into the buffer passed to NewEncoder.
// It returns the packet's final byte length.
func (e *Encoder) End() (int, error) {
	if err := e.checkBegun(); err != nil {
		return 0, err
	}
	e.state = stateEnded

	w := bitio.NewWriter(e.buf)

	if err := w.WriteBits(uint64(e.variant), 4); err != nil {
		return 0, err
	}
	if err := w.WriteBits(uint64(e.station), 12); err != nil {
		return 0, err
	}
	if err := w.WriteBits(uint64(e.sequence), 16); err != nil {
		return 0, err
	}

	numPres := e.schema.NumPresenceBytes()
	hasTLV := e.tlv.Len() > 0

	pos := 0
	for byteIdx := 0; byteIdx < numPres; byteIdx++ {
		ext := uint64(0)
		if byteIdx < numPres-1 {
			ext = 1
		}

		if byteIdx == 0 {
			tlvBit := uint64(0)
			if hasTLV {
				tlvBit = 1
			}
			if err := w.WriteBits(ext, 1); err != nil {
				return 0, err
			}
			if err := w.WriteBits(tlvBit, 1); err != nil {
				return 0, err
			}
			for b := 0; b < 6; b++ {
				if err := w.WriteBits(e.presenceAt(pos), 1); err != nil {
					return 0, err
				}
				pos++
			}
		} else {
			if err := w.WriteBits(ext, 1); err != nil {
				return 0, err
			}
			for b := 0; b < 7; b++ {
				if err := w.WriteBits(e.presenceAt(pos), 1); err != nil {
					return 0, err
				}
				pos++
			}
		}
	}

	for _, ft := range e.schema.Fields {
		if !e.estate.Present(ft) {
			continue
		}
		if ft == format.FieldImage {
			if err := image.Encode(w, e.imgCtrl, e.imgBuf); err != nil {
				return 0, err
			}

			continue
		}
		if err := fields.Pack(ft, &e.estate, w); err != nil {
			return 0, err
		}
	}

	if hasTLV {
		if err := e.tlv.Encode(w); err != nil {
			return 0, err
		}
	}

	return w.BytesWritten(), nil
}

// presenceAt returns the presence bit for schema position pos; positions
// past the schema's last field pad the presence byte with 0.
func (e *Encoder) presenceAt(pos int) uint64 {
	if pos >= len(e.schema.Fields) {
		return 0
	}

	return presenceBit(&e.estate, e.schema.Fields[pos])
}

func presenceBit(s *fields.EncoderState, ft format.FieldType) uint64 {
	if s.Present(ft) {
		return 1
	}

	return 0
}
