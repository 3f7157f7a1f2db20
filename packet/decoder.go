package packet

import (
	"github.com/sigilmesh/telepack/bitio"
	"github.com/sigilmesh/telepack/errs"
	"github.com/sigilmesh/telepack/fields"
	"github.com/sigilmesh/telepack/format"
	"github.com/sigilmesh/telepack/image"
	"github.com/sigilmesh/telepack/schema"
	"github.com/sigilmesh/telepack/tlv"
)

// maxPresenceBytes bounds the chained presence read so a corrupt stream
// with every ext bit set cannot loop forever; the largest schema
// (full_scalar-like, 13 positions) needs at most 2.
const maxPresenceBytes = 8

// Decoded is the result of a successful Decode: header fields, the
// populated field state, any TLV tail, and the final byte length
// consumed.
type Decoded struct {
	Variant  format.Variant
	Station  uint16
	Sequence uint16

	Fields fields.DecodedState
	Image  *image.Buffer

	TLV *tlv.Chain

	ByteLength int
}

// Decode parses a complete packet in a single pass: header, presence
// chain, every present field, and the TLV tail if flagged.
func Decode(buf []byte) (*Decoded, error) {
	if len(buf) < minHeaderBytes {
		return nil, errs.ErrDecodeShort
	}

	r := bitio.NewReader(buf, len(buf)*8)

	variant, station, sequence, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	if variant == format.VariantMeshControl {
		return nil, errs.ErrDecodeVariant
	}

	sc, ok := schema.Lookup(variant)
	if !ok {
		return nil, errs.ErrDecodeVariant
	}

	out := &Decoded{Variant: variant, Station: station, Sequence: sequence}

	presenceBits, hasTLV, err := readPresenceChain(r, sc)
	if err != nil {
		return nil, err
	}

	for i, ft := range sc.Fields {
		if !presenceBits[i] {
			continue
		}
		if ft == format.FieldImage {
			_, buf, err := image.Decode(r)
			if err != nil {
				return nil, err
			}
			out.Image = buf

			continue
		}
		if err := fields.Unpack(ft, &out.Fields, r); err != nil {
			return nil, err
		}
	}

	if hasTLV {
		chain, err := tlv.Decode(r)
		if err != nil {
			return nil, err
		}
		out.TLV = chain
	}

	out.ByteLength = bitio.BitsToBytes(r.Cursor())

	return out, nil
}

// Peek reads only the 32-bit shared header, without validating or
// decoding the schema body — the lighter-weight read mesh code and
// routing use before committing to a full Decode.
func Peek(buf []byte) (format.Variant, uint16, uint16, error) {
	if len(buf) < 4 {
		return 0, 0, 0, errs.ErrDecodeShort
	}

	r := bitio.NewReader(buf, len(buf)*8)

	return readHeader(r)
}

func readHeader(r *bitio.Reader) (format.Variant, uint16, uint16, error) {
	v, err := r.ReadBits(4)
	if err != nil {
		return 0, 0, 0, err
	}
	station, err := r.ReadBits(12)
	if err != nil {
		return 0, 0, 0, err
	}
	seq, err := r.ReadBits(16)
	if err != nil {
		return 0, 0, 0, err
	}

	return format.Variant(v), uint16(station), uint16(seq), nil
}

// readPresenceChain reads sc.NumPresenceBytes() bytes, returning a
// per-position presence slice sized to len(sc.Fields) and whether the
// TLV bit was set. The presence chain's length is a property of the
// schema alone (see DESIGN.md), so this never needs to consult the ext
// bit to decide when to stop; on well-formed input the last byte's ext
// bit is always 0 anyway.
func readPresenceChain(r *bitio.Reader, sc schema.Schema) ([]bool, bool, error) {
	numBytes := sc.NumPresenceBytes()
	if numBytes > maxPresenceBytes {
		numBytes = maxPresenceBytes
	}

	presence := make([]bool, len(sc.Fields))
	hasTLV := false
	pos := 0

	for byteIdx := 0; byteIdx < numBytes; byteIdx++ {
		_, err := r.ReadBits(1) // ext
		if err != nil {
			return nil, false, err
		}

		if byteIdx == 0 {
			tlvBit, err := r.ReadBits(1)
			if err != nil {
				return nil, false, err
			}
			hasTLV = tlvBit != 0

			for b := 0; b < 6; b++ {
				bit, err := r.ReadBits(1)
				if err != nil {
					return nil, false, err
				}
				if pos < len(sc.Fields) {
					presence[pos] = bit != 0
				}
				pos++
			}
		} else {
			for b := 0; b < 7; b++ {
				bit, err := r.ReadBits(1)
				if err != nil {
					return nil, false, err
				}
				if pos < len(sc.Fields) {
					presence[pos] = bit != 0
				}
				pos++
			}
		}
	}

	return presence, hasTLV, nil
}
