package image

import (
	"fmt"

	"github.com/sigilmesh/telepack/bitio"
	"github.com/sigilmesh/telepack/errs"
	"github.com/sigilmesh/telepack/format"
)

// MaxPayloadLength is the largest payload a single image field can carry:
// the 8-bit length field's range minus the control byte itself.
const MaxPayloadLength = 254

// Encode writes an image field's full wire form: length(8) | control(8) |
// payload(length-1 bytes), where payload is the (possibly compressed)
// form of buf's packed pixel data chosen by ctrl.Compression.
func Encode(w *bitio.Writer, ctrl Control, buf *Buffer) error {
	payload, err := compressPayload(ctrl, buf)
	if err != nil {
		return err
	}
	if len(payload) > MaxPayloadLength {
		return fmt.Errorf("%w: %d", errs.ErrImageDataLengthHigh, len(payload))
	}

	if err := w.WriteBits(uint64(len(payload)+1), 8); err != nil {
		return err
	}
	if err := w.WriteBits(uint64(ctrl.Byte()), 8); err != nil {
		return err
	}

	return w.WriteBytes(payload)
}

func compressPayload(ctrl Control, buf *Buffer) ([]byte, error) {
	switch ctrl.Compression {
	case format.ImageCompressionRaw:
		return buf.Bytes(), nil
	case format.ImageCompressionRLE:
		w, h := ctrl.SizeTier.Dimensions()

		return EncodeRLE(ctrl.PixelFormat, buf.Bytes(), w*h), nil
	case format.ImageCompressionLZSS:
		return EncodeLZSS(buf.Bytes())
	default:
		return nil, fmt.Errorf("%w: %d", errs.ErrImageCompressionHigh, ctrl.Compression)
	}
}

// Decode reads an image field off r and reconstructs its pixel Buffer.
func Decode(r *bitio.Reader) (Control, *Buffer, error) {
	length, err := r.ReadBits(8)
	if err != nil {
		return Control{}, nil, err
	}
	if length == 0 {
		return Control{}, nil, errs.ErrImageDataLengthHigh
	}

	ctrlByte, err := r.ReadBits(8)
	if err != nil {
		return Control{}, nil, err
	}
	ctrl := ParseControl(byte(ctrlByte))

	payload, err := r.ReadBytes(int(length) - 1)
	if err != nil {
		return ctrl, nil, err
	}

	w, h := ctrl.SizeTier.Dimensions()
	pixelCount := w * h
	rawLen := (pixelCount*ctrl.PixelFormat.BitsPerPixel() + 7) / 8

	var raw []byte
	switch ctrl.Compression {
	case format.ImageCompressionRaw:
		raw = payload
	case format.ImageCompressionRLE:
		raw = DecodeRLE(ctrl.PixelFormat, payload, rawLen)
	case format.ImageCompressionLZSS:
		pr := bitio.NewReader(payload, len(payload)*8)
		raw, err = DecodeLZSS(pr, rawLen)
		if err != nil {
			return ctrl, nil, err
		}
	default:
		return ctrl, nil, fmt.Errorf("%w: %d", errs.ErrImageCompressionHigh, ctrl.Compression)
	}

	return ctrl, FromBytes(ctrl.PixelFormat, w, h, raw), nil
}
