package format

import "fmt"

// TLVFormat is the 2-bit payload-interpretation tag in a TLV entry header.
type TLVFormat uint8

const (
	TLVFormatRaw     TLVFormat = 0
	TLVFormatString6 TLVFormat = 1
)

func (f TLVFormat) String() string {
	switch f {
	case TLVFormatRaw:
		return "raw"
	case TLVFormatString6:
		return "string6"
	default:
		return fmt.Sprintf("TLVFormat(%d)", uint8(f))
	}
}

// Well-known TLV types occupy the global range 0x00..0x0F.
const (
	TLVTypeVersion    uint8 = 0x00
	TLVTypeStatus     uint8 = 0x01
	TLVTypeHealth     uint8 = 0x02
	TLVTypeConfig     uint8 = 0x03
	TLVTypeDiagnostic uint8 = 0x04
	TLVTypeUserData   uint8 = 0x05

	// TLVTypeQualityBase starts the quality/metadata range 0x10..0x1F.
	TLVTypeQualityBase uint8 = 0x10
	// TLVTypeApplicationBase starts the free-for-use application range.
	TLVTypeApplicationBase uint8 = 0x20

	// TLVTypeMax is the largest representable 6-bit TLV type.
	TLVTypeMax uint8 = 0x3F
)
