// Package errs collects the sentinel errors returned across telepack.
//
// Every package wraps one of these sentinels with context via
// fmt.Errorf("%w: ...") rather than returning a bare string or a new
// error type, so callers can always recover the error domain with
// errors.Is.
package errs

import "errors"

var (
	// State errors (encoder lifecycle).
	ErrContextNil     = errors.New("telepack: encoder context is nil")
	ErrNotBegun       = errors.New("telepack: encoder has not been started")
	ErrAlreadyBegun   = errors.New("telepack: encoder already begun")
	ErrAlreadyEnded   = errors.New("telepack: encoder already ended")
	ErrDuplicateField = errors.New("telepack: field already has presence set")

	// Buffer errors.
	ErrBufferNil      = errors.New("telepack: buffer is nil")
	ErrBufferTooSmall = errors.New("telepack: buffer too small")
	ErrBufferOverflow = errors.New("telepack: bit write exceeds buffer capacity")

	// Header errors.
	ErrVariantHigh     = errors.New("telepack: variant exceeds maximum sensor variant")
	ErrVariantReserved = errors.New("telepack: variant 0x0F is reserved for mesh control")
	ErrVariantUnknown  = errors.New("telepack: no schema registered for variant")
	ErrStationHigh     = errors.New("telepack: station exceeds 12-bit maximum")
	ErrStationReserved = errors.New("telepack: station 0 is reserved and cannot be emitted")

	// Decode errors.
	ErrDecodeShort     = errors.New("telepack: buffer too small for packet header")
	ErrDecodeTruncated = errors.New("telepack: field unpack exceeded buffer bounds")
	ErrDecodeVariant   = errors.New("telepack: decode encountered reserved or unknown variant")

	// Field lifecycle / range errors.
	ErrFieldRange          = errors.New("telepack: field value outside declared quantizer bounds")
	ErrNoMetricStarted     = errors.New("telepack: no field range applicable outside encoder context")
	ErrUnknownFieldType    = errors.New("telepack: unknown field type")
	ErrFieldNotInSchema    = errors.New("telepack: field is not declared by the active variant schema")
	ErrEnvironmentConflict = errors.New("telepack: mixing composite and standalone environment encoders is undefined")

	// TLV errors.
	ErrTLVTypeHigh      = errors.New("telepack: tlv type exceeds 6-bit maximum")
	ErrTLVDataNil       = errors.New("telepack: tlv data is nil")
	ErrTLVLengthHigh    = errors.New("telepack: tlv length exceeds 255")
	ErrTLVFull          = errors.New("telepack: tlv chain capacity exceeded")
	ErrTLVStringNil     = errors.New("telepack: tlv string data is nil")
	ErrTLVStringTooLong = errors.New("telepack: tlv string exceeds 255 characters")
	ErrTLVStringChar    = errors.New("telepack: tlv string contains a character outside the 6-bit alphabet")
	ErrTLVKVOddCount    = errors.New("telepack: tlv key/value helper requires an even number of strings")
	ErrTLVKVEmptyValue  = errors.New("telepack: tlv key/value helper rejects an empty value")

	// Image errors.
	ErrImageFormatHigh      = errors.New("telepack: image pixel format exceeds 2 bits")
	ErrImageSizeTierHigh    = errors.New("telepack: image size tier exceeds 2 bits")
	ErrImageCompressionHigh = errors.New("telepack: image compression exceeds 2 bits")
	ErrImageDataNil         = errors.New("telepack: image payload data is nil")
	ErrImageDataLengthHigh  = errors.New("telepack: image payload exceeds 254 bytes")
	ErrImageBackrefInvalid  = errors.New("telepack: lzss back-reference points before start of output")

	// Mesh errors.
	ErrMeshControlUnknown = errors.New("telepack: unknown mesh control type")
	ErrMeshTTLExpired     = errors.New("telepack: forward ttl reached zero")
	ErrMeshDuplicate      = errors.New("telepack: duplicate origin/sequence dropped by dedup ring")
	ErrMeshNoParent       = errors.New("telepack: node has no parent selected")
	ErrMeshNeighboursFull = errors.New("telepack: neighbour table at capacity")
)
