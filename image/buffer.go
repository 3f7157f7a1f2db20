// Package image implements the length-prefixed image sub-codec: a
// control byte selecting pixel format / size tier / compression, a
// byte-packed pixel Buffer with MSB-first sub-byte pixel ordering, and
// the RLE and heatshrink-style LZSS compression schemes used over its
// raw byte stream.
package image

import (
	"fmt"

	"github.com/sigilmesh/telepack/errs"
	"github.com/sigilmesh/telepack/format"
)

// Control is the parsed form of an image field's control byte:
// pixel_format(2) | size_tier(2) | compression(2) | flags(2).
type Control struct {
	PixelFormat format.ImagePixelFormat
	SizeTier    format.ImageSizeTier
	Compression format.ImageCompression
	Flags       uint8
}

// Byte packs Control into its single-byte wire form.
func (c Control) Byte() byte {
	return byte(c.PixelFormat)<<6 | byte(c.SizeTier)<<4 | byte(c.Compression)<<2 | c.Flags&0x3
}

// ParseControl unpacks a control byte, masking each sub-field to its
// 2-bit width. It does not range-check the result: a pixel format or
// compression value of 3 passes through unchanged.
func ParseControl(b byte) Control {
	return Control{
		PixelFormat: format.ImagePixelFormat(b >> 6 & 0x3),
		SizeTier:    format.ImageSizeTier(b >> 4 & 0x3),
		Compression: format.ImageCompression(b >> 2 & 0x3),
		Flags:       b & 0x3,
	}
}

// Buffer is a byte-packed, MSB-first sub-byte pixel grid: pixels are
// packed 1/2/4 bits per pixel depending on PixelFormat, most significant
// pixel first within each byte.
type Buffer struct {
	Format format.ImagePixelFormat
	Width  int
	Height int
	data    []byte
}

// NewBuffer allocates a zeroed pixel buffer for the given format and
// dimensions.
func NewBuffer(pf format.ImagePixelFormat, width, height int) *Buffer {
	bpp := pf.BitsPerPixel()
	totalBits := width * height * bpp
	nbytes := (totalBits + 7) / 8

	return &Buffer{Format: pf, Width: width, Height: height, data: make([]byte, nbytes)}
}

// Bytes returns the packed byte backing store.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// FromBytes wraps an existing packed byte slice as a Buffer without
// copying.
func FromBytes(pf format.ImagePixelFormat, width, height int, data []byte) *Buffer {
	return &Buffer{Format: pf, Width: width, Height: height, data: data}
}

// Get returns the raw pixel value at (x,y), 0..2^bpp-1.
func (b *Buffer) Get(x, y int) uint8 {
	bpp := b.Format.BitsPerPixel()
	idx := y*b.Width + x
	bitPos := idx * bpp
	byteIdx := bitPos / 8
	shift := 8 - bpp - bitPos%8

	return (b.data[byteIdx] >> uint(shift)) & ((1 << uint(bpp)) - 1)
}

// Set writes a raw pixel value at (x,y).
func (b *Buffer) Set(x, y int, v uint8) {
	bpp := b.Format.BitsPerPixel()
	idx := y*b.Width + x
	bitPos := idx * bpp
	byteIdx := bitPos / 8
	shift := uint(8 - bpp - bitPos%8)
	mask := byte((1 << uint(bpp)) - 1)

	b.data[byteIdx] &^= mask << shift
	b.data[byteIdx] |= (v & mask) << shift
}

// Validate checks the control byte's range constraints: pixel format
// above 2, size tier above 3, or compression above 2 are all rejected.
// Encoder.EncodeImage calls it; ParseControl does not.
func (c Control) Validate() error {
	if c.PixelFormat > format.ImageGrey16 {
		return fmt.Errorf("%w: %d", errs.ErrImageFormatHigh, c.PixelFormat)
	}
	if c.SizeTier > format.ImageSize64x48 {
		return fmt.Errorf("%w: %d", errs.ErrImageSizeTierHigh, c.SizeTier)
	}
	if c.Compression > format.ImageCompressionLZSS {
		return fmt.Errorf("%w: %d", errs.ErrImageCompressionHigh, c.Compression)
	}

	return nil
}
