package format

import "fmt"

// ImagePixelFormat is the 2-bit pixel-depth tag in an image control byte.
type ImagePixelFormat uint8

const (
	ImageBilevel ImagePixelFormat = 0 // 1 bit per pixel
	ImageGrey4   ImagePixelFormat = 1 // 2 bits per pixel
	ImageGrey16  ImagePixelFormat = 2 // 4 bits per pixel
)

func (f ImagePixelFormat) String() string {
	switch f {
	case ImageBilevel:
		return "bilevel"
	case ImageGrey4:
		return "grey4"
	case ImageGrey16:
		return "grey16"
	default:
		return fmt.Sprintf("ImagePixelFormat(%d)", uint8(f))
	}
}

// BitsPerPixel returns the sub-byte pixel width for f.
func (f ImagePixelFormat) BitsPerPixel() int {
	switch f {
	case ImageBilevel:
		return 1
	case ImageGrey4:
		return 2
	case ImageGrey16:
		return 4
	default:
		return 0
	}
}

// ImageSizeTier is the 2-bit resolution tag in an image control byte.
type ImageSizeTier uint8

const (
	ImageSize24x18 ImageSizeTier = 0
	ImageSize32x24 ImageSizeTier = 1
	ImageSize48x36 ImageSizeTier = 2
	ImageSize64x48 ImageSizeTier = 3
)

func (t ImageSizeTier) String() string {
	w, h := t.Dimensions()

	return fmt.Sprintf("%dx%d", w, h)
}

// Dimensions returns the (width, height) pixel dimensions for the tier.
func (t ImageSizeTier) Dimensions() (int, int) {
	switch t {
	case ImageSize24x18:
		return 24, 18
	case ImageSize32x24:
		return 32, 24
	case ImageSize48x36:
		return 48, 36
	case ImageSize64x48:
		return 64, 48
	default:
		return 0, 0
	}
}

// ImageCompression is the 2-bit compression-scheme tag in an image control byte.
type ImageCompression uint8

const (
	ImageCompressionRaw  ImageCompression = 0
	ImageCompressionRLE  ImageCompression = 1
	ImageCompressionLZSS ImageCompression = 2
)

func (c ImageCompression) String() string {
	switch c {
	case ImageCompressionRaw:
		return "raw"
	case ImageCompressionRLE:
		return "rle"
	case ImageCompressionLZSS:
		return "lzss"
	default:
		return fmt.Sprintf("ImageCompression(%d)", uint8(c))
	}
}
