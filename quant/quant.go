// Package quant implements the quantize/dequantize pair for every scalar
// telemetry field: physical float64 values in, fixed-width raw integers
// out, and back. Every quantizer here is deterministic and uses
// float64 math.Round uniformly; Go's cross-platform float determinism
// removes any need for a separate integer-only build variant.
package quant

import "math"

// Quantizer converts a physical value to/from its fixed-width raw
// representation.
type Quantizer interface {
	// Quantize returns the raw value for v. Linear clamps v to
	// [Min,Max]; Bitmask wraps v around its full range.
	Quantize(v float64) uint32
	// Dequantize returns the physical value for a raw reading.
	Dequantize(raw uint32) float64
	// Bits is the fixed wire width of the raw value.
	Bits() int
	// Bounds returns the declared physical range.
	Bounds() (min, max float64)
}

// Linear implements the "linear with min offset" pattern:
// raw = round((phys-min)/res), phys = min + raw*res.
type Linear struct {
	Min, Max, Resolution float64
	BitWidth              int
}

var _ Quantizer = Linear{}

// MaxRaw returns the largest representable raw value, 2^Bits - 1.
func (q Linear) MaxRaw() uint32 {
	return uint32(1)<<uint(q.BitWidth) - 1
}

func (q Linear) Quantize(v float64) uint32 {
	if v < q.Min {
		v = q.Min
	}
	if v > q.Max {
		v = q.Max
	}

	raw := math.Round((v - q.Min) / q.Resolution)
	if raw < 0 {
		raw = 0
	}
	if max := float64(q.MaxRaw()); raw > max {
		raw = max
	}

	return uint32(raw)
}

func (q Linear) Dequantize(raw uint32) float64 {
	if raw > q.MaxRaw() {
		raw = q.MaxRaw()
	}

	return q.Min + float64(raw)*q.Resolution
}

func (q Linear) Bits() int {
	return q.BitWidth
}

func (q Linear) Bounds() (float64, float64) {
	return q.Min, q.Max
}

// Bitmask implements the "index-style" pattern: used where the
// resolution is a power-of-two divisor of a wraparound full range, e.g.
// wind direction over 8 bits = 360/256 degrees per step.
type Bitmask struct {
	FullRange float64
	BitWidth  int
}

var _ Quantizer = Bitmask{}

func (q Bitmask) steps() float64 {
	return float64(uint32(1) << uint(q.BitWidth))
}

func (q Bitmask) Quantize(v float64) uint32 {
	frac := math.Mod(v, q.FullRange)
	if frac < 0 {
		frac += q.FullRange
	}

	raw := uint32(math.Round(frac*q.steps()/q.FullRange)) % uint32(q.steps())

	return raw
}

func (q Bitmask) Dequantize(raw uint32) float64 {
	return float64(raw) * q.FullRange / q.steps()
}

func (q Bitmask) Bits() int {
	return q.BitWidth
}

func (q Bitmask) Bounds() (float64, float64) {
	return 0, q.FullRange
}
