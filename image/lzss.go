package image

import (
	"github.com/sigilmesh/telepack/bitio"
	"github.com/sigilmesh/telepack/errs"
)

// lzssWindow is the heatshrink-style sliding window size: back
// references address up to 256 bytes behind the current output position.
const lzssWindow = 256

// lzssLookahead bounds the longest match the compressor searches for;
// match_length-1 is carried in 4 bits, so the longest representable match
// is 16 bytes.
const lzssLookahead = 16

// EncodeLZSS compresses data with a greedy longest-match search over the
// trailing 256-byte window, emitting flag-tagged literals and
// back-references MSB-first: flag 1 precedes `index(8)` (distance minus
// one) and `count(4)` (match length minus one); flag 0 precedes a raw
// literal byte. The compressor only emits a back-reference when the
// match is at least 2 bytes.
func EncodeLZSS(data []byte) ([]byte, error) {
	buf := make([]byte, len(data)*2+4)
	w := bitio.NewWriter(buf)

	for i := 0; i < len(data); {
		bestLen, bestDist := findMatch(data, i)
		if bestLen >= 2 {
			if err := w.WriteBits(1, 1); err != nil {
				return nil, err
			}
			if err := w.WriteBits(uint64(bestDist-1), 8); err != nil {
				return nil, err
			}
			if err := w.WriteBits(uint64(bestLen-1), 4); err != nil {
				return nil, err
			}
			i += bestLen
		} else {
			if err := w.WriteBits(0, 1); err != nil {
				return nil, err
			}
			if err := w.WriteBits(uint64(data[i]), 8); err != nil {
				return nil, err
			}
			i++
		}
	}

	return w.Bytes(), nil
}

func findMatch(data []byte, pos int) (length, distance int) {
	windowStart := pos - lzssWindow
	if windowStart < 0 {
		windowStart = 0
	}

	maxLen := lzssLookahead
	if pos+maxLen > len(data) {
		maxLen = len(data) - pos
	}

	bestLen, bestDist := 0, 0
	for cand := windowStart; cand < pos; cand++ {
		l := 0
		for l < maxLen && data[cand+l] == data[pos+l] {
			l++
		}
		if l > bestLen {
			bestLen = l
			bestDist = pos - cand
		}
	}

	return bestLen, bestDist
}

// DecodeLZSS reverses EncodeLZSS, reading from r until outLen bytes have
// been produced. It uses its own growing output as the sliding window
// for back-references; a back-reference naming a distance longer than
// what has been produced so far aborts decoding with
// ErrImageBackrefInvalid.
func DecodeLZSS(r *bitio.Reader, outLen int) ([]byte, error) {
	out := make([]byte, 0, outLen)

	for len(out) < outLen {
		flag, err := r.ReadBits(1)
		if err != nil {
			return out, err
		}

		if flag == 0 {
			v, err := r.ReadBits(8)
			if err != nil {
				return out, err
			}
			out = append(out, byte(v))

			continue
		}

		idx, err := r.ReadBits(8)
		if err != nil {
			return out, err
		}
		cnt, err := r.ReadBits(4)
		if err != nil {
			return out, err
		}

		distance := int(idx) + 1
		length := int(cnt) + 1

		if distance > len(out) {
			return out, errs.ErrImageBackrefInvalid
		}

		start := len(out) - distance
		for i := 0; i < length; i++ {
			out = append(out, out[start+i])
		}
	}

	return out, nil
}
