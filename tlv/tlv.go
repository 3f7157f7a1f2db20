// Package tlv implements the chained type-length-value tail a packet may
// carry after its fixed fields. Each entry's 17-bit header
// (format, type, more, length) is written MSB-first through package
// bitio; capacity is bounded to 8 entries per packet, matching the
// encoder's "bounded TLV list" contract.
package tlv

import (
	"fmt"

	"github.com/sigilmesh/telepack/bitio"
	"github.com/sigilmesh/telepack/errs"
	"github.com/sigilmesh/telepack/format"
)

// Capacity is the maximum number of TLV entries one packet may carry.
const Capacity = 8

// MaxType is the largest representable 6-bit TLV type.
const MaxType = 63

// MaxLength is the largest representable 8-bit TLV length.
const MaxLength = 255

// alphabet is the 6-bit string alphabet: ' ', a-z, 0-9, A-Z — 63 values,
// slot 63 is reserved and never written by Chain.Encode.
const alphabet = " abcdefghijklmnopqrstuvwxyz0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

var charIndex = func() map[byte]uint64 {
	m := make(map[byte]uint64, len(alphabet))
	for i := 0; i < len(alphabet); i++ {
		m[alphabet[i]] = uint64(i)
	}

	return m
}()

// Entry is one decoded or pending TLV tail entry.
type Entry struct {
	Format format.TLVFormat
	Type   uint8
	Data   []byte   // format == Raw
	Text   string   // format == String6
}

// Chain is the ordered, capacity-bounded list of TLV entries a packet
// carries. Zero value is an empty chain.
type Chain struct {
	entries []Entry
}

// Len returns the number of entries currently queued.
func (c *Chain) Len() int {
	return len(c.entries)
}

// Entries returns the queued entries in encode order.
func (c *Chain) Entries() []Entry {
	return c.entries
}

// AddRaw appends a raw-format entry. Rejects type > 63, nil data, and
// length > 255, and rejects once the chain is already at Capacity.
func (c *Chain) AddRaw(typ uint8, data []byte) error {
	if typ > MaxType {
		return fmt.Errorf("%w: type=%d", errs.ErrTLVTypeHigh, typ)
	}
	if data == nil {
		return errs.ErrTLVDataNil
	}
	if len(data) > MaxLength {
		return fmt.Errorf("%w: length=%d", errs.ErrTLVLengthHigh, len(data))
	}
	if len(c.entries) >= Capacity {
		return errs.ErrTLVFull
	}

	c.entries = append(c.entries, Entry{Format: format.TLVFormatRaw, Type: typ, Data: data})

	return nil
}

// AddString appends a string6-format entry. Every character of s must be
// in the 6-bit alphabet.
func (c *Chain) AddString(typ uint8, s string) error {
	if typ > MaxType {
		return fmt.Errorf("%w: type=%d", errs.ErrTLVTypeHigh, typ)
	}
	if len(s) > MaxLength {
		return fmt.Errorf("%w: length=%d", errs.ErrTLVStringTooLong, len(s))
	}
	if len(c.entries) >= Capacity {
		return errs.ErrTLVFull
	}
	for i := 0; i < len(s); i++ {
		if _, ok := charIndex[s[i]]; !ok {
			return fmt.Errorf("%w: %q", errs.ErrTLVStringChar, s[i])
		}
	}

	c.entries = append(c.entries, Entry{Format: format.TLVFormatString6, Type: typ, Text: s})

	return nil
}

// AddKV is the key/value convenience form: it packs pairs of raw entries
// (key, value), both under typ, enforcing an even argument count and
// rejecting any empty value (see DESIGN.md for the validation choice).
func (c *Chain) AddKV(typ uint8, kv ...[]byte) error {
	if len(kv)%2 != 0 {
		return errs.ErrTLVKVOddCount
	}

	for i := 0; i < len(kv); i += 2 {
		value := kv[i+1]
		if len(value) == 0 {
			return errs.ErrTLVKVEmptyValue
		}
		if err := c.AddRaw(typ, kv[i]); err != nil {
			return err
		}
		if err := c.AddRaw(typ, value); err != nil {
			return err
		}
	}

	return nil
}

// Encode writes the full chain onto w, one 17-bit header plus payload per
// entry, setting `more` on every entry but the last.
func (c *Chain) Encode(w *bitio.Writer) error {
	for i, e := range c.entries {
		more := uint64(0)
		if i != len(c.entries)-1 {
			more = 1
		}

		payload, length := payloadBytes(e)

		if err := w.WriteBits(uint64(e.Format), 2); err != nil {
			return err
		}
		if err := w.WriteBits(uint64(e.Type), 6); err != nil {
			return err
		}
		if err := w.WriteBits(more, 1); err != nil {
			return err
		}
		if err := w.WriteBits(uint64(length), 8); err != nil {
			return err
		}
		if err := writePayload(w, e, payload); err != nil {
			return err
		}
	}

	return nil
}

func payloadBytes(e Entry) ([]byte, int) {
	if e.Format == format.TLVFormatString6 {
		return nil, len(e.Text)
	}

	return e.Data, len(e.Data)
}

func writePayload(w *bitio.Writer, e Entry, data []byte) error {
	if e.Format == format.TLVFormatString6 {
		for i := 0; i < len(e.Text); i++ {
			if err := w.WriteBits(charIndex[e.Text[i]], 6); err != nil {
				return err
			}
		}

		return nil
	}

	return w.WriteBytes(data)
}

// Decode reads a chained TLV tail off r until a `more=0` entry or the
// capacity limit, appending decoded entries to a fresh Chain.
func Decode(r *bitio.Reader) (*Chain, error) {
	c := &Chain{}

	for {
		if c.Len() >= Capacity {
			return c, errs.ErrTLVFull
		}

		fmtBits, err := r.ReadBits(2)
		if err != nil {
			return c, err
		}
		typ, err := r.ReadBits(6)
		if err != nil {
			return c, err
		}
		more, err := r.ReadBits(1)
		if err != nil {
			return c, err
		}
		length, err := r.ReadBits(8)
		if err != nil {
			return c, err
		}

		entry := Entry{Format: format.TLVFormat(fmtBits), Type: uint8(typ)}

		if entry.Format == format.TLVFormatString6 {
			chars := make([]byte, length)
			for i := 0; i < int(length); i++ {
				idx, err := r.ReadBits(6)
				if err != nil {
					return c, err
				}
				if idx >= uint64(len(alphabet)) {
					return c, fmt.Errorf("%w: %d", errs.ErrTLVStringChar, idx)
				}
				chars[i] = alphabet[idx]
			}
			entry.Text = string(chars)
		} else {
			data, err := r.ReadBytes(int(length))
			if err != nil {
				return c, err
			}
			entry.Data = data
		}

		c.entries = append(c.entries, entry)

		if more == 0 {
			return c, nil
		}
	}
}
