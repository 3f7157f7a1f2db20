// Package mesh implements the variant-0x0F control protocol: the seven
// control-type wire layouts sharing the standard 4-byte packet header,
// and the relay Engine that maintains parent/cost state, forwards with
// TTL decrement and dedup, and reports route errors.
package mesh

import (
	"github.com/sigilmesh/telepack/bitio"
	"github.com/sigilmesh/telepack/errs"
	"github.com/sigilmesh/telepack/format"
)

// SharedHeader is the common bytes 0..4 every mesh packet carries: the
// standard variant/station/sequence header (variant pinned to
// format.VariantMeshControl) plus the control-type nibble.
type SharedHeader struct {
	SenderStation uint16
	SenderSeq     uint16
	Control       format.ControlType
}

// pack4_12 packs a 4-bit value followed by a 12-bit value across two
// bytes. BEACON, FORWARD, and ACK carry the same 4+12 split in bytes 4..5,
// but write it through WriteSharedHeader's payload nibble, not through
// this helper.
func pack4_12(w *bitio.Writer, hi4 uint8, lo12 uint16) error {
	if err := w.WriteBits(uint64(hi4), 4); err != nil {
		return err
	}

	return w.WriteBits(uint64(lo12), 12)
}

func unpack4_12(r *bitio.Reader) (uint8, uint16, error) {
	hi4, err := r.ReadBits(4)
	if err != nil {
		return 0, 0, err
	}
	lo12, err := r.ReadBits(12)
	if err != nil {
		return 0, 0, err
	}

	return uint8(hi4), uint16(lo12), nil
}

// WriteSharedHeader writes bytes 0..4: the common header plus the
// control-type nibble (the low nibble of byte 4 is filled in by each
// control type's own encoder, via payloadNibble).
func WriteSharedHeader(w *bitio.Writer, h SharedHeader, payloadNibble uint8) error {
	if err := w.WriteBits(uint64(format.VariantMeshControl), 4); err != nil {
		return err
	}
	if err := w.WriteBits(uint64(h.SenderStation), 12); err != nil {
		return err
	}
	if err := w.WriteBits(uint64(h.SenderSeq), 16); err != nil {
		return err
	}
	if err := w.WriteBits(uint64(h.Control), 4); err != nil {
		return err
	}

	return w.WriteBits(uint64(payloadNibble), 4)
}

// ReadSharedHeader reads bytes 0..4, returning the parsed header and the
// control-type's payload nibble for the caller to interpret per control
// type.
func ReadSharedHeader(r *bitio.Reader) (SharedHeader, uint8, error) {
	variant, err := r.ReadBits(4)
	if err != nil {
		return SharedHeader{}, 0, err
	}
	if format.Variant(variant) != format.VariantMeshControl {
		return SharedHeader{}, 0, errs.ErrDecodeVariant
	}

	station, err := r.ReadBits(12)
	if err != nil {
		return SharedHeader{}, 0, err
	}
	seq, err := r.ReadBits(16)
	if err != nil {
		return SharedHeader{}, 0, err
	}
	ctrl, err := r.ReadBits(4)
	if err != nil {
		return SharedHeader{}, 0, err
	}
	nibble, err := r.ReadBits(4)
	if err != nil {
		return SharedHeader{}, 0, err
	}

	control := format.ControlType(ctrl)
	if !control.IsValid() {
		return SharedHeader{}, 0, errs.ErrMeshControlUnknown
	}

	return SharedHeader{SenderStation: uint16(station), SenderSeq: uint16(seq), Control: control}, uint8(nibble), nil
}

// Beacon is the BEACON control body: gateway_id(12), cost(8), flags(4),
// generation(12). 9 bytes total including the shared header.
type Beacon struct {
	Header     SharedHeader
	GatewayID  uint16
	Cost       uint8
	Flags      uint8
	Generation uint16
}

func (b Beacon) Encode(w *bitio.Writer) error {
	if err := WriteSharedHeader(w, b.Header, uint8(b.GatewayID>>8)); err != nil {
		return err
	}
	if err := w.WriteBits(uint64(b.GatewayID&0xFF), 8); err != nil {
		return err
	}
	if err := w.WriteBits(uint64(b.Cost), 8); err != nil {
		return err
	}
	if err := w.WriteBits(uint64(b.Flags), 4); err != nil {
		return err
	}
	if err := w.WriteBits(uint64(b.Generation>>8), 4); err != nil { // gen_hi4
		return err
	}

	return w.WriteBits(uint64(b.Generation&0xFF), 8) // gen_lo8
}

func DecodeBeacon(r *bitio.Reader) (Beacon, error) {
	header, gwHi4, err := ReadSharedHeader(r)
	if err != nil {
		return Beacon{}, err
	}
	gwLo8, err := r.ReadBits(8)
	if err != nil {
		return Beacon{}, err
	}
	cost, err := r.ReadBits(8)
	if err != nil {
		return Beacon{}, err
	}
	flags, err := r.ReadBits(4)
	if err != nil {
		return Beacon{}, err
	}
	genHi4, err := r.ReadBits(4)
	if err != nil {
		return Beacon{}, err
	}
	genLo8, err := r.ReadBits(8)
	if err != nil {
		return Beacon{}, err
	}

	return Beacon{
		Header:     header,
		GatewayID:  uint16(gwHi4)<<8 | uint16(gwLo8),
		Cost:       uint8(cost),
		Flags:      uint8(flags),
		Generation: uint16(genHi4)<<8 | uint16(genLo8),
	}, nil
}

// Forward is the FORWARD control body: ttl(8) split across byte5's high
// nibble and byte4's payload nibble, pad(4), then the inner packet's raw
// bytes (already-encoded sensor or mesh payload being relayed upstream).
type Forward struct {
	Header SharedHeader
	TTL    uint8
	Inner  []byte
}

func (f Forward) Encode(w *bitio.Writer) error {
	if err := WriteSharedHeader(w, f.Header, f.TTL>>4); err != nil {
		return err
	}
	if err := w.WriteBits(uint64(f.TTL&0xF), 4); err != nil {
		return err
	}
	if err := w.WriteBits(0, 4); err != nil { // pad
		return err
	}

	return w.WriteBytes(f.Inner)
}

// DecodeForward reads a FORWARD body; innerLen is the caller-supplied
// length of the relayed inner packet (mesh forwarding always knows this
// from the outer transport framing, matching the wire format's lack of
// a self-describing inner length).
func DecodeForward(r *bitio.Reader, innerLen int) (Forward, error) {
	header, ttlHi4, err := ReadSharedHeader(r)
	if err != nil {
		return Forward{}, err
	}
	ttlLoAndPad, err := r.ReadBits(8)
	if err != nil {
		return Forward{}, err
	}
	ttlLo4 := uint8(ttlLoAndPad >> 4)

	inner, err := r.ReadBytes(innerLen)
	if err != nil {
		return Forward{}, err
	}

	return Forward{Header: header, TTL: ttlHi4<<4 | ttlLo4, Inner: inner}, nil
}

// Ack is the ACK control body: fwd_station(12), fwd_seq(16).
type Ack struct {
	Header     SharedHeader
	FwdStation uint16
	FwdSeq     uint16
}

func (a Ack) Encode(w *bitio.Writer) error {
	if err := WriteSharedHeader(w, a.Header, uint8(a.FwdStation>>8)); err != nil {
		return err
	}
	if err := w.WriteBits(uint64(a.FwdStation&0xFF), 8); err != nil {
		return err
	}

	return w.WriteBits(uint64(a.FwdSeq), 16)
}

func DecodeAck(r *bitio.Reader) (Ack, error) {
	header, fwdHi4, err := ReadSharedHeader(r)
	if err != nil {
		return Ack{}, err
	}
	fwdLo8, err := r.ReadBits(8)
	if err != nil {
		return Ack{}, err
	}
	fwdSeq, err := r.ReadBits(16)
	if err != nil {
		return Ack{}, err
	}

	return Ack{Header: header, FwdStation: uint16(fwdHi4)<<8 | uint16(fwdLo8), FwdSeq: uint16(fwdSeq)}, nil
}

// RouteError is the ROUTE_ERROR control body: reason(4), carried entirely
// in the shared header's payload nibble.
type RouteError struct {
	Header SharedHeader
	Reason format.RouteErrorReason
}

func (e RouteError) Encode(w *bitio.Writer) error {
	return WriteSharedHeader(w, e.Header, uint8(e.Reason))
}

func DecodeRouteError(r *bitio.Reader) (RouteError, error) {
	header, nibble, err := ReadSharedHeader(r)
	if err != nil {
		return RouteError{}, err
	}

	return RouteError{Header: header, Reason: format.RouteErrorReason(nibble)}, nil
}

// NeighbourEntry is one reported neighbour: station(12), rssi(4), and 8
// bits reserved for future per-entry metadata (24 bits total).
type NeighbourEntry struct {
	Station uint16
	RSSI    uint8
}

// NeighbourReport is the NEIGHBOUR_RPT control body: count(8), then 4
// reserved bytes, then count entries of 24 bits each.
type NeighbourReport struct {
	Header  SharedHeader
	Entries []NeighbourEntry
}

func (n NeighbourReport) Encode(w *bitio.Writer) error {
	if err := WriteSharedHeader(w, n.Header, 0); err != nil {
		return err
	}
	if err := w.WriteBits(uint64(len(n.Entries)), 8); err != nil {
		return err
	}
	if err := w.WriteBits(0, 32); err != nil { // reserved
		return err
	}

	for _, e := range n.Entries {
		if err := w.WriteBits(uint64(e.Station), 12); err != nil {
			return err
		}
		if err := w.WriteBits(uint64(e.RSSI), 4); err != nil {
			return err
		}
		if err := w.WriteBits(0, 8); err != nil { // per-entry reserved byte
			return err
		}
	}

	return nil
}

func DecodeNeighbourReport(r *bitio.Reader) (NeighbourReport, error) {
	header, _, err := ReadSharedHeader(r)
	if err != nil {
		return NeighbourReport{}, err
	}
	count, err := r.ReadBits(8)
	if err != nil {
		return NeighbourReport{}, err
	}
	if _, err := r.ReadBits(32); err != nil { // reserved
		return NeighbourReport{}, err
	}

	entries := make([]NeighbourEntry, count)
	for i := range entries {
		station, err := r.ReadBits(12)
		if err != nil {
			return NeighbourReport{}, err
		}
		rssi, err := r.ReadBits(4)
		if err != nil {
			return NeighbourReport{}, err
		}
		if _, err := r.ReadBits(8); err != nil { // per-entry reserved byte
			return NeighbourReport{}, err
		}
		entries[i] = NeighbourEntry{Station: uint16(station), RSSI: uint8(rssi)}
	}

	return NeighbourReport{Header: header, Entries: entries}, nil
}

// PingPong is the shared PING/PONG body: tag(16), reserved(16).
type PingPong struct {
	Header SharedHeader
	Pong   bool
	Tag    uint16
}

func (p PingPong) Encode(w *bitio.Writer) error {
	h := p.Header
	if p.Pong {
		h.Control = format.ControlPong
	} else {
		h.Control = format.ControlPing
	}
	if err := WriteSharedHeader(w, h, 0); err != nil {
		return err
	}
	if err := w.WriteBits(uint64(p.Tag), 16); err != nil {
		return err
	}

	return w.WriteBits(0, 16)
}

func DecodePingPong(r *bitio.Reader) (PingPong, error) {
	header, _, err := ReadSharedHeader(r)
	if err != nil {
		return PingPong{}, err
	}
	tag, err := r.ReadBits(16)
	if err != nil {
		return PingPong{}, err
	}
	if _, err := r.ReadBits(16); err != nil {
		return PingPong{}, err
	}

	return PingPong{Header: header, Pong: header.Control == format.ControlPong, Tag: uint16(tag)}, nil
}
