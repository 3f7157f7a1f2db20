package mesh

import (
	"github.com/sigilmesh/telepack/errs"
	"github.com/sigilmesh/telepack/format"
	"github.com/sigilmesh/telepack/internal/options"
)

// NoParent is the sentinel "orphaned" parent value.
const NoParent = 0xFFF

// StationReserved is the sentinel station id that is never emitted as a
// sender, shared with the sensor header's reserved station id.
const StationReserved = 0x000

// DefaultTTL and MaxTTL are the default and maximum relay hop counts.
const (
	DefaultTTL = 7
	MaxTTL     = 255
)

// MaxNeighbours is the neighbour table's capacity limit.
const MaxNeighbours = 63

// Neighbour is one entry in the engine's neighbour table: a station and
// its last-reported, already-quantized RSSI.
type Neighbour struct {
	Station uint16
	RSSI    uint8
}

// Engine owns one hop node's mesh state: parent selection, path cost,
// last-seen beacon generation, the neighbour table, and the dedup ring.
// All mutation is expected to be serialized by the caller; Engine itself
// holds no lock.
type Engine struct {
	Self uint16

	Parent     uint16
	Cost       uint8
	GatewayID  uint16
	LastGen    uint16
	hasParent  bool

	neighbours []Neighbour
	dedup      *DedupRing

	ttlDefault int
	ttlMax     int
	selfSeq    uint16
}

// NewEngine constructs an Engine for station self, orphaned by default,
// configured by the given options (TTL tunables, dedup ring capacity).
func NewEngine(self uint16, opts ...options.Option[Engine]) (*Engine, error) {
	e := &Engine{
		Self:       self,
		Parent:     NoParent,
		ttlDefault: DefaultTTL,
		ttlMax:     MaxTTL,
	}

	if err := options.Apply(e, opts...); err != nil {
		return nil, err
	}
	if e.dedup == nil {
		e.dedup = NewDedupRing(DefaultDedupCapacity)
	}

	return e, nil
}

// WithTTLDefault overrides the engine's stored default TTL (DefaultTTL
// otherwise). No Engine method reads it: AdmitForward derives the
// outgoing TTL from the received one.
func WithTTLDefault(ttl int) options.Option[Engine] {
	return options.New(func(e *Engine) { e.ttlDefault = ttl })
}

// WithTTLMax overrides the engine's stored maximum TTL (MaxTTL otherwise).
// AdmitForward does not compare received TTLs against it.
func WithTTLMax(ttl int) options.Option[Engine] {
	return options.New(func(e *Engine) { e.ttlMax = ttl })
}

// WithDedupCapacity overrides the dedup ring's capacity (default 64).
func WithDedupCapacity(capacity int) options.Option[Engine] {
	return options.New(func(e *Engine) { e.dedup = NewDedupRing(capacity) })
}

// HasParent reports whether the engine currently has a selected parent.
func (e *Engine) HasParent() bool {
	return e.hasParent
}

// OnBeacon processes a received BEACON: a strictly newer
// generation always invalidates the current parent selection regardless
// of cost; within the same generation, the lower-cost sender wins,
// ties broken by lower station id.
func (e *Engine) OnBeacon(b Beacon) {
	sender := b.Header.SenderStation
	candidateCost := b.Cost + 1

	if !e.hasParent || ModularNewer(b.Generation, e.LastGen) {
		e.LastGen = b.Generation
		e.GatewayID = b.GatewayID
		e.Parent = sender
		e.Cost = candidateCost
		e.hasParent = true

		return
	}

	if b.Generation != e.LastGen {
		return
	}

	if candidateCost < e.Cost || (candidateCost == e.Cost && sender < e.Parent) {
		e.GatewayID = b.GatewayID
		e.Parent = sender
		e.Cost = candidateCost
	}
}

// nextSeq returns this engine's next free-running sequence number for
// packets it sends (forwards it relays, route errors, neighbour reports).
func (e *Engine) nextSeq() uint16 {
	e.selfSeq++

	return e.selfSeq
}

// AdmitForward processes a received FORWARD: decrements TTL,
// drops on TTL exhaustion or dedup-ring hit, otherwise admits the
// (origin_station, origin_sequence) pair and returns the re-stamped
// Forward ready for transmission toward the parent.
func (e *Engine) AdmitForward(f Forward, originStation, originSequence uint16) (Forward, error) {
	if f.TTL == 0 {
		return Forward{}, errs.ErrMeshTTLExpired
	}

	key := DedupKey(originStation, originSequence)
	if e.dedup.Contains(key) {
		return Forward{}, errs.ErrMeshDuplicate
	}
	e.dedup.Admit(key)

	if !e.hasParent {
		return Forward{}, errs.ErrMeshNoParent
	}

	out := f
	out.TTL = f.TTL - 1
	out.Header = SharedHeader{SenderStation: e.Self, SenderSeq: e.nextSeq(), Control: f.Header.Control}

	return out, nil
}

// ReportRouteError invalidates this engine's own parent selection,
// triggering re-acquisition on the next beacon, and returns the
// RouteError ready to send.
func (e *Engine) ReportRouteError(reason format.RouteErrorReason) RouteError {
	e.hasParent = false
	e.Parent = NoParent

	return RouteError{
		Header: SharedHeader{SenderStation: e.Self, SenderSeq: e.nextSeq(), Control: format.ControlRouteError},
		Reason: reason,
	}
}

// AddNeighbour records or updates a neighbour's quantized RSSI, failing
// once the table is at MaxNeighbours and the station is not already
// present.
func (e *Engine) AddNeighbour(station uint16, rssi uint8) error {
	for i, n := range e.neighbours {
		if n.Station == station {
			e.neighbours[i].RSSI = rssi

			return nil
		}
	}

	if len(e.neighbours) >= MaxNeighbours {
		return errs.ErrMeshNeighboursFull
	}

	e.neighbours = append(e.neighbours, Neighbour{Station: station, RSSI: rssi})

	return nil
}

// Neighbours returns the current neighbour table.
func (e *Engine) Neighbours() []Neighbour {
	return e.neighbours
}

// BuildNeighbourReport snapshots the neighbour table into a wire-ready
// NeighbourReport.
func (e *Engine) BuildNeighbourReport() NeighbourReport {
	entries := make([]NeighbourEntry, len(e.neighbours))
	for i, n := range e.neighbours {
		entries[i] = NeighbourEntry{Station: n.Station, RSSI: n.RSSI}
	}

	return NeighbourReport{
		Header:  SharedHeader{SenderStation: e.Self, SenderSeq: e.nextSeq(), Control: format.ControlNeighbourRpt},
		Entries: entries,
	}
}
