package format

import "fmt"

// ControlType is the 4-bit mesh control-packet discriminator.
type ControlType uint8

const (
	ControlBeacon         ControlType = 0
	ControlForward        ControlType = 1
	ControlAck            ControlType = 2
	ControlRouteError     ControlType = 3
	ControlNeighbourRpt   ControlType = 4
	ControlPing           ControlType = 5
	ControlPong           ControlType = 6
)

var controlNames = map[ControlType]string{
	ControlBeacon:       "BEACON",
	ControlForward:      "FORWARD",
	ControlAck:          "ACK",
	ControlRouteError:   "ROUTE_ERROR",
	ControlNeighbourRpt: "NEIGHBOUR_RPT",
	ControlPing:         "PING",
	ControlPong:         "PONG",
}

func (c ControlType) String() string {
	if name, ok := controlNames[c]; ok {
		return name
	}

	return fmt.Sprintf("ControlType(%d)", uint8(c))
}

// IsValid reports whether c is one of the seven defined control types.
func (c ControlType) IsValid() bool {
	_, ok := controlNames[c]

	return ok
}

// RouteErrorReason is the 4-bit reason code carried by a ROUTE_ERROR packet.
type RouteErrorReason uint8

const (
	RouteErrorParentLost RouteErrorReason = 0
	RouteErrorOverloaded RouteErrorReason = 1
	RouteErrorShutdown   RouteErrorReason = 2
)

func (r RouteErrorReason) String() string {
	switch r {
	case RouteErrorParentLost:
		return "PARENT_LOST"
	case RouteErrorOverloaded:
		return "OVERLOADED"
	case RouteErrorShutdown:
		return "SHUTDOWN"
	default:
		return fmt.Sprintf("RouteErrorReason(%d)", uint8(r))
	}
}
