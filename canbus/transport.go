// Package canbus provides the CAN transports the node and its tools run on.
package canbus

import (
	"errors"

	"envcan-go/canproto"
)

// Transport moves classical CAN frames.
//
// TryReceive must not block: it returns ok=false when nothing is pending.
// Send hands one frame to the controller; delivery is not acknowledged.
type Transport interface {
	TryReceive() (f canproto.Frame, ok bool, err error)
	Send(f canproto.Frame) error
	Close() error
}

var ErrClosed = errors.New("canbus: transport closed")

// Kind names a transport implementation in configuration.
type Kind string

const (
	KindLoopback  Kind = "loopback"
	KindSocketCAN Kind = "socketcan"
	KindMCP2515   Kind = "mcp2515"
)
