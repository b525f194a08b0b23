//go:build !linux && !tinygo

package canbus

import (
	"envcan-go/canproto"
	"envcan-go/errcode"
)

// SocketCAN is only available on Linux.
type SocketCAN struct{}

func OpenSocketCAN(ifname string, _ int) (*SocketCAN, error) {
	return nil, &errcode.E{C: errcode.Unsupported, Op: "socketcan", Msg: ifname}
}

func (*SocketCAN) TryReceive() (canproto.Frame, bool, error) { return canproto.Frame{}, false, ErrClosed }
func (*SocketCAN) Send(canproto.Frame) error                 { return ErrClosed }
func (*SocketCAN) Close() error                              { return nil }
