//go:build linux && !tinygo

package canbus

import (
	"sync"

	socketcan "github.com/atuleu/golang-socketcan"

	"envcan-go/canproto"
	"envcan-go/errcode"
)

// SocketCAN is a Linux raw CAN socket. A pump goroutine performs the blocking
// reads so that TryReceive can poll a bounded queue.
type SocketCAN struct {
	itf socketcan.RawInterface
	in  chan canproto.Frame

	mu  sync.Mutex
	err error
}

// OpenSocketCAN binds a raw socket to ifname (e.g. "can0", "vcan0").
func OpenSocketCAN(ifname string, queueLen int) (*SocketCAN, error) {
	itf, err := socketcan.NewRawInterface(ifname)
	if err != nil {
		return nil, &errcode.E{C: errcode.BusInit, Op: "socketcan", Msg: ifname, Err: err}
	}
	if queueLen <= 0 {
		queueLen = defaultQueueLen
	}
	s := &SocketCAN{
		itf: itf,
		in:  make(chan canproto.Frame, queueLen),
	}
	go s.pump()
	return s, nil
}

func (s *SocketCAN) pump() {
	for {
		cf, err := s.itf.Receive()
		if err != nil {
			s.mu.Lock()
			if s.err == nil {
				s.err = errcode.Wrap(errcode.RxFailed, "socketcan", err)
			}
			s.mu.Unlock()
			return
		}
		if cf.Extended || cf.RTR {
			continue
		}
		f := canproto.NewFrame(cf.ID, cf.Data[:min(int(cf.Dlc), len(cf.Data))])
		select {
		case s.in <- f:
		default:
			// Queue full: drop the oldest, keep the newest.
			select {
			case <-s.in:
			default:
			}
			s.in <- f
		}
	}
}

func (s *SocketCAN) TryReceive() (canproto.Frame, bool, error) {
	select {
	case f := <-s.in:
		return f, true, nil
	default:
	}
	s.mu.Lock()
	err := s.err
	s.mu.Unlock()
	return canproto.Frame{}, false, err
}

func (s *SocketCAN) Send(f canproto.Frame) error {
	if err := f.Validate(); err != nil {
		return err
	}
	cf := socketcan.CanFrame{
		ID:   f.ID,
		Dlc:  f.Len,
		Data: append([]byte(nil), f.Bytes()...),
	}
	return errcode.Wrap(errcode.TxFailed, "socketcan", s.itf.Send(cf))
}

func (s *SocketCAN) Close() error {
	s.mu.Lock()
	if s.err == nil {
		s.err = ErrClosed
	}
	s.mu.Unlock()
	return s.itf.Close()
}
