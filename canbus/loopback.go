package canbus

import (
	"sync"

	"envcan-go/canproto"
)

const defaultQueueLen = 16

// Loopback is an in-memory transport. Frames sent on one end of a Pipe are
// received on the other; a standalone Loopback records what it sends and
// receives whatever is injected.
type Loopback struct {
	in   chan canproto.Frame
	peer *Loopback

	mu     sync.Mutex
	sent   []canproto.Frame
	closed bool
}

// NewLoopback returns a standalone transport with an inbound queue of queueLen.
func NewLoopback(queueLen int) *Loopback {
	if queueLen <= 0 {
		queueLen = defaultQueueLen
	}
	return &Loopback{in: make(chan canproto.Frame, queueLen)}
}

// Pipe returns two connected ends.
func Pipe(queueLen int) (*Loopback, *Loopback) {
	a, b := NewLoopback(queueLen), NewLoopback(queueLen)
	a.peer, b.peer = b, a
	return a, b
}

// Inject queues f for TryReceive. It reports false if the queue is full or
// the transport is closed.
func (l *Loopback) Inject(f canproto.Frame) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return false
	}
	select {
	case l.in <- f:
		return true
	default:
		return false
	}
}

func (l *Loopback) TryReceive() (canproto.Frame, bool, error) {
	select {
	case f := <-l.in:
		return f, true, nil
	default:
	}
	l.mu.Lock()
	closed := l.closed
	l.mu.Unlock()
	if closed {
		return canproto.Frame{}, false, ErrClosed
	}
	return canproto.Frame{}, false, nil
}

func (l *Loopback) Send(f canproto.Frame) error {
	if err := f.Validate(); err != nil {
		return err
	}
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	l.sent = append(l.sent, f)
	peer := l.peer
	l.mu.Unlock()

	if peer != nil {
		peer.Inject(f)
	}
	return nil
}

// Sent returns and clears the frames sent so far.
func (l *Loopback) Sent() []canproto.Frame {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.sent
	l.sent = nil
	return out
}

func (l *Loopback) Close() error {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
	return nil
}
