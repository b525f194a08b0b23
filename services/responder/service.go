// Package responder serves environmental query frames: each inbound request
// is decoded, the requested channels are read and packed, and the response
// frames are transmitted before the next frame is looked at.
package responder

import (
	"context"
	"errors"
	"sync"
	"time"

	"envcan-go/bus"
	"envcan-go/canbus"
	"envcan-go/canproto"
	"envcan-go/errcode"
	"envcan-go/types"
	"envcan-go/x/conv"
	"envcan-go/x/logx"
	"envcan-go/x/timex"
)

const tag = "responder"

var (
	TopicState    = bus.T("envcan", "state")
	TopicResponse = bus.T("envcan", "response")
	TopicStats    = bus.T("envcan", "stats")
)

// LED is the activity indicator toggled once per served request.
type LED interface {
	Toggle()
}

type Options struct {
	// PollInterval is the idle sleep when no frame is pending. Default 1 ms.
	PollInterval time.Duration
	// SendZeroPressure sends frame B for a requested pressure of 0 kPa.
	SendZeroPressure bool
	// LED is optional.
	LED LED
}

// Service owns no hardware: the transport and sensor source belong to the
// caller and outlive it.
type Service struct {
	tx   canbus.Transport
	src  canproto.Source
	conn *bus.Connection
	opt  Options

	mu    sync.Mutex
	stats types.Counters
}

// New builds a service. conn may be nil when nothing observes the node.
func New(tx canbus.Transport, src canproto.Source, conn *bus.Connection, opt Options) *Service {
	if opt.PollInterval <= 0 {
		opt.PollInterval = time.Millisecond
	}
	return &Service{tx: tx, src: src, conn: conn, opt: opt}
}

// Result describes how one inbound frame was handled.
type Result struct {
	Matched bool // false: not a request frame, nothing was sent
	Request canproto.Request
	Payload canproto.Payload
	Frames  []canproto.Frame // frames built, in transmit order
	Sent    int              // frames the transport accepted
	ReadErr error
	TxErr   error
}

// FrameB reports whether frame B was built and attempted, whatever the
// outcome of its Send.
func (r Result) FrameB() bool { return len(r.Frames) > 1 }

// Handle runs the whole pipeline for f: decode, read and encode, assemble,
// transmit A, then B if due. Frames with other identifiers are ignored.
func (s *Service) Handle(f canproto.Frame) Result {
	req, ok := canproto.DecodeRequest(f)
	if !ok {
		s.count(func(c *types.Counters) { c.Ignored++ })
		return Result{}
	}

	res := Result{Matched: true, Request: req}
	res.Payload, res.ReadErr = canproto.Encode(req, s.src)
	if res.ReadErr != nil {
		logx.Warn(tag, "sensor read:", res.ReadErr.Error())
	}

	res.Frames = canproto.Assemble(req, res.Payload, canproto.AssembleOptions{
		SendZeroPressure: s.opt.SendZeroPressure,
	})
	for _, out := range res.Frames {
		if err := s.tx.Send(out); err != nil {
			logx.Warn(tag, "send", conv.CANID(out.ID), "failed:", err.Error())
			if res.TxErr == nil {
				res.TxErr = err
			}
			continue
		}
		res.Sent++
	}

	if s.opt.LED != nil {
		s.opt.LED.Toggle()
	}
	logx.Debug(tag, "served mask", req.Mask(), "frames", res.Sent)

	s.count(func(c *types.Counters) {
		c.Requests++
		if res.ReadErr != nil {
			c.ReadErrs++
		}
		if res.TxErr != nil {
			c.TxErrs++
		}
	})
	s.publishResponse(res)
	return res
}

// Run polls the transport until ctx is done or the transport is closed.
// Each received frame is handled to completion before the next poll.
func (s *Service) Run(ctx context.Context) error {
	s.publishState(types.LevelReady, errcode.OK)
	logx.Info(tag, "serving requests on", conv.CANID(canproto.RequestID))

	idle := time.NewTimer(time.Hour)
	idle.Stop()
	defer idle.Stop()

	for {
		select {
		case <-ctx.Done():
			s.publishState(types.LevelStopped, errcode.OK)
			return ctx.Err()
		default:
		}

		f, ok, err := s.tx.TryReceive()
		if err != nil {
			if errors.Is(err, canbus.ErrClosed) {
				s.publishState(types.LevelStopped, errcode.Closed)
				return err
			}
			logx.Warn(tag, "receive:", err.Error())
			s.count(func(c *types.Counters) { c.RxErrs++ })
		}
		if ok {
			s.Handle(f)
			continue
		}

		idle.Reset(s.opt.PollInterval)
		select {
		case <-ctx.Done():
			idle.Stop()
		case <-idle.C:
		}
	}
}

// Stats returns a copy of the counters.
func (s *Service) Stats() types.Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *Service) count(fn func(*types.Counters)) {
	s.mu.Lock()
	fn(&s.stats)
	c := s.stats
	s.mu.Unlock()
	if s.conn != nil {
		s.conn.PublishRetained(TopicStats, c)
	}
}

func (s *Service) publishState(level string, code errcode.Code) {
	if s.conn == nil {
		return
	}
	s.conn.PublishRetained(TopicState, types.NodeState{
		Level:  level,
		Status: string(code),
		TS:     timex.NowMs(),
	})
}

func (s *Service) publishResponse(r Result) {
	if s.conn == nil {
		return
	}
	ev := types.ResponseEvent{
		Mask:    r.Request.Mask(),
		Payload: r.Payload,
		FrameB:  r.FrameB(),
		Sent:    uint8(r.Sent),
		TS:      timex.NowMs(),
	}
	if r.ReadErr != nil {
		ev.ReadErr = string(errcode.Of(firstErr(r.ReadErr)))
	}
	if r.TxErr != nil {
		ev.TxErr = string(errcode.Of(r.TxErr))
	}
	s.conn.PublishRetained(TopicResponse, ev)
}

// firstErr unwraps an errors.Join result to its first member.
func firstErr(err error) error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		if errs := j.Unwrap(); len(errs) > 0 {
			return errs[0]
		}
	}
	return err
}
