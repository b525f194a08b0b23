// Package heartbeat prints a periodic status line for the node: uptime, the
// last published node state and the responder counters.
package heartbeat

import (
	"context"
	"time"

	"envcan-go/bus"
	"envcan-go/types"
	"envcan-go/x/conv"
	"envcan-go/x/logx"
)

const tag = "heartbeat"

// Status is what the heartbeat knows about the node at a tick.
type Status struct {
	Uptime time.Duration
	State  types.NodeState
	Stats  types.Counters
}

// Line renders s the way it is logged.
func (s Status) Line() string {
	var buf [20]byte
	line := "up " + conv.Uptime(uint64(s.Uptime/time.Second))
	if s.State.Level != "" {
		line += " state " + s.State.Level
	}
	line += " req " + string(conv.Utoa(buf[:], uint64(s.Stats.Requests)))
	line += " ign " + string(conv.Utoa(buf[:], uint64(s.Stats.Ignored)))
	if n := s.Stats.ReadErrs + s.Stats.TxErrs + s.Stats.RxErrs; n > 0 {
		line += " err " + string(conv.Utoa(buf[:], uint64(n)))
	}
	return line
}

type Service struct {
	stateTopic bus.Topic
	statsTopic bus.Topic
	interval   time.Duration

	// OnBeat, when set, receives every status instead of the log.
	OnBeat func(Status)
}

// New builds a heartbeat that follows the retained state and stats topics.
func New(stateTopic, statsTopic bus.Topic, interval time.Duration) *Service {
	return &Service{stateTopic: stateTopic, statsTopic: statsTopic, interval: interval}
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	stateSub := conn.Subscribe(s.stateTopic)
	statsSub := conn.Subscribe(s.statsTopic)
	defer conn.Unsubscribe(stateSub)
	defer conn.Unsubscribe(statsSub)

	start := time.Now()
	tick := time.NewTicker(s.interval)
	defer tick.Stop()

	var st Status
	for {
		select {
		case <-ctx.Done():
			logx.Info(tag, "stopping")
			return
		case m := <-stateSub.Channel():
			if v, ok := m.Payload.(types.NodeState); ok {
				st.State = v
			}
		case m := <-statsSub.Channel():
			if v, ok := m.Payload.(types.Counters); ok {
				st.Stats = v
			}
		case t := <-tick.C:
			st.Uptime = t.Sub(start)
			if s.OnBeat != nil {
				s.OnBeat(st)
				continue
			}
			logx.Info(tag, st.Line())
		}
	}
}

// Start runs the heartbeat until ctx is done. A non-positive interval
// disables it.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	if s.interval <= 0 {
		return nil
	}
	go s.serviceLoop(ctx, conn)
	return nil
}
