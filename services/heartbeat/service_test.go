package heartbeat

import (
	"context"
	"strings"
	"testing"
	"time"

	"envcan-go/bus"
	"envcan-go/types"
)

var (
	stateTopic = bus.T("envcan", "state")
	statsTopic = bus.T("envcan", "stats")
)

func TestStatusLine(t *testing.T) {
	s := Status{
		Uptime: 61 * time.Second,
		State:  types.NodeState{Level: types.LevelReady},
		Stats:  types.Counters{Requests: 12, Ignored: 3, TxErrs: 1},
	}
	if got, want := s.Line(), "up 1m01s state ready req 12 ign 3 err 1"; got != want {
		t.Fatalf("Line() = %q, want %q", got, want)
	}
	if got := (Status{}).Line(); got != "up 0s req 0 ign 0" {
		t.Fatalf("zero Line() = %q", got)
	}
}

func TestHeartbeatFollowsRetainedTopics(t *testing.T) {
	b := bus.NewBus(4)
	pubConn := b.NewConnection("responder")
	pubConn.PublishRetained(stateTopic, types.NodeState{Level: types.LevelReady})
	pubConn.PublishRetained(statsTopic, types.Counters{Requests: 5})

	beats := make(chan Status, 8)
	hb := New(stateTopic, statsTopic, 10*time.Millisecond)
	hb.OnBeat = func(s Status) { beats <- s }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := hb.Start(ctx, b.NewConnection("heartbeat")); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(time.Second)
	for {
		select {
		case s := <-beats:
			if s.State.Level == types.LevelReady && s.Stats.Requests == 5 {
				if !strings.HasPrefix(s.Line(), "up ") {
					t.Fatalf("line = %q", s.Line())
				}
				return
			}
		case <-deadline:
			t.Fatal("heartbeat never reported the retained state")
		}
	}
}

func TestZeroIntervalDisables(t *testing.T) {
	b := bus.NewBus(1)
	called := false
	hb := New(stateTopic, statsTopic, 0)
	hb.OnBeat = func(Status) { called = true }
	if err := hb.Start(context.Background(), b.NewConnection("hb")); err != nil {
		t.Fatal(err)
	}
	time.Sleep(20 * time.Millisecond)
	if called {
		t.Fatal("disabled heartbeat fired")
	}
}
