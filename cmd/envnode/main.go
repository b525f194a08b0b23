// Command envnode runs the environmental CAN responder: it brings the board
// up (retrying until every collaborator initialises), then serves query
// frames until the transport closes.
package main

import (
	"context"
	"time"

	"envcan-go/board"
	"envcan-go/bus"
	"envcan-go/config"
	"envcan-go/errcode"
	"envcan-go/services/heartbeat"
	"envcan-go/services/responder"
	"envcan-go/types"
	"envcan-go/x/logx"
	"envcan-go/x/timex"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(bootDelay)
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		logx.Error("main", "config:", err.Error())
		return
	}
	if err := config.Validate(&cfg); err != nil {
		logx.Error("main", "config:", err.Error())
		return
	}
	if lvl, ok := config.ParseLevel(cfg.Log.Level); ok {
		logx.SetLevel(lvl)
	}

	b := bus.NewBus(4)
	mon := b.NewConnection("monitor")
	go monitor(mon.Subscribe(bus.T("envcan", "#")))

	hb := heartbeat.New(responder.TopicState, responder.TopicStats, timex.Ms(cfg.Node.HeartbeatMs))
	_ = hb.Start(ctx, b.NewConnection("heartbeat"))

	conn := b.NewConnection("responder")
	brd := setupWithRetry(cfg, conn)
	defer brd.Close()

	opt := responder.Options{
		PollInterval:     timex.Ms(cfg.Node.PollIntervalMs),
		SendZeroPressure: cfg.Node.SendZeroPressure,
		LED:              brd.LED,
	}
	svc := responder.New(brd.Transport, brd.Source, conn, opt)
	if err := svc.Run(ctx); err != nil {
		logx.Warn("main", "responder stopped:", err.Error())
	}
}

// setupWithRetry never gives up: a node without its sensors or bus has
// nothing to serve.
func setupWithRetry(cfg config.Config, conn *bus.Connection) *board.Board {
	retry := timex.Ms(cfg.Node.InitRetryMs)
	for {
		conn.PublishRetained(responder.TopicState, types.NodeState{
			Level:  types.LevelInit,
			Status: string(errcode.OK),
			TS:     timex.NowMs(),
		})
		brd, err := board.Setup(cfg)
		if err == nil {
			return brd
		}
		logx.Error("main", "init failed:", err.Error())
		conn.PublishRetained(responder.TopicState, types.NodeState{
			Level:  types.LevelInitFailed,
			Status: string(errcode.Of(err)),
			TS:     timex.NowMs(),
		})
		time.Sleep(retry)
	}
}

func monitor(sub *bus.Subscription) {
	for m := range sub.Channel() {
		switch v := m.Payload.(type) {
		case types.NodeState:
			logx.Info("monitor", m.Topic.String(), v.Level, v.Status)
		case types.ResponseEvent:
			logx.Debug("monitor", m.Topic.String(), "mask", v.Mask, "frame_b", v.FrameB, "sent", v.Sent)
		case types.Counters:
			logx.Debug("monitor", m.Topic.String(), "requests", v.Requests, "ignored", v.Ignored)
		}
	}
}
