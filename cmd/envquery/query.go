package main

import (
	"fmt"
	"io"
	"time"

	"envcan-go/canbus"
	"envcan-go/canproto"
	"envcan-go/errcode"
)

// parseRequest maps channel names to a request. No names, or "all", asks
// for every channel.
func parseRequest(args []string) (canproto.Request, error) {
	if len(args) == 0 {
		return canproto.AllChannels(), nil
	}
	var chs []canproto.Channel
	for _, a := range args {
		if a == "all" {
			return canproto.AllChannels(), nil
		}
		c, ok := canproto.ParseChannel(a)
		if !ok {
			return canproto.Request{}, &errcode.E{C: errcode.InvalidParams, Op: "parse", Msg: "unknown channel " + a}
		}
		chs = append(chs, c)
	}
	return canproto.NewRequest(chs...), nil
}

// query sends req and collects response frames until frame A and, when it
// can follow, frame B have arrived or the timeout passes.
func query(tx canbus.Transport, req canproto.Request, timeout time.Duration) (canproto.Reading, error) {
	if err := tx.Send(req.Frame()); err != nil {
		return canproto.Reading{}, err
	}

	var (
		frames   []canproto.Frame
		gotA     bool
		deadline = time.Now().Add(timeout)
	)
	for time.Now().Before(deadline) {
		f, ok, err := tx.TryReceive()
		if err != nil {
			return canproto.Reading{}, err
		}
		if !ok {
			time.Sleep(time.Millisecond)
			continue
		}
		switch f.ID {
		case canproto.ResponseAID:
			gotA = true
			frames = append(frames, f)
		case canproto.ResponseBID:
			frames = append(frames, f)
		default:
			continue
		}
		if gotA && (!req.Requested(canproto.Pressure) || len(frames) == 2) {
			break
		}
	}
	if !gotA {
		return canproto.Reading{}, &errcode.E{C: errcode.RxFailed, Op: "query", Msg: "no response", Err: canproto.ErrNoFrameA}
	}
	return canproto.DecodeResponse(req, frames...)
}

func printReading(w io.Writer, req canproto.Request, r canproto.Reading) {
	for _, c := range canproto.Channels {
		if !req.Requested(c) {
			continue
		}
		if v, ok := r.Value(c); ok {
			fmt.Fprintf(w, "%-12s %d\n", c, v)
		} else {
			fmt.Fprintf(w, "%-12s -\n", c)
		}
	}
}
