package canbus

import (
	"errors"
	"testing"

	"envcan-go/canproto"
)

func TestLoopback_InjectAndReceive(t *testing.T) {
	l := NewLoopback(2)
	if _, ok, err := l.TryReceive(); ok || err != nil {
		t.Fatalf("empty TryReceive = %v, %v", ok, err)
	}
	req := canproto.AllChannels().Frame()
	if !l.Inject(req) || !l.Inject(req) {
		t.Fatal("inject failed below capacity")
	}
	if l.Inject(req) {
		t.Fatal("inject succeeded on a full queue")
	}
	f, ok, err := l.TryReceive()
	if !ok || err != nil || f != req {
		t.Fatalf("TryReceive = %+v, %v, %v", f, ok, err)
	}
}

func TestLoopback_SendRecordsAndValidates(t *testing.T) {
	l := NewLoopback(0)
	f := canproto.NewFrame(canproto.ResponseAID, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	if err := l.Send(f); err != nil {
		t.Fatal(err)
	}
	if err := l.Send(canproto.Frame{ID: 0x1000}); !errors.Is(err, canproto.ErrInvalidID) {
		t.Fatalf("err = %v, want ErrInvalidID", err)
	}
	sent := l.Sent()
	if len(sent) != 1 || sent[0] != f {
		t.Fatalf("sent = %+v", sent)
	}
	if len(l.Sent()) != 0 {
		t.Fatal("Sent did not clear")
	}
}

func TestPipe(t *testing.T) {
	client, node := Pipe(4)
	req := canproto.NewRequest(canproto.CO2).Frame()
	if err := client.Send(req); err != nil {
		t.Fatal(err)
	}
	f, ok, _ := node.TryReceive()
	if !ok || f != req {
		t.Fatalf("node received %+v, %v", f, ok)
	}
	if _, ok, _ := client.TryReceive(); ok {
		t.Fatal("sender received its own frame")
	}
}

func TestLoopback_Close(t *testing.T) {
	l := NewLoopback(1)
	_ = l.Close()
	if err := l.Send(canproto.Frame{ID: 1}); !errors.Is(err, ErrClosed) {
		t.Fatalf("Send after close = %v", err)
	}
	if _, _, err := l.TryReceive(); !errors.Is(err, ErrClosed) {
		t.Fatalf("TryReceive after close = %v", err)
	}
	if l.Inject(canproto.Frame{ID: 1}) {
		t.Fatal("Inject after close succeeded")
	}
}
