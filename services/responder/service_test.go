package responder

import (
	"context"
	"errors"
	"testing"
	"time"

	"envcan-go/bus"
	"envcan-go/canbus"
	"envcan-go/canproto"
	"envcan-go/errcode"
	"envcan-go/sensors"
	"envcan-go/types"
)

// ---- Test doubles ----

type failingTx struct {
	attempts int
}

func (f *failingTx) TryReceive() (canproto.Frame, bool, error) { return canproto.Frame{}, false, nil }
func (f *failingTx) Send(canproto.Frame) error {
	f.attempts++
	return &errcode.E{C: errcode.TxFailed, Op: "fake"}
}
func (f *failingTx) Close() error { return nil }

type countingLED struct{ n int }

func (l *countingLED) Toggle() { l.n++ }

func newSim() *sensors.Sim {
	return sensors.NewSim(sensors.SimValues{
		Methane:    4321,
		CO:         57,
		CO2:        812,
		CO2Temp:    21.9,
		BaroTemp:   22.8,
		CO2Hum:     47.5,
		BaroHum:    48.9,
		PressurePa: 101300,
	})
}

func bitmap(b ...byte) canproto.Frame { return canproto.NewFrame(canproto.RequestID, b) }

// ---- Handle ----

func TestHandle_MethaneAndTemperature(t *testing.T) {
	tx := canbus.NewLoopback(4)
	svc := New(tx, newSim().Station(), nil, Options{})

	res := svc.Handle(bitmap(0x11, 0x00, 0x00, 0x11, 0x00, 0x00))
	if !res.Matched || res.ReadErr != nil || res.TxErr != nil {
		t.Fatalf("result = %+v", res)
	}
	sent := tx.Sent()
	if len(sent) != 1 {
		t.Fatalf("sent %d frames, want frame A only", len(sent))
	}
	a := sent[0]
	want := [8]byte{0x10, 0xE1, 0xFF, 0xFF, 0xFF, 0xFF, 22, 0xFF}
	if a.ID != canproto.ResponseAID || a.Len != 8 || a.Data != want {
		t.Fatalf("frame A = %+v, want data % x", a, want)
	}
	if res.Payload[8] != 0xFF {
		t.Fatalf("pressure byte %#x, want sentinel", res.Payload[8])
	}
}

func TestHandle_AllRequested(t *testing.T) {
	tx := canbus.NewLoopback(4)
	svc := New(tx, newSim().Station(), nil, Options{})

	res := svc.Handle(canproto.AllChannels().Frame())
	sent := tx.Sent()
	if len(sent) != 2 || res.Sent != 2 || !res.FrameB() {
		t.Fatalf("sent %d frames (%+v), want A and B", len(sent), res)
	}
	wantA := [8]byte{0x10, 0xE1, 0x03, 0x2C, 0x00, 0x39, 22, 48}
	if sent[0].Data != wantA {
		t.Fatalf("frame A % x, want % x", sent[0].Data, wantA)
	}
	if b := sent[1]; b.ID != canproto.ResponseBID || b.Len != 1 || b.Data[0] != 101 {
		t.Fatalf("frame B = %+v", b)
	}
}

func TestHandle_NothingRequested(t *testing.T) {
	tx := canbus.NewLoopback(4)
	svc := New(tx, newSim().Station(), nil, Options{})

	svc.Handle(bitmap(0, 0, 0, 0, 0, 0))
	sent := tx.Sent()
	if len(sent) != 1 || sent[0].ID != canproto.ResponseAID {
		t.Fatalf("sent = %+v, want frame A only", sent)
	}
	for i, b := range sent[0].Bytes() {
		if b != 0xFF {
			t.Fatalf("frame A byte %d = %#x", i, b)
		}
	}
}

func TestHandle_ZeroPressure(t *testing.T) {
	sim := newSim()
	v := sensors.DefaultSimValues
	v.PressurePa = 999 // 0.999 kPa -> 0
	sim.Set(v)
	req := canproto.NewRequest(canproto.Pressure).Frame()

	tx := canbus.NewLoopback(4)
	New(tx, sim.Station(), nil, Options{}).Handle(req)
	if sent := tx.Sent(); len(sent) != 1 {
		t.Fatalf("zero pressure: sent %d frames, want 1", len(sent))
	}

	New(tx, sim.Station(), nil, Options{SendZeroPressure: true}).Handle(req)
	sent := tx.Sent()
	if len(sent) != 2 || sent[1].Data[0] != 0 {
		t.Fatalf("SendZeroPressure: sent = %+v", sent)
	}
}

func TestHandle_IgnoresOtherIdentifiers(t *testing.T) {
	tx := canbus.NewLoopback(4)
	led := &countingLED{}
	svc := New(tx, newSim().Station(), nil, Options{LED: led})

	for _, id := range []uint32{0x000, 0x1A3, canproto.ResponseAID, canproto.ResponseBID, 0x7FF} {
		f := canproto.NewFrame(id, []byte{0x11, 0x11, 0x11, 0x11, 0x11, 0x11})
		if res := svc.Handle(f); res.Matched {
			t.Fatalf("id %#x handled as a request", id)
		}
	}
	if sent := tx.Sent(); len(sent) != 0 {
		t.Fatalf("sent %d frames for foreign ids", len(sent))
	}
	if led.n != 0 {
		t.Fatal("LED toggled for an ignored frame")
	}
	if st := svc.Stats(); st.Ignored != 5 || st.Requests != 0 {
		t.Fatalf("stats = %+v", st)
	}
}

func TestHandle_ReadFailureStillAnswers(t *testing.T) {
	sim := newSim()
	sim.Fail(errors.New("i2c nack"))
	tx := canbus.NewLoopback(4)
	svc := New(tx, sim.Station(), nil, Options{})

	res := svc.Handle(canproto.NewRequest(canproto.CO2, canproto.Humidity).Frame())
	if errcode.Of(firstErr(res.ReadErr)) != errcode.SensorRead {
		t.Fatalf("read err = %v", res.ReadErr)
	}
	sent := tx.Sent()
	if len(sent) != 1 {
		t.Fatalf("sent %d frames", len(sent))
	}
	for i, b := range sent[0].Bytes() {
		if b != 0xFF {
			t.Fatalf("frame A byte %d = %#x, want sentinel", i, b)
		}
	}
	if svc.Stats().ReadErrs != 1 {
		t.Fatalf("stats = %+v", svc.Stats())
	}
}

func TestHandle_TransmitFailureIsNotRetried(t *testing.T) {
	tx := &failingTx{}
	svc := New(tx, newSim().Station(), nil, Options{})

	res := svc.Handle(canproto.AllChannels().Frame())
	if tx.attempts != 2 {
		t.Fatalf("send attempts = %d, want one per frame", tx.attempts)
	}
	if res.Sent != 0 || errcode.Of(res.TxErr) != errcode.TxFailed {
		t.Fatalf("result = %+v", res)
	}
	if svc.Stats().TxErrs != 1 {
		t.Fatalf("stats = %+v", svc.Stats())
	}
}

func TestHandle_EventFrameBReportsAttemptNotDelivery(t *testing.T) {
	b := bus.NewBus(4)
	mon := b.NewConnection("monitor")
	svc := New(&failingTx{}, newSim().Station(), b.NewConnection("responder"), Options{})

	svc.Handle(canproto.AllChannels().Frame())

	sub := mon.Subscribe(TopicResponse)
	select {
	case m := <-sub.Channel():
		ev := m.Payload.(types.ResponseEvent)
		if !ev.FrameB || ev.Sent != 0 || ev.TxErr != string(errcode.TxFailed) {
			t.Fatalf("event = %+v", ev)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("no retained response event")
	}
}

func TestHandle_PublishesResponse(t *testing.T) {
	b := bus.NewBus(4)
	conn := b.NewConnection("responder")
	mon := b.NewConnection("monitor")
	led := &countingLED{}
	svc := New(canbus.NewLoopback(4), newSim().Station(), conn, Options{LED: led})

	svc.Handle(canproto.NewRequest(canproto.Methane, canproto.Pressure).Frame())
	if led.n != 1 {
		t.Fatalf("LED toggles = %d", led.n)
	}

	sub := mon.Subscribe(TopicResponse)
	select {
	case m := <-sub.Channel():
		ev, ok := m.Payload.(types.ResponseEvent)
		if !ok {
			t.Fatalf("payload type %T", m.Payload)
		}
		if ev.Mask != 0b100001 || !ev.FrameB || ev.Sent != 2 || ev.Payload[8] != 101 {
			t.Fatalf("event = %+v", ev)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("no retained response event")
	}
}

// ---- Run ----

func TestRun_ServesOverPipe(t *testing.T) {
	client, node := canbus.Pipe(8)
	b := bus.NewBus(8)
	mon := b.NewConnection("monitor")
	states := mon.Subscribe(TopicState)

	svc := New(node, newSim().Station(), b.NewConnection("responder"), Options{PollInterval: time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	_ = client.Send(canproto.NewFrame(0x321, []byte{1, 2, 3}))
	req := canproto.NewRequest(canproto.CO2, canproto.Pressure)
	_ = client.Send(req.Frame())

	var got []canproto.Frame
	deadline := time.Now().Add(time.Second)
	for len(got) < 2 && time.Now().Before(deadline) {
		if f, ok, _ := client.TryReceive(); ok {
			got = append(got, f)
			continue
		}
		time.Sleep(time.Millisecond)
	}
	if len(got) != 2 {
		t.Fatalf("client received %d frames, want 2", len(got))
	}
	r, err := canproto.DecodeResponse(req, got...)
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := r.Value(canproto.CO2); !ok || v != 812 {
		t.Fatalf("co2 = %d, %v", v, ok)
	}
	if v, ok := r.Value(canproto.Pressure); !ok || v != 101 {
		t.Fatalf("pressure = %d, %v", v, ok)
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop")
	}
	if st := svc.Stats(); st.Requests != 1 || st.Ignored != 1 {
		t.Fatalf("stats = %+v", st)
	}

	levels := map[string]bool{}
	for len(states.Channel()) > 0 {
		m := <-states.Channel()
		levels[m.Payload.(types.NodeState).Level] = true
	}
	if !levels[types.LevelReady] || !levels[types.LevelStopped] {
		t.Fatalf("state levels seen: %v", levels)
	}
}

func TestRun_StopsWhenTransportCloses(t *testing.T) {
	tx := canbus.NewLoopback(1)
	_ = tx.Close()
	svc := New(tx, newSim().Station(), nil, Options{})

	err := svc.Run(context.Background())
	if !errors.Is(err, canbus.ErrClosed) {
		t.Fatalf("Run returned %v, want ErrClosed", err)
	}
}
