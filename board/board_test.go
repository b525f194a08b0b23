//go:build !rp2040 && !rp2350

package board

import (
	"errors"
	"testing"

	"envcan-go/canbus"
	"envcan-go/canproto"
	"envcan-go/config"
	"envcan-go/drivers/ads7828"
	"envcan-go/errcode"
)

func TestSetup_Loopback(t *testing.T) {
	cfg := config.Default()
	cfg.CAN.Transport = canbus.KindLoopback

	b, err := Setup(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if b.Sim == nil || b.Source == nil || b.Transport == nil {
		t.Fatalf("incomplete board: %+v", b)
	}
	if b.LED != nil {
		t.Fatal("host board should not have an LED")
	}
	v, err := b.Source.Value(canproto.Pressure)
	if err != nil || v != 101 {
		t.Fatalf("simulated pressure = %d, %v", v, err)
	}

	if err := b.Close(); err != nil {
		t.Fatal(err)
	}
	if err := b.Transport.Send(canproto.Frame{ID: 1}); !errors.Is(err, canbus.ErrClosed) {
		t.Fatalf("transport still open after Close: %v", err)
	}
}

func TestSetup_UnsupportedTransport(t *testing.T) {
	cfg := config.Default()
	cfg.CAN.Transport = canbus.KindMCP2515

	_, err := Setup(cfg)
	var e *errcode.E
	if !errors.As(err, &e) || e.C != errcode.Unsupported || e.Op != "can_init" {
		t.Fatalf("err = %v, want unsupported can_init", err)
	}
}

func TestApplyScales(t *testing.T) {
	cfg := config.Default().ADC
	adc := ads7828.New(nil)
	if err := applyScales(adc, cfg); err != nil {
		t.Fatal(err)
	}
	if got := adc.ScaleOf(cfg.MethaneCh); got != (ads7828.Scale{Min: 300, Max: 10000}) {
		t.Fatalf("methane scale = %+v", got)
	}

	cfg.COCh = 9
	err := applyScales(ads7828.New(nil), cfg)
	var e *errcode.E
	if !errors.As(err, &e) || e.C != errcode.SensorInit || e.Op != "adc_init" || !errors.Is(err, ads7828.ErrChannel) {
		t.Fatalf("err = %v, want sensor_init adc_init wrapping ErrChannel", err)
	}
}
