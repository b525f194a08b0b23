package config

import (
	"errors"
	"fmt"

	"envcan-go/canbus"
)

// Validate checks configuration correctness. It does not mutate cfg.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Node.PollIntervalMs < 0 {
		errs = append(errs, fmt.Errorf("node: poll_interval_ms must be >= 0, got %d", cfg.Node.PollIntervalMs))
	}
	if cfg.Node.InitRetryMs <= 0 {
		errs = append(errs, fmt.Errorf("node: init_retry_ms must be > 0, got %d", cfg.Node.InitRetryMs))
	}
	if cfg.Node.HeartbeatMs < 0 {
		errs = append(errs, fmt.Errorf("node: heartbeat_ms must be >= 0, got %d", cfg.Node.HeartbeatMs))
	}

	switch cfg.CAN.Transport {
	case canbus.KindLoopback, canbus.KindMCP2515:
	case canbus.KindSocketCAN:
		if cfg.CAN.Interface == "" {
			errs = append(errs, errors.New("can: socketcan transport requires an interface"))
		}
	default:
		errs = append(errs, fmt.Errorf("can: unknown transport %q", cfg.CAN.Transport))
	}
	switch cfg.CAN.BitrateKbps {
	case 125, 250, 500, 1000:
	default:
		errs = append(errs, fmt.Errorf("can: unsupported bitrate %d kbit/s", cfg.CAN.BitrateKbps))
	}
	if cfg.CAN.QueueLen < 0 {
		errs = append(errs, fmt.Errorf("can: queue_len must be >= 0, got %d", cfg.CAN.QueueLen))
	}

	if cfg.ADC.AddressPins > 3 {
		errs = append(errs, fmt.Errorf("adc: address_pins must be 0..3, got %d", cfg.ADC.AddressPins))
	}
	for _, ch := range []struct {
		name string
		n    int
	}{{"methane_channel", cfg.ADC.MethaneCh}, {"co_channel", cfg.ADC.COCh}} {
		if ch.n < 0 || ch.n > 7 {
			errs = append(errs, fmt.Errorf("adc: %s must be 0..7, got %d", ch.name, ch.n))
		}
	}
	if cfg.ADC.MethaneCh == cfg.ADC.COCh {
		errs = append(errs, errors.New("adc: methane and co share a channel"))
	}
	for _, s := range []struct {
		name string
		sc   Scale
	}{{"methane_scale", cfg.ADC.Methane}, {"co_scale", cfg.ADC.CO}} {
		if s.sc.Max <= s.sc.Min {
			errs = append(errs, fmt.Errorf("adc: %s max (%d) must exceed min (%d)", s.name, s.sc.Max, s.sc.Min))
		}
	}

	if cfg.Baro.Address != 0x76 && cfg.Baro.Address != 0x77 {
		errs = append(errs, fmt.Errorf("baro: address must be 0x76 or 0x77, got %#x", cfg.Baro.Address))
	}

	if _, ok := ParseLevel(cfg.Log.Level); !ok {
		errs = append(errs, fmt.Errorf("log: unknown level %q", cfg.Log.Level))
	}

	return errors.Join(errs...)
}
