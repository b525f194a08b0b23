// Package config holds the node configuration. Defaults reproduce the
// reference board; host builds may override them from a YAML file.
package config

import "envcan-go/canbus"

type Config struct {
	Node NodeConfig `yaml:"node"`
	CAN  CANConfig  `yaml:"can"`
	ADC  ADCConfig  `yaml:"adc"`
	Baro BaroConfig `yaml:"baro"`
	LED  LEDConfig  `yaml:"led"`
	Log  LogConfig  `yaml:"log"`
}

// ---- NODE ----

type NodeConfig struct {
	PollIntervalMs int `yaml:"poll_interval_ms"` // idle sleep when no frame is pending
	InitRetryMs    int `yaml:"init_retry_ms"`    // delay between failed bring-up attempts
	HeartbeatMs    int `yaml:"heartbeat_ms"`     // status line period, 0 disables

	// Send frame B for a requested pressure that reads 0 kPa.
	SendZeroPressure bool `yaml:"send_zero_pressure"`
}

// ---- CAN ----

type CANConfig struct {
	Transport   canbus.Kind `yaml:"transport"` // loopback | socketcan | mcp2515
	Interface   string      `yaml:"interface"` // socketcan only
	BitrateKbps int         `yaml:"bitrate_kbps"`
	QueueLen    int         `yaml:"queue_len"`
}

// ---- ANALOG GAS SENSORS ----

type Scale struct {
	Min uint16 `yaml:"min"`
	Max uint16 `yaml:"max"`
}

type ADCConfig struct {
	Bus         string `yaml:"bus"`
	AddressPins uint8  `yaml:"address_pins"`
	MethaneCh   int    `yaml:"methane_channel"`
	COCh        int    `yaml:"co_channel"`
	Methane     Scale  `yaml:"methane_scale"`
	CO          Scale  `yaml:"co_scale"`
}

// ---- BAROMETER ----

type BaroConfig struct {
	Address uint16 `yaml:"address"`
}

// ---- LED ----

type LEDConfig struct {
	Pin int `yaml:"pin"` // <0 disables the activity LED
}

// ---- LOG ----

type LogConfig struct {
	Level     string `yaml:"level"` // debug | info | warn | error
	DebugUART bool   `yaml:"debug_uart"`
}

// Default returns the reference board configuration.
func Default() Config {
	return Config{
		Node: NodeConfig{
			PollIntervalMs: 2,
			InitRetryMs:    1000,
			HeartbeatMs:    10000,
		},
		CAN: CANConfig{
			Transport:   defaultTransport,
			Interface:   "can0",
			BitrateKbps: 500,
			QueueLen:    16,
		},
		ADC: ADCConfig{
			Bus:         "i2c0",
			AddressPins: 3,
			MethaneCh:   1,
			COCh:        0,
			Methane:     Scale{Min: 300, Max: 10000},
			CO:          Scale{Min: 30, Max: 3000},
		},
		Baro: BaroConfig{Address: 0x77},
		LED:  LEDConfig{Pin: defaultLEDPin},
		Log:  LogConfig{Level: "info"},
	}
}
