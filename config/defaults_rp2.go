//go:build rp2040 || rp2350

package config

import "envcan-go/canbus"

const (
	defaultTransport = canbus.KindMCP2515
	defaultLEDPin    = 25 // Pico onboard LED
)
