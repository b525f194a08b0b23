//go:build !rp2040 && !rp2350

package config

import "envcan-go/canbus"

const (
	defaultTransport = canbus.KindSocketCAN
	defaultLEDPin    = -1
)
