//go:build rp2040 || rp2350

package main

import (
	"time"

	"envcan-go/config"
)

const bootDelay = 2 * time.Second

func loadConfig() (config.Config, error) { return config.Default(), nil }
