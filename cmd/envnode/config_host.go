//go:build !rp2040 && !rp2350

package main

import (
	"os"
	"time"

	"envcan-go/config"
)

const bootDelay = 0 * time.Second

// loadConfig reads the YAML file named by the first argument, if any.
func loadConfig() (config.Config, error) {
	if len(os.Args) > 1 {
		return config.Load(os.Args[1])
	}
	return config.Default(), nil
}
