//go:build !rp2040 && !rp2350

package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML file over the defaults; keys missing from the file keep
// their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
