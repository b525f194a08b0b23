package config

import "envcan-go/x/logx"

// ParseLevel maps a config level name to a logx level. Empty means info.
func ParseLevel(s string) (logx.Level, bool) {
	switch s {
	case "debug":
		return logx.LevelDebug, true
	case "", "info":
		return logx.LevelInfo, true
	case "warn":
		return logx.LevelWarn, true
	case "error":
		return logx.LevelError, true
	}
	return logx.LevelInfo, false
}
