// Package logx is the node's console logger: one line per call, level and
// component prefixed, written with the builtin print (USB CDC on MCU, stderr
// on host) and mirrored to an optional sink such as a debug UART.
package logx

import (
	"fmt"
	"io"
	"sync"
)

type Level uint8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"Debug:", "Info:", "Warn:", "Error:"}

var (
	mu   sync.Mutex
	sink io.Writer
)

var (
	minLevel = LevelInfo
	console  = true
)

// SetSink mirrors every line to w (nil disables).
func SetSink(w io.Writer) {
	mu.Lock()
	sink = w
	mu.Unlock()
}

// SetLevel drops lines below l.
func SetLevel(l Level) {
	mu.Lock()
	minLevel = l
	mu.Unlock()
}

// SetConsole enables or disables the builtin print output.
func SetConsole(on bool) {
	mu.Lock()
	console = on
	mu.Unlock()
}

func Debug(tag string, a ...any) { logf(LevelDebug, tag, a...) }
func Info(tag string, a ...any)  { logf(LevelInfo, tag, a...) }
func Warn(tag string, a ...any)  { logf(LevelWarn, tag, a...) }
func Error(tag string, a ...any) { logf(LevelError, tag, a...) }

func logf(l Level, tag string, a ...any) {
	mu.Lock()
	defer mu.Unlock()
	if l < minLevel {
		return
	}
	line := levelNames[l] + " [" + tag + "] " + fmt.Sprintln(a...)
	if console {
		print(line)
	}
	if sink != nil {
		_, _ = io.WriteString(sink, line)
	}
}
