// Package board brings up the node's collaborators (CAN transport, sensors,
// activity LED) for the selected platform and hands them to the caller,
// which owns their lifetime.
package board

import (
	"errors"

	"envcan-go/canbus"
	"envcan-go/canproto"
	"envcan-go/sensors"
)

// LED is an activity indicator.
type LED interface {
	Toggle()
}

// Board is the result of a successful Setup.
type Board struct {
	Transport canbus.Transport
	Source    canproto.Source
	LED       LED          // nil when disabled
	Sim       *sensors.Sim // host builds only

	closers []func() error
}

// Close releases what Setup acquired, in reverse order.
func (b *Board) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		errs = append(errs, b.closers[i]())
	}
	b.closers = nil
	return errors.Join(errs...)
}

func (b *Board) onClose(fn func() error) { b.closers = append(b.closers, fn) }
