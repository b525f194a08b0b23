// Package ads7828 provides a driver for the TI ADS7828 8-channel, 12-bit
// I2C ADC.
//
// Each conversion is a single command byte followed by a two-byte read:
//
//	d.Raw(ch)     // 0..4095
//	d.Scaled(ch)  // raw mapped linearly onto the channel's [MinScale, MaxScale]
//
// NOTE: I2C.Tx MUST perform a write followed by a repeated-start read when both
// w and r are provided, without releasing the bus.
package ads7828

import (
	"errors"

	"tinygo.org/x/drivers"

	"envcan-go/x/mathx"
)

// BaseAddress is the address with A1=A0=0; the address pins add 0..3.
const BaseAddress = 0x48

const (
	NumChannels = 8
	MaxRaw      = 0x0FFF
)

// Command byte fields (datasheet table 2).
const (
	cmdSingleEnded = 0x80

	// Power-down selection, bits 3..2.
	PowerDownBetween = 0x00 // power down between conversions
	RefOffADCOn      = 0x04
	RefOnADCOff      = 0x08
	RefOnADCOn       = 0x0C
)

var (
	ErrChannel  = errors.New("ads7828: invalid channel")
	ErrProtocol = errors.New("ads7828: protocol error")
)

// Scale maps the 12-bit raw reading onto an application range.
type Scale struct {
	Min, Max uint16
}

// Config controls non-hardware behaviour. All fields are optional.
type Config struct {
	// AddressPins is the A1:A0 strap (0..3).
	AddressPins uint8
	// PowerDown selects the PD bits. Zero keeps RefOnADCOn.
	PowerDown uint8
	// Differential selects differential pairs instead of single-ended inputs.
	Differential bool
}

// Device wraps an I2C connection to an ADS7828.
type Device struct {
	bus     drivers.I2C
	Address uint16

	pd     uint8
	single bool
	scales [NumChannels]Scale
	w      [1]byte
	r      [2]byte
}

// New creates a new ADS7828 connection. The I2C bus must already be configured.
// This function only creates the Device object; it does not touch the device.
func New(bus drivers.I2C) *Device {
	d := &Device{
		bus:     bus,
		Address: BaseAddress,
		pd:      RefOnADCOn,
		single:  true,
	}
	for i := range d.scales {
		d.scales[i] = Scale{Min: 0, Max: MaxRaw}
	}
	return d
}

// Configure applies cfg and performs one conversion to check the device ACKs.
func (d *Device) Configure(cfg Config) error {
	d.Address = BaseAddress | uint16(cfg.AddressPins&0x03)
	if cfg.PowerDown != 0 {
		d.pd = cfg.PowerDown & 0x0C
	}
	d.single = !cfg.Differential
	_, err := d.Raw(0)
	return err
}

// SetScale sets the linear range reported by Scaled for ch.
func (d *Device) SetScale(ch int, s Scale) error {
	if ch < 0 || ch >= NumChannels {
		return ErrChannel
	}
	d.scales[ch] = s
	return nil
}

// ScaleOf returns the range configured for ch.
func (d *Device) ScaleOf(ch int) Scale {
	if ch < 0 || ch >= NumChannels {
		return Scale{}
	}
	return d.scales[ch]
}

// Command returns the command byte for ch under the current configuration.
func (d *Device) Command(ch int) byte {
	// Channel select bits are odd/even interleaved: C2 = ch&1, C1:C0 = ch>>1.
	sel := byte(ch&1)<<2 | byte(ch>>1)&0x03
	cmd := sel<<4 | d.pd
	if d.single {
		cmd |= cmdSingleEnded
	}
	return cmd
}

// Raw performs one conversion on ch and returns the 12-bit result.
func (d *Device) Raw(ch int) (uint16, error) {
	if ch < 0 || ch >= NumChannels {
		return 0, ErrChannel
	}
	d.w[0] = d.Command(ch)
	if err := d.bus.Tx(d.Address, d.w[:], d.r[:]); err != nil {
		return 0, err
	}
	if d.r[0]&0xF0 != 0 {
		return 0, ErrProtocol
	}
	return uint16(d.r[0])<<8 | uint16(d.r[1]), nil
}

// Scaled performs one conversion on ch and maps it onto the channel scale.
func (d *Device) Scaled(ch int) (uint16, error) {
	raw, err := d.Raw(ch)
	if err != nil {
		return 0, err
	}
	s := d.scales[ch]
	return mathx.MapU16(raw, 0, MaxRaw, s.Min, s.Max), nil
}
