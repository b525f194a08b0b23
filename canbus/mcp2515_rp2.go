//go:build rp2040 || rp2350

package canbus

import (
	"machine"

	"tinygo.org/x/drivers/mcp2515"

	"envcan-go/canproto"
	"envcan-go/errcode"
)

// MCP2515Config describes the SPI wiring of the controller.
type MCP2515Config struct {
	SPI   *machine.SPI
	SCK   machine.Pin
	SDO   machine.Pin
	SDI   machine.Pin
	CS    machine.Pin
	SPIHz uint32
	// Speed and Clock are mcp2515 driver constants (e.g. mcp2515.CAN500kBps,
	// mcp2515.Clock8MHz).
	Speed byte
	Clock byte
}

// MCP2515 drives an external MCP2515 CAN controller over SPI.
type MCP2515 struct {
	dev *mcp2515.Device
}

// OpenMCP2515 configures SPI and starts the controller.
func OpenMCP2515(c MCP2515Config) (*MCP2515, error) {
	if c.SPIHz == 0 {
		c.SPIHz = 1_000_000
	}
	if c.Speed == 0 {
		c.Speed = mcp2515.CAN500kBps
	}
	if c.Clock == 0 {
		c.Clock = mcp2515.Clock8MHz
	}
	if err := c.SPI.Configure(machine.SPIConfig{
		Frequency: c.SPIHz,
		SCK:       c.SCK,
		SDO:       c.SDO,
		SDI:       c.SDI,
		Mode:      0,
	}); err != nil {
		return nil, &errcode.E{C: errcode.BusInit, Op: "mcp2515", Msg: "spi", Err: err}
	}
	dev := mcp2515.New(c.SPI, c.CS)
	dev.Configure()
	if err := dev.Begin(c.Speed, c.Clock); err != nil {
		return nil, &errcode.E{C: errcode.BusInit, Op: "mcp2515", Msg: "begin", Err: err}
	}
	return &MCP2515{dev: dev}, nil
}

func (m *MCP2515) TryReceive() (canproto.Frame, bool, error) {
	if !m.dev.Received() {
		return canproto.Frame{}, false, nil
	}
	msg, err := m.dev.Rx()
	if err != nil {
		return canproto.Frame{}, false, errcode.Wrap(errcode.RxFailed, "mcp2515", err)
	}
	n := int(msg.Dlc)
	if n > len(msg.Data) {
		n = len(msg.Data)
	}
	return canproto.NewFrame(msg.ID, msg.Data[:n]), true, nil
}

func (m *MCP2515) Send(f canproto.Frame) error {
	if err := f.Validate(); err != nil {
		return err
	}
	return errcode.Wrap(errcode.TxFailed, "mcp2515", m.dev.Tx(f.ID, f.Len, f.Bytes()))
}

func (m *MCP2515) Close() error { return nil }
