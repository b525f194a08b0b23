package canproto

import "errors"

// CAN identifiers used by the query protocol.
const (
	RequestID   = 0x1A4
	ResponseAID = 0x1A5
	ResponseBID = 0x1A6
)

const (
	maxStdID   = 0x7FF
	maxDataLen = 8
)

var (
	ErrInvalidID  = errors.New("canproto: invalid identifier")
	ErrInvalidLen = errors.New("canproto: invalid data length")
)

// Frame is a classical CAN data frame with an 11-bit identifier.
type Frame struct {
	ID   uint32
	Len  uint8 // 0..8
	Data [8]byte
}

// NewFrame copies data into a frame. Data beyond 8 bytes is dropped.
func NewFrame(id uint32, data []byte) Frame {
	f := Frame{ID: id}
	f.Len = uint8(copy(f.Data[:], data))
	return f
}

// Bytes returns the valid portion of Data.
func (f Frame) Bytes() []byte {
	n := f.Len
	if n > maxDataLen {
		n = maxDataLen
	}
	return f.Data[:n]
}

// Validate reports whether the frame fits classical CAN with a standard id.
func (f Frame) Validate() error {
	if f.Len > maxDataLen {
		return ErrInvalidLen
	}
	if f.ID > maxStdID {
		return ErrInvalidID
	}
	return nil
}
