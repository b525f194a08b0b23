package canproto

import (
	"errors"

	"envcan-go/x/mathx"
)

const (
	PayloadLen = 9
	Sentinel   = 0xFF

	FrameALen = 8
	FrameBLen = 1
)

// Payload is the fixed 9-byte response body.
type Payload [PayloadLen]byte

// Region returns the bytes owned by c.
func (p *Payload) Region(c Channel) []byte {
	off := c.Offset()
	return p[off : off+c.Width()]
}

// Source yields the current value of a channel, already converted to the
// integer unit carried on the wire.
type Source interface {
	Value(c Channel) (int32, error)
}

// PutU16 writes v high byte first.
func PutU16(dst []byte, v uint16) {
	_ = dst[1]
	dst[0] = byte(v >> 8)
	dst[1] = byte(v)
}

// U16 reads a value written by PutU16.
func U16(src []byte) uint16 {
	_ = src[1]
	return uint16(src[0])<<8 | uint16(src[1])
}

// encodeValue writes v into dst (len == c.Width()), clamped to the field range.
func encodeValue(dst []byte, c Channel, v int32) {
	switch c {
	case Methane, CO2, CO:
		PutU16(dst, uint16(mathx.Clamp(v, 0, 0xFFFF)))
	case Temperature:
		dst[0] = byte(int8(mathx.Clamp(v, -128, 127)))
	default:
		dst[0] = byte(mathx.Clamp(v, 0, 0xFF))
	}
}

func decodeValue(src []byte, c Channel) int32 {
	switch c {
	case Methane, CO2, CO:
		return int32(U16(src))
	case Temperature:
		return int32(int8(src[0]))
	default:
		return int32(src[0])
	}
}

func fill(dst []byte) {
	for i := range dst {
		dst[i] = Sentinel
	}
}

// Encode walks the channels in order with a cursor into the payload. A
// requested channel is fetched from src and written at its width; an
// unrequested one is filled with Sentinel. A failed read also leaves the
// region at Sentinel; the payload is always complete and the read errors are
// returned joined.
func Encode(req Request, src Source) (Payload, error) {
	var (
		p    Payload
		errs []error
		cur  int
	)
	for _, c := range Channels {
		dst := p[cur : cur+c.Width()]
		cur += c.Width()

		if !req[c] {
			fill(dst)
			continue
		}
		v, err := src.Value(c)
		if err != nil {
			fill(dst)
			errs = append(errs, err)
			continue
		}
		encodeValue(dst, c, v)
	}
	return p, errors.Join(errs...)
}

// AssembleOptions tunes frame B emission.
type AssembleOptions struct {
	// SendZeroPressure sends frame B whenever pressure was requested, even if
	// it reads 0 kPa. The default suppresses a zero pressure byte.
	SendZeroPressure bool
}

// Assemble builds the outbound frames for p. Frame A is always present.
// Frame B follows only if pressure was requested and, unless
// SendZeroPressure is set, its byte is non-zero.
func Assemble(req Request, p Payload, opt AssembleOptions) []Frame {
	out := make([]Frame, 1, 2)
	out[0] = NewFrame(ResponseAID, p[:FrameALen])

	b := p[Pressure.Offset()]
	if req[Pressure] && (b != 0 || opt.SendZeroPressure) {
		out = append(out, NewFrame(ResponseBID, p[FrameALen:FrameALen+FrameBLen]))
	}
	return out
}

// Reading is a client-side view of a response.
type Reading struct {
	Values  [NumChannels]int32
	Present [NumChannels]bool
}

// Value returns the decoded value for c and whether it was present.
func (r Reading) Value(c Channel) (int32, bool) {
	if !c.Valid() {
		return 0, false
	}
	return r.Values[c], r.Present[c]
}

var ErrNoFrameA = errors.New("canproto: response frame A missing")

// DecodeResponse rebuilds channel values from the frames answering req.
// Frames with other identifiers are skipped. A requested 2-byte region that
// holds only Sentinel bytes is reported absent. 1-byte regions are always
// reported, since 0xFF is a real reading there (-1 °C, 255 %RH); pressure is
// absent when frame B was not received.
func DecodeResponse(req Request, frames ...Frame) (Reading, error) {
	var (
		r     Reading
		p     Payload
		haveA bool
		haveB bool
	)
	fill(p[:])
	for i := range frames {
		f := &frames[i]
		switch f.ID {
		case ResponseAID:
			if f.Len != FrameALen {
				return r, ErrInvalidLen
			}
			copy(p[:FrameALen], f.Bytes())
			haveA = true
		case ResponseBID:
			if f.Len != FrameBLen {
				return r, ErrInvalidLen
			}
			p[FrameALen] = f.Data[0]
			haveB = true
		}
	}
	if !haveA {
		return r, ErrNoFrameA
	}
	for _, c := range Channels {
		if !req[c] {
			continue
		}
		if c == Pressure && !haveB {
			continue
		}
		reg := p.Region(c)
		if c.Width() > 1 && allSentinel(reg) {
			continue
		}
		r.Values[c] = decodeValue(reg, c)
		r.Present[c] = true
	}
	return r, nil
}

func allSentinel(b []byte) bool {
	for _, v := range b {
		if v != Sentinel {
			return false
		}
	}
	return true
}
