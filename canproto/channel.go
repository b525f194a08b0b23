// Package canproto implements the environmental query protocol carried on CAN:
// the request bitmap on 0x1A4 and the fixed-layout responses on 0x1A5/0x1A6.
//
// Every channel owns a fixed region of a 9-byte payload, whether or not it
// was requested, so a given channel is always found at the same offset:
//
//	offset 0..1  methane      (u16, high byte first)
//	offset 2..3  CO2          (u16, high byte first)
//	offset 4..5  CO           (u16, high byte first)
//	offset 6     temperature  (i8, two's complement)
//	offset 7     humidity     (u8)
//	offset 8     pressure     (u8, kPa)
//
// Bytes 0..7 travel in frame A, byte 8 in frame B.
package canproto

// Channel is one of the six measurable quantities, in wire order.
type Channel uint8

const (
	Methane Channel = iota
	CO2
	CO
	Temperature
	Humidity
	Pressure

	NumChannels = 6
)

// Channels lists every channel in wire order.
var Channels = [NumChannels]Channel{Methane, CO2, CO, Temperature, Humidity, Pressure}

var channelNames = [NumChannels]string{"methane", "co2", "co", "temperature", "humidity", "pressure"}

func (c Channel) String() string {
	if c < NumChannels {
		return channelNames[c]
	}
	return "unknown"
}

// Valid reports whether c names one of the six channels.
func (c Channel) Valid() bool { return c < NumChannels }

// Width is the number of payload bytes the channel occupies.
func (c Channel) Width() int {
	if c <= CO {
		return 2
	}
	return 1
}

// Offset is the channel's first byte in the payload.
func (c Channel) Offset() int {
	off := 0
	for ch := Channel(0); ch < c; ch++ {
		off += ch.Width()
	}
	return off
}

// ParseChannel resolves a channel by its String name.
func ParseChannel(s string) (Channel, bool) {
	for i, n := range channelNames {
		if n == s {
			return Channel(i), true
		}
	}
	return 0, false
}
