package canproto

// Bitmap marker values. Any byte other than MarkerRequested means "not requested".
const (
	MarkerRequested = 0x11
	MarkerUnused    = 0x00
)

// Request is a decoded request bitmap, index-aligned to Channel.
type Request [NumChannels]bool

// NewRequest marks the given channels as requested. Invalid channels are ignored.
func NewRequest(chs ...Channel) Request {
	var r Request
	for _, c := range chs {
		if c.Valid() {
			r[c] = true
		}
	}
	return r
}

// AllChannels requests every channel.
func AllChannels() Request { return NewRequest(Channels[:]...) }

// Requested reports whether c was asked for.
func (r Request) Requested(c Channel) bool { return c.Valid() && r[c] }

// Count returns the number of requested channels.
func (r Request) Count() int {
	n := 0
	for _, v := range r {
		if v {
			n++
		}
	}
	return n
}

// Mask packs the request into the low six bits, bit i set for channel i.
func (r Request) Mask() uint8 {
	var m uint8
	for i, v := range r {
		if v {
			m |= 1 << i
		}
	}
	return m
}

// Frame builds the inbound 0x1A4 frame a client sends for this request.
func (r Request) Frame() Frame {
	f := Frame{ID: RequestID, Len: NumChannels}
	for i, v := range r {
		if v {
			f.Data[i] = MarkerRequested
		} else {
			f.Data[i] = MarkerUnused
		}
	}
	return f
}

// DecodeRequest interprets f as a request bitmap. ok is false when f is not a
// request frame; such frames must be ignored entirely. Only the first six
// bytes within f.Len are examined and only 0x11 counts as requested, so a
// malformed bitmap simply decodes to fewer requested channels.
func DecodeRequest(f Frame) (r Request, ok bool) {
	if f.ID != RequestID {
		return r, false
	}
	data := f.Bytes()
	if len(data) > NumChannels {
		data = data[:NumChannels]
	}
	for i, b := range data {
		r[i] = b == MarkerRequested
	}
	return r, true
}
