// Package conv formats numbers into caller buffers without fmt or strconv.
package conv

const hexd = "0123456789ABCDEF"

// Hex writes the low digits hex digits of n, uppercase and zero-padded,
// without a 0x prefix. It returns the used tail of buf, or buf[:0] when buf
// is too short.
func Hex(buf []byte, n uint32, digits int) []byte {
	if digits <= 0 || digits > 8 || len(buf) < digits {
		return buf[:0]
	}
	i := len(buf)
	for j := 0; j < digits; j++ {
		i--
		buf[i] = hexd[n&0xF]
		n >>= 4
	}
	return buf[i:]
}

// CANID renders a standard identifier as "0x1A4".
func CANID(id uint32) string {
	var buf [5]byte
	buf[0], buf[1] = '0', 'x'
	Hex(buf[2:], id, 3)
	return string(buf[:])
}
