package conv

// Utoa writes the base-10 representation of n into buf and returns the used
// tail. buf should hold 20 bytes for any uint64.
func Utoa(buf []byte, n uint64) []byte {
	if len(buf) == 0 {
		return buf[:0]
	}
	i := len(buf)
	if n == 0 {
		i--
		buf[i] = '0'
		return buf[i:]
	}
	for n > 0 && i > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return buf[i:]
}

// Uptime renders a duration in whole seconds as "1d02h03m04s", dropping
// leading zero units.
func Uptime(sec uint64) string {
	var out []byte
	var buf [20]byte
	units := [...]struct {
		n    uint64
		unit byte
	}{{sec / 86400, 'd'}, {sec / 3600 % 24, 'h'}, {sec / 60 % 60, 'm'}, {sec % 60, 's'}}
	for i, u := range units {
		if len(out) == 0 && u.n == 0 && i < len(units)-1 {
			continue
		}
		d := Utoa(buf[:], u.n)
		if len(out) > 0 && len(d) < 2 {
			out = append(out, '0')
		}
		out = append(out, d...)
		out = append(out, u.unit)
	}
	return string(out)
}
