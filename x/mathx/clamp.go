package mathx

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Clamp limits v to [lo, hi]. If lo > hi, the bounds are swapped.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if hi < lo {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// TruncI32 drops the fractional part of v, rounding toward zero, and
// saturates at the int32 range. NaN becomes 0.
func TruncI32[T constraints.Float](v T) int32 {
	f := float64(v)
	if math.IsNaN(f) {
		return 0
	}
	return int32(Clamp(math.Trunc(f), math.MinInt32, math.MaxInt32))
}
