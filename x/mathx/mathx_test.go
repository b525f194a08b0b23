package mathx

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	if got := Clamp(300, 0, 255); got != 255 {
		t.Fatalf("Clamp = %d", got)
	}
	if got := Clamp(-129, -128, 127); got != -128 {
		t.Fatalf("Clamp = %d", got)
	}
	if got := Clamp(5, 10, 0); got != 5 {
		t.Fatalf("swapped bounds: Clamp = %d", got)
	}
}

func TestTruncI32(t *testing.T) {
	cases := []struct {
		in   float64
		want int32
	}{
		{22.9, 22},
		{-3.7, -3},
		{0.999, 0},
		{1e12, math.MaxInt32},
		{-1e12, math.MinInt32},
		{math.NaN(), 0},
	}
	for _, c := range cases {
		if got := TruncI32(c.in); got != c.want {
			t.Fatalf("TruncI32(%v) = %d, want %d", c.in, got, c.want)
		}
	}
	if got := TruncI32(float32(48.2)); got != 48 {
		t.Fatalf("float32: %d", got)
	}
}

func TestMapU16(t *testing.T) {
	cases := []struct {
		x, inMin, inMax, outMin, outMax uint16
		want                            uint16
	}{
		{0, 0, 4095, 300, 10000, 300},
		{4095, 0, 4095, 300, 10000, 10000},
		{2048, 0, 4095, 30, 3000, 30 + 2048*2970/4095},
		{5000, 0, 4095, 30, 3000, 3000},
		{10, 0, 100, 100, 0, 90},
		{7, 5, 5, 1, 9, 1},
	}
	for _, c := range cases {
		if got := MapU16(c.x, c.inMin, c.inMax, c.outMin, c.outMax); got != c.want {
			t.Fatalf("MapU16(%+v) = %d, want %d", c, got, c.want)
		}
	}
}
