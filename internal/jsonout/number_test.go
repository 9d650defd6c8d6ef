package jsonout

import (
	"math"
	"strconv"
	"testing"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "-0"},
		{1, "1"},
		{100, "100"},
		{1000, "1e3"},
		{100000, "1e5"},
		{-2500000, "-25e5"},
		{1010, "1010"},
		{0.5, ".5"},
		{-0.25, "-.25"},
		{1234.5, "1234.5"},
		{0.0001, ".0001"},
		{1e-5, "1e-5"},
		{1.5e-7, "15e-8"},
		{1e14, "1e14"},
		{1e15, "1e15"},
		{1e21, "1e21"},
		{1.2345e21, "12345e17"},
		{123456789012345, "123456789012345"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatNumber(tt.in); got != tt.want {
				t.Fatalf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatNumberRoundTrips(t *testing.T) {
	values := []float64{
		3.141592653589793, 0.1, 0.30000000000000004, 1e-300, 5e-324,
		math.MaxFloat64, -1.7976931348623157e308, 123456.789, 9007199254740993,
		2.5e-5, 1e100, 0.000123, 42, -7e22,
	}
	for _, v := range values {
		s := FormatNumber(v)
		back, err := strconv.ParseFloat(s, 64)
		if err != nil {
			t.Fatalf("ParseFloat(%q): %v", s, err)
		}
		if back != v {
			t.Fatalf("%v -> %q -> %v", v, s, back)
		}
	}
}

func TestFormatNumberIsNotLongerThanGo(t *testing.T) {
	for _, v := range []float64{1e6, 123e10, 0.001, 7.25e-9, 1 << 40} {
		s := FormatNumber(v)
		if g := strconv.FormatFloat(v, 'g', -1, 64); len(s) > len(g) {
			t.Fatalf("FormatNumber(%v) = %q is longer than %q", v, s, g)
		}
	}
}
