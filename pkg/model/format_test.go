package model

import (
	"math"
	"testing"
)

func TestFormatCount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{in: 200, want: "200"},
		{in: 1234567, want: "1,234,567"},
		{in: 1234567.8912, want: "1,234,567.891"},
		{in: 0.5, want: "0.5"},
		{in: math.NaN(), want: ""},
		{in: math.Inf(1), want: ""},
	}
	for _, tc := range cases {
		if got := FormatCount(tc.in); got != tc.want {
			t.Fatalf("FormatCount(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatOpticalDensity(t *testing.T) {
	cases := map[float64]string{
		0.1:    "0.100",
		1.2346: "1.235",
		2:      "2.000",
	}
	for in, want := range cases {
		if got := FormatOpticalDensity(in); got != want {
			t.Fatalf("FormatOpticalDensity(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatAxis(t *testing.T) {
	if got := FormatAxis(0.1); got != "0.1" {
		t.Fatalf("FormatAxis(0.1) = %q", got)
	}
	if got := FormatAxis(12); got != "12" {
		t.Fatalf("FormatAxis(12) = %q", got)
	}
}
