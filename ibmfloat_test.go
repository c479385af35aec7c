package xpt

import (
	"math"
	"testing"
)

func TestIBMToFloatValues(t *testing.T) {
	tests := []struct {
		name string
		in   [8]byte
		want float64
	}{
		{"canonical zero", [8]byte{0, 0, 0, 0, 0, 0, 0, 0}, 0},
		{"one", [8]byte{0x41, 0x10, 0, 0, 0, 0, 0, 0}, 1},
		{"minus one", [8]byte{0xC1, 0x10, 0, 0, 0, 0, 0, 0}, -1},
		{"two", [8]byte{0x41, 0x20, 0, 0, 0, 0, 0, 0}, 2},
		{"half", [8]byte{0x40, 0x80, 0, 0, 0, 0, 0, 0}, 0.5},
		{"hundred", [8]byte{0x42, 0x64, 0, 0, 0, 0, 0, 0}, 100},
		{"pi-ish fraction", [8]byte{0x41, 0x32, 0x43, 0xF6, 0xA8, 0x88, 0x5A, 0x31}, 0x3243F6A8885A31p-52},
		{"tiny denormal range", [8]byte{0x00, 0x10, 0, 0, 0, 0, 0, 0}, math.Ldexp(1, -260)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, missing := ibmToFloat(tt.in[:])
			if missing {
				t.Fatalf("ibmToFloat(%x) reported missing", tt.in)
			}
			if got != tt.want {
				t.Errorf("ibmToFloat(%x) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIBMToFloatMissing(t *testing.T) {
	missingPatterns := map[string][8]byte{
		"plain .":    {'.', 0, 0, 0, 0, 0, 0, 0},
		"special ._": {'_', 0, 0, 0, 0, 0, 0, 0},
		"special .A": {'A', 0, 0, 0, 0, 0, 0, 0},
		"special .M": {'M', 0, 0, 0, 0, 0, 0, 0},
		"special .Z": {'Z', 0, 0, 0, 0, 0, 0, 0},
	}
	for name, in := range missingPatterns {
		if _, missing := ibmToFloat(in[:]); !missing {
			t.Errorf("%s (% x) not recognized as missing", name, in)
		}
	}
}

// A pattern that resembles a missing marker but carries a non-zero fraction
// is a genuine (often huge) float, never null. The marker test must run
// before magnitude decoding, not instead of it.
func TestIBMToFloatNearMissPatterns(t *testing.T) {
	tests := []struct {
		name string
		in   [8]byte
	}{
		{"sign bit with tiny fraction", [8]byte{0xC1, 0, 0, 0, 0, 0, 0, 0x01}},
		{"marker byte with non-zero tail", [8]byte{'A', 0, 0, 0, 0, 0, 0, 0x01}},
		{"max magnitude", [8]byte{0x7F, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, missing := ibmToFloat(tt.in[:])
			if missing {
				t.Fatalf("ibmToFloat(%x) reported missing, want a finite value", tt.in)
			}
			if math.IsNaN(got) || math.IsInf(got, 0) {
				t.Errorf("ibmToFloat(%x) = %v, want finite", tt.in, got)
			}
			if got == 0 {
				t.Errorf("ibmToFloat(%x) = 0, want non-zero magnitude", tt.in)
			}
		})
	}
}

func TestIBMToFloatSignBitZeroFraction(t *testing.T) {
	// Zero fraction is zero regardless of sign or exponent bits.
	in := [8]byte{0xC3, 0, 0, 0, 0, 0, 0, 0}
	got, missing := ibmToFloat(in[:])
	if missing || got != 0 {
		t.Errorf("ibmToFloat(%x) = %v missing=%v, want 0 false", in, got, missing)
	}
}

func TestDecodeNumericShort(t *testing.T) {
	tests := []struct {
		raw  []byte
		want float64
	}{
		{[]byte{0x42, 0x64, 0x00}, 100}, // 3-byte short numeric
		{[]byte{0x41, 0x10}, 1},         // 2-byte short numeric
		{[]byte{0x42, 0x22, 0, 0, 0, 0, 0, 0}, 34},
	}
	for _, tt := range tests {
		got, missing := decodeNumeric(tt.raw)
		if missing {
			t.Fatalf("decodeNumeric(% x) reported missing", tt.raw)
		}
		if got != tt.want {
			t.Errorf("decodeNumeric(% x) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

// Conversion error must stay within native binary64 rounding: a full 56-bit
// fraction still round-trips the nearest double exactly through Ldexp.
func TestIBMToFloatPrecision(t *testing.T) {
	in := [8]byte{0x41, 0x19, 0x99, 0x99, 0x99, 0x99, 0x99, 0x99}
	got, _ := ibmToFloat(in[:])
	want := math.Ldexp(float64(uint64(0x19999999999999)), -52)
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}
