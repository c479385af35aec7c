package xpt

import "math"

// Numeric values are stored as IBM System/370 long floating point,
// big-endian: 1 sign bit, 7-bit exponent biased by 64 with base 16, 56-bit
// fraction. value = sign * fraction * 16^(exponent-64) / 2^56.
//
// SAS reserves a family of bit patterns for missing values: a marker byte
// ('.', '_' or 'A'-'Z' for the lettered specials ._ and .A-.Z) followed by
// seven zero bytes. The marker check must run before magnitude decoding,
// since several of those patterns also parse as structurally valid floats.

// ibmToFloat converts an 8-byte IBM long float to a native float64.
// missing reports a SAS missing value, in which case value is meaningless.
// The all-zero pattern is the canonical 0.0, never missing.
func ibmToFloat(b []byte) (value float64, missing bool) {
	_ = b[7]

	var frac uint64
	for _, c := range b[1:8] {
		frac = frac<<8 | uint64(c)
	}

	if frac == 0 {
		if isMissingMarker(b[0]) {
			return 0, true
		}
		// Zero fraction with any exponent is zero, the all-zero pattern
		// being the canonical encoding.
		return 0, false
	}

	exp := int(b[0]&0x7f) - 64
	value = math.Ldexp(float64(frac), 4*exp-56)
	if b[0]&0x80 != 0 {
		value = -value
	}
	return value, false
}

func isMissingMarker(c byte) bool {
	return c == '.' || c == '_' || (c >= 'A' && c <= 'Z')
}

// decodeNumeric decodes a numeric field's raw bytes. SAS permits numeric
// lengths of 2-8 bytes; short values store the high-order bytes of the full
// representation, so the tail is zero-padded before conversion.
func decodeNumeric(raw []byte) (float64, bool) {
	var buf [8]byte
	copy(buf[:], raw)
	return ibmToFloat(buf[:])
}
