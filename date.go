package xpt

import (
	"strings"
	"time"
)

// Header records carry timestamps as 16-byte fields in the SAS DATETIME16.
// layout, e.g. "16FEB11:10:42:23". Two-digit years follow the usual Go
// pivot (69-99 -> 19xx, 00-68 -> 20xx), which matches how SAS software
// written this century interprets them.
const sasDatetimeLayout = "02Jan06:15:04:05"

// parseSASTime decodes a header timestamp field. The fields are
// informational only, so failures yield a zero time rather than an error.
func parseSASTime(b []byte) time.Time {
	s := strings.TrimRight(string(b), " \x00")
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(sasDatetimeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
