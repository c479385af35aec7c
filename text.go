package xpt

import (
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// decodeWindows1252 maps raw single-byte text to UTF-8. Transport files are
// nominally ASCII, but files written on Windows SAS frequently carry
// Windows-1252 high bytes in labels and character values.
func decodeWindows1252(enc []byte) string {
	dec := charmap.Windows1252.NewDecoder()
	out, _ := dec.Bytes(enc)
	return string(out)
}

// trimField decodes a fixed-width text field, stripping the trailing blank
// or NUL padding the format fills unused bytes with.
func trimField(b []byte) string {
	end := len(b)
	for end > 0 && (b[end-1] == fillByte || b[end-1] == 0x00) {
		end--
	}
	if end == 0 {
		return ""
	}
	return decodeWindows1252(b[:end])
}

// parseRecordInt reads a zero-padded decimal count embedded in a header
// record, e.g. the NAMESTR variable count.
func parseRecordInt(b []byte) (int, bool) {
	s := strings.TrimSpace(string(b))
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
