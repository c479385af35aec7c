package xpt

import "bytes"

// The information unit in a transport file: every section is framed in
// fixed 80-byte records, padded at the end with blanks.
const (
	recordSize = 80
	fillByte   = 0x20
)

// Section marker records. Each occupies the first 48 bytes of its 80-byte
// record; the remainder of the record carries zero digits or section counts.
var (
	libraryMarker = []byte("HEADER RECORD*******LIBRARY HEADER RECORD!!!!!!!")
	memberMarker  = []byte("HEADER RECORD*******MEMBER  HEADER RECORD!!!!!!!")
	dscrptrMarker = []byte("HEADER RECORD*******DSCRPTR HEADER RECORD!!!!!!!")
	namestrMarker = []byte("HEADER RECORD*******NAMESTR HEADER RECORD!!!!!!!")
	obsMarker     = []byte("HEADER RECORD*******OBS     HEADER RECORD!!!!!!!")
)

// recordReader windows an in-memory buffer as a sequence of 80-byte records.
// It performs no interpretation of its own; the cursor is the only state.
type recordReader struct {
	data []byte
	pos  int
}

// offset reports the cursor position, used to annotate parse errors.
func (r *recordReader) offset() int64 {
	return int64(r.pos)
}

// bytesRemaining reports how many bytes are left past the cursor, so the
// orchestrator can tell end-of-stream from a missing section.
func (r *recordReader) bytesRemaining() int {
	return len(r.data) - r.pos
}

// readRecord returns the next 80-byte record and advances the cursor.
func (r *recordReader) readRecord() ([]byte, error) {
	if r.bytesRemaining() < recordSize {
		return nil, parseErrorf(ErrTruncatedRecord, r.offset(),
			"need %d bytes, have %d", recordSize, r.bytesRemaining())
	}
	rec := r.data[r.pos : r.pos+recordSize]
	r.pos += recordSize
	return rec, nil
}

// peekRecord returns the next record without consuming it.
func (r *recordReader) peekRecord() ([]byte, bool) {
	if r.bytesRemaining() < recordSize {
		return nil, false
	}
	return r.data[r.pos : r.pos+recordSize], true
}

// skip advances the cursor by n bytes, clamped to the end of the buffer.
func (r *recordReader) skip(n int) {
	r.pos += n
	if r.pos > len(r.data) {
		r.pos = len(r.data)
	}
}

// take consumes n raw bytes without record framing. Used for NAMESTR blocks,
// whose records are 140 bytes but padded to 80-byte multiples as a block.
func (r *recordReader) take(n int) ([]byte, error) {
	if r.bytesRemaining() < n {
		return nil, parseErrorf(ErrTruncatedRecord, r.offset(),
			"need %d bytes, have %d", n, r.bytesRemaining())
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// nextMemberBoundary scans forward from the cursor for the next MEMBER
// header record. Only 80-byte boundaries count: every section is padded to a
// record multiple, so a genuine member header is always record-aligned.
// Returns len(data) when no further member exists.
func (r *recordReader) nextMemberBoundary() int {
	for off := r.pos; off+recordSize <= len(r.data); off += recordSize {
		if bytes.HasPrefix(r.data[off:], memberMarker) {
			return off
		}
	}
	return len(r.data)
}

// isFill reports whether a byte slice is nothing but blank padding.
func isFill(b []byte) bool {
	for _, c := range b {
		if c != fillByte && c != 0x00 {
			return false
		}
	}
	return true
}
