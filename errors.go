package xpt

import (
	"errors"
	"fmt"
)

// Sentinel errors for the distinct ways a transport file can be malformed.
// Any of them may come back wrapped in a *ParseError carrying the byte
// offset at which the problem was detected; match with errors.Is.
var (
	// ErrTruncatedRecord is returned when fewer bytes remain than a fixed-size
	// record requires.
	ErrTruncatedRecord = errors.New("xpt: truncated record")

	// ErrInvalidHeader is returned when the LIBRARY header marker at the top of
	// the file is absent or corrupt.
	ErrInvalidHeader = errors.New("xpt: invalid library header")

	// ErrInvalidMember is returned when the MEMBER/DSCRPTR/NAMESTR/OBS framing
	// expected for a dataset section is missing mid-stream.
	ErrInvalidMember = errors.New("xpt: invalid member header")

	// ErrInvalidFieldDescriptor is returned when a NAMESTR record declares an
	// unknown variable type or an impossible length.
	ErrInvalidFieldDescriptor = errors.New("xpt: invalid field descriptor")

	// ErrRowLayout is returned when a member's row geometry is degenerate, for
	// example observation bytes present with a zero-length row.
	ErrRowLayout = errors.New("xpt: invalid row layout")
)

// ParseError wraps one of the sentinel errors above with the byte offset at
// which decoding failed and a short description of what was expected.
type ParseError struct {
	Err    error
	Offset int64
	Detail string
}

func (e *ParseError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%v at byte %d", e.Err, e.Offset)
	}
	return fmt.Sprintf("%v at byte %d: %s", e.Err, e.Offset, e.Detail)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func parseErrorf(err error, offset int64, format string, args ...interface{}) *ParseError {
	return &ParseError{Err: err, Offset: offset, Detail: fmt.Sprintf(format, args...)}
}
