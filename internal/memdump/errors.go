package memdump

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a dump line was rejected.
type ErrorKind uint

const (
	KindMalformedLine ErrorKind = iota + 1
	KindAddressDiscontinuity
	KindWrongByteCount
	KindHexASCIIMismatch
)

// Sentinel errors matched by ParseError.Is, so callers can use errors.Is.
var (
	ErrMalformedLine        = errors.New("malformed line")
	ErrAddressDiscontinuity = errors.New("address discontinuity")
	ErrWrongByteCount       = errors.New("wrong byte count")
	ErrHexASCIIMismatch     = errors.New("hex/ascii mismatch")
)

func (k ErrorKind) String() string {
	switch k {
	case KindMalformedLine:
		return "malformed line"
	case KindAddressDiscontinuity:
		return "address discontinuity"
	case KindWrongByteCount:
		return "wrong byte count"
	case KindHexASCIIMismatch:
		return "hex/ascii mismatch"
	}
	return "error"
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindMalformedLine:
		return ErrMalformedLine
	case KindAddressDiscontinuity:
		return ErrAddressDiscontinuity
	case KindWrongByteCount:
		return ErrWrongByteCount
	case KindHexASCIIMismatch:
		return ErrHexASCIIMismatch
	}
	return nil
}

// ParseError reports a rejected dump line. Line is the 1-based index among
// the data lines left after header stripping, or 0 when the line was decoded
// outside a reconstruction pass.
type ParseError struct {
	Kind ErrorKind
	Msg  string
	Line int
	Text string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s at line %d: '%s'", e.Kind, e.Msg, e.Line, e.Text)
	}
	return fmt.Sprintf("%s: %s: '%s'", e.Kind, e.Msg, e.Text)
}

// Is reports whether target is the sentinel for this error's kind.
func (e *ParseError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// Hint returns the remediation advice for the error, if any.
func (e *ParseError) Hint() string {
	switch e.Kind {
	case KindMalformedLine:
		return "rerun after stripping more of the log file; there are sometimes additional lines above and below the dump"
	case KindHexASCIIMismatch:
		return "the line or one of the lines before it is corrupted"
	}
	return ""
}

func newParseError(kind ErrorKind, text, format string, args ...interface{}) *ParseError {
	return &ParseError{Kind: kind, Msg: fmt.Sprintf(format, args...), Text: text}
}
