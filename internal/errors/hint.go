package errors

import (
	stderrors "errors"
)

// hinter is implemented by errors that carry remediation advice for the user.
type hinter interface {
	Hint() string
}

type hintError struct {
	err  error
	hint string
}

func (e *hintError) Error() string { return e.err.Error() }
func (e *hintError) Unwrap() error { return e.err }
func (e *hintError) Hint() string  { return e.hint }

// WithHint attaches remediation advice to err. A nil err stays nil.
func WithHint(err error, hint string) error {
	if err == nil {
		return nil
	}
	return &hintError{err: err, hint: hint}
}

// Hint returns the first non-empty hint found in err's chain.
func Hint(err error) string {
	for err != nil {
		if h, ok := err.(hinter); ok && h.Hint() != "" {
			return h.Hint()
		}
		err = stderrors.Unwrap(err)
	}
	return ""
}
