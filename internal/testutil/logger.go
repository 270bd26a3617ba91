package testutil

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// NewTestLogger creates a test logger that discards output.
func NewTestLogger() zerolog.Logger {
	return zerolog.Nop()
}

// NewTestLoggerWithOutput creates a debug level logger that writes readable
// lines to t.Log, so they only show up for failing or verbose tests.
func NewTestLoggerWithOutput(t *testing.T) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:     &testLogWriter{t: t},
		NoColor: true,
	}).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}

// testLogWriter wraps testing.T to implement io.Writer.
type testLogWriter struct {
	t *testing.T
}

func (w *testLogWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
