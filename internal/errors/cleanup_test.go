package errors

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type stubLog struct {
	err    error
	closes int
}

func (s *stubLog) Close() error {
	s.closes++
	return s.err
}

func TestDeferClose(t *testing.T) {
	t.Run("nil closer is ignored", func(t *testing.T) {
		var buf bytes.Buffer
		DeferClose(zerolog.New(&buf), nil, "failed to close log file")
		assert.Zero(t, buf.Len())
	})

	t.Run("clean close logs nothing", func(t *testing.T) {
		var buf bytes.Buffer
		log := &stubLog{}
		DeferClose(zerolog.New(&buf), log, "failed to close log file")
		assert.Equal(t, 1, log.closes)
		assert.Zero(t, buf.Len())
	})

	t.Run("close error is logged as a warning", func(t *testing.T) {
		var buf bytes.Buffer
		log := &stubLog{err: errors.New("input/output error")}
		DeferClose(zerolog.New(&buf), log, "failed to close log file")
		assert.Equal(t, 1, log.closes)
		assert.Contains(t, buf.String(), `"level":"warn"`)
		assert.Contains(t, buf.String(), "failed to close log file")
		assert.Contains(t, buf.String(), "input/output error")
	})
}

type hinted struct{ hint string }

func (h *hinted) Error() string { return "hinted" }
func (h *hinted) Hint() string  { return h.hint }

func TestHint(t *testing.T) {
	assert.Empty(t, Hint(nil))
	assert.Empty(t, Hint(errors.New("plain")))

	err := WithHint(errors.New("boom"), "try again")
	assert.Equal(t, "boom", err.Error())
	assert.Equal(t, "try again", Hint(err))

	wrapped := fmt.Errorf("failed to convert: %w", &hinted{hint: "strip the log"})
	assert.Equal(t, "strip the log", Hint(wrapped))

	empty := fmt.Errorf("outer: %w", WithHint(&hinted{hint: "inner"}, ""))
	assert.Equal(t, "inner", Hint(empty))

	assert.Nil(t, WithHint(nil, "unused"))
}
