package errors

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatForCLI_Nil(t *testing.T) {
	assert.Empty(t, FormatForCLI(nil))
}

func TestFormatForCLI_DocsError(t *testing.T) {
	// Given: an upstream failure with a cause
	err := New(ErrCodeUpstreamStatus, "docs service returned 502 Bad Gateway", errors.New("upstream body"))

	// When: formatting for the terminal
	out := FormatForCLI(err)

	// Then: message, cause and code are present
	assert.Contains(t, out, "Error: docs service returned 502 Bad Gateway")
	assert.Contains(t, out, "Cause: upstream body")
	assert.Contains(t, out, "Code: ERR_303_UPSTREAM_STATUS")
}

func TestFormatForCLI_PlainErrorIsWrappedAsInternal(t *testing.T) {
	out := FormatForCLI(errors.New("something odd"))

	assert.Contains(t, out, "Error: something odd")
	assert.Contains(t, out, ErrCodeInternal)
	assert.NotContains(t, out, "Cause:")
}

func TestFormatForLog_DocsError(t *testing.T) {
	err := New(ErrCodeNetworkTimeout, "timed out", errors.New("context deadline exceeded")).
		WithDetail("attempt", "1")

	attrs := FormatForLog(err)

	got := map[string]slog.Value{}
	for _, a := range attrs {
		got[a.Key] = a.Value
	}
	assert.Equal(t, ErrCodeNetworkTimeout, got["error_code"].String())
	assert.Equal(t, string(CategoryNetwork), got["category"].String())
	assert.Equal(t, "context deadline exceeded", got["cause"].String())
	assert.Equal(t, "1", got["detail_attempt"].String())
	assert.False(t, got["retryable"].Bool())
}

func TestFormatForLog_PlainError(t *testing.T) {
	attrs := FormatForLog(errors.New("plain"))

	assert.Len(t, attrs, 1)
	assert.Equal(t, "error", attrs[0].Key)
	assert.Nil(t, FormatForLog(nil))
}
