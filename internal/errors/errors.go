package errors

import (
	"errors"
	"fmt"
)

// DocsError is the structured error type used inside the server.
// It carries enough context for logging; the MCP layer decides what the
// client eventually sees.
type DocsError struct {
	// Code is the unique error code (e.g., "ERR_301_NETWORK_TIMEOUT").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, Network, etc.).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Retryable indicates if the operation can be retried.
	Retryable bool
}

// Error implements the error interface.
func (e *DocsError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *DocsError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a DocsError with the same code.
func (e *DocsError) Is(target error) bool {
	if t, ok := target.(*DocsError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
func (e *DocsError) WithDetail(key, value string) *DocsError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// New creates a new DocsError with the given code and message.
// Category, severity, and retryable flag are derived from the code.
func New(code string, message string, cause error) *DocsError {
	return &DocsError{
		Code:      code,
		Message:   message,
		Category:  categoryFromCode(code),
		Severity:  severityFromCode(code),
		Cause:     cause,
		Retryable: isRetryableCode(code),
	}
}

// Wrap creates a DocsError from an existing error, reusing its message.
func Wrap(code string, err error) *DocsError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *DocsError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// NetworkError creates an error for a connection that could not be made.
func NetworkError(message string, cause error) *DocsError {
	return New(ErrCodeNetworkUnavailable, message, cause)
}

// ValidationError creates a validation-related error.
func ValidationError(message string, cause error) *DocsError {
	return New(ErrCodeInvalidInput, message, cause)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *DocsError {
	return New(ErrCodeInternal, message, cause)
}

// IsRetryable checks if any DocsError in the chain is retryable.
func IsRetryable(err error) bool {
	var de *DocsError
	if errors.As(err, &de) {
		return de.Retryable
	}
	return false
}

// GetCode extracts the error code from a DocsError in the chain.
// Returns empty string if there is none.
func GetCode(err error) string {
	var de *DocsError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// GetCategory extracts the category from a DocsError in the chain.
func GetCategory(err error) Category {
	var de *DocsError
	if errors.As(err, &de) {
		return de.Category
	}
	return ""
}
