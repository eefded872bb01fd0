package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// FormatForCLI formats an error for CLI output.
// Uses a concise format suitable for terminal display.
func FormatForCLI(err error) string {
	if err == nil {
		return ""
	}

	var de *DocsError
	if !errors.As(err, &de) {
		de = Wrap(ErrCodeInternal, err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Error: %s\n", de.Message))
	if de.Cause != nil && de.Cause.Error() != de.Message {
		sb.WriteString(fmt.Sprintf("  Cause: %s\n", de.Cause.Error()))
	}
	sb.WriteString(fmt.Sprintf("  Code: %s\n", de.Code))

	return sb.String()
}

// FormatForLog returns slog attributes describing err.
func FormatForLog(err error) []slog.Attr {
	if err == nil {
		return nil
	}

	var de *DocsError
	if !errors.As(err, &de) {
		return []slog.Attr{slog.String("error", err.Error())}
	}

	attrs := []slog.Attr{
		slog.String("error_code", de.Code),
		slog.String("message", de.Message),
		slog.String("category", string(de.Category)),
		slog.String("severity", string(de.Severity)),
		slog.Bool("retryable", de.Retryable),
	}
	if de.Cause != nil {
		attrs = append(attrs, slog.String("cause", de.Cause.Error()))
	}
	for k, v := range de.Details {
		attrs = append(attrs, slog.String("detail_"+k, v))
	}

	return attrs
}
