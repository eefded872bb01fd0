// Package docs is the HTTP client for the remote PayNow Component
// documentation search service.
package docs

import "time"

// Remote service constants
const (
	// DefaultEndpoint is the documentation search API.
	DefaultEndpoint = "https://mcp.owlting.com/paynow-component-docs/get-paynow-component-documentation"

	// DefaultLang is sent as the lang parameter. Queries are expected in English.
	DefaultLang = "en"

	// DefaultTimeout bounds a single request attempt.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRetries is the number of extra attempts after a failed connection.
	DefaultMaxRetries = 3

	// DefaultRetryDelay is the wait before the first connection retry.
	DefaultRetryDelay = 250 * time.Millisecond

	// DefaultPoolSize is the number of idle keep-alive connections kept to the service.
	DefaultPoolSize = 4

	// maxErrorBody caps how much of a failed response body ends up in error details.
	maxErrorBody = 512
)

// Config configures the docs client.
type Config struct {
	// Endpoint is the absolute URL of the search API.
	Endpoint string

	// Lang is the value of the lang query parameter.
	Lang string

	// Timeout bounds each attempt, including reading the body.
	Timeout time.Duration

	// MaxRetries is how many times a failed connection is retried.
	// Zero keeps the default; use a negative value to disable retries.
	MaxRetries int

	// RetryDelay is the initial backoff between connection retries.
	RetryDelay time.Duration

	// PoolSize is the idle connection pool size.
	PoolSize int

	// UserAgent is sent with every request. Empty uses the build version.
	UserAgent string
}

// DefaultConfig returns the configuration matching the public service.
func DefaultConfig() Config {
	return Config{
		Endpoint:   DefaultEndpoint,
		Lang:       DefaultLang,
		Timeout:    DefaultTimeout,
		MaxRetries: DefaultMaxRetries,
		RetryDelay: DefaultRetryDelay,
		PoolSize:   DefaultPoolSize,
	}
}
