package docs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	docserr "github.com/owlting/paynow-docs-mcp/internal/errors"
	"github.com/owlting/paynow-docs-mcp/pkg/version"
)

// Client searches the PayNow Component documentation service.
// A Client is safe for concurrent use; it holds one pooled HTTP client
// for the lifetime of the process.
type Client struct {
	client    *http.Client
	transport *http.Transport // Store for connection cleanup
	config    Config
	endpoint  *url.URL
	retry     docserr.RetryConfig
	logger    *slog.Logger
}

// NewClient creates a docs client. Zero-valued fields in cfg take defaults.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Lang == "" {
		cfg.Lang = DefaultLang
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = DefaultPoolSize
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = version.UserAgent()
	}

	endpoint, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, docserr.ConfigError("invalid docs endpoint "+cfg.Endpoint, err)
	}
	if !endpoint.IsAbs() || endpoint.Host == "" {
		return nil, docserr.ConfigError("docs endpoint must be an absolute URL, got "+cfg.Endpoint, nil)
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        cfg.PoolSize,
		MaxIdleConnsPerHost: cfg.PoolSize,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	retry := docserr.DefaultRetryConfig()
	retry.MaxRetries = cfg.MaxRetries
	retry.InitialDelay = cfg.RetryDelay

	// No http.Client.Timeout: each attempt gets its own context deadline so
	// the timeout also covers reading the body and never spans retries.
	return &Client{
		client:    &http.Client{Transport: transport},
		transport: transport,
		config:    cfg,
		endpoint:  endpoint,
		retry:     retry,
		logger:    slog.Default(),
	}, nil
}

// SetLogger replaces the logger used for request diagnostics.
func (c *Client) SetLogger(logger *slog.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// Config returns the effective client configuration.
func (c *Client) Config() Config {
	return c.config
}

// Search sends query to the documentation service and returns the
// response body verbatim. Every failure is returned as a *errors.DocsError.
func (c *Client) Search(ctx context.Context, query string) (string, error) {
	reqURL := c.searchURL(query)
	attempt := 0

	body, err := docserr.RetryWithResult(ctx, c.retry, func() (string, error) {
		attempt++
		if attempt > 1 {
			c.logger.Debug("retrying docs request",
				slog.Int("attempt", attempt),
				slog.String("url", reqURL))
		}
		return c.do(ctx, reqURL)
	})
	if err != nil {
		var de *docserr.DocsError
		if !errors.As(err, &de) {
			// Context cancelled between attempts.
			return "", classify(err, reqURL)
		}
		return "", err
	}
	return body, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.transport.CloseIdleConnections()
	return nil
}

// searchURL builds the request URL, keeping any query already on the endpoint.
func (c *Client) searchURL(query string) string {
	u := *c.endpoint
	params := u.Query()
	params.Set("query", query)
	params.Set("lang", c.config.Lang)
	u.RawQuery = params.Encode()
	return u.String()
}

// do performs one attempt bounded by the configured timeout.
func (c *Client) do(ctx context.Context, reqURL string) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", docserr.InternalError("failed to create request", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", classify(err, reqURL)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", docserr.New(docserr.ErrCodeUpstreamStatus,
			fmt.Sprintf("%s for url: %s", resp.Status, reqURL), nil).
			WithDetail("status", strconv.Itoa(resp.StatusCode)).
			WithDetail("body", string(snippet))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", classify(fmt.Errorf("failed to read response body: %w", err), reqURL)
	}
	return string(data), nil
}

// classify maps a transport failure onto a DocsError.
// Only failures to establish a connection are retryable.
func classify(err error, reqURL string) *docserr.DocsError {
	var opErr *net.OpError
	var netErr net.Error

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return timeoutError(err, reqURL)
	case errors.As(err, &opErr) && opErr.Op == "dial":
		return docserr.NetworkError("connection failed: "+err.Error(), err).
			WithDetail("url", reqURL)
	case errors.As(err, &netErr) && netErr.Timeout():
		return timeoutError(err, reqURL)
	default:
		return docserr.New(docserr.ErrCodeSearchFailed, err.Error(), err).
			WithDetail("url", reqURL)
	}
}

func timeoutError(err error, reqURL string) *docserr.DocsError {
	return docserr.New(docserr.ErrCodeNetworkTimeout, "request timed out: "+err.Error(), err).
		WithDetail("url", reqURL)
}
