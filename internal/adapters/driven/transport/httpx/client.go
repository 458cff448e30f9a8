// Package httpx provides the engine's owned HTTP transport.
//
// The client is an explicitly passed handle with its own connection
// pool and lifecycle, never ambient global state. Outbound requests are
// throttled through a token bucket so batch retrievals stay polite.
package httpx

import (
	"context"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/bricsin4u/AIO-research/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.Transport = (*Client)(nil)

const (
	// DefaultTimeout bounds each request when no option overrides it.
	DefaultTimeout = 10 * time.Second

	// MaxBodyBytes caps how much of a response body is read.
	MaxBodyBytes = 10 << 20 // 10 MiB

	// DefaultRate is the default outbound requests-per-second cap.
	DefaultRate = 4.0
)

// Client is a rate-limited HTTP transport.
type Client struct {
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
	timeout   time.Duration
}

// Option configures the client.
type Option func(*Client)

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithRate caps outbound requests per second.
func WithRate(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithHTTPClient swaps the underlying client. Useful for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// NewClient creates a transport with its own connection pool.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{},
		limiter:   rate.NewLimiter(rate.Limit(DefaultRate), 1),
		userAgent: "aio-retriever/0.1 (ECR-compatible)",
		timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch performs a GET and reads the full body, up to MaxBodyBytes.
func (c *Client) Fetch(ctx context.Context, url string) (*driven.Response, error) {
	return c.do(ctx, http.MethodGet, url)
}

// Head performs a HEAD request.
func (c *Client) Head(ctx context.Context, url string) (*driven.Response, error) {
	return c.do(ctx, http.MethodHead, url)
}

// do issues one throttled request. The timeout applies per call, not
// cumulatively across a retrieval.
func (c *Client) do(ctx context.Context, method, url string) (*driven.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, method, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/aio+json, text/html;q=0.9, */*;q=0.8")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body []byte
	if method != http.MethodHead {
		body, err = io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
		if err != nil {
			return nil, err
		}
	}

	return &driven.Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}
