package driven

import (
	"context"
	"net/http"
)

// Response is the outcome of one HTTP call.
type Response struct {
	// StatusCode is the HTTP status. Non-2xx codes are not errors;
	// callers inspect the status themselves.
	StatusCode int

	// Header holds the response headers.
	Header http.Header

	// Body is the response body, fully read.
	Body []byte
}

// OK returns true for 2xx status codes.
func (r *Response) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Transport performs HTTP calls on behalf of the engine.
//
// Implementations own their connection pool and lifecycle; the engine
// never reaches for ambient global clients. An error return means a
// transport-level failure (DNS, connection, timeout) - never a non-2xx
// status.
type Transport interface {
	// Fetch performs a GET and reads the full body.
	Fetch(ctx context.Context, url string) (*Response, error)

	// Head performs a HEAD. The returned Response has an empty body.
	Head(ctx context.Context, url string) (*Response, error)
}
