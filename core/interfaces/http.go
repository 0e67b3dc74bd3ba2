package interfaces

import (
	"context"
	"io"
)

// HTTPClient defines the interface for making HTTP requests.
// This abstraction allows for easy mocking in tests and switching between
// different HTTP client implementations.
type HTTPClient interface {
	// Get performs an HTTP GET request to the specified URL.
	Get(ctx context.Context, url string) (Response, error)

	// Post performs an HTTP POST request to the specified URL with the given body.
	Post(ctx context.Context, url string, body io.Reader) (Response, error)
}

// Response defines the interface for HTTP responses.
type Response interface {
	// StatusCode returns the HTTP status code of the response.
	StatusCode() int

	// Body returns the response body as an io.ReadCloser.
	// The caller is responsible for closing the body when done.
	Body() io.ReadCloser

	// Header returns the value of the specified header.
	// Header names are case-insensitive.
	Header(key string) string
}

// Fetcher retrieves page HTML with per-domain rate limiting and caching.
// A failed fetch returns a FetchError; the content is never partially
// returned.
type Fetcher interface {
	// Fetch returns the HTML body of the page at url.
	Fetch(ctx context.Context, url string) (string, error)
}

// RateAdjustableFetcher is an optional Fetcher extension for
// implementations whose per-domain fetch rate can be changed after
// construction. Callers type-assert and fall back to the fixed rate
// when the fetcher doesn't support adjustment.
type RateAdjustableFetcher interface {
	Fetcher

	// SetDomainRate overrides the fetch rate for one domain. A value
	// below one restores the configured default.
	SetDomainRate(host string, requestsPerMinute int)
}
