// ABOUTME: Rate-limited page fetcher with per-domain limiters and content caching
// ABOUTME: Fetch failures are uniform FetchErrors; retries are the crawler's business

package fetcher

import (
	"context"
	"io"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	coreerrors "navassist-api/core/errors"
	"navassist-api/core/interfaces"
)

const (
	cacheKeyPrefix  = "page:"
	defaultCacheTTL = time.Hour

	// maxBodyBytes bounds how much of a page is read into memory.
	maxBodyBytes = 5 << 20
)

// Options configures the fetcher.
type Options struct {
	// RequestsPerMinute caps the fetch rate per domain.
	RequestsPerMinute int

	// CacheTTL controls how long fetched content is reused.
	CacheTTL time.Duration
}

// RateLimitedFetcher implements interfaces.Fetcher. Requests to one
// domain are spaced out by a per-domain limiter; successful bodies are
// cached so re-analysis of a page costs nothing.
type RateLimitedFetcher struct {
	client interfaces.HTTPClient
	cache  interfaces.Cache
	logger interfaces.Logger
	opts   Options

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// New creates a fetcher over client and cache.
func New(client interfaces.HTTPClient, cache interfaces.Cache, logger interfaces.Logger, opts Options) *RateLimitedFetcher {
	if opts.RequestsPerMinute <= 0 {
		opts.RequestsPerMinute = 20
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = defaultCacheTTL
	}
	return &RateLimitedFetcher{
		client:   client,
		cache:    cache,
		logger:   logger,
		opts:     opts,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Fetch returns the HTML body at pageURL. Transport failures and HTTP
// status >= 400 both come back as a FetchError; the body is never
// partially returned.
func (f *RateLimitedFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	key := cacheKeyPrefix + pageURL
	if cached, err := f.cache.Get(ctx, key); err == nil && len(cached) > 0 {
		f.logger.Debug("Fetch cache hit", map[string]interface{}{"url": pageURL})
		return string(cached), nil
	}

	host, err := hostOf(pageURL)
	if err != nil {
		return "", &coreerrors.FetchError{URL: pageURL, Reason: "invalid URL: " + err.Error()}
	}

	if err := f.limiter(host).Wait(ctx); err != nil {
		return "", &coreerrors.FetchError{URL: pageURL, Reason: err.Error()}
	}

	resp, err := f.client.Get(ctx, pageURL)
	if err != nil {
		return "", &coreerrors.FetchError{URL: pageURL, Reason: err.Error()}
	}
	defer resp.Body().Close()

	if resp.StatusCode() >= 400 {
		f.logger.Warn("Fetch returned error status", map[string]interface{}{
			"url":    pageURL,
			"status": resp.StatusCode(),
		})
		return "", &coreerrors.FetchError{URL: pageURL, StatusCode: resp.StatusCode(), Reason: "HTTP error status"}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body(), maxBodyBytes))
	if err != nil {
		return "", &coreerrors.FetchError{URL: pageURL, Reason: "reading body: " + err.Error()}
	}

	if err := f.cache.Set(ctx, key, body, f.opts.CacheTTL); err != nil {
		f.logger.Debug("Caching fetched page failed", map[string]interface{}{"url": pageURL, "error": err.Error()})
	}

	return string(body), nil
}

// SetDomainRate replaces host's limiter with one honoring the given
// per-minute budget. Values below one restore the configured default.
// Implements interfaces.RateAdjustableFetcher.
func (f *RateLimitedFetcher) SetDomainRate(host string, requestsPerMinute int) {
	if requestsPerMinute <= 0 {
		requestsPerMinute = f.opts.RequestsPerMinute
	}
	interval := time.Minute / time.Duration(requestsPerMinute)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.limiters[strings.ToLower(host)] = rate.NewLimiter(rate.Every(interval), 1)
}

// limiter returns the domain's limiter, creating it on first use with an
// interval of one minute divided by the per-minute budget.
func (f *RateLimitedFetcher) limiter(host string) *rate.Limiter {
	f.mu.Lock()
	defer f.mu.Unlock()

	if limiter, ok := f.limiters[host]; ok {
		return limiter
	}
	interval := time.Minute / time.Duration(f.opts.RequestsPerMinute)
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	f.limiters[host] = limiter
	return limiter
}

func hostOf(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	return strings.ToLower(u.Hostname()), nil
}
