// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the rate-limited, retrying HTTP client shared by
// the E-utilities gateway and fetcher.
package httputil

import (
	"context"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/pdiddy/papershelf/pkg/types"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// retryable responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 1 * time.Second

const (
	defaultMaxRetries = 3
	defaultTimeout    = 30 * time.Second
	defaultUserAgent  = "papershelf/dev"
)

// Client wraps http.Client with a token bucket limiter and retry on
// HTTP 429 and 5xx responses. It is safe for concurrent use.
type Client struct {
	http       *http.Client
	limiter    *rate.Limiter
	maxRetries int
	userAgent  string
	log        zerolog.Logger
}

// NewClient builds a Client from cfg. A zero RateLimit disables limiting.
func NewClient(cfg types.HTTPConfig, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return NewClientWith(&http.Client{Timeout: timeout}, cfg, log)
}

// NewClientWith builds a Client around an existing http.Client, such as
// the one returned by httptest.Server.Client.
func NewClientWith(hc *http.Client, cfg types.HTTPConfig, log zerolog.Logger) *Client {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Client{
		http:       hc,
		limiter:    limiter,
		maxRetries: maxRetries,
		userAgent:  ua,
		log:        log.With().Str("component", "httputil").Logger(),
	}
}

// Get issues a GET request for url through Do.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, req)
}

// Do waits for the limiter, sets the User-Agent, and runs the request
// through DoWithRetry.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return doWithRetry(ctx, c.http, req, c.maxRetries, c.limiter, c.log)
}

// DoWithRetry executes an HTTP request and retries on HTTP 429 (Too Many
// Requests) and 5xx with exponential backoff. The delay starts at
// RetryBaseDelay and doubles each attempt.
//
// When maxRetries is 0 the default (3) is used. On each retryable response
// the body is drained and closed before sleeping. If the context is
// cancelled during a backoff wait the function returns ctx.Err(). After
// exhausting retries the last response is returned so the caller can
// inspect it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	return doWithRetry(ctx, client, req, maxRetries, nil, zerolog.Nop())
}

func doWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int, limiter *rate.Limiter, log zerolog.Logger) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if !retryable(resp.StatusCode) {
			return resp, nil
		}

		// Exhausted retries: return the response as-is.
		if attempt >= maxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		log.Debug().
			Int("status", resp.StatusCode).
			Dur("backoff", backoff).
			Int("attempt", attempt+1).
			Int("max_retries", maxRetries).
			Str("path", req.URL.Path).
			Msg("retrying upstream request")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}
