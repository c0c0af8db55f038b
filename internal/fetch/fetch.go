package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 10 * time.Second

var (
	// ErrTransport matches every *TransportError.
	ErrTransport = errors.New("transport failure")
	// ErrNoUserAgent is returned before any network call when the request
	// carries no User-Agent; the source rejects anonymous agents.
	ErrNoUserAgent = errors.New("request has no User-Agent header")
)

// Request describes the single GET the fetcher performs.
type Request struct {
	URL     string
	Headers map[string]string
}

// Header returns the value of the named header, matched case-insensitively.
func (r Request) Header(name string) string {
	for k, v := range r.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// TransportError reports a network, timeout or non-2xx failure.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

type Fetcher interface {
	Fetch(ctx context.Context, req Request) ([]byte, error)
}

// Client is a Fetcher backed by resty. It never retries and never caches.
type Client struct {
	http *resty.Client
}

type Option func(*Client)

// WithTimeout bounds every request. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.SetTimeout(d)
		}
	}
}

func New(opts ...Option) *Client {
	c := &Client{http: resty.New().SetTimeout(defaultTimeout)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Fetch(ctx context.Context, req Request) ([]byte, error) {
	if strings.TrimSpace(req.Header("User-Agent")) == "" {
		return nil, ErrNoUserAgent
	}

	start := time.Now()
	res, err := c.http.R().
		SetContext(ctx).
		SetHeaders(req.Headers).
		Get(req.URL)
	if err != nil {
		return nil, &TransportError{URL: req.URL, Err: err}
	}

	slog.DebugContext(ctx, "fetched source",
		"url", req.URL,
		"status", res.StatusCode(),
		"bytes", len(res.Body()),
		"elapsed", time.Since(start),
	)

	if code := res.StatusCode(); code < 200 || code > 299 {
		return nil, &TransportError{URL: req.URL, StatusCode: code}
	}
	return res.Body(), nil
}
