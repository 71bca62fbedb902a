package readmesync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultUserAgent    = "go-apidocs/readmesync"
	DefaultFetchTimeout = 30 * time.Second
	// DefaultMaxBodyBytes caps a README download at 5 MB.
	DefaultMaxBodyBytes = 5 << 20
)

// ErrBodyTooLarge is returned when a response exceeds the configured size cap.
var ErrBodyTooLarge = errors.New("readmesync: response body too large")

// FetchResult is the raw response of a fetch.
type FetchResult struct {
	StatusCode int
	Body       []byte
}

// Fetcher retrieves the raw content behind a URI.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) (FetchResult, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, uri string) (FetchResult, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, uri string) (FetchResult, error) {
	return f(ctx, uri)
}

// HTTPFetcher issues plain GET requests. The response status is reported but
// never treated as an error.
type HTTPFetcher struct {
	client       *http.Client
	userAgent    string
	timeout      time.Duration
	maxBodyBytes int64
}

// FetcherOption configures an HTTPFetcher during construction.
type FetcherOption func(*HTTPFetcher)

// WithHTTPClient sets a custom HTTP client, useful for tests or proxies.
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *HTTPFetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) FetcherOption {
	return func(f *HTTPFetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithTimeout bounds each request. Zero or negative disables the bound.
func WithTimeout(timeout time.Duration) FetcherOption {
	return func(f *HTTPFetcher) {
		f.timeout = timeout
	}
}

// WithMaxBodyBytes caps the accepted response size.
func WithMaxBodyBytes(limit int64) FetcherOption {
	return func(f *HTTPFetcher) {
		if limit > 0 {
			f.maxBodyBytes = limit
		}
	}
}

// NewHTTPFetcher creates an HTTPFetcher using http.DefaultClient, a 30s
// per-request timeout and a 5 MB body cap unless overridden.
func NewHTTPFetcher(opts ...FetcherOption) *HTTPFetcher {
	f := &HTTPFetcher{
		client:       http.DefaultClient,
		userAgent:    DefaultUserAgent,
		timeout:      DefaultFetchTimeout,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Fetch downloads uri and returns its body together with the status code.
func (f *HTTPFetcher) Fetch(ctx context.Context, uri string) (FetchResult, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, http.NoBody)
	if err != nil {
		return FetchResult{}, fmt.Errorf("readmesync: build request for %s: %w", uri, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/plain, text/markdown, */*")

	resp, err := f.client.Do(req)
	if err != nil {
		return FetchResult{}, fmt.Errorf("readmesync: fetch %s: %w", uri, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes+1))
	if err != nil {
		return FetchResult{}, fmt.Errorf("readmesync: read %s: %w", uri, err)
	}
	if int64(len(body)) > f.maxBodyBytes {
		return FetchResult{}, fmt.Errorf("%w: %s exceeds %d bytes", ErrBodyTooLarge, uri, f.maxBodyBytes)
	}

	return FetchResult{StatusCode: resp.StatusCode, Body: body}, nil
}
