// Package fetch implements the Fetcher interface.
// It performs HTTP GET requests with a fixed identifying header.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gaurav-prasanna/blurbpipe/core"
	"github.com/go-resty/resty/v2"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "blurbpipe/1.0 (https://github.com/gaurav-prasanna/blurbpipe)"
)

// ErrUnexpectedStatus is wrapped by every non-200 response.
var ErrUnexpectedStatus = errors.New("unexpected status")

// StatusError reports a response whose status was not 200 OK.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v %d for %s", ErrUnexpectedStatus, e.StatusCode, e.URL)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// Options configures an HTTPFetcher.
type Options struct {
	UserAgent string
	Timeout   time.Duration
}

// HTTPFetcher fetches web pages via HTTP.
type HTTPFetcher struct {
	client *resty.Client
}

// New creates an HTTPFetcher. Zero-valued options fall back to defaults.
func New(opts Options) *HTTPFetcher {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	client := resty.New().
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", opts.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml")

	return &HTTPFetcher{client: client}
}

// Fetch retrieves the HTML content of the given URL. Any status other
// than 200 is returned as a *StatusError alongside the partial result.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	res, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}

	result := &core.FetchResult{
		URL:        url,
		StatusCode: res.StatusCode(),
		HTML:       string(res.Body()),
	}
	if res.StatusCode() != http.StatusOK {
		return result, &StatusError{URL: url, StatusCode: res.StatusCode()}
	}
	return result, nil
}

// StatusCode returns the HTTP status carried by err, or 0 when err is
// not a status error.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}
