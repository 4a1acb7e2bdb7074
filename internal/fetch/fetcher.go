// Package fetch is the outbound HTTP edge of the service. It retrieves the
// target page and reports the outcome without interpreting it; all gating
// and error mapping happens in the conversion pipeline.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout is the default limit for a full target fetch, including
// reading the body. The pipeline sets no deadline of its own; it only
// interprets the abort this client raises.
const DefaultTimeout = 30 * time.Second

// Response is the descriptor of a completed round trip to the target.
// Body holds the full decoded bytes (net/http transparently reverses
// Content-Encoding such as gzip before they land here).
type Response struct {
	StatusCode int
	Status     string // full status line, e.g. "404 Not Found"
	Header     http.Header
	Body       []byte
}

// OK reports whether the upstream status is in the 2xx range.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ContentType returns the Content-Type header, or "" when absent.
func (r *Response) ContentType() string {
	return r.Header.Get("Content-Type")
}

// StatusText returns the reason phrase of the upstream status line
// ("Not Found" for "404 Not Found"), falling back to the standard text
// when the upstream sent a bare or nonstandard line.
func (r *Response) StatusText() string {
	text := strings.TrimSpace(strings.TrimPrefix(r.Status, strconv.Itoa(r.StatusCode)))
	if text == "" {
		return http.StatusText(r.StatusCode)
	}
	return text
}

// Fetcher retrieves a remote resource. Implementations signal timeouts and
// cancellations with errors recognized by IsTimeout; any other error is a
// generic transport failure.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*Response, error)
}

// Client implements Fetcher on net/http.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a fetcher whose whole round trip (dial through body
// read) must finish within timeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch performs a GET against rawURL with no custom headers and no body,
// and reads the response in full.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }() // Error ignored: response consumed

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// IsTimeout reports whether err is an abort condition: a context deadline
// or cancellation, or a network error that timed out. Both suspension
// points of the pipeline (fetch and conversion) use this classifier.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
