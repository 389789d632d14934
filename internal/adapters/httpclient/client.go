// Package httpclient provides the HTTP client shared by the external source adapters.
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"github.com/cenkalti/backoff/v5"
	"go.trai.ch/zerr"
)

const (
	// DefaultTimeout is the default timeout for HTTP requests.
	DefaultTimeout = domain.DefaultRequestTimeout

	// MaxResponseSize is the maximum allowed response size (1 MiB).
	MaxResponseSize = 1 << 20
)

// HTTPError describes a response with an unexpected status.
type HTTPError struct {
	StatusCode int
	URL        string
	Status     string
}

// NewHTTPError creates an HTTPError.
func NewHTTPError(statusCode int, url, status string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, URL: url, Status: status}
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d for %s: %s", e.StatusCode, e.URL, e.Status)
}

// IsRateLimited reports whether err is an HTTP 429 response.
func IsRateLimited(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusTooManyRequests
}

// Client performs bounded GET requests.
type Client struct {
	client    *http.Client
	userAgent string
}

// New creates a Client. A zero timeout uses DefaultTimeout.
func New(timeout time.Duration, userAgent string) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// WithTransport replaces the round tripper, mainly for tests.
func (c *Client) WithTransport(rt http.RoundTripper) *Client {
	c.client.Transport = rt
	return c
}

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.client.Timeout
}

// Get performs a single GET request and returns the body of a 200 response.
func (c *Client) Get(ctx context.Context, url, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrNetworkFailure.Error())
	}
	req.Header.Set("User-Agent", c.userAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrNetworkFailure.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, zerr.Wrap(NewHTTPError(resp.StatusCode, url, resp.Status), domain.ErrRateLimited.Error())
	case resp.StatusCode != http.StatusOK:
		return nil, zerr.Wrap(NewHTTPError(resp.StatusCode, url, resp.Status), domain.ErrUnexpectedStatus.Error())
	}

	if resp.ContentLength > MaxResponseSize {
		return nil, zerr.With(domain.ErrMalformedPayload, "size", resp.ContentLength)
	}

	// +1 to detect if limit exceeded
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrNetworkFailure.Error())
	}
	if len(body) > MaxResponseSize {
		return nil, zerr.With(domain.ErrMalformedPayload, "size", len(body))
	}
	return body, nil
}

// GetWithRetry behaves like Get, but after a 429 response it pauses and tries once more.
func (c *Client) GetWithRetry(ctx context.Context, url, accept string, pause time.Duration) ([]byte, error) {
	return backoff.Retry(ctx, func() ([]byte, error) {
		body, err := c.Get(ctx, url, accept)
		if err != nil && !IsRateLimited(err) {
			return nil, backoff.Permanent(err)
		}
		return body, err
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(pause)),
		backoff.WithMaxTries(2),
		backoff.WithMaxElapsedTime(0),
	)
}
