// Package httptransport sends origin files to the storage service over plain
// HTTP: PUT with a streamed body to store, DELETE to remove.
//
// Requests are attempted once. Non-2xx responses are returned as *StatusError
// so callers can tell them apart from connection failures.
package httptransport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxDrain bounds how much of a response body is read to reuse the connection.
const maxDrain = 64 << 10

// Client performs origin PUT and DELETE requests.
type Client struct {
	httpClient   *http.Client
	contentType  string
	headers      map[string]string
	progressFunc ProgressFunc
}

// ProgressFunc is called during upload with the number of bytes sent so far.
type ProgressFunc func(bytesUploaded int64)

// Option configures a Client.
type Option func(*Client)

// New creates a Client. The default HTTP client has a long timeout suited to
// large uploads.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Minute,
		},
		contentType: "application/octet-stream",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithContentType sets the Content-Type sent with uploads.
func WithContentType(contentType string) Option {
	return func(c *Client) {
		c.contentType = contentType
	}
}

// WithHeader adds a header to every request, e.g. an auth token for the origin.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		if c.headers == nil {
			c.headers = make(map[string]string)
		}
		c.headers[key] = value
	}
}

// WithProgress sets an upload progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(c *Client) {
		c.progressFunc = fn
	}
}

// StatusError is a response outside the 2xx range.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %s", e.Method, e.URL, e.Status)
}

// IsStatusError reports whether err carries a non-2xx response.
func IsStatusError(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

// Put uploads body to url. size is the content length, or -1 when unknown.
// body is not closed.
func (c *Client) Put(ctx context.Context, url string, body io.Reader, size int64) error {
	var reader io.Reader = body
	if c.progressFunc != nil {
		reader = &progressReader{reader: body, callback: c.progressFunc}
	}

	var rc io.ReadCloser
	switch {
	case body == nil || size == 0:
		rc = http.NoBody
	default:
		rc = io.NopCloser(reader)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, rc)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if size > 0 {
		req.ContentLength = size
	} else if rc != http.NoBody {
		req.ContentLength = -1
	}
	req.Header.Set("Content-Type", c.contentType)

	return c.do(req)
}

// Delete removes the resource at url.
func (c *Client) Delete(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) error {
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Redacted(), err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrain))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return &StatusError{
		Method:     req.Method,
		URL:        req.URL.Redacted(),
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
	}
}

// progressReader wraps an io.Reader to track upload progress
type progressReader struct {
	reader    io.Reader
	bytesRead int64
	callback  ProgressFunc
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.reader.Read(p)
	pr.bytesRead += int64(n)
	if pr.callback != nil && n > 0 {
		pr.callback(pr.bytesRead)
	}
	return n, err
}
