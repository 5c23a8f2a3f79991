package gokaru

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/tendant/gokaru-go/pkg/gokaru/signature"
	"github.com/tendant/gokaru-go/pkg/gokaru/transport/httptransport"
)

// Client addresses files on a Gokaru storage service.
//
// Upload and Delete talk to the origin API at OriginURL. Thumbnails and public
// files are served from a per source type public URL which defaults to
// {OriginURL}/{type}.
//
// Configuration setters are not synchronized. Configure the Client before
// sharing it between goroutines, or serialize changes yourself.
type Client struct {
	originURL  string
	generator  signature.Generator
	publicURLs map[SourceType]string

	transport        Transport
	defaultTransport Transport
	transportOnce    sync.Once

	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client) error

// WithTransport replaces the default HTTP transport. nil keeps the default.
func WithTransport(t Transport) Option {
	return func(c *Client) error {
		c.transport = t
		return nil
	}
}

// WithLogger sets the logger used for transfer operations.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		if logger != nil {
			c.logger = logger
		}
		return nil
	}
}

// WithPublicURL overrides the public base URL for a source type.
func WithPublicURL(t SourceType, url string) Option {
	return func(c *Client) error {
		return c.SetPublicURL(t, url)
	}
}

// New creates a Client for the origin API at originURL.
func New(originURL string, gen signature.Generator, opts ...Option) (*Client, error) {
	c := &Client{
		publicURLs: make(map[SourceType]string),
		logger:     slog.Default(),
	}
	if err := c.SetOriginURL(originURL); err != nil {
		return nil, err
	}
	if err := c.SetSignature(gen); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// OriginURL returns the origin API base URL without a trailing slash.
func (c *Client) OriginURL() string {
	return c.originURL
}

// SetOriginURL replaces the origin API base URL.
func (c *Client) SetOriginURL(url string) error {
	url = strings.TrimRight(url, "/")
	if url == "" {
		return emptyArgument("url")
	}
	c.originURL = url
	return nil
}

// Signature returns the active signature generator.
func (c *Client) Signature() signature.Generator {
	return c.generator
}

// SetSignature replaces the signature generator. Builders created earlier keep
// the generator they were created with.
func (c *Client) SetSignature(gen signature.Generator) error {
	if gen == nil {
		return emptyArgument("signature generator")
	}
	c.generator = gen
	return nil
}

// SetTransport replaces the transport used by Upload and Delete. nil restores
// the default HTTP transport.
func (c *Client) SetTransport(t Transport) {
	c.transport = t
}

// SetPublicURL overrides the public base URL for t. An empty url removes the
// override.
func (c *Client) SetPublicURL(t SourceType, url string) error {
	if err := ValidateSourceType(t); err != nil {
		return err
	}
	url = strings.TrimRight(url, "/")
	if url == "" {
		delete(c.publicURLs, t)
		return nil
	}
	c.publicURLs[t] = url
	return nil
}

// PublicURL returns the public base URL for t.
func (c *Client) PublicURL(t SourceType) (string, error) {
	if err := ValidateSourceType(t); err != nil {
		return "", err
	}
	return c.publicURL(t), nil
}

func (c *Client) publicURL(t SourceType) string {
	if u, ok := c.publicURLs[t]; ok {
		return u
	}
	return c.originURL + "/" + string(t)
}

// Origin returns the origin API URL {origin}/{type}/{category}/{filename}.
func (c *Client) Origin(t SourceType, category, filename string) (string, error) {
	if err := validateCredentials(t, category, filename); err != nil {
		return "", err
	}
	return joinSegments(c.originURL, escapeSegment(string(t)), escapeSegment(category), escapeSegment(filename)), nil
}

// File returns the public URL of a stored file: {public(file)}/{category}/{filename}.
func (c *Client) File(category, filename string) (string, error) {
	if err := validateCredentials(SourceTypeFile, category, filename); err != nil {
		return "", err
	}
	return joinSegments(c.publicURL(SourceTypeFile), escapeSegment(category), escapeSegment(filename)), nil
}

// Thumbnail returns a builder rooted at the public image URL and signed with
// the current generator. Options are applied through the builder setters.
func (c *Client) Thumbnail(opts ...ThumbnailOption) *ThumbnailURLBuilder {
	b := newThumbnailURLBuilder(c.publicURL(SourceTypeImage), SourceTypeImage, c.generator)
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Upload sends the local file source to the origin under (t, category,
// filename). The file is closed before Upload returns.
func (c *Client) Upload(ctx context.Context, source string, t SourceType, category, filename string) error {
	if source == "" {
		return emptyArgument("source filename")
	}
	target, err := c.Origin(t, category, filename)
	if err != nil {
		return err
	}

	f, err := os.Open(source)
	if err != nil {
		return &RuntimeError{Op: "open", Target: source, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return &RuntimeError{Op: "stat", Target: source, Err: err}
	}
	if info.IsDir() {
		return &RuntimeError{Op: "open", Target: source, Err: errors.New("is a directory")}
	}

	return c.put(ctx, target, f, info.Size())
}

// UploadReader streams r to the origin under (t, category, filename). size is
// the content length, or -1 when unknown. r is not closed.
func (c *Client) UploadReader(ctx context.Context, r io.Reader, size int64, t SourceType, category, filename string) error {
	if r == nil {
		return emptyArgument("source")
	}
	target, err := c.Origin(t, category, filename)
	if err != nil {
		return err
	}
	return c.put(ctx, target, r, size)
}

// Delete removes the origin file and its thumbnails.
func (c *Client) Delete(ctx context.Context, t SourceType, category, filename string) error {
	target, err := c.Origin(t, category, filename)
	if err != nil {
		return err
	}

	c.logger.DebugContext(ctx, "Deleting origin file", "url", target)
	if err := c.activeTransport().Delete(ctx, target); err != nil {
		c.logger.WarnContext(ctx, "Delete failed", "url", target, "err", err)
		return &RuntimeError{Op: "delete", Target: target, Err: err}
	}
	return nil
}

func (c *Client) put(ctx context.Context, target string, body io.Reader, size int64) error {
	c.logger.DebugContext(ctx, "Uploading origin file", "url", target, "size", size)
	if err := c.activeTransport().Put(ctx, target, body, size); err != nil {
		c.logger.WarnContext(ctx, "Upload failed", "url", target, "err", err)
		return &RuntimeError{Op: "upload", Target: target, Err: err}
	}
	return nil
}

// activeTransport returns the configured transport, or the default HTTP
// transport when none is set. The default is created on first use.
func (c *Client) activeTransport() Transport {
	if c.transport != nil {
		return c.transport
	}
	c.transportOnce.Do(func() {
		c.defaultTransport = httptransport.New()
	})
	return c.defaultTransport
}
