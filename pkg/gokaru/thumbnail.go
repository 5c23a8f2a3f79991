package gokaru

import (
	"strconv"
	"strings"

	"github.com/tendant/gokaru-go/pkg/gokaru/signature"
)

// ThumbnailParams is the mutable part of a thumbnail request.
type ThumbnailParams struct {
	Category  string
	Filename  string
	Extension string
	Width     int
	Height    int
	Cast      Cast
}

// FullFilename returns filename.extension.
func (p ThumbnailParams) FullFilename() string {
	return p.Filename + "." + p.Extension
}

// ThumbnailURLBuilder accumulates thumbnail parameters and renders the signed
// URL {publicURL}/{token}/{category}/{width}/{height}/{cast}/{filename}.{extension}.
//
// Setters validate their argument immediately. The first invalid call is kept
// as the builder's error and leaves the state unchanged; Build reports it.
// A builder is not safe for concurrent use.
type ThumbnailURLBuilder struct {
	publicURL  string
	sourceType SourceType
	generator  signature.Generator

	params ThumbnailParams
	err    error
}

// NewThumbnailURLBuilder creates a builder rooted at publicURL. Trailing
// slashes are trimmed.
func NewThumbnailURLBuilder(publicURL string, sourceType SourceType, gen signature.Generator) (*ThumbnailURLBuilder, error) {
	publicURL = strings.TrimRight(publicURL, "/")
	if publicURL == "" {
		return nil, emptyArgument("public url")
	}
	if err := ValidateSourceType(sourceType); err != nil {
		return nil, err
	}
	if gen == nil {
		return nil, emptyArgument("signature generator")
	}
	return newThumbnailURLBuilder(publicURL, sourceType, gen), nil
}

func newThumbnailURLBuilder(publicURL string, sourceType SourceType, gen signature.Generator) *ThumbnailURLBuilder {
	return &ThumbnailURLBuilder{
		publicURL:  publicURL,
		sourceType: sourceType,
		generator:  gen,
	}
}

// Width sets the target width. Zero leaves the dimension to the service.
func (b *ThumbnailURLBuilder) Width(v int) *ThumbnailURLBuilder {
	if v < 0 {
		return b.fail(negativeArgument("width"))
	}
	b.params.Width = v
	return b
}

// Height sets the target height. Zero leaves the dimension to the service.
func (b *ThumbnailURLBuilder) Height(v int) *ThumbnailURLBuilder {
	if v < 0 {
		return b.fail(negativeArgument("height"))
	}
	b.params.Height = v
	return b
}

// Cast adds flag to the accumulated cast. Cast(0) clears every flag.
func (b *ThumbnailURLBuilder) Cast(flag Cast) *ThumbnailURLBuilder {
	switch {
	case flag == 0:
		b.params.Cast = 0
	case flag < 0:
		return b.fail(negativeArgument("cast"))
	default:
		b.params.Cast |= flag
	}
	return b
}

func (b *ThumbnailURLBuilder) Category(s string) *ThumbnailURLBuilder {
	if s == "" {
		return b.fail(emptyArgument("category"))
	}
	b.params.Category = s
	return b
}

func (b *ThumbnailURLBuilder) Filename(s string) *ThumbnailURLBuilder {
	if s == "" {
		return b.fail(emptyArgument("filename"))
	}
	b.params.Filename = s
	return b
}

func (b *ThumbnailURLBuilder) Extension(s string) *ThumbnailURLBuilder {
	if s == "" {
		return b.fail(emptyArgument("extension"))
	}
	b.params.Extension = s
	return b
}

func (b *ThumbnailURLBuilder) fail(err error) *ThumbnailURLBuilder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// Err returns the first error recorded by a setter.
func (b *ThumbnailURLBuilder) Err() error {
	return b.err
}

// ClearErr drops the recorded setter error. Rejected calls never changed the
// state, so the builder renders from the last accepted values.
func (b *ThumbnailURLBuilder) ClearErr() *ThumbnailURLBuilder {
	b.err = nil
	return b
}

// Params returns a copy of the current state.
func (b *ThumbnailURLBuilder) Params() ThumbnailParams {
	return b.params
}

// PublicURL returns the trimmed base URL.
func (b *ThumbnailURLBuilder) PublicURL() string {
	return b.publicURL
}

// SourceType returns the source type the token is computed for.
func (b *ThumbnailURLBuilder) SourceType() SourceType {
	return b.sourceType
}

// Token validates the current state and returns the signature token.
func (b *ThumbnailURLBuilder) Token() (string, error) {
	if b.err != nil {
		return "", b.err
	}
	p := b.params
	if err := validateThumbnailName(p.Category, p.Filename, p.Extension); err != nil {
		return "", err
	}
	return b.generator.Sign(string(b.sourceType), p.Category, p.FullFilename(), p.Width, p.Height, int(p.Cast)), nil
}

// Build validates the current state and renders the signed URL. It has no
// side effects and may be called repeatedly.
func (b *ThumbnailURLBuilder) Build() (string, error) {
	token, err := b.Token()
	if err != nil {
		return "", err
	}
	p := b.params
	return joinSegments(b.publicURL,
		escapeSegment(token),
		escapeSegment(p.Category),
		strconv.Itoa(p.Width),
		strconv.Itoa(p.Height),
		strconv.Itoa(int(p.Cast)),
		escapeSegment(p.FullFilename()),
	), nil
}

// String renders the URL, or "" when the builder is invalid.
func (b *ThumbnailURLBuilder) String() string {
	u, err := b.Build()
	if err != nil {
		return ""
	}
	return u
}

// ThumbnailOption seeds a builder created by Client.Thumbnail.
type ThumbnailOption func(*ThumbnailURLBuilder)

func WithWidth(v int) ThumbnailOption {
	return func(b *ThumbnailURLBuilder) { b.Width(v) }
}

func WithHeight(v int) ThumbnailOption {
	return func(b *ThumbnailURLBuilder) { b.Height(v) }
}

// WithSize sets width and height.
func WithSize(width, height int) ThumbnailOption {
	return func(b *ThumbnailURLBuilder) { b.Width(width).Height(height) }
}

func WithCast(flag Cast) ThumbnailOption {
	return func(b *ThumbnailURLBuilder) { b.Cast(flag) }
}

func WithCategory(s string) ThumbnailOption {
	return func(b *ThumbnailURLBuilder) { b.Category(s) }
}

func WithFilename(s string) ThumbnailOption {
	return func(b *ThumbnailURLBuilder) { b.Filename(s) }
}

func WithExtension(s string) ThumbnailOption {
	return func(b *ThumbnailURLBuilder) { b.Extension(s) }
}
