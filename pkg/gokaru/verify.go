package gokaru

import (
	"crypto/hmac"
	"strconv"
	"strings"

	"github.com/tendant/gokaru-go/pkg/gokaru/signature"
)

// thumbnailSegments is the number of trailing path segments in a signed
// thumbnail path.
const thumbnailSegments = 6

// ThumbnailRequest is a thumbnail path decoded back into its parts.
type ThumbnailRequest struct {
	Token string
	ThumbnailParams
}

// ParseThumbnailPath decodes the trailing
// {token}/{category}/{width}/{height}/{cast}/{filename}.{extension} segments of
// an escaped URL path. Any query string is ignored.
func ParseThumbnailPath(path string) (*ThumbnailRequest, error) {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) < thumbnailSegments {
		return nil, &ArgumentError{Field: "thumbnail path", Reason: "has too few segments"}
	}
	segments = segments[len(segments)-thumbnailSegments:]

	token, err := unescapeSegment(segments[0])
	if err != nil || token == "" {
		return nil, &ArgumentError{Field: "token", Reason: "is malformed"}
	}
	category, err := unescapeSegment(segments[1])
	if err != nil {
		return nil, &ArgumentError{Field: "category", Reason: "is malformed"}
	}
	width, err := parseDimension("width", segments[2])
	if err != nil {
		return nil, err
	}
	height, err := parseDimension("height", segments[3])
	if err != nil {
		return nil, err
	}
	cast, err := parseDimension("cast", segments[4])
	if err != nil {
		return nil, err
	}
	full, err := unescapeSegment(segments[5])
	if err != nil {
		return nil, &ArgumentError{Field: "filename", Reason: "is malformed"}
	}

	var filename, extension string
	if dot := strings.LastIndexByte(full, '.'); dot >= 0 {
		filename, extension = full[:dot], full[dot+1:]
	} else {
		filename = full
	}
	if err := validateThumbnailName(category, filename, extension); err != nil {
		return nil, err
	}

	return &ThumbnailRequest{
		Token: token,
		ThumbnailParams: ThumbnailParams{
			Category:  category,
			Filename:  filename,
			Extension: extension,
			Width:     width,
			Height:    height,
			Cast:      Cast(cast),
		},
	}, nil
}

// parseDimension accepts only the canonical decimal form the builder renders.
func parseDimension(field, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || strconv.Itoa(n) != s {
		return 0, &ArgumentError{Field: field, Reason: "is not a decimal number"}
	}
	if n < 0 {
		return 0, negativeArgument(field)
	}
	return n, nil
}

// VerifyThumbnail recomputes the token for req and compares it in constant
// time. It returns ErrSignatureMismatch when they differ.
func VerifyThumbnail(gen signature.Generator, t SourceType, req *ThumbnailRequest) error {
	if err := ValidateSourceType(t); err != nil {
		return err
	}
	if gen == nil {
		return emptyArgument("signature generator")
	}
	expected := gen.Sign(string(t), req.Category, req.FullFilename(), req.Width, req.Height, int(req.Cast))
	if !hmac.Equal([]byte(expected), []byte(req.Token)) {
		return ErrSignatureMismatch
	}
	return nil
}
