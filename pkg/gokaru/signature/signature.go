// Package signature computes the short tokens that bind a thumbnail URL to its
// parameters.
//
// A token is a hash over the canonical string
//
//	{salt}/{sourceType}/{category}/{fileName}/{width}/{height}/{cast}
//
// Any party holding the salt can recompute it, which is how the thumbnail
// service and CDN rewrite rules check incoming requests.
package signature

import (
	"fmt"
	"strconv"
	"strings"
)

// Generator produces a deterministic token for a thumbnail request.
// Inputs are expected to be validated by the caller.
type Generator interface {
	Sign(sourceType, category, fileName string, width, height, cast int) string
}

// Algorithm names a hash variant.
type Algorithm string

const (
	// AlgorithmMD5 renders the MD5 digest as 32 lowercase hex characters.
	AlgorithmMD5 Algorithm = "md5"

	// AlgorithmMurmur renders MurmurHash3 x86_32 in base 32 for shorter URLs.
	AlgorithmMurmur Algorithm = "murmur"
)

// New returns the generator for alg keyed with salt.
func New(alg Algorithm, salt string) (Generator, error) {
	switch Algorithm(strings.ToLower(string(alg))) {
	case AlgorithmMD5:
		return NewMD5(salt), nil
	case AlgorithmMurmur, "":
		return NewMurmur(salt), nil
	default:
		return nil, fmt.Errorf("signature: unknown algorithm %q", alg)
	}
}

// Canonical joins the signed fields with "/" in their fixed order.
func Canonical(salt, sourceType, category, fileName string, width, height, cast int) string {
	var b strings.Builder
	b.Grow(len(salt) + len(sourceType) + len(category) + len(fileName) + 32)
	b.WriteString(salt)
	b.WriteByte('/')
	b.WriteString(sourceType)
	b.WriteByte('/')
	b.WriteString(category)
	b.WriteByte('/')
	b.WriteString(fileName)
	b.WriteByte('/')
	b.WriteString(strconv.Itoa(width))
	b.WriteByte('/')
	b.WriteString(strconv.Itoa(height))
	b.WriteByte('/')
	b.WriteString(strconv.Itoa(cast))
	return b.String()
}

// salted holds the secret shared by every variant.
type salted struct {
	salt string
}

func (s salted) canonical(sourceType, category, fileName string, width, height, cast int) string {
	return Canonical(s.salt, sourceType, category, fileName, width, height, cast)
}
