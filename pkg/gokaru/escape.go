package gokaru

import (
	"net/url"
	"strings"
)

// escapeSegment percent-encodes one path segment with the form-encoding table
// the storage service decodes: A-Z a-z 0-9 - _ . stay literal, space becomes
// "+", anything else is %XX.
func escapeSegment(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "~", "%7E")
}

func unescapeSegment(s string) (string, error) {
	return url.QueryUnescape(s)
}

func joinSegments(base string, segments ...string) string {
	var b strings.Builder
	b.WriteString(base)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(s)
	}
	return b.String()
}
