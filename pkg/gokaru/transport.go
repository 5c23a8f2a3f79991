package gokaru

import (
	"context"
	"io"
)

// Transport moves origin files to and from the storage service.
//
// Put must send body to url with write semantics and report non-2xx
// responses as errors. size is the body length, or -1 when unknown.
type Transport interface {
	Put(ctx context.Context, url string, body io.Reader, size int64) error
	Delete(ctx context.Context, url string) error
}
