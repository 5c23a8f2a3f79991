// Package memory is an in-process transport that keeps uploaded objects in a
// map keyed by URL. It backs tests and dry runs.
package memory

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
)

// ErrNotFound is returned when deleting a URL that was never stored.
var ErrNotFound = errors.New("memory: object not found")

// Operation is one recorded call.
type Operation struct {
	Method string
	URL    string
	Size   int64
}

// Transport stores objects in memory.
type Transport struct {
	mu      sync.RWMutex
	objects map[string][]byte
	ops     []Operation

	// FailWith, when set, is returned by every call instead of performing it.
	FailWith error

	// IgnoreMissing makes Delete of an unknown URL succeed, as object stores do.
	IgnoreMissing bool
}

// New creates an empty Transport.
func New() *Transport {
	return &Transport{
		objects: make(map[string][]byte),
	}
}

// Put reads body fully and stores it under url.
func (t *Transport) Put(ctx context.Context, url string, body io.Reader, size int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ops = append(t.ops, Operation{Method: "PUT", URL: url, Size: size})
	if t.FailWith != nil {
		return t.FailWith
	}

	var buf bytes.Buffer
	if body != nil {
		if _, err := io.Copy(&buf, body); err != nil {
			return fmt.Errorf("failed to read body: %w", err)
		}
	}
	t.objects[url] = buf.Bytes()
	return nil
}

// Delete removes url.
func (t *Transport) Delete(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ops = append(t.ops, Operation{Method: "DELETE", URL: url, Size: -1})
	if t.FailWith != nil {
		return t.FailWith
	}

	if _, ok := t.objects[url]; !ok && !t.IgnoreMissing {
		return ErrNotFound
	}
	delete(t.objects, url)
	return nil
}

// Get returns a copy of the object stored under url.
func (t *Transport) Get(url string) ([]byte, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	data, ok := t.objects[url]
	if !ok {
		return nil, false
	}
	return bytes.Clone(data), true
}

// URLs returns the stored URLs in sorted order.
func (t *Transport) URLs() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	urls := make([]string, 0, len(t.objects))
	for u := range t.objects {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls
}

// Operations returns every recorded call in order.
func (t *Transport) Operations() []Operation {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]Operation(nil), t.ops...)
}
