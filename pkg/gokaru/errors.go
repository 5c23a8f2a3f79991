package gokaru

import (
	"errors"
	"fmt"
)

// Error kinds. Typed errors below match these with errors.Is.
var (
	// ErrInvalidArgument indicates an empty, negative or otherwise malformed value
	ErrInvalidArgument = errors.New("gokaru: invalid argument")

	// ErrDomain indicates a value that is present but not allowed, e.g. an unknown source type
	ErrDomain = errors.New("gokaru: value out of domain")

	// ErrRuntime indicates an environmental failure: local file access or transport
	ErrRuntime = errors.New("gokaru: runtime failure")

	// ErrSignatureMismatch indicates a thumbnail token that does not match its parameters
	ErrSignatureMismatch = errors.New("gokaru: signature mismatch")
)

// ArgumentError reports the first violated validation rule.
type ArgumentError struct {
	Field  string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("gokaru: %s %s", e.Field, e.Reason)
}

func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// DomainError reports a value outside its allowed set.
type DomainError struct {
	Field string
	Value string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("gokaru: unknown %s %q", e.Field, e.Value)
}

func (e *DomainError) Is(target error) bool {
	return target == ErrDomain
}

// RuntimeError wraps a failure of the local filesystem or the transport.
type RuntimeError struct {
	Op     string
	Target string
	Err    error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("gokaru: %s %s: %v", e.Op, e.Target, e.Err)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

func (e *RuntimeError) Is(target error) bool {
	return target == ErrRuntime
}

func emptyArgument(field string) error {
	return &ArgumentError{Field: field, Reason: "should not be empty"}
}

func negativeArgument(field string) error {
	return &ArgumentError{Field: field, Reason: "should not be negative"}
}
