// Package errors defines the error kinds shared by the lookup pipeline.
//
// Every error returned by the registry, the corpus stores and the passage
// locator matches exactly one sentinel with errors.Is, which is how the HTTP
// and WebSocket layers pick a status code.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: the passage identifier is valid but the corpus has no
	// text for it.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput: a passage identifier, book code or citation is
	// malformed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnavailable: a corpus document or remote passage could not be read.
	ErrUnavailable = errors.New("unavailable")
	// ErrUnsupported: the caller asked for a source that is not registered.
	ErrUnsupported = errors.New("unsupported")
)

// NotFoundError names the missing verse, chapter or book.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ValidationError reports malformed input. It matches ErrInvalidInput and,
// when set, the decoding error behind it.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidInput}
	}
	return []error{ErrInvalidInput, e.Err}
}

// LoadError reports that a corpus document or remote passage could not be
// fetched or decoded. It always matches ErrUnavailable.
type LoadError struct {
	Resource string // "books index", "book", "passage"
	Path     string // file, URL or key
	Upstream bool   // the remote API answered badly or not at all
	Err      error
}

func (e *LoadError) Error() string {
	msg := "failed to load " + e.Resource
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool { return target == ErrUnavailable }

// UnsupportedError names an unknown source or option, e.g.
// "unsupported source: ftp".
type UnsupportedError struct {
	Kind string
	Name string
}

func (e *UnsupportedError) Error() string {
	if e.Name == "" {
		return "unsupported " + e.Kind
	}
	return fmt.Sprintf("unsupported %s: %s", e.Kind, e.Name)
}

func (e *UnsupportedError) Unwrap() error { return ErrUnsupported }

func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// NewLoad reports a local corpus failure.
func NewLoad(resource, path string, err error) *LoadError {
	return &LoadError{Resource: resource, Path: path, Err: err}
}

// NewUpstream reports a remote failure.
func NewUpstream(resource, path string, err error) *LoadError {
	return &LoadError{Resource: resource, Path: path, Upstream: true, Err: err}
}

func NewUnsupported(kind, name string) *UnsupportedError {
	return &UnsupportedError{Kind: kind, Name: name}
}

// IsUpstream reports whether err carries a LoadError from a remote service.
func IsUpstream(err error) bool {
	var le *LoadError
	return errors.As(err, &le) && le.Upstream
}
