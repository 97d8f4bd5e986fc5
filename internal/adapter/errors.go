package adapter

import "errors"

var (
	// ErrNotFound is returned when a file or directory does not exist.
	ErrNotFound = errors.New("storage: not found")
	// ErrIO wraps any other backend failure.
	ErrIO = errors.New("storage: i/o error")
	// ErrInvalidPath is returned for absolute paths, empty segments and
	// "." or ".." segments.
	ErrInvalidPath = errors.New("storage: invalid path")
	// ErrIntegrity is returned when a payload digest does not match.
	ErrIntegrity = errors.New("storage: payload integrity check failed")
	// ErrUnknownKind is returned by Open for an unsupported storage kind.
	ErrUnknownKind = errors.New("storage: unknown kind")
)
