package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration loading.
var (
	// ErrTypeMismatch indicates a value has an unsupported type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidSelectionMode indicates an unrecognized selection mode name.
	ErrInvalidSelectionMode = errors.New("invalid selection mode")

	// ErrInvalidKeymap indicates a malformed keymap entry.
	ErrInvalidKeymap = errors.New("invalid keymap entry")
)

// ParseError represents an error while loading a configuration source.
type ParseError struct {
	// Path is the file that failed to load, if known.
	Path string

	// Field is the offending option, if known.
	Field string

	// Err is the underlying error.
	Err error
}

// Error returns a human-readable description.
func (e *ParseError) Error() string {
	switch {
	case e.Path != "" && e.Field != "":
		return fmt.Sprintf("config %s: field %s: %v", e.Path, e.Field, e.Err)
	case e.Path != "":
		return fmt.Sprintf("config %s: %v", e.Path, e.Err)
	case e.Field != "":
		return fmt.Sprintf("config field %s: %v", e.Field, e.Err)
	default:
		return fmt.Sprintf("config: %v", e.Err)
	}
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *ParseError) Unwrap() error {
	return e.Err
}
