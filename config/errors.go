package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations
var (
	// ErrInvalid wraps every validation failure
	ErrInvalid = errors.New("invalid configuration")

	// ErrFileNotFound indicates an explicitly named config file doesn't exist
	ErrFileNotFound = errors.New("config file not found")

	// ErrUnknownFormat indicates a config file extension with no decoder
	ErrUnknownFormat = errors.New("unknown config format")
)

// ParseError represents an error while parsing a configuration file
type ParseError struct {
	Path    string
	Line    int // 0 when unknown
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError describes one rejected setting
type ValidationError struct {
	Key     string
	Message string
	Value   any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Key, e.Message, e.Value)
}

// Is matches ErrInvalid
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}
