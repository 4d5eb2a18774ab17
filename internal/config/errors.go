package config

import (
	"errors"
	"fmt"
)

// ErrConfiguration marks a user error in the run configuration. Runs that
// fail with it abort cleanly before any field is allocated.
var ErrConfiguration = errors.New("configuration error")

// Error describes one invalid configuration value.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrConfiguration.
func (e *Error) Unwrap() error {
	return ErrConfiguration
}

func invalid(field, format string, args ...any) error {
	return &Error{Field: field, Reason: fmt.Sprintf(format, args...)}
}
