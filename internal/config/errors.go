package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrSettingNotFound indicates the setting path doesn't exist.
	ErrSettingNotFound = errors.New("setting not found")

	// ErrTypeMismatch indicates the value type doesn't match the expected type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidValue indicates a value of the right type outside its allowed range.
	ErrInvalidValue = errors.New("invalid value")

	// ErrNoPath indicates a file operation on a Config without a file.
	ErrNoPath = errors.New("no settings file configured")
)

// TypeError indicates a type mismatch when reading a setting.
type TypeError struct {
	// Path is the setting path.
	Path string
	// Expected is the expected type name.
	Expected string
	// Actual is the actual type name.
	Actual string
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	return fmt.Sprintf("setting %q: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

// Is reports whether target matches ErrTypeMismatch.
func (e *TypeError) Is(target error) bool {
	return target == ErrTypeMismatch
}
