// Package storage reads and writes the portable JSON export of a workspace.
package storage

import (
	"fmt"
	"strings"
)

// LoadError is returned when an export cannot be read or decoded
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	where := e.Path
	if where == "" {
		where = "(input)"
	}
	if e.Cause != nil {
		return fmt.Sprintf("storage error for %s: %s: %v", where, e.Message, e.Cause)
	}
	return fmt.Sprintf("storage error for %s: %s", where, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// FieldError is a single schema violation
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every schema violation found in an export
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}
