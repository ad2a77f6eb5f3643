// Package matching scores résumé entries and bullets against a job description with an LLM.
package matching

import (
	"errors"
	"fmt"
)

// ErrEmptyJobDescription is returned when there is nothing to match against
var ErrEmptyJobDescription = errors.New("job description is empty")

// Error represents a failed matching pass
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("matching error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("matching error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
