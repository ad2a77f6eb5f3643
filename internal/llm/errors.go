package llm

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned when no API key was configured
var ErrMissingAPIKey = errors.New("API key is required")

// Error represents a failure talking to the model provider
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("llm error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("llm error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ParseError is returned when a model response cannot be decoded
type ParseError struct {
	Message  string
	Response string
	Cause    error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("llm parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("llm parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
