// Package validation compiles rendered résumés to PDF and checks them against layout limits.
package validation

import "fmt"

// Error represents a general validation error
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("validation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// CompilationError represents a LaTeX compilation failure. LogOutput holds
// the compiler log (pdflatex output or the remote service's response body).
type CompilationError struct {
	Compiler  string
	Message   string
	LogOutput string
	Cause     error
}

func (e *CompilationError) Error() string {
	prefix := "LaTeX compilation error"
	if e.Compiler != "" {
		prefix = fmt.Sprintf("LaTeX compilation error (%s)", e.Compiler)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *CompilationError) Unwrap() error {
	return e.Cause
}
