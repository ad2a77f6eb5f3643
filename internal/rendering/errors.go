package rendering

import "fmt"

// TemplateError represents an error reading, parsing or executing a LaTeX template.
// Path is empty for the built-in template.
type TemplateError struct {
	Path    string
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("template error: %s", msg)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a rendering failure outside the template itself
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
