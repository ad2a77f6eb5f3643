package validation

import (
	"context"
	"errors"
	"fmt"
)

// Violation types
const (
	ViolationLineTooLong  = "line_too_long"
	ViolationPageOverflow = "page_overflow"
	ViolationLaTeXError   = "latex_error"
)

// Severities
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Violation represents a single validation failure
type Violation struct {
	Type       string `json:"type"`
	Severity   string `json:"severity"`
	Details    string `json:"details"`
	LineNumber int    `json:"line_number,omitempty"`
	CharCount  int    `json:"char_count,omitempty"`
}

// Limits are the layout constraints a rendered résumé is checked against.
// Zero disables a check.
type Limits struct {
	MaxPages        int `json:"max_pages" yaml:"max_pages" validate:"gte=0"`
	MaxCharsPerLine int `json:"max_chars_per_line" yaml:"max_chars_per_line" validate:"gte=0"`
}

// Report is the outcome of Check
type Report struct {
	PDF        []byte      `json:"-"`
	PageCount  int         `json:"page_count"`
	Violations []Violation `json:"violations"`
}

// HasErrors reports whether any violation is an error rather than a warning
func (r *Report) HasErrors() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Check validates LaTeX source: line lengths first, then compilation with
// compiler and the page count of the result. A failed compilation is
// reported as a violation, not an error; only context cancellation and
// internal failures return an error.
func Check(ctx context.Context, tex string, compiler Compiler, limits Limits) (*Report, error) {
	report := &Report{Violations: []Violation{}}

	lineViolations, err := ValidateLineLengths(tex, limits.MaxCharsPerLine)
	if err != nil {
		return nil, fmt.Errorf("failed to validate line lengths: %w", err)
	}
	report.Violations = append(report.Violations, lineViolations...)

	if compiler == nil {
		return report, nil
	}

	pdf, err := compiler.Compile(ctx, tex)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var compErr *CompilationError
		if !errors.As(err, &compErr) {
			return nil, fmt.Errorf("failed to compile LaTeX: %w", err)
		}
		report.Violations = append(report.Violations, Violation{
			Type:     ViolationLaTeXError,
			Severity: SeverityError,
			Details:  fmt.Sprintf("LaTeX compilation failed: %s", compErr.Message),
		})
		if pdf == nil {
			return report, nil
		}
	}
	report.PDF = pdf

	pageCount, err := CountPDFPages(pdf)
	if err != nil {
		report.Violations = append(report.Violations, Violation{
			Type:     ViolationPageOverflow,
			Severity: SeverityWarning,
			Details:  fmt.Sprintf("Could not determine page count: %v", err),
		})
		return report, nil
	}
	report.PageCount = pageCount
	if limits.MaxPages > 0 && pageCount > limits.MaxPages {
		report.Violations = append(report.Violations, Violation{
			Type:     ViolationPageOverflow,
			Severity: SeverityError,
			Details:  fmt.Sprintf("Resume has %d pages, maximum allowed is %d", pageCount, limits.MaxPages),
		})
	}
	return report, nil
}
