// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-variants/internal/merge"
	"github.com/jonathan/resume-variants/internal/types"
	"github.com/jonathan/resume-variants/internal/validation"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow caps long lists unless the printer is verbose
	maxItemsToShow = 15
)

// Printer handles formatted output for the CLI
type Printer struct {
	out     io.Writer
	verbose bool
}

// NewPrinter creates a new Printer that writes to the given writer. A
// verbose printer lists every item instead of the first few.
func NewPrinter(out io.Writer, verbose bool) *Printer {
	return &Printer{out: out, verbose: verbose}
}

// truncate shortens s to width runes, marking the cut with "..."
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	return string(r[:width-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(title, inner), inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad right-pads s with spaces to width runes; %-*s counts bytes
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func (p *Printer) limit(n int) int {
	if p.verbose {
		return n
	}
	return min(n, maxItemsToShow)
}

// PrintMatch outputs relevance results sorted by descending score, then the
// model's summary
func (p *Printer) PrintMatch(resp *types.MatchResponse) {
	if resp == nil {
		return
	}

	results := append([]types.MatchResult(nil), resp.Results...)
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})

	var sb strings.Builder
	enabled := 0
	for _, r := range results {
		if r.SuggestedEnabled {
			enabled++
		}
	}
	sb.WriteString(fmt.Sprintf("Scored %d items, %d suggested\n\n", len(results), enabled))

	count := p.limit(len(results))
	for i := 0; i < count; i++ {
		r := results[i]
		mark := "✗"
		if r.SuggestedEnabled {
			mark = "✓"
		}
		sb.WriteString(fmt.Sprintf("%s %.2f  %s\n", mark, r.RelevanceScore, r.EntityID))
		if r.Reason != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", r.Reason))
		}
	}
	if len(results) > count {
		sb.WriteString(fmt.Sprintf("... and %d more (use --verbose)\n", len(results)-count))
	}

	if resp.Summary != "" {
		sb.WriteString("\n")
		sb.WriteString(resp.Summary)
		sb.WriteString("\n")
	}
	if resp.TokensUsed > 0 {
		sb.WriteString(fmt.Sprintf("(%d tokens)\n", resp.TokensUsed))
	}

	p.printBox("RELEVANCE MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReport outputs the page count and violations of one rendered résumé.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintReport(name string, report *validation.Report) {
	if report == nil {
		return
	}
	title := "VALIDATION: " + name
	if len(report.Violations) == 0 {
		border := strings.Repeat("─", boxWidth-2)
		fmt.Fprintf(p.out, "┌%s┐\n", border)
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(fmt.Sprintf("✅ %s: %d page(s), no violations", name, report.PageCount), boxWidth-4), boxWidth-4))
		fmt.Fprintf(p.out, "└%s┘\n", border)
		return
	}

	var sb strings.Builder
	if report.PageCount > 0 {
		sb.WriteString(fmt.Sprintf("Pages: %d\n", report.PageCount))
	}
	sb.WriteString(fmt.Sprintf("Found %d violations:\n\n", len(report.Violations)))
	for i, v := range report.Violations {
		sb.WriteString(fmt.Sprintf("⚠ %s (%s)", v.Type, v.Severity))
		if v.LineNumber > 0 {
			sb.WriteString(fmt.Sprintf(" line %d", v.LineNumber))
		}
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("  %s\n", v.Details))
		if i < len(report.Violations)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDrift outputs the stale overrides of one variant
func (p *Printer) PrintDrift(variantID string, drift []merge.Drift) {
	if len(drift) == 0 {
		return
	}
	var sb strings.Builder
	for _, d := range drift {
		sb.WriteString(fmt.Sprintf("%s[%s]: %s\n", d.Field, d.EntityID, d.Message))
	}
	p.printBox("STALE OVERRIDES: "+variantID, strings.TrimSuffix(sb.String(), "\n"))
}
