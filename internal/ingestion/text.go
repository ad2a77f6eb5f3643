// Package ingestion normalizes job description text pasted, read from files
// or extracted from web pages before it is stored on a variant.
package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jonathan/resume-variants/internal/fetch"
)

var (
	spaceRun     = regexp.MustCompile(`[ \t\p{Zs}]+`)
	blankLineRun = regexp.MustCompile(`\n\n\n+`)
)

// bulletMarkers are rewritten to "- " so every list reads the same to the matcher
var bulletMarkers = []string{"• ", "· ", "▪ ", "◦ ", "– "}

// CleanText normalizes line endings, collapses runs of spaces, unifies
// bullet markers and keeps at most one blank line between paragraphs.
// Markdown headings and list indentation survive.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := strings.Join(lines, "\n")
	result = blankLineRun.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving structure
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	indent := len(line) - len(trimmed)
	for _, marker := range bulletMarkers {
		if strings.HasPrefix(trimmed, marker) {
			trimmed = "- " + strings.TrimPrefix(trimmed, marker)
			break
		}
	}
	if isBulletLine(trimmed) {
		trimmed = trimmed[:2] + spaceRun.ReplaceAllString(strings.TrimSpace(trimmed[2:]), " ")
	} else {
		trimmed = spaceRun.ReplaceAllString(trimmed, " ")
	}
	return strings.Repeat(" ", indent) + trimmed
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ")
}

// ReadJobDescription reads a text file and returns its cleaned contents
func ReadJobDescription(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	text := string(content)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		// a posting saved from the browser
		if text, err = fetch.ExtractMainText(text, fetch.JobPostingSelectors()); err != nil {
			return "", err
		}
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", fmt.Errorf("job description file %s is empty", path)
	}
	return cleaned, nil
}
