package validation

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"
)

var (
	// LaTeX command pattern matches commands like \textbf{content} or \begin{environment}
	latexCommandPattern = regexp.MustCompile(`\\([a-zA-Z]+|.)\{[^}]*\}`)
	// bare commands like \hfill or \item with no argument
	bareCommandPattern = regexp.MustCompile(`\\[a-zA-Z]+\*?`)
	// Comment pattern matches LaTeX comments (% ...) but not escaped \%
	commentPattern = regexp.MustCompile(`(^|[^\\])%.*$`)
)

// ValidateLineLengths reports source lines whose visible text exceeds maxChars.
// Lines are numbered from 1. A non-positive maxChars disables the check.
func ValidateLineLengths(tex string, maxChars int) ([]Violation, error) {
	if maxChars <= 0 {
		return nil, nil
	}

	var violations []Violation
	scanner := bufio.NewScanner(strings.NewReader(tex))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		if strings.HasPrefix(strings.TrimSpace(line), "%") {
			continue
		}

		line = commentPattern.ReplaceAllString(line, "$1")
		contentLength := countContentChars(line)
		if contentLength > maxChars {
			violations = append(violations, Violation{
				Type:       ViolationLineTooLong,
				Severity:   SeverityWarning,
				Details:    fmt.Sprintf("Line %d has %d characters, maximum is %d", lineNum, contentLength, maxChars),
				LineNumber: lineNum,
				CharCount:  contentLength,
			})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, &Error{Message: "failed to scan LaTeX source", Cause: err}
	}
	return violations, nil
}

// countContentChars approximates the visible character count of a LaTeX line
func countContentChars(line string) int {
	processed := latexCommandPattern.ReplaceAllStringFunc(line, func(match string) string {
		start := strings.Index(match, "{")
		end := strings.LastIndex(match, "}")
		if start >= 0 && end > start {
			return match[start+1 : end]
		}
		return ""
	})
	processed = bareCommandPattern.ReplaceAllString(processed, "")
	processed = strings.NewReplacer(`\\`, "", "{", "", "}", "").Replace(processed)
	return len([]rune(strings.TrimSpace(processed)))
}
