package validation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLineLengths_NoViolations(t *testing.T) {
	content := `\documentclass{article}
\begin{document}
Short line
Another short line
\end{document}`

	violations, err := ValidateLineLengths(content, 90)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestValidateLineLengths_WithViolations(t *testing.T) {
	content := fmt.Sprintf(`\documentclass{article}
\begin{document}
%s
Short line
\end{document}`, strings.Repeat("a", 100))

	violations, err := ValidateLineLengths(content, 90)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, ViolationLineTooLong, violations[0].Type)
	assert.Equal(t, SeverityWarning, violations[0].Severity)
	assert.Equal(t, 3, violations[0].LineNumber)
	assert.Equal(t, 100, violations[0].CharCount)
}

func TestValidateLineLengths_SkipsComments(t *testing.T) {
	content := "% " + strings.Repeat("a", 100) + "\n" +
		"short % " + strings.Repeat("b", 100)

	violations, err := ValidateLineLengths(content, 20)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestValidateLineLengths_Disabled(t *testing.T) {
	violations, err := ValidateLineLengths(strings.Repeat("a", 500), 0)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestCountContentChars(t *testing.T) {
	tests := []struct {
		name string
		line string
		want int
	}{
		{"plain", "hello", 5},
		{"command argument kept", `\textbf{bold}`, 4},
		{"bare commands dropped", `a \hfill b \\`, 4},
		{"escaped percent counted", `40\% faster`, 11},
		{"experience header", `\textbf{Acme: Eng} \hfill 2020 -- 2021 \\`, len("Acme: Eng  2020 -- 2021")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, countContentChars(tt.line))
		})
	}
}
