package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText_PreserveMarkdownHeadings(t *testing.T) {
	input := "# Title\n   ## Subtitle\nContent here"
	result := CleanText(input)

	assert.Equal(t, "# Title\n## Subtitle\nContent here", result)
}

func TestCleanText_BulletLists(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"dash", "- Item 1", "- Item 1"},
		{"star", "* Item 2", "* Item 2"},
		{"unicode bullet", "• Go experience", "- Go experience"},
		{"middle dot", "· Kubernetes", "- Kubernetes"},
		{"indented", "  - nested   item", "  - nested item"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}

func TestCleanText_NormalizeWhitespace(t *testing.T) {
	input := "Line    with \t multiple  spaces   "
	assert.Equal(t, "Line with multiple spaces", CleanText(input))
}

func TestCleanText_RemoveExcessiveBlankLines(t *testing.T) {
	input := "Line 1\n\n\n\n\nLine 2\n   \n\nLine 3"
	assert.Equal(t, "Line 1\n\nLine 2\n\nLine 3", CleanText(input))
}

func TestCleanText_NormalizeLineEndings(t *testing.T) {
	input := "Line 1\r\nLine 2\rLine 3\nLine 4"
	assert.Equal(t, "Line 1\nLine 2\nLine 3\nLine 4", CleanText(input))
}

func TestCleanText_EmptyInput(t *testing.T) {
	assert.Empty(t, CleanText(""))
	assert.Empty(t, CleanText("   \n  \n  "))
}

func TestCleanText_SpecialCharacters(t *testing.T) {
	input := "Test with émojis 🚀 and spéciàl chàracters"
	assert.Equal(t, input, CleanText(input))
}

func TestCleanText_Idempotent(t *testing.T) {
	input := "# Role\n\n\n•  Build   things\r\n  * ship   them"
	once := CleanText(input)
	assert.Equal(t, once, CleanText(once))
}

func TestReadJobDescription(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.txt")
	require.NoError(t, os.WriteFile(path, []byte("# Backend Engineer\r\n\r\n\r\n\r\n• Go\r\n"), 0o644))

	text, err := ReadJobDescription(path)
	require.NoError(t, err)
	assert.Equal(t, "# Backend Engineer\n\n- Go", text)

	_, err = ReadJobDescription(filepath.Join(dir, "missing.txt"))
	assert.ErrorContains(t, err, "file not found")

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte(" \n "), 0o644))
	_, err = ReadJobDescription(empty)
	assert.Error(t, err)
}

func TestReadJobDescription_HTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posting.html")
	html := `<html><head><title>Jobs</title><script>var x = 1;</script></head><body>
<nav>Home | Careers</nav>
<div class="job-description"><h1>Backend Engineer</h1><p>Build Go services</p></div>
</body></html>`
	require.NoError(t, os.WriteFile(path, []byte(html), 0o644))

	got, err := ReadJobDescription(path)
	require.NoError(t, err)
	assert.Contains(t, got, "Backend Engineer")
	assert.Contains(t, got, "Build Go services")
	assert.NotContains(t, got, "var x")
	assert.NotContains(t, got, "Careers")
}
