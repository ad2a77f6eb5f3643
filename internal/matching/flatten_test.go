package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-variants/internal/types"
)

func TestFlatten(t *testing.T) {
	entries := Flatten(types.SampleDocument())
	require.Len(t, entries, 6)

	byID := make(map[string]types.EntrySummary, len(entries))
	for _, e := range entries {
		byID[e.EntryID] = e
	}

	assert.Equal(t, "State University - Master of Science in Computer Science", byID["edu-1"].Summary)
	assert.Equal(t, types.KindEducation, byID["edu-1"].Kind)
	assert.Equal(t, "Acme Corp - Software Engineer (Jun 2024 - Present)", byID["exp-1"].Summary)
	assert.Equal(t, "tinykv", byID["proj-1"].Summary)
	assert.Equal(t, "Languages: Go, Python, SQL", byID["skills-1"].Summary)
	assert.Equal(t, "Winner, University Hackathon 2023", byID["ach-1"].Summary)
	assert.Empty(t, byID["skills-1"].Bullets)

	assert.Equal(t, []types.BulletSummary{
		{BulletID: "exp-1-bp-1", Text: "Built a Go ingestion service processing 5M events/day."},
		{BulletID: "exp-1-bp-2", Text: "Cut p99 API latency by 40% with targeted caching."},
	}, byID["exp-1"].Bullets)
}

func TestFlatten_Nil(t *testing.T) {
	assert.Nil(t, Flatten(nil))
	assert.Empty(t, Flatten(&types.Document{}))
}

func TestStripLaTeX(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bold", `\textbf{Go} services`, "Go services"},
		{"italic and underline", `\textit{a} \underline{b}`, "a b"},
		{"href", `\href{https://x.dev}{x.dev}`, "x.dev"},
		{"escapes", `R\&D at 40\% for \$5`, "R&D at 40% for $5"},
		{"plain", "nothing to do", "nothing to do"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripLaTeX(tt.in))
		})
	}
}

func TestFormatEntries(t *testing.T) {
	got := FormatEntries([]types.EntrySummary{
		{EntryID: "e1", Kind: types.KindExperience, Summary: "A", Bullets: []types.BulletSummary{{BulletID: "b1", Text: "x"}}},
		{EntryID: "e2", Kind: types.KindSkills, Summary: "B"},
	})
	assert.Equal(t, "  [e1] (experience) A\n    - [b1] x\n\n  [e2] (skills) B", got)
}
