package rendering

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-variants/internal/types"
)

func TestParseTemplate_Default(t *testing.T) {
	tmpl, err := parseTemplate("")
	require.NoError(t, err)
	assert.NotNil(t, tmpl)
}

func TestParseTemplate_InvalidPath(t *testing.T) {
	_, err := parseTemplate("/nonexistent/template.tex")
	var templateErr *TemplateError
	require.ErrorAs(t, err, &templateErr)
	assert.Contains(t, err.Error(), "template file not found")
}

func TestParseTemplate_InvalidTemplate(t *testing.T) {
	templatePath := filepath.Join(t.TempDir(), "invalid.tex")
	require.NoError(t, os.WriteFile(templatePath, []byte(`\begin{document}{{.Broken{{}}`), 0644))

	_, err := parseTemplate(templatePath)
	var templateErr *TemplateError
	assert.ErrorAs(t, err, &templateErr)
}

func TestRenderLaTeX_NilDocument(t *testing.T) {
	_, err := RenderLaTeX(nil, Options{})
	var renderErr *RenderError
	assert.ErrorAs(t, err, &renderErr)
}

func TestRenderLaTeX_SampleDocument(t *testing.T) {
	tex, err := RenderLaTeX(types.SampleDocument(), Options{})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(tex, `\documentclass[10pt]{article}`))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(tex), `\end{document}`))
	assert.Contains(t, tex, `{\Huge \scshape \textbf{Alex Candidate}} \\`)
	assert.Contains(t, tex, `+1 (555) 010-0100 $|$ \href{mailto:alex@example.com}{\underline{alex@example.com}} $|$ \href{https://www.linkedin.com/in/alex-candidate/}{\underline{LinkedIn}}`)

	assert.Contains(t, tex, `\textbf{State University}, New York \hfill Aug 2022 -- May 2024 \\`)
	assert.Contains(t, tex, `Master of Science in Computer Science \hfill GPA : 3.9/4.0 \\`)
	assert.Contains(t, tex, `\textbf{Acme Corp: Software Engineer} \hfill Jun 2024 -- Present \\`)
	assert.Contains(t, tex, `    \item Built a \textbf{Go} ingestion service processing 5M events/day.`, "bullet markup passes through")
	assert.Contains(t, tex, `\textbf{Languages:} Go, Python, SQL\\`)
	assert.Contains(t, tex, `\href{https://github.com/alex-candidate/tinykv}{\textbf{tinykv}} \hfill 2023 \\`, "equal project dates collapse")

	assert.NotContains(t, tex, "ACHIEVEMENTS", "disabled section is skipped")

	// sections appear in document order
	assert.Less(t, strings.Index(tex, "%==== EDUCATION ====%"), strings.Index(tex, "%==== WORK EXPERIENCE ====%"))
	assert.Less(t, strings.Index(tex, "%==== PROJECTS ====%"), strings.Index(tex, "%==== TECHNICAL SKILLS ====%"))
}

func TestRenderLaTeX_SkipsDisabledContent(t *testing.T) {
	doc := types.SampleDocument()
	_, exp1 := doc.FindEntry("exp-1")
	exp1.BulletPoints[1].Enabled = false
	_, exp2 := doc.FindEntry("exp-2")
	exp2.Enabled = false
	doc.Section("section-projects").Entries[0].Enabled = false

	tex, err := RenderLaTeX(doc, Options{})
	require.NoError(t, err)

	assert.Contains(t, tex, "ingestion service")
	assert.NotContains(t, tex, "p99 API latency")
	assert.NotContains(t, tex, "Initech")
	assert.NotContains(t, tex, "PROJECTS", "section without enabled entries is dropped")
}

func TestRenderLaTeX_EscapesFields(t *testing.T) {
	doc := &types.Document{
		Contact: types.ContactInfo{Name: "R&D Person", Email: "rd@example.com"},
		Sections: []types.Section{{
			ID: "exp", Kind: types.KindExperience, Title: "Experience", Enabled: true,
			Entries: []types.Entry{{
				ID: "e1", Enabled: true,
				Data: types.ExperienceData{Company: "AT&T", Title: "C# Dev", StartDate: "2020", EndDate: "2021"},
			}},
		}},
	}

	tex, err := RenderLaTeX(doc, Options{})
	require.NoError(t, err)
	assert.Contains(t, tex, `\textbf{R\&D Person}`)
	assert.Contains(t, tex, `\textbf{AT\&T: C\# Dev} \hfill 2020 -- 2021 \\`)
	assert.NotContains(t, tex, `\begin{itemize}`, "no itemize without bullets")
}

func TestRenderLaTeX_AchievementsFallBackToDescription(t *testing.T) {
	doc := &types.Document{
		Contact: types.ContactInfo{Name: "A"},
		Sections: []types.Section{{
			ID: "ach", Kind: types.KindAchievements, Title: "Awards", Enabled: true,
			Entries: []types.Entry{
				{ID: "a1", Enabled: true, Data: types.AchievementData{Description: "Dean's List"}},
				{ID: "a2", Enabled: true, Data: types.AchievementData{Description: "ignored"},
					BulletPoints: []types.BulletPoint{{ID: "a2-b", Text: "First place", Enabled: true}}},
			},
		}},
	}

	tex, err := RenderLaTeX(doc, Options{})
	require.NoError(t, err)
	assert.Contains(t, tex, "\\vspace{4pt}\n\\begin{itemize}\n    \\item Dean's List\n    \\item First place\n\\end{itemize}")
	assert.NotContains(t, tex, "ignored")
}

func TestRenderLaTeX_CustomTemplate(t *testing.T) {
	templatePath := filepath.Join(t.TempDir(), "custom.tex")
	content := `{{ escape .Name }}|{{ len .Sections }}`
	require.NoError(t, os.WriteFile(templatePath, []byte(content), 0644))

	doc := types.SampleDocument()
	doc.Contact.Name = "A_B"
	tex, err := RenderLaTeX(doc, Options{TemplatePath: templatePath})
	require.NoError(t, err)
	// Name is escaped once by the renderer and again by the template func
	assert.Equal(t, `A\textbackslash{}\_B|4`, tex)
}

func TestProjectDates(t *testing.T) {
	tests := []struct {
		start, end, want string
	}{
		{"2023", "2023", "2023"},
		{"2022", "2023", "2022 -- 2023"},
		{"2022", "", "2022"},
		{"", "2023", "2023"},
		{"", "", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, projectDates(tt.start, tt.end))
	}
}
