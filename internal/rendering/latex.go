// Package rendering provides functionality to render LaTeX resumes from templates.
package rendering

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/jonathan/resume-variants/internal/types"
)

//go:embed templates/resume.tex
var defaultTemplate string

// Options controls RenderLaTeX
type Options struct {
	// TemplatePath overrides the built-in template. The template receives TemplateData.
	TemplatePath string
}

// TemplateData represents the data structure passed to the LaTeX template
type TemplateData struct {
	Name        string
	ContactLine string
	Sections    []string
}

// RenderLaTeX renders an effective document to a complete .tex source.
// Disabled sections, entries and bullets are skipped, as are sections with
// nothing enabled. Sections and entries appear in document order.
func RenderLaTeX(doc *types.Document, opts Options) (string, error) {
	if doc == nil {
		return "", &RenderError{Message: "no document to render"}
	}

	tmpl, err := parseTemplate(opts.TemplatePath)
	if err != nil {
		return "", err
	}

	data := buildTemplateData(doc)

	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}
	return result.String(), nil
}

// parseTemplate reads and parses a LaTeX template file, or the built-in one when path is empty
func parseTemplate(templatePath string) (*template.Template, error) {
	content := defaultTemplate
	if templatePath != "" {
		raw, err := os.ReadFile(templatePath)
		if err != nil {
			msg := "failed to read template file"
			if os.IsNotExist(err) {
				msg = "template file not found"
			}
			return nil, &TemplateError{Path: templatePath, Message: msg, Cause: err}
		}
		content = string(raw)
	}

	tmpl, err := template.New("resume").Funcs(template.FuncMap{
		"escape": EscapeLaTeX,
	}).Parse(content)
	if err != nil {
		return nil, &TemplateError{
			Path:    templatePath,
			Message: "failed to parse template",
			Cause:   err,
		}
	}
	return tmpl, nil
}

func buildTemplateData(doc *types.Document) *TemplateData {
	data := &TemplateData{
		Name:        EscapeLaTeX(doc.Contact.Name),
		ContactLine: contactLine(doc.Contact),
		Sections:    []string{},
	}
	for i := range doc.Sections {
		if body := renderSection(&doc.Sections[i]); body != "" {
			data.Sections = append(data.Sections, body)
		}
	}
	return data
}

// contactLine joins the present contact fields with a vertical bar
func contactLine(c types.ContactInfo) string {
	var parts []string
	if c.Phone != "" {
		parts = append(parts, EscapeLaTeX(c.Phone))
	}
	if c.Email != "" {
		parts = append(parts, fmt.Sprintf(`\href{mailto:%s}{\underline{%s}}`, EscapeHref(c.Email), EscapeLaTeX(c.Email)))
	}
	if c.LinkedIn != "" {
		parts = append(parts, fmt.Sprintf(`\href{%s}{\underline{LinkedIn}}`, EscapeHref(c.LinkedIn)))
	}
	if c.GitHub != "" {
		parts = append(parts, fmt.Sprintf(`\href{%s}{\underline{GitHub}}`, EscapeHref(c.GitHub)))
	}
	if c.Website != "" {
		parts = append(parts, fmt.Sprintf(`\href{%s}{\underline{Website}}`, EscapeHref(c.Website)))
	}
	if c.Location != "" {
		parts = append(parts, EscapeLaTeX(c.Location))
	}
	return strings.Join(parts, ` $|$ `)
}
