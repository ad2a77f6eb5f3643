package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-variants/internal/types"
)

// sectionLayout is the LaTeX that frames one kind of section
type sectionLayout struct {
	open    string
	between string
	close   string
}

var layouts = map[types.SectionKind]sectionLayout{
	types.KindEducation:    {open: `\vspace{3pt}`, between: `\vspace{6pt}`, close: `\vspace{5pt}`},
	types.KindSkills:       {open: `\vspace{3pt}`, close: `\vspace{6pt}`},
	types.KindExperience:   {open: "\\vspace{3pt}\n", between: `\vspace{2pt}`, close: "\n\\vspace{5pt}"},
	types.KindProjects:     {open: `\vspace{3pt}`, close: `\vspace{6pt}`},
	types.KindAchievements: {open: "\\vspace{4pt}\n\\begin{itemize}", close: `\end{itemize}`},
}

// renderSection returns the LaTeX for one section, or "" when the section
// is disabled or has no enabled entries.
func renderSection(section *types.Section) string {
	if !section.Enabled {
		return ""
	}

	var entries []types.Entry
	for _, e := range section.Entries {
		if e.Enabled && e.Data != nil {
			entries = append(entries, e)
		}
	}
	if len(entries) == 0 {
		return ""
	}

	layout := layouts[section.Kind]
	title := strings.ToUpper(section.Title)

	w := &entryWriter{}
	w.line("%%==== %s ====%%", title)
	w.line(`\header{\textbf{%s}}`, EscapeLaTeX(title))
	w.raw(layout.open)

	for i, entry := range entries {
		w.bullets = enabledBullets(entry.BulletPoints)
		entry.Data.Accept(w)
		if layout.between != "" && i < len(entries)-1 {
			w.raw(layout.between)
		}
	}

	w.raw(layout.close)
	return strings.Join(w.lines, "\n")
}

func enabledBullets(bullets []types.BulletPoint) []string {
	var out []string
	for _, b := range bullets {
		if b.Enabled {
			out = append(out, b.Text)
		}
	}
	return out
}

// entryWriter renders one entry per visit. Bullet text and skill items are
// written verbatim since users put LaTeX markup in them; every other field is escaped.
type entryWriter struct {
	lines   []string
	bullets []string
}

var _ types.EntryDataVisitor = (*entryWriter)(nil)

func (w *entryWriter) line(format string, args ...any) {
	w.lines = append(w.lines, fmt.Sprintf(format, args...))
}

func (w *entryWriter) raw(s string) {
	w.lines = append(w.lines, s)
}

func (w *entryWriter) itemize() {
	if len(w.bullets) == 0 {
		return
	}
	w.raw(`\begin{itemize}`)
	for _, b := range w.bullets {
		w.raw(`    \item ` + b)
	}
	w.raw(`\end{itemize}`)
}

func (w *entryWriter) VisitEducation(d types.EducationData) {
	location := ""
	if d.Location != "" {
		location = ", " + EscapeLaTeX(d.Location)
	}
	w.line(`\textbf{%s}%s \hfill %s -- %s \\`,
		EscapeLaTeX(d.Institution), location, EscapeLaTeX(d.StartDate), EscapeLaTeX(d.EndDate))

	gpa := ""
	if d.GPA != "" {
		gpa = ` \hfill GPA : ` + EscapeLaTeX(d.GPA)
	}
	w.line(`%s in %s%s \\`, EscapeLaTeX(d.Degree), EscapeLaTeX(d.Field), gpa)

	for _, b := range w.bullets {
		w.raw(b + ` \\`)
	}
}

func (w *entryWriter) VisitSkills(d types.SkillsData) {
	w.line(`\textbf{%s:} %s\\`, EscapeLaTeX(d.Category), d.Items)
}

func (w *entryWriter) VisitExperience(d types.ExperienceData) {
	w.line(`\textbf{%s: %s} \hfill %s -- %s \\`,
		EscapeLaTeX(d.Company), EscapeLaTeX(d.Title), EscapeLaTeX(d.StartDate), EscapeLaTeX(d.EndDate))
	w.itemize()
}

func (w *entryWriter) VisitProject(d types.ProjectData) {
	name := `\textbf{` + EscapeLaTeX(d.Name) + `}`
	if d.URL != "" {
		name = `\href{` + EscapeHref(d.URL) + `}{` + name + `}`
	}
	w.line(`%s \hfill %s \\`, name, projectDates(d.StartDate, d.EndDate))
	w.itemize()
}

func (w *entryWriter) VisitAchievement(d types.AchievementData) {
	if len(w.bullets) > 0 {
		for _, b := range w.bullets {
			w.raw(`    \item ` + b)
		}
		return
	}
	if d.Description != "" {
		w.raw(`    \item ` + d.Description)
	}
}

// projectDates collapses a range whose ends are equal into one date
func projectDates(start, end string) string {
	switch {
	case start != "" && end != "" && start == end:
		return EscapeLaTeX(start)
	case start != "" && end != "":
		return EscapeLaTeX(start) + " -- " + EscapeLaTeX(end)
	case start != "":
		return EscapeLaTeX(start)
	default:
		return EscapeLaTeX(end)
	}
}
