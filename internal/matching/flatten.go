package matching

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/resume-variants/internal/types"
)

// Flatten turns doc into the read-only list of entries and bullets the
// matcher sees. Every section and entry is included, enabled or not, so the
// model can suggest turning hidden content back on.
func Flatten(doc *types.Document) []types.EntrySummary {
	if doc == nil {
		return nil
	}

	var out []types.EntrySummary
	for _, section := range doc.Sections {
		for _, entry := range section.Entries {
			bullets := make([]types.BulletSummary, 0, len(entry.BulletPoints))
			for _, b := range entry.BulletPoints {
				bullets = append(bullets, types.BulletSummary{BulletID: b.ID, Text: StripLaTeX(b.Text)})
			}
			out = append(out, types.EntrySummary{
				EntryID: entry.ID,
				Kind:    section.Kind,
				Summary: StripLaTeX(summarize(entry.Data)),
				Bullets: bullets,
			})
		}
	}
	return out
}

// summarizer renders the one-line description of an entry's data
type summarizer struct {
	line string
}

var _ types.EntryDataVisitor = (*summarizer)(nil)

func (s *summarizer) VisitEducation(d types.EducationData) {
	s.line = fmt.Sprintf("%s - %s in %s", d.Institution, d.Degree, d.Field)
}

func (s *summarizer) VisitSkills(d types.SkillsData) {
	s.line = fmt.Sprintf("%s: %s", d.Category, d.Items)
}

func (s *summarizer) VisitExperience(d types.ExperienceData) {
	s.line = fmt.Sprintf("%s - %s (%s - %s)", d.Company, d.Title, d.StartDate, d.EndDate)
}

func (s *summarizer) VisitProject(d types.ProjectData) {
	s.line = d.Name
}

func (s *summarizer) VisitAchievement(d types.AchievementData) {
	s.line = d.Description
}

func summarize(data types.EntryData) string {
	if data == nil {
		return ""
	}
	var s summarizer
	data.Accept(&s)
	return s.line
}

var (
	styleCommand = regexp.MustCompile(`\\(?:textbf|textit|underline|emph)\{([^}]*)\}`)
	hrefCommand  = regexp.MustCompile(`\\href\{[^}]*\}\{([^}]*)\}`)
	latexEscapes = strings.NewReplacer(`\&`, "&", `\%`, "%", `\$`, "$", `\#`, "#", `\_`, "_")
)

// StripLaTeX removes the formatting commands résumé text commonly carries,
// keeping their visible argument
func StripLaTeX(text string) string {
	text = styleCommand.ReplaceAllString(text, "$1")
	text = hrefCommand.ReplaceAllString(text, "$1")
	return latexEscapes.Replace(text)
}
