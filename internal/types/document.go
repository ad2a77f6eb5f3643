// Package types provides type definitions for the résumé document model shared by every other package.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SectionKind is the semantic kind of a section. The set is closed.
type SectionKind string

// Section kinds
const (
	KindEducation    SectionKind = "education"
	KindSkills       SectionKind = "skills"
	KindExperience   SectionKind = "experience"
	KindProjects     SectionKind = "projects"
	KindAchievements SectionKind = "achievements"
)

// SectionKinds lists every valid kind in canonical order
var SectionKinds = []SectionKind{KindEducation, KindSkills, KindExperience, KindProjects, KindAchievements}

// Valid reports whether k is one of the known kinds
func (k SectionKind) Valid() bool {
	switch k {
	case KindEducation, KindSkills, KindExperience, KindProjects, KindAchievements:
		return true
	}
	return false
}

// CurrentSchemaVersion is written into Meta.SchemaVersion for new documents
const CurrentSchemaVersion = 1

// Document is the full résumé: metadata, contact info and ordered sections
type Document struct {
	Meta     Meta        `json:"meta"`
	Contact  ContactInfo `json:"contactInfo"`
	Sections []Section   `json:"sections"`
}

// Meta identifies a document and records when it was last touched
type Meta struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
	SchemaVersion int    `json:"schemaVersion"`
}

// ContactInfo is the header block of the résumé
type ContactInfo struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin,omitempty" validate:"omitempty,url"`
	GitHub   string `json:"github,omitempty" validate:"omitempty,url"`
	Website  string `json:"website,omitempty" validate:"omitempty,url"`
	Location string `json:"location,omitempty"`
}

// Section is a titled group of entries of a single kind
type Section struct {
	ID           string      `json:"id"`
	Kind         SectionKind `json:"type"`
	Title        string      `json:"title"`
	Enabled      bool        `json:"enabled"`
	DisplayOrder int         `json:"displayOrder"`
	Entries      []Entry     `json:"entries"`
}

// Entry is one item of a section (a job, a degree, a project...).
// Data always carries the same kind as the owning section.
type Entry struct {
	ID           string        `json:"id"`
	Enabled      bool          `json:"enabled"`
	DisplayOrder int           `json:"displayOrder"`
	Data         EntryData     `json:"data"`
	BulletPoints []BulletPoint `json:"bulletPoints"`
}

// BulletPoint is a single line of free-form text under an entry
type BulletPoint struct {
	ID           string `json:"id"`
	Text         string `json:"text"`
	Enabled      bool   `json:"enabled"`
	DisplayOrder int    `json:"displayOrder"`
}

// Section returns the section with the given id, or nil
func (d *Document) Section(id string) *Section {
	for i := range d.Sections {
		if d.Sections[i].ID == id {
			return &d.Sections[i]
		}
	}
	return nil
}

// FindEntry locates an entry anywhere in the document and returns it together with its section
func (d *Document) FindEntry(entryID string) (*Section, *Entry) {
	for i := range d.Sections {
		section := &d.Sections[i]
		for j := range section.Entries {
			if section.Entries[j].ID == entryID {
				return section, &section.Entries[j]
			}
		}
	}
	return nil, nil
}

// FindBullet locates a bullet anywhere in the document and returns it together with its entry
func (d *Document) FindBullet(bulletID string) (*Entry, *BulletPoint) {
	for i := range d.Sections {
		for j := range d.Sections[i].Entries {
			entry := &d.Sections[i].Entries[j]
			for k := range entry.BulletPoints {
				if entry.BulletPoints[k].ID == bulletID {
					return entry, &entry.BulletPoints[k]
				}
			}
		}
	}
	return nil, nil
}

// EnabledStates maps every section, entry and bullet id to its enabled flag
func (d *Document) EnabledStates() map[string]bool {
	states := make(map[string]bool)
	for _, section := range d.Sections {
		states[section.ID] = section.Enabled
		for _, entry := range section.Entries {
			states[entry.ID] = entry.Enabled
			for _, bullet := range entry.BulletPoints {
				states[bullet.ID] = bullet.Enabled
			}
		}
	}
	return states
}

// SectionIDs returns the section ids in document order
func (d *Document) SectionIDs() []string {
	ids := make([]string, len(d.Sections))
	for i, section := range d.Sections {
		ids[i] = section.ID
	}
	return ids
}
