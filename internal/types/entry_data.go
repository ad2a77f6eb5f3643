// Package types provides type definitions for the résumé document model shared by every other package.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
)

// EntryData is the kind-specific payload of an entry. It is a closed sum:
// only the five payload types in this package implement it.
type EntryData interface {
	Kind() SectionKind
	Accept(v EntryDataVisitor)
	isEntryData()
}

// EntryDataVisitor must handle every payload kind, so adding a kind breaks
// every consumer at compile time until it grows a handler.
type EntryDataVisitor interface {
	VisitEducation(d EducationData)
	VisitSkills(d SkillsData)
	VisitExperience(d ExperienceData)
	VisitProject(d ProjectData)
	VisitAchievement(d AchievementData)
}

// EducationData describes a degree
type EducationData struct {
	Institution         string `json:"institution"`
	Degree              string `json:"degree"`
	Field               string `json:"field"`
	StartDate           string `json:"startDate"`
	EndDate             string `json:"endDate"`
	GPA                 string `json:"gpa,omitempty"`
	Location            string `json:"location,omitempty"`
	AvailableCoursework string `json:"availableCoursework,omitempty"`
}

// SkillsData describes one skills category line
type SkillsData struct {
	Category       string `json:"category"`
	Items          string `json:"items"`
	AvailableItems string `json:"availableItems,omitempty"`
}

// ExperienceData describes a role at a company
type ExperienceData struct {
	Company   string `json:"company"`
	Title     string `json:"title"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Location  string `json:"location,omitempty"`
}

// ProjectData describes a project
type ProjectData struct {
	Name      string `json:"name"`
	URL       string `json:"url,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

// AchievementData describes an award or achievement
type AchievementData struct {
	Description string `json:"description"`
}

func (EducationData) Kind() SectionKind   { return KindEducation }
func (SkillsData) Kind() SectionKind      { return KindSkills }
func (ExperienceData) Kind() SectionKind  { return KindExperience }
func (ProjectData) Kind() SectionKind     { return KindProjects }
func (AchievementData) Kind() SectionKind { return KindAchievements }

func (d EducationData) Accept(v EntryDataVisitor)   { v.VisitEducation(d) }
func (d SkillsData) Accept(v EntryDataVisitor)      { v.VisitSkills(d) }
func (d ExperienceData) Accept(v EntryDataVisitor)  { v.VisitExperience(d) }
func (d ProjectData) Accept(v EntryDataVisitor)     { v.VisitProject(d) }
func (d AchievementData) Accept(v EntryDataVisitor) { v.VisitAchievement(d) }

func (EducationData) isEntryData()   {}
func (SkillsData) isEntryData()      {}
func (ExperienceData) isEntryData()  {}
func (ProjectData) isEntryData()     {}
func (AchievementData) isEntryData() {}

// MarshalEntryData encodes a payload with its "type" discriminator
func MarshalEntryData(d EntryData) ([]byte, error) {
	switch v := d.(type) {
	case nil:
		return []byte("null"), nil
	case EducationData:
		return json.Marshal(struct {
			Type SectionKind `json:"type"`
			EducationData
		}{KindEducation, v})
	case SkillsData:
		return json.Marshal(struct {
			Type SectionKind `json:"type"`
			SkillsData
		}{KindSkills, v})
	case ExperienceData:
		return json.Marshal(struct {
			Type SectionKind `json:"type"`
			ExperienceData
		}{KindExperience, v})
	case ProjectData:
		return json.Marshal(struct {
			Type SectionKind `json:"type"`
			ProjectData
		}{KindProjects, v})
	case AchievementData:
		return json.Marshal(struct {
			Type SectionKind `json:"type"`
			AchievementData
		}{KindAchievements, v})
	default:
		return nil, fmt.Errorf("unsupported entry data %T", d)
	}
}

// UnmarshalEntryData decodes a payload by its "type" discriminator
func UnmarshalEntryData(raw []byte) (EntryData, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var head struct {
		Type SectionKind `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, fmt.Errorf("failed to read entry data type: %w", err)
	}

	switch head.Type {
	case KindEducation:
		var d EducationData
		err := json.Unmarshal(raw, &d)
		return d, err
	case KindSkills:
		var d SkillsData
		err := json.Unmarshal(raw, &d)
		return d, err
	case KindExperience:
		var d ExperienceData
		err := json.Unmarshal(raw, &d)
		return d, err
	case KindProjects:
		var d ProjectData
		err := json.Unmarshal(raw, &d)
		return d, err
	case KindAchievements:
		var d AchievementData
		err := json.Unmarshal(raw, &d)
		return d, err
	default:
		return nil, fmt.Errorf("unknown entry data type %q", head.Type)
	}
}

type entryJSON struct {
	ID           string          `json:"id"`
	Enabled      bool            `json:"enabled"`
	DisplayOrder int             `json:"displayOrder"`
	Data         json.RawMessage `json:"data"`
	BulletPoints []BulletPoint   `json:"bulletPoints"`
}

// MarshalJSON implements json.Marshaler
func (e Entry) MarshalJSON() ([]byte, error) {
	data, err := MarshalEntryData(e.Data)
	if err != nil {
		return nil, fmt.Errorf("entry %s: %w", e.ID, err)
	}
	bullets := e.BulletPoints
	if bullets == nil {
		bullets = []BulletPoint{}
	}
	return json.Marshal(entryJSON{
		ID:           e.ID,
		Enabled:      e.Enabled,
		DisplayOrder: e.DisplayOrder,
		Data:         data,
		BulletPoints: bullets,
	})
}

// UnmarshalJSON implements json.Unmarshaler
func (e *Entry) UnmarshalJSON(raw []byte) error {
	var aux entryJSON
	if err := json.Unmarshal(raw, &aux); err != nil {
		return err
	}
	data, err := UnmarshalEntryData(aux.Data)
	if err != nil {
		return fmt.Errorf("entry %s: %w", aux.ID, err)
	}
	bullets := aux.BulletPoints
	if len(bullets) == 0 {
		bullets = nil
	}
	*e = Entry{
		ID:           aux.ID,
		Enabled:      aux.Enabled,
		DisplayOrder: aux.DisplayOrder,
		Data:         data,
		BulletPoints: bullets,
	}
	return nil
}
