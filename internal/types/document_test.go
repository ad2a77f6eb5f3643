//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentClone_DoesNotAlias(t *testing.T) {
	doc := SampleDocument()
	clone := doc.Clone()
	require.Equal(t, doc, clone)

	clone.Sections[0].Title = "Changed"
	clone.Sections[0].Entries[0].Enabled = false
	clone.Sections[0].Entries[0].BulletPoints[0].Text = "Changed"
	clone.Sections[1].Entries = append(clone.Sections[1].Entries[:0], clone.Sections[1].Entries[1:]...)

	assert.Equal(t, "Education", doc.Sections[0].Title)
	assert.True(t, doc.Sections[0].Entries[0].Enabled)
	assert.Equal(t, "Coursework: Distributed Systems, Machine Learning", doc.Sections[0].Entries[0].BulletPoints[0].Text)
	assert.Len(t, doc.Sections[1].Entries, 2)
	assert.Equal(t, "exp-1", doc.Sections[1].Entries[0].ID)
}

func TestDocumentClone_Nil(t *testing.T) {
	var doc *Document
	assert.Nil(t, doc.Clone())
}

func TestEntryJSON_KeepsTypeDiscriminator(t *testing.T) {
	entry := Entry{
		ID:      "exp-9",
		Enabled: true,
		Data: ExperienceData{
			Company: "Acme",
			Title:   "Engineer",
		},
	}

	raw, err := json.Marshal(entry)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"type":"experience"`)
	assert.Contains(t, string(raw), `"bulletPoints":[]`)

	var decoded Entry
	require.NoError(t, json.Unmarshal(raw, &decoded))
	data, ok := decoded.Data.(ExperienceData)
	require.True(t, ok, "data should decode as ExperienceData, got %T", decoded.Data)
	assert.Equal(t, "Acme", data.Company)
}

func TestUnmarshalEntryData_UnknownType(t *testing.T) {
	_, err := UnmarshalEntryData([]byte(`{"type":"hobbies","name":"chess"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown entry data type")
}

func TestUnmarshalEntryData_Null(t *testing.T) {
	data, err := UnmarshalEntryData([]byte("null"))
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestDocumentJSON_RoundTripSample(t *testing.T) {
	doc := SampleDocument()
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded Document
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, doc, &decoded)
}

func TestFindHelpers(t *testing.T) {
	doc := SampleDocument()

	section, entry := doc.FindEntry("exp-2")
	require.NotNil(t, entry)
	assert.Equal(t, "section-experience", section.ID)

	owner, bullet := doc.FindBullet("proj-1-bp-1")
	require.NotNil(t, bullet)
	assert.Equal(t, "proj-1", owner.ID)

	section, entry = doc.FindEntry("missing")
	assert.Nil(t, section)
	assert.Nil(t, entry)
	assert.Nil(t, doc.Section("missing"))
}

func TestEnabledStates(t *testing.T) {
	states := SampleDocument().EnabledStates()
	assert.Equal(t, true, states["section-education"])
	assert.Equal(t, false, states["section-achievements"])
	assert.Equal(t, true, states["exp-1-bp-2"])
	assert.Len(t, states, 5+6+5)
}

type kindCounter struct {
	seen map[SectionKind]int
}

func (k *kindCounter) VisitEducation(EducationData)     { k.seen[KindEducation]++ }
func (k *kindCounter) VisitSkills(SkillsData)           { k.seen[KindSkills]++ }
func (k *kindCounter) VisitExperience(ExperienceData)   { k.seen[KindExperience]++ }
func (k *kindCounter) VisitProject(ProjectData)         { k.seen[KindProjects]++ }
func (k *kindCounter) VisitAchievement(AchievementData) { k.seen[KindAchievements]++ }

func TestEntryDataVisitor_DispatchesByKind(t *testing.T) {
	counter := &kindCounter{seen: map[SectionKind]int{}}
	for _, section := range SampleDocument().Sections {
		for _, entry := range section.Entries {
			entry.Data.Accept(counter)
			assert.Equal(t, section.Kind, entry.Data.Kind())
		}
	}
	assert.Equal(t, 2, counter.seen[KindExperience])
	assert.Equal(t, 1, counter.seen[KindAchievements])
}

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *Document)
		wantErr string
	}{
		{
			name:   "sample is valid",
			mutate: func(_ *Document) {},
		},
		{
			name: "duplicate id across levels",
			mutate: func(d *Document) {
				d.Sections[1].Entries[0].BulletPoints[0].ID = "edu-1"
			},
			wantErr: `duplicate id "edu-1"`,
		},
		{
			name: "kind mismatch",
			mutate: func(d *Document) {
				d.Sections[0].Entries[0].Data = SkillsData{Category: "x"}
			},
			wantErr: `does not match section section-education kind "education"`,
		},
		{
			name: "unknown section kind",
			mutate: func(d *Document) {
				d.Sections[0].Kind = "hobbies"
			},
			wantErr: `unknown kind "hobbies"`,
		},
		{
			name: "invalid email",
			mutate: func(d *Document) {
				d.Contact.Email = "not-an-email"
			},
			wantErr: "contact info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := SampleDocument()
			tt.mutate(doc)
			err := ValidateDocument(doc)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var docErr *DocumentError
			require.ErrorAs(t, err, &docErr)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCheckEntryKind(t *testing.T) {
	section := &Section{ID: "s1", Kind: KindProjects}
	assert.NoError(t, CheckEntryKind(section, "e1", ProjectData{Name: "x"}))

	err := CheckEntryKind(section, "e1", AchievementData{})
	var mismatch *KindMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, KindAchievements, mismatch.DataKind)
	assert.Equal(t, KindProjects, mismatch.SectionKind)
}
