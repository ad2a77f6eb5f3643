package merge

import (
	"testing"

	"github.com/jonathan/resume-variants/internal/overrides"
	"github.com/jonathan/resume-variants/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestLint_CleanStore(t *testing.T) {
	master := types.SampleDocument()
	store := overrides.NewStore(master)
	store.AddEntry("section-skills", types.Entry{ID: "skills-2", Data: types.SkillsData{}})
	store.AddBullet("skills-2", types.BulletPoint{ID: "skills-2-b"})
	store.SetEntryOrder("section-skills", []string{"skills-2", "skills-1"})
	store.SetBulletText("exp-1-bp-1", "x")
	store.RemoveBullet("exp-2", "exp-2-bp-1")

	assert.Empty(t, Lint(master, store))
}

func TestLint_ReportsDrift(t *testing.T) {
	master := types.SampleDocument()
	store := overrides.Empty()
	store.SetEnabled("gone", false)
	store.SetBulletText("gone-bullet", "x")
	store.SetEntryData("exp-1", types.SkillsData{Category: "wrong kind"})
	store.SetSectionOrder([]string{"section-skills", "section-gone"})
	store.RemoveEntry("gone-entry")
	store.AddEntry("section-gone", types.Entry{ID: "orphan"})

	drifts := Lint(master, store)

	assert.Equal(t, []Drift{
		{Field: DriftAdditionalEntries, EntityID: "orphan", Message: "added to unknown section section-gone"},
		{Field: DriftDeletedEntries, EntityID: "gone-entry", Message: "no master entry with this id"},
		{Field: DriftEnabled, EntityID: "gone", Message: "no section, entry or bullet with this id"},
		{Field: DriftEnabled, EntityID: "orphan", Message: "no section, entry or bullet with this id"},
		{Field: DriftKindMismatch, EntityID: "exp-1", Message: "override kind skills differs from section kind experience"},
		{Field: DriftSectionOrder, EntityID: "section-gone", Message: "no section with this id"},
		{Field: DriftText, EntityID: "gone-bullet", Message: "no master bullet with this id"},
	}, drifts)
}

func TestLint_NilInputs(t *testing.T) {
	assert.Nil(t, Lint(nil, overrides.Empty()))
	assert.Nil(t, Lint(types.SampleDocument(), nil))
}
