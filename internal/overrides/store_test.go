package overrides

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/resume-variants/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_SeedsFromMaster(t *testing.T) {
	master := types.SampleDocument()
	store := NewStore(master)

	assert.Equal(t, master.EnabledStates(), store.EnabledOverrides)
	assert.Equal(t, []string{
		"section-education", "section-experience", "section-projects", "section-skills", "section-achievements",
	}, store.SectionOrder)
	assert.Empty(t, store.TextOverrides)
	assert.Empty(t, store.EntryDataOverrides)
	assert.Empty(t, store.AdditionalEntries)
	assert.Empty(t, store.DeletedEntryIDs)

	// later master drift does not leak into the snapshot
	master.Sections[0].Enabled = false
	assert.True(t, store.EnabledOverrides["section-education"])
}

func TestNewStore_NilMaster(t *testing.T) {
	store := NewStore(nil)
	require.NotNil(t, store)
	assert.Empty(t, store.EnabledOverrides)
}

func TestToggle_FallsBackToMasterDefault(t *testing.T) {
	store := Empty()

	assert.False(t, store.Toggle("e1", true))
	assert.True(t, store.Toggle("e1", true), "second toggle reads the override, not the default")
	assert.True(t, store.Toggle("b1", false))
}

func TestSetBulletText_MasterVersusAdditional(t *testing.T) {
	store := Empty()
	store.AddBullet("exp-1", types.BulletPoint{ID: "new-b", Text: "draft", Enabled: true})

	store.SetBulletText("new-b", "final")
	store.SetBulletText("exp-1-bp-1", "rewritten")
	store.SetBulletText("exp-1-bp-2", "")

	assert.Equal(t, "final", store.AdditionalBullets["exp-1"][0].Text)
	assert.NotContains(t, store.TextOverrides, "new-b")
	assert.Equal(t, "rewritten", store.TextOverrides["exp-1-bp-1"])
	text, ok := store.TextOverrides["exp-1-bp-2"]
	assert.True(t, ok, "empty text is a real override")
	assert.Equal(t, "", text)
}

func TestSetEntryData_AdditionalEntryUpdatedInPlace(t *testing.T) {
	store := Empty()
	store.AddEntry("section-experience", types.Entry{
		ID:   "exp-new",
		Data: types.ExperienceData{Company: "Old"},
	})

	store.SetEntryData("exp-new", types.ExperienceData{Company: "New"})

	assert.Empty(t, store.EntryDataOverrides)
	assert.Equal(t, types.ExperienceData{Company: "New"}, store.AdditionalEntries["section-experience"][0].Data)

	store.SetEntryData("exp-1", types.ExperienceData{Company: "Override"})
	assert.Equal(t, types.ExperienceData{Company: "Override"}, store.EntryDataOverrides["exp-1"])
}

func TestAddEntry_SeedsEnabledAndCopies(t *testing.T) {
	store := Empty()
	entry := types.Entry{
		ID:           "exp-new",
		Enabled:      false,
		Data:         types.ExperienceData{Company: "X"},
		BulletPoints: []types.BulletPoint{{ID: "b", Text: "one"}},
	}
	store.AddEntry("section-experience", entry)
	entry.BulletPoints[0].Text = "mutated by caller"

	assert.True(t, store.EnabledOverrides["exp-new"])
	assert.Equal(t, "one", store.AdditionalEntries["section-experience"][0].BulletPoints[0].Text)
}

func TestRemoveEntry(t *testing.T) {
	store := Empty()
	store.AddEntry("section-experience", types.Entry{ID: "exp-new", Data: types.ExperienceData{}})
	store.AddBullet("exp-new", types.BulletPoint{ID: "exp-new-b"})

	store.RemoveEntry("exp-new")
	assert.NotContains(t, store.AdditionalEntries, "section-experience")
	assert.NotContains(t, store.AdditionalBullets, "exp-new")
	assert.NotContains(t, store.DeletedEntryIDs, "exp-new", "additional ids never land in the deleted set")

	store.RemoveEntry("exp-1")
	store.RemoveEntry("exp-1")
	assert.Equal(t, []string{"exp-1"}, store.DeletedEntryIDs)
}

func TestRemoveBullet(t *testing.T) {
	store := Empty()
	store.AddBullet("exp-1", types.BulletPoint{ID: "extra"})
	store.AddBullet("exp-1", types.BulletPoint{ID: "extra-2"})

	store.RemoveBullet("exp-1", "extra")
	require.Len(t, store.AdditionalBullets["exp-1"], 1)
	assert.Equal(t, "extra-2", store.AdditionalBullets["exp-1"][0].ID)
	assert.NotContains(t, store.EnabledOverrides, "extra")

	store.RemoveBullet("exp-1", "exp-1-bp-1")
	assert.Equal(t, []string{"exp-1-bp-1"}, store.DeletedBulletIDs)
}

func TestSetOrders_CopyInput(t *testing.T) {
	store := Empty()
	ids := []string{"s2", "s1"}
	store.SetSectionOrder(ids)
	ids[0] = "mutated"
	assert.Equal(t, []string{"s2", "s1"}, store.SectionOrder)

	entries := []string{"e2", "e1"}
	store.SetEntryOrder("s1", entries)
	entries[0] = "mutated"
	assert.Equal(t, []string{"e2", "e1"}, store.EntryOrder["s1"])

	store.SetSectionOrder(nil)
	assert.NotNil(t, store.SectionOrder)
}

func TestClone_IsIndependent(t *testing.T) {
	store := NewStore(types.SampleDocument())
	store.AddEntry("section-skills", types.Entry{ID: "sk-2", Data: types.SkillsData{Category: "Cloud"}})
	store.SetEntryOrder("section-skills", []string{"sk-2"})

	clone := store.Clone()
	require.Equal(t, store, clone)

	clone.SetEnabled("edu-1", false)
	clone.AdditionalEntries["section-skills"][0].ID = "changed"
	clone.EntryOrder["section-skills"][0] = "changed"

	assert.True(t, store.EnabledOverrides["edu-1"])
	assert.Equal(t, "sk-2", store.AdditionalEntries["section-skills"][0].ID)
	assert.Equal(t, "sk-2", store.EntryOrder["section-skills"][0])
}

func TestStoreJSON_RoundTrip(t *testing.T) {
	store := NewStore(types.SampleDocument())
	store.SetEntryData("proj-1", types.ProjectData{Name: "renamed"})
	store.AddEntry("section-achievements", types.Entry{ID: "ach-2", Data: types.AchievementData{Description: "Award"}})
	store.RemoveBullet("exp-1", "exp-1-bp-2")

	raw, err := json.Marshal(store)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"entryDataOverrides":{"proj-1":{"type":"projects"`)

	var decoded Store
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, store, &decoded)
}

func TestStoreJSON_SparseInputIsUsable(t *testing.T) {
	var decoded Store
	require.NoError(t, json.Unmarshal([]byte(`{"enabledOverrides":{"a":false}}`), &decoded))

	decoded.SetBulletText("b1", "x")
	decoded.AddEntry("s1", types.Entry{ID: "e"})
	assert.Equal(t, "x", decoded.TextOverrides["b1"])
	assert.NotNil(t, decoded.DeletedBulletIDs)
}
