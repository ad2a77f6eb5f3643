package merge

import (
	"sort"

	"github.com/jonathan/resume-variants/internal/overrides"
	"github.com/jonathan/resume-variants/internal/types"
)

// DriftField names the part of a store that holds a stale reference
type DriftField string

// Store fields that can drift away from the master
const (
	DriftEnabled           DriftField = "enabledOverrides"
	DriftText              DriftField = "textOverrides"
	DriftEntryData         DriftField = "entryDataOverrides"
	DriftSectionOrder      DriftField = "sectionOrder"
	DriftEntryOrder        DriftField = "entryOrder"
	DriftAdditionalEntries DriftField = "additionalEntries"
	DriftAdditionalBullets DriftField = "additionalBullets"
	DriftDeletedEntries    DriftField = "deletedEntryIds"
	DriftDeletedBullets    DriftField = "deletedBulletIds"
	DriftKindMismatch      DriftField = "kindMismatch"
)

// Drift is one override that no longer lines up with the master.
// Merge ignores all of them; Lint only reports.
type Drift struct {
	Field    DriftField `json:"field"`
	EntityID string     `json:"entityId"`
	Message  string     `json:"message"`
}

type idIndex struct {
	sections map[string]*types.Section
	entries  map[string]types.SectionKind
	bullets  map[string]struct{}
}

// Lint reports every reference in store that points at nothing in master
// (or in the store's own additions), plus entry-data overrides whose kind no
// longer matches the entry's section. The result is sorted for stable output.
func Lint(master *types.Document, store *overrides.Store) []Drift {
	if master == nil || store == nil {
		return nil
	}

	idx := idIndex{
		sections: make(map[string]*types.Section),
		entries:  make(map[string]types.SectionKind),
		bullets:  make(map[string]struct{}),
	}
	for i := range master.Sections {
		section := &master.Sections[i]
		idx.sections[section.ID] = section
		for _, entry := range section.Entries {
			idx.entries[entry.ID] = section.Kind
			for _, bullet := range entry.BulletPoints {
				idx.bullets[bullet.ID] = struct{}{}
			}
		}
	}
	masterEntries := make(map[string]struct{}, len(idx.entries))
	for id := range idx.entries {
		masterEntries[id] = struct{}{}
	}
	masterBullets := make(map[string]struct{}, len(idx.bullets))
	for id := range idx.bullets {
		masterBullets[id] = struct{}{}
	}

	var drifts []Drift
	report := func(field DriftField, id, msg string) {
		drifts = append(drifts, Drift{Field: field, EntityID: id, Message: msg})
	}

	for sectionID, entries := range store.AdditionalEntries {
		section, ok := idx.sections[sectionID]
		if !ok {
			for _, e := range entries {
				report(DriftAdditionalEntries, e.ID, "added to unknown section "+sectionID)
			}
			continue
		}
		for _, e := range entries {
			idx.entries[e.ID] = section.Kind
			for _, b := range e.BulletPoints {
				idx.bullets[b.ID] = struct{}{}
			}
		}
	}
	for entryID, bullets := range store.AdditionalBullets {
		if _, ok := idx.entries[entryID]; !ok {
			for _, b := range bullets {
				report(DriftAdditionalBullets, b.ID, "added to unknown entry "+entryID)
			}
			continue
		}
		for _, b := range bullets {
			idx.bullets[b.ID] = struct{}{}
		}
	}

	for id := range store.EnabledOverrides {
		if !idx.known(id) {
			report(DriftEnabled, id, "no section, entry or bullet with this id")
		}
	}
	for id := range store.TextOverrides {
		if _, ok := masterBullets[id]; !ok {
			report(DriftText, id, "no master bullet with this id")
		}
	}
	for id, data := range store.EntryDataOverrides {
		if _, ok := masterEntries[id]; !ok {
			report(DriftEntryData, id, "no master entry with this id")
			continue
		}
		if data != nil && data.Kind() != idx.entries[id] {
			report(DriftKindMismatch, id, "override kind "+string(data.Kind())+" differs from section kind "+string(idx.entries[id]))
		}
	}
	for _, id := range store.SectionOrder {
		if _, ok := idx.sections[id]; !ok {
			report(DriftSectionOrder, id, "no section with this id")
		}
	}
	for sectionID, ids := range store.EntryOrder {
		if _, ok := idx.sections[sectionID]; !ok {
			report(DriftEntryOrder, sectionID, "no section with this id")
			continue
		}
		for _, id := range ids {
			if _, ok := idx.entries[id]; !ok {
				report(DriftEntryOrder, id, "no entry with this id in "+sectionID)
			}
		}
	}
	for _, id := range store.DeletedEntryIDs {
		if _, ok := masterEntries[id]; !ok {
			report(DriftDeletedEntries, id, "no master entry with this id")
		}
	}
	for _, id := range store.DeletedBulletIDs {
		if _, ok := masterBullets[id]; !ok {
			report(DriftDeletedBullets, id, "no master bullet with this id")
		}
	}

	sort.Slice(drifts, func(i, j int) bool {
		if drifts[i].Field != drifts[j].Field {
			return drifts[i].Field < drifts[j].Field
		}
		return drifts[i].EntityID < drifts[j].EntityID
	})
	return drifts
}

func (x idIndex) known(id string) bool {
	if _, ok := x.sections[id]; ok {
		return true
	}
	if _, ok := x.entries[id]; ok {
		return true
	}
	_, ok := x.bullets[id]
	return ok
}
