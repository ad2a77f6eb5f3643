// Package merge computes the effective résumé of a variant from the master and its override store.
package merge

import (
	"github.com/jonathan/resume-variants/internal/overrides"
	"github.com/jonathan/resume-variants/internal/types"
)

// Merge returns the effective document for store. A nil store means "no
// variant selected" and yields a deep copy of master. Master and store are
// never modified and the result shares no mutable state with either.
// Ids in the store that match nothing are ignored.
//
// Variant-only bullets keep their own text (edits rewrite them in place) but,
// unlike a plain append, still take their flag from EnabledOverrides so that
// toggling a bullet behaves the same whether it came from the master or not.
func Merge(master *types.Document, store *overrides.Store) *types.Document {
	out := master.Clone()
	if out == nil || store == nil {
		return out
	}

	deletedEntries := toSet(store.DeletedEntryIDs)
	deletedBullets := toSet(store.DeletedBulletIDs)

	for i := range out.Sections {
		section := &out.Sections[i]
		if enabled, ok := store.EnabledOverrides[section.ID]; ok {
			section.Enabled = enabled
		}

		section.Entries = filterEntries(section.Entries, deletedEntries)

		// additions go in before per-entry processing so they get the same treatment
		if extra := store.AdditionalEntries[section.ID]; len(extra) > 0 {
			section.Entries = append(section.Entries, types.CloneEntries(extra)...)
		}

		for j := range section.Entries {
			applyEntry(&section.Entries[j], store, deletedBullets)
		}
	}

	out.Sections = reorder(out.Sections, store.SectionOrder, func(s types.Section) string { return s.ID })

	for i := range out.Sections {
		section := &out.Sections[i]
		ids := store.EntryOrder[section.ID]
		if len(ids) == 0 {
			continue
		}
		section.Entries = reorder(section.Entries, ids, func(e types.Entry) string { return e.ID })
		for j := range section.Entries {
			section.Entries[j].DisplayOrder = j
		}
	}

	return out
}

func applyEntry(entry *types.Entry, store *overrides.Store, deletedBullets map[string]struct{}) {
	if enabled, ok := store.EnabledOverrides[entry.ID]; ok {
		entry.Enabled = enabled
	}
	if data, ok := store.EntryDataOverrides[entry.ID]; ok && data != nil {
		entry.Data = data
	}

	kept := entry.BulletPoints[:0]
	for _, bullet := range entry.BulletPoints {
		if _, gone := deletedBullets[bullet.ID]; gone {
			continue
		}
		if enabled, ok := store.EnabledOverrides[bullet.ID]; ok {
			bullet.Enabled = enabled
		}
		if text, ok := store.TextOverrides[bullet.ID]; ok {
			bullet.Text = text
		}
		kept = append(kept, bullet)
	}
	entry.BulletPoints = kept

	// inserted bullets keep their own text but still honor enabled toggles
	for _, bullet := range store.AdditionalBullets[entry.ID] {
		if enabled, ok := store.EnabledOverrides[bullet.ID]; ok {
			bullet.Enabled = enabled
		}
		entry.BulletPoints = append(entry.BulletPoints, bullet)
	}
}

func filterEntries(entries []types.Entry, deleted map[string]struct{}) []types.Entry {
	if len(deleted) == 0 {
		return entries
	}
	kept := entries[:0]
	for _, entry := range entries {
		if _, gone := deleted[entry.ID]; !gone {
			kept = append(kept, entry)
		}
	}
	return kept
}

// reorder puts the items named in order first, in that order, followed by
// the rest in their previous relative order. Unknown and repeated ids are skipped.
func reorder[T any](items []T, order []string, id func(T) string) []T {
	if len(order) == 0 || len(items) == 0 {
		return items
	}

	index := make(map[string]int, len(items))
	for i, item := range items {
		index[id(item)] = i
	}

	used := make([]bool, len(items))
	out := make([]T, 0, len(items))
	for _, want := range order {
		i, ok := index[want]
		if !ok || used[i] {
			continue
		}
		used[i] = true
		out = append(out, items[i])
	}
	for i, item := range items {
		if !used[i] {
			out = append(out, item)
		}
	}
	return out
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
