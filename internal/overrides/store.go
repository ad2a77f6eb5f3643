// Package overrides holds the sparse, id-keyed edit set that turns the master résumé into one variant.
package overrides

import (
	"slices"

	"github.com/jonathan/resume-variants/internal/types"
)

// Store is one variant's deviations from the master. Every map is keyed by
// entity id, never by position, so it survives reorderings of the master.
type Store struct {
	EnabledOverrides   map[string]bool                `json:"enabledOverrides"`
	TextOverrides      map[string]string              `json:"textOverrides"`
	EntryDataOverrides map[string]types.EntryData     `json:"entryDataOverrides"`
	SectionOrder       []string                       `json:"sectionOrder"`
	EntryOrder         map[string][]string            `json:"entryOrder"`
	AdditionalEntries  map[string][]types.Entry       `json:"additionalEntries"`
	AdditionalBullets  map[string][]types.BulletPoint `json:"additionalBullets"`
	DeletedEntryIDs    []string                       `json:"deletedEntryIds"`
	DeletedBulletIDs   []string                       `json:"deletedBulletIds"`
}

// Empty returns a store with every collection allocated and nothing in it
func Empty() *Store {
	return &Store{
		EnabledOverrides:   make(map[string]bool),
		TextOverrides:      make(map[string]string),
		EntryDataOverrides: make(map[string]types.EntryData),
		SectionOrder:       []string{},
		EntryOrder:         make(map[string][]string),
		AdditionalEntries:  make(map[string][]types.Entry),
		AdditionalBullets:  make(map[string][]types.BulletPoint),
		DeletedEntryIDs:    []string{},
		DeletedBulletIDs:   []string{},
	}
}

// NewStore creates the store for a fresh variant. The enabled flag of every
// master entity is snapshotted, and the section order is the master's current one.
func NewStore(master *types.Document) *Store {
	s := Empty()
	if master == nil {
		return s
	}
	s.EnabledOverrides = master.EnabledStates()
	s.SectionOrder = master.SectionIDs()
	return s
}

// ensure allocates any collection left nil, e.g. by a decoder fed an older export
func (s *Store) ensure() {
	if s.EnabledOverrides == nil {
		s.EnabledOverrides = make(map[string]bool)
	}
	if s.TextOverrides == nil {
		s.TextOverrides = make(map[string]string)
	}
	if s.EntryDataOverrides == nil {
		s.EntryDataOverrides = make(map[string]types.EntryData)
	}
	if s.EntryOrder == nil {
		s.EntryOrder = make(map[string][]string)
	}
	if s.AdditionalEntries == nil {
		s.AdditionalEntries = make(map[string][]types.Entry)
	}
	if s.AdditionalBullets == nil {
		s.AdditionalBullets = make(map[string][]types.BulletPoint)
	}
}

// Clone returns a deep copy of the store
func (s *Store) Clone() *Store {
	if s == nil {
		return nil
	}
	out := Empty()
	for k, v := range s.EnabledOverrides {
		out.EnabledOverrides[k] = v
	}
	for k, v := range s.TextOverrides {
		out.TextOverrides[k] = v
	}
	for k, v := range s.EntryDataOverrides {
		out.EntryDataOverrides[k] = v
	}
	out.SectionOrder = append(out.SectionOrder, s.SectionOrder...)
	for k, v := range s.EntryOrder {
		out.EntryOrder[k] = slices.Clone(v)
	}
	for k, v := range s.AdditionalEntries {
		out.AdditionalEntries[k] = types.CloneEntries(v)
	}
	for k, v := range s.AdditionalBullets {
		out.AdditionalBullets[k] = types.CloneBullets(v)
	}
	out.DeletedEntryIDs = append(out.DeletedEntryIDs, s.DeletedEntryIDs...)
	out.DeletedBulletIDs = append(out.DeletedBulletIDs, s.DeletedBulletIDs...)
	return out
}

// FindAdditionalEntry returns the section id and entry for an entry introduced by this variant
func (s *Store) FindAdditionalEntry(entryID string) (string, *types.Entry) {
	for sectionID, entries := range s.AdditionalEntries {
		for i := range entries {
			if entries[i].ID == entryID {
				return sectionID, &entries[i]
			}
		}
	}
	return "", nil
}

// IsAdditionalEntry reports whether entryID was introduced by this variant
func (s *Store) IsAdditionalEntry(entryID string) bool {
	_, entry := s.FindAdditionalEntry(entryID)
	return entry != nil
}

// IsAdditionalBullet reports whether bulletID was added to entryID by this variant
func (s *Store) IsAdditionalBullet(entryID, bulletID string) bool {
	return slices.ContainsFunc(s.AdditionalBullets[entryID], func(b types.BulletPoint) bool {
		return b.ID == bulletID
	})
}

// findAdditionalBullet searches every entry's additions for bulletID
func (s *Store) findAdditionalBullet(bulletID string) (string, int) {
	for entryID, bullets := range s.AdditionalBullets {
		for i := range bullets {
			if bullets[i].ID == bulletID {
				return entryID, i
			}
		}
	}
	return "", -1
}

// IsEntryDeleted reports whether a master entry is suppressed
func (s *Store) IsEntryDeleted(entryID string) bool {
	return slices.Contains(s.DeletedEntryIDs, entryID)
}

// IsBulletDeleted reports whether a master bullet is suppressed
func (s *Store) IsBulletDeleted(bulletID string) bool {
	return slices.Contains(s.DeletedBulletIDs, bulletID)
}
