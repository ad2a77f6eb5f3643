package overrides

import (
	"slices"

	"github.com/jonathan/resume-variants/internal/types"
)

// SetEnabled overrides the enabled flag of any section, entry or bullet
func (s *Store) SetEnabled(entityID string, enabled bool) {
	s.ensure()
	s.EnabledOverrides[entityID] = enabled
}

// Toggle flips the effective flag of an entity. The current value is the
// override when present, else masterDefault. It returns the new value.
func (s *Store) Toggle(entityID string, masterDefault bool) bool {
	s.ensure()
	current, ok := s.EnabledOverrides[entityID]
	if !ok {
		current = masterDefault
	}
	s.EnabledOverrides[entityID] = !current
	return !current
}

// SetBulletText rewrites a bullet. Bullets added by this variant are edited
// in place; master bullets get a text override. Empty text is stored as is.
func (s *Store) SetBulletText(bulletID, text string) {
	s.ensure()
	if entryID, i := s.findAdditionalBullet(bulletID); i >= 0 {
		s.AdditionalBullets[entryID][i].Text = text
		return
	}
	s.TextOverrides[bulletID] = text
}

// SetEntryData replaces an entry's payload. Entries added by this variant
// are edited in place; master entries get a full-payload override.
func (s *Store) SetEntryData(entryID string, data types.EntryData) {
	s.ensure()
	if _, entry := s.FindAdditionalEntry(entryID); entry != nil {
		entry.Data = data
		return
	}
	s.EntryDataOverrides[entryID] = data
}

// AddEntry appends a variant-only entry to a section and enables it
func (s *Store) AddEntry(sectionID string, entry types.Entry) {
	s.ensure()
	s.AdditionalEntries[sectionID] = append(s.AdditionalEntries[sectionID], entry.Clone())
	s.EnabledOverrides[entry.ID] = true
}

// RemoveEntry drops a variant-only entry outright, or suppresses a master entry
func (s *Store) RemoveEntry(entryID string) {
	s.ensure()
	if sectionID, entry := s.FindAdditionalEntry(entryID); entry != nil {
		s.AdditionalEntries[sectionID] = slices.DeleteFunc(s.AdditionalEntries[sectionID], func(e types.Entry) bool {
			return e.ID == entryID
		})
		if len(s.AdditionalEntries[sectionID]) == 0 {
			delete(s.AdditionalEntries, sectionID)
		}
		delete(s.AdditionalBullets, entryID)
		delete(s.EnabledOverrides, entryID)
		return
	}
	if !s.IsEntryDeleted(entryID) {
		s.DeletedEntryIDs = append(s.DeletedEntryIDs, entryID)
	}
}

// AddBullet appends a variant-only bullet to an entry and enables it.
// The entry may come from the master or from this variant.
func (s *Store) AddBullet(entryID string, bullet types.BulletPoint) {
	s.ensure()
	s.AdditionalBullets[entryID] = append(s.AdditionalBullets[entryID], bullet)
	s.EnabledOverrides[bullet.ID] = true
}

// RemoveBullet drops a variant-only bullet outright, or suppresses a master bullet
func (s *Store) RemoveBullet(entryID, bulletID string) {
	s.ensure()
	if s.IsAdditionalBullet(entryID, bulletID) {
		s.AdditionalBullets[entryID] = slices.DeleteFunc(s.AdditionalBullets[entryID], func(b types.BulletPoint) bool {
			return b.ID == bulletID
		})
		if len(s.AdditionalBullets[entryID]) == 0 {
			delete(s.AdditionalBullets, entryID)
		}
		delete(s.EnabledOverrides, bulletID)
		return
	}
	if !s.IsBulletDeleted(bulletID) {
		s.DeletedBulletIDs = append(s.DeletedBulletIDs, bulletID)
	}
}

// SetSectionOrder replaces the variant's section sequence
func (s *Store) SetSectionOrder(ids []string) {
	s.SectionOrder = slices.Clone(ids)
	if s.SectionOrder == nil {
		s.SectionOrder = []string{}
	}
}

// SetEntryOrder replaces the entry sequence of one section
func (s *Store) SetEntryOrder(sectionID string, ids []string) {
	s.ensure()
	s.EntryOrder[sectionID] = slices.Clone(ids)
}
