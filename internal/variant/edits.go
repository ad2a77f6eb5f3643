package variant

import (
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-variants/internal/types"
)

// edit runs fn against one variant under the write lock
func (r *Registry) edit(id string, op string, fn func(v *Variant) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v := r.find(id)
	if v == nil {
		return &NotFoundError{ID: id}
	}
	if err := fn(v); err != nil {
		return err
	}
	r.logger.Debug("variant edited", zap.String("variant_id", id), zap.String("op", op))
	return nil
}

// EditActive runs fn with the active variant id. With the master selected it
// does nothing: the master is read-only.
func (r *Registry) EditActive(fn func(variantID string) error) error {
	id := r.ActiveID()
	if id == "" {
		return nil
	}
	return fn(id)
}

// SetEnabled overrides the enabled flag of a section, entry or bullet
func (r *Registry) SetEnabled(variantID, entityID string, enabled bool) error {
	return r.edit(variantID, "set_enabled", func(v *Variant) error {
		v.Overrides.SetEnabled(entityID, enabled)
		return nil
	})
}

// ToggleEnabled flips an entity's flag and returns the new value. Without an
// override the current value is the master's (or the addition's) own flag.
func (r *Registry) ToggleEnabled(variantID, entityID string) (bool, error) {
	var enabled bool
	err := r.edit(variantID, "toggle_enabled", func(v *Variant) error {
		enabled = v.Overrides.Toggle(entityID, r.defaultEnabled(v, entityID))
		return nil
	})
	return enabled, err
}

// SetBulletText rewrites a bullet's text in one variant
func (r *Registry) SetBulletText(variantID, bulletID, text string) error {
	return r.edit(variantID, "set_bullet_text", func(v *Variant) error {
		v.Overrides.SetBulletText(bulletID, text)
		return nil
	})
}

// SetEntryData replaces an entry's payload. The payload kind must match the
// kind of the section holding the entry.
func (r *Registry) SetEntryData(variantID, entryID string, data types.EntryData) error {
	if data == nil {
		return &InvalidEditError{Message: "entry " + entryID + " has no data"}
	}
	return r.edit(variantID, "set_entry_data", func(v *Variant) error {
		if section := r.sectionOfEntry(v, entryID); section != nil {
			if err := types.CheckEntryKind(section, entryID, data); err != nil {
				return err
			}
		}
		v.Overrides.SetEntryData(entryID, data)
		return nil
	})
}

// AddEntry appends a variant-only entry to a section and returns its id.
// Empty entry and bullet ids are generated. An id already used by the master
// (deleted ones included) or by this variant's additions is rejected.
func (r *Registry) AddEntry(variantID, sectionID string, entry types.Entry) (string, error) {
	if entry.Data == nil {
		return "", &InvalidEditError{Message: "new entry has no data"}
	}
	entry = entry.Clone()
	err := r.edit(variantID, "add_entry", func(v *Variant) error {
		if section := r.master.Section(sectionID); section != nil {
			if err := types.CheckEntryKind(section, entry.ID, entry.Data); err != nil {
				return err
			}
		}
		if entry.ID == "" {
			entry.ID = r.newID()
		}
		for i := range entry.BulletPoints {
			if entry.BulletPoints[i].ID == "" {
				entry.BulletPoints[i].ID = r.newID()
			}
		}
		seen := map[string]struct{}{}
		for _, id := range newEntryIDs(entry) {
			if _, dup := seen[id]; dup || r.idInUse(v, id) {
				return &InvalidEditError{Message: fmt.Sprintf("id %q is already in use", id)}
			}
			seen[id] = struct{}{}
		}
		v.Overrides.AddEntry(sectionID, entry)
		return nil
	})
	if err != nil {
		return "", err
	}
	return entry.ID, nil
}

// RemoveEntry drops an entry from one variant
func (r *Registry) RemoveEntry(variantID, entryID string) error {
	return r.edit(variantID, "remove_entry", func(v *Variant) error {
		v.Overrides.RemoveEntry(entryID)
		return nil
	})
}

// AddBullet appends a variant-only bullet to an entry and returns its id.
// Ids follow the same uniqueness rule as AddEntry.
func (r *Registry) AddBullet(variantID, entryID string, bullet types.BulletPoint) (string, error) {
	err := r.edit(variantID, "add_bullet", func(v *Variant) error {
		if bullet.ID == "" {
			bullet.ID = r.newID()
		}
		if r.idInUse(v, bullet.ID) {
			return &InvalidEditError{Message: fmt.Sprintf("id %q is already in use", bullet.ID)}
		}
		v.Overrides.AddBullet(entryID, bullet)
		return nil
	})
	if err != nil {
		return "", err
	}
	return bullet.ID, nil
}

// RemoveBullet drops a bullet from one variant
func (r *Registry) RemoveBullet(variantID, entryID, bulletID string) error {
	return r.edit(variantID, "remove_bullet", func(v *Variant) error {
		v.Overrides.RemoveBullet(entryID, bulletID)
		return nil
	})
}

// SetSectionOrder replaces the section sequence of one variant
func (r *Registry) SetSectionOrder(variantID string, ids []string) error {
	return r.edit(variantID, "set_section_order", func(v *Variant) error {
		v.Overrides.SetSectionOrder(ids)
		return nil
	})
}

// SetEntryOrder replaces the entry sequence of one section in one variant
func (r *Registry) SetEntryOrder(variantID, sectionID string, ids []string) error {
	return r.edit(variantID, "set_entry_order", func(v *Variant) error {
		v.Overrides.SetEntryOrder(sectionID, ids)
		return nil
	})
}

// SetJobDescription records the posting a variant is tailored for
func (r *Registry) SetJobDescription(variantID, description, url string) error {
	return r.edit(variantID, "set_job_description", func(v *Variant) error {
		v.JobDescription = description
		v.JobURL = url
		return nil
	})
}

// Rename changes a variant's display name
func (r *Registry) Rename(variantID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	return r.edit(variantID, "rename", func(v *Variant) error {
		v.Name = name
		return nil
	})
}

// ApplySuggestions writes a batch of enabled flags, typically from the
// relevance matcher, into one variant in a single step.
func (r *Registry) ApplySuggestions(variantID string, suggestions map[string]bool) error {
	return r.edit(variantID, "apply_suggestions", func(v *Variant) error {
		for id, enabled := range suggestions {
			v.Overrides.SetEnabled(id, enabled)
		}
		r.logger.Info("suggestions applied", zap.String("variant_id", variantID), zap.Int("count", len(suggestions)))
		return nil
	})
}

// sectionOfEntry resolves the section holding a master or variant-only entry
func (r *Registry) sectionOfEntry(v *Variant, entryID string) *types.Section {
	if section, _ := r.master.FindEntry(entryID); section != nil {
		return section
	}
	if sectionID, entry := v.Overrides.FindAdditionalEntry(entryID); entry != nil {
		return r.master.Section(sectionID)
	}
	return nil
}

// idInUse reports whether id names a section, entry or bullet of the master
// or of v's additions. Master ids stay taken after deletion so a removed
// entity cannot come back under its old id.
func (r *Registry) idInUse(v *Variant, id string) bool {
	if r.master.Section(id) != nil {
		return true
	}
	if _, entry := r.master.FindEntry(id); entry != nil {
		return true
	}
	if _, bullet := r.master.FindBullet(id); bullet != nil {
		return true
	}
	for _, entries := range v.Overrides.AdditionalEntries {
		for _, e := range entries {
			if slices.Contains(newEntryIDs(e), id) {
				return true
			}
		}
	}
	for _, bullets := range v.Overrides.AdditionalBullets {
		for _, b := range bullets {
			if b.ID == id {
				return true
			}
		}
	}
	return false
}

// newEntryIDs lists an entry's id followed by its bullet ids
func newEntryIDs(e types.Entry) []string {
	ids := make([]string, 0, len(e.BulletPoints)+1)
	ids = append(ids, e.ID)
	for _, b := range e.BulletPoints {
		ids = append(ids, b.ID)
	}
	return ids
}

// defaultEnabled is the flag an entity has before any override
func (r *Registry) defaultEnabled(v *Variant, entityID string) bool {
	if section := r.master.Section(entityID); section != nil {
		return section.Enabled
	}
	if _, entry := r.master.FindEntry(entityID); entry != nil {
		return entry.Enabled
	}
	if _, bullet := r.master.FindBullet(entityID); bullet != nil {
		return bullet.Enabled
	}
	if _, entry := v.Overrides.FindAdditionalEntry(entityID); entry != nil {
		return entry.Enabled
	}
	for _, bullets := range v.Overrides.AdditionalBullets {
		for _, b := range bullets {
			if b.ID == entityID {
				return b.Enabled
			}
		}
	}
	return true
}
