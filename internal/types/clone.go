// Package types provides type definitions for the résumé document model shared by every other package.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Entry payloads hold only strings, so copying the interface value is a full copy.

// Clone returns a deep copy of the document
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{
		Meta:    d.Meta,
		Contact: d.Contact,
	}
	if d.Sections != nil {
		out.Sections = make([]Section, len(d.Sections))
		for i := range d.Sections {
			out.Sections[i] = d.Sections[i].Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the section
func (s Section) Clone() Section {
	out := s
	out.Entries = CloneEntries(s.Entries)
	return out
}

// Clone returns a deep copy of the entry
func (e Entry) Clone() Entry {
	out := e
	out.BulletPoints = CloneBullets(e.BulletPoints)
	return out
}

// CloneEntries deep-copies a slice of entries, preserving nil
func CloneEntries(entries []Entry) []Entry {
	if entries == nil {
		return nil
	}
	out := make([]Entry, len(entries))
	for i := range entries {
		out[i] = entries[i].Clone()
	}
	return out
}

// CloneBullets copies a slice of bullets, preserving nil
func CloneBullets(bullets []BulletPoint) []BulletPoint {
	if bullets == nil {
		return nil
	}
	out := make([]BulletPoint, len(bullets))
	copy(out, bullets)
	return out
}
