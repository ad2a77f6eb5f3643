// Package types provides type definitions for the résumé document model shared by every other package.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// KindMismatchError reports an entry payload whose kind differs from its section's kind
type KindMismatchError struct {
	EntryID     string
	SectionID   string
	SectionKind SectionKind
	DataKind    SectionKind
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("entry %s: data kind %q does not match section %s kind %q",
		e.EntryID, e.DataKind, e.SectionID, e.SectionKind)
}

// DocumentError collects every structural problem found in a document
type DocumentError struct {
	Problems []string
}

func (e *DocumentError) Error() string {
	var sb strings.Builder
	sb.WriteString("invalid document:\n")
	for i, p := range e.Problems {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, p))
	}
	return sb.String()
}

// CheckEntryKind returns a KindMismatchError when data does not belong in section
func CheckEntryKind(section *Section, entryID string, data EntryData) error {
	if data == nil {
		return &KindMismatchError{EntryID: entryID, SectionID: section.ID, SectionKind: section.Kind}
	}
	if data.Kind() != section.Kind {
		return &KindMismatchError{
			EntryID:     entryID,
			SectionID:   section.ID,
			SectionKind: section.Kind,
			DataKind:    data.Kind(),
		}
	}
	return nil
}

// ValidateContact checks the contact block with struct tags
func ValidateContact(c ContactInfo) error {
	validate := validator.New()
	return validate.Struct(c)
}

// ValidateDocument checks the identity and kind invariants of a document:
// ids are unique across sections, entries and bullets, kinds are known,
// and every entry's payload matches its section's kind.
func ValidateDocument(d *Document) error {
	if d == nil {
		return &DocumentError{Problems: []string{"document is nil"}}
	}

	var problems []string
	seen := make(map[string]string)
	claim := func(id, what string) {
		if id == "" {
			problems = append(problems, fmt.Sprintf("%s has an empty id", what))
			return
		}
		if prev, ok := seen[id]; ok {
			problems = append(problems, fmt.Sprintf("duplicate id %q (%s and %s)", id, prev, what))
			return
		}
		seen[id] = what
	}

	if err := ValidateContact(d.Contact); err != nil {
		problems = append(problems, fmt.Sprintf("contact info: %v", err))
	}

	for i := range d.Sections {
		section := &d.Sections[i]
		claim(section.ID, "section")
		if !section.Kind.Valid() {
			problems = append(problems, fmt.Sprintf("section %s has unknown kind %q", section.ID, section.Kind))
		}
		for j := range section.Entries {
			entry := &section.Entries[j]
			claim(entry.ID, "entry in "+section.ID)
			if err := CheckEntryKind(section, entry.ID, entry.Data); err != nil {
				problems = append(problems, err.Error())
			}
			for _, bullet := range entry.BulletPoints {
				claim(bullet.ID, "bullet in "+entry.ID)
			}
		}
	}

	if len(problems) > 0 {
		return &DocumentError{Problems: problems}
	}
	return nil
}
