package overrides

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-variants/internal/types"
)

type storeAlias Store

// storeJSON shadows the interface-typed map with raw payloads
type storeJSON struct {
	*storeAlias
	EntryDataOverrides map[string]json.RawMessage `json:"entryDataOverrides"`
}

// MarshalJSON implements json.Marshaler
func (s *Store) MarshalJSON() ([]byte, error) {
	raw := make(map[string]json.RawMessage, len(s.EntryDataOverrides))
	for id, data := range s.EntryDataOverrides {
		b, err := types.MarshalEntryData(data)
		if err != nil {
			return nil, fmt.Errorf("entry data override %s: %w", id, err)
		}
		raw[id] = b
	}
	return json.Marshal(storeJSON{storeAlias: (*storeAlias)(s), EntryDataOverrides: raw})
}

// UnmarshalJSON implements json.Unmarshaler
func (s *Store) UnmarshalJSON(b []byte) error {
	aux := storeJSON{storeAlias: (*storeAlias)(s)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	s.EntryDataOverrides = make(map[string]types.EntryData, len(aux.EntryDataOverrides))
	for id, raw := range aux.EntryDataOverrides {
		data, err := types.UnmarshalEntryData(raw)
		if err != nil {
			return fmt.Errorf("entry data override %s: %w", id, err)
		}
		if data != nil {
			s.EntryDataOverrides[id] = data
		}
	}
	s.ensure()
	if s.SectionOrder == nil {
		s.SectionOrder = []string{}
	}
	if s.DeletedEntryIDs == nil {
		s.DeletedEntryIDs = []string{}
	}
	if s.DeletedBulletIDs == nil {
		s.DeletedBulletIDs = []string{}
	}
	return nil
}
