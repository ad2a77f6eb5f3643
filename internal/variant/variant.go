package variant

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonathan/resume-variants/internal/overrides"
	"github.com/jonathan/resume-variants/internal/types"
)

// Variant is a named view of the master backed by one override store
type Variant struct {
	ID             string
	Name           string
	CreatedAt      time.Time
	JobDescription string
	JobURL         string
	Overrides      *overrides.Store
}

// Summary is the listing form of a variant
type Summary struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	CreatedAt         time.Time `json:"createdAt"`
	HasJobDescription bool      `json:"hasJobDescription"`
	Active            bool      `json:"active"`
}

// Workspace is everything the registry holds, in persisted form
type Workspace struct {
	Master   *types.Document
	Variants []Variant
	ActiveID string
}

// Clone returns a deep copy of v
func (v Variant) Clone() Variant {
	v.Overrides = v.Overrides.Clone()
	return v
}

type variantHeader struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"createdAt"`
	JobDescription string    `json:"jobDescription,omitempty"`
	JobURL         string    `json:"jobUrl,omitempty"`
}

// MarshalJSON writes the header fields and the override store as one flat
// object, the shape older exports use for a tailored config.
func (v Variant) MarshalJSON() ([]byte, error) {
	store := v.Overrides
	if store == nil {
		store = overrides.Empty()
	}
	body, err := json.Marshal(store)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal overrides of %s: %w", v.ID, err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	head, err := json.Marshal(variantHeader{
		ID:             v.ID,
		Name:           v.Name,
		CreatedAt:      v.CreatedAt,
		JobDescription: v.JobDescription,
		JobURL:         v.JobURL,
	})
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(head, &fields); err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}

// UnmarshalJSON reads the flat form written by MarshalJSON
func (v *Variant) UnmarshalJSON(b []byte) error {
	var head variantHeader
	if err := json.Unmarshal(b, &head); err != nil {
		return err
	}
	store := overrides.Empty()
	if err := json.Unmarshal(b, store); err != nil {
		return fmt.Errorf("failed to read overrides of %s: %w", head.ID, err)
	}
	*v = Variant{
		ID:             head.ID,
		Name:           head.Name,
		CreatedAt:      head.CreatedAt,
		JobDescription: head.JobDescription,
		JobURL:         head.JobURL,
		Overrides:      store,
	}
	return nil
}
