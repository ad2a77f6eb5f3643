// Package types provides type definitions for the résumé document model shared by every other package.
//
//nolint:revive // types is a standard Go package name pattern
package types

// EntrySummary is the read-only, flattened view of one entry handed to the relevance matcher
type EntrySummary struct {
	EntryID string          `json:"id"`
	Kind    SectionKind     `json:"type"`
	Summary string          `json:"summary"`
	Bullets []BulletSummary `json:"bullets"`
}

// BulletSummary is a bullet id with plain text
type BulletSummary struct {
	BulletID string `json:"id"`
	Text     string `json:"text"`
}

// MatchResult is the relevance verdict for one entry or bullet id
type MatchResult struct {
	EntityID         string  `json:"entityId"`
	RelevanceScore   float64 `json:"relevanceScore"`
	Reason           string  `json:"reason"`
	SuggestedEnabled bool    `json:"suggestedEnabled"`
}

// MatchResponse is the full answer of a relevance pass
type MatchResponse struct {
	Results    []MatchResult `json:"results"`
	Summary    string        `json:"summary"`
	TokensUsed int32         `json:"tokensUsed"`
}
