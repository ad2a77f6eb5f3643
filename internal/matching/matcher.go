package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-variants/internal/llm"
	"github.com/jonathan/resume-variants/internal/prompts"
	"github.com/jonathan/resume-variants/internal/types"
)

const promptFile = "matching.json"

// DefaultMaxPages is the page budget the prompt asks the model to aim for
const DefaultMaxPages = 1

// Matcher asks an LLM which entries and bullets fit a job
type Matcher struct {
	client   llm.Client
	tier     llm.ModelTier
	maxPages int
	logger   *zap.Logger
}

// Option configures a Matcher
type Option func(*Matcher)

// WithTier selects the model tier; the default is standard
func WithTier(tier llm.ModelTier) Option {
	return func(m *Matcher) { m.tier = tier }
}

// WithMaxPages sets the page budget quoted in the prompt
func WithMaxPages(pages int) Option {
	return func(m *Matcher) {
		if pages > 0 {
			m.maxPages = pages
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(m *Matcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewMatcher creates a matcher backed by client
func NewMatcher(client llm.Client, opts ...Option) *Matcher {
	m := &Matcher{
		client:   client,
		tier:     llm.TierStandard,
		maxPages: DefaultMaxPages,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// suggestion is one element of the model's "suggestions" array
type suggestion struct {
	ID               string       `json:"id"`
	RelevanceScore   lenientFloat `json:"relevanceScore"`
	Reason           string       `json:"reason"`
	SuggestedEnabled bool         `json:"suggestedEnabled"`
}

type matchPayload struct {
	Suggestions []suggestion `json:"suggestions"`
	Summary     string       `json:"summary"`
}

// Match scores every entry and bullet of doc against jobDescription. Results
// for ids that do not exist in doc are dropped and scores are clamped to [0, 1].
func (m *Matcher) Match(ctx context.Context, doc *types.Document, jobDescription string) (*types.MatchResponse, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, ErrEmptyJobDescription
	}
	if m.client == nil {
		return nil, &Error{Message: "no LLM client configured"}
	}

	entries := Flatten(doc)
	system, user, err := m.buildPrompts(jobDescription, entries)
	if err != nil {
		return nil, err
	}

	resp, err := m.client.Generate(ctx, llm.Request{System: system, Prompt: user, Tier: m.tier, JSON: true})
	if err != nil {
		return nil, &Error{Message: "failed to generate suggestions", Cause: err}
	}

	var payload matchPayload
	if err := llm.DecodeJSON(resp.Text, &payload); err != nil {
		return nil, &Error{Message: "failed to parse suggestions", Cause: err}
	}

	valid := validIDs(entries)
	results := make([]types.MatchResult, 0, len(payload.Suggestions))
	for _, s := range payload.Suggestions {
		if _, ok := valid[s.ID]; !ok {
			m.logger.Debug("dropping suggestion for unknown id", zap.String("id", s.ID))
			continue
		}
		results = append(results, types.MatchResult{
			EntityID:         s.ID,
			RelevanceScore:   clamp(float64(s.RelevanceScore)),
			Reason:           s.Reason,
			SuggestedEnabled: s.SuggestedEnabled,
		})
	}

	m.logger.Info("relevance match complete",
		zap.Int("entries", len(entries)),
		zap.Int("results", len(results)),
		zap.Int32("tokens", resp.TokensUsed),
	)

	return &types.MatchResponse{
		Results:    results,
		Summary:    payload.Summary,
		TokensUsed: resp.TokensUsed,
	}, nil
}

func (m *Matcher) buildPrompts(jobDescription string, entries []types.EntrySummary) (string, string, error) {
	system, err := prompts.Get(promptFile, "relevance-system")
	if err != nil {
		return "", "", &Error{Message: "failed to load system prompt", Cause: err}
	}
	user, err := prompts.Get(promptFile, "relevance-user")
	if err != nil {
		return "", "", &Error{Message: "failed to load user prompt", Cause: err}
	}

	system = prompts.Format(system, map[string]string{"MaxPages": strconv.Itoa(m.maxPages)})
	user = prompts.Format(user, map[string]string{
		"JobDescription": strings.TrimSpace(jobDescription),
		"Entries":        FormatEntries(entries),
	})
	return system, user, nil
}

// FormatEntries lists entries and their bullets, one per line, tagged by id
func FormatEntries(entries []types.EntrySummary) string {
	blocks := make([]string, 0, len(entries))
	for _, e := range entries {
		var b strings.Builder
		fmt.Fprintf(&b, "  [%s] (%s) %s", e.EntryID, e.Kind, e.Summary)
		for _, bullet := range e.Bullets {
			fmt.Fprintf(&b, "\n    - [%s] %s", bullet.BulletID, bullet.Text)
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}

// SuggestionsToOverrides converts results into the enabled map accepted by
// variant.Registry.ApplySuggestions. A repeated id keeps its last verdict.
func SuggestionsToOverrides(results []types.MatchResult) map[string]bool {
	out := make(map[string]bool, len(results))
	for _, r := range results {
		out[r.EntityID] = r.SuggestedEnabled
	}
	return out
}

func validIDs(entries []types.EntrySummary) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, e := range entries {
		ids[e.EntryID] = struct{}{}
		for _, b := range e.Bullets {
			ids[b.BulletID] = struct{}{}
		}
	}
	return ids
}

func clamp(score float64) float64 {
	if math.IsNaN(score) {
		return 0
	}
	return math.Max(0, math.Min(1, score))
}

// lenientFloat accepts a JSON number or a numeric string; anything else is 0
type lenientFloat float64

func (f *lenientFloat) UnmarshalJSON(raw []byte) error {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		*f = lenientFloat(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*f = lenientFloat(n)
			return nil
		}
	}
	*f = 0
	return nil
}
