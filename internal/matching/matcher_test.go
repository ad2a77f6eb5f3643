package matching

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-variants/internal/llm"
	"github.com/jonathan/resume-variants/internal/types"
)

// mockClient records the last request and returns a canned response
type mockClient struct {
	text   string
	tokens int32
	err    error
	last   llm.Request
	calls  int
}

func (m *mockClient) Generate(_ context.Context, req llm.Request) (*llm.Response, error) {
	m.calls++
	m.last = req
	if m.err != nil {
		return nil, m.err
	}
	return &llm.Response{Text: m.text, TokensUsed: m.tokens}, nil
}

func (m *mockClient) Close() error { return nil }

func TestMatch_FiltersAndClamps(t *testing.T) {
	client := &mockClient{
		tokens: 321,
		text: "```json\n" + `{
  "suggestions": [
    {"id": "exp-1", "relevanceScore": 0.92, "reason": "Go backend", "suggestedEnabled": true},
    {"id": "exp-2-bp-1", "relevanceScore": 1.7, "reason": "data", "suggestedEnabled": true},
    {"id": "proj-1", "relevanceScore": -0.3, "reason": "unrelated", "suggestedEnabled": false},
    {"id": "made-up", "relevanceScore": 0.5, "reason": "hallucinated", "suggestedEnabled": true},
    {"id": "skills-1", "relevanceScore": "0.6", "reason": "string score", "suggestedEnabled": true}
  ],
  "summary": "Lead with experience."
}` + "\n```",
	}

	resp, err := NewMatcher(client).Match(context.Background(), types.SampleDocument(), "Senior Go engineer")
	require.NoError(t, err)

	assert.Equal(t, "Lead with experience.", resp.Summary)
	assert.Equal(t, int32(321), resp.TokensUsed)
	assert.Equal(t, []types.MatchResult{
		{EntityID: "exp-1", RelevanceScore: 0.92, Reason: "Go backend", SuggestedEnabled: true},
		{EntityID: "exp-2-bp-1", RelevanceScore: 1, Reason: "data", SuggestedEnabled: true},
		{EntityID: "proj-1", RelevanceScore: 0, Reason: "unrelated", SuggestedEnabled: false},
		{EntityID: "skills-1", RelevanceScore: 0.6, Reason: "string score", SuggestedEnabled: true},
	}, resp.Results)
}

func TestMatch_Request(t *testing.T) {
	client := &mockClient{text: `{"suggestions": [], "summary": ""}`}
	m := NewMatcher(client, WithTier(llm.TierAdvanced), WithMaxPages(2))

	resp, err := m.Match(context.Background(), types.SampleDocument(), "  Data engineer  ")
	require.NoError(t, err)
	assert.Empty(t, resp.Results)

	req := client.last
	assert.True(t, req.JSON)
	assert.Equal(t, llm.TierAdvanced, req.Tier)
	assert.Contains(t, req.System, "2-page resume")
	assert.NotContains(t, req.System, "{{.")
	assert.Contains(t, req.Prompt, "## Job Description\nData engineer\n")
	assert.Contains(t, req.Prompt, "[exp-1] (experience) Acme Corp - Software Engineer (Jun 2024 - Present)")
	assert.Contains(t, req.Prompt, "    - [exp-1-bp-1] Built a Go ingestion service")
	// disabled sections are still offered to the model
	assert.Contains(t, req.Prompt, "[ach-1] (achievements) Winner, University Hackathon 2023")
}

func TestMatch_Errors(t *testing.T) {
	doc := types.SampleDocument()

	_, err := NewMatcher(&mockClient{}).Match(context.Background(), doc, "   ")
	assert.ErrorIs(t, err, ErrEmptyJobDescription)

	_, err = NewMatcher(nil).Match(context.Background(), doc, "job")
	var mErr *Error
	assert.ErrorAs(t, err, &mErr)

	boom := errors.New("quota exceeded")
	_, err = NewMatcher(&mockClient{err: boom}).Match(context.Background(), doc, "job")
	assert.ErrorIs(t, err, boom)

	_, err = NewMatcher(&mockClient{text: "Sorry, I cannot help."}).Match(context.Background(), doc, "job")
	var parseErr *llm.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestSuggestionsToOverrides(t *testing.T) {
	got := SuggestionsToOverrides([]types.MatchResult{
		{EntityID: "a", SuggestedEnabled: true},
		{EntityID: "b", SuggestedEnabled: false},
		{EntityID: "a", SuggestedEnabled: false},
	})
	assert.Equal(t, map[string]bool{"a": false, "b": false}, got)
	assert.Empty(t, SuggestionsToOverrides(nil))
}

func TestClamp(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-1, 0}, {0, 0}, {0.42, 0.42}, {1, 1}, {3, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, clamp(tt.in))
	}
}
