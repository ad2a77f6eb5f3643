package llm

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(context.Background(), nil, "")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestNewClient_UnsupportedProvider(t *testing.T) {
	_, err := NewClient(context.Background(), &Config{Provider: "other"}, "key")
	var llmErr *Error
	require.ErrorAs(t, err, &llmErr)
	assert.Contains(t, llmErr.Error(), "unsupported provider")
}

func TestExtractTextFromResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("hello "), genai.Text("world")}},
		}},
	}
	text, err := extractTextFromResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)

	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
	}{
		{"nil", nil},
		{"no candidates", &genai.GenerateContentResponse{}},
		{"no content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}},
		{"no text parts", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "image/png"}}},
		}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extractTextFromResponse(tt.resp)
			assert.Error(t, err)
		})
	}
}
