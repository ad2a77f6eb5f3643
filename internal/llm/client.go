package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Request is a single prompt sent to a model
type Request struct {
	// System is sent as the system instruction, not as part of the prompt
	System string
	Prompt string
	Tier   ModelTier
	// JSON asks the provider for an application/json response
	JSON bool
}

// Response is the text a model produced for a Request
type Response struct {
	Text       string
	Model      string
	TokensUsed int32
}

// Client is an abstraction over LLM providers
type Client interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	Close() error
}

// NewClient creates a client for config.Provider
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini, "":
		client, err := NewGeminiClient(ctx, config, apiKey)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, &Error{Message: fmt.Sprintf("unsupported provider %q", config.Provider)}
	}
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// Generate sends req to the model configured for req.Tier
func (c *GeminiClient) Generate(ctx context.Context, req Request) (*Response, error) {
	tier := req.Tier
	if tier == "" {
		tier = TierStandard
	}
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return nil, &Error{Message: fmt.Sprintf("no model configured for tier %s", tier)}
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(c.config.Temperature)
	if req.System != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(req.System))
	}
	if req.JSON {
		model.ResponseMIMEType = "application/json"
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return nil, &Error{Message: "failed to generate content", Cause: err}
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, err
	}
	if req.JSON {
		text = CleanJSONBlock(text)
	}

	out := &Response{Text: text, Model: modelName}
	if resp.UsageMetadata != nil {
		out.TokensUsed = resp.UsageMetadata.TotalTokenCount
	}
	return out, nil
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", &Error{Message: "no candidates in response"}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &Error{Message: "no content in response"}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", &Error{Message: "no text parts in response"}
	}

	return strings.Join(parts, ""), nil
}
