// Package llm wraps the language model used for relevance matching behind a small interface.
package llm

// ModelTier selects a model by capability rather than by name
type ModelTier string

const (
	// TierLite is for cheap, fast calls
	TierLite ModelTier = "lite"
	// TierStandard is the default for matching
	TierStandard ModelTier = "standard"
	// TierAdvanced trades latency for better judgement
	TierAdvanced ModelTier = "advanced"
)

// Provider names an LLM backend
type Provider string

// ProviderGemini is the only backend wired today
const ProviderGemini Provider = "gemini"

// DefaultTemperature keeps scoring stable across runs
const DefaultTemperature float32 = 0.3

// Config holds the model configuration for the application
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the Gemini configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: DefaultTemperature,
	}
}

// GetModel returns the model for tier, falling back to standard then lite
func (c *Config) GetModel(tier ModelTier) string {
	for _, t := range []ModelTier{tier, TierStandard, TierLite} {
		if model, ok := c.Models[t]; ok && model != "" {
			return model
		}
	}
	return ""
}

// WithModel returns a copy of c with tier mapped to model
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := *c
	out.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		out.Models[k] = v
	}
	out.Models[tier] = model
	return &out
}
