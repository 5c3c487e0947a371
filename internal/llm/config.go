// Package llm provides centralized LLM configuration and client abstractions
// for document extraction, synthesis and embeddings.
package llm

// ModelTier represents the capability level a call needs
type ModelTier string

const (
	// TierExtraction is for structured extraction from documents
	TierExtraction ModelTier = "extraction"
	// TierSynthesis is for narrative synthesis: recommendations, summaries, reports
	TierSynthesis ModelTier = "synthesis"
	// TierEmbedding is for text embeddings
	TierEmbedding ModelTier = "embedding"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierExtraction: "gemini-2.0-flash",
			TierSynthesis:  "gemini-2.0-flash",
			TierEmbedding:  "text-embedding-004",
		},
	}
}

// GetModel returns the model name configured for a tier.
func (c *Config) GetModel(tier ModelTier) string {
	if c == nil || c.Models == nil {
		return ""
	}
	return c.Models[tier]
}
