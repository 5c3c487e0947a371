package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateJSON generates JSON content from a text prompt
	GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GenerateJSONFromImage generates JSON content from a prompt plus an image
	GenerateJSONFromImage(ctx context.Context, prompt string, format string, image []byte) (string, error)
	// GenerateJSONFromPDF generates JSON content from a prompt plus a PDF document
	GenerateJSONFromPDF(ctx context.Context, prompt string, pdf []byte) (string, error)
	// EmbedText returns an embedding vector for the given text
	EmbedText(ctx context.Context, text string) ([]float64, error)
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return NewGeminiClient(ctx, config, apiKey)
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
		return nil, fmt.Errorf("API key is required")
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

// GenerateJSON generates JSON content from a text prompt
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.generate(ctx, tier, genai.Text(prompt))
}

// GenerateJSONFromImage generates JSON content from a prompt plus an image.
// format is the image extension without the dot (png, jpeg).
func (c *GeminiClient) GenerateJSONFromImage(ctx context.Context, prompt string, format string, image []byte) (string, error) {
	return c.generate(ctx, TierExtraction, genai.Text(prompt), genai.ImageData(format, image))
}

// GenerateJSONFromPDF generates JSON content from a prompt plus a PDF document
func (c *GeminiClient) GenerateJSONFromPDF(ctx context.Context, prompt string, pdf []byte) (string, error) {
	blob := genai.Blob{MIMEType: "application/pdf", Data: pdf}
	return c.generate(ctx, TierExtraction, genai.Text(prompt), blob)
}

// generate runs one JSON-mode generation call with the given parts
func (c *GeminiClient) generate(ctx context.Context, tier ModelTier, parts ...genai.Part) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(0.1) // Low temperature for consistent output
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}

	// Clean any markdown code block wrappers
	return CleanJSONBlock(text), nil
}

// EmbedText returns an embedding vector for the given text
func (c *GeminiClient) EmbedText(ctx context.Context, text string) ([]float64, error) {
	modelName := c.config.GetModel(TierEmbedding)
	if modelName == "" {
		return nil, fmt.Errorf("no model configured for tier %s", TierEmbedding)
	}

	model := c.client.EmbeddingModel(modelName)
	resp, err := model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("failed to embed content: %w", err)
	}
	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("empty embedding in response")
	}

	vector := make([]float64, len(resp.Embedding.Values))
	for i, v := range resp.Embedding.Values {
		vector[i] = float64(v)
	}
	return vector, nil
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
