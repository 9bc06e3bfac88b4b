package gemini

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"

	"github.com/marketlens/marketlens/pkg/infra/providers"
)

const defaultModel = "gemini-2.5-flash"

type client struct {
	mu          sync.Mutex
	genaiClient *genai.Client
}

func NewGeminiClient() providers.Client {
	return &client{}
}

func (c *client) Ask(
	ctx context.Context,
	config *providers.Config,
	prompt string,
) (*providers.CompletionResponse, error) {
	if config.ApiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	genaiClient, err := c.getOrCreateClient(ctx, config.ApiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gemini client: %w", err)
	}

	model := config.Model
	if model == "" {
		model = defaultModel
	}

	generateConfig := &genai.GenerateContentConfig{}
	if config.SystemPrompt != "" {
		generateConfig.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: config.SystemPrompt}},
			Role:  "system",
		}
	}
	if config.MaxTokens > 0 {
		generateConfig.MaxOutputTokens = int32(config.MaxTokens)
	}
	if config.Temperature > 0 {
		temperature := float32(config.Temperature)
		generateConfig.Temperature = &temperature
	}

	result, err := genaiClient.Models.GenerateContent(ctx, model, genai.Text(prompt), generateConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	responseText := result.Text()
	if responseText == "" {
		return nil, fmt.Errorf("no completions returned")
	}

	resp := &providers.CompletionResponse{
		ID:       "gemini",
		Model:    model,
		Response: responseText,
	}
	if result.UsageMetadata != nil {
		resp.Usage = providers.Usage{
			PromptTokens:     int(result.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(result.UsageMetadata.TotalTokenCount),
		}
	}

	return resp, nil
}

func (c *client) getOrCreateClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.genaiClient != nil {
		return c.genaiClient, nil
	}

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	c.genaiClient = genaiClient
	return genaiClient, nil
}
