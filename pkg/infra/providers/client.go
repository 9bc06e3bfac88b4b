package providers

import (
	"context"
)

type Config struct {
	ApiKey       string  `json:"api_key"`
	Model        string  `json:"model"`
	MaxTokens    int     `json:"max_tokens,omitempty"`
	Temperature  float64 `json:"temperature,omitempty"`
	SystemPrompt string  `json:"system_prompt,omitempty"`
}

//go:generate mockery --name=Client --dir=. --output=../../../mocks --filename=provider_client_mock.go --case=underscore --with-expecter

// Client is a single-turn completion client for an LLM provider.
type Client interface {
	Ask(ctx context.Context, config *Config, prompt string) (*CompletionResponse, error)
}
