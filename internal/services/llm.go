package services

import (
	"context"
	"fmt"

	"jobhunt/match-analyzer/internal/config"
)

// LLMClient sends one system instruction and one user prompt to a model and
// returns the generated text.
type LLMClient interface {
	Generate(ctx context.Context, systemInstruction, prompt string) (string, error)
	Provider() string
	Model() string
}

func NewLLMClient(ctx context.Context, cfg config.LLMConfig) (LLMClient, error) {
	switch cfg.Provider {
	case config.ProviderOpenRouter:
		return NewOpenRouterClient(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Temperature, cfg.Timeout), nil
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Temperature, cfg.Timeout)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", cfg.Provider)
	}
}
