package quizgen

import (
	"context"
	"fmt"

	"mindspark/internal/config"
	"mindspark/internal/domain"
	"mindspark/internal/logger"

	"go.uber.org/zap"
)

const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// NewTextGenerator builds the provider selected by cfg.Provider. The returned
// close function releases provider resources and is never nil.
func NewTextGenerator(ctx context.Context, cfg config.LLMConfig) (domain.TextGenerator, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Provider {
	case ProviderOllama, "":
		g, err := NewOllamaTextGenerator(cfg.ServerURL, cfg.Model, cfg.Temperature)
		if err != nil {
			return nil, noop, err
		}
		logger.Get().Info("Using ollama question generator", zap.String("model", cfg.Model), zap.String("server_url", cfg.ServerURL))
		return g, noop, nil
	case ProviderOpenAI:
		g, err := NewOpenAITextGenerator(cfg.APIKey, cfg.Model, cfg.ServerURL, cfg.Temperature)
		if err != nil {
			return nil, noop, err
		}
		logger.Get().Info("Using openai question generator", zap.String("model", cfg.Model))
		return g, noop, nil
	case ProviderGemini:
		g, err := NewGeminiTextGenerator(ctx, cfg.APIKey, cfg.Model, cfg.Temperature)
		if err != nil {
			return nil, noop, err
		}
		logger.Get().Info("Using gemini question generator", zap.String("model", cfg.Model))
		return g, g.Close, nil
	default:
		return nil, noop, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}
