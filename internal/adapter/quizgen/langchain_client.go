package quizgen

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// LangchainTextGenerator sends prompts through any langchaingo model.
type LangchainTextGenerator struct {
	llm         llms.Model
	temperature float64
}

func NewLangchainTextGenerator(llm llms.Model, temperature float64) *LangchainTextGenerator {
	return &LangchainTextGenerator{llm: llm, temperature: temperature}
}

// NewOllamaTextGenerator connects to a local or remote Ollama server.
func NewOllamaTextGenerator(serverURL, model string, temperature float64) (*LangchainTextGenerator, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("ollama server URL cannot be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("ollama model name cannot be empty")
	}

	llm, err := ollama.New(
		ollama.WithModel(model),
		ollama.WithServerURL(serverURL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}
	return NewLangchainTextGenerator(llm, temperature), nil
}

// NewOpenAITextGenerator uses the OpenAI API or any compatible endpoint
// when baseURL is set.
func NewOpenAITextGenerator(apiKey, model, baseURL string, temperature float64) (*LangchainTextGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key cannot be empty")
	}

	opts := []openai.Option{openai.WithToken(apiKey)}
	if model != "" {
		opts = append(opts, openai.WithModel(model))
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create openai client: %w", err)
	}
	return NewLangchainTextGenerator(llm, temperature), nil
}

func (g *LangchainTextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	response, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt, llms.WithTemperature(g.temperature))
	if err != nil {
		return "", fmt.Errorf("LLM call failed: %w", err)
	}
	return response, nil
}
