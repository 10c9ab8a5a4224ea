package domain

import "context"

// QuestionGenerator produces validated multiple-choice questions for a topic.
// Implementations return a GenerationError when the provider output cannot
// yield the requested number of valid questions.
type QuestionGenerator interface {
	Generate(ctx context.Context, req GenerationRequest) ([]GeneratedQuestion, error)
}

// TextGenerator sends one free-text prompt to an AI provider and returns its raw reply.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}
