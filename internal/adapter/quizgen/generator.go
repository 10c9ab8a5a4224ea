package quizgen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mindspark/internal/domain"
	"mindspark/internal/logger"

	"go.uber.org/zap"
)

// Generator implements domain.QuestionGenerator on top of any TextGenerator.
// It makes exactly one provider call per request.
type Generator struct {
	text    domain.TextGenerator
	timeout time.Duration
}

// NewGenerator returns a generator that bounds each provider call by timeout.
// A zero timeout leaves only the caller's deadline in effect.
func NewGenerator(text domain.TextGenerator, timeout time.Duration) *Generator {
	return &Generator{text: text, timeout: timeout}
}

func (g *Generator) Generate(ctx context.Context, req domain.GenerationRequest) ([]domain.GeneratedQuestion, error) {
	if req.Count < domain.MinQuestionCount || req.Count > domain.MaxQuestionCount {
		return nil, domain.ValidationErrors{domain.NewOutOfRangeError("count", req.Count, domain.MinQuestionCount, domain.MaxQuestionCount)}
	}

	l := logger.Get()
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	started := time.Now()
	raw, err := g.text.GenerateText(ctx, BuildPrompt(req))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			l.Error("AI provider call timed out", zap.Duration("timeout", g.timeout), zap.String("topic", req.Topic))
			return nil, domain.NewGenerationError(domain.MsgGenerationTimeout, err)
		}
		l.Error("AI provider call failed", zap.Error(err), zap.String("topic", req.Topic))
		return nil, domain.NewGenerationError(fmt.Sprintf("provider error: %v", err), err)
	}

	l.Debug("AI provider replied",
		zap.String("topic", req.Topic),
		zap.Int("count", req.Count),
		zap.Duration("elapsed", time.Since(started)))

	return ParseQuestions(raw, req.Count)
}

var _ domain.QuestionGenerator = (*Generator)(nil)
