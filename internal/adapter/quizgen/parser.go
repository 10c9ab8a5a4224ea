package quizgen

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strings"

	"mindspark/internal/domain"
	"mindspark/internal/logger"

	"go.uber.org/zap"
)

var (
	thinkBlockPattern = regexp.MustCompile(`(?s)<think>.*?</think>`)
	jsonArrayPattern  = regexp.MustCompile(`(?s)\[\s*\{.*\}\s*\]`)
)

var requiredKeys = []string{"question", "options", "correct_index", "explanation"}

// ParseQuestions extracts up to count valid questions from a raw provider reply.
// Elements that fail validation are dropped. Fewer than count valid elements
// is a generation error.
func ParseQuestions(raw string, count int) ([]domain.GeneratedQuestion, error) {
	l := logger.Get()

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(extractJSONArray(raw)), &elements); err != nil {
		l.Warn("AI response is not a JSON array", zap.Error(err), zap.Int("response_length", len(raw)))
		return nil, domain.NewGenerationError(domain.MsgMalformedResponse, err)
	}

	questions := make([]domain.GeneratedQuestion, 0, count)
	for i, element := range elements {
		q, ok := validateElement(element)
		if !ok {
			l.Debug("Dropping invalid generated question", zap.Int("index", i))
			continue
		}
		questions = append(questions, q)
	}

	if len(questions) < count {
		l.Warn("AI response has too few valid questions",
			zap.Int("requested", count),
			zap.Int("valid", len(questions)),
			zap.Int("received", len(elements)))
		return nil, domain.NewGenerationError(domain.MsgInsufficientQuestions, nil).
			WithContext("requested", count).
			WithContext("valid", len(questions))
	}
	return questions[:count], nil
}

// extractJSONArray strips reasoning blocks and isolates the outermost array.
// When no array is found the trimmed text is bracketed on whichever side is missing.
func extractJSONArray(raw string) string {
	text := strings.TrimSpace(thinkBlockPattern.ReplaceAllString(raw, ""))

	if match := jsonArrayPattern.FindString(text); match != "" {
		return match
	}
	if !strings.HasPrefix(text, "[") {
		text = "[" + text
	}
	if !strings.HasSuffix(text, "]") {
		text += "]"
	}
	return text
}

func validateElement(element json.RawMessage) (domain.GeneratedQuestion, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(element, &fields); err != nil {
		return domain.GeneratedQuestion{}, false
	}
	for _, key := range requiredKeys {
		if _, ok := fields[key]; !ok {
			return domain.GeneratedQuestion{}, false
		}
	}

	var q domain.GeneratedQuestion
	if !decodeString(fields["question"], &q.Question) || !decodeString(fields["explanation"], &q.Explanation) {
		return domain.GeneratedQuestion{}, false
	}

	var options []json.RawMessage
	if json.Unmarshal(fields["options"], &options) != nil || len(options) != domain.OptionsPerQuestion {
		return domain.GeneratedQuestion{}, false
	}
	q.Options = make([]string, len(options))
	for i, opt := range options {
		if !decodeString(opt, &q.Options[i]) {
			return domain.GeneratedQuestion{}, false
		}
	}

	index, ok := decodeInteger(fields["correct_index"])
	if !ok || index < 0 || index >= domain.OptionsPerQuestion {
		return domain.GeneratedQuestion{}, false
	}
	q.CorrectIndex = index

	return q, true
}

// decodeString accepts JSON strings only; null and other types are rejected.
func decodeString(raw json.RawMessage, dst *string) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return false
	}
	return json.Unmarshal(trimmed, dst) == nil
}

// decodeInteger accepts JSON numbers with no fractional part, so 2.0 is 2.
func decodeInteger(raw json.RawMessage) (int, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || (trimmed[0] != '-' && (trimmed[0] < '0' || trimmed[0] > '9')) {
		return 0, false
	}
	var f float64
	if json.Unmarshal(trimmed, &f) != nil || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
