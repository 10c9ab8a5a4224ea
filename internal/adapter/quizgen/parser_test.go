package quizgen

import (
	"fmt"
	"strings"
	"testing"

	"mindspark/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func questionJSON(i int) string {
	return fmt.Sprintf(`{"question": "Q%d?", "options": ["a", "b", "c", "d"], "correct_index": %d, "explanation": "E%d"}`, i, i%4, i)
}

func arrayOf(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = questionJSON(i)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func TestParseQuestions(t *testing.T) {
	t.Run("plain array", func(t *testing.T) {
		qs, err := ParseQuestions(arrayOf(3), 3)
		require.NoError(t, err)
		require.Len(t, qs, 3)
		assert.Equal(t, "Q0?", qs[0].Question)
		assert.Equal(t, []string{"a", "b", "c", "d"}, qs[1].Options)
		assert.Equal(t, 2, qs[2].CorrectIndex)
		assert.Equal(t, "E2", qs[2].Explanation)
	})

	t.Run("markdown fence and prose around array", func(t *testing.T) {
		raw := "Sure! Here you go:\n```json\n" + arrayOf(2) + "\n```\nGood luck."
		qs, err := ParseQuestions(raw, 2)
		require.NoError(t, err)
		assert.Len(t, qs, 2)
	})

	t.Run("think block is stripped", func(t *testing.T) {
		raw := "<think>maybe [ { \"question\": 1 } ] is wrong</think>\n" + arrayOf(1)
		qs, err := ParseQuestions(raw, 1)
		require.NoError(t, err)
		assert.Equal(t, "Q0?", qs[0].Question)
	})

	t.Run("objects without brackets are wrapped", func(t *testing.T) {
		raw := questionJSON(0) + "," + questionJSON(1)
		qs, err := ParseQuestions(raw, 2)
		require.NoError(t, err)
		assert.Len(t, qs, 2)
	})

	t.Run("only missing bracket is added", func(t *testing.T) {
		raw := "[" + questionJSON(0)
		qs, err := ParseQuestions(raw, 1)
		require.NoError(t, err)
		assert.Len(t, qs, 1)
	})

	t.Run("extra questions are truncated in order", func(t *testing.T) {
		qs, err := ParseQuestions(arrayOf(5), 3)
		require.NoError(t, err)
		require.Len(t, qs, 3)
		assert.Equal(t, "Q2?", qs[2].Question)
	})

	t.Run("invalid elements are dropped", func(t *testing.T) {
		raw := `[
			{"question": "three options", "options": ["a","b","c"], "correct_index": 0, "explanation": "x"},
			{"question": "index too high", "options": ["a","b","c","d"], "correct_index": 4, "explanation": "x"},
			{"question": "fractional index", "options": ["a","b","c","d"], "correct_index": 1.5, "explanation": "x"},
			{"question": "string index", "options": ["a","b","c","d"], "correct_index": "1", "explanation": "x"},
			{"question": "no explanation", "options": ["a","b","c","d"], "correct_index": 1},
			{"question": null, "options": ["a","b","c","d"], "correct_index": 1, "explanation": "x"},
			{"question": "numeric option", "options": ["a","b",3,"d"], "correct_index": 1, "explanation": "x"},
			"not an object",
			{"question": "valid", "options": ["a","b","c","d"], "correct_index": 3.0, "explanation": "ok"}
		]`
		qs, err := ParseQuestions(raw, 1)
		require.NoError(t, err)
		require.Len(t, qs, 1)
		assert.Equal(t, "valid", qs[0].Question)
		assert.Equal(t, 3, qs[0].CorrectIndex)
	})

	t.Run("too few valid questions", func(t *testing.T) {
		_, err := ParseQuestions(arrayOf(2), 3)
		require.Error(t, err)
		assert.True(t, domain.HasCode(err, domain.CodeGenerationFailed))
		assert.Contains(t, err.Error(), domain.MsgInsufficientQuestions)
	})

	t.Run("malformed response", func(t *testing.T) {
		_, err := ParseQuestions("I cannot help with that.", 1)
		require.Error(t, err)
		assert.True(t, domain.HasCode(err, domain.CodeGenerationFailed))
		assert.Contains(t, err.Error(), domain.MsgMalformedResponse)
	})

	t.Run("empty array", func(t *testing.T) {
		_, err := ParseQuestions("[]", 1)
		assert.Contains(t, err.Error(), domain.MsgInsufficientQuestions)
	})
}

func TestBuildPrompt(t *testing.T) {
	en := BuildPrompt(domain.GenerationRequest{Topic: "Rust ownership", Difficulty: domain.DifficultyHard, Count: 7, Language: domain.LanguageEnglish})
	assert.Contains(t, en, `Create 7 multiple choice questions about "Rust ownership" for Hard difficulty level.`)
	assert.Contains(t, en, "Generate exactly 7 questions.")
	assert.Contains(t, en, `"correct_index"`)
	assert.NotContains(t, en, "Hindi")

	hi := BuildPrompt(domain.GenerationRequest{Topic: "Indian history", Difficulty: domain.DifficultyEasy, Count: 2, Language: domain.LanguageHindi})
	assert.Contains(t, hi, "in Hindi language")
	assert.Contains(t, hi, "Generate exactly 2 questions.")
}
