package quizgen

import (
	"fmt"

	"mindspark/internal/domain"
)

const englishPrompt = `Create %d multiple choice questions about "%s" for %s difficulty level.

For each question, provide:
1. Question text
2. Four options (A, B, C, D)
3. The index of the correct answer (0, 1, 2, or 3)
4. A brief explanation

Format your response as a JSON array like this:
[
  {
    "question": "Question text here",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correct_index": 0,
    "explanation": "Explanation here"
  }
]

Generate exactly %d questions. Make sure the JSON is valid and properly formatted.`

const hindiPrompt = `Create %d multiple choice questions about "%s" for %s difficulty level in Hindi language.

For each question, provide:
1. Question text in Hindi
2. Four options (A, B, C, D) in Hindi
3. The index of the correct answer (0, 1, 2, or 3)
4. A brief explanation in Hindi

Format your response as a JSON array like this:
[
  {
    "question": "प्रश्न यहाँ",
    "options": ["विकल्प A", "विकल्प B", "विकल्प C", "विकल्प D"],
    "correct_index": 0,
    "explanation": "व्याख्या यहाँ"
  }
]

Generate exactly %d questions.`

// BuildPrompt renders the generation prompt for the request's language.
func BuildPrompt(req domain.GenerationRequest) string {
	tmpl := englishPrompt
	if req.Language == domain.LanguageHindi {
		tmpl = hindiPrompt
	}
	return fmt.Sprintf(tmpl, req.Count, req.Topic, req.Difficulty, req.Count)
}
