package domain

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty is the requested hardness of a generated quiz.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Language selects the language questions are generated in.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageHindi   Language = "hi"
)

const (
	// OptionsPerQuestion is the fixed number of answer choices.
	OptionsPerQuestion = 4
	MinQuestionCount   = 1
	MaxQuestionCount   = 100
	MaxTopicLength     = 200
)

// ParseDifficulty accepts exactly Easy, Medium or Hard.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(s); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// ParseLanguage accepts en or hi. An empty value means English.
func ParseLanguage(s string) (Language, error) {
	if strings.TrimSpace(s) == "" {
		return LanguageEnglish, nil
	}
	switch l := Language(s); l {
	case LanguageEnglish, LanguageHindi:
		return l, nil
	}
	return "", fmt.Errorf("unknown language %q", s)
}

// Quiz is a generated set of questions owned by one user.
// Quizzes are immutable once stored.
type Quiz struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	Topic      string     `json:"topic"`
	Difficulty Difficulty `json:"difficulty"`
	Language   Language   `json:"language"`
	CreatedAt  time.Time  `json:"created_at"`
	Questions  []Question `json:"questions"`
}

// Question is one multiple-choice item. Order is its 1-based position in the quiz.
type Question struct {
	ID            string   `json:"id"`
	QuizID        string   `json:"quiz_id"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
	Explanation   string   `json:"explanation"`
	Order         int      `json:"order"`
}

// QuestionByID returns the question with the given id, if it belongs to the quiz.
func (q *Quiz) QuestionByID(id string) (*Question, bool) {
	for i := range q.Questions {
		if q.Questions[i].ID == id {
			return &q.Questions[i], true
		}
	}
	return nil, false
}

// OwnedBy reports whether userID owns the quiz.
func (q *Quiz) OwnedBy(userID string) bool {
	return q != nil && q.UserID == userID
}

// QuizSummary is the list view of a quiz.
type QuizSummary struct {
	ID            string     `json:"id"`
	Topic         string     `json:"topic"`
	Difficulty    Difficulty `json:"difficulty"`
	Language      Language   `json:"language"`
	QuestionCount int        `json:"question_count"`
	CreatedAt     time.Time  `json:"created_at"`
}

// GeneratedQuestion is a validated question produced by the AI provider.
type GeneratedQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
}

// NewQuiz assembles a quiz from generated questions, numbering them from 1.
func NewQuiz(id, userID, topic string, difficulty Difficulty, language Language, generated []GeneratedQuestion, newID func() string, now time.Time) *Quiz {
	quiz := &Quiz{
		ID:         id,
		UserID:     userID,
		Topic:      topic,
		Difficulty: difficulty,
		Language:   language,
		CreatedAt:  now,
		Questions:  make([]Question, 0, len(generated)),
	}
	for i, g := range generated {
		options := make([]string, len(g.Options))
		copy(options, g.Options)
		quiz.Questions = append(quiz.Questions, Question{
			ID:            newID(),
			QuizID:        id,
			Text:          g.Question,
			Options:       options,
			CorrectOption: g.CorrectIndex,
			Explanation:   g.Explanation,
			Order:         i + 1,
		})
	}
	return quiz
}

// GenerationRequest is the input of a question generator.
type GenerationRequest struct {
	Topic      string
	Difficulty Difficulty
	Count      int
	Language   Language
}
