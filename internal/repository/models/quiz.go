package models

import (
	"database/sql"
	"time"
)

// Quiz is a row of QUIZZES.
type Quiz struct {
	ID         string    `db:"ID"`         // ULID
	UserID     string    `db:"USER_ID"`    // Owner
	Topic      string    `db:"TOPIC"`      // Free-text subject
	Difficulty string    `db:"DIFFICULTY"` // Easy | Medium | Hard
	Language   string    `db:"LANGUAGE"`   // en | hi
	CreatedAt  time.Time `db:"CREATED_AT"`
}

// QuizSummary is a QUIZZES row with its question count.
type QuizSummary struct {
	Quiz
	QuestionCount int `db:"QUESTION_COUNT"`
}

// Question is a row of QUESTIONS. The four options are stored as separate columns.
type Question struct {
	ID            string         `db:"ID"`
	QuizID        string         `db:"QUIZ_ID"`
	QuestionText  string         `db:"QUESTION_TEXT"`
	OptionA       string         `db:"OPTION_A"`
	OptionB       string         `db:"OPTION_B"`
	OptionC       string         `db:"OPTION_C"`
	OptionD       string         `db:"OPTION_D"`
	CorrectOption int            `db:"CORRECT_OPTION"` // 0..3
	Explanation   sql.NullString `db:"EXPLANATION"`
	QuestionOrder int            `db:"QUESTION_ORDER"` // 1-based
}
