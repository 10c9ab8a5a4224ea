package models

import (
	"database/sql"
	"time"
)

// QuizAttempt is a row of QUIZ_ATTEMPTS.
type QuizAttempt struct {
	ID              string    `db:"ID"`
	UserID          string    `db:"USER_ID"`
	QuizID          string    `db:"QUIZ_ID"`
	Score           int       `db:"SCORE"`
	TotalQuestions  int       `db:"TOTAL_QUESTIONS"`
	ScorePercentage int       `db:"SCORE_PERCENTAGE"`
	CompletedAt     time.Time `db:"COMPLETED_AT"`
}

// AttemptWithTopic is an attempt joined with its quiz's topic.
type AttemptWithTopic struct {
	QuizAttempt
	QuizTopic string `db:"QUIZ_TOPIC"`
}

// AttemptOverview is an attempt joined with its owner and quiz topic.
type AttemptOverview struct {
	AttemptWithTopic
	Username string `db:"USERNAME"`
}

// UserAnswer is a row of USER_ANSWERS. IS_CORRECT is a 0/1 flag.
type UserAnswer struct {
	ID             string `db:"ID"`
	AttemptID      string `db:"ATTEMPT_ID"`
	QuestionID     string `db:"QUESTION_ID"`
	SelectedOption int    `db:"SELECTED_OPTION"` // -1 when unanswered
	IsCorrect      int    `db:"IS_CORRECT"`
}

// AnswerWithQuestion is an answer joined with the question it refers to.
type AnswerWithQuestion struct {
	UserAnswer
	QuizID        string         `db:"QUIZ_ID"`
	QuestionText  string         `db:"QUESTION_TEXT"`
	OptionA       string         `db:"OPTION_A"`
	OptionB       string         `db:"OPTION_B"`
	OptionC       string         `db:"OPTION_C"`
	OptionD       string         `db:"OPTION_D"`
	CorrectOption int            `db:"CORRECT_OPTION"`
	Explanation   sql.NullString `db:"EXPLANATION"`
	QuestionOrder int            `db:"QUESTION_ORDER"`
}
