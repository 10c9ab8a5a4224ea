package domain

import "time"

// UnansweredOption is stored for questions the user did not answer.
const UnansweredOption = -1

// QuizAttempt is one graded submission of a quiz.
type QuizAttempt struct {
	ID              string       `json:"id"`
	UserID          string       `json:"user_id"`
	QuizID          string       `json:"quiz_id"`
	QuizTopic       string       `json:"quiz_topic,omitempty"`
	Score           int          `json:"score"`
	TotalQuestions  int          `json:"total_questions"`
	ScorePercentage int          `json:"score_percentage"`
	CompletedAt     time.Time    `json:"completed_at"`
	Answers         []UserAnswer `json:"answers,omitempty"`
}

// UserAnswer records the option chosen for one question of an attempt.
// Question is populated on reads that join the quiz content.
type UserAnswer struct {
	ID             string    `json:"id"`
	AttemptID      string    `json:"attempt_id"`
	QuestionID     string    `json:"question_id"`
	SelectedOption int       `json:"selected_option"`
	IsCorrect      bool      `json:"is_correct"`
	Question       *Question `json:"question,omitempty"`
}

// SubmittedAnswer is one entry of a submission payload.
type SubmittedAnswer struct {
	QuestionID     string `json:"question_id"`
	SelectedOption int    `json:"selected_option"`
}

// AttemptOverview is an attempt listed together with its owner, for dashboards.
type AttemptOverview struct {
	AttemptID       string    `json:"attempt_id"`
	UserID          string    `json:"user_id"`
	Username        string    `json:"username"`
	QuizTopic       string    `json:"quiz_topic"`
	Score           int       `json:"score"`
	TotalQuestions  int       `json:"total_questions"`
	ScorePercentage int       `json:"score_percentage"`
	CompletedAt     time.Time `json:"completed_at"`
}

// ScorePercentage is floor(score*100/total), or 0 for an empty quiz.
func ScorePercentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return score * 100 / total
}

// GradeSubmission scores answers against the quiz as it exists now.
//
// Every question gets exactly one UserAnswer. Questions without a submitted
// answer are recorded with UnansweredOption. Answers naming questions outside
// the quiz are ignored, and for repeated question ids the last entry wins.
// The result does not depend on the order of the quiz's questions.
func GradeSubmission(quiz *Quiz, userID string, answers []SubmittedAnswer, completedAt time.Time) *QuizAttempt {
	selected := make(map[string]int, len(answers))
	for _, a := range answers {
		if _, ok := quiz.QuestionByID(a.QuestionID); !ok {
			continue
		}
		selected[a.QuestionID] = a.SelectedOption
	}

	attempt := &QuizAttempt{
		UserID:         userID,
		QuizID:         quiz.ID,
		QuizTopic:      quiz.Topic,
		TotalQuestions: len(quiz.Questions),
		CompletedAt:    completedAt,
		Answers:        make([]UserAnswer, 0, len(quiz.Questions)),
	}

	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		option, answered := selected[q.ID]
		if !answered {
			option = UnansweredOption
		}
		correct := answered && option == q.CorrectOption
		if correct {
			attempt.Score++
		}
		attempt.Answers = append(attempt.Answers, UserAnswer{
			QuestionID:     q.ID,
			SelectedOption: option,
			IsCorrect:      correct,
			Question:       q,
		})
	}

	attempt.ScorePercentage = ScorePercentage(attempt.Score, attempt.TotalQuestions)
	return attempt
}
