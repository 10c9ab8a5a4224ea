package dto

import (
	"time"

	"mindspark/internal/domain"
)

// GenerateQuizRequest is the body of a quiz generation request
// @Description Request body for generating a quiz
type GenerateQuizRequest struct {
	Topic      string `json:"topic" example:"Go concurrency"`
	Difficulty string `json:"difficulty" example:"Medium"`
	Count      int    `json:"count" example:"10"`
	Language   string `json:"language,omitempty" example:"en"`
}

// QuestionResponse is a question without its answer key
type QuestionResponse struct {
	ID      string   `json:"id"`
	Text    string   `json:"question"`
	Options []string `json:"options"`
	Order   int      `json:"order"`
}

// QuizResponse represents a quiz ready to be taken
// @Description Quiz with questions; correct answers are hidden until submission
type QuizResponse struct {
	ID         string             `json:"id"`
	Topic      string             `json:"topic"`
	Difficulty string             `json:"difficulty"`
	Language   string             `json:"language"`
	CreatedAt  time.Time          `json:"created_at"`
	Questions  []QuestionResponse `json:"questions"`
}

// QuizSummaryResponse is one row of the quiz list
type QuizSummaryResponse struct {
	ID            string    `json:"id"`
	Topic         string    `json:"topic"`
	Difficulty    string    `json:"difficulty"`
	Language      string    `json:"language"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// QuizListResponse is a page of quiz summaries
type QuizListResponse struct {
	Quizzes        []QuizSummaryResponse `json:"quizzes"`
	PaginationInfo PaginationInfo        `json:"pagination"`
}

// SubmitAnswer is one answer in a submission
type SubmitAnswer struct {
	QuestionID     string `json:"question_id"`
	SelectedOption *int   `json:"selected_option"`
}

// SubmitQuizRequest is the body of a quiz submission
// @Description Request body for submitting answers to a quiz
type SubmitQuizRequest struct {
	Answers []SubmitAnswer `json:"answers"`
}

// ToDomain converts the request into submitted answers. Call after validation.
func (r *SubmitQuizRequest) ToDomain() []domain.SubmittedAnswer {
	answers := make([]domain.SubmittedAnswer, 0, len(r.Answers))
	for _, a := range r.Answers {
		selected := domain.UnansweredOption
		if a.SelectedOption != nil {
			selected = *a.SelectedOption
		}
		answers = append(answers, domain.SubmittedAnswer{QuestionID: a.QuestionID, SelectedOption: selected})
	}
	return answers
}

// AnswerResultResponse is a graded answer with the answer key revealed
type AnswerResultResponse struct {
	QuestionID     string   `json:"question_id"`
	Question       string   `json:"question,omitempty"`
	Options        []string `json:"options,omitempty"`
	Order          int      `json:"order,omitempty"`
	SelectedOption int      `json:"selected_option"`
	CorrectOption  int      `json:"correct_option"`
	IsCorrect      bool     `json:"is_correct"`
	Explanation    string   `json:"explanation,omitempty"`
}

// AttemptResponse is a graded attempt
// @Description Attempt result with per-question correctness
type AttemptResponse struct {
	ID              string                 `json:"id"`
	QuizID          string                 `json:"quiz_id"`
	QuizTopic       string                 `json:"quiz_topic"`
	Score           int                    `json:"score"`
	TotalQuestions  int                    `json:"total_questions"`
	ScorePercentage int                    `json:"score_percentage"`
	CompletedAt     time.Time              `json:"completed_at"`
	Answers         []AnswerResultResponse `json:"answers,omitempty"`
}

// AttemptListResponse is a page of attempt history
type AttemptListResponse struct {
	Attempts       []AttemptResponse `json:"attempts"`
	PaginationInfo PaginationInfo    `json:"pagination"`
}

func NewQuizResponse(q *domain.Quiz) QuizResponse {
	resp := QuizResponse{
		ID:         q.ID,
		Topic:      q.Topic,
		Difficulty: string(q.Difficulty),
		Language:   string(q.Language),
		CreatedAt:  q.CreatedAt,
		Questions:  make([]QuestionResponse, 0, len(q.Questions)),
	}
	for _, question := range q.Questions {
		resp.Questions = append(resp.Questions, QuestionResponse{
			ID:      question.ID,
			Text:    question.Text,
			Options: question.Options,
			Order:   question.Order,
		})
	}
	return resp
}

func NewQuizSummaryResponse(s *domain.QuizSummary) QuizSummaryResponse {
	return QuizSummaryResponse{
		ID:            s.ID,
		Topic:         s.Topic,
		Difficulty:    string(s.Difficulty),
		Language:      string(s.Language),
		QuestionCount: s.QuestionCount,
		CreatedAt:     s.CreatedAt,
	}
}

func NewAttemptResponse(a *domain.QuizAttempt) AttemptResponse {
	resp := AttemptResponse{
		ID:              a.ID,
		QuizID:          a.QuizID,
		QuizTopic:       a.QuizTopic,
		Score:           a.Score,
		TotalQuestions:  a.TotalQuestions,
		ScorePercentage: a.ScorePercentage,
		CompletedAt:     a.CompletedAt,
	}
	if len(a.Answers) == 0 {
		return resp
	}
	resp.Answers = make([]AnswerResultResponse, 0, len(a.Answers))
	for _, ans := range a.Answers {
		result := AnswerResultResponse{
			QuestionID:     ans.QuestionID,
			SelectedOption: ans.SelectedOption,
			IsCorrect:      ans.IsCorrect,
		}
		if q := ans.Question; q != nil {
			result.Question = q.Text
			result.Options = q.Options
			result.Order = q.Order
			result.CorrectOption = q.CorrectOption
			result.Explanation = q.Explanation
		}
		resp.Answers = append(resp.Answers, result)
	}
	return resp
}
