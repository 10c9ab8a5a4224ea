package handler_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mindspark/internal/domain"
	"mindspark/internal/dto"
	"mindspark/internal/handler"
	"mindspark/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testQuizID = "01HGZ8W3M5T9X2KQF7B4N6R8VA"

func sampleQuiz() *domain.Quiz {
	return &domain.Quiz{
		ID:         testQuizID,
		UserID:     testUserID,
		Topic:      "Go",
		Difficulty: domain.DifficultyMedium,
		Language:   domain.LanguageEnglish,
		CreatedAt:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Questions: []domain.Question{
			{ID: "q1", QuizID: testQuizID, Text: "What is a goroutine?", Options: []string{"a", "b", "c", "d"}, CorrectOption: 2, Explanation: "c", Order: 1},
		},
	}
}

func newQuizApp(quizSvc *MockQuizService, gradingSvc *MockGradingService) *fiber.App {
	app := newTestApp()
	h := handler.NewQuizHandler(quizSvc, gradingSvc)
	app.Post("/quizzes/generate", authenticated, h.GenerateQuiz)
	app.Get("/quizzes", authenticated, h.ListQuizzes)
	app.Get("/quizzes/:id", authenticated, h.GetQuiz)
	app.Post("/quizzes/:id/submit", authenticated, h.SubmitQuiz)
	return app
}

func TestQuizHandler_GenerateQuiz(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		serviceErr     error
		expectedStatus int
	}{
		{
			name:           "created",
			body:           dto.GenerateQuizRequest{Topic: "Go", Difficulty: "Medium", Count: 1},
			expectedStatus: fiber.StatusCreated,
		},
		{
			name:           "count out of range",
			body:           dto.GenerateQuizRequest{Topic: "Go", Difficulty: "Medium", Count: 101},
			expectedStatus: fiber.StatusBadRequest,
		},
		{
			name:           "unknown difficulty",
			body:           dto.GenerateQuizRequest{Topic: "Go", Difficulty: "Extreme", Count: 5},
			expectedStatus: fiber.StatusBadRequest,
		},
		{
			name:           "unknown language",
			body:           dto.GenerateQuizRequest{Topic: "Go", Difficulty: "Easy", Count: 5, Language: "fr"},
			expectedStatus: fiber.StatusBadRequest,
		},
		{
			name:           "provider failure",
			body:           dto.GenerateQuizRequest{Topic: "Go", Difficulty: "Hard", Count: 5},
			serviceErr:     domain.NewGenerationError(domain.MsgInsufficientQuestions, nil),
			expectedStatus: fiber.StatusBadGateway,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			quizSvc := &MockQuizService{GenerateQuizFunc: func(ctx context.Context, userID string, req domain.GenerationRequest) (*domain.Quiz, error) {
				assert.Equal(t, testUserID, userID)
				assert.Equal(t, domain.LanguageEnglish, req.Language)
				if tc.serviceErr != nil {
					return nil, tc.serviceErr
				}
				return sampleQuiz(), nil
			}}

			resp, err := newQuizApp(quizSvc, &MockGradingService{}).Test(jsonRequest(t, "POST", "/quizzes/generate", tc.body), -1)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
		})
	}
}

func TestQuizHandler_GetQuiz_HidesAnswerKey(t *testing.T) {
	quizSvc := &MockQuizService{GetQuizFunc: func(ctx context.Context, userID, quizID string) (*domain.Quiz, error) {
		assert.Equal(t, testQuizID, quizID)
		return sampleQuiz(), nil
	}}

	resp, err := newQuizApp(quizSvc, &MockGradingService{}).Test(jsonRequest(t, "GET", "/quizzes/"+testQuizID, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var raw map[string]interface{}
	decode(t, resp, &raw)
	questions := raw["questions"].([]interface{})
	require.Len(t, questions, 1)
	q := questions[0].(map[string]interface{})
	assert.Equal(t, "What is a goroutine?", q["question"])
	assert.NotContains(t, q, "correct_option")
	assert.NotContains(t, q, "explanation")
}

func TestQuizHandler_GetQuiz_NotFound(t *testing.T) {
	quizSvc := &MockQuizService{GetQuizFunc: func(ctx context.Context, userID, quizID string) (*domain.Quiz, error) {
		return nil, domain.NewQuizNotFoundError(quizID)
	}}

	resp, err := newQuizApp(quizSvc, &MockGradingService{}).Test(jsonRequest(t, "GET", "/quizzes/"+testQuizID, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestQuizHandler_ListQuizzes(t *testing.T) {
	quizSvc := &MockQuizService{ListQuizzesFunc: func(ctx context.Context, userID string, p dto.Pagination) (*dto.QuizListResponse, error) {
		assert.Equal(t, dto.DefaultPageLimit, p.Limit)
		return &dto.QuizListResponse{Quizzes: []dto.QuizSummaryResponse{{ID: testQuizID, Topic: "Go", QuestionCount: 1}}}, nil
	}}

	resp, err := newQuizApp(quizSvc, &MockGradingService{}).Test(jsonRequest(t, "GET", "/quizzes", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.QuizListResponse
	decode(t, resp, &body)
	require.Len(t, body.Quizzes, 1)
}

func TestQuizHandler_SubmitQuiz(t *testing.T) {
	gradingSvc := &MockGradingService{SubmitFunc: func(ctx context.Context, userID, quizID string, answers []domain.SubmittedAnswer) (*domain.QuizAttempt, error) {
		require.Len(t, answers, 2)
		assert.Equal(t, 2, answers[0].SelectedOption)
		assert.Equal(t, domain.UnansweredOption, answers[1].SelectedOption)
		return &domain.QuizAttempt{
			ID: "a1", QuizID: quizID, UserID: userID, Score: 1, TotalQuestions: 2, ScorePercentage: 50,
			Answers: []domain.UserAnswer{{QuestionID: "q1", SelectedOption: 2, IsCorrect: true}},
		}, nil
	}}
	app := newQuizApp(&MockQuizService{}, gradingSvc)

	body := strings.NewReader(`{"answers":[{"question_id":"q1","selected_option":2},{"question_id":"q2","selected_option":null}]}`)
	req := httptest.NewRequest("POST", "/quizzes/"+testQuizID+"/submit", body)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var attempt dto.AttemptResponse
	decode(t, resp, &attempt)
	assert.Equal(t, 50, attempt.ScorePercentage)
	require.Len(t, attempt.Answers, 1)
	assert.True(t, attempt.Answers[0].IsCorrect)
}

// gradingAgainst grades submissions with the real grading rules.
func gradingAgainst(quiz *domain.Quiz, called *bool) *MockGradingService {
	return &MockGradingService{SubmitFunc: func(ctx context.Context, userID, quizID string, answers []domain.SubmittedAnswer) (*domain.QuizAttempt, error) {
		*called = true
		if quizID != quiz.ID {
			return nil, domain.NewQuizNotFoundError(quizID)
		}
		attempt := domain.GradeSubmission(quiz, userID, answers, time.Now())
		attempt.ID = "attempt-1"
		return attempt, nil
	}}
}

func TestQuizHandler_SubmitQuiz_OutOfRangeOptionIsGraded(t *testing.T) {
	tests := []struct {
		name   string
		option int
	}{
		{name: "above range", option: 9},
		{name: "just above range", option: 4},
		{name: "negative", option: -5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			app := newQuizApp(&MockQuizService{}, gradingAgainst(sampleQuiz(), &called))

			resp, err := app.Test(jsonRequest(t, "POST", "/quizzes/"+testQuizID+"/submit", map[string]interface{}{
				"answers": []map[string]interface{}{{"question_id": "q1", "selected_option": tc.option}},
			}), -1)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
			assert.True(t, called)

			var attempt dto.AttemptResponse
			decode(t, resp, &attempt)
			assert.Equal(t, 0, attempt.ScorePercentage)
			require.Len(t, attempt.Answers, 1)
			assert.False(t, attempt.Answers[0].IsCorrect)
			assert.Equal(t, tc.option, attempt.Answers[0].SelectedOption)
		})
	}
}

func TestQuizHandler_SubmitQuiz_Invalid(t *testing.T) {
	app := newQuizApp(&MockQuizService{}, &MockGradingService{})

	resp, err := app.Test(jsonRequest(t, "POST", "/quizzes/"+testQuizID+"/submit", map[string]interface{}{
		"answers": []map[string]interface{}{{"question_id": "", "selected_option": 1}},
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, "POST", "/quizzes/"+testQuizID+"/submit", map[string]interface{}{}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestQuizHandler_MalformedQuizIDIsNotFound(t *testing.T) {
	called := false
	quizSvc := &MockQuizService{GetQuizFunc: func(ctx context.Context, userID, quizID string) (*domain.Quiz, error) {
		return nil, domain.NewQuizNotFoundError(quizID)
	}}
	app := newQuizApp(quizSvc, gradingAgainst(sampleQuiz(), &called))

	resp, err := app.Test(jsonRequest(t, "POST", "/quizzes/not-a-ulid/submit", dto.SubmitQuizRequest{Answers: []dto.SubmitAnswer{}}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.True(t, called)

	var body middleware.ErrorResponse
	decode(t, resp, &body)
	assert.Equal(t, string(domain.CodeQuizNotFound), body.Code)

	resp, err = app.Test(httptest.NewRequest("GET", "/quizzes/not-a-ulid", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
