package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mindspark/internal/domain"
	"mindspark/internal/repository/models"
	"mindspark/internal/util"
)

const (
	attemptColumns = `ID, USER_ID, QUIZ_ID, SCORE, TOTAL_QUESTIONS, SCORE_PERCENTAGE, COMPLETED_AT`

	insertAttemptQuery = `INSERT INTO QUIZ_ATTEMPTS (` + attemptColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	insertAnswerQuery  = `INSERT INTO USER_ANSWERS (ID, ATTEMPT_ID, QUESTION_ID, SELECTED_OPTION, IS_CORRECT) VALUES (?, ?, ?, ?, ?)`

	selectAttemptWithTopic = `SELECT a.ID, a.USER_ID, a.QUIZ_ID, a.SCORE, a.TOTAL_QUESTIONS, a.SCORE_PERCENTAGE, a.COMPLETED_AT,
		q.TOPIC AS QUIZ_TOPIC
		FROM QUIZ_ATTEMPTS a JOIN QUIZZES q ON q.ID = a.QUIZ_ID`

	getAttemptQuery       = selectAttemptWithTopic + ` WHERE a.ID = ?`
	listUserAttemptsQuery = selectAttemptWithTopic + ` WHERE a.USER_ID = ? ORDER BY a.COMPLETED_AT DESC` + pageClause
	countUserAttempts     = `SELECT COUNT(*) FROM QUIZ_ATTEMPTS WHERE USER_ID = ?`
	countAttemptsQuery    = `SELECT COUNT(*) FROM QUIZ_ATTEMPTS`
	listPercentagesQuery  = `SELECT SCORE_PERCENTAGE FROM QUIZ_ATTEMPTS WHERE USER_ID = ?`

	listAnswersQuery = `SELECT ua.ID, ua.ATTEMPT_ID, ua.QUESTION_ID, ua.SELECTED_OPTION, ua.IS_CORRECT,
		qs.QUIZ_ID, qs.QUESTION_TEXT, qs.OPTION_A, qs.OPTION_B, qs.OPTION_C, qs.OPTION_D,
		qs.CORRECT_OPTION, qs.EXPLANATION, qs.QUESTION_ORDER
		FROM USER_ANSWERS ua JOIN QUESTIONS qs ON qs.ID = ua.QUESTION_ID
		WHERE ua.ATTEMPT_ID = ? ORDER BY qs.QUESTION_ORDER`

	listRecentAttemptsQuery = `SELECT a.ID, a.USER_ID, a.QUIZ_ID, a.SCORE, a.TOTAL_QUESTIONS, a.SCORE_PERCENTAGE, a.COMPLETED_AT,
		q.TOPIC AS QUIZ_TOPIC, u.USERNAME
		FROM QUIZ_ATTEMPTS a
		JOIN QUIZZES q ON q.ID = a.QUIZ_ID
		JOIN USERS u ON u.ID = a.USER_ID
		ORDER BY a.COMPLETED_AT DESC` + pageClause
)

// sqlxAttemptRepository implements domain.AttemptRepository using sqlx.
type sqlxAttemptRepository struct {
	db DBTX
}

func NewSQLXAttemptRepository(db DBTX) domain.AttemptRepository {
	return &sqlxAttemptRepository{db: db}
}

// CreateAttempt writes the attempt row followed by one row per answer.
func (r *sqlxAttemptRepository) CreateAttempt(ctx context.Context, attempt *domain.QuizAttempt) error {
	exec := GetExecutor(ctx, r.db)

	m := fromDomainAttempt(attempt)
	if _, err := exec.ExecContext(ctx, exec.Rebind(insertAttemptQuery),
		m.ID, m.UserID, m.QuizID, m.Score, m.TotalQuestions, m.ScorePercentage, m.CompletedAt); err != nil {
		return fmt.Errorf("failed to insert attempt: %w", err)
	}

	for i := range attempt.Answers {
		a := fromDomainAnswer(&attempt.Answers[i])
		if _, err := exec.ExecContext(ctx, exec.Rebind(insertAnswerQuery),
			a.ID, a.AttemptID, a.QuestionID, a.SelectedOption, a.IsCorrect); err != nil {
			return fmt.Errorf("failed to insert answer for question %s: %w", a.QuestionID, err)
		}
	}
	return nil
}

func (r *sqlxAttemptRepository) GetAttemptByID(ctx context.Context, id string) (*domain.QuizAttempt, error) {
	exec := GetExecutor(ctx, r.db)

	var row models.AttemptWithTopic
	if err := exec.GetContext(ctx, &row, exec.Rebind(getAttemptQuery), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attempt %s: %w", id, err)
	}

	var answers []models.AnswerWithQuestion
	if err := exec.SelectContext(ctx, &answers, exec.Rebind(listAnswersQuery), id); err != nil {
		return nil, fmt.Errorf("failed to list answers of attempt %s: %w", id, err)
	}

	attempt := toDomainAttempt(&row)
	attempt.Answers = make([]domain.UserAnswer, 0, len(answers))
	for i := range answers {
		attempt.Answers = append(attempt.Answers, toDomainAnswerWithQuestion(&answers[i]))
	}
	return attempt, nil
}

func (r *sqlxAttemptRepository) ListAttemptsByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.QuizAttempt, int, error) {
	exec := GetExecutor(ctx, r.db)

	var total int
	if err := exec.GetContext(ctx, &total, exec.Rebind(countUserAttempts), userID); err != nil {
		return nil, 0, fmt.Errorf("failed to count attempts: %w", err)
	}

	var rows []models.AttemptWithTopic
	if err := exec.SelectContext(ctx, &rows, exec.Rebind(listUserAttemptsQuery), userID, offset, limit); err != nil {
		return nil, 0, fmt.Errorf("failed to list attempts: %w", err)
	}

	attempts := make([]*domain.QuizAttempt, 0, len(rows))
	for i := range rows {
		attempts = append(attempts, toDomainAttempt(&rows[i]))
	}
	return attempts, total, nil
}

func (r *sqlxAttemptRepository) ListScorePercentagesByUser(ctx context.Context, userID string) ([]int, error) {
	exec := GetExecutor(ctx, r.db)

	var percentages []int
	if err := exec.SelectContext(ctx, &percentages, exec.Rebind(listPercentagesQuery), userID); err != nil {
		return nil, fmt.Errorf("failed to list score percentages: %w", err)
	}
	return percentages, nil
}

func (r *sqlxAttemptRepository) ListRecentAttempts(ctx context.Context, limit int) ([]*domain.AttemptOverview, error) {
	exec := GetExecutor(ctx, r.db)

	var rows []models.AttemptOverview
	if err := exec.SelectContext(ctx, &rows, exec.Rebind(listRecentAttemptsQuery), 0, limit); err != nil {
		return nil, fmt.Errorf("failed to list recent attempts: %w", err)
	}

	overviews := make([]*domain.AttemptOverview, 0, len(rows))
	for i := range rows {
		overviews = append(overviews, &domain.AttemptOverview{
			AttemptID:       rows[i].ID,
			UserID:          rows[i].UserID,
			Username:        rows[i].Username,
			QuizTopic:       rows[i].QuizTopic,
			Score:           rows[i].Score,
			TotalQuestions:  rows[i].TotalQuestions,
			ScorePercentage: rows[i].ScorePercentage,
			CompletedAt:     rows[i].CompletedAt,
		})
	}
	return overviews, nil
}

func (r *sqlxAttemptRepository) CountAttempts(ctx context.Context) (int, error) {
	var total int
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &total, countAttemptsQuery); err != nil {
		return 0, fmt.Errorf("failed to count attempts: %w", err)
	}
	return total, nil
}

func fromDomainAttempt(a *domain.QuizAttempt) *models.QuizAttempt {
	return &models.QuizAttempt{
		ID:              a.ID,
		UserID:          a.UserID,
		QuizID:          a.QuizID,
		Score:           a.Score,
		TotalQuestions:  a.TotalQuestions,
		ScorePercentage: a.ScorePercentage,
		CompletedAt:     a.CompletedAt,
	}
}

func fromDomainAnswer(a *domain.UserAnswer) *models.UserAnswer {
	return &models.UserAnswer{
		ID:             a.ID,
		AttemptID:      a.AttemptID,
		QuestionID:     a.QuestionID,
		SelectedOption: a.SelectedOption,
		IsCorrect:      util.BoolToInt(a.IsCorrect),
	}
}

func toDomainAttempt(m *models.AttemptWithTopic) *domain.QuizAttempt {
	if m == nil {
		return nil
	}
	return &domain.QuizAttempt{
		ID:              m.ID,
		UserID:          m.UserID,
		QuizID:          m.QuizID,
		QuizTopic:       m.QuizTopic,
		Score:           m.Score,
		TotalQuestions:  m.TotalQuestions,
		ScorePercentage: m.ScorePercentage,
		CompletedAt:     m.CompletedAt,
	}
}

func toDomainAnswerWithQuestion(m *models.AnswerWithQuestion) domain.UserAnswer {
	return domain.UserAnswer{
		ID:             m.ID,
		AttemptID:      m.AttemptID,
		QuestionID:     m.QuestionID,
		SelectedOption: m.SelectedOption,
		IsCorrect:      m.IsCorrect == 1,
		Question: toDomainQuestion(&models.Question{
			ID:            m.QuestionID,
			QuizID:        m.QuizID,
			QuestionText:  m.QuestionText,
			OptionA:       m.OptionA,
			OptionB:       m.OptionB,
			OptionC:       m.OptionC,
			OptionD:       m.OptionD,
			CorrectOption: m.CorrectOption,
			Explanation:   m.Explanation,
			QuestionOrder: m.QuestionOrder,
		}),
	}
}
