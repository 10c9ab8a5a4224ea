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
	quizColumns     = `ID, USER_ID, TOPIC, DIFFICULTY, LANGUAGE, CREATED_AT`
	questionColumns = `ID, QUIZ_ID, QUESTION_TEXT, OPTION_A, OPTION_B, OPTION_C, OPTION_D, CORRECT_OPTION, EXPLANATION, QUESTION_ORDER`

	insertQuizQuery     = `INSERT INTO QUIZZES (` + quizColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	insertQuestionQuery = `INSERT INTO QUESTIONS (` + questionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	getQuizQuery        = `SELECT ` + quizColumns + ` FROM QUIZZES WHERE ID = ?`
	listQuestionsQuery  = `SELECT ` + questionColumns + ` FROM QUESTIONS WHERE QUIZ_ID = ? ORDER BY QUESTION_ORDER`
	countUserQuizzes    = `SELECT COUNT(*) FROM QUIZZES WHERE USER_ID = ?`
	countQuizzesQuery   = `SELECT COUNT(*) FROM QUIZZES`
	listUserQuizzes     = `SELECT q.ID, q.USER_ID, q.TOPIC, q.DIFFICULTY, q.LANGUAGE, q.CREATED_AT,
		(SELECT COUNT(*) FROM QUESTIONS qs WHERE qs.QUIZ_ID = q.ID) AS QUESTION_COUNT
		FROM QUIZZES q WHERE q.USER_ID = ? ORDER BY q.CREATED_AT DESC` + pageClause
)

// sqlxQuizRepository implements domain.QuizRepository using sqlx.
type sqlxQuizRepository struct {
	db DBTX
}

func NewSQLXQuizRepository(db DBTX) domain.QuizRepository {
	return &sqlxQuizRepository{db: db}
}

// CreateQuiz writes the quiz and its questions. Callers wrap it in a
// transaction so a failed question insert leaves nothing behind.
func (r *sqlxQuizRepository) CreateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	exec := GetExecutor(ctx, r.db)

	m := fromDomainQuiz(quiz)
	if _, err := exec.ExecContext(ctx, exec.Rebind(insertQuizQuery),
		m.ID, m.UserID, m.Topic, m.Difficulty, m.Language, m.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert quiz: %w", err)
	}

	for i := range quiz.Questions {
		q, err := fromDomainQuestion(&quiz.Questions[i])
		if err != nil {
			return err
		}
		if _, err := exec.ExecContext(ctx, exec.Rebind(insertQuestionQuery),
			q.ID, q.QuizID, q.QuestionText, q.OptionA, q.OptionB, q.OptionC, q.OptionD,
			q.CorrectOption, q.Explanation, q.QuestionOrder); err != nil {
			return fmt.Errorf("failed to insert question %d: %w", q.QuestionOrder, err)
		}
	}
	return nil
}

func (r *sqlxQuizRepository) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	exec := GetExecutor(ctx, r.db)

	var quiz models.Quiz
	if err := exec.GetContext(ctx, &quiz, exec.Rebind(getQuizQuery), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz %s: %w", id, err)
	}

	var questions []models.Question
	if err := exec.SelectContext(ctx, &questions, exec.Rebind(listQuestionsQuery), id); err != nil {
		return nil, fmt.Errorf("failed to list questions of quiz %s: %w", id, err)
	}

	return toDomainQuiz(&quiz, questions), nil
}

func (r *sqlxQuizRepository) ListQuizzesByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.QuizSummary, int, error) {
	exec := GetExecutor(ctx, r.db)

	var total int
	if err := exec.GetContext(ctx, &total, exec.Rebind(countUserQuizzes), userID); err != nil {
		return nil, 0, fmt.Errorf("failed to count quizzes: %w", err)
	}

	var rows []models.QuizSummary
	if err := exec.SelectContext(ctx, &rows, exec.Rebind(listUserQuizzes), userID, offset, limit); err != nil {
		return nil, 0, fmt.Errorf("failed to list quizzes: %w", err)
	}

	summaries := make([]*domain.QuizSummary, 0, len(rows))
	for i := range rows {
		summaries = append(summaries, &domain.QuizSummary{
			ID:            rows[i].ID,
			Topic:         rows[i].Topic,
			Difficulty:    domain.Difficulty(rows[i].Difficulty),
			Language:      domain.Language(rows[i].Language),
			QuestionCount: rows[i].QuestionCount,
			CreatedAt:     rows[i].CreatedAt,
		})
	}
	return summaries, total, nil
}

func (r *sqlxQuizRepository) CountQuizzes(ctx context.Context) (int, error) {
	var total int
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &total, countQuizzesQuery); err != nil {
		return 0, fmt.Errorf("failed to count quizzes: %w", err)
	}
	return total, nil
}

func fromDomainQuiz(q *domain.Quiz) *models.Quiz {
	return &models.Quiz{
		ID:         q.ID,
		UserID:     q.UserID,
		Topic:      q.Topic,
		Difficulty: string(q.Difficulty),
		Language:   string(q.Language),
		CreatedAt:  q.CreatedAt,
	}
}

func fromDomainQuestion(q *domain.Question) (*models.Question, error) {
	if len(q.Options) != domain.OptionsPerQuestion {
		return nil, fmt.Errorf("question %s has %d options, want %d", q.ID, len(q.Options), domain.OptionsPerQuestion)
	}
	return &models.Question{
		ID:            q.ID,
		QuizID:        q.QuizID,
		QuestionText:  q.Text,
		OptionA:       q.Options[0],
		OptionB:       q.Options[1],
		OptionC:       q.Options[2],
		OptionD:       q.Options[3],
		CorrectOption: q.CorrectOption,
		Explanation:   util.StringToNullString(q.Explanation),
		QuestionOrder: q.Order,
	}, nil
}

func toDomainQuiz(m *models.Quiz, questions []models.Question) *domain.Quiz {
	if m == nil {
		return nil
	}
	quiz := &domain.Quiz{
		ID:         m.ID,
		UserID:     m.UserID,
		Topic:      m.Topic,
		Difficulty: domain.Difficulty(m.Difficulty),
		Language:   domain.Language(m.Language),
		CreatedAt:  m.CreatedAt,
		Questions:  make([]domain.Question, 0, len(questions)),
	}
	for i := range questions {
		quiz.Questions = append(quiz.Questions, *toDomainQuestion(&questions[i]))
	}
	return quiz
}

func toDomainQuestion(m *models.Question) *domain.Question {
	return &domain.Question{
		ID:            m.ID,
		QuizID:        m.QuizID,
		Text:          m.QuestionText,
		Options:       []string{m.OptionA, m.OptionB, m.OptionC, m.OptionD},
		CorrectOption: m.CorrectOption,
		Explanation:   m.Explanation.String,
		Order:         m.QuestionOrder,
	}
}
