package service

import (
	"context"
	"time"

	"mindspark/internal/domain"
	"mindspark/internal/dto"
	"mindspark/internal/logger"
	"mindspark/internal/util"

	"go.uber.org/zap"
)

// GradingService scores submissions and serves attempt history.
type GradingService interface {
	Submit(ctx context.Context, userID, quizID string, answers []domain.SubmittedAnswer) (*domain.QuizAttempt, error)
	// GetAttempt returns an attempt of userID with its answers and the answer key.
	GetAttempt(ctx context.Context, userID, attemptID string) (*domain.QuizAttempt, error)
	ListAttempts(ctx context.Context, userID string, pagination dto.Pagination) (*dto.AttemptListResponse, error)
}

// ProfileRefresher recomputes a user's profile aggregates.
type ProfileRefresher interface {
	Refresh(ctx context.Context, userID string) (*domain.UserProfile, error)
}

type gradingService struct {
	quizRepo    domain.QuizRepository
	attemptRepo domain.AttemptRepository
	txManager   domain.TransactionManager
	profiles    ProfileRefresher
	now         func() time.Time
	newID       func() string
}

func NewGradingService(
	quizRepo domain.QuizRepository,
	attemptRepo domain.AttemptRepository,
	txManager domain.TransactionManager,
	profiles ProfileRefresher,
) GradingService {
	return &gradingService{
		quizRepo:    quizRepo,
		attemptRepo: attemptRepo,
		txManager:   txManager,
		profiles:    profiles,
		now:         time.Now,
		newID:       util.NewULID,
	}
}

// Submit grades the answers against the quiz as currently stored and saves the
// attempt. The owner's profile is refreshed after the attempt is committed; a
// failed refresh does not fail the submission.
func (s *gradingService) Submit(ctx context.Context, userID, quizID string, answers []domain.SubmittedAnswer) (*domain.QuizAttempt, error) {
	appLogger := logger.Get()

	quiz, err := s.quizRepo.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load quiz", err)
	}
	if quiz == nil || !quiz.OwnedBy(userID) {
		return nil, domain.NewQuizNotFoundError(quizID)
	}

	attempt := domain.GradeSubmission(quiz, userID, answers, s.now())
	attempt.ID = s.newID()
	for i := range attempt.Answers {
		attempt.Answers[i].ID = s.newID()
		attempt.Answers[i].AttemptID = attempt.ID
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.attemptRepo.CreateAttempt(txCtx, attempt)
	})
	if err != nil {
		return nil, domain.NewInternalError("failed to store attempt", err)
	}

	appLogger.Info("Quiz submitted",
		zap.String("attemptID", attempt.ID),
		zap.String("quizID", quizID),
		zap.String("userID", userID),
		zap.Int("score", attempt.Score),
		zap.Int("total", attempt.TotalQuestions))

	if _, err := s.profiles.Refresh(ctx, userID); err != nil {
		appLogger.Error("Failed to refresh profile after submission",
			zap.String("userID", userID),
			zap.String("attemptID", attempt.ID),
			zap.Error(err))
	}

	return attempt, nil
}

func (s *gradingService) GetAttempt(ctx context.Context, userID, attemptID string) (*domain.QuizAttempt, error) {
	attempt, err := s.attemptRepo.GetAttemptByID(ctx, attemptID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get attempt", err)
	}
	if attempt == nil || attempt.UserID != userID {
		return nil, domain.NewAttemptNotFoundError(attemptID)
	}
	return attempt, nil
}

func (s *gradingService) ListAttempts(ctx context.Context, userID string, pagination dto.Pagination) (*dto.AttemptListResponse, error) {
	pagination.Normalize()

	attempts, total, err := s.attemptRepo.ListAttemptsByUser(ctx, userID, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, domain.NewInternalError("failed to list attempts", err)
	}

	items := make([]dto.AttemptResponse, 0, len(attempts))
	for _, attempt := range attempts {
		items = append(items, dto.NewAttemptResponse(attempt))
	}
	return &dto.AttemptListResponse{
		Attempts:       items,
		PaginationInfo: dto.NewPaginationInfo(total, pagination),
	}, nil
}
