package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"mindspark/internal/cache"
	"mindspark/internal/config"
	"mindspark/internal/domain"
	"mindspark/internal/dto"
	"mindspark/internal/logger"
	"mindspark/internal/util"

	"go.uber.org/zap"
)

// QuizService defines the interface for quiz-related operations
type QuizService interface {
	// GenerateQuiz asks the generator for questions and stores them as a new quiz.
	GenerateQuiz(ctx context.Context, userID string, req domain.GenerationRequest) (*domain.Quiz, error)
	// CreateQuiz stores a quiz and all its questions in one transaction.
	CreateQuiz(ctx context.Context, userID string, req domain.GenerationRequest, questions []domain.GeneratedQuestion) (*domain.Quiz, error)
	// GetQuiz returns a quiz owned by userID. Quizzes of other users are reported as not found.
	GetQuiz(ctx context.Context, userID, quizID string) (*domain.Quiz, error)
	ListQuizzes(ctx context.Context, userID string, pagination dto.Pagination) (*dto.QuizListResponse, error)
}

// quizService implements QuizService
type quizService struct {
	repo      domain.QuizRepository
	generator domain.QuestionGenerator
	txManager domain.TransactionManager
	cache     domain.Cache
	cacheTTL  time.Duration
	now       func() time.Time
	newID     func() string
}

// NewQuizService creates a new instance of quizService. A nil cache disables caching.
func NewQuizService(
	repo domain.QuizRepository,
	generator domain.QuestionGenerator,
	txManager domain.TransactionManager,
	cache domain.Cache,
	cfg *config.Config,
) QuizService {
	if cache == nil {
		logger.Get().Warn("QuizService initialized with nil cache. Quizzes will not be cached.")
	}
	return &quizService{
		repo:      repo,
		generator: generator,
		txManager: txManager,
		cache:     cache,
		cacheTTL:  cfg.Cache.QuizTTL,
		now:       time.Now,
		newID:     util.NewULID,
	}
}

func (s *quizService) GenerateQuiz(ctx context.Context, userID string, req domain.GenerationRequest) (*domain.Quiz, error) {
	appLogger := logger.Get()

	questions, err := s.generator.Generate(ctx, req)
	if err != nil {
		appLogger.Warn("Quiz generation failed",
			zap.String("userID", userID),
			zap.String("topic", req.Topic),
			zap.Int("count", req.Count),
			zap.Error(err))
		return nil, err
	}

	return s.CreateQuiz(ctx, userID, req, questions)
}

func (s *quizService) CreateQuiz(ctx context.Context, userID string, req domain.GenerationRequest, questions []domain.GeneratedQuestion) (*domain.Quiz, error) {
	quiz := domain.NewQuiz(s.newID(), userID, req.Topic, req.Difficulty, req.Language, questions, s.newID, s.now())

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.repo.CreateQuiz(txCtx, quiz)
	})
	if err != nil {
		return nil, domain.NewInternalError("failed to store quiz", err)
	}

	logger.Get().Info("Quiz created",
		zap.String("quizID", quiz.ID),
		zap.String("userID", userID),
		zap.Int("questions", len(quiz.Questions)))
	s.putCachedQuiz(ctx, quiz)
	return quiz, nil
}

func (s *quizService) GetQuiz(ctx context.Context, userID, quizID string) (*domain.Quiz, error) {
	quiz := s.getCachedQuiz(ctx, quizID)
	if quiz == nil {
		var err error
		quiz, err = s.repo.GetQuizByID(ctx, quizID)
		if err != nil {
			return nil, domain.NewInternalError("failed to get quiz", err)
		}
		if quiz == nil {
			return nil, domain.NewQuizNotFoundError(quizID)
		}
		s.putCachedQuiz(ctx, quiz)
	}

	if !quiz.OwnedBy(userID) {
		return nil, domain.NewQuizNotFoundError(quizID)
	}
	return quiz, nil
}

func (s *quizService) ListQuizzes(ctx context.Context, userID string, pagination dto.Pagination) (*dto.QuizListResponse, error) {
	pagination.Normalize()

	summaries, total, err := s.repo.ListQuizzesByUser(ctx, userID, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, domain.NewInternalError("failed to list quizzes", err)
	}

	items := make([]dto.QuizSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		items = append(items, dto.NewQuizSummaryResponse(summary))
	}
	return &dto.QuizListResponse{
		Quizzes:        items,
		PaginationInfo: dto.NewPaginationInfo(total, pagination),
	}, nil
}

func (s *quizService) getCachedQuiz(ctx context.Context, quizID string) *domain.Quiz {
	if s.cache == nil {
		return nil
	}
	key := cache.QuizKey(quizID)
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Failed to read quiz from cache", zap.String("key", key), zap.Error(err))
		}
		return nil
	}

	var quiz domain.Quiz
	if err := json.Unmarshal([]byte(data), &quiz); err != nil {
		logger.Get().Warn("Discarding undecodable cached quiz", zap.String("key", key), zap.Error(err))
		return nil
	}
	return &quiz
}

func (s *quizService) putCachedQuiz(ctx context.Context, quiz *domain.Quiz) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(quiz)
	if err != nil {
		logger.Get().Error("Failed to marshal quiz for caching", zap.String("quizID", quiz.ID), zap.Error(err))
		return
	}
	key := cache.QuizKey(quiz.ID)
	if err := s.cache.Set(ctx, key, string(data), s.cacheTTL); err != nil {
		logger.Get().Warn("Failed to cache quiz", zap.String("key", key), zap.Error(err))
	}
}
