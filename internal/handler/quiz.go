package handler

import (
	"mindspark/internal/domain"
	"mindspark/internal/dto"
	"mindspark/internal/logger"
	"mindspark/internal/middleware"
	"mindspark/internal/service"
	"mindspark/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	quizService    service.QuizService
	gradingService service.GradingService
	validator      *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(quizService service.QuizService, gradingService service.GradingService) *QuizHandler {
	return &QuizHandler{
		quizService:    quizService,
		gradingService: gradingService,
		validator:      validation.NewValidator(),
	}
}

// GenerateQuiz godoc
// @Summary Generate a quiz
// @Description Asks the configured AI provider for questions on a topic and stores them as a new quiz owned by the caller
// @Tags quiz
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Quiz parameters"
// @Success 201 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 429 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse "AI provider returned no usable quiz"
// @Router /quizzes/generate [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(err)
	}
	if errs := h.validator.ValidateGenerateQuizRequest(&req); len(errs) > 0 {
		return errs
	}

	genReq, err := toGenerationRequest(&req)
	if err != nil {
		return err
	}

	quiz, err := h.quizService.GenerateQuiz(c.UserContext(), userID, genReq)
	if err != nil {
		logger.Get().Warn("Quiz generation failed",
			zap.String("userID", userID),
			zap.String("topic", genReq.Topic),
			zap.Error(err),
		)
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewQuizResponse(quiz))
}

// ListQuizzes godoc
// @Summary List my quizzes
// @Tags quiz
// @Security ApiKeyAuth
// @Produce json
// @Param limit query int false "Items per page" default(20)
// @Param offset query int false "Items to skip"
// @Param page query int false "Page number, overrides offset"
// @Success 200 {object} dto.QuizListResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /quizzes [get]
func (h *QuizHandler) ListQuizzes(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	resp, err := h.quizService.ListQuizzes(c.UserContext(), userID, middleware.PaginationFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetQuiz godoc
// @Summary Get a quiz
// @Description Returns one of the caller's quizzes without the answer key
// @Tags quiz
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	quiz, err := h.quizService.GetQuiz(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuizResponse(quiz))
}

// SubmitQuiz godoc
// @Summary Submit answers
// @Description Grades the answers. Questions without an answer, or with a null selected_option, count as incorrect.
// @Tags quiz
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param request body dto.SubmitQuizRequest true "Answers"
// @Success 201 {object} dto.AttemptResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id}/submit [post]
func (h *QuizHandler) SubmitQuiz(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	quizID := c.Params("id")

	var req dto.SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(err)
	}
	if errs := h.validator.ValidateSubmitQuizRequest(&req); len(errs) > 0 {
		return errs
	}

	attempt, err := h.gradingService.Submit(c.UserContext(), userID, quizID, req.ToDomain())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewAttemptResponse(attempt))
}

func toGenerationRequest(req *dto.GenerateQuizRequest) (domain.GenerationRequest, error) {
	difficulty, err := domain.ParseDifficulty(req.Difficulty)
	if err != nil {
		return domain.GenerationRequest{}, domain.ValidationErrors{domain.NewInvalidFormatError("difficulty", req.Difficulty)}
	}
	language, err := domain.ParseLanguage(req.Language)
	if err != nil {
		return domain.GenerationRequest{}, domain.ValidationErrors{domain.NewInvalidFormatError("language", req.Language)}
	}
	return domain.GenerationRequest{
		Topic:      req.Topic,
		Difficulty: difficulty,
		Count:      req.Count,
		Language:   language,
	}, nil
}
