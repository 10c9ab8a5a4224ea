package handler

import (
	"mindspark/internal/dto"
	"mindspark/internal/middleware"
	"mindspark/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AttemptHandler struct {
	gradingService service.GradingService
}

func NewAttemptHandler(gradingService service.GradingService) *AttemptHandler {
	return &AttemptHandler{gradingService: gradingService}
}

// GetAttempt godoc
// @Summary Get an attempt result
// @Description Returns a graded attempt with the correct option and explanation of every question
// @Tags attempts
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /attempts/{id} [get]
func (h *AttemptHandler) GetAttempt(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	attempt, err := h.gradingService.GetAttempt(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAttemptResponse(attempt))
}

// ListMyAttempts godoc
// @Summary My attempt history
// @Description Newest first
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Param limit query int false "Items per page" default(20)
// @Param offset query int false "Items to skip"
// @Param page query int false "Page number, overrides offset"
// @Success 200 {object} dto.AttemptListResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /users/me/attempts [get]
func (h *AttemptHandler) ListMyAttempts(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	resp, err := h.gradingService.ListAttempts(c.UserContext(), userID, middleware.PaginationFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
