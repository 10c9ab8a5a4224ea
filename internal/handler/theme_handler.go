package handler

import (
	"mindspark/internal/dto"
	"mindspark/internal/middleware"
	"mindspark/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ThemeHandler struct {
	themeService service.ThemeService
}

func NewThemeHandler(themeService service.ThemeService) *ThemeHandler {
	return &ThemeHandler{themeService: themeService}
}

// GetActiveTheme godoc
// @Summary Active theme
// @Tags themes
// @Produce json
// @Success 200 {object} domain.SiteTheme
// @Failure 404 {object} middleware.ErrorResponse "No active theme"
// @Router /themes/active [get]
func (h *ThemeHandler) GetActiveTheme(c *fiber.Ctx) error {
	theme, err := h.themeService.GetActive(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(theme)
}

// GetActiveCSS godoc
// @Summary Active theme as CSS
// @Description CSS custom properties on :root followed by the theme's custom CSS
// @Tags themes
// @Produce text/css
// @Success 200 {string} string
// @Failure 404 {object} middleware.ErrorResponse "No active theme"
// @Router /themes/active/css [get]
func (h *ThemeHandler) GetActiveCSS(c *fiber.Ctx) error {
	css, err := h.themeService.ActiveCSS(c.UserContext())
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "text/css; charset=utf-8")
	return c.SendString(css)
}

// ListThemes godoc
// @Summary List themes
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.ThemeListResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Router /admin/themes [get]
func (h *ThemeHandler) ListThemes(c *fiber.Ctx) error {
	themes, err := h.themeService.ListThemes(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.ThemeListResponse{Themes: themes})
}

// CreateTheme godoc
// @Summary Create theme
// @Description Omitted settings take their default values. New themes are inactive.
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.ThemeRequest true "Theme settings"
// @Success 201 {object} domain.SiteTheme
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Router /admin/themes [post]
func (h *ThemeHandler) CreateTheme(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req dto.ThemeRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(err)
	}

	theme, err := h.themeService.CreateTheme(c.UserContext(), userID, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(theme)
}

// GetTheme godoc
// @Summary Get theme
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Theme ID"
// @Success 200 {object} domain.SiteTheme
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/themes/{id} [get]
func (h *ThemeHandler) GetTheme(c *fiber.Ctx) error {
	theme, err := h.themeService.GetTheme(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(theme)
}

// UpdateTheme godoc
// @Summary Update theme
// @Description Only fields present in the body are changed
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Theme ID"
// @Param request body dto.ThemeRequest true "Theme settings"
// @Success 200 {object} domain.SiteTheme
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/themes/{id} [put]
func (h *ThemeHandler) UpdateTheme(c *fiber.Ctx) error {
	var req dto.ThemeRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(err)
	}

	theme, err := h.themeService.UpdateTheme(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(theme)
}

// DeleteTheme godoc
// @Summary Delete theme
// @Tags admin
// @Security ApiKeyAuth
// @Param id path string true "Theme ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse "Theme is active"
// @Router /admin/themes/{id} [delete]
func (h *ThemeHandler) DeleteTheme(c *fiber.Ctx) error {
	if err := h.themeService.DeleteTheme(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ActivateTheme godoc
// @Summary Activate theme
// @Description Makes the theme the only active one
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Theme ID"
// @Success 200 {object} domain.SiteTheme
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/themes/{id}/activate [post]
func (h *ThemeHandler) ActivateTheme(c *fiber.Ctx) error {
	theme, err := h.themeService.SetActive(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(theme)
}
