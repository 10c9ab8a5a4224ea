package handler

import (
	"mindspark/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	adminService service.AdminService
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// GetDashboard godoc
// @Summary Admin dashboard
// @Description Totals, the 10 most recent attempts and the 10 best performers
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} domain.DashboardStats
// @Failure 403 {object} middleware.ErrorResponse
// @Router /admin/dashboard [get]
func (h *AdminHandler) GetDashboard(c *fiber.Ctx) error {
	stats, err := h.adminService.GetDashboard(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}
