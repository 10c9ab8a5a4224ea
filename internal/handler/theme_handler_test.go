package handler_test

import (
	"context"
	"io"
	"testing"

	"mindspark/internal/domain"
	"mindspark/internal/dto"
	"mindspark/internal/handler"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newThemeApp(themeSvc *MockThemeService, adminSvc *MockAdminService) *fiber.App {
	app := newTestApp()
	themes := handler.NewThemeHandler(themeSvc)
	admin := handler.NewAdminHandler(adminSvc)
	app.Get("/themes/active", themes.GetActiveTheme)
	app.Get("/themes/active/css", themes.GetActiveCSS)
	app.Get("/admin/themes", authenticated, themes.ListThemes)
	app.Post("/admin/themes", authenticated, themes.CreateTheme)
	app.Get("/admin/themes/:id", authenticated, themes.GetTheme)
	app.Put("/admin/themes/:id", authenticated, themes.UpdateTheme)
	app.Delete("/admin/themes/:id", authenticated, themes.DeleteTheme)
	app.Post("/admin/themes/:id/activate", authenticated, themes.ActivateTheme)
	app.Get("/admin/dashboard", authenticated, admin.GetDashboard)
	return app
}

func TestThemeHandler_Active(t *testing.T) {
	theme := domain.DefaultSiteTheme("Midnight")
	theme.IsActive = true
	themeSvc := &MockThemeService{
		GetActiveFunc: func(ctx context.Context) (*domain.SiteTheme, error) { return theme, nil },
		ActiveCSSFunc: func(ctx context.Context) (string, error) { return theme.CSSVariables(), nil },
	}
	app := newThemeApp(themeSvc, &MockAdminService{})

	resp, err := app.Test(jsonRequest(t, "GET", "/themes/active", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got domain.SiteTheme
	decode(t, resp, &got)
	assert.Equal(t, "Midnight", got.Name)

	resp, err = app.Test(jsonRequest(t, "GET", "/themes/active/css", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/css")
	css, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(css), "--primary-color")
}

func TestThemeHandler_NoActiveTheme(t *testing.T) {
	themeSvc := &MockThemeService{
		GetActiveFunc: func(ctx context.Context) (*domain.SiteTheme, error) { return nil, domain.NewThemeNotFoundError("") },
	}

	resp, err := newThemeApp(themeSvc, &MockAdminService{}).Test(jsonRequest(t, "GET", "/themes/active", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestThemeHandler_AdminCRUD(t *testing.T) {
	created := domain.DefaultSiteTheme("Forest")
	created.ID = "t1"
	var deleted []string
	themeSvc := &MockThemeService{
		ListThemesFunc: func(ctx context.Context) ([]*domain.SiteTheme, error) {
			return []*domain.SiteTheme{created}, nil
		},
		CreateThemeFunc: func(ctx context.Context, createdBy string, req *dto.ThemeRequest) (*domain.SiteTheme, error) {
			assert.Equal(t, testUserID, createdBy)
			require.NotNil(t, req.Name)
			assert.Equal(t, "Forest", *req.Name)
			return created, nil
		},
		GetThemeFunc: func(ctx context.Context, id string) (*domain.SiteTheme, error) {
			return nil, domain.NewThemeNotFoundError(id)
		},
		UpdateThemeFunc: func(ctx context.Context, id string, req *dto.ThemeRequest) (*domain.SiteTheme, error) {
			return nil, domain.ValidationErrors{domain.NewInvalidFormatError("primary_color", "green")}
		},
		DeleteThemeFunc: func(ctx context.Context, id string) error {
			if id == "active" {
				return domain.NewConflictError("cannot delete the active theme")
			}
			deleted = append(deleted, id)
			return nil
		},
		SetActiveFunc: func(ctx context.Context, id string) (*domain.SiteTheme, error) {
			created.IsActive = true
			return created, nil
		},
	}
	app := newThemeApp(themeSvc, &MockAdminService{})

	resp, err := app.Test(jsonRequest(t, "GET", "/admin/themes", nil), -1)
	require.NoError(t, err)
	var list dto.ThemeListResponse
	decode(t, resp, &list)
	assert.Len(t, list.Themes, 1)

	resp, err = app.Test(jsonRequest(t, "POST", "/admin/themes", map[string]string{"name": "Forest"}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, "GET", "/admin/themes/missing", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, "PUT", "/admin/themes/t1", map[string]string{"primary_color": "green"}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, "DELETE", "/admin/themes/active", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, "DELETE", "/admin/themes/t2", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, []string{"t2"}, deleted)

	resp, err = app.Test(jsonRequest(t, "POST", "/admin/themes/t1/activate", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var activated domain.SiteTheme
	decode(t, resp, &activated)
	assert.True(t, activated.IsActive)
}

func TestAdminHandler_GetDashboard(t *testing.T) {
	adminSvc := &MockAdminService{GetDashboardFunc: func(ctx context.Context) (*domain.DashboardStats, error) {
		return &domain.DashboardStats{
			TotalUsers:     2,
			TotalQuizzes:   5,
			TotalAttempts:  9,
			RecentAttempts: []*domain.AttemptOverview{},
			TopPerformers:  []*domain.TopPerformer{{UserID: "u1", Username: "gopher", BestScore: 100}},
		}, nil
	}}

	resp, err := newThemeApp(&MockThemeService{}, adminSvc).Test(jsonRequest(t, "GET", "/admin/dashboard", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stats domain.DashboardStats
	decode(t, resp, &stats)
	assert.Equal(t, 9, stats.TotalAttempts)
	require.Len(t, stats.TopPerformers, 1)
	assert.Equal(t, "gopher", stats.TopPerformers[0].Username)
}
