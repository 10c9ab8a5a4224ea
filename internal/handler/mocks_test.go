package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mindspark/internal/domain"
	"mindspark/internal/dto"
	"mindspark/internal/middleware"
	"mindspark/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// --- Manual Mocks ---

type MockAuthService struct {
	RegisterFunc     func(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	LoginFunc        func(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshTokenFunc func(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
}

func (m *MockAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	panic("MockAuthService.RegisterFunc not implemented")
}
func (m *MockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	panic("MockAuthService.LoginFunc not implemented")
}
func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	if m.RefreshTokenFunc != nil {
		return m.RefreshTokenFunc(ctx, refreshToken)
	}
	panic("MockAuthService.RefreshTokenFunc not implemented")
}
func (m *MockAuthService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	panic("MockAuthService.ValidateJWT not implemented")
}
func (m *MockAuthService) CreateJWT(userID string, ttl time.Duration, tokenType string) (string, error) {
	panic("MockAuthService.CreateJWT not implemented")
}

type MockQuizService struct {
	GenerateQuizFunc func(ctx context.Context, userID string, req domain.GenerationRequest) (*domain.Quiz, error)
	GetQuizFunc      func(ctx context.Context, userID, quizID string) (*domain.Quiz, error)
	ListQuizzesFunc  func(ctx context.Context, userID string, p dto.Pagination) (*dto.QuizListResponse, error)
}

func (m *MockQuizService) GenerateQuiz(ctx context.Context, userID string, req domain.GenerationRequest) (*domain.Quiz, error) {
	if m.GenerateQuizFunc != nil {
		return m.GenerateQuizFunc(ctx, userID, req)
	}
	panic("MockQuizService.GenerateQuizFunc not implemented")
}
func (m *MockQuizService) CreateQuiz(ctx context.Context, userID string, req domain.GenerationRequest, questions []domain.GeneratedQuestion) (*domain.Quiz, error) {
	panic("MockQuizService.CreateQuiz not implemented")
}
func (m *MockQuizService) GetQuiz(ctx context.Context, userID, quizID string) (*domain.Quiz, error) {
	if m.GetQuizFunc != nil {
		return m.GetQuizFunc(ctx, userID, quizID)
	}
	panic("MockQuizService.GetQuizFunc not implemented")
}
func (m *MockQuizService) ListQuizzes(ctx context.Context, userID string, p dto.Pagination) (*dto.QuizListResponse, error) {
	if m.ListQuizzesFunc != nil {
		return m.ListQuizzesFunc(ctx, userID, p)
	}
	panic("MockQuizService.ListQuizzesFunc not implemented")
}

type MockGradingService struct {
	SubmitFunc       func(ctx context.Context, userID, quizID string, answers []domain.SubmittedAnswer) (*domain.QuizAttempt, error)
	GetAttemptFunc   func(ctx context.Context, userID, attemptID string) (*domain.QuizAttempt, error)
	ListAttemptsFunc func(ctx context.Context, userID string, p dto.Pagination) (*dto.AttemptListResponse, error)
}

func (m *MockGradingService) Submit(ctx context.Context, userID, quizID string, answers []domain.SubmittedAnswer) (*domain.QuizAttempt, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, userID, quizID, answers)
	}
	panic("MockGradingService.SubmitFunc not implemented")
}
func (m *MockGradingService) GetAttempt(ctx context.Context, userID, attemptID string) (*domain.QuizAttempt, error) {
	if m.GetAttemptFunc != nil {
		return m.GetAttemptFunc(ctx, userID, attemptID)
	}
	panic("MockGradingService.GetAttemptFunc not implemented")
}
func (m *MockGradingService) ListAttempts(ctx context.Context, userID string, p dto.Pagination) (*dto.AttemptListResponse, error) {
	if m.ListAttemptsFunc != nil {
		return m.ListAttemptsFunc(ctx, userID, p)
	}
	panic("MockGradingService.ListAttemptsFunc not implemented")
}

type MockProfileService struct {
	GetMyProfileFunc    func(ctx context.Context, userID string) (*dto.UserProfileResponse, error)
	UpdateMyProfileFunc func(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
	UploadAvatarFunc    func(ctx context.Context, userID, contentType string, body io.Reader) (*dto.AvatarResponse, error)
}

func (m *MockProfileService) Refresh(ctx context.Context, userID string) (*domain.UserProfile, error) {
	panic("MockProfileService.Refresh not implemented")
}
func (m *MockProfileService) GetOrCreate(ctx context.Context, userID string) (*domain.UserProfile, error) {
	panic("MockProfileService.GetOrCreate not implemented")
}
func (m *MockProfileService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	panic("MockProfileService.IsAdmin not implemented")
}
func (m *MockProfileService) GetMyProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error) {
	if m.GetMyProfileFunc != nil {
		return m.GetMyProfileFunc(ctx, userID)
	}
	panic("MockProfileService.GetMyProfileFunc not implemented")
}
func (m *MockProfileService) UpdateMyProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	if m.UpdateMyProfileFunc != nil {
		return m.UpdateMyProfileFunc(ctx, userID, req)
	}
	panic("MockProfileService.UpdateMyProfileFunc not implemented")
}
func (m *MockProfileService) UploadAvatar(ctx context.Context, userID, contentType string, body io.Reader) (*dto.AvatarResponse, error) {
	if m.UploadAvatarFunc != nil {
		return m.UploadAvatarFunc(ctx, userID, contentType, body)
	}
	panic("MockProfileService.UploadAvatarFunc not implemented")
}

type MockThemeService struct {
	GetActiveFunc   func(ctx context.Context) (*domain.SiteTheme, error)
	ActiveCSSFunc   func(ctx context.Context) (string, error)
	SetActiveFunc   func(ctx context.Context, id string) (*domain.SiteTheme, error)
	ListThemesFunc  func(ctx context.Context) ([]*domain.SiteTheme, error)
	GetThemeFunc    func(ctx context.Context, id string) (*domain.SiteTheme, error)
	CreateThemeFunc func(ctx context.Context, createdBy string, req *dto.ThemeRequest) (*domain.SiteTheme, error)
	UpdateThemeFunc func(ctx context.Context, id string, req *dto.ThemeRequest) (*domain.SiteTheme, error)
	DeleteThemeFunc func(ctx context.Context, id string) error
}

func (m *MockThemeService) GetActive(ctx context.Context) (*domain.SiteTheme, error) {
	return m.GetActiveFunc(ctx)
}
func (m *MockThemeService) ActiveCSS(ctx context.Context) (string, error) {
	return m.ActiveCSSFunc(ctx)
}
func (m *MockThemeService) SetActive(ctx context.Context, id string) (*domain.SiteTheme, error) {
	return m.SetActiveFunc(ctx, id)
}
func (m *MockThemeService) ListThemes(ctx context.Context) ([]*domain.SiteTheme, error) {
	return m.ListThemesFunc(ctx)
}
func (m *MockThemeService) GetTheme(ctx context.Context, id string) (*domain.SiteTheme, error) {
	return m.GetThemeFunc(ctx, id)
}
func (m *MockThemeService) CreateTheme(ctx context.Context, createdBy string, req *dto.ThemeRequest) (*domain.SiteTheme, error) {
	return m.CreateThemeFunc(ctx, createdBy, req)
}
func (m *MockThemeService) UpdateTheme(ctx context.Context, id string, req *dto.ThemeRequest) (*domain.SiteTheme, error) {
	return m.UpdateThemeFunc(ctx, id, req)
}
func (m *MockThemeService) DeleteTheme(ctx context.Context, id string) error {
	return m.DeleteThemeFunc(ctx, id)
}

type MockAdminService struct {
	GetDashboardFunc func(ctx context.Context) (*domain.DashboardStats, error)
}

func (m *MockAdminService) GetDashboard(ctx context.Context) (*domain.DashboardStats, error) {
	return m.GetDashboardFunc(ctx)
}

var (
	_ service.AuthService    = (*MockAuthService)(nil)
	_ service.QuizService    = (*MockQuizService)(nil)
	_ service.GradingService = (*MockGradingService)(nil)
	_ service.ProfileService = (*MockProfileService)(nil)
	_ service.ThemeService   = (*MockThemeService)(nil)
	_ service.AdminService   = (*MockAdminService)(nil)
)

// --- Helpers ---

const testUserID = "01HGZ8VNRYXS8QKNJV5GRWPWDQ"

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
}

// authenticated stands in for middleware.Protected.
func authenticated(c *fiber.Ctx) error {
	c.Locals(middleware.UserIDKey, testUserID)
	return c.Next()
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}
