package middleware_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"mindspark/internal/domain"
	"mindspark/internal/dto"
	"mindspark/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ManualMockAuthService struct {
	ValidateJWTFunc func(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

func (m *ManualMockAuthService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	if m.ValidateJWTFunc != nil {
		return m.ValidateJWTFunc(ctx, tokenString)
	}
	return nil, errors.New("ValidateJWTFunc not set on mock")
}

type ManualMockAdminChecker struct {
	IsAdminFunc func(ctx context.Context, userID string) (bool, error)
}

func (m *ManualMockAdminChecker) IsAdmin(ctx context.Context, userID string) (bool, error) {
	return m.IsAdminFunc(ctx, userID)
}

func TestProtected(t *testing.T) {
	tests := []struct {
		name                string
		authHeader          string
		validate            func(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
		expectedStatus      int
		expectedUserIDLocal interface{}
	}{
		{
			name:           "No Auth Header",
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "Valid Access Token",
			authHeader: "Bearer valid_access_token",
			validate: func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
				assert.Equal(t, "valid_access_token", tokenString)
				return &dto.AuthClaims{UserID: "user123", TokenType: dto.TokenTypeAccess}, nil
			},
			expectedStatus:      fiber.StatusOK,
			expectedUserIDLocal: "user123",
		},
		{
			name:       "Invalid Token",
			authHeader: "Bearer invalid_token",
			validate: func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
				return nil, errors.New("invalid token")
			},
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "Refresh Token instead of Access",
			authHeader: "Bearer valid_refresh_token",
			validate: func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
				return &dto.AuthClaims{UserID: "user456", TokenType: dto.TokenTypeRefresh}, nil
			},
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:           "Malformed Auth Header - No Bearer",
			authHeader:     "Basic some_token",
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:           "Bearer No Token",
			authHeader:     "Bearer ",
			expectedStatus: fiber.StatusUnauthorized,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			mockAuthSvc := &ManualMockAuthService{ValidateJWTFunc: tc.validate}

			var userIDLocalValue interface{}
			app.Get("/protected", middleware.Protected(mockAuthSvc), func(c *fiber.Ctx) error {
				userIDLocalValue = c.Locals(middleware.UserIDKey)
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest("GET", "/protected", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
			assert.Equal(t, tc.expectedUserIDLocal, userIDLocalValue)
		})
	}
}

func TestAdminOnly(t *testing.T) {
	tests := []struct {
		name           string
		isAdmin        bool
		checkErr       error
		expectedStatus int
	}{
		{name: "admin", isAdmin: true, expectedStatus: fiber.StatusOK},
		{name: "regular user", isAdmin: false, expectedStatus: fiber.StatusForbidden},
		{name: "lookup failure", checkErr: domain.NewInternalError("db down", nil), expectedStatus: fiber.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
			authSvc := &ManualMockAuthService{ValidateJWTFunc: func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
				return &dto.AuthClaims{UserID: "user123", TokenType: dto.TokenTypeAccess}, nil
			}}
			checker := &ManualMockAdminChecker{IsAdminFunc: func(ctx context.Context, userID string) (bool, error) {
				assert.Equal(t, "user123", userID)
				return tc.isAdmin, tc.checkErr
			}}

			app.Get("/admin", middleware.Protected(authSvc), middleware.AdminOnly(checker), func(c *fiber.Ctx) error {
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest("GET", "/admin", nil)
			req.Header.Set("Authorization", "Bearer token")
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
		})
	}
}

func TestAdminOnly_WithoutProtected(t *testing.T) {
	app := fiber.New()
	checker := &ManualMockAdminChecker{IsAdminFunc: func(ctx context.Context, userID string) (bool, error) {
		t.Fatal("IsAdmin must not be called without a user")
		return false, nil
	}}
	app.Get("/admin", middleware.AdminOnly(checker), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
