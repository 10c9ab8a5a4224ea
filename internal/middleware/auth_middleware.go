package middleware

import (
	"context"
	"strings"

	"mindspark/internal/domain"
	"mindspark/internal/dto"
	"mindspark/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	UserIDKey           = "userID" // Key for storing UserID in fiber.Ctx locals
)

// TokenValidator is the part of the auth service the middleware needs.
type TokenValidator interface {
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

// AdminChecker reports whether a user holds the admin flag.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// Protected requires a valid access token and stores the user ID in locals.
func Protected(authService TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return unauthorized(c, "MISSING_AUTH_HEADER", "Authorization header is missing")
		}

		if !strings.HasPrefix(authHeader, BearerSchema) {
			return unauthorized(c, "INVALID_AUTH_SCHEME", "Authorization scheme is not Bearer")
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerSchema))
		if tokenString == "" {
			return unauthorized(c, "EMPTY_TOKEN", "Token is empty")
		}

		claims, err := authService.ValidateJWT(c.UserContext(), tokenString)
		if err != nil {
			logger.Get().Debug("JWT validation error", zap.Error(err), zap.String("path", c.Path()))
			return unauthorized(c, "INVALID_TOKEN", "Token is invalid or expired")
		}

		if claims.TokenType != dto.TokenTypeAccess {
			return unauthorized(c, "INVALID_TOKEN_TYPE", "Access token required")
		}

		c.Locals(UserIDKey, claims.UserID)
		return c.Next()
	}
}

// AdminOnly must run after Protected.
func AdminOnly(checker AdminChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals(UserIDKey).(string)
		if !ok || userID == "" {
			return unauthorized(c, string(domain.CodeUnauthorized), "Authentication required")
		}

		isAdmin, err := checker.IsAdmin(c.UserContext(), userID)
		if err != nil {
			return err
		}
		if !isAdmin {
			logger.Get().Info("Non-admin user denied", zap.String("userID", userID), zap.String("path", c.Path()))
			return domain.NewForbiddenError("admin privileges required")
		}
		return c.Next()
	}
}

// UserID returns the authenticated user ID set by Protected.
func UserID(c *fiber.Ctx) (string, error) {
	userID, ok := c.Locals(UserIDKey).(string)
	if !ok || userID == "" {
		return "", domain.NewUnauthorizedError("authentication required")
	}
	return userID, nil
}

func unauthorized(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Code:    code,
		Message: message,
		Status:  fiber.StatusUnauthorized,
	})
}
