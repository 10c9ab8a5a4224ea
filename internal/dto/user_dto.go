package dto

import (
	"time"

	"mindspark/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// Token types carried in the token_type claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// AuthClaims defines the custom claims for JWT.
type AuthClaims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// RegisterRequest represents the request body for creating an account.
// @Description Request body for registration
type RegisterRequest struct {
	Username  string `json:"username" example:"gopher"`
	Email     string `json:"email" example:"gopher@example.com"`
	Password  string `json:"password" example:"s3cret-pass"`
	Name      string `json:"name,omitempty" example:"Go Pher"`
	AdminCode string `json:"admin_code,omitempty"`
}

// LoginRequest represents the request body for logging in.
// @Description Request body for login
type LoginRequest struct {
	Username string `json:"username" example:"gopher"`
	Password string `json:"password" example:"s3cret-pass"`
}

// TokenResponse represents the response containing access and refresh tokens.
// @Description Response body for authentication tokens
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// RefreshTokenRequest represents the request body for refreshing a token.
// @Description Request body for refreshing JWT tokens
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// UserProfileResponse defines the structure for a user's profile information.
type UserProfileResponse struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	Name              string    `json:"name,omitempty"`
	IsAdmin           bool      `json:"is_admin"`
	AvatarURL         string    `json:"avatar_url,omitempty"`
	TotalQuizzesTaken int       `json:"total_quizzes_taken"`
	AverageScore      float64   `json:"average_score"`
	BestScore         int       `json:"best_score"`
	CreatedAt         time.Time `json:"created_at"`
}

// UpdateProfileRequest changes account fields. Omitted fields stay as they are.
// Changing the password requires the current one.
// @Description Request body for updating the current user
type UpdateProfileRequest struct {
	Name            *string `json:"name,omitempty"`
	Email           *string `json:"email,omitempty"`
	Password        *string `json:"password,omitempty"`
	CurrentPassword string  `json:"current_password,omitempty"`
}

// AvatarResponse carries the public URL of an uploaded avatar.
type AvatarResponse struct {
	AvatarURL string `json:"avatar_url"`
}

// MessageResponse represents a generic message response.
// @Description Generic message response
type MessageResponse struct {
	Message string `json:"message"`
}

func NewUserProfileResponse(user *domain.User, profile *domain.UserProfile) UserProfileResponse {
	resp := UserProfileResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
	if profile != nil {
		resp.IsAdmin = profile.IsAdmin
		resp.AvatarURL = profile.AvatarURL
		resp.TotalQuizzesTaken = profile.TotalQuizzesTaken
		resp.AverageScore = profile.AverageScore
		resp.BestScore = profile.BestScore
	}
	return resp
}
