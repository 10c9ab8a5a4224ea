package domain

import (
	"strings"
	"time"
)

// User is an account that can authenticate and own quizzes.
type User struct {
	ID           string
	Username     string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks the fields every stored user must have.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return NewValidationError("username is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return NewValidationError("email is required")
	}
	if u.PasswordHash == "" {
		return NewValidationError("password hash is required")
	}
	return nil
}
