package models

import (
	"database/sql"
	"time"
)

// User represents a user in the system.
type User struct {
	ID           string         `db:"ID"` // ULID
	Username     string         `db:"USERNAME"`
	Email        string         `db:"EMAIL"`
	Name         sql.NullString `db:"NAME"`
	PasswordHash string         `db:"PASSWORD_HASH"` // bcrypt
	CreatedAt    time.Time      `db:"CREATED_AT"`
	UpdatedAt    time.Time      `db:"UPDATED_AT"`
}

// UserProfile is a row of USER_PROFILES, keyed by user.
type UserProfile struct {
	UserID            string         `db:"USER_ID"`
	IsAdmin           int            `db:"IS_ADMIN"` // 0/1
	AvatarURL         sql.NullString `db:"AVATAR_URL"`
	TotalQuizzesTaken int            `db:"TOTAL_QUIZZES_TAKEN"`
	AverageScore      float64        `db:"AVERAGE_SCORE"`
	BestScore         int            `db:"BEST_SCORE"`
	CreatedAt         time.Time      `db:"CREATED_AT"`
	UpdatedAt         time.Time      `db:"UPDATED_AT"`
}

// TopPerformer is a profile joined with the owner's username.
type TopPerformer struct {
	UserID            string  `db:"USER_ID"`
	Username          string  `db:"USERNAME"`
	BestScore         int     `db:"BEST_SCORE"`
	AverageScore      float64 `db:"AVERAGE_SCORE"`
	TotalQuizzesTaken int     `db:"TOTAL_QUIZZES_TAKEN"`
}
