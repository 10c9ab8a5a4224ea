package domain

import "context"

// Repository lookups return (nil, nil) when the row does not exist.

// QuizRepository persists quizzes and their questions.
type QuizRepository interface {
	// CreateQuiz inserts the quiz row and every question row.
	CreateQuiz(ctx context.Context, quiz *Quiz) error
	// GetQuizByID returns the quiz with its questions in order.
	GetQuizByID(ctx context.Context, id string) (*Quiz, error)
	ListQuizzesByUser(ctx context.Context, userID string, limit, offset int) ([]*QuizSummary, int, error)
	CountQuizzes(ctx context.Context) (int, error)
}

// AttemptRepository persists graded attempts and their answers.
type AttemptRepository interface {
	// CreateAttempt inserts the attempt row and every answer row.
	CreateAttempt(ctx context.Context, attempt *QuizAttempt) error
	// GetAttemptByID returns the attempt with answers joined to their questions.
	GetAttemptByID(ctx context.Context, id string) (*QuizAttempt, error)
	ListAttemptsByUser(ctx context.Context, userID string, limit, offset int) ([]*QuizAttempt, int, error)
	ListScorePercentagesByUser(ctx context.Context, userID string) ([]int, error)
	ListRecentAttempts(ctx context.Context, limit int) ([]*AttemptOverview, error)
	CountAttempts(ctx context.Context) (int, error)
}

// ProfileRepository persists user profiles.
type ProfileRepository interface {
	GetProfileByUserID(ctx context.Context, userID string) (*UserProfile, error)
	CreateProfile(ctx context.Context, profile *UserProfile) error
	UpdateProfileStats(ctx context.Context, profile *UserProfile) error
	UpdateAvatarURL(ctx context.Context, userID, avatarURL string) error
	ListTopPerformers(ctx context.Context, limit int) ([]*TopPerformer, error)
}

// UserRepository persists user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdateUser(ctx context.Context, user *User) error
	CountUsers(ctx context.Context) (int, error)
}

// ThemeRepository persists site themes.
type ThemeRepository interface {
	CreateTheme(ctx context.Context, theme *SiteTheme) error
	UpdateTheme(ctx context.Context, theme *SiteTheme) error
	DeleteTheme(ctx context.Context, id string) error
	GetThemeByID(ctx context.Context, id string) (*SiteTheme, error)
	GetActiveTheme(ctx context.Context) (*SiteTheme, error)
	ListThemes(ctx context.Context) ([]*SiteTheme, error)
	DeactivateAllThemes(ctx context.Context) error
	// ActivateTheme reports whether a theme with the id existed.
	ActivateTheme(ctx context.Context, id string) (bool, error)
}
