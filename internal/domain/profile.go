package domain

import "time"

// UserProfile holds per-user aggregates derived from attempts.
type UserProfile struct {
	UserID            string    `json:"user_id"`
	IsAdmin           bool      `json:"is_admin"`
	AvatarURL         string    `json:"avatar_url,omitempty"`
	TotalQuizzesTaken int       `json:"total_quizzes_taken"`
	AverageScore      float64   `json:"average_score"`
	BestScore         int       `json:"best_score"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ProfileStats are the recomputed aggregate fields of a profile.
type ProfileStats struct {
	TotalQuizzesTaken int
	AverageScore      float64
	BestScore         int
}

// ComputeProfileStats derives stats from every attempt percentage of a user.
// The average is not rounded. No attempts yields zero stats.
func ComputeProfileStats(percentages []int) ProfileStats {
	if len(percentages) == 0 {
		return ProfileStats{}
	}
	sum, best := 0, percentages[0]
	for _, p := range percentages {
		sum += p
		if p > best {
			best = p
		}
	}
	return ProfileStats{
		TotalQuizzesTaken: len(percentages),
		AverageScore:      float64(sum) / float64(len(percentages)),
		BestScore:         best,
	}
}

// Apply copies the stats onto the profile.
func (p *UserProfile) Apply(stats ProfileStats, now time.Time) {
	p.TotalQuizzesTaken = stats.TotalQuizzesTaken
	p.AverageScore = stats.AverageScore
	p.BestScore = stats.BestScore
	p.UpdatedAt = now
}

// TopPerformer is a leaderboard row.
type TopPerformer struct {
	UserID            string  `json:"user_id"`
	Username          string  `json:"username"`
	BestScore         int     `json:"best_score"`
	AverageScore      float64 `json:"average_score"`
	TotalQuizzesTaken int     `json:"total_quizzes_taken"`
}

// DashboardStats is the admin overview.
type DashboardStats struct {
	TotalUsers     int                `json:"total_users"`
	TotalQuizzes   int                `json:"total_quizzes"`
	TotalAttempts  int                `json:"total_attempts"`
	RecentAttempts []*AttemptOverview `json:"recent_attempts"`
	TopPerformers  []*TopPerformer    `json:"top_performers"`
}
