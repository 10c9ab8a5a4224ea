package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"mindspark/internal/domain"
	"mindspark/internal/repository/models"
	"mindspark/internal/util"
)

const (
	profileColumns = `USER_ID, IS_ADMIN, AVATAR_URL, TOTAL_QUIZZES_TAKEN, AVERAGE_SCORE, BEST_SCORE, CREATED_AT, UPDATED_AT`

	getProfileQuery    = `SELECT ` + profileColumns + ` FROM USER_PROFILES WHERE USER_ID = ?`
	insertProfileQuery = `INSERT INTO USER_PROFILES (` + profileColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	updateStatsQuery   = `UPDATE USER_PROFILES SET TOTAL_QUIZZES_TAKEN = ?, AVERAGE_SCORE = ?, BEST_SCORE = ?, UPDATED_AT = ? WHERE USER_ID = ?`
	updateAvatarQuery  = `UPDATE USER_PROFILES SET AVATAR_URL = ?, UPDATED_AT = ? WHERE USER_ID = ?`
	topPerformersQuery = `SELECT p.USER_ID, u.USERNAME, p.BEST_SCORE, p.AVERAGE_SCORE, p.TOTAL_QUIZZES_TAKEN
		FROM USER_PROFILES p JOIN USERS u ON u.ID = p.USER_ID
		WHERE p.TOTAL_QUIZZES_TAKEN > 0
		ORDER BY p.BEST_SCORE DESC, p.AVERAGE_SCORE DESC` + pageClause
)

// sqlxProfileRepository implements domain.ProfileRepository using sqlx.
type sqlxProfileRepository struct {
	db DBTX
}

func NewSQLXProfileRepository(db DBTX) domain.ProfileRepository {
	return &sqlxProfileRepository{db: db}
}

func (r *sqlxProfileRepository) GetProfileByUserID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	exec := GetExecutor(ctx, r.db)

	var m models.UserProfile
	if err := exec.GetContext(ctx, &m, exec.Rebind(getProfileQuery), userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile of user %s: %w", userID, err)
	}
	return toDomainProfile(&m), nil
}

func (r *sqlxProfileRepository) CreateProfile(ctx context.Context, profile *domain.UserProfile) error {
	exec := GetExecutor(ctx, r.db)

	m := fromDomainProfile(profile)
	if _, err := exec.ExecContext(ctx, exec.Rebind(insertProfileQuery),
		m.UserID, m.IsAdmin, m.AvatarURL, m.TotalQuizzesTaken, m.AverageScore, m.BestScore, m.CreatedAt, m.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// UpdateProfileStats overwrites the aggregate columns with the profile's values.
func (r *sqlxProfileRepository) UpdateProfileStats(ctx context.Context, profile *domain.UserProfile) error {
	exec := GetExecutor(ctx, r.db)

	res, err := exec.ExecContext(ctx, exec.Rebind(updateStatsQuery),
		profile.TotalQuizzesTaken, profile.AverageScore, profile.BestScore, profile.UpdatedAt, profile.UserID)
	if err != nil {
		return fmt.Errorf("failed to update profile stats: %w", err)
	}
	if ok, err := expectOneRow(res); err == nil && !ok {
		return domain.NewUserNotFoundError(profile.UserID)
	}
	return nil
}

func (r *sqlxProfileRepository) UpdateAvatarURL(ctx context.Context, userID, avatarURL string) error {
	exec := GetExecutor(ctx, r.db)

	res, err := exec.ExecContext(ctx, exec.Rebind(updateAvatarQuery), util.StringToNullString(avatarURL), time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to update avatar: %w", err)
	}
	if ok, err := expectOneRow(res); err == nil && !ok {
		return domain.NewUserNotFoundError(userID)
	}
	return nil
}

func (r *sqlxProfileRepository) ListTopPerformers(ctx context.Context, limit int) ([]*domain.TopPerformer, error) {
	exec := GetExecutor(ctx, r.db)

	var rows []models.TopPerformer
	if err := exec.SelectContext(ctx, &rows, exec.Rebind(topPerformersQuery), 0, limit); err != nil {
		return nil, fmt.Errorf("failed to list top performers: %w", err)
	}

	performers := make([]*domain.TopPerformer, 0, len(rows))
	for i := range rows {
		performers = append(performers, &domain.TopPerformer{
			UserID:            rows[i].UserID,
			Username:          rows[i].Username,
			BestScore:         rows[i].BestScore,
			AverageScore:      rows[i].AverageScore,
			TotalQuizzesTaken: rows[i].TotalQuizzesTaken,
		})
	}
	return performers, nil
}

func toDomainProfile(m *models.UserProfile) *domain.UserProfile {
	if m == nil {
		return nil
	}
	return &domain.UserProfile{
		UserID:            m.UserID,
		IsAdmin:           m.IsAdmin == 1,
		AvatarURL:         m.AvatarURL.String,
		TotalQuizzesTaken: m.TotalQuizzesTaken,
		AverageScore:      m.AverageScore,
		BestScore:         m.BestScore,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func fromDomainProfile(p *domain.UserProfile) *models.UserProfile {
	return &models.UserProfile{
		UserID:            p.UserID,
		IsAdmin:           util.BoolToInt(p.IsAdmin),
		AvatarURL:         util.StringToNullString(p.AvatarURL),
		TotalQuizzesTaken: p.TotalQuizzesTaken,
		AverageScore:      p.AverageScore,
		BestScore:         p.BestScore,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
