package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"mindspark/internal/domain"
	"mindspark/internal/dto"
	"mindspark/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var avatarExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ProfileService maintains user profiles and account details.
type ProfileService interface {
	ProfileRefresher
	// GetOrCreate returns the user's profile, creating a zeroed one if none exists.
	GetOrCreate(ctx context.Context, userID string) (*domain.UserProfile, error)
	IsAdmin(ctx context.Context, userID string) (bool, error)
	GetMyProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error)
	UpdateMyProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
	UploadAvatar(ctx context.Context, userID, contentType string, body io.Reader) (*dto.AvatarResponse, error)
}

type profileService struct {
	profileRepo domain.ProfileRepository
	attemptRepo domain.AttemptRepository
	userRepo    domain.UserRepository
	storage     domain.ObjectStorage
	now         func() time.Time
}

// NewProfileService creates a ProfileService. storage may be nil when avatar
// uploads are not configured.
func NewProfileService(
	profileRepo domain.ProfileRepository,
	attemptRepo domain.AttemptRepository,
	userRepo domain.UserRepository,
	storage domain.ObjectStorage,
) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		attemptRepo: attemptRepo,
		userRepo:    userRepo,
		storage:     storage,
		now:         time.Now,
	}
}

func (s *profileService) GetOrCreate(ctx context.Context, userID string) (*domain.UserProfile, error) {
	profile, err := s.profileRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get profile", err)
	}
	if profile != nil {
		return profile, nil
	}

	now := s.now()
	profile = &domain.UserProfile{UserID: userID, CreatedAt: now, UpdatedAt: now}
	if err := s.profileRepo.CreateProfile(ctx, profile); err != nil {
		// A concurrent request may have created it first.
		existing, getErr := s.profileRepo.GetProfileByUserID(ctx, userID)
		if getErr == nil && existing != nil {
			return existing, nil
		}
		return nil, domain.NewInternalError("failed to create profile", err)
	}

	logger.Get().Info("Profile created", zap.String("userID", userID))
	return profile, nil
}

// Refresh recomputes the aggregates from every attempt of the user.
// A user without attempts keeps the zero defaults.
func (s *profileService) Refresh(ctx context.Context, userID string) (*domain.UserProfile, error) {
	profile, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	percentages, err := s.attemptRepo.ListScorePercentagesByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load attempt scores", err)
	}
	if len(percentages) == 0 {
		return profile, nil
	}

	profile.Apply(domain.ComputeProfileStats(percentages), s.now())
	if err := s.profileRepo.UpdateProfileStats(ctx, profile); err != nil {
		return nil, domain.NewInternalError("failed to save profile stats", err)
	}

	logger.Get().Debug("Profile refreshed",
		zap.String("userID", userID),
		zap.Int("totalQuizzesTaken", profile.TotalQuizzesTaken),
		zap.Int("bestScore", profile.BestScore))
	return profile, nil
}

func (s *profileService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	profile, err := s.profileRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return false, domain.NewInternalError("failed to get profile", err)
	}
	return profile != nil && profile.IsAdmin, nil
}

func (s *profileService) GetMyProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get user", err)
	}
	if user == nil {
		return nil, domain.NewUserNotFoundError(userID)
	}

	profile, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserProfileResponse(user, profile)
	return &resp, nil
}

func (s *profileService) UpdateMyProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get user", err)
	}
	if user == nil {
		return nil, domain.NewUserNotFoundError(userID)
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil && !strings.EqualFold(*req.Email, user.Email) {
		existing, err := s.userRepo.GetUserByEmail(ctx, *req.Email)
		if err != nil {
			return nil, domain.NewInternalError("failed to check email", err)
		}
		if existing != nil && existing.ID != userID {
			return nil, domain.NewConflictError("email already exists")
		}
		user.Email = *req.Email
	}
	if req.Password != nil {
		if !checkPassword(user.PasswordHash, req.CurrentPassword) {
			return nil, domain.NewUnauthorizedError("current password is incorrect")
		}
		hash, err := hashPassword(*req.Password)
		if err != nil {
			return nil, domain.NewInternalError("failed to hash password", err)
		}
		user.PasswordHash = hash
	}

	user.UpdatedAt = s.now()
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, domain.NewInternalError("failed to update user", err)
	}

	profile, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	logger.Get().Info("User profile updated", zap.String("userID", userID))
	resp := dto.NewUserProfileResponse(user, profile)
	return &resp, nil
}

func (s *profileService) UploadAvatar(ctx context.Context, userID, contentType string, body io.Reader) (*dto.AvatarResponse, error) {
	ext, ok := avatarExtensions[contentType]
	if !ok {
		return nil, domain.ValidationErrors{domain.NewInvalidFormatError("content_type", contentType)}
	}
	if s.storage == nil {
		return nil, domain.NewStorageUnavailableError(nil)
	}

	if _, err := s.GetOrCreate(ctx, userID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("avatars/%s/%s%s", userID, uuid.NewString(), ext)
	url, err := s.storage.Upload(ctx, key, contentType, body)
	if err != nil {
		return nil, err
	}
	if err := s.profileRepo.UpdateAvatarURL(ctx, userID, url); err != nil {
		return nil, domain.NewInternalError("failed to save avatar url", err)
	}

	logger.Get().Info("Avatar uploaded", zap.String("userID", userID), zap.String("key", key))
	return &dto.AvatarResponse{AvatarURL: url}, nil
}
