package service

import (
	"context"

	"mindspark/internal/domain"

	"golang.org/x/sync/errgroup"
)

const (
	dashboardRecentAttempts = 10
	dashboardTopPerformers  = 10
)

// AdminService serves the admin dashboard.
type AdminService interface {
	GetDashboard(ctx context.Context) (*domain.DashboardStats, error)
}

type adminService struct {
	userRepo    domain.UserRepository
	quizRepo    domain.QuizRepository
	attemptRepo domain.AttemptRepository
	profileRepo domain.ProfileRepository
}

func NewAdminService(
	userRepo domain.UserRepository,
	quizRepo domain.QuizRepository,
	attemptRepo domain.AttemptRepository,
	profileRepo domain.ProfileRepository,
) AdminService {
	return &adminService{
		userRepo:    userRepo,
		quizRepo:    quizRepo,
		attemptRepo: attemptRepo,
		profileRepo: profileRepo,
	}
}

// GetDashboard runs the dashboard queries concurrently.
func (s *adminService) GetDashboard(ctx context.Context) (*domain.DashboardStats, error) {
	stats := &domain.DashboardStats{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.userRepo.CountUsers(gctx)
		stats.TotalUsers = n
		return err
	})
	g.Go(func() error {
		n, err := s.quizRepo.CountQuizzes(gctx)
		stats.TotalQuizzes = n
		return err
	})
	g.Go(func() error {
		n, err := s.attemptRepo.CountAttempts(gctx)
		stats.TotalAttempts = n
		return err
	})
	g.Go(func() error {
		recent, err := s.attemptRepo.ListRecentAttempts(gctx, dashboardRecentAttempts)
		stats.RecentAttempts = recent
		return err
	})
	g.Go(func() error {
		top, err := s.profileRepo.ListTopPerformers(gctx, dashboardTopPerformers)
		stats.TopPerformers = top
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, domain.NewInternalError("failed to load dashboard", err)
	}
	if stats.RecentAttempts == nil {
		stats.RecentAttempts = []*domain.AttemptOverview{}
	}
	if stats.TopPerformers == nil {
		stats.TopPerformers = []*domain.TopPerformer{}
	}
	return stats, nil
}
