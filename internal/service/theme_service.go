package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mindspark/internal/cache"
	"mindspark/internal/config"
	"mindspark/internal/domain"
	"mindspark/internal/dto"
	"mindspark/internal/logger"
	"mindspark/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ThemeService manages site themes and serves the active one.
type ThemeService interface {
	// GetActive is the only read path for the active theme.
	GetActive(ctx context.Context) (*domain.SiteTheme, error)
	ActiveCSS(ctx context.Context) (string, error)
	// SetActive makes id the only active theme.
	SetActive(ctx context.Context, id string) (*domain.SiteTheme, error)

	ListThemes(ctx context.Context) ([]*domain.SiteTheme, error)
	GetTheme(ctx context.Context, id string) (*domain.SiteTheme, error)
	CreateTheme(ctx context.Context, createdBy string, req *dto.ThemeRequest) (*domain.SiteTheme, error)
	UpdateTheme(ctx context.Context, id string, req *dto.ThemeRequest) (*domain.SiteTheme, error)
	DeleteTheme(ctx context.Context, id string) error
}

type themeService struct {
	repo      domain.ThemeRepository
	txManager domain.TransactionManager
	cache     domain.Cache
	cacheTTL  time.Duration
	sfGroup   singleflight.Group
	now       func() time.Time
}

func NewThemeService(repo domain.ThemeRepository, txManager domain.TransactionManager, cache domain.Cache, cfg *config.Config) ThemeService {
	return &themeService{
		repo:      repo,
		txManager: txManager,
		cache:     cache,
		cacheTTL:  cfg.Cache.ThemeTTL,
		now:       time.Now,
	}
}

func (s *themeService) GetActive(ctx context.Context) (*domain.SiteTheme, error) {
	key := cache.ActiveThemeKey()

	if s.cache != nil {
		data, err := s.cache.Get(ctx, key)
		if err == nil {
			var theme domain.SiteTheme
			if err := json.Unmarshal([]byte(data), &theme); err == nil {
				return &theme, nil
			}
			logger.Get().Warn("Discarding undecodable cached theme", zap.String("key", key))
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Failed to read active theme from cache", zap.String("key", key), zap.Error(err))
		}
	}

	res, err, _ := s.sfGroup.Do(key, func() (interface{}, error) {
		theme, err := s.repo.GetActiveTheme(ctx)
		if err != nil {
			return nil, domain.NewInternalError("failed to get active theme", err)
		}
		if theme == nil {
			return nil, domain.NewThemeNotFoundError("")
		}
		s.cacheActive(ctx, theme)
		return theme, nil
	})
	if err != nil {
		return nil, err
	}
	theme, ok := res.(*domain.SiteTheme)
	if !ok {
		return nil, fmt.Errorf("unexpected type from singleflight.Do for active theme: %T", res)
	}
	return theme, nil
}

func (s *themeService) ActiveCSS(ctx context.Context) (string, error) {
	theme, err := s.GetActive(ctx)
	if err != nil {
		return "", err
	}
	return theme.CSSVariables(), nil
}

func (s *themeService) SetActive(ctx context.Context, id string) (*domain.SiteTheme, error) {
	var activated *domain.SiteTheme
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		theme, err := s.repo.GetThemeByID(txCtx, id)
		if err != nil {
			return err
		}
		if theme == nil {
			return domain.NewThemeNotFoundError(id)
		}
		if err := s.repo.DeactivateAllThemes(txCtx); err != nil {
			return err
		}
		ok, err := s.repo.ActivateTheme(txCtx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NewThemeNotFoundError(id)
		}
		theme.IsActive = true
		activated = theme
		return nil
	})
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		return nil, domain.NewInternalError("failed to activate theme", err)
	}

	s.invalidateActive(ctx)
	logger.Get().Info("Theme activated", zap.String("themeID", id))
	return activated, nil
}

func (s *themeService) ListThemes(ctx context.Context) ([]*domain.SiteTheme, error) {
	themes, err := s.repo.ListThemes(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to list themes", err)
	}
	return themes, nil
}

func (s *themeService) GetTheme(ctx context.Context, id string) (*domain.SiteTheme, error) {
	theme, err := s.repo.GetThemeByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to get theme", err)
	}
	if theme == nil {
		return nil, domain.NewThemeNotFoundError(id)
	}
	return theme, nil
}

// CreateTheme stores a new, inactive theme. Omitted settings take default values.
func (s *themeService) CreateTheme(ctx context.Context, createdBy string, req *dto.ThemeRequest) (*domain.SiteTheme, error) {
	theme := domain.DefaultSiteTheme("")
	req.ApplyTo(theme)
	if errs := theme.Validate(); len(errs) > 0 {
		return nil, errs
	}

	now := s.now()
	theme.ID = util.NewULID()
	theme.IsActive = false
	theme.CreatedBy = createdBy
	theme.CreatedAt = now
	theme.UpdatedAt = now

	if err := s.repo.CreateTheme(ctx, theme); err != nil {
		return nil, domain.NewInternalError("failed to create theme", err)
	}
	logger.Get().Info("Theme created", zap.String("themeID", theme.ID), zap.String("createdBy", createdBy))
	return theme, nil
}

func (s *themeService) UpdateTheme(ctx context.Context, id string, req *dto.ThemeRequest) (*domain.SiteTheme, error) {
	theme, err := s.GetTheme(ctx, id)
	if err != nil {
		return nil, err
	}

	req.ApplyTo(theme)
	if errs := theme.Validate(); len(errs) > 0 {
		return nil, errs
	}
	theme.UpdatedAt = s.now()

	if err := s.repo.UpdateTheme(ctx, theme); err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		return nil, domain.NewInternalError("failed to update theme", err)
	}
	if theme.IsActive {
		s.invalidateActive(ctx)
	}
	return theme, nil
}

// DeleteTheme refuses to delete the active theme.
func (s *themeService) DeleteTheme(ctx context.Context, id string) error {
	theme, err := s.GetTheme(ctx, id)
	if err != nil {
		return err
	}
	if theme.IsActive {
		return domain.NewConflictError("cannot delete the active theme").WithContext("theme_id", id)
	}

	if err := s.repo.DeleteTheme(ctx, id); err != nil {
		if domain.IsNotFound(err) {
			return err
		}
		return domain.NewInternalError("failed to delete theme", err)
	}
	logger.Get().Info("Theme deleted", zap.String("themeID", id))
	return nil
}

func (s *themeService) cacheActive(ctx context.Context, theme *domain.SiteTheme) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(theme)
	if err != nil {
		logger.Get().Error("Failed to marshal theme for caching", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, cache.ActiveThemeKey(), string(data), s.cacheTTL); err != nil {
		logger.Get().Warn("Failed to cache active theme", zap.Error(err))
	}
}

func (s *themeService) invalidateActive(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.ActiveThemeKey()); err != nil {
		logger.Get().Warn("Failed to invalidate active theme cache", zap.Error(err))
	}
}
