package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"mindspark/cmd/seed_initial_data/internal/seedmodels"
	"mindspark/internal/config"
	"mindspark/internal/database"
	"mindspark/internal/domain"
	"mindspark/internal/dto"
	"mindspark/internal/logger"
	"mindspark/internal/repository"
	"mindspark/internal/util"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const defaultSeedFilePath = "config/seed_data/themes.json"

func main() {
	seedFile := flag.String("file", defaultSeedFilePath, "theme seed file")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting theme seeding")
	db, err := database.NewSQLXDB(ctx, cfg.DB)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	seeds, err := loadSeedThemes(*seedFile)
	if err != nil {
		log.Fatal("Failed to load seed themes", zap.String("path", *seedFile), zap.Error(err))
	}
	log.Info("Loaded seed themes", zap.Int("themes", len(seeds)))

	if err := seedThemes(ctx, db, log, seeds); err != nil {
		log.Fatal("Theme seeding failed, transaction rolled back", zap.Error(err))
	}
	log.Info("Theme seeding completed")
}

// loadSeedThemes falls back to a single active default theme when the file
// does not exist.
func loadSeedThemes(path string) ([]seedmodels.SeedTheme, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		name := "Default"
		return []seedmodels.SeedTheme{{ThemeRequest: dto.ThemeRequest{Name: &name}, Active: true}}, nil
	}
	if err != nil {
		return nil, err
	}

	var seeds []seedmodels.SeedTheme
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seed data: %w", err)
	}
	return seeds, nil
}

func seedThemes(ctx context.Context, db *sqlx.DB, log *zap.Logger, seeds []seedmodels.SeedTheme) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("Failed to rollback transaction", zap.Error(rbErr))
			}
		} else if cErr := tx.Commit(); cErr != nil {
			err = fmt.Errorf("failed to commit transaction: %w", cErr)
		}
	}()

	themeRepo := repository.NewSQLXThemeRepository(tx)

	existing, err := themeRepo.ListThemes(ctx)
	if err != nil {
		return fmt.Errorf("failed to list themes: %w", err)
	}
	byName := make(map[string]*domain.SiteTheme, len(existing))
	hasActive := false
	for _, t := range existing {
		byName[t.Name] = t
		hasActive = hasActive || t.IsActive
	}

	var toActivate string
	for _, seed := range seeds {
		if seed.Name == nil {
			return domain.NewMissingFieldError("name")
		}
		name := *seed.Name

		theme, ok := byName[name]
		if ok {
			log.Info("Theme exists", zap.String("id", theme.ID), zap.String("name", name))
		} else {
			theme = domain.DefaultSiteTheme(name)
			seed.ApplyTo(theme)
			if verrs := theme.Validate(); len(verrs) > 0 {
				return fmt.Errorf("seed theme %q: %w", name, verrs)
			}
			now := time.Now().UTC()
			theme.ID = util.NewULID()
			theme.CreatedAt = now
			theme.UpdatedAt = now
			if err = themeRepo.CreateTheme(ctx, theme); err != nil {
				return fmt.Errorf("failed to create theme %q: %w", name, err)
			}
			byName[name] = theme
			log.Info("Created theme", zap.String("id", theme.ID), zap.String("name", name))
		}

		if seed.Active && toActivate == "" {
			toActivate = theme.ID
		}
	}

	if hasActive || toActivate == "" {
		return nil
	}
	if err = themeRepo.DeactivateAllThemes(ctx); err != nil {
		return fmt.Errorf("failed to deactivate themes: %w", err)
	}
	if _, err = themeRepo.ActivateTheme(ctx, toActivate); err != nil {
		return fmt.Errorf("failed to activate theme: %w", err)
	}
	log.Info("Activated theme", zap.String("id", toActivate))
	return nil
}
