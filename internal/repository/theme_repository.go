package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"mindspark/internal/domain"
	"mindspark/internal/repository/models"
	"mindspark/internal/util"
)

// themeSettingColumns are the columns written by both insert and update.
var themeSettingColumns = []string{
	"NAME", "BACKGROUND_TYPE", "BACKGROUND_COLOR_1", "BACKGROUND_COLOR_2", "BACKGROUND_COLOR_3",
	"BACKGROUND_IMAGE", "BACKGROUND_OPACITY", "PRIMARY_COLOR", "SECONDARY_COLOR", "ACCENT_COLOR",
	"TEXT_PRIMARY", "TEXT_SECONDARY", "TEXT_MUTED", "NAVBAR_BACKGROUND", "NAVBAR_TEXT",
	"FONT_FAMILY", "FONT_SIZE_BASE", "LINE_HEIGHT", "BUTTON_STYLE", "ANIMATION_SPEED",
	"ENABLE_HOVER_EFFECTS", "ENABLE_FLOATING_ORBS", "CUSTOM_CSS", "UPDATED_AT",
}

var (
	themeSelectColumns = "ID, IS_ACTIVE, CREATED_BY, CREATED_AT, " + strings.Join(themeSettingColumns, ", ")

	insertThemeQuery = fmt.Sprintf(`INSERT INTO SITE_THEMES (ID, IS_ACTIVE, CREATED_BY, CREATED_AT, %s) VALUES (?, ?, ?, ?%s)`,
		strings.Join(themeSettingColumns, ", "), strings.Repeat(", ?", len(themeSettingColumns)))
	updateThemeQuery = fmt.Sprintf(`UPDATE SITE_THEMES SET %s = ? WHERE ID = ?`,
		strings.Join(themeSettingColumns, " = ?, "))

	getThemeQuery       = `SELECT ` + themeSelectColumns + ` FROM SITE_THEMES WHERE ID = ?`
	getActiveThemeQuery = `SELECT ` + themeSelectColumns + ` FROM SITE_THEMES WHERE IS_ACTIVE = 1 ORDER BY UPDATED_AT DESC` + pageClause
	listThemesQuery     = `SELECT ` + themeSelectColumns + ` FROM SITE_THEMES ORDER BY CREATED_AT`
)

const (
	deleteThemeQuery      = `DELETE FROM SITE_THEMES WHERE ID = ?`
	deactivateThemesQuery = `UPDATE SITE_THEMES SET IS_ACTIVE = 0, UPDATED_AT = ? WHERE IS_ACTIVE = 1`
	activateThemeQuery    = `UPDATE SITE_THEMES SET IS_ACTIVE = 1, UPDATED_AT = ? WHERE ID = ?`
)

// sqlxThemeRepository implements domain.ThemeRepository using sqlx.
type sqlxThemeRepository struct {
	db DBTX
}

func NewSQLXThemeRepository(db DBTX) domain.ThemeRepository {
	return &sqlxThemeRepository{db: db}
}

func (r *sqlxThemeRepository) CreateTheme(ctx context.Context, theme *domain.SiteTheme) error {
	exec := GetExecutor(ctx, r.db)

	m := fromDomainTheme(theme)
	args := append([]interface{}{m.ID, m.IsActive, m.CreatedBy, m.CreatedAt}, themeSettingArgs(m)...)
	if _, err := exec.ExecContext(ctx, exec.Rebind(insertThemeQuery), args...); err != nil {
		return fmt.Errorf("failed to create theme: %w", err)
	}
	return nil
}

// UpdateTheme rewrites every setting column. Activation is managed separately.
func (r *sqlxThemeRepository) UpdateTheme(ctx context.Context, theme *domain.SiteTheme) error {
	exec := GetExecutor(ctx, r.db)

	m := fromDomainTheme(theme)
	args := append(themeSettingArgs(m), m.ID)
	res, err := exec.ExecContext(ctx, exec.Rebind(updateThemeQuery), args...)
	if err != nil {
		return fmt.Errorf("failed to update theme: %w", err)
	}
	if ok, err := expectOneRow(res); err == nil && !ok {
		return domain.NewThemeNotFoundError(theme.ID)
	}
	return nil
}

func (r *sqlxThemeRepository) DeleteTheme(ctx context.Context, id string) error {
	exec := GetExecutor(ctx, r.db)

	res, err := exec.ExecContext(ctx, exec.Rebind(deleteThemeQuery), id)
	if err != nil {
		return fmt.Errorf("failed to delete theme: %w", err)
	}
	if ok, err := expectOneRow(res); err == nil && !ok {
		return domain.NewThemeNotFoundError(id)
	}
	return nil
}

func (r *sqlxThemeRepository) GetThemeByID(ctx context.Context, id string) (*domain.SiteTheme, error) {
	exec := GetExecutor(ctx, r.db)

	var m models.SiteTheme
	if err := exec.GetContext(ctx, &m, exec.Rebind(getThemeQuery), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get theme %s: %w", id, err)
	}
	return toDomainTheme(&m), nil
}

func (r *sqlxThemeRepository) GetActiveTheme(ctx context.Context) (*domain.SiteTheme, error) {
	exec := GetExecutor(ctx, r.db)

	var m models.SiteTheme
	if err := exec.GetContext(ctx, &m, exec.Rebind(getActiveThemeQuery), 0, 1); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active theme: %w", err)
	}
	return toDomainTheme(&m), nil
}

func (r *sqlxThemeRepository) ListThemes(ctx context.Context) ([]*domain.SiteTheme, error) {
	var rows []models.SiteTheme
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, listThemesQuery); err != nil {
		return nil, fmt.Errorf("failed to list themes: %w", err)
	}

	themes := make([]*domain.SiteTheme, 0, len(rows))
	for i := range rows {
		themes = append(themes, toDomainTheme(&rows[i]))
	}
	return themes, nil
}

func (r *sqlxThemeRepository) DeactivateAllThemes(ctx context.Context) error {
	exec := GetExecutor(ctx, r.db)
	if _, err := exec.ExecContext(ctx, exec.Rebind(deactivateThemesQuery), time.Now()); err != nil {
		return fmt.Errorf("failed to deactivate themes: %w", err)
	}
	return nil
}

func (r *sqlxThemeRepository) ActivateTheme(ctx context.Context, id string) (bool, error) {
	exec := GetExecutor(ctx, r.db)

	res, err := exec.ExecContext(ctx, exec.Rebind(activateThemeQuery), time.Now(), id)
	if err != nil {
		return false, fmt.Errorf("failed to activate theme %s: %w", id, err)
	}
	return expectOneRow(res)
}

// themeSettingArgs returns values in themeSettingColumns order.
func themeSettingArgs(m *models.SiteTheme) []interface{} {
	return []interface{}{
		m.Name, m.BackgroundType, m.BackgroundColor1, m.BackgroundColor2, m.BackgroundColor3,
		m.BackgroundImage, m.BackgroundOpacity, m.PrimaryColor, m.SecondaryColor, m.AccentColor,
		m.TextPrimary, m.TextSecondary, m.TextMuted, m.NavbarBackground, m.NavbarText,
		m.FontFamily, m.FontSizeBase, m.LineHeight, m.ButtonStyle, m.AnimationSpeed,
		m.EnableHoverEffects, m.EnableFloatingOrbs, m.CustomCSS, m.UpdatedAt,
	}
}

func fromDomainTheme(t *domain.SiteTheme) *models.SiteTheme {
	return &models.SiteTheme{
		ID:                 t.ID,
		Name:               t.Name,
		IsActive:           util.BoolToInt(t.IsActive),
		BackgroundType:     t.BackgroundType,
		BackgroundColor1:   t.BackgroundColor1,
		BackgroundColor2:   t.BackgroundColor2,
		BackgroundColor3:   t.BackgroundColor3,
		BackgroundImage:    util.StringToNullString(t.BackgroundImage),
		BackgroundOpacity:  t.BackgroundOpacity,
		PrimaryColor:       t.PrimaryColor,
		SecondaryColor:     t.SecondaryColor,
		AccentColor:        t.AccentColor,
		TextPrimary:        t.TextPrimary,
		TextSecondary:      t.TextSecondary,
		TextMuted:          t.TextMuted,
		NavbarBackground:   t.NavbarBackground,
		NavbarText:         t.NavbarText,
		FontFamily:         t.FontFamily,
		FontSizeBase:       t.FontSizeBase,
		LineHeight:         t.LineHeight,
		ButtonStyle:        t.ButtonStyle,
		AnimationSpeed:     t.AnimationSpeed,
		EnableHoverEffects: util.BoolToInt(t.EnableHoverEffects),
		EnableFloatingOrbs: util.BoolToInt(t.EnableFloatingOrbs),
		CustomCSS:          util.StringToNullString(t.CustomCSS),
		CreatedBy:          util.StringToNullString(t.CreatedBy),
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

func toDomainTheme(m *models.SiteTheme) *domain.SiteTheme {
	if m == nil {
		return nil
	}
	return &domain.SiteTheme{
		ID:                 m.ID,
		Name:               m.Name,
		IsActive:           m.IsActive == 1,
		BackgroundType:     m.BackgroundType,
		BackgroundColor1:   m.BackgroundColor1,
		BackgroundColor2:   m.BackgroundColor2,
		BackgroundColor3:   m.BackgroundColor3,
		BackgroundImage:    m.BackgroundImage.String,
		BackgroundOpacity:  m.BackgroundOpacity,
		PrimaryColor:       m.PrimaryColor,
		SecondaryColor:     m.SecondaryColor,
		AccentColor:        m.AccentColor,
		TextPrimary:        m.TextPrimary,
		TextSecondary:      m.TextSecondary,
		TextMuted:          m.TextMuted,
		NavbarBackground:   m.NavbarBackground,
		NavbarText:         m.NavbarText,
		FontFamily:         m.FontFamily,
		FontSizeBase:       m.FontSizeBase,
		LineHeight:         m.LineHeight,
		ButtonStyle:        m.ButtonStyle,
		AnimationSpeed:     m.AnimationSpeed,
		EnableHoverEffects: m.EnableHoverEffects == 1,
		EnableFloatingOrbs: m.EnableFloatingOrbs == 1,
		CustomCSS:          m.CustomCSS.String,
		CreatedBy:          m.CreatedBy.String,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
