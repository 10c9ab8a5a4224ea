package models

import (
	"database/sql"
	"time"
)

// SiteTheme is a row of SITE_THEMES. Flags are stored as 0/1 numbers.
type SiteTheme struct {
	ID                 string         `db:"ID"`
	Name               string         `db:"NAME"`
	IsActive           int            `db:"IS_ACTIVE"`
	BackgroundType     string         `db:"BACKGROUND_TYPE"`
	BackgroundColor1   string         `db:"BACKGROUND_COLOR_1"`
	BackgroundColor2   string         `db:"BACKGROUND_COLOR_2"`
	BackgroundColor3   string         `db:"BACKGROUND_COLOR_3"`
	BackgroundImage    sql.NullString `db:"BACKGROUND_IMAGE"`
	BackgroundOpacity  float64        `db:"BACKGROUND_OPACITY"`
	PrimaryColor       string         `db:"PRIMARY_COLOR"`
	SecondaryColor     string         `db:"SECONDARY_COLOR"`
	AccentColor        string         `db:"ACCENT_COLOR"`
	TextPrimary        string         `db:"TEXT_PRIMARY"`
	TextSecondary      string         `db:"TEXT_SECONDARY"`
	TextMuted          string         `db:"TEXT_MUTED"`
	NavbarBackground   string         `db:"NAVBAR_BACKGROUND"`
	NavbarText         string         `db:"NAVBAR_TEXT"`
	FontFamily         string         `db:"FONT_FAMILY"`
	FontSizeBase       int            `db:"FONT_SIZE_BASE"`
	LineHeight         float64        `db:"LINE_HEIGHT"`
	ButtonStyle        string         `db:"BUTTON_STYLE"`
	AnimationSpeed     string         `db:"ANIMATION_SPEED"`
	EnableHoverEffects int            `db:"ENABLE_HOVER_EFFECTS"`
	EnableFloatingOrbs int            `db:"ENABLE_FLOATING_ORBS"`
	CustomCSS          sql.NullString `db:"CUSTOM_CSS"`
	CreatedBy          sql.NullString `db:"CREATED_BY"`
	CreatedAt          time.Time      `db:"CREATED_AT"`
	UpdatedAt          time.Time      `db:"UPDATED_AT"`
}
