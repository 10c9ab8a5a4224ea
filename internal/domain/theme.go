package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Allowed values for enumerated theme settings.
var (
	BackgroundTypes = []string{"solid", "gradient", "image"}
	ButtonStyles    = []string{"rounded", "square", "pill"}
	AnimationSpeeds = []string{"slow", "normal", "fast"}
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// SiteTheme is a named set of presentation settings. At most one theme is active.
type SiteTheme struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	IsActive           bool      `json:"is_active"`
	BackgroundType     string    `json:"background_type"`
	BackgroundColor1   string    `json:"background_color_1"`
	BackgroundColor2   string    `json:"background_color_2"`
	BackgroundColor3   string    `json:"background_color_3"`
	BackgroundImage    string    `json:"background_image,omitempty"`
	BackgroundOpacity  float64   `json:"background_opacity"`
	PrimaryColor       string    `json:"primary_color"`
	SecondaryColor     string    `json:"secondary_color"`
	AccentColor        string    `json:"accent_color"`
	TextPrimary        string    `json:"text_primary"`
	TextSecondary      string    `json:"text_secondary"`
	TextMuted          string    `json:"text_muted"`
	NavbarBackground   string    `json:"navbar_background"`
	NavbarText         string    `json:"navbar_text"`
	FontFamily         string    `json:"font_family"`
	FontSizeBase       int       `json:"font_size_base"`
	LineHeight         float64   `json:"line_height"`
	ButtonStyle        string    `json:"button_style"`
	AnimationSpeed     string    `json:"animation_speed"`
	EnableHoverEffects bool      `json:"enable_hover_effects"`
	EnableFloatingOrbs bool      `json:"enable_floating_orbs"`
	CustomCSS          string    `json:"custom_css,omitempty"`
	CreatedBy          string    `json:"created_by,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// DefaultSiteTheme returns a theme with every setting at its default value.
func DefaultSiteTheme(name string) *SiteTheme {
	return &SiteTheme{
		Name:               name,
		BackgroundType:     "gradient",
		BackgroundColor1:   "#0f172a",
		BackgroundColor2:   "#1e1b4b",
		BackgroundColor3:   "#312e81",
		BackgroundOpacity:  1,
		PrimaryColor:       "#6366f1",
		SecondaryColor:     "#8b5cf6",
		AccentColor:        "#ec4899",
		TextPrimary:        "#ffffff",
		TextSecondary:      "#e2e8f0",
		TextMuted:          "#94a3b8",
		NavbarBackground:   "#0f172a",
		NavbarText:         "#ffffff",
		FontFamily:         "Inter",
		FontSizeBase:       16,
		LineHeight:         1.6,
		ButtonStyle:        "rounded",
		AnimationSpeed:     "normal",
		EnableHoverEffects: true,
		EnableFloatingOrbs: true,
	}
}

// Validate returns field-level errors for a theme that cannot be stored.
func (t *SiteTheme) Validate() ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(t.Name) == "" {
		errs = append(errs, NewMissingFieldError("name"))
	} else if len(t.Name) > 100 {
		errs = append(errs, NewOutOfRangeError("name", len(t.Name), 1, 100))
	}

	if !contains(BackgroundTypes, t.BackgroundType) {
		errs = append(errs, NewInvalidFormatError("background_type", t.BackgroundType))
	}
	if !contains(ButtonStyles, t.ButtonStyle) {
		errs = append(errs, NewInvalidFormatError("button_style", t.ButtonStyle))
	}
	if !contains(AnimationSpeeds, t.AnimationSpeed) {
		errs = append(errs, NewInvalidFormatError("animation_speed", t.AnimationSpeed))
	}

	colors := []struct {
		field string
		value string
	}{
		{"background_color_1", t.BackgroundColor1},
		{"background_color_2", t.BackgroundColor2},
		{"background_color_3", t.BackgroundColor3},
		{"primary_color", t.PrimaryColor},
		{"secondary_color", t.SecondaryColor},
		{"accent_color", t.AccentColor},
		{"text_primary", t.TextPrimary},
		{"text_secondary", t.TextSecondary},
		{"text_muted", t.TextMuted},
		{"navbar_background", t.NavbarBackground},
		{"navbar_text", t.NavbarText},
	}
	for _, c := range colors {
		if !hexColorPattern.MatchString(c.value) {
			errs = append(errs, NewInvalidFormatError(c.field, c.value))
		}
	}

	if t.BackgroundOpacity < 0 || t.BackgroundOpacity > 1 {
		errs = append(errs, ValidationError{
			Field:   "background_opacity",
			Code:    CodeOutOfRange,
			Message: "background_opacity must be between 0 and 1",
			Value:   t.BackgroundOpacity,
		})
	}
	if t.FontSizeBase < 10 || t.FontSizeBase > 32 {
		errs = append(errs, NewOutOfRangeError("font_size_base", t.FontSizeBase, 10, 32))
	}
	if t.LineHeight < 1 || t.LineHeight > 3 {
		errs = append(errs, NewOutOfRangeError("line_height", t.LineHeight, 1, 3))
	}
	if t.BackgroundType == "image" && strings.TrimSpace(t.BackgroundImage) == "" {
		errs = append(errs, NewMissingFieldError("background_image"))
	}

	return errs
}

// CSSVariables renders the theme as CSS custom properties on :root,
// followed by the theme's custom CSS.
func (t *SiteTheme) CSSVariables() string {
	var b strings.Builder
	b.WriteString(":root {\n")
	writeVar := func(name, value string) {
		fmt.Fprintf(&b, "  --%s: %s;\n", name, value)
	}
	writeVar("bg-color-1", t.BackgroundColor1)
	writeVar("bg-color-2", t.BackgroundColor2)
	writeVar("bg-color-3", t.BackgroundColor3)
	writeVar("bg-opacity", formatFloat(t.BackgroundOpacity))
	writeVar("background", t.background())
	writeVar("primary-color", t.PrimaryColor)
	writeVar("secondary-color", t.SecondaryColor)
	writeVar("accent-color", t.AccentColor)
	writeVar("text-primary", t.TextPrimary)
	writeVar("text-secondary", t.TextSecondary)
	writeVar("text-muted", t.TextMuted)
	writeVar("navbar-background", t.NavbarBackground)
	writeVar("navbar-text", t.NavbarText)
	writeVar("font-family", fmt.Sprintf("'%s', sans-serif", t.FontFamily))
	writeVar("font-size-base", fmt.Sprintf("%dpx", t.FontSizeBase))
	writeVar("line-height", formatFloat(t.LineHeight))
	writeVar("button-radius", buttonRadius(t.ButtonStyle))
	writeVar("animation-duration", animationDuration(t.AnimationSpeed))
	b.WriteString("}\n")

	if strings.TrimSpace(t.CustomCSS) != "" {
		b.WriteString(t.CustomCSS)
		if !strings.HasSuffix(t.CustomCSS, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (t *SiteTheme) background() string {
	switch t.BackgroundType {
	case "gradient":
		return fmt.Sprintf("linear-gradient(135deg, %s, %s, %s)", t.BackgroundColor1, t.BackgroundColor2, t.BackgroundColor3)
	case "image":
		return fmt.Sprintf("url('%s')", t.BackgroundImage)
	default:
		return t.BackgroundColor1
	}
}

func buttonRadius(style string) string {
	switch style {
	case "square":
		return "0"
	case "pill":
		return "9999px"
	default:
		return "0.75rem"
	}
}

func animationDuration(speed string) string {
	switch speed {
	case "slow":
		return "500ms"
	case "fast":
		return "150ms"
	default:
		return "300ms"
	}
}

func formatFloat(f float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", f), "0"), ".")
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
