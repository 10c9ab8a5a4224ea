package dto

import "mindspark/internal/domain"

// ThemeRequest creates or updates a site theme. On update, nil fields keep
// their stored value; on create they take the default theme's value.
// @Description Request body for creating or updating a site theme
type ThemeRequest struct {
	Name               *string  `json:"name,omitempty"`
	BackgroundType     *string  `json:"background_type,omitempty"`
	BackgroundColor1   *string  `json:"background_color_1,omitempty"`
	BackgroundColor2   *string  `json:"background_color_2,omitempty"`
	BackgroundColor3   *string  `json:"background_color_3,omitempty"`
	BackgroundImage    *string  `json:"background_image,omitempty"`
	BackgroundOpacity  *float64 `json:"background_opacity,omitempty"`
	PrimaryColor       *string  `json:"primary_color,omitempty"`
	SecondaryColor     *string  `json:"secondary_color,omitempty"`
	AccentColor        *string  `json:"accent_color,omitempty"`
	TextPrimary        *string  `json:"text_primary,omitempty"`
	TextSecondary      *string  `json:"text_secondary,omitempty"`
	TextMuted          *string  `json:"text_muted,omitempty"`
	NavbarBackground   *string  `json:"navbar_background,omitempty"`
	NavbarText         *string  `json:"navbar_text,omitempty"`
	FontFamily         *string  `json:"font_family,omitempty"`
	FontSizeBase       *int     `json:"font_size_base,omitempty"`
	LineHeight         *float64 `json:"line_height,omitempty"`
	ButtonStyle        *string  `json:"button_style,omitempty"`
	AnimationSpeed     *string  `json:"animation_speed,omitempty"`
	EnableHoverEffects *bool    `json:"enable_hover_effects,omitempty"`
	EnableFloatingOrbs *bool    `json:"enable_floating_orbs,omitempty"`
	CustomCSS          *string  `json:"custom_css,omitempty"`
}

// ApplyTo overwrites the theme's settings with every non-nil field.
func (r *ThemeRequest) ApplyTo(t *domain.SiteTheme) {
	setString(&t.Name, r.Name)
	setString(&t.BackgroundType, r.BackgroundType)
	setString(&t.BackgroundColor1, r.BackgroundColor1)
	setString(&t.BackgroundColor2, r.BackgroundColor2)
	setString(&t.BackgroundColor3, r.BackgroundColor3)
	setString(&t.BackgroundImage, r.BackgroundImage)
	if r.BackgroundOpacity != nil {
		t.BackgroundOpacity = *r.BackgroundOpacity
	}
	setString(&t.PrimaryColor, r.PrimaryColor)
	setString(&t.SecondaryColor, r.SecondaryColor)
	setString(&t.AccentColor, r.AccentColor)
	setString(&t.TextPrimary, r.TextPrimary)
	setString(&t.TextSecondary, r.TextSecondary)
	setString(&t.TextMuted, r.TextMuted)
	setString(&t.NavbarBackground, r.NavbarBackground)
	setString(&t.NavbarText, r.NavbarText)
	setString(&t.FontFamily, r.FontFamily)
	if r.FontSizeBase != nil {
		t.FontSizeBase = *r.FontSizeBase
	}
	if r.LineHeight != nil {
		t.LineHeight = *r.LineHeight
	}
	setString(&t.ButtonStyle, r.ButtonStyle)
	setString(&t.AnimationSpeed, r.AnimationSpeed)
	if r.EnableHoverEffects != nil {
		t.EnableHoverEffects = *r.EnableHoverEffects
	}
	if r.EnableFloatingOrbs != nil {
		t.EnableFloatingOrbs = *r.EnableFloatingOrbs
	}
	setString(&t.CustomCSS, r.CustomCSS)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// ThemeListResponse lists every stored theme.
type ThemeListResponse struct {
	Themes []*domain.SiteTheme `json:"themes"`
}
