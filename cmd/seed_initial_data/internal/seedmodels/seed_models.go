package seedmodels

import "mindspark/internal/dto"

// SeedTheme is one entry of the theme seed file. Unset settings take the
// default theme's value.
type SeedTheme struct {
	dto.ThemeRequest
	// Active marks the theme to activate when no theme is active yet.
	Active bool `json:"active"`
}
