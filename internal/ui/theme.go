// Package ui provides the PlateQuote desktop application.
//
// This file defines a compact Fyne theme for the dense quoting forms.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// PlateQuoteTheme wraps the default Fyne theme with compact sizing and an
// optional fixed light/dark variant.
type PlateQuoteTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	fixed   bool // false follows the system variant
}

// NewPlateQuoteTheme creates a theme that follows the system variant.
func NewPlateQuoteTheme() *PlateQuoteTheme {
	return &PlateQuoteTheme{base: theme.DefaultTheme()}
}

// NewPlateQuoteThemeNamed creates a theme from a config value: "light",
// "dark" or anything else for the system default.
func NewPlateQuoteThemeNamed(name string) *PlateQuoteTheme {
	t := NewPlateQuoteTheme()
	switch name {
	case "light":
		t.SetVariant(theme.VariantLight)
	case "dark":
		t.SetVariant(theme.VariantDark)
	}
	return t
}

// SetVariant pins the theme to a light or dark variant.
func (t *PlateQuoteTheme) SetVariant(variant fyne.ThemeVariant) {
	t.variant = variant
	t.fixed = true
}

func (t *PlateQuoteTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.fixed {
		variant = t.variant
	}
	return t.base.Color(name, variant)
}

func (t *PlateQuoteTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *PlateQuoteTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides.
func (t *PlateQuoteTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 16
	default:
		return t.base.Size(name)
	}
}
