package ui

import (
	"testing"

	"fyne.io/fyne/v2/theme"
)

func TestNewPlateQuoteThemeNamed(t *testing.T) {
	light := NewPlateQuoteThemeNamed("light")
	if !light.fixed || light.variant != theme.VariantLight {
		t.Errorf("light theme: fixed=%v variant=%v", light.fixed, light.variant)
	}

	dark := NewPlateQuoteThemeNamed("dark")
	if !dark.fixed || dark.variant != theme.VariantDark {
		t.Errorf("dark theme: fixed=%v variant=%v", dark.fixed, dark.variant)
	}

	if NewPlateQuoteThemeNamed("system").fixed {
		t.Error("system theme should follow the OS variant")
	}
}

func TestPlateQuoteTheme_CompactSizes(t *testing.T) {
	th := NewPlateQuoteTheme()
	if got := th.Size(theme.SizeNameText); got != 12 {
		t.Errorf("text size = %v, want 12", got)
	}
	if got := th.Size(theme.SizeNamePadding); got != 3 {
		t.Errorf("padding = %v, want 3", got)
	}
}
