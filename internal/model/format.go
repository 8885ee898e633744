package model

import (
	"fmt"
	"math"
)

// FormatSeconds renders a per-piece duration, e.g. "1 min 30 sec".
func FormatSeconds(seconds float64) string {
	if seconds <= 0 {
		return "0 sec"
	}
	if seconds < 60 {
		return fmt.Sprintf("%g sec", seconds)
	}
	mins := math.Floor(seconds / 60)
	secs := math.Mod(seconds, 60)
	if secs > 0 {
		return fmt.Sprintf("%.0f min %g sec", mins, secs)
	}
	return fmt.Sprintf("%.0f min", mins)
}

// FormatMinutes renders a total duration given in minutes.
func FormatMinutes(minutes float64) string {
	if minutes <= 0 {
		return "0 min"
	}
	if minutes < 1 {
		return fmt.Sprintf("%.0f sec", math.Ceil(minutes*60))
	}
	whole := math.Floor(minutes)
	secs := math.Round((minutes - whole) * 60)
	if secs >= 60 {
		whole++
		secs = 0
	}
	if secs > 0 {
		return fmt.Sprintf("%.0f min %.0f sec", whole, secs)
	}
	return fmt.Sprintf("%.0f min", whole)
}

// CuttingDetails describes the cutting line, e.g. "48 min 20 sec (20 sec/pose + 15 min setup)".
func CuttingDetails(quantity int, s QuoteSettings, r Rates) string {
	total := CuttingSeconds(quantity, s, r) / 60
	return fmt.Sprintf("%s (%s/pose + %s setup)", FormatMinutes(total), FormatSeconds(s.CuttingSecondsPerPose), FormatMinutes(r.CuttingSetupMinutes))
}

// AssemblyDetails describes the assembly line.
func AssemblyDetails(quantity int, s QuoteSettings) string {
	total := s.AssemblySecondsPerItem * float64(quantity) / 60
	return fmt.Sprintf("%s (%s/pc)", FormatMinutes(total), FormatSeconds(s.AssemblySecondsPerItem))
}

// PackagingDetails describes the packing line, including the notice when enabled.
func PackagingDetails(quantity int, s QuoteSettings, r Rates) string {
	total := s.PackSecondsPerItem * float64(quantity) / 60
	details := fmt.Sprintf("%s (%s/pc)", FormatMinutes(total), FormatSeconds(s.PackSecondsPerItem))
	if s.AssemblyNotice {
		details += fmt.Sprintf(" + notice: %.2f", r.NoticeCostPerItem*float64(quantity))
	}
	return details
}
