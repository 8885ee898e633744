package model

// maxRecentStudies bounds the RecentStudies list.
const maxRecentStudies = 10

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new quotes
	DefaultSpacing         float64   `json:"default_spacing"`
	DefaultCuttingSeconds  float64   `json:"default_cutting_seconds"`
	DefaultPrintMode       PrintMode `json:"default_print_mode"`
	DefaultQuantity        int       `json:"default_quantity"`
	DefaultStudyPrefix     string    `json:"default_study_prefix"`
	DefaultPrintSurfacePct float64   `json:"default_print_surface_pct"`

	// Shop rates used by every quote
	Rates Rates `json:"rates"`

	// Application preferences
	RecentStudies []string `json:"recent_studies"`
	Theme         string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultSpacing:         defaults.Spacing,
		DefaultCuttingSeconds:  defaults.CuttingSecondsPerPose,
		DefaultPrintMode:       defaults.PrintMode,
		DefaultQuantity:        100,
		DefaultStudyPrefix:     DefaultStudyPrefix,
		DefaultPrintSurfacePct: defaults.PrintSurfacePercent,
		Rates:                  DefaultRates(),
		RecentStudies:          []string{},
		Theme:                  "system",
	}
}

// ApplyToSettings copies the default values from AppConfig into a QuoteSettings.
// This is used when starting a new quote so it inherits the user's saved defaults.
func (c AppConfig) ApplyToSettings(s *QuoteSettings) {
	s.Spacing = c.DefaultSpacing
	s.CuttingSecondsPerPose = c.DefaultCuttingSeconds
	s.PrintSurfacePercent = c.DefaultPrintSurfacePct
	if c.DefaultPrintMode != "" {
		s.PrintMode = c.DefaultPrintMode
	}
}

// AddRecentStudy moves study to the front of RecentStudies, dropping
// duplicates and keeping at most maxRecentStudies entries.
func (c *AppConfig) AddRecentStudy(study string) {
	if study == "" {
		return
	}
	recent := []string{study}
	for _, s := range c.RecentStudies {
		if s != study && len(recent) < maxRecentStudies {
			recent = append(recent, s)
		}
	}
	c.RecentStudies = recent
}
