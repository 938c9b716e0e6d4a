package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the dashboard.
// Colors can be ANSI 256 codes (e.g., "33") or hex (e.g., "#7c6f64").
type Theme struct {
	Name string

	// Headers, panel titles, key hints
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	// Server status colors
	Success lipgloss.Color // up
	Warning lipgloss.Color // degraded
	Error   lipgloss.Color // down, error banner
	Info    lipgloss.Color

	Background    lipgloss.Color
	BackgroundAlt lipgloss.Color // banners and overlays

	Foreground      lipgloss.Color
	ForegroundMuted lipgloss.Color // unknown status, metadata
	ForegroundBold  lipgloss.Color

	Border  lipgloss.Color
	Spinner lipgloss.Color
}

// Validate checks that the theme can be registered.
func (t Theme) Validate() error {
	if t.Name == "" {
		return ErrThemeNameRequired
	}
	return nil
}

// ThemeError represents errors related to theme operations.
type ThemeError struct {
	Message string
}

func (e ThemeError) Error() string {
	return e.Message
}

// Common theme errors
var (
	ErrThemeNameRequired = ThemeError{Message: "theme name is required"}
	ErrThemeNotFound     = ThemeError{Message: "theme not found"}
)
