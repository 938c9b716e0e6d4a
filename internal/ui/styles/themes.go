package styles

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// themeRegistry holds all built-in themes
var themeRegistry = map[string]Theme{
	"dark":    darkTheme,
	"light":   lightTheme,
	"gruvbox": gruvboxTheme,
	"nord":    nordTheme,
}

// GetThemeByName returns a theme by name.
// Returns ErrThemeNotFound if the theme doesn't exist.
func GetThemeByName(name string) (Theme, error) {
	theme, ok := themeRegistry[name]
	if !ok {
		return Theme{}, ErrThemeNotFound
	}
	return theme, nil
}

// GetThemeByNameWithFallback returns a theme by name, falling back to the default
// theme if the requested theme doesn't exist.
func GetThemeByNameWithFallback(name string) Theme {
	theme, err := GetThemeByName(name)
	if err != nil {
		return GetDefaultTheme()
	}
	return theme
}

// GetDefaultTheme returns the default dark theme.
func GetDefaultTheme() Theme {
	return darkTheme
}

// ListAvailableThemes returns a sorted list of all available theme names.
func ListAvailableThemes() []string {
	names := make([]string, 0, len(themeRegistry))
	for name := range themeRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var darkTheme = Theme{
	Name: "dark",

	Primary:   lipgloss.Color("33"),  // Blue
	Secondary: lipgloss.Color("39"),  // Cyan
	Accent:    lipgloss.Color("212"), // Magenta

	Success: lipgloss.Color("42"),  // Green
	Warning: lipgloss.Color("214"), // Orange
	Error:   lipgloss.Color("196"), // Red
	Info:    lipgloss.Color("33"),

	Background:    lipgloss.Color("236"),
	BackgroundAlt: lipgloss.Color("235"),

	Foreground:      lipgloss.Color("252"),
	ForegroundMuted: lipgloss.Color("243"),
	ForegroundBold:  lipgloss.Color("255"),

	Border:  lipgloss.Color("240"),
	Spinner: lipgloss.Color("205"),
}

var lightTheme = Theme{
	Name: "light",

	Primary:   lipgloss.Color("25"),
	Secondary: lipgloss.Color("30"),
	Accent:    lipgloss.Color("127"),

	Success: lipgloss.Color("28"),
	Warning: lipgloss.Color("130"),
	Error:   lipgloss.Color("160"),
	Info:    lipgloss.Color("25"),

	Background:    lipgloss.Color("255"),
	BackgroundAlt: lipgloss.Color("254"),

	Foreground:      lipgloss.Color("235"),
	ForegroundMuted: lipgloss.Color("245"),
	ForegroundBold:  lipgloss.Color("232"),

	Border:  lipgloss.Color("250"),
	Spinner: lipgloss.Color("127"),
}

// Gruvbox dark theme
var gruvboxTheme = Theme{
	Name: "gruvbox",

	Primary:   lipgloss.Color("#458588"), // Blue
	Secondary: lipgloss.Color("#689d6a"), // Aqua
	Accent:    lipgloss.Color("#d3869b"), // Purple

	Success: lipgloss.Color("#b8bb26"),
	Warning: lipgloss.Color("#fabd2f"),
	Error:   lipgloss.Color("#fb4934"),
	Info:    lipgloss.Color("#83a598"),

	Background:    lipgloss.Color("#282828"), // bg0
	BackgroundAlt: lipgloss.Color("#1d2021"), // bg0_h

	Foreground:      lipgloss.Color("#ebdbb2"),
	ForegroundMuted: lipgloss.Color("#928374"),
	ForegroundBold:  lipgloss.Color("#fbf1c7"),

	Border:  lipgloss.Color("#504945"),
	Spinner: lipgloss.Color("#d3869b"),
}

// Nord theme
var nordTheme = Theme{
	Name: "nord",

	Primary:   lipgloss.Color("#81a1c1"), // Nord9
	Secondary: lipgloss.Color("#88c0d0"), // Nord8
	Accent:    lipgloss.Color("#b48ead"), // Nord15

	Success: lipgloss.Color("#a3be8c"),
	Warning: lipgloss.Color("#ebcb8b"),
	Error:   lipgloss.Color("#bf616a"),
	Info:    lipgloss.Color("#5e81ac"),

	Background:    lipgloss.Color("#2e3440"), // Nord0
	BackgroundAlt: lipgloss.Color("#3b4252"), // Nord1

	Foreground:      lipgloss.Color("#eceff4"),
	ForegroundMuted: lipgloss.Color("#4c566a"),
	ForegroundBold:  lipgloss.Color("#eceff4"),

	Border:  lipgloss.Color("#4c566a"),
	Spinner: lipgloss.Color("#b48ead"),
}
