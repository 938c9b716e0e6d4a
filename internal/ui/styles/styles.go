package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Elpulgo/hcwatch/internal/healthcheck"
)

// Styles holds the lipgloss styles for the dashboard, generated from a Theme.
type Styles struct {
	// Theme is the source theme for these styles
	Theme Theme

	// Containers
	Panel    lipgloss.Style
	ModalBox lipgloss.Style
	Banner   lipgloss.Style

	// Text
	Header      lipgloss.Style
	Title       lipgloss.Style
	GroupHeader lipgloss.Style
	Value       lipgloss.Style
	Muted       lipgloss.Style
	Bold        lipgloss.Style

	// Semantic
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	// Key hints
	Key         lipgloss.Style
	Description lipgloss.Style

	Spinner   lipgloss.Style
	StatusBar lipgloss.Style

	// Polling indicator in the status bar
	Live   lipgloss.Style
	Paused lipgloss.Style
}

// NewStyles creates a new Styles instance from the given theme.
func NewStyles(theme Theme) *Styles {
	s := &Styles{
		Theme: theme,
	}

	s.Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	s.ModalBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Background(theme.BackgroundAlt).
		Padding(1, 2)

	s.Banner = lipgloss.NewStyle().
		Foreground(theme.Error).
		Background(theme.BackgroundAlt).
		Bold(true).
		Padding(0, 1)

	s.Header = lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	s.Title = lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	s.GroupHeader = lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true)

	s.Value = lipgloss.NewStyle().
		Foreground(theme.Foreground)

	s.Muted = lipgloss.NewStyle().
		Foreground(theme.ForegroundMuted)

	s.Bold = lipgloss.NewStyle().
		Foreground(theme.ForegroundBold).
		Bold(true)

	s.Success = lipgloss.NewStyle().Foreground(theme.Success)
	s.Warning = lipgloss.NewStyle().Foreground(theme.Warning)
	s.Error = lipgloss.NewStyle().Foreground(theme.Error)
	s.Info = lipgloss.NewStyle().Foreground(theme.Info)

	s.Key = lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true)

	s.Description = lipgloss.NewStyle().
		Foreground(theme.Foreground)

	s.Spinner = lipgloss.NewStyle().
		Foreground(theme.Spinner)

	s.StatusBar = lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Background(theme.Background)

	s.Live = lipgloss.NewStyle().
		Foreground(theme.Success).
		Bold(true)

	s.Paused = lipgloss.NewStyle().
		Foreground(theme.Warning).
		Bold(true)

	return s
}

// DefaultStyles returns styles using the default dark theme.
func DefaultStyles() *Styles {
	return NewStyles(GetDefaultTheme())
}

// ForStatus returns the style used to render a server status.
func (s *Styles) ForStatus(status healthcheck.Status) lipgloss.Style {
	switch status {
	case healthcheck.StatusUp:
		return s.Success
	case healthcheck.StatusDown:
		return s.Error
	case healthcheck.StatusDegraded:
		return s.Warning
	default:
		return s.Muted
	}
}

// StatusSymbol returns the glyph drawn next to a server.
func StatusSymbol(status healthcheck.Status) string {
	switch status {
	case healthcheck.StatusUp:
		return "●"
	case healthcheck.StatusDown:
		return "✗"
	case healthcheck.StatusDegraded:
		return "◐"
	default:
		return "?"
	}
}
