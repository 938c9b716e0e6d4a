// Package components provides the display modules of the dashboard.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Elpulgo/hcwatch/internal/ui/styles"
)

// StatusBar displays the monitored server, whether polling is live, the
// current recovery message and help hints at the bottom of the screen.
type StatusBar struct {
	styles   *styles.Styles
	host     string
	port     int
	paused   bool
	recovery string
	helpText string
	width    int
}

// NewStatusBar creates a new StatusBar with default values.
func NewStatusBar(s *styles.Styles) *StatusBar {
	return &StatusBar{
		styles:   s,
		helpText: "? help",
	}
}

// SetServer sets the health-check server shown on the left.
func (s *StatusBar) SetServer(host string, port int) {
	s.host = host
	s.port = port
}

// SetPaused sets whether polling is paused.
func (s *StatusBar) SetPaused(paused bool) {
	s.paused = paused
}

// SetRecovery sets the recovery message; "" clears it.
func (s *StatusBar) SetRecovery(message string) {
	s.recovery = message
}

// SetHelpText sets custom help text to display.
func (s *StatusBar) SetHelpText(text string) {
	s.helpText = text
}

// SetWidth sets the width of the status bar.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// View renders the status bar.
func (s *StatusBar) View() string {
	left := s.renderServer()
	center := s.renderState()
	right := s.styles.Muted.Render(s.helpText)

	leftLen := lipgloss.Width(left)
	centerLen := lipgloss.Width(center)
	rightLen := lipgloss.Width(right)

	width := s.width
	if minWidth := leftLen + centerLen + rightLen + 4; width < minWidth {
		width = minWidth
	}

	remaining := width - leftLen - centerLen - rightLen
	if remaining < 2 {
		remaining = 2
	}
	leftPadding := remaining / 2
	rightPadding := remaining - leftPadding

	// Inline avoids wrapping when the terminal is narrow
	bar := left + strings.Repeat(" ", leftPadding) + center + strings.Repeat(" ", rightPadding) + right
	return s.styles.StatusBar.Inline(true).Render(bar)
}

func (s *StatusBar) renderServer() string {
	if s.host == "" {
		return ""
	}
	return s.styles.Bold.Render(fmt.Sprintf("%s:%d", s.host, s.port))
}

func (s *StatusBar) renderState() string {
	var state string
	if s.paused {
		state = s.styles.Paused.Render("⏸ paused")
	} else {
		state = s.styles.Live.Render("● live")
	}

	if s.recovery != "" {
		state += "  " + s.styles.Warning.Render(s.recovery)
	}
	return state
}
