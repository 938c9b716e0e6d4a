package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Elpulgo/hcwatch/internal/ui/styles"
)

// ErrorBanner is a one-line notice shown inside a panel while refreshes fail.
// The panel keeps rendering its last known statuses underneath.
type ErrorBanner struct {
	styles  *styles.Styles
	visible bool
	message string
	width   int
}

// NewErrorBanner creates a hidden ErrorBanner.
func NewErrorBanner(s *styles.Styles) *ErrorBanner {
	return &ErrorBanner{styles: s}
}

// Show makes the banner visible with the given message.
func (b *ErrorBanner) Show(message string) {
	b.message = message
	b.visible = true
}

// Hide hides the banner.
func (b *ErrorBanner) Hide() {
	b.visible = false
}

// IsVisible returns true if the banner is visible.
func (b *ErrorBanner) IsVisible() bool {
	return b.visible
}

// Message returns the last message shown.
func (b *ErrorBanner) Message() string {
	return b.message
}

// SetWidth sets the width the banner wraps to. Zero disables wrapping.
func (b *ErrorBanner) SetWidth(width int) {
	b.width = width
}

// View renders the banner, or "" when hidden.
func (b *ErrorBanner) View() string {
	if !b.visible {
		return ""
	}

	style := b.styles.Banner
	if b.width > 0 {
		style = style.Width(b.width)
	}
	return style.Render(lipgloss.JoinHorizontal(lipgloss.Top, "⚠ ", b.message))
}
