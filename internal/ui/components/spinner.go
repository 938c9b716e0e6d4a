package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Elpulgo/hcwatch/internal/ui/styles"
)

// LoadingIndicator displays a spinner with a message while a refresh is in
// flight. It wraps the bubbles spinner component.
type LoadingIndicator struct {
	styles  *styles.Styles
	spinner spinner.Model
	message string
	visible bool
}

// NewLoadingIndicator creates a new LoadingIndicator with default settings.
func NewLoadingIndicator(s *styles.Styles) *LoadingIndicator {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Spinner

	return &LoadingIndicator{
		styles:  s,
		spinner: sp,
		message: "Refreshing...",
	}
}

// SetMessage sets the loading message to display.
func (l *LoadingIndicator) SetMessage(msg string) {
	l.message = msg
}

// Loading shows the indicator.
func (l *LoadingIndicator) Loading() {
	l.visible = true
}

// Finished hides the indicator.
func (l *LoadingIndicator) Finished() {
	l.visible = false
}

// IsVisible returns whether the loading indicator is currently visible.
func (l *LoadingIndicator) IsVisible() bool {
	return l.visible
}

// Init returns the spinner tick command.
func (l *LoadingIndicator) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update handles spinner tick messages. Ticks of other spinners are ignored
// by the underlying model.
func (l *LoadingIndicator) Update(msg tea.Msg) (*LoadingIndicator, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		l.spinner, cmd = l.spinner.Update(msg)
		return l, cmd
	}
	return l, nil
}

// View renders the loading indicator.
// Returns an empty string if not visible.
func (l *LoadingIndicator) View() string {
	if !l.visible {
		return ""
	}
	return l.spinner.View() + " " + l.styles.Spinner.Render(l.message)
}
