// Package tokeninput is the masked prompt used by "hcwatch auth" to capture
// the health-check server API token.
package tokeninput

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Elpulgo/hcwatch/internal/ui/styles"
)

// TokenSubmittedMsg is sent when a token has been submitted
type TokenSubmittedMsg struct {
	Token string
}

// Model is the token prompt
type Model struct {
	styles    *styles.Styles
	textInput textinput.Model
	host      string
	err       string
	submitted bool
	cancelled bool
}

// NewModel creates a token prompt for the server at host
func NewModel(s *styles.Styles, host string) Model {
	ti := textinput.New()
	ti.Placeholder = "Paste the API token for " + host
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'

	return Model{
		styles:    s,
		textInput: ti,
		host:      host,
	}
}

// Init starts the cursor blinking
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses. Enter submits and quits, Esc cancels.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			token := strings.TrimSpace(m.textInput.Value())
			if token == "" {
				m.err = "token cannot be empty"
				return m, nil
			}

			m.submitted = true
			m.err = ""
			return m, tea.Batch(
				func() tea.Msg { return TokenSubmittedMsg{Token: token} },
				tea.Quit,
			)

		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// View renders the prompt
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("hcwatch API token") + "\n\n")
	b.WriteString("Requests to " + m.styles.Bold.Render(m.host) + " will send this token as a bearer credential.\n\n")
	b.WriteString(m.textInput.View() + "\n\n")

	if m.err != "" {
		b.WriteString(m.styles.Error.Render("Error: "+m.err) + "\n\n")
	}

	b.WriteString(m.styles.Muted.Render("Press Enter to save • Esc to cancel"))
	return b.String()
}

// Token returns the entered token without surrounding whitespace
func (m Model) Token() string {
	return strings.TrimSpace(m.textInput.Value())
}

// Submitted reports whether a token was submitted
func (m Model) Submitted() bool {
	return m.submitted
}

// Cancelled reports whether the prompt was dismissed
func (m Model) Cancelled() bool {
	return m.cancelled
}
