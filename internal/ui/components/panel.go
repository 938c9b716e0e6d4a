package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Elpulgo/hcwatch/internal/polling"
	"github.com/Elpulgo/hcwatch/internal/ui/styles"
)

// Panel is the frame of one health-check widget. It owns the display
// modules a Poller drives and lays them out.
type Panel struct {
	styles *styles.Styles
	title  string
	width  int

	// content replaces the modules when set, e.g. after a failed
	// initialisation.
	content string

	loading     *LoadingIndicator
	lastUpdated *LastUpdated
	banner      *ErrorBanner
	servers     *ServerList
}

// NewPanel creates a Panel titled title.
func NewPanel(title string, s *styles.Styles) *Panel {
	return &Panel{
		styles:      s,
		title:       title,
		loading:     NewLoadingIndicator(s),
		lastUpdated: NewLastUpdated(s),
		banner:      NewErrorBanner(s),
		servers:     NewServerList(s),
	}
}

// Display returns the collaborators for a Poller.
func (p *Panel) Display() polling.Display {
	return polling.Display{
		Layout:      p,
		Loading:     p.loading,
		LastUpdated: p.lastUpdated,
		Error:       p.banner,
		Servers:     p.servers,
	}
}

// AppendTo mounts the panel into c and clears any replaced content.
func (p *Panel) AppendTo(c polling.Container) {
	p.content = ""
	c.Mount(p)
}

// SetContent replaces the panel body with content.
func (p *Panel) SetContent(content string) {
	p.content = content
}

// Content returns the replacement body, "" when the modules are shown.
func (p *Panel) Content() string {
	return p.content
}

// Title returns the panel title.
func (p *Panel) Title() string {
	return p.title
}

// SetWidth sets the outer width of the panel.
func (p *Panel) SetWidth(width int) {
	p.width = width
	p.banner.SetWidth(max(width-4, 0))
}

// Servers returns the panel's server list.
func (p *Panel) Servers() *ServerList { return p.servers }

// Banner returns the panel's error banner.
func (p *Panel) Banner() *ErrorBanner { return p.banner }

// LastUpdated returns the panel's last-updated label.
func (p *Panel) LastUpdated() *LastUpdated { return p.lastUpdated }

// Loading returns the panel's loading indicator.
func (p *Panel) Loading() *LoadingIndicator { return p.loading }

// Init starts the spinner.
func (p *Panel) Init() tea.Cmd {
	return p.loading.Init()
}

// Update forwards spinner ticks.
func (p *Panel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.loading, cmd = p.loading.Update(msg)
	return cmd
}

// View renders the panel.
func (p *Panel) View() string {
	var b strings.Builder

	header := p.styles.Title.Render(p.title)
	if spin := p.loading.View(); spin != "" {
		header += "  " + spin
	}
	b.WriteString(header)
	b.WriteString("\n")

	if p.content != "" {
		b.WriteString(p.styles.Error.Render(p.content))
		return p.frame(b.String())
	}

	if banner := p.banner.View(); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}
	if summary := p.servers.Summary(); summary != "" {
		b.WriteString(summary)
		b.WriteString("\n")
	}
	b.WriteString(p.servers.View())
	b.WriteString("\n\n")
	b.WriteString(p.lastUpdated.View())

	return p.frame(b.String())
}

func (p *Panel) frame(body string) string {
	style := p.styles.Panel
	if p.width > 2 {
		style = style.Width(p.width - 2)
	}
	return style.Render(body)
}
