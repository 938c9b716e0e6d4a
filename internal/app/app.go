// Package app is the root Bubble Tea model. It hosts one panel and one
// poller per configured widget and turns terminal focus and the pause key
// into visibility signals.
package app

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Elpulgo/hcwatch/internal/config"
	"github.com/Elpulgo/hcwatch/internal/logging"
	"github.com/Elpulgo/hcwatch/internal/polling"
	"github.com/Elpulgo/hcwatch/internal/ui/components"
	"github.com/Elpulgo/hcwatch/internal/ui/styles"
	"github.com/Elpulgo/hcwatch/internal/visibility"
)

// labelRefreshInterval is how often last-updated labels re-render their age.
const labelRefreshInterval = 10 * time.Second

type labelTickMsg struct{}

type widget struct {
	panel  *components.Panel
	poller *polling.Poller
}

// Option configures the Model.
type Option func(*Model)

// WithLogger sets the logger handed to every poller.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithPollerOptions appends options applied to every poller.
func WithPollerOptions(opts ...polling.Option) Option {
	return func(m *Model) {
		m.pollerOpts = append(m.pollerOpts, opts...)
	}
}

// Model is the root application model for the TUI
type Model struct {
	cfg       *config.Config
	styles    *styles.Styles
	keys      keyMap
	bus       *visibility.Bus
	dashboard *components.Dashboard
	statusBar *components.StatusBar
	help      *components.HelpModal
	widgets   []widget
	logger    *slog.Logger

	pollerOpts []polling.Option

	// focused tracks terminal focus, paused the pause key. Pollers are
	// hidden when either says so.
	focused bool
	paused  bool
	hidden  bool

	width  int
	height int
}

// NewModel creates the dashboard for cfg. Every widget polls through fetcher.
func NewModel(cfg *config.Config, fetcher polling.Fetcher, opts ...Option) Model {
	s := styles.NewStyles(styles.GetThemeByNameWithFallback(cfg.GetTheme()))
	keys := defaultKeyMap()

	m := Model{
		cfg:       cfg,
		styles:    s,
		keys:      keys,
		bus:       visibility.NewBus(),
		dashboard: components.NewDashboard(),
		statusBar: components.NewStatusBar(s),
		help:      components.NewHelpModal(s, components.SectionFromKeys("Dashboard", keys.bindings()...)),
		logger:    logging.Discard(),
		focused:   true,
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.statusBar.SetServer(cfg.Host, cfg.Port)
	m.statusBar.SetHelpText("p pause · r reload · ? help · q quit")

	for _, pc := range cfg.PollerConfigs() {
		panel := components.NewPanel(pc.Title, s)

		pollerOpts := append([]polling.Option{polling.WithLogger(m.logger)}, m.pollerOpts...)
		poller := polling.NewPoller(pc, fetcher, panel.Display(), m.bus, pollerOpts...)

		m.widgets = append(m.widgets, widget{panel: panel, poller: poller})
	}

	return m
}

// Init renders every widget into the dashboard.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{labelTick()}
	for _, w := range m.widgets {
		cmds = append(cmds, w.panel.Init(), w.poller.Render(m.dashboard))
	}
	return tea.Batch(cmds...)
}

// Update routes messages to the pollers and panels.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.FocusMsg, tea.BlurMsg:
		sig, _ := visibility.FromMsg(msg)
		m.focused = sig == visibility.Visible
		return m, m.syncVisibility()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmds []tea.Cmd
		for _, w := range m.widgets {
			cmds = append(cmds, w.panel.Update(msg))
		}
		return m, tea.Batch(cmds...)

	case labelTickMsg:
		for _, w := range m.widgets {
			w.panel.LastUpdated().Tick()
		}
		return m, labelTick()
	}

	var cmds []tea.Cmd
	for _, w := range m.widgets {
		cmds = append(cmds, w.poller.Update(msg))
	}
	m.updateRecovery()
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.help.IsVisible() && !key.Matches(msg, m.keys.Quit) {
		m.help, _ = m.help.Update(msg)
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		return m, m.syncVisibility()

	case key.Matches(msg, m.keys.Reload):
		return m, m.reloadFailed()

	case key.Matches(msg, m.keys.Theme):
		m.cycleTheme()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.Toggle()
		return m, nil
	}

	return m, nil
}

// syncVisibility publishes a signal when the combined focus and pause state
// changes.
func (m *Model) syncVisibility() tea.Cmd {
	hidden := m.paused || !m.focused
	if hidden == m.hidden {
		return nil
	}
	m.hidden = hidden
	m.statusBar.SetPaused(hidden)

	sig := visibility.Visible
	if hidden {
		sig = visibility.Hidden
	}
	m.logger.Debug("visibility changed", "signal", sig, "focused", m.focused, "paused", m.paused)
	return m.bus.Publish(sig)
}

// reloadFailed unloads and renders again every widget whose initialisation
// failed.
func (m *Model) reloadFailed() tea.Cmd {
	var cmds []tea.Cmd
	for _, w := range m.widgets {
		if w.poller.State() != polling.StateFailedToInitialise {
			continue
		}
		w.poller.Unload()
		cmds = append(cmds, w.poller.Render(m.dashboard))
	}
	return tea.Batch(cmds...)
}

// cycleTheme switches to the next built-in theme in place, so every
// component sharing the styles picks it up, and persists the choice.
func (m *Model) cycleTheme() {
	names := styles.ListAvailableThemes()
	next := names[0]
	for i, name := range names {
		if name == m.styles.Theme.Name {
			next = names[(i+1)%len(names)]
			break
		}
	}

	*m.styles = *styles.NewStyles(styles.GetThemeByNameWithFallback(next))

	if m.cfg.Path() == "" {
		return
	}
	if err := m.cfg.UpdateTheme(next); err != nil {
		m.logger.Warn("failed to save theme", "theme", next, "err", err)
	}
}

func (m *Model) updateRecovery() {
	for _, w := range m.widgets {
		if w.poller.Errors().HasError() {
			m.statusBar.SetRecovery(w.poller.Errors().RecoveryMessage())
			return
		}
	}
	m.statusBar.SetRecovery("")
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	m.dashboard.SetWidth(width)
	for _, w := range m.widgets {
		w.panel.SetWidth(m.dashboard.ColumnWidth())
	}
	m.statusBar.SetWidth(width)
	m.help.SetSize(width, height)
}

// Close unloads every poller and drops their visibility subscriptions.
func (m Model) Close() {
	for _, w := range m.widgets {
		w.poller.Close()
	}
}

// Pollers returns the pollers in widget order.
func (m Model) Pollers() []*polling.Poller {
	out := make([]*polling.Poller, len(m.widgets))
	for i, w := range m.widgets {
		out[i] = w.poller
	}
	return out
}

// View renders the dashboard with the status bar underneath.
func (m Model) View() string {
	if m.help.IsVisible() {
		return m.help.View()
	}

	body := m.dashboard.View()
	if m.height > 0 {
		body = lipgloss.NewStyle().Height(max(m.height-1, 0)).Render(body)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, m.statusBar.View())
}

func labelTick() tea.Cmd {
	return tea.Tick(labelRefreshInterval, func(time.Time) tea.Msg { return labelTickMsg{} })
}
