package polling

import (
	"context"
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/Elpulgo/hcwatch/internal/healthcheck"
	"github.com/Elpulgo/hcwatch/internal/visibility"
)

// Config identifies what a Poller monitors. It is copied at construction and
// never changed.
type Config struct {
	Host      string
	Port      int
	ServerSet string
	Title     string
}

// Fetcher performs the two remote calls a Poller needs.
// *healthcheck.Client satisfies it.
type Fetcher interface {
	FetchTopology(ctx context.Context, serverSet string) ([]healthcheck.ServerGroup, error)
	RefreshStatus(ctx context.Context, serverSet string) (*healthcheck.RefreshResult, error)
}

// TimerFunc schedules fire to be delivered after delay. The default is
// tea.Tick.
type TimerFunc func(delay time.Duration, fire tea.Msg) tea.Cmd

func teaTimer(delay time.Duration, fire tea.Msg) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg { return fire })
}

// Option configures a Poller.
type Option func(*Poller)

// WithLogger sets the logger used for transitions and failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Poller) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithClock sets the clock used to compute refresh delays.
func WithClock(clock Clock) Option {
	return func(p *Poller) {
		p.machine = NewMachine(clock)
	}
}

// WithTimer replaces the timer service.
func WithTimer(timer TimerFunc) Option {
	return func(p *Poller) {
		if timer != nil {
			p.timer = timer
		}
	}
}

// WithRequestTimeout bounds each fetch issued by the Poller.
func WithRequestTimeout(d time.Duration) Option {
	return func(p *Poller) {
		p.requestTimeout = d
	}
}

// Poller runs a Machine inside the Bubble Tea event loop for one panel.
// All methods must be called from the event loop goroutine.
type Poller struct {
	id             string
	cfg            Config
	fetcher        Fetcher
	display        Display
	machine        Machine
	errors         *ErrorHandler
	timer          TimerFunc
	requestTimeout time.Duration
	logger         *slog.Logger

	// hidden is the last visibility signal received.
	hidden      bool
	unsubscribe func()
}

// NewPoller creates a Poller in StateUninitialised. When bus is non-nil the
// Poller subscribes to it: hidden stops polling and visible starts it.
func NewPoller(cfg Config, fetcher Fetcher, display Display, bus *visibility.Bus, opts ...Option) *Poller {
	p := &Poller{
		id:             uuid.NewString(),
		cfg:            cfg,
		fetcher:        fetcher,
		display:        display.withDefaults(),
		machine:        NewMachine(nil),
		errors:         NewErrorHandler(),
		timer:          teaTimer,
		requestTimeout: healthcheck.DefaultTimeout,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With("server_set", cfg.ServerSet)

	if bus != nil {
		p.unsubscribe = bus.Subscribe(p.onVisibility)
	}

	return p
}

// ID returns the identifier carried by the Poller's messages.
func (p *Poller) ID() string {
	return p.id
}

// Config returns the Poller's configuration.
func (p *Poller) Config() Config {
	return p.cfg
}

// State returns the current state.
func (p *Poller) State() State {
	return p.machine.State()
}

// Errors returns the refresh error tracker.
func (p *Poller) Errors() *ErrorHandler {
	return p.errors
}

// Hidden reports whether the last visibility signal was Hidden.
func (p *Poller) Hidden() bool {
	return p.hidden
}

// Render attaches the panel to container and dispatches the topology fetch.
// It returns nil unless the Poller is uninitialised.
func (p *Poller) Render(container Container) tea.Cmd {
	if p.machine.State() != StateUninitialised {
		p.logger.Warn("render ignored", "state", p.machine.State())
		return nil
	}
	return p.dispatch(InitialiseMsg{Container: container})
}

// Unload stops polling and returns the Poller to StateUninitialised.
// It is safe to call in any state and more than once.
func (p *Poller) Unload() {
	p.dispatch(StopMsg{})
	p.dispatch(RemoveMsg{})
}

// Close unloads the Poller and drops its visibility subscription.
func (p *Poller) Close() {
	p.Unload()
	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
	}
}

// Update feeds a message into the machine. Fetch completions and ticks
// addressed to other pollers are ignored.
func (p *Poller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case TopologyFetched:
		if msg.ID != p.id {
			return nil
		}
		current := p.machine.State() == StateInitialising && msg.Seq == p.machine.TopologySeq()
		cmd := p.dispatch(msg)
		// Polling starts as soon as the topology is known, unless the
		// dashboard is currently hidden.
		if current && msg.Err == nil && p.machine.State() == StatePaused && !p.hidden {
			return batch(cmd, p.dispatch(StartMsg{}))
		}
		return cmd
	case StatusRefreshed:
		if msg.ID != p.id {
			return nil
		}
		return p.dispatch(msg)
	case TickMsg:
		if msg.ID != p.id {
			return nil
		}
		return p.dispatch(msg)
	case StartMsg, StopMsg:
		return p.dispatch(msg)
	}
	return nil
}

func (p *Poller) onVisibility(sig visibility.Signal) tea.Cmd {
	switch sig {
	case visibility.Hidden:
		p.hidden = true
		return p.dispatch(StopMsg{})
	case visibility.Visible:
		p.hidden = false
		return p.dispatch(StartMsg{})
	}
	return nil
}

// dispatch runs one transition and carries out its effects.
func (p *Poller) dispatch(ev tea.Msg) tea.Cmd {
	from := p.machine.State()

	next, effects := p.machine.Handle(ev)
	p.machine = next

	if to := next.State(); to != from {
		p.logger.Debug("poller transition", "from", from, "to", to)
	}

	var cmds []tea.Cmd
	for _, e := range effects {
		if cmd := p.apply(e); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return batch(cmds...)
}

func (p *Poller) apply(e Effect) tea.Cmd {
	switch e := e.(type) {
	case AttachLayout:
		p.display.Layout.AppendTo(e.Container)
	case FetchTopology:
		return p.fetchTopology(e.Seq)
	case SetGroups:
		p.display.Servers.SetGroups(e.Groups)
	case ShowFatal:
		p.logger.Error("topology fetch failed", "err", e.Err)
		p.display.Layout.SetContent(e.Message)
	case CancelTimer:
		p.logger.Debug("refresh timer cancelled", "seq", e.Seq)
	case ScheduleTimer:
		p.logger.Debug("refresh scheduled", "seq", e.Seq, "delay", e.Delay)
		return p.timer(e.Delay, TickMsg{ID: p.id, Seq: e.Seq})
	case ShowLoading:
		p.display.Loading.Loading()
	case FetchStatus:
		return p.refreshStatus(e.Seq)
	case ApplyRefresh:
		p.display.Servers.UpdateStatus(e.Result.Groups)
		p.display.LastUpdated.SetLastUpdated(e.Result.RefreshedAt)
		if e.Stale && p.machine.State() == StateRefreshing {
			// A newer request is still in flight and owns the loading
			// indicator, the banner and the failure count.
			return nil
		}
		p.display.Loading.Finished()
		p.display.Error.Hide()
		if !e.Stale {
			p.errors.Succeeded(e.Result)
		}
	case ShowRefreshError:
		p.errors.SetError(e.Err)
		p.logger.Warn("status refresh failed",
			"err", e.Err,
			"consecutive", p.errors.ConsecutiveErrors(),
			"retry_in", RetryBackoff,
		)
		p.display.Error.Show(e.Message)
		p.display.Loading.Finished()
		p.display.LastUpdated.RefreshText()
	}
	return nil
}

func (p *Poller) fetchTopology(seq uint64) tea.Cmd {
	id, serverSet, fetcher, timeout := p.id, p.cfg.ServerSet, p.fetcher, p.requestTimeout

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		groups, err := fetcher.FetchTopology(ctx, serverSet)
		return TopologyFetched{ID: id, Seq: seq, Groups: groups, Err: err}
	}
}

func (p *Poller) refreshStatus(seq uint64) tea.Cmd {
	id, serverSet, fetcher, timeout := p.id, p.cfg.ServerSet, p.fetcher, p.requestTimeout

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		result, err := fetcher.RefreshStatus(ctx, serverSet)
		return StatusRefreshed{ID: id, Seq: seq, Result: result, Err: err}
	}
}

// batch drops nil commands and avoids wrapping a single command.
func batch(cmds ...tea.Cmd) tea.Cmd {
	valid := cmds[:0:0]
	for _, c := range cmds {
		if c != nil {
			valid = append(valid, c)
		}
	}

	switch len(valid) {
	case 0:
		return nil
	case 1:
		return valid[0]
	default:
		return tea.Batch(valid...)
	}
}
