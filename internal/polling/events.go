// Package polling keeps a health check panel in sync with the health check
// server. A Machine holds the polling state and decides transitions; a Poller
// runs it inside the Bubble Tea event loop, turning effects into display
// updates, fetch commands and timers.
package polling

import "github.com/Elpulgo/hcwatch/internal/healthcheck"

// State is the polling state of a single panel.
type State int

const (
	// StateUninitialised is the state before Render and after Unload
	StateUninitialised State = iota
	// StateInitialising waits for the topology fetch
	StateInitialising
	// StateFailedToInitialise shows a fatal error; there is no recovery path
	StateFailedToInitialise
	// StatePaused holds no timer and ignores fetch failures
	StatePaused
	// StateWaiting has a timer pending for the next refresh
	StateWaiting
	// StateRefreshFailed shows the refresh error before waiting for a retry
	StateRefreshFailed
	// StateRefreshing has a status request in flight
	StateRefreshing
)

// String returns a human-readable string for the state.
func (s State) String() string {
	switch s {
	case StateUninitialised:
		return "uninitialised"
	case StateInitialising:
		return "initialising"
	case StateFailedToInitialise:
		return "failed-to-initialise"
	case StatePaused:
		return "paused"
	case StateWaiting:
		return "waiting"
	case StateRefreshFailed:
		return "refresh-failed"
	case StateRefreshing:
		return "refreshing"
	default:
		return "unknown"
	}
}

// InitialiseMsg attaches the panel to its container and starts the topology
// fetch.
type InitialiseMsg struct {
	Container Container
}

// StartMsg resumes polling.
type StartMsg struct{}

// StopMsg pauses polling and cancels any pending timer.
type StopMsg struct{}

// RemoveMsg returns a paused machine to StateUninitialised.
type RemoveMsg struct{}

// TopologyFetched is a tea.Msg sent when the topology fetch completes.
// It contains either the groups or an error. Seq identifies the render that
// issued the request.
type TopologyFetched struct {
	ID     string
	Seq    uint64
	Groups []healthcheck.ServerGroup
	Err    error
}

// StatusRefreshed is a tea.Msg sent when a status refresh completes.
// Seq identifies the request so stale completions can be recognised.
type StatusRefreshed struct {
	ID     string
	Seq    uint64
	Result *healthcheck.RefreshResult
	Err    error
}

// TickMsg is a tea.Msg sent when a refresh timer fires.
// Only the tick matching the machine's pending timer is acted on.
type TickMsg struct {
	ID  string
	Seq uint64
}
