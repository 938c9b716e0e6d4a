package polling

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Elpulgo/hcwatch/internal/healthcheck"
)

// Machine is the polling state machine. It is a value: Handle returns the
// next machine together with the effects the transition requires, and never
// performs I/O itself.
type Machine struct {
	state State
	clock Clock

	// timerSeq identifies the most recently scheduled timer. A tick only
	// counts while timerPending is set and its Seq matches.
	timerSeq     uint64
	timerPending bool

	// requestSeq identifies the most recently issued status request.
	requestSeq uint64

	// topologySeq identifies the topology fetch of the current render.
	topologySeq uint64
}

// NewMachine returns a machine in StateUninitialised. A nil clock uses the
// system time.
func NewMachine(clock Clock) Machine {
	if clock == nil {
		clock = systemClock{}
	}
	return Machine{state: StateUninitialised, clock: clock}
}

// State returns the current state.
func (m Machine) State() State {
	return m.state
}

// TimerPending reports whether a refresh timer is outstanding.
func (m Machine) TimerPending() bool {
	return m.timerPending
}

// RequestSeq returns the sequence number of the latest status request.
func (m Machine) RequestSeq() uint64 {
	return m.requestSeq
}

// TopologySeq returns the sequence number of the latest topology fetch.
func (m Machine) TopologySeq() uint64 {
	return m.topologySeq
}

type handler func(m Machine, ev tea.Msg) (Machine, []Effect)

// transitions maps each state to the handler for events received in it.
// Events a handler does not recognise leave the machine untouched.
var transitions = map[State]handler{
	StateUninitialised:      handleUninitialised,
	StateInitialising:       handleInitialising,
	StateFailedToInitialise: handleFailedToInitialise,
	StatePaused:             handlePaused,
	StateWaiting:            handleWaiting,
	StateRefreshFailed:      handleRefreshFailed,
	StateRefreshing:         handleRefreshing,
}

// Handle applies ev to the machine.
func (m Machine) Handle(ev tea.Msg) (Machine, []Effect) {
	if m.clock == nil {
		m.clock = systemClock{}
	}

	h, ok := transitions[m.state]
	if !ok {
		return m, nil
	}
	return h(m, ev)
}

func handleUninitialised(m Machine, ev tea.Msg) (Machine, []Effect) {
	switch ev := ev.(type) {
	case InitialiseMsg:
		next, effects := m.enterInitialising()
		return next, append([]Effect{AttachLayout{Container: ev.Container}}, effects...)
	}
	return m, nil
}

func handleInitialising(m Machine, ev tea.Msg) (Machine, []Effect) {
	switch ev := ev.(type) {
	case TopologyFetched:
		if ev.Seq != m.topologySeq {
			// Left over from an earlier render.
			return m, nil
		}
		if ev.Err != nil {
			return m.enterFailedToInitialise(ev.Err)
		}
		next, effects := m.enterPaused()
		return next, append([]Effect{SetGroups{Groups: healthcheck.CloneGroups(ev.Groups)}}, effects...)
	case RemoveMsg:
		return m.enterUninitialised()
	}
	return m, nil
}

func handleFailedToInitialise(m Machine, ev tea.Msg) (Machine, []Effect) {
	switch ev.(type) {
	case RemoveMsg:
		return m.enterUninitialised()
	}
	return m, nil
}

func handlePaused(m Machine, ev tea.Msg) (Machine, []Effect) {
	switch ev := ev.(type) {
	case RemoveMsg:
		return m.enterUninitialised()
	case StartMsg:
		return m.enterRefreshing()
	case StatusRefreshed:
		// A response that outlived a stop updates the display but never
		// resumes polling.
		if ev.Err != nil || ev.Result == nil {
			return m, nil
		}
		return m, []Effect{ApplyRefresh{Result: cloneResult(*ev.Result), Stale: ev.Seq != m.requestSeq}}
	}
	return m, nil
}

func handleWaiting(m Machine, ev tea.Msg) (Machine, []Effect) {
	switch ev := ev.(type) {
	case TickMsg:
		if !m.timerPending || ev.Seq != m.timerSeq {
			return m, nil
		}
		m.timerPending = false
		return m.enterRefreshing()
	case StopMsg:
		return m.enterPaused()
	}
	return m, nil
}

// handleRefreshFailed is only reachable if RefreshFailed ever stops being
// transient; entering it moves straight on to StateWaiting.
func handleRefreshFailed(m Machine, ev tea.Msg) (Machine, []Effect) {
	switch ev.(type) {
	case StopMsg:
		return m.enterPaused()
	}
	return m, nil
}

func handleRefreshing(m Machine, ev tea.Msg) (Machine, []Effect) {
	switch ev := ev.(type) {
	case StatusRefreshed:
		if ev.Seq != m.requestSeq {
			// Completion of a request issued before a stop/start cycle.
			if ev.Err != nil || ev.Result == nil {
				return m, nil
			}
			return m, []Effect{ApplyRefresh{Result: cloneResult(*ev.Result), Stale: true}}
		}
		if ev.Err != nil {
			return m.enterRefreshFailed(ev.Err)
		}
		if ev.Result == nil {
			return m.enterRefreshFailed(errEmptyResult)
		}
		delay := NextRefreshDelay(ev.Result.NextRefreshAt, m.clock.Now())
		next, effects := m.enterWaiting(delay)
		return next, append([]Effect{ApplyRefresh{Result: cloneResult(*ev.Result)}}, effects...)
	case StopMsg:
		return m.enterPaused()
	}
	return m, nil
}

func (m Machine) enterUninitialised() (Machine, []Effect) {
	m.state = StateUninitialised
	return m, nil
}

func (m Machine) enterInitialising() (Machine, []Effect) {
	m.state = StateInitialising
	m.topologySeq++
	return m, []Effect{FetchTopology{Seq: m.topologySeq}}
}

func (m Machine) enterFailedToInitialise(err error) (Machine, []Effect) {
	m.state = StateFailedToInitialise
	return m, []Effect{ShowFatal{Message: Describe(err, InitialiseFailedMessage), Err: err}}
}

func (m Machine) enterPaused() (Machine, []Effect) {
	m.state = StatePaused
	if !m.timerPending {
		return m, nil
	}
	m.timerPending = false
	return m, []Effect{CancelTimer{Seq: m.timerSeq}}
}

func (m Machine) enterWaiting(delay time.Duration) (Machine, []Effect) {
	m.state = StateWaiting
	m.timerSeq++
	m.timerPending = true
	return m, []Effect{ScheduleTimer{Seq: m.timerSeq, Delay: delay}}
}

func (m Machine) enterRefreshFailed(err error) (Machine, []Effect) {
	m.state = StateRefreshFailed
	effects := []Effect{ShowRefreshError{Message: Describe(err, RefreshFailedMessage), Err: err}}

	m, waiting := m.enterWaiting(RetryBackoff)
	return m, append(effects, waiting...)
}

func (m Machine) enterRefreshing() (Machine, []Effect) {
	m.state = StateRefreshing
	m.requestSeq++
	return m, []Effect{ShowLoading{}, FetchStatus{Seq: m.requestSeq}}
}

// cloneResult detaches an effect from the slices of the event payload.
func cloneResult(r healthcheck.RefreshResult) healthcheck.RefreshResult {
	r.Groups = healthcheck.CloneGroups(r.Groups)
	return r
}
