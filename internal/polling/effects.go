package polling

import (
	"time"

	"github.com/Elpulgo/hcwatch/internal/healthcheck"
)

// Effect is a side effect requested by a transition. The Machine only
// describes effects; the Poller carries them out.
type Effect interface {
	effect()
}

// AttachLayout appends the panel layout to a container.
type AttachLayout struct{ Container Container }

// FetchTopology issues the topology request tagged with Seq.
type FetchTopology struct{ Seq uint64 }

// SetGroups stores the initial topology in the status list.
type SetGroups struct{ Groups []healthcheck.ServerGroup }

// ShowFatal replaces the whole panel with a message.
type ShowFatal struct {
	Message string
	Err     error
}

// CancelTimer discards the pending timer identified by Seq.
type CancelTimer struct{ Seq uint64 }

// ScheduleTimer starts a timer that fires TickMsg{Seq} after Delay.
type ScheduleTimer struct {
	Seq   uint64
	Delay time.Duration
}

// ShowLoading turns the loading indicator on.
type ShowLoading struct{}

// FetchStatus issues a status refresh request tagged with Seq.
type FetchStatus struct{ Seq uint64 }

// ApplyRefresh updates statuses and the last-updated label, and clears the
// loading indicator and error banner. Stale marks a response to a request
// that has since been superseded by a newer one.
type ApplyRefresh struct {
	Result healthcheck.RefreshResult
	Stale  bool
}

// ShowRefreshError shows the error banner, clears the loading indicator and
// resets the last-updated label.
type ShowRefreshError struct {
	Message string
	Err     error
}

func (AttachLayout) effect()     {}
func (FetchTopology) effect()    {}
func (SetGroups) effect()        {}
func (ShowFatal) effect()        {}
func (CancelTimer) effect()      {}
func (ScheduleTimer) effect()    {}
func (ShowLoading) effect()      {}
func (FetchStatus) effect()      {}
func (ApplyRefresh) effect()     {}
func (ShowRefreshError) effect() {}
