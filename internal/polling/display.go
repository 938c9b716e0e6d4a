package polling

import (
	"time"

	"github.com/Elpulgo/hcwatch/internal/healthcheck"
)

// Viewer is anything that renders to a string.
type Viewer interface {
	View() string
}

// Container hosts panel layouts.
type Container interface {
	Mount(v Viewer)
}

// Layout is the panel frame holding the display modules.
type Layout interface {
	AppendTo(c Container)
	SetContent(content string)
}

// LoadingIndicator shows that a refresh is in flight.
type LoadingIndicator interface {
	Loading()
	Finished()
}

// LastUpdatedLabel shows when the statuses were last refreshed.
type LastUpdatedLabel interface {
	SetLastUpdated(t time.Time)
	// RefreshText resets the label to a neutral unavailable display.
	RefreshText()
}

// ErrorBanner shows the most recent refresh error.
type ErrorBanner interface {
	Show(message string)
	Hide()
}

// StatusList shows the monitored servers and their statuses.
type StatusList interface {
	SetGroups(groups []healthcheck.ServerGroup)
	UpdateStatus(groups []healthcheck.ServerGroup)
}

// Display bundles the collaborators a Poller drives. The Poller only ever
// calls their setters; they hold no reference back.
type Display struct {
	Layout      Layout
	Loading     LoadingIndicator
	LastUpdated LastUpdatedLabel
	Error       ErrorBanner
	Servers     StatusList
}

type nopDisplay struct{}

func (nopDisplay) AppendTo(Container)                     {}
func (nopDisplay) SetContent(string)                      {}
func (nopDisplay) Loading()                               {}
func (nopDisplay) Finished()                              {}
func (nopDisplay) SetLastUpdated(time.Time)               {}
func (nopDisplay) RefreshText()                           {}
func (nopDisplay) Show(string)                            {}
func (nopDisplay) Hide()                                  {}
func (nopDisplay) SetGroups([]healthcheck.ServerGroup)    {}
func (nopDisplay) UpdateStatus([]healthcheck.ServerGroup) {}

// withDefaults fills unset collaborators with no-ops.
func (d Display) withDefaults() Display {
	if d.Layout == nil {
		d.Layout = nopDisplay{}
	}
	if d.Loading == nil {
		d.Loading = nopDisplay{}
	}
	if d.LastUpdated == nil {
		d.LastUpdated = nopDisplay{}
	}
	if d.Error == nil {
		d.Error = nopDisplay{}
	}
	if d.Servers == nil {
		d.Servers = nopDisplay{}
	}
	return d
}
