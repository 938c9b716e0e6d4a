package components

import (
	"fmt"
	"time"

	"github.com/Elpulgo/hcwatch/internal/ui/styles"
)

// LastUpdated shows when a panel's statuses were last refreshed.
type LastUpdated struct {
	styles *styles.Styles
	now    func() time.Time
	at     time.Time
	text   string

	// unavailable is set by RefreshText and cleared by the next update.
	unavailable bool
}

// NewLastUpdated creates a label that has not been updated yet.
func NewLastUpdated(s *styles.Styles) *LastUpdated {
	l := &LastUpdated{styles: s, now: time.Now}
	l.render()
	return l
}

// SetLastUpdated records the refresh time reported by the server.
func (l *LastUpdated) SetLastUpdated(t time.Time) {
	l.at = t
	l.unavailable = false
	l.render()
}

// LastUpdated returns the recorded refresh time, zero if none.
func (l *LastUpdated) LastUpdated() time.Time {
	return l.at
}

// RefreshText resets the label to "unavailable" until the next successful
// refresh. The recorded time is kept.
func (l *LastUpdated) RefreshText() {
	l.unavailable = true
	l.render()
}

// Tick recomputes the age shown by the label.
func (l *LastUpdated) Tick() {
	l.render()
}

func (l *LastUpdated) render() {
	switch {
	case l.unavailable:
		l.text = "Last updated: unavailable"
	case l.at.IsZero():
		l.text = "Last updated: never"
	default:
		l.text = fmt.Sprintf("Last updated: %s (%s)", l.at.Local().Format("15:04:05"), age(l.now().Sub(l.at)))
	}
}

// Text returns the current label without styling.
func (l *LastUpdated) Text() string {
	return l.text
}

// View renders the label.
func (l *LastUpdated) View() string {
	return l.styles.Muted.Render(l.text)
}

func age(d time.Duration) string {
	switch {
	case d < 5*time.Second:
		return "just now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
}
