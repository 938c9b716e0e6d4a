package components

import (
	"fmt"
	"strings"

	"github.com/Elpulgo/hcwatch/internal/healthcheck"
	"github.com/Elpulgo/hcwatch/internal/ui/styles"
)

// ServerList renders the server groups of one panel. SetGroups replaces the
// topology; UpdateStatus only rewrites statuses of servers already listed.
type ServerList struct {
	styles *styles.Styles
	groups []healthcheck.ServerGroup
}

// NewServerList creates an empty ServerList.
func NewServerList(s *styles.Styles) *ServerList {
	return &ServerList{styles: s}
}

// SetGroups replaces the listed groups.
func (l *ServerList) SetGroups(groups []healthcheck.ServerGroup) {
	l.groups = healthcheck.CloneGroups(groups)
}

// UpdateStatus merges statuses into the listed groups.
func (l *ServerList) UpdateStatus(groups []healthcheck.ServerGroup) {
	l.groups = healthcheck.MergeStatuses(l.groups, groups)
}

// Groups returns a copy of the listed groups.
func (l *ServerList) Groups() []healthcheck.ServerGroup {
	return healthcheck.CloneGroups(l.groups)
}

// Summary renders counts per status, e.g. "3 up · 1 down".
func (l *ServerList) Summary() string {
	counts := healthcheck.Counts(l.groups)

	var parts []string
	for _, status := range []healthcheck.Status{
		healthcheck.StatusUp,
		healthcheck.StatusDegraded,
		healthcheck.StatusDown,
		healthcheck.StatusUnknown,
	} {
		if n := counts[status]; n > 0 {
			parts = append(parts, l.styles.ForStatus(status).Render(fmt.Sprintf("%d %s", n, status)))
		}
	}
	return strings.Join(parts, l.styles.Muted.Render(" · "))
}

// View renders every group followed by its servers.
func (l *ServerList) View() string {
	if len(l.groups) == 0 {
		return l.styles.Muted.Render("No servers")
	}

	var b strings.Builder
	for i, g := range l.groups {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(l.styles.GroupHeader.Render(g.Name))
		for _, s := range g.Servers {
			status := s.Status.Normalize()
			style := l.styles.ForStatus(status)
			b.WriteString("\n  ")
			b.WriteString(style.Render(styles.StatusSymbol(status)))
			b.WriteString(" ")
			b.WriteString(l.styles.Value.Render(s.Name))
			b.WriteString(" ")
			b.WriteString(style.Render(string(status)))
		}
	}
	return b.String()
}
