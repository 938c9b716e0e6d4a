package healthcheck

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Status is the health of a single monitored server as reported by the
// health check server.
type Status string

const (
	StatusUp       Status = "up"
	StatusDown     Status = "down"
	StatusDegraded Status = "degraded"
	StatusUnknown  Status = "unknown"
)

// Normalize maps any wire value onto one of the known statuses.
// Unrecognised or empty values become StatusUnknown.
func (s Status) Normalize() Status {
	switch Status(strings.ToLower(strings.TrimSpace(string(s)))) {
	case StatusUp, "ok", "healthy":
		return StatusUp
	case StatusDown, "failed", "unhealthy":
		return StatusDown
	case StatusDegraded, "warning":
		return StatusDegraded
	default:
		return StatusUnknown
	}
}

// Server is a single monitored server. Its Name is the stable identity used
// to match status updates; only Status changes between refreshes.
type Server struct {
	Name   string `json:"name"`
	Status Status `json:"status,omitempty"`
}

// ServerGroup is a named collection of servers.
type ServerGroup struct {
	Name    string   `json:"name"`
	Servers []Server `json:"servers"`
}

// RefreshResult is one status refresh response.
type RefreshResult struct {
	Groups        []ServerGroup `json:"groups"`
	RefreshedAt   time.Time     `json:"refreshedAt"`
	NextRefreshAt time.Time     `json:"nextRefreshAt"`
}

// UnmarshalJSON decodes the timestamps with Timestamp, so servers may send
// either ISO 8601 strings or epoch milliseconds.
func (r *RefreshResult) UnmarshalJSON(data []byte) error {
	var wire struct {
		Groups        []ServerGroup `json:"groups"`
		RefreshedAt   Timestamp     `json:"refreshedAt"`
		NextRefreshAt Timestamp     `json:"nextRefreshAt"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	r.Groups = wire.Groups
	r.RefreshedAt = wire.RefreshedAt.Time()
	r.NextRefreshAt = wire.NextRefreshAt.Time()
	return nil
}

// isoLayouts are the string forms accepted by Timestamp. Layouts without an
// offset are read in local time.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp is a wall-clock time on the wire: an ISO 8601 string or a
// number of milliseconds since the Unix epoch. null decodes to the zero time.
type Timestamp time.Time

// Time returns t as a time.Time.
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := parseISO(s)
		if err != nil {
			return err
		}
		*t = Timestamp(parsed)
		return nil
	}

	if ms, err := strconv.ParseInt(string(data), 10, 64); err == nil {
		*t = Timestamp(time.UnixMilli(ms))
		return nil
	}
	ms, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid timestamp %s: want an ISO 8601 string or epoch milliseconds", data)
	}
	whole := math.Floor(ms)
	frac := time.Duration((ms - whole) * float64(time.Millisecond))
	*t = Timestamp(time.UnixMilli(int64(whole)).Add(frac))
	return nil
}

func parseISO(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q: want an ISO 8601 string or epoch milliseconds", s)
}

// CloneGroups returns a deep copy of groups so callers can keep the result
// without sharing server slices.
func CloneGroups(groups []ServerGroup) []ServerGroup {
	if groups == nil {
		return nil
	}

	out := make([]ServerGroup, len(groups))
	for i, g := range groups {
		out[i] = ServerGroup{Name: g.Name}
		if g.Servers != nil {
			out[i].Servers = make([]Server, len(g.Servers))
			copy(out[i].Servers, g.Servers)
		}
	}
	return out
}

// MergeStatuses rewrites the status of each server in current that has a
// counterpart (same group name and server name) in updates. Entries without a
// counterpart keep their previous status, and update entries that match
// nothing are dropped. The returned slice has the same groups and servers in
// the same order as current.
func MergeStatuses(current, updates []ServerGroup) []ServerGroup {
	statuses := make(map[string]map[string]Status, len(updates))
	for _, g := range updates {
		byServer, ok := statuses[g.Name]
		if !ok {
			byServer = make(map[string]Status, len(g.Servers))
			statuses[g.Name] = byServer
		}
		for _, s := range g.Servers {
			byServer[s.Name] = s.Status.Normalize()
		}
	}

	merged := CloneGroups(current)
	for gi := range merged {
		byServer, ok := statuses[merged[gi].Name]
		if !ok {
			continue
		}
		for si := range merged[gi].Servers {
			if status, ok := byServer[merged[gi].Servers[si].Name]; ok {
				merged[gi].Servers[si].Status = status
			}
		}
	}
	return merged
}

// Counts tallies servers by status across all groups.
func Counts(groups []ServerGroup) map[Status]int {
	counts := make(map[Status]int)
	for _, g := range groups {
		for _, s := range g.Servers {
			counts[s.Status.Normalize()]++
		}
	}
	return counts
}
