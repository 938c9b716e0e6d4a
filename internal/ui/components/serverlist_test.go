package components

import (
	"strings"
	"testing"

	"github.com/Elpulgo/hcwatch/internal/healthcheck"
	"github.com/Elpulgo/hcwatch/internal/ui/styles"
)

func sampleGroups() []healthcheck.ServerGroup {
	return []healthcheck.ServerGroup{
		{Name: "Frontend", Servers: []healthcheck.Server{
			{Name: "web-01"},
			{Name: "web-02"},
		}},
		{Name: "Data", Servers: []healthcheck.Server{
			{Name: "db-01"},
		}},
	}
}

func TestServerList_Empty(t *testing.T) {
	l := NewServerList(styles.DefaultStyles())

	if !strings.Contains(l.View(), "No servers") {
		t.Errorf("expected placeholder, got %q", l.View())
	}
	if l.Summary() != "" {
		t.Errorf("expected empty summary, got %q", l.Summary())
	}
}

func TestServerList_SetGroupsCopies(t *testing.T) {
	l := NewServerList(styles.DefaultStyles())
	groups := sampleGroups()

	l.SetGroups(groups)
	groups[0].Servers[0].Name = "mutated"

	if l.Groups()[0].Servers[0].Name != "web-01" {
		t.Error("SetGroups must not alias the caller's slices")
	}

	view := l.View()
	for _, want := range []string{"Frontend", "web-01", "web-02", "Data", "db-01", "unknown"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestServerList_UpdateStatusMerges(t *testing.T) {
	l := NewServerList(styles.DefaultStyles())
	l.SetGroups(sampleGroups())

	l.UpdateStatus([]healthcheck.ServerGroup{
		{Name: "Frontend", Servers: []healthcheck.Server{
			{Name: "web-02", Status: healthcheck.StatusDown},
			{Name: "web-99", Status: healthcheck.StatusUp},
		}},
		{Name: "Data", Servers: []healthcheck.Server{
			{Name: "db-01", Status: "ok"},
		}},
		{Name: "Ghost", Servers: []healthcheck.Server{
			{Name: "x", Status: healthcheck.StatusUp},
		}},
	})

	groups := l.Groups()
	if len(groups) != 2 {
		t.Fatalf("UpdateStatus must not add groups, got %d", len(groups))
	}
	if len(groups[0].Servers) != 2 {
		t.Fatalf("UpdateStatus must not add servers, got %d", len(groups[0].Servers))
	}
	if groups[0].Servers[0].Name != "web-01" || groups[0].Servers[1].Name != "web-02" {
		t.Error("server order changed")
	}
	if groups[0].Servers[1].Status != healthcheck.StatusDown {
		t.Errorf("web-02 status = %s, want down", groups[0].Servers[1].Status)
	}
	if groups[1].Servers[0].Status != healthcheck.StatusUp {
		t.Errorf("db-01 status = %s, want up", groups[1].Servers[0].Status)
	}

	summary := l.Summary()
	for _, want := range []string{"1 up", "1 down", "1 unknown"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary %q missing %q", summary, want)
		}
	}
}
