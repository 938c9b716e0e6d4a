package components

import (
	"strings"
	"testing"
)

type fakeView string

func (v *fakeView) View() string { return string(*v) }

func newFakeView(s string) *fakeView {
	v := fakeView(s)
	return &v
}

func TestDashboard_MountIsIdempotent(t *testing.T) {
	d := NewDashboard()
	v := newFakeView("a")

	d.Mount(v)
	d.Mount(v)

	if d.Len() != 1 {
		t.Errorf("expected 1 mounted view, got %d", d.Len())
	}
}

func TestDashboard_Columns(t *testing.T) {
	tests := []struct {
		name  string
		views int
		width int
		want  int
	}{
		{name: "empty", views: 0, width: 200, want: 0},
		{name: "unknown width", views: 3, width: 0, want: 1},
		{name: "narrow", views: 3, width: 40, want: 1},
		{name: "two fit", views: 3, width: 80, want: 2},
		{name: "capped by views", views: 2, width: 300, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDashboard()
			for i := 0; i < tt.views; i++ {
				d.Mount(newFakeView("x"))
			}
			d.SetWidth(tt.width)
			if got := d.Columns(); got != tt.want {
				t.Errorf("Columns() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDashboard_ViewOrder(t *testing.T) {
	d := NewDashboard()
	d.Mount(newFakeView("first"))
	d.Mount(newFakeView("second"))

	view := d.View()
	if strings.Index(view, "first") > strings.Index(view, "second") {
		t.Errorf("views out of mount order:\n%s", view)
	}
	if NewDashboard().View() != "" {
		t.Error("empty dashboard should render nothing")
	}
}
