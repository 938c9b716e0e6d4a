package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Elpulgo/hcwatch/internal/polling"
)

// minColumnWidth is the narrowest a panel column may get before panels are
// stacked vertically.
const minColumnWidth = 36

// Dashboard is the container panels mount into.
type Dashboard struct {
	views []polling.Viewer
	width int
}

// NewDashboard creates an empty Dashboard.
func NewDashboard() *Dashboard {
	return &Dashboard{}
}

// Mount adds v to the dashboard. Mounting the same view twice keeps its
// original position.
func (d *Dashboard) Mount(v polling.Viewer) {
	for _, existing := range d.views {
		if existing == v {
			return
		}
	}
	d.views = append(d.views, v)
}

// Len returns the number of mounted views.
func (d *Dashboard) Len() int {
	return len(d.views)
}

// SetWidth sets the available width.
func (d *Dashboard) SetWidth(width int) {
	d.width = width
}

// Columns returns how many panels fit side by side.
func (d *Dashboard) Columns() int {
	if len(d.views) == 0 {
		return 0
	}
	cols := d.width / minColumnWidth
	if cols < 1 {
		cols = 1
	}
	if cols > len(d.views) {
		cols = len(d.views)
	}
	return cols
}

// ColumnWidth returns the width each panel should render at.
func (d *Dashboard) ColumnWidth() int {
	cols := d.Columns()
	if cols == 0 || d.width == 0 {
		return 0
	}
	return d.width / cols
}

// View lays out mounted views in rows of Columns() panels.
func (d *Dashboard) View() string {
	cols := d.Columns()
	if cols == 0 {
		return ""
	}

	var rows []string
	for start := 0; start < len(d.views); start += cols {
		end := min(start+cols, len(d.views))

		cells := make([]string, 0, end-start)
		for _, v := range d.views[start:end] {
			cells = append(cells, v.View())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
