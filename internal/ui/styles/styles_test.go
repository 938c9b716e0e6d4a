package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/Elpulgo/hcwatch/internal/healthcheck"
)

func TestGetThemeByName(t *testing.T) {
	tests := []struct {
		themeName string
		wantErr   bool
	}{
		{themeName: "dark"},
		{themeName: "light"},
		{themeName: "gruvbox"},
		{themeName: "nord"},
		{themeName: "nonexistent", wantErr: true},
		{themeName: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.themeName, func(t *testing.T) {
			theme, err := GetThemeByName(tt.themeName)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetThemeByName(%q) error = %v, wantErr %v", tt.themeName, err, tt.wantErr)
			}
			if !tt.wantErr && theme.Name != tt.themeName {
				t.Errorf("theme name = %q, want %q", theme.Name, tt.themeName)
			}
		})
	}
}

func TestGetThemeByNameWithFallback(t *testing.T) {
	if got := GetThemeByNameWithFallback("nord").Name; got != "nord" {
		t.Errorf("expected nord, got %q", got)
	}
	if got := GetThemeByNameWithFallback("missing").Name; got != "dark" {
		t.Errorf("expected fallback to dark, got %q", got)
	}
}

func TestListAvailableThemes(t *testing.T) {
	names := ListAvailableThemes()
	want := []string{"dark", "gruvbox", "light", "nord"}

	if len(names) != len(want) {
		t.Fatalf("ListAvailableThemes() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestThemesAreComplete(t *testing.T) {
	for _, name := range ListAvailableThemes() {
		theme, _ := GetThemeByName(name)
		if err := theme.Validate(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
		for field, c := range map[string]string{
			"Primary":    string(theme.Primary),
			"Success":    string(theme.Success),
			"Warning":    string(theme.Warning),
			"Error":      string(theme.Error),
			"Foreground": string(theme.Foreground),
			"Muted":      string(theme.ForegroundMuted),
			"Border":     string(theme.Border),
			"Spinner":    string(theme.Spinner),
		} {
			if c == "" {
				t.Errorf("%s: %s color is empty", name, field)
			}
		}
	}
}

func TestThemeValidate_RequiresName(t *testing.T) {
	if err := (Theme{}).Validate(); err != ErrThemeNameRequired {
		t.Errorf("expected ErrThemeNameRequired, got %v", err)
	}
}

func TestNewStyles(t *testing.T) {
	theme := GetDefaultTheme()
	s := NewStyles(theme)

	if s.Theme.Name != theme.Name {
		t.Errorf("NewStyles() theme name = %q, want %q", s.Theme.Name, theme.Name)
	}
	if s.Success.GetForeground() != theme.Success {
		t.Error("Success foreground doesn't match theme")
	}
	if s.Error.GetForeground() != theme.Error {
		t.Error("Error foreground doesn't match theme")
	}
	if s.Banner.GetForeground() != theme.Error {
		t.Error("Banner should use the error color")
	}
}

func TestForStatus(t *testing.T) {
	s := DefaultStyles()

	tests := []struct {
		status healthcheck.Status
		want   string
		symbol string
	}{
		{healthcheck.StatusUp, string(s.Theme.Success), "●"},
		{healthcheck.StatusDown, string(s.Theme.Error), "✗"},
		{healthcheck.StatusDegraded, string(s.Theme.Warning), "◐"},
		{healthcheck.StatusUnknown, string(s.Theme.ForegroundMuted), "?"},
		{healthcheck.Status("weird"), string(s.Theme.ForegroundMuted), "?"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := s.ForStatus(tt.status).GetForeground(); got != lipgloss.Color(tt.want) {
				t.Errorf("ForStatus(%s) foreground = %v, want %v", tt.status, got, tt.want)
			}
			if got := StatusSymbol(tt.status); got != tt.symbol {
				t.Errorf("StatusSymbol(%s) = %q, want %q", tt.status, got, tt.symbol)
			}
		})
	}
}
