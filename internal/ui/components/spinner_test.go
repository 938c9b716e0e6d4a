package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/Elpulgo/hcwatch/internal/ui/styles"
)

func TestLoadingIndicator_New(t *testing.T) {
	li := NewLoadingIndicator(styles.DefaultStyles())

	if li == nil {
		t.Fatal("expected non-nil LoadingIndicator")
	}
	if li.IsVisible() {
		t.Error("expected indicator to start hidden")
	}
	if li.message != "Refreshing..." {
		t.Errorf("expected default message 'Refreshing...', got '%s'", li.message)
	}
}

func TestLoadingIndicator_LoadingFinished(t *testing.T) {
	li := NewLoadingIndicator(styles.DefaultStyles())

	li.Loading()
	if !li.IsVisible() {
		t.Error("expected visible after Loading()")
	}

	li.Finished()
	if li.IsVisible() {
		t.Error("expected hidden after Finished()")
	}

	// Finished without Loading is harmless
	li.Finished()
	if li.IsVisible() {
		t.Error("expected hidden after repeated Finished()")
	}
}

func TestLoadingIndicator_View(t *testing.T) {
	li := NewLoadingIndicator(styles.DefaultStyles())
	li.SetMessage("Checking servers...")

	if li.View() != "" {
		t.Error("expected empty view when hidden")
	}

	li.Loading()
	if !strings.Contains(li.View(), "Checking servers...") {
		t.Errorf("expected view to contain message, got %q", li.View())
	}
}

func TestLoadingIndicator_Update(t *testing.T) {
	li := NewLoadingIndicator(styles.DefaultStyles())

	if li.Init() == nil {
		t.Fatal("expected Init to return a tick command")
	}

	msg := li.Init()()
	if _, ok := msg.(spinner.TickMsg); !ok {
		t.Fatalf("expected spinner.TickMsg, got %T", msg)
	}

	_, cmd := li.Update(msg)
	if cmd == nil {
		t.Error("expected Update to schedule the next tick")
	}

	_, cmd = li.Update("unrelated")
	if cmd != nil {
		t.Error("expected no command for unrelated messages")
	}
}
