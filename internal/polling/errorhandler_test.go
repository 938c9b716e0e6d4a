package polling

import (
	"errors"
	"testing"
	"time"

	"github.com/Elpulgo/hcwatch/internal/healthcheck"
)

func TestErrorHandler_New(t *testing.T) {
	eh := NewErrorHandler()

	if eh == nil {
		t.Fatal("expected non-nil ErrorHandler")
	}
	if eh.HasError() {
		t.Error("new error handler should not have an error")
	}
	if eh.ConsecutiveErrors() != 0 {
		t.Error("consecutive errors should be 0 initially")
	}
	if eh.LastKnownGood() != nil {
		t.Error("should have no last known good result initially")
	}
}

func TestErrorHandler_SetAndClear(t *testing.T) {
	eh := NewErrorHandler()
	err := errors.New("connection failed")

	eh.SetError(err)
	if !eh.HasError() || eh.GetError() != err {
		t.Fatal("GetError should return the set error")
	}

	eh.ClearError()
	if eh.HasError() || eh.GetError() != nil {
		t.Error("should not have error after ClearError")
	}
}

func TestErrorHandler_ConsecutiveErrors(t *testing.T) {
	eh := NewErrorHandler()

	eh.SetError(errors.New("error 1"))
	eh.SetError(errors.New("error 2"))
	if eh.ConsecutiveErrors() != 2 {
		t.Errorf("expected 2 consecutive errors, got %d", eh.ConsecutiveErrors())
	}

	eh.Succeeded(healthcheck.RefreshResult{})
	if eh.ConsecutiveErrors() != 0 {
		t.Errorf("expected 0 consecutive errors after success, got %d", eh.ConsecutiveErrors())
	}
}

func TestErrorHandler_LastKnownGood(t *testing.T) {
	eh := NewErrorHandler()
	groups := []healthcheck.ServerGroup{{Name: "web", Servers: []healthcheck.Server{{Name: "web-01", Status: healthcheck.StatusUp}}}}

	eh.Succeeded(healthcheck.RefreshResult{Groups: groups})
	groups[0].Servers[0].Status = healthcheck.StatusDown

	eh.SetError(errors.New("later failure"))

	got := eh.LastKnownGood()
	if got == nil {
		t.Fatal("expected last known good result to survive an error")
	}
	if got.Groups[0].Servers[0].Status != healthcheck.StatusUp {
		t.Error("last known good data must be a copy")
	}
}

func TestErrorHandler_ErrorMessage(t *testing.T) {
	eh := NewErrorHandler()

	if msg := eh.ErrorMessage(); msg != "" {
		t.Errorf("expected empty message when no error, got '%s'", msg)
	}

	eh.SetError(errors.New("dial tcp: refused"))
	if msg := eh.ErrorMessage(); msg != RefreshFailedMessage {
		t.Errorf("expected generic message, got '%s'", msg)
	}

	eh.SetError(&healthcheck.RequestError{StatusCode: 503, Message: "maintenance"})
	if msg := eh.ErrorMessage(); msg != "maintenance" {
		t.Errorf("expected server message, got '%s'", msg)
	}
}

func TestErrorHandler_LastErrorTime(t *testing.T) {
	eh := NewErrorHandler()

	if !eh.LastErrorTime().IsZero() {
		t.Error("should return zero time when no error")
	}

	before := time.Now()
	eh.SetError(errors.New("error"))
	after := time.Now()

	errorTime := eh.LastErrorTime()
	if errorTime.Before(before) || errorTime.After(after) {
		t.Error("error time should be between before and after")
	}
}

func TestErrorHandler_RecoveryMessage(t *testing.T) {
	eh := NewErrorHandler()
	if eh.RecoveryMessage() != "" {
		t.Error("no recovery message without an error")
	}

	eh.SetError(errors.New("error"))
	first := eh.RecoveryMessage()
	if first == "" || !eh.IsRecoverable() {
		t.Fatal("expected recoverable error with a message")
	}

	for i := 0; i < MaxRecoverableErrors; i++ {
		eh.SetError(errors.New("more errors"))
	}
	if eh.IsRecoverable() {
		t.Error("too many errors should not be recoverable")
	}
	if eh.RecoveryMessage() == first {
		t.Error("recovery message should change after repeated failures")
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "server message", err: &healthcheck.RequestError{StatusCode: 500, Message: "db down"}, want: "db down"},
		{name: "no payload", err: errors.New("timeout"), want: InitialiseFailedMessage},
		{name: "nil error", err: nil, want: InitialiseFailedMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Describe(tt.err, InitialiseFailedMessage); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}
