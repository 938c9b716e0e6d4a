package polling

import (
	"errors"
	"sync"
	"time"

	"github.com/Elpulgo/hcwatch/internal/healthcheck"
)

const (
	// InitialiseFailedMessage is shown when the topology fetch fails without
	// a server supplied message.
	InitialiseFailedMessage = "Could not access Health Check Server"
	// RefreshFailedMessage is shown when a status refresh fails without a
	// server supplied message.
	RefreshFailedMessage = "Cannot access health check server."
)

// MaxRecoverableErrors is the number of consecutive refresh failures after
// which the recovery message changes tone. Retries continue regardless.
const MaxRecoverableErrors = 5

var errEmptyResult = errors.New("empty status response")

// Describe returns the server supplied message carried by err, or fallback
// when there is none.
func Describe(err error, fallback string) string {
	if msg, ok := healthcheck.ErrorMessage(err); ok {
		return msg
	}
	return fallback
}

// ErrorHandler tracks refresh failures for a single poller.
// It keeps the last known good refresh so the panel can keep showing it
// while retries are in progress.
type ErrorHandler struct {
	currentError      error
	consecutiveErrors int
	lastErrorTime     time.Time
	lastKnownGood     *healthcheck.RefreshResult
	mu                sync.RWMutex
}

// NewErrorHandler creates a new ErrorHandler.
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// SetError sets the current error and increments the consecutive error count.
func (h *ErrorHandler) SetError(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.currentError = err
	h.consecutiveErrors++
	h.lastErrorTime = time.Now()
}

// ClearError clears the current error and resets the consecutive error count.
func (h *ErrorHandler) ClearError() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.currentError = nil
	h.consecutiveErrors = 0
}

// HasError returns true if there is a current error.
func (h *ErrorHandler) HasError() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.currentError != nil
}

// GetError returns the current error.
func (h *ErrorHandler) GetError() error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.currentError
}

// ConsecutiveErrors returns the number of consecutive refresh failures.
func (h *ErrorHandler) ConsecutiveErrors() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.consecutiveErrors
}

// LastErrorTime returns the time of the last failure.
func (h *ErrorHandler) LastErrorTime() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.lastErrorTime
}

// Succeeded records a successful refresh, clearing the error state.
func (h *ErrorHandler) Succeeded(result healthcheck.RefreshResult) {
	h.mu.Lock()
	defer h.mu.Unlock()

	result.Groups = healthcheck.CloneGroups(result.Groups)
	h.lastKnownGood = &result
	h.currentError = nil
	h.consecutiveErrors = 0
}

// LastKnownGood returns a copy of the last successful refresh, or nil.
func (h *ErrorHandler) LastKnownGood() *healthcheck.RefreshResult {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.lastKnownGood == nil {
		return nil
	}

	result := *h.lastKnownGood
	result.Groups = healthcheck.CloneGroups(result.Groups)
	return &result
}

// ErrorMessage returns the error message if there is an error.
func (h *ErrorHandler) ErrorMessage() string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.currentError == nil {
		return ""
	}
	return Describe(h.currentError, RefreshFailedMessage)
}

// IsRecoverable returns true while failures look transient.
func (h *ErrorHandler) IsRecoverable() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.consecutiveErrors <= MaxRecoverableErrors
}

// RecoveryMessage returns a user-friendly message about the error state.
func (h *ErrorHandler) RecoveryMessage() string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.currentError == nil {
		return ""
	}

	if h.consecutiveErrors <= MaxRecoverableErrors {
		return "Connection issue. Retrying..."
	}
	return "Still unreachable. Retrying every 10s..."
}
