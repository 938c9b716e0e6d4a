package polling

import "time"

const (
	// RetryBackoff is the fixed delay before retrying a failed refresh.
	RetryBackoff = 10 * time.Second
	// ClockSkewCompensation is added to the server's suggested refresh time.
	ClockSkewCompensation = 500 * time.Millisecond
	// MinRefreshInterval is the shortest delay ever scheduled after a
	// successful refresh.
	MinRefreshInterval = time.Second
)

// NextRefreshDelay returns how long to wait before the next refresh given the
// server's suggested refresh time. The result is never below
// MinRefreshInterval, so a suggestion in the past (clock skew, slow response)
// still leaves a one second gap.
func NextRefreshDelay(nextRefreshAt, now time.Time) time.Duration {
	delay := nextRefreshAt.Add(ClockSkewCompensation).Sub(now)
	if delay < MinRefreshInterval {
		return MinRefreshInterval
	}
	return delay
}

// Clock supplies the current time to the Machine.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
