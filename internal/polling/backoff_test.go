package polling

import (
	"testing"
	"time"
)

func TestNextRefreshDelay(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		next time.Time
		want time.Duration
	}{
		{name: "exactly now", next: now, want: MinRefreshInterval},
		{name: "100ms before now", next: now.Add(-100 * time.Millisecond), want: MinRefreshInterval},
		{name: "500ms before now", next: now.Add(-500 * time.Millisecond), want: MinRefreshInterval},
		{name: "long past", next: now.Add(-time.Hour), want: MinRefreshInterval},
		{name: "zero time", next: time.Time{}, want: MinRefreshInterval},
		{name: "just under the clamp", next: now.Add(499 * time.Millisecond), want: MinRefreshInterval},
		{name: "exactly at the clamp", next: now.Add(500 * time.Millisecond), want: time.Second},
		{name: "five seconds ahead", next: now.Add(5 * time.Second), want: 5500 * time.Millisecond},
		{name: "far future", next: now.Add(10 * time.Minute), want: 10*time.Minute + ClockSkewCompensation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextRefreshDelay(tt.next, now); got != tt.want {
				t.Errorf("NextRefreshDelay() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNextRefreshDelay_ClampWindow(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	// Every suggestion up to 500ms in the past lands on the clamp.
	for ms := 0; ms <= 500; ms += 25 {
		next := now.Add(-time.Duration(ms) * time.Millisecond)
		if got := NextRefreshDelay(next, now); got != time.Second {
			t.Errorf("%dms before now: got %v, want 1s", ms, got)
		}
	}
}

func TestNextRefreshDelay_FutureIsNotClamped(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for _, ahead := range []time.Duration{2 * time.Second, 30 * time.Second, 24 * time.Hour} {
		next := now.Add(ahead)
		want := next.Add(500 * time.Millisecond).Sub(now)
		if got := NextRefreshDelay(next, now); got != want {
			t.Errorf("%v ahead: got %v, want %v", ahead, got, want)
		}
	}
}

func TestClockFunc(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := ClockFunc(func() time.Time { return fixed })

	if !clock.Now().Equal(fixed) {
		t.Errorf("ClockFunc.Now() = %v, want %v", clock.Now(), fixed)
	}
}
