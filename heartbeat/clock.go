package heartbeat

import (
	"context"
	"time"
)

// Clock defines an interface for getting the current time, allowing for mocking in tests.
// time.Time values carry a monotonic reading, so elapsed-time math is immune
// to wall-clock adjustments.
type Clock interface {
	Now() time.Time
}

// systemClock implements the Clock interface using the real time.
type systemClock struct{}

// Now returns the current time.
func (c *systemClock) Now() time.Time {
	return time.Now()
}

// Sleeper suspends the caller for at least the given duration. A zero or
// negative duration returns immediately. Implementations must honor context
// cancellation and return ctx.Err() unmodified.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// timerSleeper implements Sleeper with a real timer.
type timerSleeper struct{}

func (s *timerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
