package heartbeat

import (
	"context"
	"time"
)

// mockClock implements the Clock interface for testing purposes.
type mockClock struct {
	currentTime time.Time
}

// Now returns the current time for the mock clock.
func (c *mockClock) Now() time.Time {
	return c.currentTime
}

// Set sets the current time for the mock clock.
func (c *mockClock) Set(t time.Time) {
	c.currentTime = t
}

// Add advances the current time for the mock clock by the specified duration.
func (c *mockClock) Add(d time.Duration) {
	c.currentTime = c.currentTime.Add(d)
}

// recordSleeper implements the Sleeper interface for testing purposes. It
// records every requested duration and advances the attached mock clock
// instead of sleeping.
type recordSleeper struct {
	clock *mockClock
	slept []time.Duration

	// suspendOn simulates a host suspension: on the 1-based call with that
	// index the clock jumps by suspendFor on top of the requested duration.
	suspendOn  int
	suspendFor time.Duration
}

func (s *recordSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.slept = append(s.slept, d)
	s.clock.Add(d)

	if s.suspendOn == len(s.slept) {
		s.clock.Add(s.suspendFor)
	}

	return nil
}

// failSleeper fails with context.Canceled on the call with index failOn,
// after advancing the clock like a partial sleep would.
type failSleeper struct {
	recordSleeper
	failOn int
}

func (s *failSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if err := s.recordSleeper.Sleep(ctx, d); err != nil {
		return err
	}

	if s.failOn == len(s.slept) {
		return context.Canceled
	}

	return nil
}
