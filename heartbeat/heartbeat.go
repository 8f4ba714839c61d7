// Package heartbeat provides an adaptive pacing primitive: a loop driver
// that pauses between iterations for a delay the caller can speed up or
// slow down at runtime, bounded within a configured range. Typical use is
// a polling or retry loop that calls Slower on failure and Faster on
// success.
package heartbeat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

var (
	// ErrInvalidConfig is returned by New when the configuration violates
	// its documented bounds.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrOutOfRange is returned by SetDelay for values outside
	// [fastest, slowest].
	ErrOutOfRange = errors.New("delay out of range")
)

// Heartbeat paces a loop with an adjustable delay between iterations.
//
// A Heartbeat is driven by exactly one consumer loop at a time and holds no
// internal lock: Faster, Slower and SetDelay may be called from a feedback
// path, but if that path runs on another goroutine the caller must provide
// its own synchronization.
type Heartbeat struct {
	fastest time.Duration
	slowest time.Duration
	ratio   float64
	delay   time.Duration
	prev    time.Time
	clock   Clock
	sleeper Sleeper
	logger  *slog.Logger
}

// New builds a Heartbeat from cfg. Zero-valued fields take defaults (see
// Config); the resulting configuration is then validated and any violation
// fails with an error wrapping ErrInvalidConfig.
func New(cfg Config) (*Heartbeat, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("heartbeat: %w", err)
	}

	now := cfg.Clock.Now()

	return &Heartbeat{
		fastest: cfg.Fastest,
		slowest: cfg.Slowest,
		ratio:   cfg.Ratio,
		delay:   cfg.Start,
		// backdated by the start delay so the first Wait returns immediately
		prev:    now.Add(-cfg.Start),
		clock:   cfg.Clock,
		sleeper: cfg.Sleeper,
		logger:  cfg.Logger,
	}, nil
}

// Faster shortens the pause before the next iteration by dividing the delay
// by the configured ratio, clamped at the fastest bound.
//
// It returns false if the fastest delay is already reached and so the delay
// cannot be decreased.
func (h *Heartbeat) Faster() bool {
	if h.delay <= h.fastest {
		return false
	}

	d := time.Duration(float64(h.delay) / h.ratio)
	if d < h.fastest {
		d = h.fastest
	}

	h.logger.Debug("heartbeat faster", "from", h.delay, "to", d)
	h.delay = d

	return true
}

// Slower lengthens the pause before the next iteration by multiplying the
// delay by the configured ratio, clamped at the slowest bound.
//
// It returns false if the slowest delay is already reached and so the delay
// cannot be increased.
func (h *Heartbeat) Slower() bool {
	if h.delay >= h.slowest {
		return false
	}

	d := time.Duration(float64(h.delay) * h.ratio)
	if d > h.slowest {
		d = h.slowest
	}

	h.logger.Debug("heartbeat slower", "from", h.delay, "to", d)
	h.delay = d

	return true
}

// Delay returns the current delay between iterations.
func (h *Heartbeat) Delay() time.Duration {
	return h.delay
}

// SetDelay sets the delay directly, bypassing the ratio mechanism. Values
// outside [fastest, slowest] are rejected with an error wrapping
// ErrOutOfRange and leave the delay unchanged.
func (h *Heartbeat) SetDelay(d time.Duration) error {
	if d < h.fastest || d > h.slowest {
		return fmt.Errorf("heartbeat: %w: %v not in [%v, %v]", ErrOutOfRange, d, h.fastest, h.slowest)
	}

	h.logger.Debug("heartbeat set delay", "from", h.delay, "to", d)
	h.delay = d

	return nil
}

// Wait blocks until the current delay has passed since the previous wait
// completed. The first call returns immediately.
func (h *Heartbeat) Wait() {
	// the background context cannot be cancelled, so the error is always nil
	_ = h.WaitContext(context.Background())
}

// WaitContext waits for the current delay, suspending in two phases: half
// of the remaining pause, then the remainder measured afresh. If the
// process is suspended during the sleep, re-measuring after the first half
// bounds the overshoot to roughly half a delay instead of a full one.
//
// On cancellation the context error is returned unmodified and the last
// tick is left unchanged, so a retried wait measures elapsed time from the
// original tick. The tick is updated only after both phases complete.
func (h *Heartbeat) WaitContext(ctx context.Context) error {
	if err := h.sleeper.Sleep(ctx, h.pause()/2); err != nil {
		return err
	}

	if err := h.sleeper.Sleep(ctx, h.pause()); err != nil {
		return err
	}

	h.prev = h.clock.Now()

	return nil
}

// pause returns how long is left of the current delay, measured from the
// last completed wait. Never negative: time already spent beyond the delay
// is not carried over as debt.
func (h *Heartbeat) pause() time.Duration {
	elapsed := h.clock.Now().Sub(h.prev)

	pause := h.delay - elapsed
	if pause <= 0 {
		return 0
	}

	return pause
}
