package heartbeat

import (
	"fmt"
	"log/slog"
	"time"
)

// Default values applied to zero-valued Config fields.
const (
	// DefaultFastest is the smallest allowed delay when Fastest is unset.
	DefaultFastest = time.Microsecond

	// DefaultSlowest is the highest allowed delay when Slowest is unset.
	DefaultSlowest = time.Minute

	// DefaultRatio is the adjustment ratio when Ratio is unset.
	DefaultRatio = 2.0
)

type Config struct {
	// Fastest is the smallest allowed delay. Once the delay reaches this
	// value, Faster does nothing. Must be non-negative.
	Fastest time.Duration

	// Slowest is the highest allowed delay. Once the delay reaches this
	// value, Slower does nothing. Must be bigger than Fastest.
	Slowest time.Duration

	// Start is the initial delay. When unset, the midpoint of Fastest and
	// Slowest is used. Must be between Fastest and Slowest.
	Start time.Duration

	// Ratio is the multiplicative adjustment factor. The default of 2 means
	// Faster halves the delay and Slower doubles it. Must be bigger than 1.
	Ratio float64

	// Clock is the time source. Defaults to the system clock.
	Clock Clock

	// Sleeper is the suspension primitive. Defaults to a timer-based sleeper.
	Sleeper Sleeper

	Logger *slog.Logger
}

// withDefaults returns a copy with zero-valued fields replaced by defaults.
func (c Config) withDefaults() Config {
	if c.Fastest == 0 {
		c.Fastest = DefaultFastest
	}

	if c.Slowest == 0 {
		c.Slowest = DefaultSlowest
	}

	if c.Start == 0 {
		c.Start = (c.Fastest + c.Slowest) / 2
	}

	if c.Ratio == 0 {
		c.Ratio = DefaultRatio
	}

	if c.Clock == nil {
		c.Clock = &systemClock{}
	}

	if c.Sleeper == nil {
		c.Sleeper = &timerSleeper{}
	}

	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}

	return c
}

func (c *Config) Validate() error {
	if c.Fastest < 0 {
		return fmt.Errorf("%w: fastest must be non-negative, got %v", ErrInvalidConfig, c.Fastest)
	}

	if c.Slowest <= c.Fastest {
		return fmt.Errorf("%w: slowest (%v) must be bigger than fastest (%v)", ErrInvalidConfig, c.Slowest, c.Fastest)
	}

	if c.Start < c.Fastest || c.Start > c.Slowest {
		return fmt.Errorf("%w: start (%v) must be between fastest (%v) and slowest (%v)", ErrInvalidConfig, c.Start, c.Fastest, c.Slowest)
	}

	if c.Ratio <= 1 {
		return fmt.Errorf("%w: ratio must be bigger than 1, got %v", ErrInvalidConfig, c.Ratio)
	}

	return nil
}
