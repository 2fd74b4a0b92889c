package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-logr/logr"

	"github.com/imamik/cloudwait/internal/util/clock"
)

// Config holds retry configuration.
type Config struct {
	MaxAttempts  int           // Total attempts including the first; values < 1 mean 1
	InitialDelay time.Duration // Delay after the first failed attempt
	MaxDelay     time.Duration // Upper bound for a single delay; 0 disables the cap
	Multiplier   float64       // Backoff multiplier applied after every failed attempt

	// Retryable decides whether a failed attempt may be repeated.
	// Nil retries every error that is not wrapped with Fatal.
	Retryable func(error) bool

	Clock clock.Clock
}

// Option is a functional option for retry configuration.
type Option func(*Config)

// DefaultConfig returns the configuration used when no options are given.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: 1 * time.Second,
		Multiplier:   2.0,
		Clock:        clock.Real(),
	}
}

// Delay returns the sleep that precedes attempt+1, where attempt is 1-based.
func (c Config) Delay(attempt int) time.Duration {
	if attempt < 1 {
		return 0
	}
	d := float64(c.InitialDelay) * math.Pow(c.Multiplier, float64(attempt-1))
	// Saturate in float space; float64(math.MaxInt64) rounds up to 2^63,
	// which wraps negative when converted.
	switch {
	case math.IsNaN(d) || d < 0:
		return c.MaxDelay
	case c.MaxDelay > 0 && d >= float64(c.MaxDelay):
		return c.MaxDelay
	case d >= float64(math.MaxInt64):
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(d)
}

func (c Config) retryable(err error) bool {
	if IsFatal(err) {
		return false
	}
	if c.Retryable != nil {
		return c.Retryable(err)
	}
	return true
}

// Do executes the operation with exponential backoff retry.
// Context cancellation is respected between attempts.
func Do(ctx context.Context, operation func() error, opts ...Option) error {
	_, err := DoWithResult(ctx, func() (struct{}, error) {
		return struct{}{}, operation()
	}, opts...)
	return err
}

// DoWithResult is Do for operations that produce a value. On success the
// value of the successful attempt is returned.
func DoWithResult[T any](ctx context.Context, operation func() (T, error), opts ...Option) (T, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}

	log := logr.FromContextOrDiscard(ctx)

	var zero T
	for attempt := 1; ; attempt++ {
		result, err := operation()
		if err == nil {
			return result, nil
		}

		if attempt >= cfg.MaxAttempts || !cfg.retryable(err) {
			return zero, err
		}

		delay := cfg.Delay(attempt)
		log.V(1).Info("retrying after error", "attempt", attempt, "maxAttempts", cfg.MaxAttempts, "delay", delay, "error", err.Error())

		if sleepErr := cfg.Clock.Sleep(ctx, delay); sleepErr != nil {
			return zero, fmt.Errorf("retry cancelled after %d attempts: %w", attempt, errors.Join(sleepErr, err))
		}
	}
}

// WithMaxAttempts sets the total number of attempts.
func WithMaxAttempts(n int) Option {
	return func(c *Config) {
		c.MaxAttempts = n
	}
}

// WithInitialDelay sets the delay after the first failed attempt.
func WithInitialDelay(d time.Duration) Option {
	return func(c *Config) {
		c.InitialDelay = d
	}
}

// WithMaxDelay caps a single delay.
func WithMaxDelay(d time.Duration) Option {
	return func(c *Config) {
		c.MaxDelay = d
	}
}

// WithMultiplier sets the backoff multiplier.
func WithMultiplier(m float64) Option {
	return func(c *Config) {
		c.Multiplier = m
	}
}

// WithRetryable restricts retries to errors for which fn returns true.
// Errors wrapped with Fatal are never retried.
func WithRetryable(fn func(error) bool) Option {
	return func(c *Config) {
		c.Retryable = fn
	}
}

// WithClock replaces the clock used for backoff sleeps.
func WithClock(clk clock.Clock) Option {
	return func(c *Config) {
		c.Clock = clk
	}
}

// WithConfig copies every field of cfg except a nil Clock.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		clk := c.Clock
		*c = cfg
		if c.Clock == nil {
			c.Clock = clk
		}
	}
}

// FatalError wraps an error to mark it as fatal (non-retryable).
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return e.Err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// Fatal marks an error as fatal (non-retryable).
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Err: err}
}

// IsFatal checks if an error is fatal (non-retryable).
func IsFatal(err error) bool {
	var fatalErr *FatalError
	return errors.As(err, &fatalErr)
}
