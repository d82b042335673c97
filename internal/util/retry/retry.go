package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Config holds retry configuration.
type Config struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// Option is a functional option for retry configuration.
type Option func(*Config)

// Do executes the operation until it succeeds, returns a fatal error, or
// the attempt budget is exhausted. Between attempts it sleeps for the
// configured delay, scaled by the multiplier after each attempt and capped
// at MaxDelay. Context cancellation is respected during the sleep.
//
// Errors wrapped with Fatal() are returned immediately without further
// attempts.
func Do(ctx context.Context, operation func() error, opts ...Option) error {
	cfg := &Config{
		MaxAttempts:  5,
		InitialDelay: 1 * time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	delay := cfg.InitialDelay
	var lastErr error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}
		lastErr = err

		if IsFatal(err) {
			return err
		}

		if attempt < cfg.MaxAttempts {
			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled after %d attempts: %w", attempt, ctx.Err())
			case <-time.After(delay):
				delay = time.Duration(float64(delay) * cfg.Multiplier)
				if delay > cfg.MaxDelay {
					delay = cfg.MaxDelay
				}
			}
		}
	}

	return fmt.Errorf("operation failed after %d attempts: %w", cfg.MaxAttempts, lastErr)
}

// WithMaxAttempts sets the total number of attempts.
func WithMaxAttempts(n int) Option {
	return func(c *Config) {
		c.MaxAttempts = n
	}
}

// WithInitialDelay sets the delay before the second attempt.
func WithInitialDelay(d time.Duration) Option {
	return func(c *Config) {
		c.InitialDelay = d
	}
}

// WithMaxDelay sets the maximum delay between attempts.
func WithMaxDelay(d time.Duration) Option {
	return func(c *Config) {
		c.MaxDelay = d
	}
}

// WithMultiplier sets the backoff multiplier. Use 1.0 for a fixed cadence.
func WithMultiplier(m float64) Option {
	return func(c *Config) {
		c.Multiplier = m
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
