// Package retry provides bounded, context-aware retry loops.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Config holds retry configuration.
type Config struct {
	// Attempts is the total number of attempts, including the first.
	Attempts int

	// Delay is the pause between attempts.
	Delay time.Duration

	// Multiplier grows the delay after each attempt. 1.0 keeps the
	// interval fixed.
	Multiplier float64

	// MaxDelay caps the delay when Multiplier is above 1.0.
	MaxDelay time.Duration

	// OnAttempt, when set, is called with the 1-based attempt number and
	// the attempt's error before the next delay.
	OnAttempt func(attempt int, err error)
}

// Option is a functional option for retry configuration.
type Option func(*Config)

// Do runs operation until it succeeds, the attempt budget is exhausted, or
// ctx is cancelled. With a fixed interval the worst-case blocking time is
// bounded by Attempts * Delay.
func Do(ctx context.Context, operation func() error, opts ...Option) error {
	cfg := &Config{
		Attempts:   5,
		Delay:      time.Second,
		Multiplier: 1.0,
		MaxDelay:   30 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	delay := cfg.Delay
	var lastErr error

	for attempt := 1; attempt <= cfg.Attempts; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}
		lastErr = err

		if cfg.OnAttempt != nil {
			cfg.OnAttempt(attempt, err)
		}

		if attempt < cfg.Attempts {
			select {
			case <-ctx.Done():
				return fmt.Errorf("cancelled after %d attempts: %w", attempt, ctx.Err())
			case <-time.After(delay):
			}
			if cfg.Multiplier > 1.0 {
				delay = time.Duration(float64(delay) * cfg.Multiplier)
				if delay > cfg.MaxDelay {
					delay = cfg.MaxDelay
				}
			}
		}
	}

	return fmt.Errorf("all %d attempts failed: %w", cfg.Attempts, lastErr)
}

// WithAttempts sets the total attempt budget.
func WithAttempts(n int) Option {
	return func(c *Config) {
		c.Attempts = n
	}
}

// WithDelay sets the delay between attempts.
func WithDelay(d time.Duration) Option {
	return func(c *Config) {
		c.Delay = d
	}
}

// WithMultiplier sets the backoff multiplier.
func WithMultiplier(m float64) Option {
	return func(c *Config) {
		c.Multiplier = m
	}
}

// WithMaxDelay caps the delay between attempts.
func WithMaxDelay(d time.Duration) Option {
	return func(c *Config) {
		c.MaxDelay = d
	}
}

// WithAttemptCallback registers a callback invoked after each failed attempt.
func WithAttemptCallback(fn func(attempt int, err error)) Option {
	return func(c *Config) {
		c.OnAttempt = fn
	}
}
