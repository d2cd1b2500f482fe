package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUnavailable reports that a Redis or MongoDB backend could not be
	// reached. Runners treat it as a miss and compute the layout anyway.
	ErrUnavailable = errors.New("cache backend unavailable")

	// ErrCacheMiss is used inside backends to signal an absent or expired key.
	// Get never returns it; callers see hit == false instead.
	ErrCacheMiss = errors.New("cache miss")
)

// RetryableError marks a transient backend failure.
type RetryableError struct{ Err error }

// Retryable wraps err so RetryWithBackoff tries again. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err, or anything it wraps, is a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// backoff is a bounded retry schedule whose delay doubles after each attempt.
type backoff struct {
	attempts int
	delay    time.Duration
}

// remoteBackoff is the schedule used for Redis and MongoDB round trips.
var remoteBackoff = backoff{attempts: 3, delay: time.Second}

// RetryWithBackoff runs fn on the remote backend schedule. Only errors
// wrapped with Retryable are retried; anything else returns at once.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return remoteBackoff.run(ctx, fn)
}

func (b backoff) run(ctx context.Context, fn func() error) error {
	delay := b.delay
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if attempt >= b.attempts {
			return err
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}
