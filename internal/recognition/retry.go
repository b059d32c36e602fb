package recognition

import (
	"context"
	"errors"
	"sync"
	"time"
)

// retryableError marks a transient failure (rate limit, server error or
// network timeout) worth another attempt.
type retryableError struct {
	err error
}

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// withRetry runs fn up to MaxRetries times with exponential backoff, retrying
// only transient failures.
func (c *Client) withRetry(ctx context.Context, fn func() error) error {
	backoff := c.cfg.RetryBackoff
	var lastErr error
	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		var transient *retryableError
		if !errors.As(lastErr, &transient) {
			return lastErr
		}
	}
	return lastErr
}

// minInterval enforces a minimum gap between calls across goroutines.
type minInterval struct {
	mu       sync.Mutex
	interval time.Duration
	next     time.Time
}

func newMinInterval(interval time.Duration) *minInterval {
	return &minInterval{interval: interval}
}

// Wait blocks until the caller's slot arrives or the context ends. With a
// zero interval it returns immediately.
func (m *minInterval) Wait(ctx context.Context) error {
	if m.interval <= 0 {
		return nil
	}
	m.mu.Lock()
	now := time.Now()
	at := m.next
	if at.Before(now) {
		at = now
	}
	m.next = at.Add(m.interval)
	m.mu.Unlock()

	delay := time.Until(at)
	if delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}
