// Package ratelimit spaces calls to an external source by a minimum interval.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter enforces a minimum interval between successive Wait calls.
// Concurrent callers are serialized; each one waits for the previous call plus the interval.
type Limiter struct {
	// sem is a one-slot semaphore held for the whole of Wait, so a queued caller can still leave on ctx.
	sem      chan struct{}
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

// New returns a Limiter with the given minimum interval. A non-positive interval never blocks.
func New(interval time.Duration) *Limiter {
	return &Limiter{sem: make(chan struct{}, 1), interval: interval}
}

// Wait blocks until at least the interval has elapsed since the previous call returned,
// then records the current time as the last call.
// It returns ctx.Err() if ctx is done first; the last call time is left unchanged in that case.
func (l *Limiter) Wait(ctx context.Context) error {
	select {
	case l.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-l.sem }()

	if last := l.LastCall(); !last.IsZero() {
		if wait := l.interval - time.Since(last); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}

	l.mu.Lock()
	l.last = time.Now()
	l.mu.Unlock()
	return nil
}

// Interval returns the configured minimum interval.
func (l *Limiter) Interval() time.Duration {
	return l.interval
}

// LastCall returns the time the previous Wait returned, or the zero time.
func (l *Limiter) LastCall() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.last
}
