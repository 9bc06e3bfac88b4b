package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

//go:generate mockery --name=Limiter --dir=. --output=../../mocks --filename=limiter_mock.go --case=underscore --with-expecter

// Limiter admits or rejects a request for a user against a sliding-window
// quota. Admission and recording happen in one atomic step: a rejected
// request never consumes a slot.
type Limiter interface {
	Allow(username string) (Result, error)
}

// Result reports the window state after an admission check, for the
// X-RateLimit-* response headers.
type Result struct {
	Limit     int
	Remaining int
	Reset     time.Time
}

// LimitExceededError is returned when a user is over quota.
type LimitExceededError struct {
	Limit      int
	Window     time.Duration
	RetryAfter time.Duration
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("rate limit exceeded: maximum %d requests per %s", e.Limit, formatWindow(e.Window))
}

func formatWindow(w time.Duration) string {
	switch w {
	case time.Hour:
		return "hour"
	case time.Minute:
		return "minute"
	default:
		return w.String()
	}
}

type Opts struct {
	TimeProvider func() time.Time
}

type SlidingWindowLimiter struct {
	mu      sync.Mutex
	history map[string][]time.Time
	limit   int
	window  time.Duration
	now     func() time.Time
	done    chan struct{}
}

// NewSlidingWindowLimiter builds an in-memory limiter keeping one ordered
// timestamp slice per username. The window boundary moves continuously with
// now, so a burst at the edge of a fixed bucket cannot double the effective
// rate. State is process-local and lost on restart.
func NewSlidingWindowLimiter(limit int, window time.Duration, opts *Opts) *SlidingWindowLimiter {
	now := time.Now
	if opts != nil && opts.TimeProvider != nil {
		now = opts.TimeProvider
	}

	l := &SlidingWindowLimiter{
		history: make(map[string][]time.Time),
		limit:   limit,
		window:  window,
		now:     now,
		done:    make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

func (l *SlidingWindowLimiter) Allow(username string) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	retained := l.history[username][:0]
	for _, ts := range l.history[username] {
		if ts.After(cutoff) {
			retained = append(retained, ts)
		}
	}

	if len(retained) >= l.limit {
		l.history[username] = retained
		reset := retained[0].Add(l.window)
		return Result{Limit: l.limit, Remaining: 0, Reset: reset}, &LimitExceededError{
			Limit:      l.limit,
			Window:     l.window,
			RetryAfter: reset.Sub(now),
		}
	}

	retained = append(retained, now)
	l.history[username] = retained

	return Result{
		Limit:     l.limit,
		Remaining: l.limit - len(retained),
		Reset:     retained[0].Add(l.window),
	}, nil
}

// cleanupLoop evicts users whose whole history has aged out, so usernames
// seen once do not pin map entries forever.
func (l *SlidingWindowLimiter) cleanupLoop() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.evictStale()
		case <-l.done:
			return
		}
	}
}

func (l *SlidingWindowLimiter) evictStale() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	for username, timestamps := range l.history {
		if len(timestamps) == 0 || !timestamps[len(timestamps)-1].After(cutoff) {
			delete(l.history, username)
		}
	}
}

// Stop terminates the background cleanup goroutine.
func (l *SlidingWindowLimiter) Stop() {
	close(l.done)
}
