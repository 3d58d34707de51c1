// Package ratelimit implements a process-local fixed-window request counter.
//
// It is deliberately best-effort: counters live in memory, reset on restart
// and are not shared across instances. That is acceptable for its single use
// (throttling checkout-session creation) and nothing else should rely on it.
package ratelimit

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

type window struct {
	count   int
	resetAt time.Time
}

// Store counts requests per client key inside a fixed window.
type Store struct {
	name   string
	limit  int
	window time.Duration

	mu      sync.Mutex
	entries map[string]*window
	now     func() time.Time
	// sweepEvery: expired entries are dropped on roughly 1 in N calls.
	sweepEvery int
	rng        *rand.Rand
}

// New builds a store. limit is the max number of allowed calls per key per window.
func New(name string, limit int, windowDur time.Duration) *Store {
	return newWithClock(name, limit, windowDur, time.Now)
}

func newWithClock(name string, limit int, windowDur time.Duration, now func() time.Time) *Store {
	return &Store{
		name:       name,
		limit:      limit,
		window:     windowDur,
		entries:    make(map[string]*window),
		now:        now,
		sweepEvery: 64,
		rng:        rand.New(rand.NewSource(now().UnixNano())),
	}
}

// Allow records a hit for key and reports whether it fits in the current
// window. When denied, retryAfter is the time until the window resets
// (always positive).
func (s *Store) Allow(key string) (allowed bool, retryAfter time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	if s.rng.Intn(s.sweepEvery) == 0 {
		s.sweepLocked(now)
	}

	w, ok := s.entries[key]
	if !ok || !now.Before(w.resetAt) {
		s.entries[key] = &window{count: 1, resetAt: now.Add(s.window)}
		return true, 0
	}
	if w.count >= s.limit {
		return false, w.resetAt.Sub(now)
	}
	w.count++
	return true, 0
}

// RetryAfterSeconds rounds a retry delay up to whole seconds for the
// Retry-After header; never less than 1 for a denied request.
func RetryAfterSeconds(d time.Duration) int {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return secs
}

func (s *Store) sweepLocked(now time.Time) {
	for k, w := range s.entries {
		if !now.Before(w.resetAt) {
			delete(s.entries, k)
		}
	}
}

// Len reports the number of tracked keys. Intended for tests and metrics.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
