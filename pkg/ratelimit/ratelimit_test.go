package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// clock is a manually advanced time source for deterministic window tests.
type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(limit int, window time.Duration) (*Store, *clock) {
	c := &clock{t: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	return newWithClock("test", limit, window, c.now), c
}

func TestAllow_LimitPerWindow(t *testing.T) {
	s, _ := newTestStore(3, time.Minute)

	for i := 0; i < 3; i++ {
		ok, _ := s.Allow("k")
		assert.True(t, ok, "request %d should be allowed", i+1)
	}
	ok, retry := s.Allow("k")
	assert.False(t, ok, "fourth request in the window must be denied")
	assert.True(t, retry > 0, "denied requests must report a positive retry delay")
}

func TestAllow_KeysAreIsolated(t *testing.T) {
	s, _ := newTestStore(1, time.Minute)

	ok, _ := s.Allow("a")
	assert.True(t, ok)
	ok, _ = s.Allow("a")
	assert.False(t, ok)

	// A different key has its own window.
	ok, _ = s.Allow("b")
	assert.True(t, ok)
}

func TestAllow_WindowResets(t *testing.T) {
	s, c := newTestStore(1, time.Minute)

	ok, _ := s.Allow("k")
	assert.True(t, ok)
	ok, _ = s.Allow("k")
	assert.False(t, ok)

	c.advance(time.Minute)
	ok, _ = s.Allow("k")
	assert.True(t, ok, "a fresh window should admit the key again")
}

func TestAllow_RetryAfterShrinksAsWindowAges(t *testing.T) {
	s, c := newTestStore(1, time.Minute)

	s.Allow("k")
	_, retry1 := s.Allow("k")
	c.advance(40 * time.Second)
	_, retry2 := s.Allow("k")

	assert.Equal(t, time.Minute, retry1)
	assert.Equal(t, 20*time.Second, retry2)
}

func TestRetryAfterSeconds_RoundsUp(t *testing.T) {
	assert.Equal(t, 1, RetryAfterSeconds(200*time.Millisecond))
	assert.Equal(t, 2, RetryAfterSeconds(1100*time.Millisecond))
	assert.Equal(t, 60, RetryAfterSeconds(time.Minute))
	// Never less than one second, even for a zero delay.
	assert.Equal(t, 1, RetryAfterSeconds(0))
}

func TestSweep_DropsExpiredEntries(t *testing.T) {
	s, c := newTestStore(5, time.Minute)

	s.Allow("a")
	s.Allow("b")
	assert.Equal(t, 2, s.Len())

	c.advance(2 * time.Minute)
	s.sweepLocked(c.now())
	assert.Equal(t, 0, s.Len())
}
