package http

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func TestRateLimiter_Allow(t *testing.T) {
	is := is.New(t)
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	limiter := newRateLimiter(2, time.Minute, clock.Now)

	ok, _ := limiter.Allow("10.0.0.1")
	is.True(ok)
	ok, _ = limiter.Allow("10.0.0.1")
	is.True(ok)

	clock.now = clock.now.Add(20 * time.Second)
	ok, retryAfter := limiter.Allow("10.0.0.1")
	is.True(!ok)
	is.Equal(retryAfter, 40*time.Second)

	ok, _ = limiter.Allow("10.0.0.2")
	is.True(ok)

	clock.now = clock.now.Add(40 * time.Second)
	ok, _ = limiter.Allow("10.0.0.1")
	is.True(ok)
}

func TestRateLimiter_Cleanup(t *testing.T) {
	is := is.New(t)
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	limiter := newRateLimiter(1, time.Minute, clock.Now)

	limiter.Allow("stale")
	clock.now = clock.now.Add(bucketCleanupThreshold + time.Second)
	limiter.Allow("fresh")

	limiter.cleanup()

	is.Equal(len(limiter.clients), 1)
	_, ok := limiter.clients["fresh"]
	is.True(ok)
}

func TestRateLimiter_StopTwice(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	limiter.Stop()
	limiter.Stop()
}
