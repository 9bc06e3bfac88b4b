package ratelimit_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketlens/marketlens/pkg/ratelimit"
)

func TestAllow_AdmitsUpToQuota(t *testing.T) {
	limiter := ratelimit.NewSlidingWindowLimiter(10, time.Hour, nil)
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		result, err := limiter.Allow("demo")
		require.NoError(t, err)
		assert.Equal(t, 10, result.Limit)
		assert.Equal(t, 10-(i+1), result.Remaining)
	}

	result, err := limiter.Allow("demo")
	assert.Error(t, err)
	assert.Equal(t, 0, result.Remaining)

	var limitErr *ratelimit.LimitExceededError
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, 10, limitErr.Limit)
	assert.Contains(t, err.Error(), "maximum 10 requests per hour")
}

func TestAllow_RejectedRequestsDoNotConsumeSlots(t *testing.T) {
	now := time.Now()
	clock := now
	var mu sync.Mutex
	limiter := ratelimit.NewSlidingWindowLimiter(2, time.Hour, &ratelimit.Opts{
		TimeProvider: func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			return clock
		},
	})
	defer limiter.Stop()

	_, err := limiter.Allow("demo")
	require.NoError(t, err)
	_, err = limiter.Allow("demo")
	require.NoError(t, err)

	// Hammer the limiter while over quota; none of these may record.
	for i := 0; i < 20; i++ {
		_, err = limiter.Allow("demo")
		assert.Error(t, err)
	}

	// Once the first two requests age out the user has the full quota back.
	// If the rejected attempts had been recorded, this admission would fail.
	mu.Lock()
	clock = now.Add(61 * time.Minute)
	mu.Unlock()

	result, err := limiter.Allow("demo")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Remaining)
}

func TestAllow_WindowSlides(t *testing.T) {
	now := time.Now()
	clock := now
	var mu sync.Mutex
	limiter := ratelimit.NewSlidingWindowLimiter(3, time.Hour, &ratelimit.Opts{
		TimeProvider: func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			return clock
		},
	})
	defer limiter.Stop()

	advance := func(d time.Duration) {
		mu.Lock()
		clock = clock.Add(d)
		mu.Unlock()
	}

	// Two requests at t=0, one at t=30m: quota full.
	_, err := limiter.Allow("demo")
	require.NoError(t, err)
	_, err = limiter.Allow("demo")
	require.NoError(t, err)
	advance(30 * time.Minute)
	_, err = limiter.Allow("demo")
	require.NoError(t, err)
	_, err = limiter.Allow("demo")
	assert.Error(t, err)

	// At t=61m the two t=0 entries have left the window; the t=30m entry has not.
	advance(31 * time.Minute)
	result, err := limiter.Allow("demo")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Remaining)
}

func TestAllow_UsersAreIndependent(t *testing.T) {
	limiter := ratelimit.NewSlidingWindowLimiter(1, time.Hour, nil)
	defer limiter.Stop()

	_, err := limiter.Allow("demo")
	require.NoError(t, err)
	_, err = limiter.Allow("demo")
	require.Error(t, err)

	_, err = limiter.Allow("guest")
	assert.NoError(t, err)
}

func TestAllow_ConcurrentRequestsNeverOverAdmit(t *testing.T) {
	const quota = 10
	const attempts = 100

	limiter := ratelimit.NewSlidingWindowLimiter(quota, time.Hour, nil)
	defer limiter.Stop()

	var admitted atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := limiter.Allow("demo"); err == nil {
				admitted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(quota), admitted.Load())
}

func TestAllow_ResetTracksOldestRetainedEntry(t *testing.T) {
	now := time.Now()
	limiter := ratelimit.NewSlidingWindowLimiter(5, time.Hour, &ratelimit.Opts{
		TimeProvider: func() time.Time { return now },
	})
	defer limiter.Stop()

	result, err := limiter.Allow("demo")
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), result.Reset)
}
