package ratelimit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyed_AdmitsExactlyLimitWithinWindow(t *testing.T) {
	limiter := NewKeyed(7, time.Minute)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 7; i++ {
		assert.True(t, limiter.Allow("client-a", now), "request %d should be admitted", i+1)
	}
	assert.False(t, limiter.Allow("client-a", now), "request over the limit should be rejected")
}

func TestKeyed_ResetsAfterWindow(t *testing.T) {
	limiter := NewKeyed(10, time.Minute)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 10; i++ {
		assert.True(t, limiter.Allow("client-a", now))
	}
	assert.False(t, limiter.Allow("client-a", now))

	later := now.Add(time.Minute)
	for i := 0; i < 10; i++ {
		assert.True(t, limiter.Allow("client-a", later), "request %d after window should be admitted", i+1)
	}
	assert.False(t, limiter.Allow("client-a", later))
}

func TestKeyed_KeysAreIndependent(t *testing.T) {
	limiter := NewKeyed(3, time.Minute)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("client-a", now))
	}
	assert.False(t, limiter.Allow("client-a", now))

	// Лимит другого клиента не затронут.
	assert.True(t, limiter.Allow("client-b", now))
}

func TestKeyed_ConcurrentRequestsCannotExceedLimit(t *testing.T) {
	const limit = 10
	limiter := NewKeyed(limit, time.Minute)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	var admitted atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter.Allow("client-a", now) {
				admitted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(limit), admitted.Load())
}
