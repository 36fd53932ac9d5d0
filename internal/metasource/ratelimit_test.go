package metasource

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateLimiter(t *testing.T) {
	t.Run("creates limiter with specified rate and burst", func(t *testing.T) {
		rl := NewRateLimiter(10, 5)

		require.NotNil(t, rl)
		require.NotNil(t, rl.limiter)

		// Verify burst by allowing multiple requests
		for i := 0; i < 5; i++ {
			assert.True(t, rl.Allow(), "should allow request %d within burst", i+1)
		}
		assert.False(t, rl.Allow(), "request beyond burst should be denied")
	})

	t.Run("creates limiter with polite pool rate (10 req/sec)", func(t *testing.T) {
		rl := NewRateLimiter(10, 10)

		require.NotNil(t, rl)
		for i := 0; i < 10; i++ {
			assert.True(t, rl.Allow())
		}
		assert.False(t, rl.Allow())
	})
}

func TestRateLimiter_Wait(t *testing.T) {
	t.Run("burst allows instant requests", func(t *testing.T) {
		rl := NewRateLimiter(100, 5)

		ctx := context.Background()
		start := time.Now()

		for i := 0; i < 5; i++ {
			err := rl.Wait(ctx)
			require.NoError(t, err)
		}

		elapsed := time.Since(start)
		// Should complete in under 50ms (generous margin for test stability)
		assert.Less(t, elapsed, 50*time.Millisecond,
			"burst requests should be nearly instant, took %v", elapsed)
	})

	t.Run("waits for token after burst exhausted", func(t *testing.T) {
		// 10 requests per second = 100ms between requests
		rl := NewRateLimiter(10, 1)

		ctx := context.Background()

		err := rl.Wait(ctx)
		require.NoError(t, err)

		start := time.Now()
		err = rl.Wait(ctx)
		require.NoError(t, err)
		elapsed := time.Since(start)

		assert.GreaterOrEqual(t, elapsed, 90*time.Millisecond,
			"should wait for token, waited only %v", elapsed)
	})

	t.Run("returns immediately with canceled context", func(t *testing.T) {
		rl := NewRateLimiter(1, 1)

		// Exhaust the burst
		assert.True(t, rl.Allow())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := rl.Wait(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("respects context deadline", func(t *testing.T) {
		rl := NewRateLimiter(1, 1)

		// Exhaust the burst
		assert.True(t, rl.Allow())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		// Note: rate.Limiter.Wait reports that the deadline would be exceeded
		// rather than returning context.DeadlineExceeded directly.
		err := rl.Wait(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "deadline")
	})
}

func TestRateLimiter_SetRate(t *testing.T) {
	t.Run("updates rate limit", func(t *testing.T) {
		rl := NewRateLimiter(1, 1)

		// Exhaust burst
		assert.True(t, rl.Allow())
		assert.False(t, rl.Allow())

		// Increase rate to 1000/sec (1ms per token)
		rl.SetRate(1000)

		time.Sleep(5 * time.Millisecond)

		assert.True(t, rl.Allow())
	})
}

func TestRateLimiter_Tokens(t *testing.T) {
	t.Run("returns current token count", func(t *testing.T) {
		rl := NewRateLimiter(10, 5)

		tokens := rl.Tokens()
		assert.InDelta(t, 5.0, tokens, 0.1, "should have approximately 5 tokens")

		rl.Allow()
		rl.Allow()

		tokens = rl.Tokens()
		assert.InDelta(t, 3.0, tokens, 0.1, "should have approximately 3 tokens left")
	})
}

func TestRateLimiter_Concurrency(t *testing.T) {
	t.Run("is safe for concurrent use", func(t *testing.T) {
		rl := NewRateLimiter(1000, 100)
		ctx := context.Background()

		var wg sync.WaitGroup
		errChan := make(chan error, 100)

		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 10; j++ {
					if err := rl.Wait(ctx); err != nil {
						errChan <- err
						return
					}
				}
			}()
		}

		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 10; j++ {
					rl.Allow()
				}
			}()
		}

		wg.Wait()
		close(errChan)

		for err := range errChan {
			t.Errorf("unexpected error during concurrent access: %v", err)
		}
	})
}
