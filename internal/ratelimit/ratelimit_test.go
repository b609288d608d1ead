package ratelimit

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"precheck/pkg/requestcontext"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// newTestStore refills one token per second.
func newTestStore(limit int) (*Store, *fakeClock) {
	clock := newFakeClock()
	store := NewStore(limit, time.Duration(limit)*time.Second)
	store.now = clock.Now
	return store, clock
}

// =============================================================================
// Token buckets
// =============================================================================

func TestStoreAllow(t *testing.T) {
	t.Run("admits a full budget at once", func(t *testing.T) {
		store, clock := newTestStore(3)
		for i := range 3 {
			res := store.Allow("client:tfl-spi")
			require.True(t, res.Allowed, "request %d", i)
			assert.Equal(t, 2-i, res.Remaining)
		}

		res := store.Allow("client:tfl-spi")
		assert.False(t, res.Allowed)
		assert.Equal(t, 3, res.Limit)
		assert.Equal(t, 0, res.Remaining)
		assert.InDelta(t, time.Second, res.RetryAfter, float64(time.Millisecond))
		assert.WithinDuration(t, clock.Now().Add(3*time.Second), res.ResetAt, time.Millisecond)
	})

	t.Run("refills at the steady rate", func(t *testing.T) {
		store, clock := newTestStore(2)
		store.Allow("k")
		store.Allow("k")
		require.False(t, store.Allow("k").Allowed)

		clock.Advance(time.Second)
		assert.True(t, store.Allow("k").Allowed)
		assert.False(t, store.Allow("k").Allowed)

		clock.Advance(10 * time.Second)
		res := store.Allow("k")
		assert.True(t, res.Allowed)
		assert.Equal(t, 1, res.Remaining, "the bucket never holds more than the limit")
	})

	t.Run("rejections do not consume the budget", func(t *testing.T) {
		store, clock := newTestStore(1)
		store.Allow("k")
		for range 5 {
			store.Allow("k")
		}

		clock.Advance(time.Second)
		assert.True(t, store.Allow("k").Allowed)
	})

	t.Run("keys are independent", func(t *testing.T) {
		store, _ := newTestStore(1)
		store.Allow("client:a")
		assert.False(t, store.Allow("client:a").Allowed)
		assert.True(t, store.Allow("client:b").Allowed)
		assert.Equal(t, 2, store.Len())
	})

	t.Run("reset refills a key", func(t *testing.T) {
		store, _ := newTestStore(1)
		store.Allow("k")
		store.Reset("k")
		assert.True(t, store.Allow("k").Allowed)
	})
}

func TestStoreConcurrentAdmissions(t *testing.T) {
	store, _ := newTestStore(25)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if store.Allow("k").Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 25, allowed)
	assert.Equal(t, 1, store.Len())
}

// =============================================================================
// Middleware
// =============================================================================

func serve(t *testing.T, h http.Handler, clientID, ip string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/validation/cases", strings.NewReader("{}"))
	ctx := requestcontext.WithClientMetadata(req.Context(), ip, "test")
	if clientID != "" {
		ctx = requestcontext.WithClientID(ctx, clientID)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(ctx))
	return rec
}

func TestMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("rejects a client over its budget", func(t *testing.T) {
		clock := newFakeClock()
		reg := prometheus.NewRegistry()
		limiter := New(
			WithLimit(2, 2*time.Second),
			WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
			WithRegisterer(reg),
			withClock(clock.Now),
		)
		h := limiter.Middleware(ok)

		for i := range 2 {
			rec := serve(t, h, "tfl-spi", "10.0.0.1")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
			assert.Equal(t, []string{"1", "0"}[i], rec.Header().Get("X-RateLimit-Remaining"))
		}

		rec := serve(t, h, "tfl-spi", "10.0.0.1")
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.JSONEq(t, `{"error": "rate_limit_exceeded", "error_description": "too many requests for this client, retry later"}`, rec.Body.String())
		assert.Equal(t, "1", rec.Header().Get("Retry-After"))
		assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
		assert.Equal(t, 1.0, testutil.ToFloat64(limiter.rejected.WithLabelValues("tfl-spi")))

		rec = serve(t, h, "cps-cms", "10.0.0.1")
		assert.Equal(t, http.StatusOK, rec.Code, "another client on the same address has its own budget")
	})

	t.Run("anonymous requests are keyed by address", func(t *testing.T) {
		h := New(WithLimit(1, time.Minute), withClock(newFakeClock().Now)).Middleware(ok)

		assert.Equal(t, http.StatusOK, serve(t, h, "", "10.0.0.1").Code)
		assert.Equal(t, http.StatusTooManyRequests, serve(t, h, "", "10.0.0.1").Code)
		assert.Equal(t, http.StatusOK, serve(t, h, "", "10.0.0.2").Code)
	})

	t.Run("non-positive settings keep the defaults", func(t *testing.T) {
		l := New(WithLimit(0, -time.Second))
		assert.Equal(t, defaultLimit, l.limit)
		assert.Equal(t, defaultWindow, l.window)
	})
}

func TestRetryAfterRoundsUp(t *testing.T) {
	assert.Equal(t, 1, retryAfterSeconds(0))
	assert.Equal(t, 1, retryAfterSeconds(200*time.Millisecond))
	assert.Equal(t, 2, retryAfterSeconds(1100*time.Millisecond))
}
