// Package ratelimit caps how many validation requests one submitting system
// may make per window. State is per process.
package ratelimit

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Result is the outcome of one admission check.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

// Store keeps one token bucket per key. A bucket holds limit tokens and
// refills at limit per window, so a client may burst its whole budget and
// then proceeds at the steady rate.
type Store struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	limit   int
	window  time.Duration
	now     func() time.Time
}

func NewStore(limit int, window time.Duration) *Store {
	return &Store{
		buckets: make(map[string]*rate.Limiter),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Allow takes one token from key's bucket when one is available.
func (s *Store) Allow(key string) Result {
	now := s.now()
	lim := s.bucket(key)

	res := Result{Limit: s.limit}
	if lim.AllowN(now, 1) {
		res.Allowed = true
	} else {
		r := lim.ReserveN(now, 1)
		res.RetryAfter = r.DelayFrom(now)
		r.CancelAt(now)
	}

	tokens := max(lim.TokensAt(now), 0)
	res.Remaining = int(math.Floor(tokens))
	res.ResetAt = now.Add(s.refill(float64(s.limit) - tokens))
	return res
}

// Reset refills key's bucket.
func (s *Store) Reset(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buckets, key)
}

// Len returns how many keys hold a bucket.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buckets)
}

func (s *Store) bucket(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	if lim, ok := s.buckets[key]; ok {
		return lim
	}
	lim := rate.NewLimiter(rate.Limit(float64(s.limit)/s.window.Seconds()), s.limit)
	s.buckets[key] = lim
	return lim
}

// refill is how long the bucket takes to regain n tokens.
func (s *Store) refill(n float64) time.Duration {
	if n <= 0 {
		return 0
	}
	return time.Duration(n / float64(s.limit) * float64(s.window))
}
