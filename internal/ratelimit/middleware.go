package ratelimit

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"precheck/pkg/platform/httputil"
	"precheck/pkg/requestcontext"
)

const (
	defaultLimit  = 600
	defaultWindow = time.Minute
)

// Limiter is HTTP middleware admitting at most limit requests per client per
// window, refilled steadily. It must run after authentication; unauthenticated
// requests are keyed by client IP.
type Limiter struct {
	store    *Store
	limit    int
	window   time.Duration
	logger   *slog.Logger
	rejected *prometheus.CounterVec
	now      func() time.Time
}

type Option func(*Limiter)

// WithLimit sets the requests admitted per window. Non-positive values are ignored.
func WithLimit(limit int, window time.Duration) Option {
	return func(l *Limiter) {
		if limit > 0 {
			l.limit = limit
		}
		if window > 0 {
			l.window = window
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(l *Limiter) {
		l.logger = logger
	}
}

// WithRegisterer registers the rejection counter with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(l *Limiter) {
		l.rejected = promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "precheck_ratelimit_rejected_total",
			Help: "Requests rejected by the per-client rate limit",
		}, []string{"client"})
	}
}

func withClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

func New(opts ...Option) *Limiter {
	l := &Limiter{
		limit:  defaultLimit,
		window: defaultWindow,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.store = NewStore(l.limit, l.window)
	if l.now != nil {
		l.store.now = l.now
	}
	return l
}

// Middleware rejects requests over the client's budget with 429.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		client := requestcontext.ClientID(ctx)
		key := "client:" + client
		if client == "" {
			key = "ip:" + requestcontext.ClientIP(ctx)
		}

		result := l.store.Allow(key)
		addHeaders(w, result)
		if result.Allowed {
			next.ServeHTTP(w, r)
			return
		}

		if l.rejected != nil {
			l.rejected.WithLabelValues(client).Inc()
		}
		l.logger.WarnContext(ctx, "rate limit exceeded",
			"client_id", client,
			"limit", result.Limit,
			"request_id", requestcontext.RequestID(ctx),
		)
		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(result.RetryAfter)))
		httputil.WriteJSON(w, http.StatusTooManyRequests, httputil.ErrorResponse{
			Error:            "rate_limit_exceeded",
			ErrorDescription: "too many requests for this client, retry later",
		})
	})
}

func addHeaders(w http.ResponseWriter, result Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}

// retryAfterSeconds rounds up so clients never retry early.
func retryAfterSeconds(d time.Duration) int {
	return max(1, int(math.Ceil(d.Seconds())))
}
