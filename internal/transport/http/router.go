// Package httptransport assembles the public HTTP surface: the middleware
// chain, operational endpoints and the authenticated validation routes.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"precheck/internal/platform/metrics"
	"precheck/internal/ratelimit"
	"precheck/pkg/platform/httputil"
	"precheck/pkg/platform/middleware/auth"
	"precheck/pkg/platform/middleware/metadata"
	"precheck/pkg/platform/middleware/request"
	"precheck/pkg/platform/middleware/requesttime"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck reports whether one backing dependency is usable.
type HealthCheck func(ctx context.Context) error

// Routes registers endpoints on an authenticated router.
type Routes interface {
	Register(r chi.Router)
}

// Config carries everything NewRouter wires together. Validator and Routes
// are required. A nil Limiter disables rate limiting.
type Config struct {
	Routes    Routes
	Validator auth.JWTValidator
	Limiter   *ratelimit.Limiter
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Gatherer  prometheus.Gatherer
	Checks    map[string]HealthCheck
}

// NewRouter wires the public endpoints. /health and /metrics are open;
// everything under /v1 requires a bearer token and is rate limited per client.
func NewRouter(cfg Config) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}
	r.Use(chimw.Recoverer)

	r.Get("/health", healthHandler(cfg.Checks, logger))
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(cfg.Validator, logger))
		if cfg.Limiter != nil {
			r.Use(cfg.Limiter.Middleware)
		}
		cfg.Routes.Register(r)
	})
	return r
}

// HealthResponse lists each dependency as "ok" or its failure.
type HealthResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

func healthHandler(checks map[string]HealthCheck, logger *slog.Logger) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		resp := HealthResponse{Status: "ok"}
		status := http.StatusOK
		for _, name := range names {
			if resp.Dependencies == nil {
				resp.Dependencies = make(map[string]string, len(names))
			}
			if err := checks[name](ctx); err != nil {
				logger.WarnContext(ctx, "health check failed", "dependency", name, "error", err)
				resp.Dependencies[name] = err.Error()
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Dependencies[name] = "ok"
		}
		httputil.WriteJSON(w, status, resp)
	}
}
