package httptransport_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwttoken "precheck/internal/jwt_token"
	"precheck/internal/platform/metrics"
	"precheck/internal/ratelimit"
	httptransport "precheck/internal/transport/http"
	"precheck/internal/validation/handler"
	"precheck/internal/validation/service"
	"precheck/internal/validation/validationtest"
	"precheck/pkg/platform/middleware/request"
	"precheck/pkg/testutil"
)

const signingKey = "router-test-key"

func newRouter(t *testing.T, checks map[string]httptransport.HealthCheck) (http.Handler, *jwttoken.JWTService) {
	t.Helper()
	return newLimitedRouter(t, checks, nil)
}

func newLimitedRouter(t *testing.T, checks map[string]httptransport.HealthCheck, limiter *ratelimit.Limiter) (http.Handler, *jwttoken.JWTService) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc, err := service.New(validationtest.NewFakeGateway())
	require.NoError(t, err)

	tokens := jwttoken.NewJWTService(signingKey, "precheck", jwttoken.Audience)
	reg := prometheus.NewRegistry()
	router := httptransport.NewRouter(httptransport.Config{
		Routes:    handler.New(svc, logger),
		Validator: jwttoken.NewMiddlewareValidator(tokens),
		Limiter:   limiter,
		Logger:    logger,
		Metrics:   metrics.NewWithRegistry(reg),
		Gatherer:  reg,
		Checks:    checks,
	})
	return router, tokens
}

const caseBody = `{"case": {"case_id": "6f1d7c2a-3b4e-4f5a-9c8d-1e2f3a4b5c6d", "urn": "TFL4359536", "initiation_code": "Z", "prosecutor_ou_code": "GAFTL00"}}`

// =============================================================================
// Authentication
// =============================================================================

func TestValidationRoutesRequireToken(t *testing.T) {
	router, tokens := newRouter(t, nil)

	testutil.Given(t, "no bearer token", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/v1/validation/cases", caseBody)
		rr := testutil.DoRequest(router, req)

		testutil.Then(t, "the request is unauthorized", func(t *testing.T) {
			testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
			assert.NotEmpty(t, rr.Header().Get(request.Header))
		})
	})

	testutil.Given(t, "a token signed with another key", func(t *testing.T) {
		other := jwttoken.NewJWTService("another-key", "precheck", jwttoken.Audience)
		token, err := other.GenerateClientToken("tfl-spi", "", time.Minute)
		require.NoError(t, err)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/v1/validation/cases", caseBody)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := testutil.DoRequest(router, req)

		testutil.Then(t, "the request is unauthorized", func(t *testing.T) {
			testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
		})
	})

	testutil.Given(t, "a valid token", func(t *testing.T) {
		token, err := tokens.GenerateClientToken("tfl-spi", "GAFTL00", time.Minute)
		require.NoError(t, err)

		testutil.When(t, "a case with an unknown initiation code is submitted", func(t *testing.T) {
			req := testutil.NewJSONRequest(t, http.MethodPost, "/v1/validation/cases", caseBody)
			req.Header.Set("Authorization", "Bearer "+token)
			rr := testutil.DoRequest(router, req)

			testutil.Then(t, "the problems come back with 200", func(t *testing.T) {
				require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
				resp := testutil.UnmarshalResponse[handler.CaseResponse](t, rr)
				assert.False(t, resp.Valid)
			})

			testutil.And(t, "the request id is echoed", func(t *testing.T) {
				assert.NotEmpty(t, rr.Header().Get(request.Header))
			})
		})
	})
}

func TestValidationRoutesAreRateLimitedPerClient(t *testing.T) {
	router, tokens := newLimitedRouter(t, nil, ratelimit.New(ratelimit.WithLimit(1, time.Minute)))

	submit := func(clientID string) *httptest.ResponseRecorder {
		token, err := tokens.GenerateClientToken(clientID, "GAFTL00", time.Minute)
		require.NoError(t, err)
		req := testutil.NewJSONRequest(t, http.MethodPost, "/v1/validation/cases", caseBody)
		req.Header.Set("Authorization", "Bearer "+token)
		return testutil.DoRequest(router, req)
	}

	testutil.Given(t, "a client that used its budget", func(t *testing.T) {
		require.Equal(t, http.StatusOK, submit("tfl-spi").Code)

		testutil.When(t, "it submits again", func(t *testing.T) {
			rr := submit("tfl-spi")

			testutil.Then(t, "the request is rejected", func(t *testing.T) {
				testutil.AssertStatusAndError(t, rr, http.StatusTooManyRequests, "rate_limit_exceeded")
				assert.NotEmpty(t, rr.Header().Get("Retry-After"))
			})
		})

		testutil.When(t, "another client submits", func(t *testing.T) {
			testutil.Then(t, "it is served", func(t *testing.T) {
				assert.Equal(t, http.StatusOK, submit("cps-cms").Code)
			})
		})
	})

	testutil.Given(t, "the operational endpoints", func(t *testing.T) {
		testutil.Then(t, "they are not limited", func(t *testing.T) {
			for range 3 {
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
				assert.Equal(t, http.StatusOK, rec.Code)
			}
		})
	})
}

// =============================================================================
// Operational endpoints
// =============================================================================

func TestHealth(t *testing.T) {
	t.Run("no dependencies", func(t *testing.T) {
		router, _ := newRouter(t, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
	})

	t.Run("failing dependency degrades the service", func(t *testing.T) {
		router, _ := newRouter(t, map[string]httptransport.HealthCheck{
			"postgres": func(context.Context) error { return nil },
			"redis":    func(context.Context) error { return errors.New("connection refused") },
		})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var resp httptransport.HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "degraded", resp.Status)
		assert.Equal(t, "ok", resp.Dependencies["postgres"])
		assert.Equal(t, "connection refused", resp.Dependencies["redis"])
	})
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `precheck_http_request_duration_seconds_count{method="GET",route="/health",status="200"} 1`)
}
