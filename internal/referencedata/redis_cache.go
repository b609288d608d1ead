package referencedata

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"precheck/internal/referencedata/metrics"
	"precheck/internal/validation/ports"
	id "precheck/pkg/domain"
)

const (
	cacheKeyPrefix          = "precheck:refdata:"
	defaultCacheLoadTimeout = 10 * time.Second
)

// Cache is the subset of the go-redis client the cached gateway needs.
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// CachedGateway shares lookups across instances through Redis. Misses are
// cached too, so an unknown OU code is not re-fetched on every pass. Redis
// failures fall through to the wrapped gateway.
type CachedGateway struct {
	next        ports.ReferenceDataGateway
	cache       Cache
	ttl         time.Duration
	loadTimeout time.Duration
	logger      *slog.Logger
	metrics     *metrics.Metrics
	group       singleflight.Group
}

type CacheOption func(*CachedGateway)

func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(g *CachedGateway) {
		g.logger = logger
	}
}

func WithCacheMetrics(m *metrics.Metrics) CacheOption {
	return func(g *CachedGateway) {
		g.metrics = m
	}
}

// WithCacheLoadTimeout bounds a shared load of the wrapped gateway.
func WithCacheLoadTimeout(d time.Duration) CacheOption {
	return func(g *CachedGateway) {
		if d > 0 {
			g.loadTimeout = d
		}
	}
}

// NewCachedGateway wraps next with a Redis cache holding entries for ttl.
func NewCachedGateway(next ports.ReferenceDataGateway, cache Cache, ttl time.Duration, opts ...CacheOption) *CachedGateway {
	g := &CachedGateway{
		next:        next,
		cache:       cache,
		ttl:         ttl,
		loadTimeout: defaultCacheLoadTimeout,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *CachedGateway) CountryNationalities(ctx context.Context) ([]ports.CountryNationality, error) {
	return cached(ctx, g, "country_nationalities", "", g.next.CountryNationalities)
}

func (g *CachedGateway) BailStatuses(ctx context.Context) ([]ports.BailStatus, error) {
	return cached(ctx, g, "bail_statuses", "", g.next.BailStatuses)
}

func (g *CachedGateway) ObservedEthnicities(ctx context.Context) ([]ports.Ethnicity, error) {
	return cached(ctx, g, "observed_ethnicities", "", g.next.ObservedEthnicities)
}

func (g *CachedGateway) SelfDefinedEthnicities(ctx context.Context) ([]ports.Ethnicity, error) {
	return cached(ctx, g, "self_defined_ethnicities", "", g.next.SelfDefinedEthnicities)
}

func (g *CachedGateway) OffenderCodes(ctx context.Context) ([]ports.OffenderCode, error) {
	return cached(ctx, g, "offender_codes", "", g.next.OffenderCodes)
}

func (g *CachedGateway) HearingTypes(ctx context.Context) ([]ports.HearingType, error) {
	return cached(ctx, g, "hearing_types", "", g.next.HearingTypes)
}

func (g *CachedGateway) DocumentTypeAccess(ctx context.Context) ([]ports.DocumentTypeAccess, error) {
	return cached(ctx, g, "document_types", "", g.next.DocumentTypeAccess)
}

func (g *CachedGateway) OrganisationUnits(ctx context.Context, ouCode string) ([]ports.OrganisationUnit, error) {
	return cached(ctx, g, "organisation_units", normalizeOU(ouCode), func(ctx context.Context) ([]ports.OrganisationUnit, error) {
		return g.next.OrganisationUnits(ctx, ouCode)
	})
}

func (g *CachedGateway) OrganisationUnitWithCourtrooms(ctx context.Context, ouCode string) (*ports.CourtCentre, error) {
	return cached(ctx, g, "court_centres", normalizeOU(ouCode), func(ctx context.Context) (*ports.CourtCentre, error) {
		return g.next.OrganisationUnitWithCourtrooms(ctx, ouCode)
	})
}

func (g *CachedGateway) ProsecutorByOUCode(ctx context.Context, ouCode string) (*ports.Prosecutor, error) {
	return cached(ctx, g, "prosecutors_by_ou", normalizeOU(ouCode), func(ctx context.Context) (*ports.Prosecutor, error) {
		return g.next.ProsecutorByOUCode(ctx, ouCode)
	})
}

func (g *CachedGateway) ProsecutorByID(ctx context.Context, prosecutorID id.ProsecutorID) (*ports.Prosecutor, error) {
	return cached(ctx, g, "prosecutors_by_id", prosecutorID.String(), func(ctx context.Context) (*ports.Prosecutor, error) {
		return g.next.ProsecutorByID(ctx, prosecutorID)
	})
}

// cached serves category/key from Redis or loads it, collapsing concurrent
// loads of the same key. Errors from load are never cached.
func cached[T any](ctx context.Context, g *CachedGateway, category, key string, load func(context.Context) (T, error)) (T, error) {
	cacheKey := cacheKeyPrefix + category
	if key != "" {
		cacheKey += ":" + key
	}

	raw, err := g.cache.Get(ctx, cacheKey).Bytes()
	switch {
	case err == nil:
		var out T
		jsonErr := json.Unmarshal(raw, &out)
		if jsonErr == nil {
			g.metrics.RecordCacheHit(category)
			return out, nil
		}
		g.logger.WarnContext(ctx, "discarding undecodable reference data cache entry",
			"key", cacheKey,
			"error", jsonErr,
		)
	case errors.Is(err, redis.Nil):
	default:
		g.logger.WarnContext(ctx, "reference data cache read failed",
			"key", cacheKey,
			"error", err,
		)
	}
	g.metrics.RecordCacheMiss(category)

	// The shared load outlives any one caller's request; each caller stops
	// waiting on its own ctx.
	ch := g.group.DoChan(cacheKey, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), g.loadTimeout)
		defer cancel()

		loaded, err := load(loadCtx)
		if err != nil {
			return loaded, err
		}
		if payload, err := json.Marshal(loaded); err == nil {
			if err := g.cache.Set(loadCtx, cacheKey, payload, g.ttl).Err(); err != nil {
				g.logger.WarnContext(loadCtx, "reference data cache write failed",
					"key", cacheKey,
					"error", err,
				)
			}
		}
		return loaded, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}
