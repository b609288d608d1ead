package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/twmb/franz-go/pkg/kadm"

	jwttoken "precheck/internal/jwt_token"
	"precheck/internal/platform/config"
	"precheck/internal/platform/httpserver"
	"precheck/internal/platform/logger"
	platformmetrics "precheck/internal/platform/metrics"
	platformredis "precheck/internal/platform/redis"
	"precheck/internal/ratelimit"
	"precheck/internal/referencedata"
	refmetrics "precheck/internal/referencedata/metrics"
	httptransport "precheck/internal/transport/http"
	"precheck/internal/validation/chains"
	"precheck/internal/validation/handler"
	valmetrics "precheck/internal/validation/metrics"
	"precheck/internal/validation/ports"
	"precheck/internal/validation/publisher"
	"precheck/internal/validation/service"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("precheck server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	matchPolicy, err := chains.ParseMatchPolicy(cfg.Validation.MatchPolicy)
	if err != nil {
		return fmt.Errorf("VALIDATION_MATCH_POLICY: %w", err)
	}

	checks := map[string]httptransport.HealthCheck{}
	var closers []func() error
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				log.Warn("failed to release resource", "error", err)
			}
		}
	}()

	refMetrics := refmetrics.New()
	gateway, err := referenceDataGateway(ctx, cfg, log, refMetrics, checks, &closers)
	if err != nil {
		return err
	}

	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		closers = append(closers, redisClient.Close)
		checks["redis"] = redisClient.Health
		gateway = referencedata.NewCachedGateway(gateway, redisClient, cfg.ReferenceData.CacheTTL,
			referencedata.WithCacheLogger(log),
			referencedata.WithCacheMetrics(refMetrics),
			referencedata.WithCacheLoadTimeout(cfg.ReferenceData.Timeout),
		)
		log.Info("reference data cache enabled", "ttl", cfg.ReferenceData.CacheTTL.String())
	}

	valMetrics := valmetrics.New()
	pub, err := outcomePublisher(ctx, cfg.Kafka, log, valMetrics)
	if err != nil {
		return err
	}
	closers = append(closers, pub.Close)

	svc, err := service.New(gateway,
		service.WithLogger(log),
		service.WithMetrics(valMetrics),
		service.WithPublisher(pub),
		service.WithParallelism(cfg.Validation.Parallelism),
		service.WithMatchPolicy(matchPolicy),
	)
	if err != nil {
		return err
	}

	var limiter *ratelimit.Limiter
	if cfg.RateLimit.Disabled {
		log.Info("rate limiting disabled")
	} else {
		limiter = ratelimit.New(
			ratelimit.WithLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window),
			ratelimit.WithLogger(log),
			ratelimit.WithRegisterer(prometheus.DefaultRegisterer),
		)
	}

	tokens := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, jwttoken.Audience)
	router := httptransport.NewRouter(httptransport.Config{
		Routes:    handler.New(svc, log),
		Validator: jwttoken.NewMiddlewareValidator(tokens),
		Limiter:   limiter,
		Logger:    log,
		Metrics:   platformmetrics.New(),
		Checks:    checks,
	})

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting precheck", "addr", cfg.Addr, "env", cfg.Environment, "match_policy", string(matchPolicy))
	if err := httpserver.Run(ctx, srv, log); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// referenceDataGateway picks the reference data source: a remote service,
// then Postgres, then a catalogue file, then the built-in catalogue.
func referenceDataGateway(ctx context.Context, cfg config.Server, log *slog.Logger, m *refmetrics.Metrics, checks map[string]httptransport.HealthCheck, closers *[]func() error) (ports.ReferenceDataGateway, error) {
	rd := cfg.ReferenceData
	switch {
	case rd.URL != "":
		log.Info("reading reference data from service", "url", rd.URL)
		return referencedata.NewHTTPGateway(rd.URL,
			referencedata.WithHTTPClient(&http.Client{Timeout: rd.Timeout}),
			referencedata.WithBearerToken(rd.Token),
			referencedata.WithHTTPMetrics(m),
		), nil

	case cfg.Database.URL != "":
		db, err := referencedata.OpenPostgres(ctx, cfg.Database.URL,
			cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime)
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, db.Close)
		checks["postgres"] = db.PingContext

		gw := referencedata.NewPostgresGateway(db, m)
		if err := gw.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		if err := seedIfNeeded(ctx, gw, rd.File, log); err != nil {
			return nil, err
		}
		log.Info("reading reference data from postgres")
		return gw, nil

	default:
		catalogue, err := catalogue(rd.File)
		if err != nil {
			return nil, err
		}
		log.Info("reading reference data from catalogue", "file", rd.File)
		return referencedata.NewInMemoryGateway(catalogue), nil
	}
}

// seedIfNeeded loads file into the store, or the built-in catalogue when the
// store is empty and no file is given.
func seedIfNeeded(ctx context.Context, gw *referencedata.PostgresGateway, file string, log *slog.Logger) error {
	if file == "" {
		existing, err := gw.CountryNationalities(ctx)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return nil
		}
	}
	c, err := catalogue(file)
	if err != nil {
		return err
	}
	log.Info("seeding reference data store", "file", file)
	return gw.Seed(ctx, c)
}

func catalogue(file string) (*referencedata.Catalogue, error) {
	if file == "" {
		return referencedata.DefaultCatalogue(), nil
	}
	return referencedata.LoadCatalogue(file)
}

func outcomePublisher(ctx context.Context, cfg config.KafkaConfig, log *slog.Logger, m *valmetrics.Metrics) (publisher.Publisher, error) {
	if len(cfg.Brokers) == 0 {
		log.Info("no kafka brokers configured, keeping outcomes in memory")
		return publisher.NewMemory(), nil
	}

	client, err := publisher.Dial(cfg.Brokers, cfg.OutcomeTopic)
	if err != nil {
		return nil, err
	}
	err = publisher.EnsureTopic(ctx, kadm.NewClient(client), cfg.OutcomeTopic,
		int32(cfg.Partitions), int16(cfg.ReplicationFactor))
	if err != nil {
		client.Close()
		return nil, err
	}
	log.Info("publishing outcomes to kafka", "topic", cfg.OutcomeTopic, "brokers", cfg.Brokers)
	return publisher.NewKafka(client, cfg.OutcomeTopic,
		publisher.WithLogger(log),
		publisher.WithMetrics(m),
	), nil
}
