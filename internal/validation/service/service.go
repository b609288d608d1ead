// Package service runs validation passes for case, defendant and document
// submissions and reports their outcomes.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"precheck/internal/validation"
	"precheck/internal/validation/chains"
	"precheck/internal/validation/metrics"
	"precheck/internal/validation/ports"
	"precheck/internal/validation/publisher"
	dErrors "precheck/pkg/domain-errors"
	"precheck/pkg/platform/sentinel"
	"precheck/pkg/requestcontext"
)

const (
	defaultParallelism = 4
	tracerName         = "precheck/validation"
)

// Service validates submissions against reference data. It holds no
// per-request state and is safe for concurrent use when the gateway is.
type Service struct {
	gateway     ports.ReferenceDataGateway
	publisher   publisher.Publisher
	logger      *slog.Logger
	metrics     *metrics.Metrics
	tracer      trace.Tracer
	parallelism int
	matchPolicy chains.MatchPolicy
}

// Option configures the Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithPublisher sets where outcome events go. Without one, outcomes are not emitted.
func WithPublisher(p publisher.Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithParallelism bounds how many defendants of one case are validated at once.
func WithParallelism(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.parallelism = n
		}
	}
}

// WithMatchPolicy sets the defendant matching variant used when a document
// submission does not name one.
func WithMatchPolicy(p chains.MatchPolicy) Option {
	return func(s *Service) {
		s.matchPolicy = p
	}
}

// New creates a validation service reading reference data through gateway.
func New(gateway ports.ReferenceDataGateway, opts ...Option) (*Service, error) {
	if gateway == nil {
		return nil, errors.New("reference data gateway is required")
	}
	s := &Service{
		gateway:     gateway,
		tracer:      otel.Tracer(tracerName),
		parallelism: defaultParallelism,
		matchPolicy: chains.MatchV2,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// startPass opens the span for a pass and pins the request clock, so every
// rule of the pass sees the same "today".
func (s *Service) startPass(ctx context.Context, kind validation.SubjectKind, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx = requestcontext.WithTime(ctx, requestcontext.Now(ctx))
	return s.tracer.Start(ctx, "validation."+string(kind), trace.WithAttributes(attrs...))
}

// finish records a completed pass and emits its outcome. res holds the
// problems the pass itself raised; valid is the reported outcome, which for a
// case also covers its defendants.
func (s *Service) finish(ctx context.Context, span trace.Span, kind validation.SubjectKind, start time.Time, subject, caseID string, res validation.ValidationResult, valid bool) {
	elapsed := time.Since(start)
	raised := problemCodes(res)

	span.SetAttributes(
		attribute.Bool("validation.valid", valid),
		attribute.Int("validation.problem_count", res.Len()),
	)
	s.metrics.ObservePassLatency(string(kind), elapsed)
	s.metrics.IncrementOutcome(string(kind), valid)
	s.metrics.IncrementProblems(raised)

	if s.logger != nil {
		s.logger.InfoContext(ctx, "validation pass completed",
			"kind", kind,
			"case_id", caseID,
			"valid", valid,
			"problem_count", res.Len(),
			"duration_ms", elapsed.Milliseconds(),
			"request_id", requestcontext.RequestID(ctx),
		)
	}

	s.publish(ctx, publisher.Outcome{
		Kind:        string(kind),
		SubjectHash: publisher.HashSubject(subject),
		CaseID:      caseID,
		Valid:       valid,
		Codes:       raised,
		EvaluatedAt: requestcontext.Now(ctx),
		RequestID:   requestcontext.RequestID(ctx),
	})
}

// abort records a pass stopped by a rule error and returns the error to
// hand back to the caller.
func (s *Service) abort(ctx context.Context, span trace.Span, kind validation.SubjectKind, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.metrics.IncrementPassError(string(kind))

	if s.logger != nil {
		s.logger.ErrorContext(ctx, "validation pass aborted",
			"kind", kind,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
	return classify(err)
}

func (s *Service) publish(ctx context.Context, outcome publisher.Outcome) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, outcome); err != nil && s.logger != nil {
		s.logger.DebugContext(ctx, "outcome not published",
			"kind", outcome.Kind,
			"error", err,
		)
	}
}

// classify maps a rule error to a coded error. Contract violations are
// internal faults; anything else came from the reference data gateway.
func classify(err error) error {
	var coded *dErrors.Error
	switch {
	case errors.As(err, &coded):
		return err
	case errors.Is(err, validation.ErrNilSubject), errors.Is(err, validation.ErrNilGateway):
		return dErrors.Wrap(err, dErrors.CodeInternal, "validation contract violated")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "validation cancelled")
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "reference data temporarily unavailable")
	default:
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "reference data unavailable")
	}
}

func problemCodes(res validation.ValidationResult) []string {
	if res.Valid() {
		return nil
	}
	out := make([]string, 0, res.Len())
	for _, c := range res.Codes() {
		out = append(out, string(c))
	}
	return out
}
