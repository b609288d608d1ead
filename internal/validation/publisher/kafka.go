package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"precheck/internal/validation/metrics"
	"precheck/pkg/platform/circuit"
)

const defaultProduceTimeout = 2 * time.Second

// Producer is the subset of *kgo.Client the publisher needs.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// Kafka publishes outcomes as JSON records keyed by subject hash, so every
// outcome for one subject lands on the same partition.
type Kafka struct {
	producer Producer
	topic    string
	timeout  time.Duration
	breaker  *circuit.Breaker
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// Option configures the Kafka publisher.
type Option func(*Kafka)

// WithLogger sets a logger for delivery failures.
func WithLogger(logger *slog.Logger) Option {
	return func(k *Kafka) {
		k.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(k *Kafka) {
		k.metrics = m
	}
}

// WithProduceTimeout bounds each produce call.
func WithProduceTimeout(d time.Duration) Option {
	return func(k *Kafka) {
		if d > 0 {
			k.timeout = d
		}
	}
}

// WithBreaker replaces the default circuit breaker.
func WithBreaker(b *circuit.Breaker) Option {
	return func(k *Kafka) {
		k.breaker = b
	}
}

// NewKafka creates a publisher writing to topic through producer.
func NewKafka(producer Producer, topic string, opts ...Option) *Kafka {
	k := &Kafka{
		producer: producer,
		topic:    topic,
		timeout:  defaultProduceTimeout,
		breaker:  circuit.New("outcome-publisher"),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Dial connects a franz-go client for the outcome topic.
func Dial(brokers []string, topic string) (*kgo.Client, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
		kgo.RecordRetries(3),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return client, nil
}

// EnsureTopic creates topic unless it already exists.
func EnsureTopic(ctx context.Context, admin *kadm.Client, topic string, partitions int32, replication int16) error {
	resp, err := admin.CreateTopic(ctx, partitions, replication, nil, topic)
	if err == nil {
		err = resp.Err
	}
	if err != nil && !errors.Is(err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	return nil
}

// Publish writes one outcome. Failures while the circuit is open are counted
// but not logged individually.
func (k *Kafka) Publish(ctx context.Context, outcome Outcome) error {
	value, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("encode outcome: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, k.timeout)
	defer cancel()

	record := &kgo.Record{
		Topic: k.topic,
		Key:   []byte(outcome.SubjectHash),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "kind", Value: []byte(outcome.Kind)},
		},
	}
	if err := k.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		k.metrics.IncrementPublishFailure()
		wasOpen := k.breaker.IsOpen()
		_, change := k.breaker.RecordFailure()
		switch {
		case change.Opened:
			k.warn(ctx, "outcome topic unavailable, suppressing further failure logs", err)
		case !wasOpen:
			k.warn(ctx, "outcome publish failed", err)
		}
		return fmt.Errorf("produce outcome: %w", err)
	}

	if _, change := k.breaker.RecordSuccess(); change.Closed && k.logger != nil {
		k.logger.InfoContext(ctx, "outcome topic recovered", "topic", k.topic)
	}
	return nil
}

func (k *Kafka) warn(ctx context.Context, msg string, err error) {
	if k.logger != nil {
		k.logger.WarnContext(ctx, msg, "topic", k.topic, "error", err)
	}
}

// Close flushes and closes the underlying client.
func (k *Kafka) Close() error {
	k.producer.Close()
	return nil
}
