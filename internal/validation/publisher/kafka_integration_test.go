//go:build integration

package publisher_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"

	"precheck/internal/validation/publisher"
	"precheck/pkg/testutil/containers"
)

const outcomeTopic = "precheck.validation-outcomes.test"

type KafkaPublisherSuite struct {
	suite.Suite
	redpanda *containers.RedpandaContainer
}

func TestKafkaPublisherSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(KafkaPublisherSuite))
}

func (s *KafkaPublisherSuite) SetupSuite() {
	s.redpanda = containers.GetManager().GetRedpanda(s.T())

	client, err := kgo.NewClient(kgo.SeedBrokers(s.redpanda.Broker))
	s.Require().NoError(err)
	defer client.Close()

	admin := kadm.NewClient(client)
	ctx := context.Background()
	s.Require().NoError(publisher.EnsureTopic(ctx, admin, outcomeTopic, 1, 1))
	s.Require().NoError(publisher.EnsureTopic(ctx, admin, outcomeTopic, 1, 1), "existing topic is not an error")
}

func (s *KafkaPublisherSuite) TestPublishedOutcomeIsConsumable() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	producer, err := publisher.Dial([]string{s.redpanda.Broker}, outcomeTopic)
	s.Require().NoError(err)
	pub := publisher.NewKafka(producer, outcomeTopic)
	defer pub.Close()

	outcome := publisher.Outcome{
		Kind:        "case",
		SubjectHash: publisher.HashSubject("TFL12345678"),
		Valid:       false,
		Codes:       []string{"CASE_URN_INVALID"},
		EvaluatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	s.Require().NoError(pub.Publish(ctx, outcome))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.redpanda.Broker),
		kgo.ConsumeTopics(outcomeTopic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	s.Require().Empty(fetches.Errors())
	records := fetches.Records()
	s.Require().NotEmpty(records)

	var got publisher.Outcome
	s.Require().NoError(json.Unmarshal(records[0].Value, &got))
	s.Equal(outcome, got)
	s.Equal(outcome.SubjectHash, string(records[0].Key))
}
