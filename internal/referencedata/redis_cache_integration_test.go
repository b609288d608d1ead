//go:build integration

package referencedata_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"precheck/internal/referencedata"
	"precheck/internal/validation/ports"
	"precheck/pkg/testutil/containers"
)

// countingGateway counts prosecutor lookups reaching the source.
type countingGateway struct {
	ports.ReferenceDataGateway
	prosecutorCalls atomic.Int32
}

func (g *countingGateway) ProsecutorByOUCode(ctx context.Context, ouCode string) (*ports.Prosecutor, error) {
	g.prosecutorCalls.Add(1)
	return g.ReferenceDataGateway.ProsecutorByOUCode(ctx, ouCode)
}

type RedisCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisCacheSuite) TestInstancesShareEntries() {
	ctx := context.Background()
	source := &countingGateway{ReferenceDataGateway: referencedata.NewInMemoryGateway(referencedata.DefaultCatalogue())}
	first := referencedata.NewCachedGateway(source, s.redis.Client, time.Minute)
	second := referencedata.NewCachedGateway(source, s.redis.Client, time.Minute)

	p1, err := first.ProsecutorByOUCode(ctx, "GAFTL00")
	s.Require().NoError(err)
	p2, err := second.ProsecutorByOUCode(ctx, "GAFTL00")
	s.Require().NoError(err)

	s.Equal(p1, p2)
	s.Equal(int32(1), source.prosecutorCalls.Load())
}

func (s *RedisCacheSuite) TestEntriesExpire() {
	ctx := context.Background()
	source := &countingGateway{ReferenceDataGateway: referencedata.NewInMemoryGateway(referencedata.DefaultCatalogue())}
	gw := referencedata.NewCachedGateway(source, s.redis.Client, time.Second)

	_, err := gw.ProsecutorByOUCode(ctx, "ZZ00000")
	s.Require().NoError(err)

	ttl, err := s.redis.Client.TTL(ctx, "precheck:refdata:prosecutors_by_ou:ZZ00000").Result()
	s.Require().NoError(err)
	s.Positive(ttl)
	s.LessOrEqual(ttl, time.Second)
}
