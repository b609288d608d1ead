package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, k := range []string{"PRECHECK_ADDR", "KAFKA_BROKERS", "REDIS_URL", "VALIDATION_PARALLELISM", "REFERENCE_DATA_CACHE_TTL", "JWT_SIGNING_KEY", "RATE_LIMIT_DISABLED", "RATE_LIMIT_REQUESTS", "RATE_LIMIT_WINDOW"} {
			t.Setenv(k, "")
		}
		cfg := FromEnv()
		assert.Equal(t, ":8080", cfg.Addr)
		assert.Empty(t, cfg.Kafka.Brokers)
		assert.Empty(t, cfg.Redis.URL)
		assert.Equal(t, 4, cfg.Validation.Parallelism)
		assert.Equal(t, 10*time.Minute, cfg.ReferenceData.CacheTTL)
		assert.NotEmpty(t, cfg.JWTSigningKey)
		assert.False(t, cfg.RateLimit.Disabled)
		assert.Equal(t, 600, cfg.RateLimit.Requests)
		assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("PRECHECK_ADDR", ":9090")
		t.Setenv("KAFKA_BROKERS", " kafka-1:9092, kafka-2:9092,,kafka-1:9092 ")
		t.Setenv("VALIDATION_PARALLELISM", "16")
		t.Setenv("REFERENCE_DATA_CACHE_TTL", "90s")
		t.Setenv("VALIDATION_MATCH_POLICY", "pending")
		t.Setenv("RATE_LIMIT_DISABLED", "true")
		t.Setenv("RATE_LIMIT_REQUESTS", "50")
		t.Setenv("RATE_LIMIT_WINDOW", "10s")

		cfg := FromEnv()
		assert.Equal(t, ":9090", cfg.Addr)
		assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
		assert.Equal(t, 16, cfg.Validation.Parallelism)
		assert.Equal(t, 90*time.Second, cfg.ReferenceData.CacheTTL)
		assert.Equal(t, "pending", cfg.Validation.MatchPolicy)
		assert.True(t, cfg.RateLimit.Disabled)
		assert.Equal(t, 50, cfg.RateLimit.Requests)
		assert.Equal(t, 10*time.Second, cfg.RateLimit.Window)
	})

	t.Run("malformed numbers fall back", func(t *testing.T) {
		t.Setenv("VALIDATION_PARALLELISM", "many")
		t.Setenv("REDIS_DIAL_TIMEOUT", "-1s")
		cfg := FromEnv()
		assert.Equal(t, 4, cfg.Validation.Parallelism)
		assert.Equal(t, 5*time.Second, cfg.Redis.DialTimeout)
	})
}
