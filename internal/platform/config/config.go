package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	pstrings "precheck/pkg/platform/strings"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr          string
	Environment   string
	JWTSigningKey string
	JWTIssuer     string

	Database      DatabaseConfig
	Redis         RedisConfig
	ReferenceData ReferenceDataConfig
	Kafka         KafkaConfig
	Validation    ValidationConfig
	RateLimit     RateLimitConfig
}

// DatabaseConfig configures the Postgres reference data store.
// An empty URL leaves the store disabled.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig configures the shared reference data cache.
// An empty URL leaves the cache disabled.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// ReferenceDataConfig picks where reference data is read from. URL wins over
// Database, which wins over File.
type ReferenceDataConfig struct {
	URL      string
	Token    string
	File     string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// KafkaConfig configures outcome publishing. No brokers means outcomes are
// kept in memory only.
type KafkaConfig struct {
	Brokers           []string
	OutcomeTopic      string
	Partitions        int
	ReplicationFactor int
}

// RateLimitConfig caps requests per submitting system on this instance.
type RateLimitConfig struct {
	Disabled bool
	Requests int
	Window   time.Duration
}

// ValidationConfig tunes validation passes.
type ValidationConfig struct {
	Parallelism int
	MatchPolicy string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	return Server{
		Addr:          envString("PRECHECK_ADDR", ":8080"),
		Environment:   envString("PRECHECK_ENV", "local"),
		JWTSigningKey: jwtSigningKey,
		JWTIssuer:     envString("JWT_ISSUER", "precheck"),
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    envInt("DATABASE_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    envInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: envDuration("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		ReferenceData: ReferenceDataConfig{
			URL:      os.Getenv("REFERENCE_DATA_URL"),
			Token:    os.Getenv("REFERENCE_DATA_TOKEN"),
			File:     os.Getenv("REFERENCE_DATA_FILE"),
			Timeout:  envDuration("REFERENCE_DATA_TIMEOUT", 5*time.Second),
			CacheTTL: envDuration("REFERENCE_DATA_CACHE_TTL", 10*time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers:           pstrings.SplitList(os.Getenv("KAFKA_BROKERS"), ","),
			OutcomeTopic:      envString("OUTCOME_TOPIC", "precheck.validation-outcomes"),
			Partitions:        envInt("OUTCOME_TOPIC_PARTITIONS", 6),
			ReplicationFactor: envInt("OUTCOME_TOPIC_REPLICATION", 1),
		},
		Validation: ValidationConfig{
			Parallelism: envInt("VALIDATION_PARALLELISM", 4),
			MatchPolicy: os.Getenv("VALIDATION_MATCH_POLICY"),
		},
		RateLimit: RateLimitConfig{
			Disabled: envBool("RATE_LIMIT_DISABLED"),
			Requests: envInt("RATE_LIMIT_REQUESTS", 600),
			Window:   envDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
	}
}

func envString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return b
}

// envInt returns fallback when the variable is unset, malformed or not positive.
func envInt(key string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// envDuration returns fallback when the variable is unset, malformed or not positive.
func envDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
