// Package config builds runtime configuration from the environment so main
// stays lean. Unset values fall back to development defaults; production
// deployments override everything.
package config

import (
	"os"
	"strings"
	"time"
)

// Server captures the full service configuration.
type Server struct {
	Addr string

	// AuthorityURL is the base URL of the extphone classification authority.
	// Empty means no authority is configured and every emergency query
	// resolves to the safe negative.
	AuthorityURL     string
	AuthorityTimeout time.Duration

	// AllowListPath locates the packaged component allow-list.
	AllowListPath string

	JWTSigningKey string

	Redis    RedisConfig
	Postgres PostgresConfig
	Kafka    KafkaConfig
}

// RedisConfig holds the registry cache settings.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig holds the durable registry settings.
type PostgresConfig struct {
	DSN string
}

// KafkaConfig holds the audit sink settings. Empty brokers disable the sink.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	cfg := Server{
		Addr:             envOr("CALLGATE_ADDR", ":8080"),
		AuthorityURL:     os.Getenv("CALLGATE_AUTHORITY_URL"),
		AuthorityTimeout: durationOr("CALLGATE_AUTHORITY_TIMEOUT", 2*time.Second),
		AllowListPath:    envOr("CALLGATE_ALLOWLIST_PATH", "config/components.yaml"),
		JWTSigningKey:    envOr("CALLGATE_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		Redis: RedisConfig{
			URL:          os.Getenv("CALLGATE_REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Postgres: PostgresConfig{
			DSN: os.Getenv("CALLGATE_POSTGRES_DSN"),
		},
		Kafka: KafkaConfig{
			Topic: envOr("CALLGATE_KAFKA_TOPIC", "callgate.audit"),
		},
	}
	if brokers := os.Getenv("CALLGATE_KAFKA_BROKERS"); brokers != "" {
		cfg.Kafka.Brokers = strings.Split(brokers, ",")
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
