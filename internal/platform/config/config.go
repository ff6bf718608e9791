package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	platformstrings "claimflow/pkg/platform/strings"
)

// Config captures everything the server needs from the environment.
type Config struct {
	Addr        string
	DatabaseURL string
	Redis       RedisConfig
	Kafka       KafkaConfig
	// SessionTTL bounds how long an unfinished journey's page state is
	// kept before the claimant has to start over.
	SessionTTL time.Duration
	// ClaimYear is the academic year awards are resolved against. Empty
	// means the year containing today.
	ClaimYear string
}

// RedisConfig holds connection settings for the journey session store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig holds the verification event stream settings. Empty
// brokers disable publishing.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	addr := os.Getenv("CLAIMFLOW_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	topic := os.Getenv("CLAIMFLOW_KAFKA_TOPIC")
	if topic == "" {
		topic = "claimflow.verification"
	}

	return Config{
		Addr:        addr,
		DatabaseURL: os.Getenv("CLAIMFLOW_DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("CLAIMFLOW_REDIS_URL"),
			PoolSize:     envInt("CLAIMFLOW_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("CLAIMFLOW_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("CLAIMFLOW_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("CLAIMFLOW_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("CLAIMFLOW_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers: envList("CLAIMFLOW_KAFKA_BROKERS"),
			Topic:   topic,
		},
		SessionTTL: envDuration("CLAIMFLOW_SESSION_TTL", 24*time.Hour),
		ClaimYear:  os.Getenv("CLAIMFLOW_CLAIM_YEAR"),
	}
}

func envInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	out := platformstrings.DedupeAndTrim(strings.Split(raw, ","))
	if len(out) == 0 {
		return nil
	}
	return out
}
