package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process-level configuration for the anchoring service.
type Server struct {
	Addr string

	// AnchorStore selects the anchor persistence backend: "memory" or "postgres".
	AnchorStore string
	DatabaseURL string

	Redis RedisConfig

	// KafkaBrokers enables the Kafka audit sink when non-empty.
	KafkaBrokers []string
	AuditTopic   string

	// IssuerJWTSecret verifies optional bearer tokens carrying the issuer
	// identity. Requests without a valid token fall back to placeholders.
	IssuerJWTSecret   string
	IssuerPlaceholder string
	WalletPlaceholder string
}

// RedisConfig holds connection settings for the optional Redis streak store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("HEALTHANCHOR_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	anchorStore := os.Getenv("ANCHOR_STORE")
	if anchorStore == "" {
		anchorStore = "memory"
	}

	auditTopic := os.Getenv("AUDIT_TOPIC")
	if auditTopic == "" {
		auditTopic = "healthanchor.audit"
	}

	issuerPlaceholder := os.Getenv("ISSUER_PLACEHOLDER")
	if issuerPlaceholder == "" {
		issuerPlaceholder = "issuer:unauthenticated"
	}
	walletPlaceholder := os.Getenv("WALLET_PLACEHOLDER")
	if walletPlaceholder == "" {
		walletPlaceholder = "addr_placeholder"
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	return Server{
		Addr:              addr,
		AnchorStore:       anchorStore,
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		Redis:             redisFromEnv(),
		KafkaBrokers:      brokers,
		AuditTopic:        auditTopic,
		IssuerJWTSecret:   os.Getenv("ISSUER_JWT_SECRET"),
		IssuerPlaceholder: issuerPlaceholder,
		WalletPlaceholder: walletPlaceholder,
	}
}

func redisFromEnv() RedisConfig {
	return RedisConfig{
		URL:          os.Getenv("REDIS_URL"),
		PoolSize:     envInt("REDIS_POOL_SIZE", 10),
		MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
		DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
	}
}

func envInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if v, err := time.ParseDuration(raw); err == nil {
			return v
		}
	}
	return fallback
}
