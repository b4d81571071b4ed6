package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process-wide configuration. It is loaded once in main and
// injected into constructors; business logic never reads the environment.
type Server struct {
	Addr string

	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string

	DatabaseURL string

	Redis RedisConfig

	KafkaBrokers    []string
	KafkaAuditTopic string

	// ProvisionPolicy selects how the identity gateway treats unknown
	// subjects: "strict" or "auto". Resolved once at startup.
	ProvisionPolicy string
}

// RedisConfig holds connection settings for the optional subject cache.
// An empty URL disables Redis entirely.
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
	addr := os.Getenv("FERIA_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	policy := os.Getenv("PROVISION_POLICY")
	if policy == "" {
		policy = "strict"
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}
	auditTopic := os.Getenv("KAFKA_AUDIT_TOPIC")
	if auditTopic == "" {
		auditTopic = "feria.audit"
	}

	return Server{
		Addr:            addr,
		JWTSigningKey:   jwtSigningKey,
		JWTIssuer:       os.Getenv("JWT_ISSUER"),
		JWTAudience:     os.Getenv("JWT_AUDIENCE"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		Redis:           redisFromEnv(),
		KafkaBrokers:    brokers,
		KafkaAuditTopic: auditTopic,
		ProvisionPolicy: policy,
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
