package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	ProofFetchTimeout time.Duration
	AnalysisDelay     time.Duration
	OutboxInterval    time.Duration

	EnableNotificationConsumer bool
	EnableOutboxRelay          bool
}

func Load() (Config, error) {
	// Optional .env for local development; missing file is not an error.
	_ = godotenv.Load()

	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "chainimpact"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		ProofFetchTimeout: envDuration("PROOF_FETCH_TIMEOUT", 10*time.Second),
		AnalysisDelay:     envDuration("ANALYSIS_DELAY", 2*time.Second),
		OutboxInterval:    envDuration("OUTBOX_INTERVAL", 5*time.Second),

		EnableNotificationConsumer: envBool("ENABLE_NOTIFICATION_CONSUMER", true),
		EnableOutboxRelay:          envBool("ENABLE_OUTBOX_RELAY", true),
	}, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	if parsed, err := time.ParseDuration(raw); err == nil {
		return parsed
	}
	if seconds, err := strconv.Atoi(raw); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return fallback
}
