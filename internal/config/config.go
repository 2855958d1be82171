package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting, sourced from the environment with an
// optional .env file for local development.
type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	// Storage: empty DATABASE_URL selects the in-memory store, empty
	// REDIS_URL selects in-process sessions.
	DatabaseURL string
	RedisURL    string

	// Events
	KafkaBrokers []string
	EventsTopic  string

	// Sessions
	SessionTTL time.Duration

	// Moderation
	CensoredWordsFile string
}

// LoadConfig reads the environment, layering a local .env file when present
func LoadConfig() (*Config, error) {
	// A missing .env is fine, settings may come from the real environment
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisURL:          os.Getenv("REDIS_URL"),
		EventsTopic:       getEnv("EVENTS_TOPIC", "masq.events"),
		CensoredWordsFile: os.Getenv("CENSORED_WORDS_FILE"),
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, broker := range strings.Split(brokers, ",") {
			if broker = strings.TrimSpace(broker); broker != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, broker)
			}
		}
	}

	rawTTL := getEnv("SESSION_TTL", "24h")
	ttl, err := time.ParseDuration(rawTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL %q: %w", rawTTL, err)
	}
	cfg.SessionTTL = ttl

	return cfg, nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", raw)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
