package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Server captures process-level configuration. Values come from the
// environment (with optional .env support) so main stays lean.
type Server struct {
	Addr        string
	Environment string

	DatabaseURL string
	RedisURL    string

	JWTSigningKey     string
	SessionTTL        time.Duration
	AdminUsername     string
	AdminPasswordHash string

	SMTP NotifyConfig

	NotifyWorkers   int
	NotifyQueueSize int
}

// NotifyConfig holds the confirmation email transport settings.
// An empty Host disables SMTP delivery; sends are then logged only.
type NotifyConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
}

// FromEnv builds a Server config from environment variables.
// A .env file in the working directory is loaded first when present.
func FromEnv() Server {
	_ = godotenv.Load()

	cfg := Server{
		Addr:        envOr("REGISTRAR_ADDR", ":8080"),
		Environment: envOr("REGISTRAR_ENV", "development"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		JWTSigningKey:     envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		SessionTTL:        durationOr("ADMIN_SESSION_TTL", 12*time.Hour),
		AdminUsername:     envOr("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		SMTP: NotifyConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     envOr("SMTP_PORT", "587"),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("MAIL_FROM"),
			FromName: envOr("MAIL_FROM_NAME", "Workshop Team"),
		},

		NotifyWorkers:   intOr("NOTIFY_WORKERS", 2),
		NotifyQueueSize: intOr("NOTIFY_QUEUE_SIZE", 128),
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

func intOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
