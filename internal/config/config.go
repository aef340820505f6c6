package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server         ServerConfig
	Database       DatabaseConfig
	Auth           AuthConfig
	AdminBootstrap AdminBootstrapConfig
	Email          EmailConfig
	Jobs           JobsConfig
	Logging        LoggingConfig
	Environment    string
}

// AdminBootstrapConfig seeds the first admin account on startup. All three
// fields must be set for the bootstrap to run.
type AdminBootstrapConfig struct {
	Email    string
	Password string
	FullName string
}

type ServerConfig struct {
	Host    string
	Port    int
	BaseURL string
}

type DatabaseConfig struct {
	URL            string
	MaxConnections int
	MaxIdle        int
}

type AuthConfig struct {
	JWTSecret string
	JWTExpiry time.Duration
	Issuer    string

	// SeedIdentity enables a fixed admin identity for local development and
	// seeding. Refused outside development/test environments.
	SeedIdentity bool
}

type EmailConfig struct {
	Enabled      bool
	From         string
	ResendAPIKey string
}

type JobsConfig struct {
	Enabled             bool
	NotificationRetries int
	ApprovalSLA         time.Duration
	ApprovalSLAInterval time.Duration
	DeliveryWorkerCount int
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host:    getEnv("SERVER_HOST", "0.0.0.0"),
			Port:    getEnvInt("SERVER_PORT", 8080),
			BaseURL: getEnv("SERVER_BASE_URL", "http://localhost:8080"),
		},
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", ""),
			MaxConnections: getEnvInt("DATABASE_MAX_CONNECTIONS", 25),
			MaxIdle:        getEnvInt("DATABASE_MAX_IDLE_CONNECTIONS", 5),
		},
		Auth: AuthConfig{
			JWTSecret:    getEnv("JWT_SECRET", ""),
			JWTExpiry:    time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,
			Issuer:       getEnv("JWT_ISSUER", "careerbridge"),
			SeedIdentity: getEnvBool("AUTH_SEED_IDENTITY", false),
		},
		AdminBootstrap: AdminBootstrapConfig{
			Email:    getEnv("ADMIN_EMAIL", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
			FullName: getEnv("ADMIN_FULL_NAME", "Platform Admin"),
		},
		Email: EmailConfig{
			Enabled:      getEnvBool("EMAIL_ENABLED", false),
			From:         getEnv("EMAIL_FROM", "noreply@careerbridge.example"),
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		},
		Jobs: JobsConfig{
			Enabled:             getEnvBool("JOBS_ENABLED", true),
			NotificationRetries: getEnvInt("JOB_RETRY_NOTIFICATION", 5),
			ApprovalSLA:         time.Duration(getEnvInt("APPROVAL_SLA_HOURS", 48)) * time.Hour,
			ApprovalSLAInterval: time.Duration(getEnvInt("APPROVAL_SLA_CHECK_MINUTES", 60)) * time.Minute,
			DeliveryWorkerCount: getEnvInt("JOB_DELIVERY_WORKERS", 10),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Environment: getEnv("ENVIRONMENT", "development"),
	}

	if cfg.Database.URL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.Email.Enabled && cfg.Email.ResendAPIKey == "" {
		return Config{}, fmt.Errorf("RESEND_API_KEY is required when EMAIL_ENABLED=true")
	}
	if cfg.IsProduction() && cfg.Auth.SeedIdentity {
		return Config{}, fmt.Errorf("AUTH_SEED_IDENTITY cannot be enabled in production")
	}
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
