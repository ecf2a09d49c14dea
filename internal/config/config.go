// Package config provides application configuration loading from environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Telemetry exporter selection values for OTEL_EXPORTER.
const (
	TelemetryDisabled = ""
	TelemetryStdout   = "stdout"
	TelemetryOTLPGRPC = "otlp-grpc"
	TelemetryOTLPHTTP = "otlp-http"
)

// DefaultTokenTTL is how long issued session tokens stay valid.
const DefaultTokenTTL = 24 * time.Hour

// Config holds all configuration for the application.
type Config struct {
	DatabaseURL    string
	ListenAddr     string
	LogLevel       string
	JWTSecret      string
	TokenTTL       time.Duration
	TelemetryMode  string
	OTLPEndpoint   string
	SeedCategories bool
	JSONLogs       bool
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		ListenAddr:    os.Getenv("LISTEN_ADDR"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		TelemetryMode: os.Getenv("OTEL_EXPORTER"),
		OTLPEndpoint:  os.Getenv("OTEL_ENDPOINT"),
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}

	cfg.TokenTTL = DefaultTokenTTL
	if ttlStr := os.Getenv("TOKEN_TTL"); ttlStr != "" {
		if ttl, err := time.ParseDuration(ttlStr); err == nil && ttl > 0 {
			cfg.TokenTTL = ttl
		}
	}

	// Categories are seeded by default; disable for externally managed sets.
	cfg.SeedCategories = os.Getenv("SEED_CATEGORIES") != "false"
	cfg.JSONLogs = os.Getenv("JSON_LOGS") == "true"

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that all required configuration is present.
func (c *Config) validate() error {
	var errs []string

	if c.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}

	if c.JWTSecret == "" {
		errs = append(errs, "JWT_SECRET is required")
	}

	switch c.TelemetryMode {
	case TelemetryDisabled, TelemetryStdout, TelemetryOTLPGRPC, TelemetryOTLPHTTP:
	default:
		errs = append(errs, fmt.Sprintf("OTEL_EXPORTER %q is not one of stdout, otlp-grpc, otlp-http", c.TelemetryMode))
	}

	if (c.TelemetryMode == TelemetryOTLPGRPC || c.TelemetryMode == TelemetryOTLPHTTP) && c.OTLPEndpoint == "" {
		errs = append(errs, "OTEL_ENDPOINT is required when OTEL_EXPORTER is otlp-grpc or otlp-http")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
