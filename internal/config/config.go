// Package config provides application configuration loading from environment.
package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // TIMEZONE must resolve on hosts without zoneinfo

	"github.com/joho/godotenv"
)

// Store backends.
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Telemetry exporters.
const (
	ExporterNone     = "none"
	ExporterStdout   = "stdout"
	ExporterOTLPHTTP = "otlp-http"
	ExporterOTLPGRPC = "otlp-grpc"
)

// MinJWTSecretLength is the shortest accepted signing secret.
const MinJWTSecretLength = 32

// Config holds all configuration for the application.
type Config struct {
	Port         string
	APIPrefix    string
	StoreBackend string
	DatabaseURL  string
	BudgetFile   string
	JWTSecret    string
	TokenTTL     time.Duration
	LogLevel     string
	LogFormat    string
	Timezone     string
	Location     *time.Location
	OTelExporter string
	ServiceName  string
}

// Load reads configuration from environment variables, after loading a .env
// file when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getenv("PORT", "5000"),
		APIPrefix:    getenv("API_PREFIX", "/api"),
		StoreBackend: strings.ToLower(getenv("STORE_BACKEND", BackendPostgres)),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		BudgetFile:   strings.TrimSpace(os.Getenv("BUDGET_FILE")),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		TokenTTL:     24 * time.Hour,
		LogLevel:     getenv("LOG_LEVEL", "info"),
		LogFormat:    getenv("LOG_FORMAT", "console"),
		Timezone:     getenv("TIMEZONE", "UTC"),
		OTelExporter: strings.ToLower(getenv("OTEL_EXPORTER", ExporterNone)),
		ServiceName:  getenv("OTEL_SERVICE_NAME", "expense-api"),
	}

	var errs []string

	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil || d <= 0 {
			errs = append(errs, fmt.Sprintf("TOKEN_TTL %q is not a positive duration", ttl))
		} else {
			cfg.TokenTTL = d
		}
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		errs = append(errs, fmt.Sprintf("TIMEZONE %q is not a known location", cfg.Timezone))
		loc = time.UTC
	}
	cfg.Location = loc

	// Validate required configuration.
	if err := cfg.validate(errs); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// validate checks that all required configuration is present. errs carries
// problems already found while parsing.
func (c *Config) validate(errs []string) error {
	if !slices.Contains([]string{BackendPostgres, BackendMemory}, c.StoreBackend) {
		errs = append(errs, fmt.Sprintf("STORE_BACKEND must be %q or %q", BackendPostgres, BackendMemory))
	}

	if c.StoreBackend == BackendPostgres && c.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required when STORE_BACKEND is postgres")
	}

	if len(c.JWTSecret) < MinJWTSecretLength {
		errs = append(errs, fmt.Sprintf("JWT_SECRET is required and must be at least %d characters", MinJWTSecretLength))
	}

	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("PORT %q is not a valid port", c.Port))
	}

	if !slices.Contains([]string{"console", "json"}, c.LogFormat) {
		errs = append(errs, "LOG_FORMAT must be console or json")
	}

	if !slices.Contains([]string{ExporterNone, ExporterStdout, ExporterOTLPHTTP, ExporterOTLPGRPC}, c.OTelExporter) {
		errs = append(errs, "OTEL_EXPORTER must be one of none, stdout, otlp-http, otlp-grpc")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return ":" + c.Port
}
