// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"phonenumber_service/platform/phone"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
}

// PhoneConfig provides the codec defaults and the constraint schema location.
type PhoneConfig interface {
	GetPhoneDefaultRegion() string
	GetPhoneOutputFormat() phone.DisplayFormat
	GetPhoneConstraintsFile() string
}

// RedisConfig provides settings for the normalize cache.
type RedisConfig interface {
	GetRedisURL() string
	GetNormalizeCacheTTL() time.Duration
	IsCacheEnabled() bool
}

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// BackfillConfig provides settings for the phone backfill command.
type BackfillConfig interface {
	DatabaseConfig
	GetBackfillTable() string
	GetBackfillColumn() string
	GetBackfillBatchSize() int
	IsBackfillDryRun() bool
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                 string
	HTTPAddr            string
	CORSAllowAll        bool
	CORSOrigins         []string
	RateLimitRPS        float64
	RateLimitBurst      int
	PhoneDefaultRegion  string
	PhoneOutputFormat   phone.DisplayFormat
	PhoneConstraintFile string
	RedisURL            string
	NormalizeCacheTTL   time.Duration
	DatabaseURL         string
	BackfillTable       string
	BackfillColumn      string
	BackfillBatchSize   int
	BackfillDryRun      bool
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetRateLimitRPS() float64 { return c.RateLimitRPS }
func (c *Config) GetRateLimitBurst() int   { return c.RateLimitBurst }

// PhoneConfig implementation
func (c *Config) GetPhoneDefaultRegion() string             { return c.PhoneDefaultRegion }
func (c *Config) GetPhoneOutputFormat() phone.DisplayFormat { return c.PhoneOutputFormat }
func (c *Config) GetPhoneConstraintsFile() string           { return c.PhoneConstraintFile }

// RedisConfig implementation
func (c *Config) GetRedisURL() string                 { return c.RedisURL }
func (c *Config) GetNormalizeCacheTTL() time.Duration { return c.NormalizeCacheTTL }
func (c *Config) IsCacheEnabled() bool                { return c.RedisURL != "" }

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// BackfillConfig implementation
func (c *Config) GetBackfillTable() string  { return c.BackfillTable }
func (c *Config) GetBackfillColumn() string { return c.BackfillColumn }
func (c *Config) GetBackfillBatchSize() int { return c.BackfillBatchSize }
func (c *Config) IsBackfillDryRun() bool    { return c.BackfillDryRun }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	outputFormat, err := phone.ParseDisplayFormat(getEnv("PHONE_OUTPUT_FORMAT", "e164"))
	if err != nil {
		return nil, fmt.Errorf("PHONE_OUTPUT_FORMAT: %w", err)
	}

	cfg := &Config{
		Env:                 getEnv("APP_ENV", "development"),
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:        corsAllowAll,
		CORSOrigins:         corsOrigins,
		RateLimitRPS:        mustFloat(getEnv("RATE_LIMIT_RPS", "20")),
		RateLimitBurst:      mustInt(getEnv("RATE_LIMIT_BURST", "40")),
		PhoneDefaultRegion:  strings.ToUpper(strings.TrimSpace(getEnv("PHONE_DEFAULT_REGION", phone.UnknownRegion))),
		PhoneOutputFormat:   outputFormat,
		PhoneConstraintFile: getEnv("PHONE_CONSTRAINTS_FILE", ""),
		RedisURL:            getEnv("REDIS_URL", ""),
		NormalizeCacheTTL:   mustDuration(getEnv("NORMALIZE_CACHE_TTL", "24h")),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		BackfillTable:       getEnv("BACKFILL_TABLE", "contacts"),
		BackfillColumn:      getEnv("BACKFILL_COLUMN", "phone"),
		BackfillBatchSize:   mustInt(getEnv("BACKFILL_BATCH_SIZE", "100")),
		BackfillDryRun:      strings.EqualFold(getEnv("BACKFILL_DRY_RUN", "false"), "true"),
	}

	if cfg.PhoneDefaultRegion == "" {
		cfg.PhoneDefaultRegion = phone.UnknownRegion
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if cfg.IsCacheEnabled() && cfg.NormalizeCacheTTL <= 0 {
		return nil, fmt.Errorf("NORMALIZE_CACHE_TTL must be a positive duration when REDIS_URL is set")
	}

	return cfg, nil
}

// ValidateBackfill checks the settings only the backfill command needs.
func (c *Config) ValidateBackfill() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.BackfillTable == "" || c.BackfillColumn == "" {
		return fmt.Errorf("BACKFILL_TABLE and BACKFILL_COLUMN are required")
	}
	if c.BackfillBatchSize < 1 {
		return fmt.Errorf("BACKFILL_BATCH_SIZE must be at least 1")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
