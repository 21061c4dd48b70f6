package config

import (
	"testing"
	"time"

	"phonenumber_service/platform/phone"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PHONE_DEFAULT_REGION", "")
	t.Setenv("REDIS_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.GetPhoneDefaultRegion() != phone.UnknownRegion {
		t.Fatalf("expected region %s, got %q", phone.UnknownRegion, cfg.GetPhoneDefaultRegion())
	}
	if cfg.GetPhoneOutputFormat() != phone.E164 {
		t.Fatalf("expected e164, got %v", cfg.GetPhoneOutputFormat())
	}
	if cfg.IsCacheEnabled() {
		t.Fatalf("expected cache disabled without REDIS_URL")
	}
	if cfg.GetNormalizeCacheTTL() != 24*time.Hour {
		t.Fatalf("expected 24h ttl, got %v", cfg.GetNormalizeCacheTTL())
	}
}

func TestLoadPhoneSettings(t *testing.T) {
	t.Setenv("PHONE_DEFAULT_REGION", " gb ")
	t.Setenv("PHONE_OUTPUT_FORMAT", "International")
	t.Setenv("CORS_ORIGINS", "https://a.example, *")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.GetPhoneDefaultRegion() != "GB" {
		t.Fatalf("expected GB, got %q", cfg.GetPhoneDefaultRegion())
	}
	if cfg.GetPhoneOutputFormat() != phone.International {
		t.Fatalf("expected international, got %v", cfg.GetPhoneOutputFormat())
	}
	if !cfg.GetCORSAllowAll() {
		t.Fatalf("expected wildcard origin to allow all")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string][2]string{
		"format":     {"PHONE_OUTPUT_FORMAT", "pretty"},
		"rate limit": {"RATE_LIMIT_RPS", "zero"},
		"burst":      {"RATE_LIMIT_BURST", "-1"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(env[0], env[1])
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", env[0], env[1])
			}
		})
	}

	t.Run("cache ttl", func(t *testing.T) {
		t.Setenv("REDIS_URL", "redis://localhost:6379/0")
		t.Setenv("NORMALIZE_CACHE_TTL", "soon")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unparseable ttl with cache enabled")
		}
	})
}

func TestValidateBackfill(t *testing.T) {
	cfg := &Config{BackfillTable: "contacts", BackfillColumn: "phone", BackfillBatchSize: 100}
	if err := cfg.ValidateBackfill(); err == nil {
		t.Fatalf("expected missing DATABASE_URL to fail")
	}

	cfg.DatabaseURL = "postgres://localhost/app"
	if err := cfg.ValidateBackfill(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.BackfillBatchSize = 0
	if err := cfg.ValidateBackfill(); err == nil {
		t.Fatalf("expected zero batch size to fail")
	}
}
