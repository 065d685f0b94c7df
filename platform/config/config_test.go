package config

import (
	"testing"
	"time"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}
}

func TestLoadDevelopmentDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/portfolio")
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.GetJWTAccessSecret() == "" || cfg.GetJWTRefreshSecret() != cfg.GetJWTAccessSecret() {
		t.Fatalf("expected development secrets to be filled, got %q/%q", cfg.GetJWTAccessSecret(), cfg.GetJWTRefreshSecret())
	}
	if cfg.GetAccessTokenTTL() != 168*time.Hour {
		t.Fatalf("expected 7 day access TTL, got %s", cfg.GetAccessTokenTTL())
	}
	if !cfg.IsDevelopment() {
		t.Fatal("expected development mode")
	}
}

func TestLoadProductionRequiresSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/portfolio")
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_ACCESS_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without JWT_ACCESS_SECRET in production")
	}
}

func TestLoadWildcardCORS(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/portfolio")
	t.Setenv("APP_ENV", "development")
	t.Setenv("CORS_ORIGINS", "https://a.example, *")
	t.Setenv("CORS_ALLOW_CREDENTIALS", "true")

	if _, err := Load(); err == nil {
		t.Fatal("expected wildcard origin with credentials to be rejected")
	}

	t.Setenv("CORS_ALLOW_CREDENTIALS", "false")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.GetCORSAllowAll() || len(cfg.GetCORSOrigins()) != 2 {
		t.Fatalf("expected allow-all with two origins, got %v %v", cfg.GetCORSAllowAll(), cfg.GetCORSOrigins())
	}
}

func TestFeatureToggles(t *testing.T) {
	cfg := &Config{SMTPHost: "smtp.example.com", MinIOEndpoint: "minio:9000", AIAPIKey: "k"}
	if !cfg.IsMinIOEnabled() || !cfg.IsAIEnabled() {
		t.Fatal("expected MinIO and AI to be enabled")
	}
	if cfg.IsSMTPEnabled() {
		t.Fatal("expected SMTP to need a sender address")
	}
	cfg.SMTPFrom = "hello@example.com"
	if !cfg.IsSMTPEnabled() {
		t.Fatal("expected SMTP to be enabled")
	}
}
