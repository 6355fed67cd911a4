package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/contacts")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PASSWORD_PEPPER", "pepper")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("MAIL_FROM", "noreply@example.com")
	t.Setenv("S3_ENDPOINT", "localhost:9000")
	t.Setenv("S3_ACCESS_KEY", "minio")
	t.Setenv("S3_SECRET_KEY", "minio123")
	t.Setenv("S3_BUCKET", "avatars")
}

func TestLoad_Success(t *testing.T) {
	setRequired(t)
	t.Setenv("ACCESS_TOKEN_TTL", "2m")
	t.Setenv("REFRESH_TOKEN_TTL", "3h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AccessTokenTTL != 2*time.Minute {
		t.Fatalf("AccessTokenTTL want 2m, got %v", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 3*time.Hour {
		t.Fatalf("RefreshTokenTTL want 3h, got %v", cfg.RefreshTokenTTL)
	}
	if cfg.HTTPAddress != ":8080" {
		t.Fatalf("HTTPAddress default, got %v", cfg.HTTPAddress)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AccessTokenTTL != 15*time.Minute {
		t.Fatalf("access ttl default, got %v", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 7*24*time.Hour {
		t.Fatalf("refresh ttl default, got %v", cfg.RefreshTokenTTL)
	}
	if cfg.ResetTokenTTL != 10*time.Minute {
		t.Fatalf("reset ttl default, got %v", cfg.ResetTokenTTL)
	}
	if cfg.RedisTimeout != 500*time.Millisecond {
		t.Fatalf("redis timeout default, got %v", cfg.RedisTimeout)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error due to missing JWT_SECRET, got nil")
	}
}
