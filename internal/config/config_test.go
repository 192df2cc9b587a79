package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.App.Name != "store-rating-service" {
		t.Errorf("app name = %q", cfg.App.Name)
	}
	if cfg.Auth.LoginTokenTTLHours != 48 {
		t.Errorf("login ttl hours = %d, want 48", cfg.Auth.LoginTokenTTLHours)
	}
	if cfg.Auth.SignupTokenTTLHours != 168 {
		t.Errorf("signup ttl hours = %d, want 168", cfg.Auth.SignupTokenTTLHours)
	}
	if cfg.Auth.BcryptCost != 12 {
		t.Errorf("bcrypt cost = %d, want 12", cfg.Auth.BcryptCost)
	}
	if cfg.Redis.Addr != "" {
		t.Errorf("redis addr = %q, want empty (revocation disabled by default)", cfg.Redis.Addr)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "prod-secret")
	t.Setenv("AUTH_LOGIN_TOKEN_TTL_HOURS", "2")
	t.Setenv("REDIS_ADDR", "10.0.0.5:6379")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Auth.JWTSecret != "prod-secret" {
		t.Errorf("secret = %q", cfg.Auth.JWTSecret)
	}
	if got := cfg.Auth.LoginTokenTTL(); got != 2*time.Hour {
		t.Errorf("login ttl = %v, want 2h", got)
	}
	if cfg.Redis.Addr != "10.0.0.5:6379" {
		t.Errorf("redis addr = %q", cfg.Redis.Addr)
	}
	if got := cfg.App.RequestTimeout(); got != 5*time.Second {
		t.Errorf("request timeout = %v, want 5s", got)
	}
}

func TestInvalidIntFallsBack(t *testing.T) {
	t.Setenv("AUTH_BCRYPT_COST", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Auth.BcryptCost != 12 {
		t.Errorf("bcrypt cost = %d, want fallback 12", cfg.Auth.BcryptCost)
	}
}
