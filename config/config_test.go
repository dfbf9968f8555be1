package config

import (
	"reflect"
	"strings"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_Defaults(t *testing.T) {
	t.Setenv("NODE_ENV", "")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.API.BaseURL != "http://127.0.0.1:8000" {
		t.Fatalf("unexpected base URL %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 15*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.API.Timeout)
	}
	if cfg.Login.TokenPath != "access_token" || cfg.Login.UserPath != "user" {
		t.Fatalf("unexpected login paths %q %q", cfg.Login.TokenPath, cfg.Login.UserPath)
	}
	if cfg.Storage.Backend != StorageBackendFile {
		t.Fatalf("expected file backend, got %q", cfg.Storage.Backend)
	}
	if !strings.HasSuffix(cfg.Storage.FilePath, "session.json") {
		t.Fatalf("expected default session file, got %q", cfg.Storage.FilePath)
	}
	if cfg.Observability.LogFormat != LogFormatJSON || cfg.Observability.LogLevel != "info" {
		t.Fatalf("unexpected logging defaults %+v", cfg.Observability)
	}

	wantPublic := []string{"/login", "/activate", "/forgot-password", "/reset-password", "/email-sent"}
	if !reflect.DeepEqual(cfg.Auth.PublicPaths, wantPublic) {
		t.Fatalf("unexpected public paths %v", cfg.Auth.PublicPaths)
	}
}

func TestAppConfig_ParseEnv(t *testing.T) {
	t.Setenv("API_BASE_URL", " https://notes.example.com/api ")
	t.Setenv("API_TIMEOUT", "30s")
	t.Setenv("LOGIN_TOKEN_PATH", "data.token")
	t.Setenv("AUTH_LOGIN_PATH", "signin")
	t.Setenv("AUTH_PUBLIC_PATHS", "signin; /about/ ;;/about")
	t.Setenv("STORAGE_BACKEND", "Redis")
	t.Setenv("STORAGE_TTL", "12h")
	t.Setenv("REDIS_URI", "redis://cache:6379/2")
	t.Setenv("REDIS_SENTINEL_NODES", "a:26379; ;b:26379")
	t.Setenv("LOG_FORMAT", "text")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.API.BaseURL != "https://notes.example.com/api" {
		t.Fatalf("expected trimmed base URL, got %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.API.Timeout)
	}
	if cfg.Login.TokenPath != "data.token" {
		t.Fatalf("unexpected token path %q", cfg.Login.TokenPath)
	}
	if cfg.Auth.LoginPath != "/signin" {
		t.Fatalf("expected normalized login path, got %q", cfg.Auth.LoginPath)
	}
	if !reflect.DeepEqual(cfg.Auth.PublicPaths, []string{"/signin", "/about"}) {
		t.Fatalf("unexpected public paths %v", cfg.Auth.PublicPaths)
	}
	if cfg.Storage.Backend != StorageBackendRedis || cfg.Storage.TTL != 12*time.Hour {
		t.Fatalf("unexpected storage config %+v", cfg.Storage)
	}
	if cfg.Storage.Redis.URI != "redis://cache:6379/2" {
		t.Fatalf("unexpected redis uri %q", cfg.Storage.Redis.URI)
	}
	if !reflect.DeepEqual(cfg.Storage.Redis.SentinelNodes, []string{"a:26379", "b:26379"}) {
		t.Fatalf("unexpected sentinel nodes %v", cfg.Storage.Redis.SentinelNodes)
	}
	if cfg.Observability.LogFormat != LogFormatText {
		t.Fatalf("unexpected log format %q", cfg.Observability.LogFormat)
	}
}

func TestAppConfig_InvalidEnums(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "storage backend", key: "STORAGE_BACKEND", value: "s3"},
		{name: "log format", key: "LOG_FORMAT", value: "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			var cfg AppConfig
			if err := env.Parse(&cfg); err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestAppConfig_DevModeDefaults(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if !cfg.IsDev {
		t.Fatalf("expected NODE_ENV=development to enable dev mode")
	}
	if cfg.Observability.LogFormat != LogFormatText || cfg.Observability.LogLevel != "debug" {
		t.Fatalf("unexpected dev logging defaults %+v", cfg.Observability)
	}
}

func TestAPIConfig_Sanitize(t *testing.T) {
	cfg := APIConfig{Timeout: -1}
	cfg.Sanitize()
	if cfg.Timeout != defaultAPITimeout {
		t.Fatalf("expected default timeout, got %v", cfg.Timeout)
	}
	if cfg.BaseURL == "" {
		t.Fatalf("expected base URL default")
	}

	cfg = APIConfig{BaseURL: "http://x", Timeout: time.Hour}
	cfg.Sanitize()
	if cfg.Timeout != maxAPITimeout {
		t.Fatalf("expected timeout to be clamped, got %v", cfg.Timeout)
	}
}

func TestLoginConfig_Sanitize(t *testing.T) {
	cfg := LoginConfig{TokenPath: " ", RateLimit: -3, RateBurst: 0}
	cfg.Sanitize()

	if cfg.Endpoint != "/login" || cfg.TokenPath != "access_token" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if cfg.RateLimit != 0 || cfg.RateBurst != 1 {
		t.Fatalf("expected clamped rate settings, got %+v", cfg)
	}
}

func TestObservabilityConfig_Level(t *testing.T) {
	if lvl := (ObservabilityConfig{LogLevel: "warn"}).Level(); lvl.String() != "WARN" {
		t.Fatalf("expected WARN, got %v", lvl)
	}
	if lvl := (ObservabilityConfig{LogLevel: "loud"}).Level(); lvl.String() != "INFO" {
		t.Fatalf("expected INFO fallback, got %v", lvl)
	}
}
