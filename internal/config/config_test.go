package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_NAME", "ENV", "AXIS_ENV", "PORT", "BACKEND_PORT",
		"DATABASE_DSN", "DSN", "DB_HOST", "DB_PORT", "DB_USER",
		"DB_PASSWORD", "DB_NAME", "REDIS_URL", "PRIVY_APP_ID",
		"PRIVY_APP_SECRET", "PRIVY_CLIENT_SECRET", "PRIVY_VERIFICATION_KEY",
		"ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.AppName != "axis-backend" {
		t.Fatalf("expected default app name axis-backend, got %q", cfg.AppName)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env development, got %q", cfg.Env)
	}
	if !cfg.IsDev() {
		t.Fatal("default config should be dev")
	}
	if cfg.Port != 8000 {
		t.Fatalf("expected default port 8000, got %d", cfg.Port)
	}
	if cfg.RedisURL != "redis://localhost:6379/0" {
		t.Fatalf("unexpected default redis url %q", cfg.RedisURL)
	}
	want := "axis:axis@tcp(127.0.0.1:3306)/axis?charset=utf8mb4&parseTime=True&loc=Local"
	if cfg.DSN != want {
		t.Fatalf("unexpected default DSN %q", cfg.DSN)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yml")
	data := []byte(`
env: production
port: 9000
redis_url: redis://cache:6379/1
allowed_origins:
  - https://axis.example.com
privy:
  app_id: app123
  app_secret: secret456
database:
  host: db.internal
  user: svc
  password: pw
  name: axis_prod
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Env != "production" || cfg.IsDev() {
		t.Fatalf("expected production env, got %q", cfg.Env)
	}
	if cfg.Port != 9000 {
		t.Fatalf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.Privy.AppID != "app123" || cfg.Privy.AppSecret != "secret456" {
		t.Fatalf("privy config not loaded: %+v", cfg.Privy)
	}
	if cfg.DSN != "svc:pw@tcp(db.internal:3306)/axis_prod?charset=utf8mb4&parseTime=True&loc=Local" {
		t.Fatalf("unexpected DSN %q", cfg.DSN)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "https://axis.example.com" {
		t.Fatalf("unexpected allowed origins %v", cfg.AllowedOrigins)
	}
}

func TestEnvOverridesYAML(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("PRIVY_APP_ID", "env-app")
	t.Setenv("DATABASE_DSN", "u:p@tcp(h:3306)/d")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("port: 9000\nprivy:\n  app_id: yaml-app\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Port != 8080 {
		t.Fatalf("env PORT should win, got %d", cfg.Port)
	}
	if cfg.Privy.AppID != "env-app" {
		t.Fatalf("env PRIVY_APP_ID should win, got %q", cfg.Privy.AppID)
	}
	if cfg.DSN != "u:p@tcp(h:3306)/d" {
		t.Fatalf("env DSN should win, got %q", cfg.DSN)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected allowed origins %v", cfg.AllowedOrigins)
	}
}

func TestLoadRejectsInvalidDSN(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_DSN", "this is not a dsn (")

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Fatal("expected error for malformed DSN")
	}
}
