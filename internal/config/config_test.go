package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testSecret = "this-is-a-very-long-jwt-secret-for-testing-32+"

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("AUTH_JWT_SECRET", testSecret)
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  write_timeout: "15s"
  idle_timeout: "30s"
  shutdown_timeout: "5s"

storage:
  driver: "postgres"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10
  min_conns: 2
  auto_migrate: false

auth:
  jwt_secret: "this-is-a-very-long-jwt-secret-for-testing-32+"
  jwt_issuer: "desk-test"
  token_ttl: "2h"

directory:
  seed_path: "/etc/tenantdesk/directory.yaml"

log:
  level: "debug"
  format: "text"

rate_limit:
  requests: 30
  window: "10s"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host: got %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port: got %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Server.ShutdownTimeout != 5*time.Second {
		t.Errorf("Server.ShutdownTimeout: got %v, want %v", cfg.Server.ShutdownTimeout, 5*time.Second)
	}
	if cfg.Storage.Driver != StoragePostgres {
		t.Errorf("Storage.Driver: got %q, want %q", cfg.Storage.Driver, StoragePostgres)
	}
	if cfg.Database.MaxConns != 10 || cfg.Database.MinConns != 2 {
		t.Errorf("Database conns: got %d/%d, want 10/2", cfg.Database.MaxConns, cfg.Database.MinConns)
	}
	if cfg.Database.AutoMigrate {
		t.Error("Database.AutoMigrate: got true, want false")
	}
	if cfg.Auth.JWTIssuer != "desk-test" {
		t.Errorf("Auth.JWTIssuer: got %q, want %q", cfg.Auth.JWTIssuer, "desk-test")
	}
	if cfg.Auth.TokenTTL != 2*time.Hour {
		t.Errorf("Auth.TokenTTL: got %v, want %v", cfg.Auth.TokenTTL, 2*time.Hour)
	}
	if cfg.Directory.SeedPath != "/etc/tenantdesk/directory.yaml" {
		t.Errorf("Directory.SeedPath: got %q", cfg.Directory.SeedPath)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("Log: got %q/%q, want debug/text", cfg.Log.Level, cfg.Log.Format)
	}
	if cfg.RateLimit.Requests != 30 || cfg.RateLimit.Window != 10*time.Second {
		t.Errorf("RateLimit: got %d/%v, want 30/10s", cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}
}

func TestLoad_EnvOnlyDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Chdir(t.TempDir())
	validEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage.Driver != StorageMemory {
		t.Errorf("Storage.Driver: got %q, want %q", cfg.Storage.Driver, StorageMemory)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Auth.JWTIssuer != "tenantdesk" {
		t.Errorf("Auth.JWTIssuer: got %q, want tenantdesk", cfg.Auth.JWTIssuer)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("Auth.TokenTTL: got %v, want 24h", cfg.Auth.TokenTTL)
	}
	if !cfg.RateLimit.Enabled() {
		t.Error("RateLimit should be enabled by default")
	}
	if cfg.CORS.AllowedOrigins != "*" {
		t.Errorf("CORS.AllowedOrigins: got %q, want *", cfg.CORS.AllowedOrigins)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "7000")
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port: got %d, want 7000", cfg.Server.Port)
	}
	if cfg.Storage.Driver != StorageMemory {
		t.Errorf("Storage.Driver: got %q, want memory", cfg.Storage.Driver)
	}
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))
	validEnv(t)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Chdir(t.TempDir())

	if _, err := Load(); err == nil {
		t.Fatal("expected error without jwt secret")
	}
}

func validConfig() Config {
	return Config{
		Storage:   StorageConfig{Driver: StorageMemory},
		Database:  DatabaseConfig{MaxConns: 25, MinConns: 5},
		Auth:      AuthConfig{JWTSecret: testSecret, TokenTTL: time.Hour},
		Log:       LogConfig{Level: "info", Format: "json"},
		RateLimit: RateLimitConfig{Requests: 10, Window: time.Minute},
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid memory", func(*Config) {}, ""},
		{"valid postgres", func(c *Config) {
			c.Storage.Driver = StoragePostgres
			c.Database.DSN = "postgres://localhost/db"
		}, ""},
		{"short secret", func(c *Config) { c.Auth.JWTSecret = "short" }, "jwt_secret"},
		{"zero ttl", func(c *Config) { c.Auth.TokenTTL = 0 }, "token_ttl"},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "sqlite" }, "storage.driver"},
		{"postgres without dsn", func(c *Config) { c.Storage.Driver = StoragePostgres }, "database.dsn"},
		{"min above max", func(c *Config) {
			c.Storage.Driver = StoragePostgres
			c.Database.DSN = "postgres://localhost/db"
			c.Database.MinConns = 50
		}, "min_conns"},
		{"negative rate", func(c *Config) { c.RateLimit.Requests = -1 }, "rate_limit"},
		{"rate without window", func(c *Config) { c.RateLimit.Window = 0 }, "window"},
		{"rate disabled", func(c *Config) { c.RateLimit = RateLimitConfig{} }, ""},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoad_DefaultPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "configs"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeYAML(t, filepath.Join(root, "configs"), validYAML)
	t.Chdir(root)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected %s to be read, got port %d", DefaultPath, cfg.Server.Port)
	}
}

func TestLoad_RelativeSeedPathFollowsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, strings.Replace(validYAML, "/etc/tenantdesk/directory.yaml", "seed/directory.yaml", 1))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join(dir, "seed", "directory.yaml"); cfg.Directory.SeedPath != want {
		t.Errorf("Directory.SeedPath: got %q, want %q", cfg.Directory.SeedPath, want)
	}
}

func TestLoad_SeedPathFromEnvIsNotRewritten(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("DIRECTORY_SEED_PATH", "local/directory.yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Directory.SeedPath != "local/directory.yaml" {
		t.Errorf("Directory.SeedPath: got %q, want local/directory.yaml", cfg.Directory.SeedPath)
	}
}

func TestLoad_ExampleConfig(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join("..", "..", "configs", "config.example.yaml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("example config must load: %v", err)
	}
	if cfg.Storage.Driver != StorageMemory {
		t.Errorf("Storage.Driver: got %q, want memory", cfg.Storage.Driver)
	}
	if _, err := os.Stat(cfg.Directory.SeedPath); err != nil {
		t.Errorf("example seed path %q should exist: %v", cfg.Directory.SeedPath, err)
	}
}
