// AngelaMos | 2026
// config_test.go

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file::memory:")
	t.Setenv("JWT_SECRET", "dev-secret")
	t.Setenv("AUTH_PROTECT_MANAGEMENT", "true")
	t.Setenv("CATALOG_CACHE_TTL", "45s")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Database.Driver != "sqlite" || cfg.Database.URL != "file::memory:" {
		t.Fatalf("database = %+v", cfg.Database)
	}
	if !cfg.Auth.ProtectManagement {
		t.Fatalf("protect_management not read from env")
	}
	if cfg.Catalog.CacheTTL != 45*time.Second {
		t.Fatalf("cache ttl = %v", cfg.Catalog.CacheTTL)
	}
	if cfg.JWT.AccessTokenExpire != 30*time.Minute {
		t.Fatalf("token ttl = %v", cfg.JWT.AccessTokenExpire)
	}
	if cfg.Cookie.Name != "access_token" || cfg.Cookie.SameSite != "lax" {
		t.Fatalf("cookie = %+v", cfg.Cookie)
	}
	if cfg.Redis.Enabled() {
		t.Fatalf("redis enabled without a url")
	}
	if !cfg.IsDevelopment() || cfg.IsProduction() {
		t.Fatalf("environment = %q", cfg.App.Environment)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: sqlite
  url: "file:from-file.db"
jwt:
  secret: from-file
  access_token_expire: 10m
cookie:
  same_site: strict
server:
  port: 9090
`)
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.JWT.Secret != "from-env" {
		t.Fatalf("env should override file, got %q", cfg.JWT.Secret)
	}
	if cfg.JWT.AccessTokenExpire != 10*time.Minute {
		t.Fatalf("token ttl = %v", cfg.JWT.AccessTokenExpire)
	}
	if cfg.Cookie.SameSite != "strict" {
		t.Fatalf("same_site = %q", cfg.Cookie.SameSite)
	}
	if got := cfg.Server.Address(); got != "0.0.0.0:9090" {
		t.Fatalf("address = %q", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			App:      AppConfig{Environment: "development"},
			Server:   ServerConfig{ReadTimeout: time.Second, WriteTimeout: time.Second},
			Database: DatabaseConfig{Driver: "sqlite", URL: "file::memory:"},
			JWT:      JWTConfig{Secret: "s", AccessTokenExpire: time.Minute},
			Cookie:   CookieConfig{Name: "access_token", SameSite: "lax"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, "unsupported database driver"},
		{"missing url", func(c *Config) { c.Database.URL = "" }, "DATABASE_URL"},
		{"missing secret", func(c *Config) { c.JWT.Secret = "" }, "JWT_SECRET"},
		{"zero ttl", func(c *Config) { c.JWT.AccessTokenExpire = 0 }, "access_token_expire"},
		{"bad same site", func(c *Config) { c.Cookie.SameSite = "sometimes" }, "same_site"},
		{"cors wildcard", func(c *Config) {
			c.CORS.AllowCredentials = true
			c.CORS.AllowedOrigins = []string{"*"}
		}, "CORS wildcard"},
		{"short production secret", func(c *Config) {
			c.App.Environment = "production"
			c.Cookie.Secure = true
		}, "at least 32 bytes"},
		{"insecure production cookie", func(c *Config) {
			c.App.Environment = "production"
			c.JWT.Secret = strings.Repeat("k", 32)
		}, "COOKIE_SECURE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want %q", err, tt.wantErr)
			}
		})
	}
}
