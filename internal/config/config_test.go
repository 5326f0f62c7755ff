// Inkwell - Publishing API Edge Caching and Rate Limiting
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-app/inkwell

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := loadFrom("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if !cfg.Cache.Enabled {
		t.Error("expected cache enabled by default")
	}
	if cfg.Cache.DefaultTTL != 5*time.Minute {
		t.Errorf("expected default TTL 5m, got %s", cfg.Cache.DefaultTTL)
	}
	if cfg.RateLimit.StaticPrefix != "/static" {
		t.Errorf("expected static prefix /static, got %q", cfg.RateLimit.StaticPrefix)
	}
	if len(cfg.RateLimit.Routes) == 0 {
		t.Fatal("expected default quota table")
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9000
cache:
  default_ttl: 30s
`)
	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000 from file, got %d", cfg.Server.Port)
	}
	if cfg.Cache.DefaultTTL != 30*time.Second {
		t.Errorf("expected TTL 30s from file, got %s", cfg.Cache.DefaultTTL)
	}
	// Untouched values keep defaults.
	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Errorf("expected default redis URL, got %q", cfg.Redis.URL)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9000
`)
	t.Setenv("INKWELL_SERVER_PORT", "9100")
	t.Setenv("INKWELL_LOGGING_LEVEL", "debug")

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("expected env port 9100, got %d", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected env log level debug, got %q", cfg.Logging.Level)
	}
}

func TestLoad_DuplicateRoutePatternRejected(t *testing.T) {
	path := writeConfigFile(t, `
ratelimit:
  routes:
    - pattern: /api/articles
      limit: 100
      window: 1m
      dimension: ip
    - pattern: /api/articles
      limit: 10
      window: 1h
      dimension: user
`)
	_, err := loadFrom(path)
	if err == nil {
		t.Fatal("expected duplicate pattern to fail validation")
	}
	if !strings.Contains(err.Error(), "duplicate pattern") {
		t.Errorf("expected duplicate pattern error, got %v", err)
	}
}

func TestValidate_RejectsBadQuota(t *testing.T) {
	tests := []struct {
		name  string
		quota RouteQuota
		want  string
	}{
		{
			name:  "bad dimension",
			quota: RouteQuota{Pattern: "/api/x", Limit: 1, Window: time.Minute, Dimension: "token"},
			want:  "Dimension",
		},
		{
			name:  "negative limit",
			quota: RouteQuota{Pattern: "/api/x", Limit: -1, Window: time.Minute, Dimension: "ip"},
			want:  "Limit",
		},
		{
			name:  "zero window",
			quota: RouteQuota{Pattern: "/api/x", Limit: 1, Window: 0, Dimension: "ip"},
			want:  "Window",
		},
		{
			name:  "pattern without slash",
			quota: RouteQuota{Pattern: "api/x", Limit: 1, Window: time.Minute, Dimension: "ip"},
			want:  "Pattern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.RateLimit.Routes = []RouteQuota{tt.quota}
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestValidate_ZeroLimitIsUnmetered(t *testing.T) {
	cfg := defaultConfig()
	cfg.RateLimit.Routes = append(cfg.RateLimit.Routes, RouteQuota{
		Pattern: "/api/tags", Limit: 0, Window: time.Minute, Dimension: "ip",
	})
	if err := cfg.Validate(); err != nil {
		t.Errorf("limit 0 should be valid (unmetered), got %v", err)
	}
}

func TestValidate_BadRedisURL(t *testing.T) {
	cfg := defaultConfig()
	cfg.Redis.URL = "http://localhost:6379"
	if err := cfg.Validate(); err == nil {
		t.Error("expected non-redis scheme to fail validation")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := map[string]string{
		"INKWELL_REDIS_URL":               "redis.url",
		"INKWELL_CACHE_DEFAULT_TTL":       "cache.default_ttl",
		"INKWELL_SERVER_SHUTDOWN_TIMEOUT": "server.shutdown_timeout",
		"INKWELL_LOGGING_LEVEL":           "logging.level",
	}
	for in, want := range tests {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}
