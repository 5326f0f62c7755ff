// Inkwell - Publishing API Edge Caching and Rate Limiting
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-app/inkwell

package config

import (
	"time"
)

// Config holds all application configuration loaded from environment
// variables and config files.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via INKWELL_* variables
//
// Example - Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	// cfg.Redis.URL, cfg.Cache.DefaultTTL, etc. are now populated
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access
// from multiple goroutines.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Redis     RedisConfig     `koanf:"redis"`
	Cache     CacheConfig     `koanf:"cache"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// StaticDir, when set, is served under the rate limiter's static
	// prefix. Empty disables the mount.
	StaticDir string `koanf:"static_dir"`

	// CORSAllowedOrigins lists origins allowed to call the API
	// cross-origin. Empty falls back to the CORS library default.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
}

// RedisConfig holds the connection settings for the shared key-value store
// backing both the response cache and the rate limiter.
type RedisConfig struct {
	// URL is a redis connection URL, e.g. redis://localhost:6379/0.
	URL string `koanf:"url"`

	// QueryTimeout bounds each individual store operation. Prevents a slow
	// Redis from stalling request handling.
	QueryTimeout time.Duration `koanf:"query_timeout"`
}

// CacheConfig holds cache-aside layer settings.
type CacheConfig struct {
	// Enabled globally toggles the cache. When false, wrapped operations
	// call through without touching the store or the monitor.
	Enabled bool `koanf:"enabled"`

	// DefaultTTL applies to cached entries whose wrapper declares no
	// explicit TTL.
	DefaultTTL time.Duration `koanf:"default_ttl"`
}

// RouteQuota is one rate-limit rule: requests to paths matching Pattern are
// limited to Limit per Window, metered along Dimension.
//
// Pattern may contain {name} placeholders matching any single path segment,
// e.g. /api/articles/{slug}/comments. Limit 0 means the route is unmetered.
type RouteQuota struct {
	Pattern   string        `koanf:"pattern" validate:"required,startswith=/"`
	Limit     int           `koanf:"limit" validate:"gte=0"`
	Window    time.Duration `koanf:"window" validate:"gt=0"`
	Dimension string        `koanf:"dimension" validate:"oneof=ip user"`
}

// RateLimitConfig holds the static per-route quota table and middleware
// settings.
type RateLimitConfig struct {
	// StaticPrefix marks a path prefix served unmetered (static assets).
	StaticPrefix string `koanf:"static_prefix"`

	// JWTSecret verifies bearer tokens when deriving user-dimension
	// identifiers. Requests without a verifiable token fall back to the
	// IP dimension; they are never exempted.
	JWTSecret string `koanf:"jwt_secret"`

	// Routes is the quota table. Patterns must be unique: registering the
	// same pattern twice is a configuration error, not a silent override.
	Routes []RouteQuota `koanf:"routes"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config struct with all default values.
// These are applied first, then overridden by config file and env vars.
// The default quota table mirrors the production API surface of the
// publishing platform this layer fronts.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:               "0.0.0.0",
			Port:               8080,
			ShutdownTimeout:    10 * time.Second,
			StaticDir:          "",
			CORSAllowedOrigins: []string{},
		},
		Redis: RedisConfig{
			URL:          "redis://localhost:6379/0",
			QueryTimeout: 5 * time.Second,
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: 5 * time.Minute,
		},
		RateLimit: RateLimitConfig{
			StaticPrefix: "/static",
			JWTSecret:    "",
			Routes: []RouteQuota{
				{Pattern: "/api/users/login", Limit: 5, Window: time.Minute, Dimension: "ip"},
				{Pattern: "/api/users", Limit: 3, Window: time.Hour, Dimension: "ip"},
				{Pattern: "/api/articles", Limit: 10, Window: time.Hour, Dimension: "user"},
				{Pattern: "/api/articles/{slug}/comments", Limit: 20, Window: time.Hour, Dimension: "user"},
				{Pattern: "/api/articles/{slug}/favorite", Limit: 30, Window: time.Minute, Dimension: "user"},
				{Pattern: "/api/articles/{slug}", Limit: 60, Window: time.Minute, Dimension: "ip"},
				{Pattern: "/api/profiles/{username}", Limit: 60, Window: time.Minute, Dimension: "ip"},
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}
