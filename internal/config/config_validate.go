// Inkwell - Publishing API Edge Caching and Rate Limiting
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-app/inkwell

package config

import (
	"fmt"
	"strings"

	"github.com/inkwell-app/inkwell/internal/validation"
)

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateRedis(); err != nil {
		return err
	}

	if err := c.validateCache(); err != nil {
		return err
	}

	if err := c.validateRateLimit(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive, got %s", c.Server.ShutdownTimeout)
	}
	return nil
}

func (c *Config) validateRedis() error {
	if c.Redis.URL == "" {
		return fmt.Errorf("redis.url is required")
	}
	if !strings.HasPrefix(c.Redis.URL, "redis://") && !strings.HasPrefix(c.Redis.URL, "rediss://") {
		return fmt.Errorf("redis.url must use the redis:// or rediss:// scheme, got %q", c.Redis.URL)
	}
	if c.Redis.QueryTimeout <= 0 {
		return fmt.Errorf("redis.query_timeout must be positive, got %s", c.Redis.QueryTimeout)
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.DefaultTTL <= 0 {
		return fmt.Errorf("cache.default_ttl must be positive, got %s", c.Cache.DefaultTTL)
	}
	return nil
}

// validateRateLimit validates each quota entry and rejects duplicate route
// patterns. Two rules keyed to the same pattern cannot both take effect;
// rather than letting the last registration silently win, the operator has
// to resolve the conflict.
func (c *Config) validateRateLimit() error {
	if c.RateLimit.StaticPrefix != "" && !strings.HasPrefix(c.RateLimit.StaticPrefix, "/") {
		return fmt.Errorf("ratelimit.static_prefix must start with /, got %q", c.RateLimit.StaticPrefix)
	}

	seen := make(map[string]struct{}, len(c.RateLimit.Routes))
	for i, q := range c.RateLimit.Routes {
		if verr := validation.ValidateStruct(&q); verr != nil {
			return fmt.Errorf("ratelimit.routes[%d] (%s): %w", i, q.Pattern, verr)
		}
		if _, dup := seen[q.Pattern]; dup {
			return fmt.Errorf("ratelimit.routes[%d]: duplicate pattern %q", i, q.Pattern)
		}
		seen[q.Pattern] = struct{}{}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("logging.level must be a valid log level, got %q", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
