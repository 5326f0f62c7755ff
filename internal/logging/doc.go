// Inkwell - Publishing API Edge Caching and Rate Limiting
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-app/inkwell

/*
Package logging provides centralized zerolog-based logging for Inkwell.

All components log through this package so that output format, level and
request correlation are configured in one place:

  - Zero-allocation structured logging
  - JSON output for production, console output for development
  - Context-aware logging with request ID propagation
  - Reconfigurable global logger (Init is safe to call multiple times)

# Quick Start

	import "github.com/inkwell-app/inkwell/internal/logging"

	// Initialize at application startup
	logging.Init(logging.Config{
	    Level:  "info",
	    Format: "json",
	})

	// Log messages
	logging.Info().Msg("Server starting")
	logging.Error().Err(err).Msg("Operation failed")

	// With context (request ID)
	logging.Ctx(ctx).Warn().Str("key", cacheKey).Msg("cache degraded")

# Best Practices

Always terminate log chains with .Msg() or .Send():

	logging.Info().Str("key", "value").Msg("message")  // Correct
	logging.Info().Str("key", "value")                 // WRONG - log not emitted

Use structured fields instead of string formatting:

	logging.Info().Str("user", u).Int("count", n).Msg("processed")  // Correct
	logging.Info().Msgf("processed %d items for %s", n, u)          // Avoid
*/
package logging
