// Inkwell - Publishing API Edge Caching and Rate Limiting
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-app/inkwell

// Package ratelimit implements a sliding-window rate limiter backed by
// Redis counters, a route quota table matched against request paths,
// and HTTP middleware that enforces quotas per client identifier.
//
// The window estimate weights the previous fixed window by the portion
// of it still inside the sliding window:
//
//	weighted = current + previous * (1 - elapsed/window)
//
// The check and the increment are separate Redis commands, so a burst
// of concurrent requests can briefly exceed the configured limit. The
// limiter is a soft limit for abuse protection, not an admission
// control primitive.
//
// When Redis is unreachable the limiter fails open: requests are
// admitted and the failure is surfaced to the caller for logging.
package ratelimit
