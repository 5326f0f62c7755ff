// Inkwell - Publishing API Edge Caching and Rate Limiting
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-app/inkwell

package store

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable reports that the store cannot currently serve requests,
// e.g. because the circuit breaker is open. Callers degrade rather than
// fail: the cache falls through to the wrapped operation, the rate
// limiter fails open.
var ErrUnavailable = errors.New("store unavailable")

// Store is the narrow capability interface over the shared key-value
// store. Keys are UTF-8 strings; values are JSON text or integer-as-string
// counters. All operations honor context cancellation and deadlines.
type Store interface {
	// Get returns the value for key. The bool reports whether the key
	// exists; a missing key is not an error.
	Get(ctx context.Context, key string) (string, bool, error)

	// SetEx stores value under key with the given TTL.
	SetEx(ctx context.Context, key, value string, ttl time.Duration) error

	// Scan returns one batch of keys matching pattern, starting at cursor.
	// count is a batch-size hint. The returned cursor is 0 when the
	// iteration is complete.
	Scan(ctx context.Context, cursor uint64, pattern string, count int64) ([]string, uint64, error)

	// Del deletes the given keys and returns how many existed.
	Del(ctx context.Context, keys ...string) (int64, error)

	// Incr atomically increments the integer counter at key, creating it
	// at 0 first if missing, and returns the new value.
	Incr(ctx context.Context, key string) (int64, error)

	// Expire sets the TTL on an existing key.
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// Ping checks connectivity.
	Ping(ctx context.Context) error
}
