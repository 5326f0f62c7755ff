// Inkwell - Publishing API Edge Caching and Rate Limiting
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-app/inkwell

/*
Package store provides the shared key-value store client for the cache
layer and the rate limiter.

The Store interface is deliberately narrow: GET, SETEX, SCAN, DEL, INCR,
EXPIRE and PING are the only operations either subsystem needs. The
production implementation runs on go-redis with a per-operation timeout.

Client owns the shared connection handle: it dials lazily on first
Acquire (guarded by a mutex, so concurrent first-callers get one handle)
and Release tears it down. Wiring goes through dependency injection —
there is no package-level singleton.

NewBreaker adds a circuit breaker in front of any Store. Both consumers
treat store failures as soft (the cache calls through, the limiter fails
open), so once Redis is down the breaker's fast ErrUnavailable beats
paying a dial timeout on every request.
*/
package store
