// Inkwell - Publishing API Edge Caching and Rate Limiting
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-app/inkwell

package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/inkwell-app/inkwell/internal/logging"
	"github.com/inkwell-app/inkwell/internal/metrics"
	"github.com/inkwell-app/inkwell/internal/store"
)

// DefaultTTL is used when neither the Spec nor the Cache configures one.
const DefaultTTL = 5 * time.Minute

// ErrMissingParam reports a key template placeholder with no matching
// parameter. This is a programming error in the caller and fails the
// request loudly instead of caching under a wrong key.
var ErrMissingParam = errors.New("cache: missing key template parameter")

// Params holds the named parameters a key template is rendered against.
type Params map[string]any

// Spec declares how one read operation is cached: the key template, an
// optional TTL (0 means the cache default), and the invalidation
// patterns a corresponding write path must purge. The Spec itself never
// invalidates anything; it is the contract between the read wrapper and
// the write path.
type Spec struct {
	Key                string
	TTL                time.Duration
	InvalidatePatterns []string
}

// Loader produces the value on a cache miss. The bool reports whether a
// value exists; returning false caches nothing (e.g. entity not found).
type Loader[T any] func(ctx context.Context) (T, bool, error)

// Options configures a Cache.
type Options struct {
	// Enabled toggles the whole layer. When false every Fetch calls
	// through, touching neither the store nor the monitor.
	Enabled bool

	// DefaultTTL applies to Specs that declare none.
	DefaultTTL time.Duration
}

// Cache is the cache-aside layer over the shared store. Construct one
// per process and inject it; it is safe for concurrent use.
type Cache struct {
	store      store.Store
	monitor    *Monitor
	enabled    bool
	defaultTTL time.Duration
}

// New creates a Cache on the given store. A nil monitor gets replaced
// with a fresh one so callers can always read a snapshot.
func New(s store.Store, monitor *Monitor, opts Options) *Cache {
	if monitor == nil {
		monitor = NewMonitor()
	}
	ttl := opts.DefaultTTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		store:      s,
		monitor:    monitor,
		enabled:    opts.Enabled,
		defaultTTL: ttl,
	}
}

// Monitor returns the hit/miss monitor attached to this cache.
func (c *Cache) Monitor() *Monitor {
	return c.monitor
}

// RenderKey substitutes {name} placeholders in a key template with the
// matching parameter values. Every placeholder must be present in
// params; a leftover placeholder returns ErrMissingParam.
func RenderKey(template string, params Params) (string, error) {
	var b strings.Builder
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		closing := strings.IndexByte(rest[open:], '}')
		if closing < 0 {
			return "", fmt.Errorf("cache: unterminated placeholder in template %q", template)
		}
		name := rest[open+1 : open+closing]
		val, ok := params[name]
		if !ok {
			return "", fmt.Errorf("%w: %q in template %q", ErrMissingParam, name, template)
		}
		b.WriteString(rest[:open])
		fmt.Fprint(&b, val)
		rest = rest[open+closing+1:]
	}
}

// Fetch is the cache-aside wrapper. It renders the Spec's key template
// against params, checks the store, and on a miss runs load and stores
// the encoded result.
//
// Store failures degrade to call-through for this one request; they are
// logged, counted in metrics, and never surfaced to the caller. A cached
// payload that no longer decodes is treated as a miss and overwritten.
func Fetch[T any](ctx context.Context, c *Cache, sp Spec, params Params, codec Codec[T], load Loader[T]) (T, bool, error) {
	var zero T

	if c == nil || !c.enabled {
		return load(ctx)
	}

	key, err := RenderKey(sp.Key, params)
	if err != nil {
		return zero, false, err
	}

	payload, found, err := c.store.Get(ctx, key)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("cache read failed, calling through")
		metrics.RecordCacheDegraded()
		return load(ctx)
	}

	if found {
		val, derr := codec.Decode([]byte(payload))
		if derr == nil {
			c.monitor.RecordHit()
			return val, true, nil
		}
		// Stale shape from an older release. Recompute and overwrite below.
		logging.Ctx(ctx).Warn().Err(derr).Str("key", key).Msg("cached payload mismatch, recomputing")
	}

	c.monitor.RecordMiss()

	result, ok, err := load(ctx)
	if err != nil {
		return zero, false, err
	}
	if !ok {
		return zero, false, nil
	}

	data, err := codec.Encode(result)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("key", key).Msg("cache encode failed, returning uncached result")
		return result, true, nil
	}

	ttl := sp.TTL
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	if err := c.store.SetEx(ctx, key, string(data), ttl); err != nil {
		// The caller has their result; a failed write only costs the next
		// request a recompute.
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("cache write failed")
		metrics.RecordCacheDegraded()
	}

	return result, true, nil
}

// FetchList is Fetch for slice payloads with the JSON codec, the common
// case for list endpoints.
func FetchList[T any](ctx context.Context, c *Cache, sp Spec, params Params, load Loader[[]T]) ([]T, bool, error) {
	return Fetch(ctx, c, sp, params, JSONCodec[[]T](), load)
}
