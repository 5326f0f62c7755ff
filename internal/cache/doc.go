// Inkwell - Publishing API Edge Caching and Rate Limiting
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-app/inkwell

/*
Package cache implements the cache-aside layer: read operations are
wrapped, the store is checked first, and misses fall through to the real
computation whose result is then stored with a TTL.

# Cache-aside wrapping

Fetch wraps any read operation with a key template and a codec:

	spec := cache.Spec{
	    Key: "article:detail:{slug}",
	    TTL: 10 * time.Minute,
	    InvalidatePatterns: []string{"article:detail:*", "articles:list:*"},
	}

	article, found, err := cache.Fetch(ctx, c, spec, cache.Params{"slug": slug},
	    cache.JSONCodec[Article](),
	    func(ctx context.Context) (Article, bool, error) {
	        return repo.GetArticle(ctx, slug)
	    })

The codec is supplied by the caller, so the payload shape (single object
or list) is fixed at compile time. JSONCodec covers both: instantiate it
with a slice type for list-shaped operations.

A write path that mutates articles purges the patterns the read wrapper
declared:

	deleted, err := invalidator.InvalidateFor(ctx, spec)

# Failure policy

Cache entries are owned by the store; nothing in this process holds them
between calls. The layer is strictly advisory, so store failures never
fail a request:

  - store unreachable on read: the wrapped operation runs, nothing is
    cached for that request, the monitor is not touched
  - stored payload no longer decodes into the expected shape: treated as
    a miss, recomputed, and the stale entry is overwritten
  - store write failure after a successful compute: swallowed (logged),
    the caller still gets the result

A missing key-template placeholder is the one hard error: it is a
programming mistake, not an operational condition, and fails the call.

Keys must be deterministic — identical parameters always render the same
key — because invalidation-by-pattern only works when read and write
paths agree byte-for-byte. The builders in keys.go are the single source
of key shapes.
*/
package cache
