// Inkwell - Publishing API Edge Caching and Rate Limiting
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-app/inkwell

package cache

import (
	"context"
	"fmt"

	"github.com/inkwell-app/inkwell/internal/logging"
	"github.com/inkwell-app/inkwell/internal/metrics"
	"github.com/inkwell-app/inkwell/internal/store"
)

// scanBatchSize bounds each SCAN batch so invalidation never blocks the
// shared store with an unbounded KEYS listing.
const scanBatchSize = 100

// Invalidator purges cache entries by key pattern. Write paths use it
// with the patterns the corresponding read Specs declare.
type Invalidator struct {
	store store.Store
}

// NewInvalidator creates an Invalidator on the given store.
func NewInvalidator(s store.Store) *Invalidator {
	return &Invalidator{store: s}
}

// Invalidate deletes every key matching any of the patterns (trailing *
// wildcard supported) and returns the number of keys deleted. A pattern
// with no matches contributes zero and is not an error.
//
// Each pattern is walked with a cursor in bounded batches; iteration
// ends when the cursor returns to zero regardless of batch sizes.
func (inv *Invalidator) Invalidate(ctx context.Context, patterns ...string) (int, error) {
	total := 0

	for _, pattern := range patterns {
		var cursor uint64
		for {
			keys, next, err := inv.store.Scan(ctx, cursor, pattern, scanBatchSize)
			if err != nil {
				return total, fmt.Errorf("scanning pattern %q: %w", pattern, err)
			}
			if len(keys) > 0 {
				deleted, err := inv.store.Del(ctx, keys...)
				if err != nil {
					return total, fmt.Errorf("deleting matches of %q: %w", pattern, err)
				}
				total += int(deleted)
			}
			if next == 0 {
				break
			}
			cursor = next
		}
	}

	if total > 0 {
		logging.Ctx(ctx).Debug().Int("deleted", total).Strs("patterns", patterns).Msg("cache invalidated")
	}
	metrics.RecordCacheInvalidation(total)
	return total, nil
}

// InvalidateFor purges the patterns a read wrapper's Spec declared.
// The usual call site is a write path that just mutated the entity the
// Spec's reads serve.
func (inv *Invalidator) InvalidateFor(ctx context.Context, sp Spec) (int, error) {
	if len(sp.InvalidatePatterns) == 0 {
		return 0, nil
	}
	return inv.Invalidate(ctx, sp.InvalidatePatterns...)
}
