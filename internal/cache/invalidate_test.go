// Inkwell - Publishing API Edge Caching and Rate Limiting
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-app/inkwell

package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/inkwell-app/inkwell/internal/store"
)

func newTestInvalidator(t *testing.T) (*miniredis.Miniredis, store.Store, *Invalidator) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	s := store.NewRedis(client, time.Second)
	return mr, s, NewInvalidator(s)
}

func TestInvalidate_DeletesAllMatchesAcrossBatches(t *testing.T) {
	mr, s, inv := newTestInvalidator(t)
	ctx := context.Background()

	// More matching keys than one scan batch.
	const n = scanBatchSize*2 + 50
	for i := 0; i < n; i++ {
		if err := s.SetEx(ctx, fmt.Sprintf("articles:list:all:page:%d:limit:20", i), "[]", time.Minute); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.SetEx(ctx, "tags:all", `["go"]`, time.Minute); err != nil {
		t.Fatal(err)
	}

	deleted, err := inv.Invalidate(ctx, "articles:list:*")
	if err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if deleted != n {
		t.Errorf("expected %d deletions, got %d", n, deleted)
	}

	// Non-matching key survives.
	if !mr.Exists("tags:all") {
		t.Error("invalidation deleted a non-matching key")
	}
	for _, k := range mr.Keys() {
		if k != "tags:all" {
			t.Errorf("leftover matching key %q", k)
		}
	}
}

func TestInvalidate_ZeroMatchesIsNoOp(t *testing.T) {
	_, s, inv := newTestInvalidator(t)
	ctx := context.Background()

	if err := s.SetEx(ctx, "tags:all", `["go"]`, time.Minute); err != nil {
		t.Fatal(err)
	}

	deleted, err := inv.Invalidate(ctx, "comments:article:never:*")
	if err != nil {
		t.Fatalf("zero matches must not error: %v", err)
	}
	if deleted != 0 {
		t.Errorf("expected 0 deletions, got %d", deleted)
	}
}

func TestInvalidate_MultiplePatternsAccumulate(t *testing.T) {
	_, s, inv := newTestInvalidator(t)
	ctx := context.Background()

	seed := []string{
		ArticleDetail("slug-1"),
		ArticleDetailForUser("slug-1", "jake"),
		CommentsList("slug-1", 1, 20),
		CommentsList("slug-1", 2, 20),
		UserProfile("jake"),
	}
	for _, k := range seed {
		if err := s.SetEx(ctx, k, "{}", time.Minute); err != nil {
			t.Fatal(err)
		}
	}

	deleted, err := inv.Invalidate(ctx, ArticleDetailPattern("slug-1"), CommentsPattern("slug-1"))
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 4 {
		t.Errorf("expected 4 deletions across patterns, got %d", deleted)
	}
}

func TestInvalidateFor_UsesSpecPatterns(t *testing.T) {
	_, s, inv := newTestInvalidator(t)
	ctx := context.Background()

	sp := Spec{
		Key:                "article:detail:{slug}",
		InvalidatePatterns: []string{"article:detail:*", "articles:list:*"},
	}
	if err := s.SetEx(ctx, "article:detail:slug-9", "{}", time.Minute); err != nil {
		t.Fatal(err)
	}
	if err := s.SetEx(ctx, "articles:list:all:page:1:limit:20", "[]", time.Minute); err != nil {
		t.Fatal(err)
	}

	deleted, err := inv.InvalidateFor(ctx, sp)
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 2 {
		t.Errorf("expected 2 deletions, got %d", deleted)
	}

	// A spec with no declared patterns is a no-op.
	deleted, err = inv.InvalidateFor(ctx, Spec{Key: "tags:all"})
	if err != nil || deleted != 0 {
		t.Errorf("expected no-op, got deleted=%d err=%v", deleted, err)
	}
}
