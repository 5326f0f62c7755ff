// Inkwell - Publishing API Edge Caching and Rate Limiting
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-app/inkwell

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore fails every operation, simulating an unreachable Redis.
type failingStore struct {
	err   error
	calls int
}

func (f *failingStore) Get(context.Context, string) (string, bool, error) {
	f.calls++
	return "", false, f.err
}

func (f *failingStore) SetEx(context.Context, string, string, time.Duration) error {
	f.calls++
	return f.err
}

func (f *failingStore) Scan(context.Context, uint64, string, int64) ([]string, uint64, error) {
	f.calls++
	return nil, 0, f.err
}

func (f *failingStore) Del(context.Context, ...string) (int64, error) {
	f.calls++
	return 0, f.err
}

func (f *failingStore) Incr(context.Context, string) (int64, error) {
	f.calls++
	return 0, f.err
}

func (f *failingStore) Expire(context.Context, string, time.Duration) error {
	f.calls++
	return f.err
}

func (f *failingStore) Ping(context.Context) error {
	f.calls++
	return f.err
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	inner := &failingStore{err: errors.New("connection refused")}
	b := NewBreaker(inner)
	ctx := context.Background()

	// First failures pass through to the inner store.
	for i := 0; i < 5; i++ {
		_, _, err := b.Get(ctx, "k")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnavailable, "underlying error should surface while closed")
	}
	assert.Equal(t, gobreaker.StateOpen, b.State())

	// Once open, calls short-circuit without reaching the inner store.
	callsBefore := inner.calls
	_, _, err := b.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = b.Incr(ctx, "counter")
	assert.ErrorIs(t, err, ErrUnavailable)
	err = b.SetEx(ctx, "k", "v", time.Minute)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, callsBefore, inner.calls, "open breaker must not call the store")
}

func TestBreakerPassesThroughWhenHealthy(t *testing.T) {
	_, s := newTestStore(t)
	b := NewBreaker(s)
	ctx := context.Background()

	require.NoError(t, b.SetEx(ctx, "key", "value", time.Minute))
	val, found, err := b.Get(ctx, "key")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "value", val)

	n, err := b.Incr(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.NoError(t, b.Expire(ctx, "counter", time.Minute))

	keys, cursor, err := b.Scan(ctx, 0, "*", 100)
	require.NoError(t, err)
	assert.Zero(t, cursor)
	assert.Len(t, keys, 2)

	deleted, err := b.Del(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	assert.Equal(t, gobreaker.StateClosed, b.State())
}
