// Inkwell - Publishing API Edge Caching and Rate Limiting
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-app/inkwell

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"
)

// breakerSettings trips after 5 consecutive failures and probes again
// after 10 seconds half-open.
func breakerSettings(name string) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
}

// BreakerStore decorates a Store with a circuit breaker. While the
// breaker is open every operation returns ErrUnavailable immediately
// instead of waiting out a network timeout on each request, keeping
// request latency flat when Redis is down.
type BreakerStore struct {
	inner Store
	cb    *gobreaker.CircuitBreaker[any]
}

var _ Store = (*BreakerStore)(nil)

// NewBreaker wraps inner with a circuit breaker.
func NewBreaker(inner Store) *BreakerStore {
	return &BreakerStore{
		inner: inner,
		cb:    gobreaker.NewCircuitBreaker[any](breakerSettings("store")),
	}
}

// execute runs op through the breaker, translating breaker-state errors
// into ErrUnavailable.
func (b *BreakerStore) execute(op func() (any, error)) (any, error) {
	res, err := b.cb.Execute(op)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return res, err
}

type getResult struct {
	value string
	found bool
}

func (b *BreakerStore) Get(ctx context.Context, key string) (string, bool, error) {
	res, err := b.execute(func() (any, error) {
		val, found, err := b.inner.Get(ctx, key)
		return getResult{val, found}, err
	})
	if err != nil {
		return "", false, err
	}
	r := res.(getResult)
	return r.value, r.found, nil
}

func (b *BreakerStore) SetEx(ctx context.Context, key, value string, ttl time.Duration) error {
	_, err := b.execute(func() (any, error) {
		return nil, b.inner.SetEx(ctx, key, value, ttl)
	})
	return err
}

type scanResult struct {
	keys []string
	next uint64
}

func (b *BreakerStore) Scan(ctx context.Context, cursor uint64, pattern string, count int64) ([]string, uint64, error) {
	res, err := b.execute(func() (any, error) {
		keys, next, err := b.inner.Scan(ctx, cursor, pattern, count)
		return scanResult{keys, next}, err
	})
	if err != nil {
		return nil, 0, err
	}
	r := res.(scanResult)
	return r.keys, r.next, nil
}

func (b *BreakerStore) Del(ctx context.Context, keys ...string) (int64, error) {
	res, err := b.execute(func() (any, error) {
		return b.inner.Del(ctx, keys...)
	})
	if err != nil {
		return 0, err
	}
	return res.(int64), nil
}

func (b *BreakerStore) Incr(ctx context.Context, key string) (int64, error) {
	res, err := b.execute(func() (any, error) {
		return b.inner.Incr(ctx, key)
	})
	if err != nil {
		return 0, err
	}
	return res.(int64), nil
}

func (b *BreakerStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	_, err := b.execute(func() (any, error) {
		return nil, b.inner.Expire(ctx, key, ttl)
	})
	return err
}

func (b *BreakerStore) Ping(ctx context.Context) error {
	_, err := b.execute(func() (any, error) {
		return nil, b.inner.Ping(ctx)
	})
	return err
}

// State exposes the current breaker state for health reporting.
func (b *BreakerStore) State() gobreaker.State {
	return b.cb.State()
}
