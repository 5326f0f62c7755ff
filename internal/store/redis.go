// Inkwell - Publishing API Edge Caching and Rate Limiting
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-app/inkwell

package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultQueryTimeout bounds each store operation when no timeout is
// configured. Prevents indefinite hangs on slow or unresponsive Redis.
const DefaultQueryTimeout = 5 * time.Second

// redisStore implements Store on a go-redis client.
type redisStore struct {
	client       *redis.Client
	queryTimeout time.Duration
}

var _ Store = (*redisStore)(nil)

// NewRedis returns a Store backed by the given Redis client. The caller
// owns the client lifecycle.
func NewRedis(client *redis.Client, queryTimeout time.Duration) Store {
	if queryTimeout <= 0 {
		queryTimeout = DefaultQueryTimeout
	}
	return &redisStore{client: client, queryTimeout: queryTimeout}
}

func (s *redisStore) queryCtx(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, s.queryTimeout)
}

func (s *redisStore) Get(ctx context.Context, key string) (string, bool, error) {
	qctx, cancel := s.queryCtx(ctx)
	defer cancel()
	val, err := s.client.Get(qctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *redisStore) SetEx(ctx context.Context, key, value string, ttl time.Duration) error {
	qctx, cancel := s.queryCtx(ctx)
	defer cancel()
	return s.client.SetEx(qctx, key, value, ttl).Err()
}

func (s *redisStore) Scan(ctx context.Context, cursor uint64, pattern string, count int64) ([]string, uint64, error) {
	qctx, cancel := s.queryCtx(ctx)
	defer cancel()
	keys, next, err := s.client.Scan(qctx, cursor, pattern, count).Result()
	if err != nil {
		return nil, 0, err
	}
	return keys, next, nil
}

func (s *redisStore) Del(ctx context.Context, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	qctx, cancel := s.queryCtx(ctx)
	defer cancel()
	return s.client.Del(qctx, keys...).Result()
}

func (s *redisStore) Incr(ctx context.Context, key string) (int64, error) {
	qctx, cancel := s.queryCtx(ctx)
	defer cancel()
	return s.client.Incr(qctx, key).Result()
}

func (s *redisStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	qctx, cancel := s.queryCtx(ctx)
	defer cancel()
	return s.client.Expire(qctx, key, ttl).Err()
}

func (s *redisStore) Ping(ctx context.Context) error {
	qctx, cancel := s.queryCtx(ctx)
	defer cancel()
	return s.client.Ping(qctx).Err()
}

// Client owns the shared Redis handle. The handle is dialed lazily on
// first Acquire and reused process-wide; the mutex closes the race
// between two first-callers. Release tears the handle down and clears
// the reference, so a later Acquire re-dials.
type Client struct {
	url          string
	queryTimeout time.Duration

	mu    sync.Mutex
	rdb   *redis.Client
	store Store
}

// NewClient creates an unconnected Client for the given redis:// URL.
func NewClient(url string, queryTimeout time.Duration) *Client {
	return &Client{url: url, queryTimeout: queryTimeout}
}

// Acquire returns the shared Store, dialing on first call.
func (c *Client) Acquire() (Store, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.store != nil {
		return c.store, nil
	}

	opts, err := redis.ParseURL(c.url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	c.rdb = redis.NewClient(opts)
	c.store = NewRedis(c.rdb, c.queryTimeout)
	return c.store, nil
}

// Release closes the shared handle and clears the reference.
// Safe to call when nothing was acquired.
func (c *Client) Release() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.rdb == nil {
		return nil
	}
	err := c.rdb.Close()
	c.rdb = nil
	c.store = nil
	return err
}
