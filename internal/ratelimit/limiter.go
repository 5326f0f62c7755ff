// Inkwell - Publishing API Edge Caching and Rate Limiting
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-app/inkwell

package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/inkwell-app/inkwell/internal/store"
)

// Decision is the outcome of a rate limit check for a single request.
type Decision struct {
	// Allowed reports whether the request is admitted.
	Allowed bool

	// Limit is the configured quota for the matched route.
	Limit int

	// Remaining is the number of requests left in the sliding window,
	// floored at zero.
	Remaining int

	// Reset is the unix timestamp at which the current fixed window
	// ends and quota begins to recover.
	Reset int64
}

// Limiter evaluates sliding-window quotas against counters in the
// backing store. Counters live under one key per fixed window:
//
//	rate_limit:{identifier}:{endpoint}:{window_start}
//
// and expire after two window lengths, which keeps exactly the current
// and previous windows alive.
type Limiter struct {
	store store.Store
	now   func() time.Time
}

// New returns a Limiter using the given store.
func New(s store.Store) *Limiter {
	return &Limiter{store: s, now: time.Now}
}

// Check evaluates the quota for identifier on endpoint and, when the
// request is admitted, increments the current window's counter.
//
// On store failure Check fails open: it returns an admitting Decision
// together with the error so the caller can log the degradation.
func (l *Limiter) Check(ctx context.Context, identifier, endpoint string, limit int, window time.Duration) (Decision, error) {
	winSecs := int64(window / time.Second)
	if winSecs < 1 {
		winSecs = 1
	}
	now := l.now()
	currentStart := now.Unix() / winSecs * winSecs
	previousStart := currentStart - winSecs
	reset := currentStart + winSecs

	currentCount, err := l.windowCount(ctx, identifier, endpoint, currentStart)
	if err != nil {
		return failOpen(limit, reset), err
	}
	previousCount, err := l.windowCount(ctx, identifier, endpoint, previousStart)
	if err != nil {
		return failOpen(limit, reset), err
	}

	elapsed := float64(now.UnixNano())/float64(time.Second) - float64(currentStart)
	fraction := elapsed / float64(winSecs)
	weighted := float64(currentCount) + float64(previousCount)*(1-fraction)

	d := Decision{
		Allowed: weighted < float64(limit),
		Limit:   limit,
		Reset:   reset,
	}
	if d.Allowed {
		key := counterKey(identifier, endpoint, currentStart)
		if _, err := l.store.Incr(ctx, key); err != nil {
			return failOpen(limit, reset), err
		}
		if err := l.store.Expire(ctx, key, 2*window); err != nil {
			return d, err
		}
		weighted++
	}
	d.Remaining = limit - int(weighted)
	if d.Remaining < 0 {
		d.Remaining = 0
	}
	return d, nil
}

func (l *Limiter) windowCount(ctx context.Context, identifier, endpoint string, windowStart int64) (int64, error) {
	raw, found, err := l.store.Get(ctx, counterKey(identifier, endpoint, windowStart))
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// A mangled counter counts as empty rather than poisoning the
		// window until it expires.
		return 0, nil
	}
	return n, nil
}

func counterKey(identifier, endpoint string, windowStart int64) string {
	return fmt.Sprintf("rate_limit:%s:%s:%d", identifier, endpoint, windowStart)
}

func failOpen(limit int, reset int64) Decision {
	return Decision{Allowed: true, Limit: limit, Remaining: limit, Reset: reset}
}
