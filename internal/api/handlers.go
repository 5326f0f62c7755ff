// Inkwell - Publishing API Edge Caching and Rate Limiting
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-app/inkwell

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/inkwell-app/inkwell/internal/cache"
	"github.com/inkwell-app/inkwell/internal/logging"
	"github.com/inkwell-app/inkwell/internal/store"
)

// healthTimeout bounds the store ping so a hung Redis cannot stall the
// health endpoint past a load balancer's own deadline.
const healthTimeout = 2 * time.Second

// Handler implements the operational endpoints the edge service owns.
type Handler struct {
	store store.Store
	cache *cache.Cache
}

// NewHandler creates a Handler on the shared store and cache.
func NewHandler(s store.Store, c *cache.Cache) *Handler {
	return &Handler{store: s, cache: c}
}

type healthStatus struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

// Health reports liveness and pings the backing store. A failed ping
// returns 503 so orchestrators can rotate the instance while the cache
// and limiter run degraded.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Health check store ping failed")
		rw.ServiceUnavailable("store unreachable")
		return
	}
	rw.Success(healthStatus{Status: "ok", Store: "up"})
}

// CacheStats returns the cache monitor snapshot: hits, misses, total,
// and the formatted hit rate.
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.cache.Monitor().Snapshot())
}
