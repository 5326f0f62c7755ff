// Inkwell - Publishing API Edge Caching and Rate Limiting
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-app/inkwell

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/inkwell-app/inkwell/internal/cache"
	"github.com/inkwell-app/inkwell/internal/ratelimit"
	"github.com/inkwell-app/inkwell/internal/store"
)

func newTestRouter(t *testing.T) (http.Handler, *cache.Cache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	s := store.NewRedis(client, store.DefaultQueryTimeout)

	c := cache.New(s, cache.NewMonitor(), cache.Options{Enabled: true})
	table, err := ratelimit.NewTable([]ratelimit.Quota{
		{Pattern: "/api/users/login", Limit: 2, Window: time.Minute, Dimension: ratelimit.DimensionIP},
	})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	limiter := ratelimit.NewMiddleware(ratelimit.New(s), table, "/static", nil)

	router := NewRouter(NewHandler(s, c), limiter, RouterConfig{})
	return router, c
}

func TestRouter_Healthz(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Errorf("Success = false, body = %s", rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected an X-Request-ID header")
	}
}

func TestRouter_HealthzReports503WhenStoreDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	s := store.NewRedis(client, store.DefaultQueryTimeout)
	c := cache.New(s, cache.NewMonitor(), cache.Options{Enabled: true})
	table, _ := ratelimit.NewTable(nil)
	router := NewRouter(NewHandler(s, c), ratelimit.NewMiddleware(ratelimit.New(s), table, "/static", nil), RouterConfig{})

	mr.Close()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp.Error == nil || resp.Error.Code != ErrCodeServiceUnavailable {
		t.Errorf("Error = %+v, want %s", resp.Error, ErrCodeServiceUnavailable)
	}
}

func TestRouter_CacheStats(t *testing.T) {
	router, c := newTestRouter(t)

	// Drive one miss and one hit through the cache so the snapshot has
	// something to report.
	sp := cache.Spec{Key: cache.TagsAll()}
	load := func(ctx context.Context) ([]string, bool, error) {
		return []string{"go"}, true, nil
	}
	ctx := context.Background()
	if _, _, err := cache.FetchList(ctx, c, sp, nil, load); err != nil {
		t.Fatalf("warm fetch: %v", err)
	}
	if _, _, err := cache.FetchList(ctx, c, sp, nil, load); err != nil {
		t.Fatalf("hit fetch: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cache/stats", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Success bool           `json:"success"`
		Data    cache.Snapshot `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding stats body: %v", err)
	}
	if resp.Data.Hits != 1 || resp.Data.Misses != 1 || resp.Data.Total != 2 {
		t.Errorf("snapshot = %+v, want 1 hit / 1 miss", resp.Data)
	}
	if resp.Data.HitRate != "50.00%" {
		t.Errorf("hit rate = %q, want 50.00%%", resp.Data.HitRate)
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Error("expected Prometheus exposition output")
	}
}

func TestRouter_NotFoundEnvelope(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/no/such/route", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp.Error == nil || resp.Error.Code != ErrCodeNotFound {
		t.Errorf("Error = %+v, want %s", resp.Error, ErrCodeNotFound)
	}
}

func TestRouter_RateLimitEnforced(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/users/login", nil)
	req.RemoteAddr = "203.0.113.9:1234"

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = httptest.NewRecorder()
		router.ServeHTTP(last, req)
	}

	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("third login attempt: status = %d, want 429", last.Code)
	}
	if got := last.Header().Get("X-RateLimit-Remaining"); got != "0" {
		t.Errorf("X-RateLimit-Remaining = %q, want 0", got)
	}
}
