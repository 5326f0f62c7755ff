// Inkwell - Publishing API Edge Caching and Rate Limiting
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-app/inkwell

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - Cache efficiency (hits, misses, invalidation)
// - Rate limiter decisions
// - API endpoint latency and throughput

var (
	// Cache Metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
	)

	CacheInvalidatedKeys = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_invalidated_keys_total",
			Help: "Total number of cache keys deleted by pattern invalidation",
		},
	)

	CacheDegradedOps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_degraded_operations_total",
			Help: "Total number of cache operations degraded to call-through because the store was unavailable",
		},
	)

	// Rate Limiter Metrics
	RateLimitDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_decisions_total",
			Help: "Total number of rate limit decisions",
		},
		[]string{"endpoint", "outcome"}, // outcome: "allowed", "rejected", "failopen"
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)
)

// RecordCacheHit increments the cache hit counter.
func RecordCacheHit() {
	CacheHits.Inc()
}

// RecordCacheMiss increments the cache miss counter.
func RecordCacheMiss() {
	CacheMisses.Inc()
}

// RecordCacheInvalidation adds the number of keys deleted by an
// invalidation pass.
func RecordCacheInvalidation(deleted int) {
	CacheInvalidatedKeys.Add(float64(deleted))
}

// RecordCacheDegraded increments the degraded-operation counter.
func RecordCacheDegraded() {
	CacheDegradedOps.Inc()
}

// RecordRateLimitDecision records one limiter outcome for an endpoint.
// Outcome is "allowed", "rejected" or "failopen".
func RecordRateLimitDecision(endpoint, outcome string) {
	RateLimitDecisions.WithLabelValues(endpoint, outcome).Inc()
}

// RecordAPIRequest records metrics for a completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the active request gauge.
func TrackActiveRequest(increment bool) {
	if increment {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
