// Inkwell - Publishing API Edge Caching and Rate Limiting
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-app/inkwell

/*
Package metrics provides Prometheus instrumentation for Inkwell.

Metrics are registered with the default Prometheus registry via promauto
and exposed on /metrics by the server. The cache monitor mirrors its
in-process counters here; these metrics are advisory and never drive
control decisions.

Exported metric families:

	cache_hits_total
	cache_misses_total
	cache_invalidated_keys_total
	cache_degraded_operations_total
	rate_limit_decisions_total{endpoint,outcome}
	api_requests_total{method,endpoint,status_code}
	api_request_duration_seconds{method,endpoint}
	api_active_requests
*/
package metrics
