// Inkwell - Publishing API Edge Caching and Rate Limiting
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-app/inkwell

package cache

import (
	"fmt"
	"sync/atomic"

	"github.com/inkwell-app/inkwell/internal/metrics"
)

// Monitor tracks cache hits and misses for the process lifetime. The
// counters are atomic, advisory, and never reset; they also mirror into
// the Prometheus registry. Construct one and inject it — it is not
// package state.
type Monitor struct {
	hits   atomic.Int64
	misses atomic.Int64
}

// NewMonitor returns a zeroed Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// RecordHit counts one cache hit.
func (m *Monitor) RecordHit() {
	m.hits.Add(1)
	metrics.RecordCacheHit()
}

// RecordMiss counts one cache miss.
func (m *Monitor) RecordMiss() {
	m.misses.Add(1)
	metrics.RecordCacheMiss()
}

// Snapshot is a point-in-time view of the monitor's counters.
type Snapshot struct {
	Hits   int64  `json:"hits"`
	Misses int64  `json:"misses"`
	Total  int64  `json:"total"`
	// HitRate is hits/total as a percentage with two fractional digits,
	// "0.00%" when there are no samples yet.
	HitRate string `json:"hit_rate"`
}

// Snapshot returns the current counters. Hits and misses are read
// separately, so under concurrent traffic the pair may be skewed by a
// request in flight; the stats are advisory, not transactional.
func (m *Monitor) Snapshot() Snapshot {
	hits := m.hits.Load()
	misses := m.misses.Load()
	total := hits + misses

	rate := 0.0
	if total > 0 {
		rate = float64(hits) / float64(total)
	}

	return Snapshot{
		Hits:    hits,
		Misses:  misses,
		Total:   total,
		HitRate: fmt.Sprintf("%.2f%%", rate*100),
	}
}
