// Inkwell - Publishing API Edge Caching and Rate Limiting
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-app/inkwell

package ratelimit

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/inkwell-app/inkwell/internal/logging"
	"github.com/inkwell-app/inkwell/internal/metrics"
)

// UserIDFunc extracts the authenticated user identity from a request.
// It returns false when the request is anonymous.
type UserIDFunc func(r *http.Request) (string, bool)

// Middleware enforces the quota table on incoming requests.
type Middleware struct {
	limiter      *Limiter
	table        *Table
	staticPrefix string
	userID       UserIDFunc
	now          func() time.Time
}

// NewMiddleware builds rate limiting middleware. Requests whose path
// starts with staticPrefix bypass the limiter entirely. userID may be
// nil, in which case user-dimension quotas always fall back to the
// client IP.
func NewMiddleware(limiter *Limiter, table *Table, staticPrefix string, userID UserIDFunc) *Middleware {
	return &Middleware{
		limiter:      limiter,
		table:        table,
		staticPrefix: staticPrefix,
		userID:       userID,
		now:          time.Now,
	}
}

// Handler wraps next with quota enforcement. Requests on unmetered
// routes pass through without rate limit headers.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if m.staticPrefix != "" && strings.HasPrefix(path, m.staticPrefix) {
			next.ServeHTTP(w, r)
			return
		}
		quota, ok := m.table.Match(path)
		if !ok || quota.Limit <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		identifier := m.identifier(r, quota.Dimension)
		d, err := m.limiter.Check(r.Context(), identifier, path, quota.Limit, quota.Window)
		if err != nil {
			logging.Ctx(r.Context()).Warn().
				Err(err).
				Str("pattern", quota.Pattern).
				Str("identifier", identifier).
				Msg("Rate limiter degraded, failing open")
			metrics.RecordRateLimitDecision(quota.Pattern, "failopen")
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(d.Reset, 10))

		if !d.Allowed {
			metrics.RecordRateLimitDecision(quota.Pattern, "rejected")
			logging.Ctx(r.Context()).Warn().
				Str("pattern", quota.Pattern).
				Str("identifier", identifier).
				Msg("Rate limit exceeded")
			m.writeRejection(w, d)
			return
		}
		if err == nil {
			metrics.RecordRateLimitDecision(quota.Pattern, "allowed")
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) identifier(r *http.Request, dim Dimension) string {
	if dim == DimensionUser && m.userID != nil {
		if id, ok := m.userID(r); ok {
			return "user:" + id
		}
	}
	return "ip:" + clientIP(r)
}

// clientIP prefers the first hop in X-Forwarded-For so quotas apply to
// the originating client rather than the proxy.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type rejection struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryAfter int64  `json:"retry_after"`
}

func (m *Middleware) writeRejection(w http.ResponseWriter, d Decision) {
	retryAfter := d.Reset - m.now().Unix()
	if retryAfter < 0 {
		retryAfter = 0
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	if err := json.NewEncoder(w).Encode(rejection{
		Error:      "rate_limit_exceeded",
		Message:    "Too many requests. Please try again later.",
		RetryAfter: retryAfter,
	}); err != nil {
		logging.Error().Err(err).Msg("Failed to encode rate limit rejection")
	}
}
