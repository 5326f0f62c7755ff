// Inkwell - Publishing API Edge Caching and Rate Limiting
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-app/inkwell

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/inkwell-app/inkwell/internal/middleware"
	"github.com/inkwell-app/inkwell/internal/ratelimit"
)

// RouterConfig holds the router assembly settings.
type RouterConfig struct {
	// CORSAllowedOrigins lists origins allowed cross-origin access.
	CORSAllowedOrigins []string

	// JWTSecret enables identity extraction for user-dimension quotas.
	// Empty disables the authenticator; user quotas then meter by IP.
	JWTSecret []byte

	// StaticPrefix and StaticDir mount a file server exempt from rate
	// limiting. StaticDir empty disables the mount.
	StaticPrefix string
	StaticDir    string
}

// NewRouter assembles the chi router: request ID, metrics, CORS,
// identity, and rate limiting around the operational endpoints.
func NewRouter(handler *Handler, limiter *ratelimit.Middleware, cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         86400,
	}))
	if len(cfg.JWTSecret) > 0 {
		r.Use(middleware.Authenticator(cfg.JWTSecret))
	}
	r.Use(limiter.Handler)

	r.Get("/healthz", handler.Health)
	r.Get("/api/cache/stats", handler.CacheStats)
	r.Handle("/metrics", promhttp.Handler())

	if cfg.StaticDir != "" {
		prefix := strings.TrimSuffix(cfg.StaticPrefix, "/")
		r.Handle(prefix+"/*", http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.StaticDir))))
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).NotFound("resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).MethodNotAllowed("method not allowed")
	})

	return r
}
