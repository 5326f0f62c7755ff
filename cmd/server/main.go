// Inkwell - Publishing API Edge Caching and Rate Limiting
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-app/inkwell

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/inkwell-app/inkwell/internal/api"
	"github.com/inkwell-app/inkwell/internal/cache"
	"github.com/inkwell-app/inkwell/internal/config"
	"github.com/inkwell-app/inkwell/internal/logging"
	"github.com/inkwell-app/inkwell/internal/middleware"
	"github.com/inkwell-app/inkwell/internal/ratelimit"
	"github.com/inkwell-app/inkwell/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	flag.Parse()

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
}

func run(cfg *config.Config) error {
	client := store.NewClient(cfg.Redis.URL, cfg.Redis.QueryTimeout)
	backing, err := client.Acquire()
	if err != nil {
		return fmt.Errorf("dialing store: %w", err)
	}
	defer func() {
		if err := client.Release(); err != nil {
			logging.Warn().Err(err).Msg("Closing store connection")
		}
	}()

	// The breaker fails fast while Redis is down so the cache degrades
	// to call-through and the limiter fails open without per-request
	// connection timeouts.
	s := store.NewBreaker(backing)

	c := cache.New(s, cache.NewMonitor(), cache.Options{
		Enabled:    cfg.Cache.Enabled,
		DefaultTTL: cfg.Cache.DefaultTTL,
	})

	quotas := make([]ratelimit.Quota, 0, len(cfg.RateLimit.Routes))
	for _, q := range cfg.RateLimit.Routes {
		quotas = append(quotas, ratelimit.Quota{
			Pattern:   q.Pattern,
			Limit:     q.Limit,
			Window:    q.Window,
			Dimension: ratelimit.Dimension(q.Dimension),
		})
	}
	table, err := ratelimit.NewTable(quotas)
	if err != nil {
		return fmt.Errorf("building quota table: %w", err)
	}
	limiter := ratelimit.NewMiddleware(ratelimit.New(s), table, cfg.RateLimit.StaticPrefix, middleware.PrincipalID)

	router := api.NewRouter(api.NewHandler(s, c), limiter, api.RouterConfig{
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		JWTSecret:          []byte(cfg.RateLimit.JWTSecret),
		StaticPrefix:       cfg.RateLimit.StaticPrefix,
		StaticDir:          cfg.Server.StaticDir,
	})

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().
			Str("addr", addr).
			Bool("cache_enabled", cfg.Cache.Enabled).
			Int("quotas", len(quotas)).
			Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logging.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logging.Info().Msg("Server stopped")
	return nil
}
