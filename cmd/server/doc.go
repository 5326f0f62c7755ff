// Inkwell - Publishing API Edge Caching and Rate Limiting
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-app/inkwell

// Command server runs the edge service: it loads configuration, dials
// the shared Redis store, and serves the middleware pipeline with
// health, cache stats, metrics, and static assets until SIGINT or
// SIGTERM.
package main
