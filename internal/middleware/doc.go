// Inkwell - Publishing API Edge Caching and Rate Limiting
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-app/inkwell

/*
Package middleware provides HTTP middleware for the edge service.

Key components:

  - RequestID: UUID-based request tracking propagated through the
    response header and the logging context
  - Prometheus: request/response instrumentation (count, duration,
    in-flight gauge)
  - Authenticator: best-effort JWT identity extraction used to key
    per-user rate limit quotas

All middleware is chi-compatible (func(http.Handler) http.Handler) and
thread-safe. The authenticator never rejects requests: endpoints behind
this edge enforce their own authorization, the middleware only needs an
identity for quota accounting.
*/
package middleware
