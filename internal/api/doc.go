// Inkwell - Publishing API Edge Caching and Rate Limiting
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-app/inkwell

/*
Package api assembles the HTTP surface of the edge service.

The chi router mounts the middleware pipeline (request ID, metrics,
CORS, identity extraction, rate limiting) and the operational
endpoints:

  - GET /healthz          liveness plus a store ping
  - GET /api/cache/stats  cache hit/miss snapshot
  - GET /metrics          Prometheus exposition
  - /static/*             file server, exempt from rate limiting

Application routes live upstream; this service fronts them with caching
and quota enforcement, so the router only carries what the edge itself
owns. Responses use a standardized JSON envelope with a machine-readable
error code and the request ID for tracing.
*/
package api
