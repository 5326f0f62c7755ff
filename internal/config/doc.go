// Inkwell - Publishing API Edge Caching and Rate Limiting
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-app/inkwell

/*
Package config provides layered configuration loading for Inkwell.

Configuration is assembled with Koanf v2 from three layers, later layers
overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML config file (config.yaml, or INKWELL_CONFIG_PATH)
 3. INKWELL_* environment variables

Example config file:

	server:
	  host: 0.0.0.0
	  port: 8080
	redis:
	  url: redis://localhost:6379/0
	cache:
	  enabled: true
	  default_ttl: 5m
	ratelimit:
	  static_prefix: /static
	  routes:
	    - pattern: /api/users/login
	      limit: 5
	      window: 1m
	      dimension: ip
	    - pattern: /api/articles/{slug}
	      limit: 60
	      window: 1m
	      dimension: ip

The quota table is validated on load: every entry needs a /-prefixed
pattern, a non-negative limit, a positive window and a dimension of ip or
user, and patterns must be unique. A limit of 0 leaves the route unmetered.
*/
package config
