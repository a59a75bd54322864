// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ratelimit provides a per-principal, per-action token bucket limiter.

The store consults it before every create, update, and configuration save:

	limiter := ratelimit.New(cfg.RateLimit, cfg.RateBurst)
	if !limiter.Allow(principal, "dashboard:write") {
		// rate limited, storage untouched
	}

Buckets are keyed by (principal id, action string) so one user hammering
source writes does not starve their dashboard writes, and no user affects
another. Counters live in process memory; they are the only state shared
between requests besides the database connection.
*/
package ratelimit
