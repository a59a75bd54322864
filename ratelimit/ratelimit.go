// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type bucketKey struct {
	principal int64
	action    string
}

// Limiter tracks a token bucket per (principal, action) pair. It is an
// in-memory store suitable for single-instance deployments.
type Limiter struct {
	mu      sync.Mutex
	buckets map[bucketKey]*rate.Limiter
	limit   rate.Limit
	burst   int
}

// New creates a limiter allowing perMinute sustained mutations with the
// given burst, per principal and action.
func New(perMinute, burst int) *Limiter {
	return &Limiter{
		buckets: make(map[bucketKey]*rate.Limiter),
		limit:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   burst,
	}
}

// Allow reports whether the principal may perform the action now, and
// consumes one token if so.
func (l *Limiter) Allow(principal int64, action string) bool {
	l.mu.Lock()
	b, ok := l.buckets[bucketKey{principal, action}]
	if !ok {
		b = rate.NewLimiter(l.limit, l.burst)
		l.buckets[bucketKey{principal, action}] = b
	}
	l.mu.Unlock()

	return b.Allow()
}
