// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Dashforge API server.

Dashforge is a per-user dashboard service: users register data sources
(upstream routes with optional subroutes) and build dashboards on top of
them. Every dashboard must reference one of its owner's sources, and a
source cannot be deleted while a dashboard still uses it.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... SESSION_SALT=... go run main.go

Or with flags:

	go run main.go -p 3319 -d "postgres://..." -t postgres -session-salt secret

# Configuration

Required settings:

  - DATABASE_URL (-d): database connection string
  - SESSION_SALT (-session-salt): secret for session token HMAC

Optional settings:

  - PORT (-p): server port (default: 3319)
  - DATABASE_TYPE (-t): "postgres" or "sqlite" (default: sqlite)
  - RATE_LIMIT (-rate-limit): mutations per user per minute (default: 30)
  - RATE_BURST (-rate-burst): mutation burst allowance (default: 10)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (accounts, dashboards, sources)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - store: repository with ownership checks and rate limiting
  - models: request/response and domain types
  - validate: field validation shared by the repository
  - ratelimit: per-user token buckets
  - auth: password hashing and session tokens
  - db: schema creation for both database backends
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
