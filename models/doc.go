// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON, with validator tags checked at the decode
boundary:

  - RegisterRequest / LoginRequest / ChangePasswordRequest
  - CreateDashboardRequest: name, description, source_name
  - UpdateDashboardRequest: optional name, description, source_name
  - CreateSourceRequest: name, route, subroute_paths
  - UpdateSourceRequest: optional name, route; subroute_paths (replaces all)

Update request fields are pointers: nil means "leave unchanged", which is
distinct from an explicit empty string (rejected by validation).

# Response Types

  - RegisterResponse: user_id, token
  - LoginResponse: token
  - CreateDashboardResponse: dashboard_id
  - SourceWriteResponse: failed_subroutes (partial-success reporting)
  - ErrorResponse: error, message, field

# Domain Types

  - User: account with bcrypt hash (never serialized)
  - Source: named endpoint owned by a user; identified by SourceKey
  - SourceKey: composite (name, owner) identity used for all source lookups
  - Subroute: sub-path under a source
  - Dashboard: user dashboard referencing a source, with an opaque
    configuration blob
*/
package models
