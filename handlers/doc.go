// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Dashforge API.

# Handler Types

Each handler is a struct with repository and config dependencies:

  - AccountHandler: registration, login, password change
  - DashboardHandler: dashboard CRUD and configuration saves
  - SourceHandler: source CRUD with subroute management

Handlers are created via constructor functions that accept *store.Store
and Config:

	dashboardHandler := handlers.NewDashboardHandler(repo, cfg)

# Authentication

All routes except /register and /login require a session token
("Authorization: Bearer <token>" or X-Session-Token). The resolved
principal id scopes every repository call; handlers never accept an owner
id from the client.

# Accounts

	POST /register → Register (returns user_id and token)
	POST /login    → Login (returns token)
	POST /password → ChangePassword

# Dashboards

	GET    /dashboards                    → List
	POST   /dashboards                    → Create
	GET    /dashboards/{id}               → Get
	PATCH  /dashboards/{id}               → Update (partial; absent fields untouched)
	DELETE /dashboards/{id}               → Delete
	PUT    /dashboards/{id}/configuration → SaveConfiguration (raw JSON body)

# Sources

	GET    /sources        → List (with subroutes)
	POST   /sources        → Create (reports failed subroutes)
	GET    /sources/{name} → Get
	PATCH  /sources/{name} → Update (partial; subroute set replaced)
	DELETE /sources/{name} → Delete (refused while a dashboard references it)

# Error Mapping

Repository failures map onto statuses in errors.go: validation 400,
unauthorized 401, not found 404, conflict/in-use 409, oversized
configuration 413, rate limited 429, storage unavailable 503.
*/
package handlers
