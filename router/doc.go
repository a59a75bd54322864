// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP route table.

Routes use Go 1.22+ method-and-pattern matching on http.ServeMux:

	mux := router.NewRouter(repo, cfg)
	server := http.Server{Handler: middleware.CORS(mux)}

All business routes are wrapped in request logging. See the handlers
package for the route-by-route contract.
*/
package router
