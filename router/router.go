// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/dashforge/cliparse"
	"github.com/danielhkuo/dashforge/handlers"
	"github.com/danielhkuo/dashforge/middleware"
	"github.com/danielhkuo/dashforge/store"
)

func NewRouter(repo *store.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(repo, cfg)
	dashboardHandler := handlers.NewDashboardHandler(repo, cfg)
	sourceHandler := handlers.NewSourceHandler(repo, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Accounts
	mux.HandleFunc("POST /register", middleware.WithLogging(accountHandler.Register))
	mux.HandleFunc("POST /login", middleware.WithLogging(accountHandler.Login))
	mux.HandleFunc("POST /password", middleware.WithLogging(accountHandler.ChangePassword))

	// Dashboards
	mux.HandleFunc("GET /dashboards", middleware.WithLogging(dashboardHandler.List))
	mux.HandleFunc("POST /dashboards", middleware.WithLogging(dashboardHandler.Create))
	mux.HandleFunc("GET /dashboards/{id}", middleware.WithLogging(dashboardHandler.Get))
	mux.HandleFunc("PATCH /dashboards/{id}", middleware.WithLogging(dashboardHandler.Update))
	mux.HandleFunc("DELETE /dashboards/{id}", middleware.WithLogging(dashboardHandler.Delete))
	mux.HandleFunc("PUT /dashboards/{id}/configuration", middleware.WithLogging(dashboardHandler.SaveConfiguration))

	// Sources
	mux.HandleFunc("GET /sources", middleware.WithLogging(sourceHandler.List))
	mux.HandleFunc("POST /sources", middleware.WithLogging(sourceHandler.Create))
	mux.HandleFunc("GET /sources/{name}", middleware.WithLogging(sourceHandler.Get))
	mux.HandleFunc("PATCH /sources/{name}", middleware.WithLogging(sourceHandler.Update))
	mux.HandleFunc("DELETE /sources/{name}", middleware.WithLogging(sourceHandler.Delete))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("dashforge API v1"))
	})

	return mux
}
