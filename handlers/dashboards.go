// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/dashforge/cliparse"
	"github.com/danielhkuo/dashforge/middleware"
	"github.com/danielhkuo/dashforge/models"
	"github.com/danielhkuo/dashforge/store"
)

type DashboardHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewDashboardHandler(s *store.Store, cfg cliparse.Config) *DashboardHandler {
	return &DashboardHandler{store: s, cfg: cfg}
}

func dashboardID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

// List handles GET /dashboards
func (h *DashboardHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrDeny(w, r, h.cfg.SessionSalt)
	if !ok {
		return
	}

	dashboards, err := h.store.ListDashboards(r.Context(), principal)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, dashboards)
}

// Get handles GET /dashboards/{id}
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrDeny(w, r, h.cfg.SessionSalt)
	if !ok {
		return
	}
	id, ok := dashboardID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid dashboard id")
		return
	}

	dashboard, err := h.store.GetDashboard(r.Context(), principal, id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, dashboard)
}

// Create handles POST /dashboards
func (h *DashboardHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrDeny(w, r, h.cfg.SessionSalt)
	if !ok {
		return
	}

	var req models.CreateDashboardRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid dashboard payload")
		return
	}

	id, err := h.store.CreateDashboard(r.Context(), principal, req.Name, req.Description, req.SourceName)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	slog.Info("dashboard created", "user_id", principal, "dashboard_id", id)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateDashboardResponse{DashboardID: id})
}

// Update handles PATCH /dashboards/{id}
func (h *DashboardHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrDeny(w, r, h.cfg.SessionSalt)
	if !ok {
		return
	}
	id, ok := dashboardID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid dashboard id")
		return
	}

	var req models.UpdateDashboardRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid dashboard payload")
		return
	}

	if err := h.store.UpdateDashboard(r.Context(), principal, id, req); err != nil {
		writeStoreError(w, err)
		return
	}

	slog.Info("dashboard updated", "user_id", principal, "dashboard_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /dashboards/{id}
func (h *DashboardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrDeny(w, r, h.cfg.SessionSalt)
	if !ok {
		return
	}
	id, ok := dashboardID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid dashboard id")
		return
	}

	if err := h.store.DeleteDashboard(r.Context(), principal, id); err != nil {
		writeStoreError(w, err)
		return
	}

	slog.Info("dashboard deleted", "user_id", principal, "dashboard_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// SaveConfiguration handles PUT /dashboards/{id}/configuration
// The body is the raw configuration blob, replaced wholesale.
func (h *DashboardHandler) SaveConfiguration(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrDeny(w, r, h.cfg.SessionSalt)
	if !ok {
		return
	}
	id, ok := dashboardID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid dashboard id")
		return
	}

	// Read one byte past the cap so the store can tell "at the limit"
	// from "over it"
	defer r.Body.Close()
	blob, err := io.ReadAll(io.LimitReader(r.Body, store.MaxConfigurationBytes+1))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Failed to read configuration")
		return
	}

	if err := h.store.SaveConfiguration(r.Context(), principal, id, blob); err != nil {
		writeStoreError(w, err)
		return
	}

	slog.Info("configuration saved", "user_id", principal, "dashboard_id", id, "bytes", len(blob))
	w.WriteHeader(http.StatusNoContent)
}
