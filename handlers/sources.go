// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/dashforge/cliparse"
	"github.com/danielhkuo/dashforge/middleware"
	"github.com/danielhkuo/dashforge/models"
	"github.com/danielhkuo/dashforge/store"
)

type SourceHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewSourceHandler(s *store.Store, cfg cliparse.Config) *SourceHandler {
	return &SourceHandler{store: s, cfg: cfg}
}

// List handles GET /sources
func (h *SourceHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrDeny(w, r, h.cfg.SessionSalt)
	if !ok {
		return
	}

	sources, err := h.store.ListSources(r.Context(), principal)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, sources)
}

// Get handles GET /sources/{name}
func (h *SourceHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrDeny(w, r, h.cfg.SessionSalt)
	if !ok {
		return
	}

	source, err := h.store.GetSource(r.Context(), principal, r.PathValue("name"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, source)
}

// Create handles POST /sources
func (h *SourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrDeny(w, r, h.cfg.SessionSalt)
	if !ok {
		return
	}

	var req models.CreateSourceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid source payload")
		return
	}

	failed, err := h.store.CreateSource(r.Context(), principal, req.Name, req.Route, req.SubroutePaths)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	slog.Info("source created", "user_id", principal, "name", req.Name, "failed_subroutes", len(failed))

	middleware.JSONResponse(w, http.StatusCreated, models.SourceWriteResponse{FailedSubroutes: failed})
}

// Update handles PATCH /sources/{name}
func (h *SourceHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrDeny(w, r, h.cfg.SessionSalt)
	if !ok {
		return
	}
	name := r.PathValue("name")

	var req models.UpdateSourceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid source payload")
		return
	}

	failed, err := h.store.UpdateSource(r.Context(), principal, name, req)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	slog.Info("source updated", "user_id", principal, "name", name, "failed_subroutes", len(failed))

	middleware.JSONResponse(w, http.StatusOK, models.SourceWriteResponse{FailedSubroutes: failed})
}

// Delete handles DELETE /sources/{name}
func (h *SourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrDeny(w, r, h.cfg.SessionSalt)
	if !ok {
		return
	}
	name := r.PathValue("name")

	if err := h.store.DeleteSource(r.Context(), principal, name); err != nil {
		writeStoreError(w, err)
		return
	}

	slog.Info("source deleted", "user_id", principal, "name", name)
	w.WriteHeader(http.StatusNoContent)
}
