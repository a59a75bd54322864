// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/dashforge/auth"
	"github.com/danielhkuo/dashforge/cliparse"
	"github.com/danielhkuo/dashforge/middleware"
	"github.com/danielhkuo/dashforge/models"
	"github.com/danielhkuo/dashforge/store"
)

type AccountHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewAccountHandler(s *store.Store, cfg cliparse.Config) *AccountHandler {
	return &AccountHandler{store: s, cfg: cfg}
}

// Register handles POST /register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid registration payload")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	userID, err := h.store.CreateUser(r.Context(), req.Email, hash)
	if errors.Is(err, store.ErrConflict) {
		middleware.ErrorResponse(w, http.StatusConflict, "Email already registered")
		return
	}
	if err != nil {
		writeStoreError(w, err)
		return
	}

	slog.Info("user registered", "user_id", userID)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterResponse{
		UserID: userID,
		Token:  auth.GenerateSessionToken(userID, h.cfg.SessionSalt),
	})
}

// Login handles POST /login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid login payload")
		return
	}

	u, err := h.store.UserByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) || (err == nil && !auth.CheckPassword(u.PasswordHash, req.Password)) {
		// One message for both cases - no account enumeration
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		writeStoreError(w, err)
		return
	}

	slog.Info("user logged in", "user_id", u.ID)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Token: auth.GenerateSessionToken(u.ID, h.cfg.SessionSalt),
	})
}

// ChangePassword handles POST /password
func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrDeny(w, r, h.cfg.SessionSalt)
	if !ok {
		return
	}

	var req models.ChangePasswordRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid password payload")
		return
	}

	u, err := h.store.UserByID(r.Context(), principal)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if !auth.CheckPassword(u.PasswordHash, req.CurrentPassword) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Current password is incorrect")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to change password")
		return
	}
	if err := h.store.UpdatePassword(r.Context(), principal, hash); err != nil {
		writeStoreError(w, err)
		return
	}

	slog.Info("password changed", "user_id", principal)
	w.WriteHeader(http.StatusNoContent)
}
