// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/dashforge/auth"
	"github.com/danielhkuo/dashforge/middleware"
	"github.com/danielhkuo/dashforge/store"
	"github.com/danielhkuo/dashforge/validate"
)

// principalOrDeny resolves the authenticated user or writes a 401.
func principalOrDeny(w http.ResponseWriter, r *http.Request, salt string) (int64, bool) {
	principal, err := auth.ResolvePrincipal(r, salt)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return 0, false
	}
	return principal, true
}

// writeStoreError maps repository failures onto HTTP statuses. Denials
// stay generic: a 401 never confirms that the resource exists for some
// other user.
func writeStoreError(w http.ResponseWriter, err error) {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		middleware.FieldErrorResponse(w, http.StatusBadRequest, verr.Field, verr.Reason)
	case errors.Is(err, store.ErrUnauthorized):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not allowed")
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Not found")
	case errors.Is(err, store.ErrSourceInUse):
		middleware.ErrorResponse(w, http.StatusConflict, "Source is still used by a dashboard")
	case errors.Is(err, store.ErrConflict):
		middleware.ErrorResponse(w, http.StatusConflict, "Already exists")
	case errors.Is(err, store.ErrPayloadTooLarge):
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "Configuration too large")
	case errors.Is(err, store.ErrRateLimited):
		middleware.ErrorResponse(w, http.StatusTooManyRequests, "Too many changes, slow down")
	case errors.Is(err, store.ErrStorageUnavailable):
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Temporarily unavailable, retry later")
	default:
		slog.Error("unexpected repository error", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}
