// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing and session token handling.

# Passwords

Passwords are stored as bcrypt hashes:

	hash, err := auth.HashPassword(req.Password)
	ok := auth.CheckPassword(storedHash, req.Password)

# Session Tokens

Tokens are HMAC-signed user ids, verifiable without server-side session
storage:

	token := auth.GenerateSessionToken(userID, cfg.SessionSalt)
	userID, err := auth.ParseSessionToken(token, cfg.SessionSalt)

The salt must stay secret; anyone holding it can mint tokens for any user.

# Principal Resolution

Handlers resolve the authenticated user from a request:

	principal, err := auth.ResolvePrincipal(r, cfg.SessionSalt)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

Tokens are read from "Authorization: Bearer <token>" or the X-Session-Token
header. The principal id returned here is the only owner identity the rest
of the system trusts - never a client-supplied owner field.
*/
package auth
