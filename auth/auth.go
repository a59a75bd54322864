// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidToken    = errors.New("invalid session token")
	ErrUnauthenticated = errors.New("missing or invalid credentials")
)

// HashPassword hashes a plaintext password with bcrypt at the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a plaintext password against a stored bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateSessionToken creates an HMAC-signed token carrying a user id.
// This is deterministic and verifiable without server-side session state.
func GenerateSessionToken(userID int64, salt string) string {
	id := strconv.FormatInt(userID, 10)
	return id + "." + sign(id, salt)
}

// ParseSessionToken verifies a session token and returns the user id.
func ParseSessionToken(token, salt string) (int64, error) {
	id, sig, ok := strings.Cut(token, ".")
	if !ok {
		return 0, ErrInvalidToken
	}
	if !hmac.Equal([]byte(sig), []byte(sign(id, salt))) {
		return 0, ErrInvalidToken
	}
	userID, err := strconv.ParseInt(id, 10, 64)
	if err != nil || userID <= 0 {
		return 0, ErrInvalidToken
	}
	return userID, nil
}

// ResolvePrincipal maps a request to an authenticated user id. Tokens are
// accepted from the Authorization header (Bearer scheme) or the
// X-Session-Token header.
func ResolvePrincipal(r *http.Request, salt string) (int64, error) {
	token := ""
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		token = strings.TrimPrefix(h, "Bearer ")
	} else if h := r.Header.Get("X-Session-Token"); h != "" {
		token = h
	}
	if token == "" {
		return 0, ErrUnauthenticated
	}

	userID, err := ParseSessionToken(token, salt)
	if err != nil {
		return 0, ErrUnauthenticated
	}
	return userID, nil
}

func sign(payload, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(payload))
	// URL-safe base64 and trimmed padding for cleaner tokens
	return strings.TrimRight(base64.URLEncoding.EncodeToString(h.Sum(nil)), "=")
}
