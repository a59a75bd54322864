// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/dashforge/auth"
	"github.com/danielhkuo/dashforge/cliparse"
	"github.com/danielhkuo/dashforge/db"
	"github.com/danielhkuo/dashforge/ratelimit"
)

// SetupTestDB creates a fresh in-memory database with the full schema.
// Each call gets its own database, so tests never share state.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// cache=shared keeps the database alive across the pool's
	// connections; one open conn avoids shared-cache lock errors.
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_pragma=foreign_keys(1)"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn, "sqlite"); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3319,
		DatabaseURL:  "file:test?mode=memory",
		DatabaseType: "sqlite",
		SessionSalt:  "test-session-salt",
		RateLimit:    600,
		RateBurst:    100,
	}
}

// NewTestLimiter returns a limiter generous enough to never interfere
// with a test unless the test wants it to.
func NewTestLimiter() *ratelimit.Limiter {
	return ratelimit.New(6000, 1000)
}

// CreateTestUser inserts a user and returns its id and a valid session
// token. The password is always "test-password-123".
func CreateTestUser(t *testing.T, conn *sql.DB, email string) (int64, string) {
	t.Helper()

	hash, err := auth.HashPassword("test-password-123")
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}

	var id int64
	err = conn.QueryRow(`
		INSERT INTO users (email, password_hash, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, email, hash, time.Now()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return id, auth.GenerateSessionToken(id, GetTestConfig().SessionSalt)
}

// CreateTestSource inserts a source owned by the given user
func CreateTestSource(t *testing.T, conn *sql.DB, owner int64, name, route string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO sources (name, created_by, route, created_at)
		VALUES ($1, $2, $3, $4)
	`, name, owner, route, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test source: %v", err)
	}
}

// AddTestSubroute inserts a subroute under a source
func AddTestSubroute(t *testing.T, conn *sql.DB, owner int64, sourceName, path string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO subroutes (path, source_name, source_created_by)
		VALUES ($1, $2, $3)
	`, path, sourceName, owner)
	if err != nil {
		t.Fatalf("Failed to create test subroute: %v", err)
	}
}

// CreateTestDashboard inserts a dashboard referencing an existing source
// and returns its id
func CreateTestDashboard(t *testing.T, conn *sql.DB, owner int64, name, sourceName string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO dashboards (created_by, name, description, source_name, source_created_by, created_at)
		VALUES ($1, $2, 'test dashboard', $3, $4, $5)
		RETURNING id
	`, owner, name, sourceName, owner, time.Now()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test dashboard: %v", err)
	}

	return id
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
