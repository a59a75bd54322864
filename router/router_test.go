// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/danielhkuo/dashforge/models"
	"github.com/danielhkuo/dashforge/store"
	"github.com/danielhkuo/dashforge/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	mux := NewRouter(store.New(conn, testutil.NewTestLimiter()), testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	mux := NewRouter(store.New(conn, testutil.NewTestLimiter()), testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "dashforge API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	mux := NewRouter(store.New(conn, testutil.NewTestLimiter()), testutil.GetTestConfig())

	// Routes should be matched even when the handler then rejects the
	// request; 400, 401 and 404 are all valid handler outcomes here
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},

		{"POST", "/register"},
		{"POST", "/login"},
		{"POST", "/password"},

		{"GET", "/dashboards"},
		{"POST", "/dashboards"},
		{"GET", "/dashboards/1"},
		{"PATCH", "/dashboards/1"},
		{"DELETE", "/dashboards/1"},
		{"PUT", "/dashboards/1/configuration"},

		{"GET", "/sources"},
		{"POST", "/sources"},
		{"GET", "/sources/stocks"},
		{"PATCH", "/sources/stocks"},
		{"DELETE", "/sources/stocks"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	mux := NewRouter(store.New(conn, testutil.NewTestLimiter()), testutil.GetTestConfig())

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},        // Only GET is defined
		{"PUT", "/sources/stocks"}, // Updates go through PATCH
		{"POST", "/dashboards/1"},  // Creates go through /dashboards
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

// TestDashboardLifecycle drives the full workflow through the real route
// table: register, create a source, create a dashboard on it, have the
// source delete refused while referenced, then tear down in order.
func TestDashboardLifecycle(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	mux := NewRouter(store.New(conn, testutil.NewTestLimiter()), testutil.GetTestConfig())

	send := func(req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		return w
	}

	// Register
	w := send(testutil.MakeRequest("POST", "/register",
		map[string]interface{}{"email": "alice@example.com", "password": "correct-horse-battery"}, nil))
	testutil.AssertStatus(t, w, 201)
	var reg models.RegisterResponse
	testutil.AssertJSON(t, w, &reg)
	authHeader := map[string]string{"Authorization": "Bearer " + reg.Token}

	// Create a source with subroutes
	w = send(testutil.MakeRequest("POST", "/sources",
		map[string]interface{}{"name": "stocks", "route": "/api/stocks", "subroute_paths": []string{"/nasdaq", "/nyse"}},
		authHeader))
	testutil.AssertStatus(t, w, 201)
	var created models.SourceWriteResponse
	testutil.AssertJSON(t, w, &created)
	if len(created.FailedSubroutes) != 0 {
		t.Fatalf("Expected no failed subroutes, got %+v", created.FailedSubroutes)
	}

	// Create a dashboard on it
	w = send(testutil.MakeRequest("POST", "/dashboards",
		map[string]interface{}{"name": "Portfolio", "description": "My holdings", "source_name": "stocks"},
		authHeader))
	testutil.AssertStatus(t, w, 201)
	var dash models.CreateDashboardResponse
	testutil.AssertJSON(t, w, &dash)
	dashPath := "/dashboards/" + strconv.FormatInt(dash.DashboardID, 10)

	// Deleting the source is refused while the dashboard references it
	w = send(testutil.MakeRequest("DELETE", "/sources/stocks", nil, authHeader))
	testutil.AssertStatus(t, w, 409)

	// The source and its subroutes are untouched
	w = send(testutil.MakeRequest("GET", "/sources/stocks", nil, authHeader))
	testutil.AssertStatus(t, w, 200)
	var src models.Source
	testutil.AssertJSON(t, w, &src)
	if len(src.Subroutes) != 2 {
		t.Fatalf("Expected 2 subroutes after refused delete, got %+v", src.Subroutes)
	}

	// Delete the dashboard, then the source goes through
	w = send(testutil.MakeRequest("DELETE", dashPath, nil, authHeader))
	testutil.AssertStatus(t, w, 204)

	w = send(testutil.MakeRequest("DELETE", "/sources/stocks", nil, authHeader))
	testutil.AssertStatus(t, w, 204)

	w = send(testutil.MakeRequest("GET", "/sources/stocks", nil, authHeader))
	testutil.AssertStatus(t, w, 404)
}
