// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/dashforge/models"
	"github.com/danielhkuo/dashforge/store"
	"github.com/danielhkuo/dashforge/testutil"
)

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestDashboardCreate(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	h := NewDashboardHandler(store.New(conn, testutil.NewTestLimiter()), testutil.GetTestConfig())

	userID, token := testutil.CreateTestUser(t, conn, "alice@example.com")
	testutil.CreateTestSource(t, conn, userID, "stocks", "/api/stocks")

	tests := []struct {
		name       string
		body       map[string]interface{}
		headers    map[string]string
		wantStatus int
	}{
		{
			name:       "valid dashboard",
			body:       map[string]interface{}{"name": "Portfolio", "description": "My holdings", "source_name": "stocks"},
			headers:    bearer(token),
			wantStatus: 201,
		},
		{
			name:       "unknown source",
			body:       map[string]interface{}{"name": "Broken", "description": "No source", "source_name": "nope"},
			headers:    bearer(token),
			wantStatus: 404,
		},
		{
			name:       "missing name",
			body:       map[string]interface{}{"description": "No name", "source_name": "stocks"},
			headers:    bearer(token),
			wantStatus: 400,
		},
		{
			name:       "duplicate names are allowed",
			body:       map[string]interface{}{"name": "Portfolio", "description": "Again", "source_name": "stocks"},
			headers:    bearer(token),
			wantStatus: 201,
		},
		{
			name:       "no session token",
			body:       map[string]interface{}{"name": "Anon", "description": "x", "source_name": "stocks"},
			wantStatus: 401,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/dashboards", tt.body, tt.headers)
			w := httptest.NewRecorder()
			h.Create(w, req)
			testutil.AssertStatus(t, w, tt.wantStatus)

			if tt.wantStatus == 201 {
				var resp models.CreateDashboardResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.DashboardID == 0 {
					t.Error("Expected a non-zero dashboard id")
				}
			}
		})
	}
}

func TestDashboardGetAndList(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	h := NewDashboardHandler(store.New(conn, testutil.NewTestLimiter()), testutil.GetTestConfig())

	aliceID, aliceToken := testutil.CreateTestUser(t, conn, "alice@example.com")
	_, malloryToken := testutil.CreateTestUser(t, conn, "mallory@example.com")
	testutil.CreateTestSource(t, conn, aliceID, "stocks", "/api/stocks")
	dashID := testutil.CreateTestDashboard(t, conn, aliceID, "Portfolio", "stocks")

	t.Run("owner can get", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/dashboards/"+strconv.FormatInt(dashID, 10), nil, bearer(aliceToken))
		req.SetPathValue("id", strconv.FormatInt(dashID, 10))
		w := httptest.NewRecorder()
		h.Get(w, req)
		testutil.AssertStatus(t, w, 200)

		var d models.Dashboard
		testutil.AssertJSON(t, w, &d)
		if d.Name != "Portfolio" || d.SourceName != "stocks" {
			t.Errorf("Unexpected dashboard: %+v", d)
		}
	})

	t.Run("non-owner is denied", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/dashboards/"+strconv.FormatInt(dashID, 10), nil, bearer(malloryToken))
		req.SetPathValue("id", strconv.FormatInt(dashID, 10))
		w := httptest.NewRecorder()
		h.Get(w, req)
		testutil.AssertStatus(t, w, 401)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/dashboards/abc", nil, bearer(aliceToken))
		req.SetPathValue("id", "abc")
		w := httptest.NewRecorder()
		h.Get(w, req)
		testutil.AssertStatus(t, w, 400)
	})

	t.Run("list only shows own dashboards", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/dashboards", nil, bearer(malloryToken))
		w := httptest.NewRecorder()
		h.List(w, req)
		testutil.AssertStatus(t, w, 200)

		var list []models.Dashboard
		testutil.AssertJSON(t, w, &list)
		if len(list) != 0 {
			t.Errorf("Expected empty list for mallory, got %d dashboards", len(list))
		}
	})
}

func TestDashboardUpdate(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	repo := store.New(conn, testutil.NewTestLimiter())
	h := NewDashboardHandler(repo, testutil.GetTestConfig())

	userID, token := testutil.CreateTestUser(t, conn, "alice@example.com")
	testutil.CreateTestSource(t, conn, userID, "stocks", "/api/stocks")
	dashID := testutil.CreateTestDashboard(t, conn, userID, "Portfolio", "stocks")

	req := testutil.MakeRequest("PATCH", "/dashboards/"+strconv.FormatInt(dashID, 10),
		map[string]interface{}{"name": "Holdings"}, bearer(token))
	req.SetPathValue("id", strconv.FormatInt(dashID, 10))
	w := httptest.NewRecorder()
	h.Update(w, req)
	testutil.AssertStatus(t, w, 204)

	d, err := repo.GetDashboard(context.Background(), userID, dashID)
	if err != nil {
		t.Fatalf("Failed to load dashboard: %v", err)
	}
	if d.Name != "Holdings" {
		t.Errorf("Expected renamed dashboard, got %q", d.Name)
	}
	// Absent fields stay put
	if d.Description != "test dashboard" {
		t.Errorf("Description changed unexpectedly: %q", d.Description)
	}
}

func TestDashboardDelete(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	h := NewDashboardHandler(store.New(conn, testutil.NewTestLimiter()), testutil.GetTestConfig())

	userID, token := testutil.CreateTestUser(t, conn, "alice@example.com")
	testutil.CreateTestSource(t, conn, userID, "stocks", "/api/stocks")
	dashID := testutil.CreateTestDashboard(t, conn, userID, "Portfolio", "stocks")
	idStr := strconv.FormatInt(dashID, 10)

	req := testutil.MakeRequest("DELETE", "/dashboards/"+idStr, nil, bearer(token))
	req.SetPathValue("id", idStr)
	w := httptest.NewRecorder()
	h.Delete(w, req)
	testutil.AssertStatus(t, w, 204)

	// A second delete finds nothing
	req = testutil.MakeRequest("DELETE", "/dashboards/"+idStr, nil, bearer(token))
	req.SetPathValue("id", idStr)
	w = httptest.NewRecorder()
	h.Delete(w, req)
	testutil.AssertStatus(t, w, 404)
}

func TestDashboardSaveConfiguration(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	h := NewDashboardHandler(store.New(conn, testutil.NewTestLimiter()), testutil.GetTestConfig())

	userID, token := testutil.CreateTestUser(t, conn, "alice@example.com")
	testutil.CreateTestSource(t, conn, userID, "stocks", "/api/stocks")
	dashID := testutil.CreateTestDashboard(t, conn, userID, "Portfolio", "stocks")
	idStr := strconv.FormatInt(dashID, 10)

	t.Run("valid configuration", func(t *testing.T) {
		req := httptest.NewRequest("PUT", "/dashboards/"+idStr+"/configuration",
			strings.NewReader(`{"layout":"grid","widgets":[{"type":"chart"}]}`))
		req.Header.Set("Authorization", "Bearer "+token)
		req.SetPathValue("id", idStr)
		w := httptest.NewRecorder()
		h.SaveConfiguration(w, req)
		testutil.AssertStatus(t, w, 204)

		getReq := testutil.MakeRequest("GET", "/dashboards/"+idStr, nil, bearer(token))
		getReq.SetPathValue("id", idStr)
		getW := httptest.NewRecorder()
		h.Get(getW, getReq)
		testutil.AssertStatus(t, getW, 200)

		var d models.Dashboard
		testutil.AssertJSON(t, getW, &d)
		if !strings.Contains(string(d.Configuration), `"layout":"grid"`) {
			t.Errorf("Configuration not round-tripped: %s", d.Configuration)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest("PUT", "/dashboards/"+idStr+"/configuration", strings.NewReader(`{broken`))
		req.Header.Set("Authorization", "Bearer "+token)
		req.SetPathValue("id", idStr)
		w := httptest.NewRecorder()
		h.SaveConfiguration(w, req)
		testutil.AssertStatus(t, w, 400)
	})

	t.Run("oversized configuration", func(t *testing.T) {
		blob := `{"pad":"` + strings.Repeat("x", store.MaxConfigurationBytes) + `"}`
		req := httptest.NewRequest("PUT", "/dashboards/"+idStr+"/configuration", strings.NewReader(blob))
		req.Header.Set("Authorization", "Bearer "+token)
		req.SetPathValue("id", idStr)
		w := httptest.NewRecorder()
		h.SaveConfiguration(w, req)
		testutil.AssertStatus(t, w, 413)
	})
}

// A storage failure of the retryable class (here an expired request
// context) surfaces as 503, not 500.
func TestDashboardStorageUnavailableMapsTo503(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	h := NewDashboardHandler(store.New(conn, testutil.NewTestLimiter()), testutil.GetTestConfig())

	_, token := testutil.CreateTestUser(t, conn, "alice@example.com")

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	req := testutil.MakeRequest("GET", "/dashboards", nil, bearer(token)).WithContext(ctx)
	w := httptest.NewRecorder()
	h.List(w, req)
	testutil.AssertStatus(t, w, 503)
}
