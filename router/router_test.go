// Copyright (c) 2025 The Shop Houston.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/theshophouston/tsh-employee-of-month/period"
	"github.com/theshophouston/tsh-employee-of-month/testutil"
)

func testRouter(t *testing.T, db *sql.DB) *http.ServeMux {
	t.Helper()
	cfg := testutil.GetTestConfig()
	resolver, err := period.NewResolver(cfg.Timezone)
	if err != nil {
		t.Fatalf("Failed to create resolver: %v", err)
	}
	return NewRouter(db, cfg, resolver)
}

func TestHealthEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	mux := testRouter(t, db)

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
	db := testutil.SetupTestDB(t)
	defer db.Close()

	mux := testRouter(t, db)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "tsh-employee-of-month API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	mux := testRouter(t, db)

	// Routes should be matched; auth errors and 404s are valid handler
	// behavior, 405 means the route is missing.
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},

		{"POST", "/api/auth/login"},
		{"POST", "/api/auth/logout"},
		{"GET", "/api/auth/me"},
		{"POST", "/api/auth/change-password"},

		{"POST", "/api/votes"},

		{"GET", "/api/campaigns/current"},
		{"POST", "/api/campaigns/current/force-finalize"},
		{"POST", "/api/campaigns/current/reset"},
		{"GET", "/api/campaigns/2026-08"},
		{"POST", "/api/campaigns/2026-08/force-finalize"},
		{"POST", "/api/campaigns/2026-08/reset"},
		{"POST", "/api/campaigns/2026-08/votes/some-voter/reset"},

		{"GET", "/api/admin/campaigns"},
		{"GET", "/api/admin/users"},
		{"POST", "/api/admin/users"},
		{"PATCH", "/api/admin/users/some-id"},
		{"DELETE", "/api/admin/users/some-id"},
		{"POST", "/api/admin/reset-database"},
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
	db := testutil.SetupTestDB(t)
	defer db.Close()

	mux := testRouter(t, db)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},      // only GET is defined
		{"DELETE", "/api/votes"}, // only POST is defined
		{"PUT", "/api/admin/reset-database"}, // only POST is defined
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

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	mux := testRouter(t, db)

	// Every protected route turns away anonymous callers
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/api/auth/me"},
		{"POST", "/api/votes"},
		{"GET", "/api/campaigns/current"},
		{"POST", "/api/campaigns/current/force-finalize"},
		{"GET", "/api/admin/campaigns"},
		{"POST", "/api/admin/reset-database"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("Expected 401 for anonymous %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}
