// Copyright (c) 2025 The Shop Houston.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/theshophouston/tsh-employee-of-month/campaign"
	"github.com/theshophouston/tsh-employee-of-month/cliparse"
	"github.com/theshophouston/tsh-employee-of-month/models"
	"github.com/theshophouston/tsh-employee-of-month/testutil"
)

func newUserHandler(conn *sql.DB, cfg cliparse.Config) *UserHandler {
	return NewUserHandler(conn, cfg, campaign.NewStore(conn), campaign.NewLedger(conn))
}

func TestUserList_PublicVsAdmin(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	cfg := testutil.GetTestConfig()

	testutil.CreateTestUser(t, conn, cfg, "Sarah", "1234", models.RoleEmployee)
	testutil.CreateTestUser(t, conn, cfg, "Dom", "1234", models.RoleEmployee)

	handler := newUserHandler(conn, cfg)
	employee := testutil.SessionCookie(t, cfg, "user-1", "Mac", models.RoleEmployee)

	// The admin listing is off-limits to employees
	req := testutil.MakeRequest("GET", "/api/admin/users", nil, employee)
	w := httptest.NewRecorder()
	handler.List(w, req)
	testutil.AssertStatus(t, w, http.StatusForbidden)

	// The public roster is available to any authenticated user
	req = testutil.MakeRequest("GET", "/api/admin/users?public=1", nil, employee)
	w = httptest.NewRecorder()
	handler.List(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var body map[string][]publicUser
	testutil.AssertJSON(t, w, &body)
	users := body["users"]
	if len(users) != 2 {
		t.Fatalf("Expected 2 users, got %d", len(users))
	}
	// Ordered by lowercased username
	if users[0].Username != "Dom" || users[1].Username != "Sarah" {
		t.Errorf("Unexpected ordering: %s, %s", users[0].Username, users[1].Username)
	}
}

func TestUserCreate(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	cfg := testutil.GetTestConfig()

	handler := newUserHandler(conn, cfg)
	admin := testutil.SessionCookie(t, cfg, "admin-1", "Vaughn", models.RoleAdmin)

	req := testutil.MakeRequest("POST", "/api/admin/users", models.CreateUserRequest{
		Username: "NewHire",
		Password: "1234",
		Role:     models.RoleEmployee,
	}, admin)
	w := httptest.NewRecorder()
	handler.Create(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.CreateUserResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.OK || resp.ID == "" {
		t.Errorf("Unexpected response: %+v", resp)
	}

	var mustChange bool
	if err := conn.QueryRow(`SELECT must_change_password FROM app_user WHERE id = $1`, resp.ID).Scan(&mustChange); err != nil {
		t.Fatalf("Created user not found: %v", err)
	}
	if !mustChange {
		t.Error("New accounts should be forced to change their password")
	}
}

func TestUserCreate_DuplicateUsername(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	cfg := testutil.GetTestConfig()

	testutil.CreateTestUser(t, conn, cfg, "Sarah", "1234", models.RoleEmployee)
	handler := newUserHandler(conn, cfg)
	admin := testutil.SessionCookie(t, cfg, "admin-1", "Vaughn", models.RoleAdmin)

	// Same name, different case; username_lower is unique
	req := testutil.MakeRequest("POST", "/api/admin/users", models.CreateUserRequest{
		Username: "sarah",
		Password: "1234",
	}, admin)
	w := httptest.NewRecorder()
	handler.Create(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestUserUpdate_RoleAndPassword(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	cfg := testutil.GetTestConfig()

	userID := testutil.CreateTestUser(t, conn, cfg, "Sarah", "1234", models.RoleEmployee)
	handler := newUserHandler(conn, cfg)
	admin := testutil.SessionCookie(t, cfg, "admin-1", "Vaughn", models.RoleAdmin)

	role := models.RoleAdmin
	password := "9999"
	req := testutil.MakeRequest("PATCH", "/api/admin/users/"+userID, models.UpdateUserRequest{
		Role:     &role,
		Password: &password,
	}, admin)
	req.SetPathValue("id", userID)
	w := httptest.NewRecorder()
	handler.Update(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var gotRole string
	var mustChange bool
	if err := conn.QueryRow(`SELECT role, must_change_password FROM app_user WHERE id = $1`, userID).Scan(&gotRole, &mustChange); err != nil {
		t.Fatalf("Failed to read user: %v", err)
	}
	if gotRole != models.RoleAdmin {
		t.Errorf("Expected role admin, got %s", gotRole)
	}
	if !mustChange {
		t.Error("Temp password should force a change on next login")
	}
}

func TestUserUpdate_EmptyBody(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	cfg := testutil.GetTestConfig()

	userID := testutil.CreateTestUser(t, conn, cfg, "Sarah", "1234", models.RoleEmployee)
	handler := newUserHandler(conn, cfg)
	admin := testutil.SessionCookie(t, cfg, "admin-1", "Vaughn", models.RoleAdmin)

	req := testutil.MakeRequest("PATCH", "/api/admin/users/"+userID, models.UpdateUserRequest{}, admin)
	req.SetPathValue("id", userID)
	w := httptest.NewRecorder()
	handler.Update(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestUserDelete(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	cfg := testutil.GetTestConfig()

	userID := testutil.CreateTestUser(t, conn, cfg, "Sarah", "1234", models.RoleEmployee)
	handler := newUserHandler(conn, cfg)
	admin := testutil.SessionCookie(t, cfg, "admin-1", "Vaughn", models.RoleAdmin)

	req := testutil.MakeRequest("DELETE", "/api/admin/users/"+userID, nil, admin)
	req.SetPathValue("id", userID)
	w := httptest.NewRecorder()
	handler.Delete(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM app_user WHERE id = $1`, userID).Scan(&count); err != nil {
		t.Fatalf("Failed to count users: %v", err)
	}
	if count != 0 {
		t.Error("User survived deletion")
	}
}

func TestUserDelete_SelfForbidden(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	cfg := testutil.GetTestConfig()

	adminID := testutil.CreateTestUser(t, conn, cfg, "Vaughn", "1234", models.RoleAdmin)
	handler := newUserHandler(conn, cfg)
	admin := testutil.SessionCookie(t, cfg, adminID, "Vaughn", models.RoleAdmin)

	req := testutil.MakeRequest("DELETE", "/api/admin/users/"+adminID, nil, admin)
	req.SetPathValue("id", adminID)
	w := httptest.NewRecorder()
	handler.Delete(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestResetDatabase(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	cfg := testutil.GetTestConfig()

	handler := newUserHandler(conn, cfg)
	admin := testutil.SessionCookie(t, cfg, "admin-1", "Vaughn", models.RoleAdmin)

	// Two months of history with votes
	for _, id := range []string{"2026-06", "2026-07"} {
		start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
		testutil.CreateTestCampaign(t, conn, id, models.StatusFinalized, start, start.AddDate(0, 1, 0), false)
		testutil.CastTestVote(t, conn, id, "alice", "bob")
		testutil.CastTestVote(t, conn, id, "carol", "bob")
	}

	req := testutil.MakeRequest("POST", "/api/admin/reset-database", models.ResetDatabaseRequest{Confirm: "RESET"}, admin)
	w := httptest.NewRecorder()
	handler.ResetDatabase(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ResetDatabaseResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.CampaignsDeleted != 2 || resp.VotesDeleted != 4 {
		t.Errorf("Unexpected counts: %+v", resp)
	}
	if resp.UsersReset == 0 {
		t.Error("Expected the seed roster to be restored")
	}

	var campaigns int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM campaign`).Scan(&campaigns); err != nil {
		t.Fatalf("Failed to count campaigns: %v", err)
	}
	if campaigns != 0 {
		t.Errorf("Campaigns survived the reset: %d", campaigns)
	}
}

func TestResetDatabase_RequiresConfirmation(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	cfg := testutil.GetTestConfig()

	handler := newUserHandler(conn, cfg)
	admin := testutil.SessionCookie(t, cfg, "admin-1", "Vaughn", models.RoleAdmin)

	req := testutil.MakeRequest("POST", "/api/admin/reset-database", models.ResetDatabaseRequest{Confirm: "yes"}, admin)
	w := httptest.NewRecorder()
	handler.ResetDatabase(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}
