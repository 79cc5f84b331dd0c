// Copyright (c) 2025 The Shop Houston.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/theshophouston/tsh-employee-of-month/auth"
	"github.com/theshophouston/tsh-employee-of-month/campaign"
	"github.com/theshophouston/tsh-employee-of-month/cliparse"
	"github.com/theshophouston/tsh-employee-of-month/db"
	"github.com/theshophouston/tsh-employee-of-month/middleware"
	"github.com/theshophouston/tsh-employee-of-month/models"
)

type UserHandler struct {
	db     *sql.DB
	cfg    cliparse.Config
	store  *campaign.Store
	ledger *campaign.Ledger
}

func NewUserHandler(database *sql.DB, cfg cliparse.Config, store *campaign.Store, ledger *campaign.Ledger) *UserHandler {
	return &UserHandler{db: database, cfg: cfg, store: store, ledger: ledger}
}

// publicUser is the subset any authenticated user may see (the candidate
// picker needs the roster, not the account details).
type publicUser struct {
	ID                 string `json:"id"`
	Username           string `json:"username"`
	Role               string `json:"role"`
	MustChangePassword bool   `json:"mustChangePassword"`
}

// List handles GET /api/admin/users
//
// With ?public=1, any authenticated user gets the roster subset;
// otherwise admin only.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	isPublic := r.URL.Query().Get("public") == "1"

	var ok bool
	if isPublic {
		_, ok = requireUser(w, r, h.cfg.SessionSecret)
	} else {
		_, ok = requireAdmin(w, r, h.cfg.SessionSecret)
	}
	if !ok {
		return
	}

	rows, err := h.db.Query(`
		SELECT id, username, role, must_change_password, created_at
		FROM app_user
		ORDER BY username_lower
	`)
	if err != nil {
		slog.Error("failed to query users", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	users := []publicUser{}
	for rows.Next() {
		var u publicUser
		var createdAt time.Time
		if err := rows.Scan(&u.ID, &u.Username, &u.Role, &u.MustChangePassword, &createdAt); err != nil {
			slog.Error("failed to scan user", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to query users", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string][]publicUser{"users": users})
}

// Create handles POST /api/admin/users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r, h.cfg.SessionSecret); !ok {
		return
	}

	var req models.CreateUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username and password required")
		return
	}

	role := models.RoleEmployee
	if req.Role == models.RoleAdmin {
		role = models.RoleAdmin
	}

	id := uuid.NewString()
	_, err := h.db.Exec(`
		INSERT INTO app_user (id, username, username_lower, password_hash, role, must_change_password, created_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6)
	`, id, username, strings.ToLower(username),
		auth.HashPassword(req.Password, h.cfg.PasswordSalt), role, time.Now())

	if err != nil {
		if strings.Contains(err.Error(), "unique") || strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "duplicate") {
			middleware.ErrorResponse(w, http.StatusBadRequest, "That username already exists")
			return
		}
		slog.Error("failed to insert user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	slog.Info("user created", "user_id", id, "username", username, "role", role)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateUserResponse{OK: true, ID: id})
}

// Update handles PATCH /api/admin/users/{id}
//
// Admins can change a user's role or set a temporary password (which
// forces a change on next login).
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r, h.cfg.SessionSecret); !ok {
		return
	}

	userID := r.PathValue("id")

	var req models.UpdateUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Role == nil && req.Password == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	if req.Role != nil {
		if *req.Role != models.RoleAdmin && *req.Role != models.RoleEmployee {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid role")
			return
		}
		res, err := h.db.Exec(`UPDATE app_user SET role = $1 WHERE id = $2`, *req.Role, userID)
		if err != nil {
			slog.Error("failed to update user role", "error", err, "user_id", userID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
			return
		}
	}

	if req.Password != nil {
		if len(strings.TrimSpace(*req.Password)) < 4 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Password must be at least 4 characters")
			return
		}
		res, err := h.db.Exec(`
			UPDATE app_user SET password_hash = $1, must_change_password = TRUE WHERE id = $2
		`, auth.HashPassword(*req.Password, h.cfg.PasswordSalt), userID)
		if err != nil {
			slog.Error("failed to update user password", "error", err, "user_id", userID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
			return
		}
	}

	slog.Info("user updated", "user_id", userID)

	middleware.JSONResponse(w, http.StatusOK, map[string]bool{"ok": true})
}

// Delete handles DELETE /api/admin/users/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session, ok := requireAdmin(w, r, h.cfg.SessionSecret)
	if !ok {
		return
	}

	userID := r.PathValue("id")
	if userID == session.UserID {
		middleware.ErrorResponse(w, http.StatusBadRequest, "You cannot delete your own account")
		return
	}

	res, err := h.db.Exec(`DELETE FROM app_user WHERE id = $1`, userID)
	if err != nil {
		slog.Error("failed to delete user", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	affected, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to delete user", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	slog.Info("user deleted", "user_id", userID, "actor_id", session.UserID)

	middleware.JSONResponse(w, http.StatusOK, map[string]bool{"ok": true})
}

// ResetDatabase handles POST /api/admin/reset-database
//
// Wipes every campaign (votes included) and restores the seed roster to
// initial PINs. The body must carry {"confirm":"RESET"}.
func (h *UserHandler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	session, ok := requireAdmin(w, r, h.cfg.SessionSecret)
	if !ok {
		return
	}

	var req models.ResetDatabaseRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil || req.Confirm != "RESET" {
		middleware.ErrorResponse(w, http.StatusBadRequest, `Confirmation required. Pass JSON body: { "confirm": "RESET" }`)
		return
	}

	campaigns, err := h.store.ListDescending()
	if err != nil {
		slog.Error("failed to list campaigns", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	votesDeleted := 0
	campaignsDeleted := 0
	for _, c := range campaigns {
		deleted, err := h.ledger.DeleteAll(c.ID)
		if err != nil {
			slog.Error("failed to delete votes", "error", err, "campaign_id", c.ID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reset database")
			return
		}
		votesDeleted += deleted

		if _, err := h.db.Exec(`DELETE FROM campaign WHERE id = $1`, c.ID); err != nil {
			slog.Error("failed to delete campaign", "error", err, "campaign_id", c.ID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reset database")
			return
		}
		campaignsDeleted++
	}

	usersReset, err := db.RestoreSeedUsers(h.db, h.cfg.PasswordSalt)
	if err != nil {
		slog.Error("failed to restore seed users", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reset database")
		return
	}

	slog.Info("database reset",
		"actor_id", session.UserID,
		"campaigns_deleted", campaignsDeleted,
		"votes_deleted", votesDeleted,
		"users_reset", usersReset,
	)

	middleware.JSONResponse(w, http.StatusOK, models.ResetDatabaseResponse{
		OK:               true,
		CampaignsDeleted: campaignsDeleted,
		VotesDeleted:     votesDeleted,
		UsersReset:       usersReset,
	})
}
