// Copyright (c) 2025 The Shop Houston.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/theshophouston/tsh-employee-of-month/auth"
	"github.com/theshophouston/tsh-employee-of-month/cliparse"
	"github.com/theshophouston/tsh-employee-of-month/db"
	"github.com/theshophouston/tsh-employee-of-month/middleware"
	"github.com/theshophouston/tsh-employee-of-month/models"
)

type AuthHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAuthHandler(database *sql.DB, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{db: database, cfg: cfg}
}

// requireUser extracts the session or writes a 401. Callers bail out when
// ok is false.
func requireUser(w http.ResponseWriter, r *http.Request, secret string) (*auth.Session, bool) {
	session, err := auth.SessionFromRequest(r, secret)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not logged in")
		return nil, false
	}
	return session, true
}

// requireAdmin extracts the session and checks the admin role.
func requireAdmin(w http.ResponseWriter, r *http.Request, secret string) (*auth.Session, bool) {
	session, err := auth.SessionFromRequest(r, secret)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not logged in")
		return nil, false
	}
	if session.Role != models.RoleAdmin {
		middleware.ErrorResponse(w, http.StatusForbidden, "Admin only")
		return nil, false
	}
	return session, true
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	// First login on a fresh database installs the roster.
	if err := db.SeedUsersIfEmpty(h.db, h.cfg.PasswordSalt); err != nil {
		slog.Error("failed to seed users", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Username == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Username and password required")
		return
	}

	usernameLower := strings.ToLower(strings.TrimSpace(req.Username))

	var user models.User
	err := h.db.QueryRow(`
		SELECT id, username, role, must_change_password, password_hash
		FROM app_user
		WHERE username_lower = $1
	`, usernameLower).Scan(&user.ID, &user.Username, &user.Role, &user.MustChangePassword, &user.PasswordHash)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid login")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password, h.cfg.PasswordSalt) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid login")
		return
	}

	token, err := auth.SignSession(auth.Session{
		UserID:             user.ID,
		Username:           user.Username,
		Role:               user.Role,
		MustChangePassword: user.MustChangePassword,
	}, h.cfg.SessionSecret, time.Now())
	if err != nil {
		slog.Error("failed to sign session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	auth.SetSessionCookie(w, token)

	slog.Info("user logged in", "user_id", user.ID, "username", user.Username)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		OK:                 true,
		MustChangePassword: user.MustChangePassword,
	})
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	middleware.JSONResponse(w, http.StatusOK, map[string]bool{"ok": true})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	session, ok := requireUser(w, r, h.cfg.SessionSecret)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, session)
}

// ChangePassword handles POST /api/auth/change-password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	session, ok := requireUser(w, r, h.cfg.SessionSecret)
	if !ok {
		return
	}

	var req models.ChangePasswordRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(strings.TrimSpace(req.NewPassword)) < 4 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Password must be at least 4 characters")
		return
	}

	res, err := h.db.Exec(`
		UPDATE app_user
		SET password_hash = $1, must_change_password = FALSE
		WHERE id = $2
	`, auth.HashPassword(req.NewPassword, h.cfg.PasswordSalt), session.UserID)
	if err != nil {
		slog.Error("failed to update password", "error", err, "user_id", session.UserID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	affected, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to update password", "error", err, "user_id", session.UserID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if affected == 0 {
		// Session outlived the account.
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	slog.Info("password changed", "user_id", session.UserID)

	middleware.JSONResponse(w, http.StatusOK, map[string]bool{"ok": true})
}
