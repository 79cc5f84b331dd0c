// Copyright (c) 2025 The Shop Houston.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/theshophouston/tsh-employee-of-month/auth"
	"github.com/theshophouston/tsh-employee-of-month/models"
)

// SeedUser is an initial roster entry. The initial password is the last
// four digits of the employee's phone number; every seeded account must
// change it on first login.
type SeedUser struct {
	Username        string
	InitialPassword string
	Role            string
}

// SeedUsers is the initial company roster.
var SeedUsers = []SeedUser{
	{Username: "Vaughn", InitialPassword: "0996", Role: models.RoleAdmin},
	{Username: "Kaina", InitialPassword: "2846", Role: models.RoleAdmin},
	{Username: "Mac", InitialPassword: "0143", Role: models.RoleAdmin},
	{Username: "Blake", InitialPassword: "8746", Role: models.RoleEmployee},
	{Username: "Hajime", InitialPassword: "8851", Role: models.RoleEmployee},
	{Username: "Collin", InitialPassword: "3858", Role: models.RoleEmployee},
	{Username: "Preston", InitialPassword: "5302", Role: models.RoleEmployee},
	{Username: "Kip", InitialPassword: "7182", Role: models.RoleEmployee},
	{Username: "Jack", InitialPassword: "1267", Role: models.RoleEmployee},
}

// SeedUsersIfEmpty inserts the initial roster when the user table is
// empty. Called on startup and defensively before login.
func SeedUsersIfEmpty(db *sql.DB, passwordSalt string) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM app_user`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, u := range SeedUsers {
		_, err := db.Exec(`
			INSERT INTO app_user (id, username, username_lower, password_hash, role, must_change_password, created_at)
			VALUES ($1, $2, $3, $4, $5, TRUE, $6)
			ON CONFLICT (username_lower) DO NOTHING
		`, uuid.NewString(), u.Username, strings.ToLower(u.Username),
			auth.HashPassword(u.InitialPassword, passwordSalt), u.Role, time.Now())
		if err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.Username, err)
		}
	}

	return nil
}

// RestoreSeedUsers puts every roster account back to its initial password
// with must_change_password set. Accounts not in the roster are left
// alone. Returns the number of users reset.
func RestoreSeedUsers(db *sql.DB, passwordSalt string) (int, error) {
	reset := 0
	for _, u := range SeedUsers {
		res, err := db.Exec(`
			UPDATE app_user
			SET password_hash = $1, must_change_password = TRUE
			WHERE username_lower = $2
		`, auth.HashPassword(u.InitialPassword, passwordSalt), strings.ToLower(u.Username))
		if err != nil {
			return reset, fmt.Errorf("failed to restore user %s: %w", u.Username, err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return reset, fmt.Errorf("failed to restore user %s: %w", u.Username, err)
		}
		if affected > 0 {
			reset++
			continue
		}

		// Roster account was deleted; recreate it.
		_, err = db.Exec(`
			INSERT INTO app_user (id, username, username_lower, password_hash, role, must_change_password, created_at)
			VALUES ($1, $2, $3, $4, $5, TRUE, $6)
		`, uuid.NewString(), u.Username, strings.ToLower(u.Username),
			auth.HashPassword(u.InitialPassword, passwordSalt), u.Role, time.Now())
		if err != nil {
			return reset, fmt.Errorf("failed to recreate user %s: %w", u.Username, err)
		}
		reset++
	}

	return reset, nil
}
