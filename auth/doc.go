// Copyright (c) 2025 The Shop Houston.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password digests and JWT session handling.

# Password Digests

Passwords are stored as HMAC-SHA256 digests keyed by a server-wide salt:

	hash := auth.HashPassword(password, salt)
	ok := auth.CheckPassword(storedHash, password, salt)

Since the digest is deterministic, login compares digests directly, and
comparison uses hmac.Equal to stay constant-time.

# Sessions

Sessions are HS256-signed JWTs valid for 30 days, carried in an HttpOnly
cookie named tsh_eom_session:

	token, err := auth.SignSession(session, secret, time.Now())
	auth.SetSessionCookie(w, token)

	session, err := auth.SessionFromRequest(r, secret)

Verification rejects bad signatures (ErrInvalidToken), expired tokens
(ErrSessionExpired), and requests without a cookie (ErrNoSession). The
claims carry the user's id, username, role, and must-change-password flag,
which is everything route gating needs without a database round trip.
*/
package auth
