// Copyright (c) 2025 The Shop Houston.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the session cookie used by the web frontend.
const CookieName = "tsh_eom_session"

// sessionTTL matches the original 30-day login window.
const sessionTTL = 30 * 24 * time.Hour

var (
	ErrInvalidToken   = errors.New("invalid session token")
	ErrNoSession      = errors.New("no session")
	ErrSessionExpired = errors.New("session expired")
)

// Session identifies an authenticated principal.
type Session struct {
	UserID             string `json:"userId"`
	Username           string `json:"username"`
	Role               string `json:"role"`
	MustChangePassword bool   `json:"mustChangePassword"`
}

// sessionClaims is the internal claims type used for JWT parsing.
type sessionClaims struct {
	jwt.RegisteredClaims
	Username           string `json:"username"`
	Role               string `json:"role"`
	MustChangePassword bool   `json:"mustChangePassword"`
}

// HashPassword creates an HMAC-SHA256 digest of the password keyed by the
// server-wide salt. Deterministic, so login compares digests directly.
func HashPassword(password, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(password))
	return hex.EncodeToString(h.Sum(nil))
}

// CheckPassword reports whether password hashes to the stored digest.
func CheckPassword(storedHash, password, salt string) bool {
	expected := HashPassword(password, salt)
	return hmac.Equal([]byte(storedHash), []byte(expected))
}

// SignSession creates a signed session token for the user, valid for 30 days.
func SignSession(s Session, secret string, now time.Time) (string, error) {
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
		Username:           s.Username,
		Role:               s.Role,
		MustChangePassword: s.MustChangePassword,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, nil
}

// VerifySessionToken parses and validates a session token.
func VerifySessionToken(token, secret string) (*Session, error) {
	var parsed sessionClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrSessionExpired
		}
		return nil, ErrInvalidToken
	}

	if parsed.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &Session{
		UserID:             parsed.Subject,
		Username:           parsed.Username,
		Role:               parsed.Role,
		MustChangePassword: parsed.MustChangePassword,
	}, nil
}

// SetSessionCookie attaches the session token as an HttpOnly cookie.
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// SessionFromRequest extracts and verifies the session cookie.
func SessionFromRequest(r *http.Request, secret string) (*Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrNoSession
	}
	return VerifySessionToken(cookie.Value, secret)
}
