package cliparse

import (
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://env-host/db")
	t.Setenv("SESSION_SECRET", "env-session-secret")
	t.Setenv("PASSWORD_SALT", "env-salt")
}

func TestParseFlags_Defaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_TYPE", "")
	t.Setenv("CAMPAIGN_TZ", "")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if cfg.Port != 3000 {
		t.Errorf("Expected default port 3000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("Expected default database type sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.Timezone != "America/Chicago" {
		t.Errorf("Expected default timezone America/Chicago, got %s", cfg.Timezone)
	}
	if cfg.DatabaseURL != "postgres://env-host/db" {
		t.Errorf("Expected database URL from env, got %s", cfg.DatabaseURL)
	}
}

func TestParseFlags_FlagsOverrideEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "4000")
	t.Setenv("DATABASE_TYPE", "sqlite")
	t.Setenv("CAMPAIGN_TZ", "America/New_York")

	cfg, err := ParseFlags([]string{
		"-p", "8080",
		"-d", "postgres://flag-host/db",
		"-t", "postgres",
		"-tz", "America/Chicago",
		"-session-secret", "flag-secret",
		"-password-salt", "flag-salt",
	})
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Expected flag port 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://flag-host/db" {
		t.Errorf("Expected flag database URL, got %s", cfg.DatabaseURL)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("Expected flag database type, got %s", cfg.DatabaseType)
	}
	if cfg.Timezone != "America/Chicago" {
		t.Errorf("Expected flag timezone, got %s", cfg.Timezone)
	}
	if cfg.SessionSecret != "flag-secret" || cfg.PasswordSalt != "flag-salt" {
		t.Errorf("Expected flag secrets, got %q / %q", cfg.SessionSecret, cfg.PasswordSalt)
	}
}

func TestParseFlags_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("PASSWORD_SALT", "salt")

	if _, err := ParseFlags(nil); err == nil {
		t.Error("Expected error for missing database URL")
	}
}

func TestParseFlags_MissingSecrets(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env-host/db")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("PASSWORD_SALT", "")

	if _, err := ParseFlags(nil); err == nil {
		t.Error("Expected error for missing session secret")
	}

	t.Setenv("SESSION_SECRET", "secret")
	if _, err := ParseFlags(nil); err == nil {
		t.Error("Expected error for missing password salt")
	}
}

func TestParseFlags_InvalidDatabaseType(t *testing.T) {
	setRequiredEnv(t)

	if _, err := ParseFlags([]string{"-t", "mysql"}); err == nil {
		t.Error("Expected error for unsupported database type")
	}
}

func TestParseFlags_InvalidPortEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "not-a-number")

	if _, err := ParseFlags(nil); err == nil {
		t.Error("Expected error for non-numeric PORT")
	}
}
