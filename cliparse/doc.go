// Copyright (c) 2025 The Shop Houston.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3000)
  - DatabaseURL: database connection string (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - SessionSecret: secret for session JWT signing (required)
  - PasswordSalt: salt for password digests (required)
  - Timezone: IANA timezone for campaign boundaries (default: America/Chicago)

# CLI Flags

	-p                Server port
	-d                Database URL
	-t                Database type
	-tz               Campaign timezone
	--session-secret  Session JWT secret
	--password-salt   Password digest salt

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	CAMPAIGN_TZ    → -tz
	SESSION_SECRET → --session-secret
	PASSWORD_SALT  → --password-salt

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - SESSION_SECRET must be provided
  - PASSWORD_SALT must be provided
  - DATABASE_TYPE, when set, must be sqlite or postgres
*/
package cliparse
