// Copyright (c) 2025 The Shop Houston.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Employee of the Month API
server.

The service runs a recurring monthly popularity vote: each calendar month
is one campaign, each employee casts at most one vote for a coworker, and
at month end (or on an admin's early close) the votes are tallied into a
winner set that may contain ties.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... SESSION_SECRET=... PASSWORD_SALT=... go run main.go

Or with flags:

	go run main.go -p 3000 -d "postgres://..." -t postgres

A .env file in the working directory is loaded automatically.

# Configuration

Required settings:

  - DATABASE_URL (-d): database connection string
  - SESSION_SECRET (--session-secret): secret for session JWT signing
  - PASSWORD_SALT (--password-salt): salt for password digests

Optional settings:

  - PORT (-p): server port (default: 3000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - CAMPAIGN_TZ (-tz): campaign timezone (default: America/Chicago)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - campaign: campaign store, vote ledger, tally, finalization state machine
  - period: timestamp → campaign period resolution
  - handlers: HTTP request handlers (auth, votes, campaigns, users)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: request/response types
  - auth: password digests and JWT sessions
  - db: schema creation and roster seeding
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
