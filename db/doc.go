// Copyright (c) 2025 The Shop Houston.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation and user seeding.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and
indexes. Timestamps are bound from Go rather than database defaults so
the same schema runs on PostgreSQL and SQLite.

# Tables

  - app_user: employee and admin accounts
  - campaign: one record per voting month, keyed by YYYY-MM
  - campaign_winner: winner set per finalized campaign
  - vote: one vote slot per voter per campaign

# Relationships

	campaign 1──* campaign_winner
	campaign 1──* vote

Foreign keys use ON DELETE CASCADE.

# Key Constraints

Two constraints carry engine invariants:

  - vote's (campaign_id, voter_id) primary key enforces at most one vote
    per voter per campaign by construction
  - campaign's id primary key plus ON CONFLICT DO NOTHING gives the
    write-if-absent that concurrent campaign creation requires

# Seeding

SeedUsersIfEmpty installs the initial roster (initial PINs, forced
password change). RestoreSeedUsers supports the admin database reset.
*/
package db
