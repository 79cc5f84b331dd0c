// Copyright (c) 2025 The Shop Houston.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS. Timestamps are always
// bound from Go so the schema runs on both PostgreSQL and SQLite.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Users
CREATE TABLE IF NOT EXISTS app_user (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL,
    username_lower TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'employee' CHECK (role IN ('admin', 'employee')),
    must_change_password BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_app_user_username_lower ON app_user(username_lower);

-- Campaigns, one per period, keyed by zero-padded YYYY-MM
CREATE TABLE IF NOT EXISTS campaign (
    id TEXT PRIMARY KEY,
    month_label TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'finalized')),
    start_at TIMESTAMP NOT NULL,
    end_at TIMESTAMP NOT NULL,
    finalized_at TIMESTAMP,
    winning_vote_count INTEGER NOT NULL DEFAULT 0,
    forced_finalized BOOLEAN NOT NULL DEFAULT FALSE,
    forced_finalized_at TIMESTAMP,
    forced_finalized_by TEXT,
    reset_at TIMESTAMP,
    reset_by TEXT,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_campaign_status ON campaign(status);

-- Winner set per finalized campaign (empty when no votes were cast)
CREATE TABLE IF NOT EXISTS campaign_winner (
    campaign_id TEXT NOT NULL REFERENCES campaign(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL,
    PRIMARY KEY (campaign_id, user_id)
);

-- Votes, one slot per voter per campaign
CREATE TABLE IF NOT EXISTS vote (
    campaign_id TEXT NOT NULL REFERENCES campaign(id) ON DELETE CASCADE,
    voter_id TEXT NOT NULL,
    candidate_id TEXT NOT NULL,
    reason TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL,
    PRIMARY KEY (campaign_id, voter_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_campaign_id ON vote(campaign_id);
CREATE INDEX IF NOT EXISTS idx_vote_candidate ON vote(campaign_id, candidate_id);
`
