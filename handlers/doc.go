// Copyright (c) 2025 The Shop Houston.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Employee of the
Month API.

# Handler Types

Each handler is a struct with database, config, and engine dependencies:

  - AuthHandler: login, logout, session info, password change
  - VoteHandler: cast/replace the caller's vote
  - CampaignHandler: campaign views, force-finalize, resets, admin list
  - UserHandler: roster listing, admin user CRUD, database reset

Handlers are created via constructor functions that accept *sql.DB,
Config, and the campaign engine components:

	voteHandler := handlers.NewVoteHandler(db, cfg, store, ledger, resolver)

# Sessions

All routes except login are gated on the JWT session cookie. The shared
requireUser and requireAdmin helpers extract the session and write 401/403
when the caller lacks the needed role.

# Campaign Lifecycle

Campaigns are created lazily: the first vote or status query of a month
ensures the month's record. GET /api/campaigns/current also performs the
lazy natural-finalize check on the previous month, which is the only
mechanism that closes an expired campaign — there is no background timer.

# Display Policy

While a campaign is open, non-admin responses carry winners: null and no
counts. Admin responses always include the full breakdown. This is a
presentation rule enforced here, not in the campaign engine.
*/
package handlers
