// Copyright (c) 2025 The Shop Houston.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Employee of the Month API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, resolver)

# Endpoints

Health:

	GET /health

Auth:

	POST /api/auth/login           - Log in (seeds roster on first use)
	POST /api/auth/logout          - Clear session cookie
	GET  /api/auth/me              - Current session principal
	POST /api/auth/change-password - Change own password

Voting (any authenticated user):

	POST /api/votes - Cast or replace this month's vote

Campaigns:

	GET  /api/campaigns/current                      - Current campaign (lazy finalize of last month)
	GET  /api/campaigns/{id}                         - Campaign view (admin: vote breakdown)
	POST /api/campaigns/current/force-finalize       - Admin early close
	POST /api/campaigns/{id}/force-finalize          - Admin early close, explicit month
	POST /api/campaigns/current/reset                - Admin reset (forced-finalized only)
	POST /api/campaigns/{id}/reset                   - Admin reset, explicit month
	POST /api/campaigns/{id}/votes/{voterId}/reset   - Admin single-vote reset

Admin:

	GET    /api/admin/campaigns      - All campaigns, most recent first
	GET    /api/admin/users          - User list (?public=1 for roster subset)
	POST   /api/admin/users          - Create user
	PATCH  /api/admin/users/{id}     - Update role/password
	DELETE /api/admin/users/{id}     - Delete user
	POST   /api/admin/reset-database - Wipe campaigns, restore seed roster

# Handler Initialization

The router builds the campaign engine (Store, Ledger, Finalizer) once and
injects it into the handlers:

	store := campaign.NewStore(db)
	ledger := campaign.NewLedger(db)
	finalizer := campaign.NewFinalizer(store, ledger, resolver)

All handlers receive the database connection and configuration.
*/
package router
