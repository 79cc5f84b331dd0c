// Copyright (c) 2025 The Shop Houston.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/theshophouston/tsh-employee-of-month/campaign"
	"github.com/theshophouston/tsh-employee-of-month/cliparse"
	"github.com/theshophouston/tsh-employee-of-month/handlers"
	"github.com/theshophouston/tsh-employee-of-month/middleware"
	"github.com/theshophouston/tsh-employee-of-month/period"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, resolver *period.Resolver) *http.ServeMux {
	mux := http.NewServeMux()

	// Campaign engine components
	store := campaign.NewStore(db)
	ledger := campaign.NewLedger(db)
	finalizer := campaign.NewFinalizer(store, ledger, resolver)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	voteHandler := handlers.NewVoteHandler(db, cfg, store, ledger, resolver)
	campaignHandler := handlers.NewCampaignHandler(db, cfg, store, ledger, finalizer, resolver)
	userHandler := handlers.NewUserHandler(db, cfg, store, ledger)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Auth
	mux.HandleFunc("POST /api/auth/login", middleware.WithLogging(authHandler.Login))
	mux.HandleFunc("POST /api/auth/logout", middleware.WithLogging(authHandler.Logout))
	mux.HandleFunc("GET /api/auth/me", middleware.WithLogging(authHandler.Me))
	mux.HandleFunc("POST /api/auth/change-password", middleware.WithLogging(authHandler.ChangePassword))

	// Voting
	mux.HandleFunc("POST /api/votes", middleware.WithLogging(voteHandler.CastVote))

	// Campaigns ("current" routes must be registered before the {id}
	// variants only in spirit; the 1.22 mux prefers the literal segment)
	mux.HandleFunc("GET /api/campaigns/current", middleware.WithLogging(campaignHandler.GetCurrent))
	mux.HandleFunc("POST /api/campaigns/current/force-finalize", middleware.WithLogging(campaignHandler.ForceFinalize))
	mux.HandleFunc("POST /api/campaigns/current/reset", middleware.WithLogging(campaignHandler.Reset))
	mux.HandleFunc("GET /api/campaigns/{id}", middleware.WithLogging(campaignHandler.Get))
	mux.HandleFunc("POST /api/campaigns/{id}/force-finalize", middleware.WithLogging(campaignHandler.ForceFinalize))
	mux.HandleFunc("POST /api/campaigns/{id}/reset", middleware.WithLogging(campaignHandler.Reset))
	mux.HandleFunc("POST /api/campaigns/{id}/votes/{voterId}/reset", middleware.WithLogging(campaignHandler.ResetVote))

	// Admin
	mux.HandleFunc("GET /api/admin/campaigns", middleware.WithLogging(campaignHandler.List))
	mux.HandleFunc("GET /api/admin/users", middleware.WithLogging(userHandler.List))
	mux.HandleFunc("POST /api/admin/users", middleware.WithLogging(userHandler.Create))
	mux.HandleFunc("PATCH /api/admin/users/{id}", middleware.WithLogging(userHandler.Update))
	mux.HandleFunc("DELETE /api/admin/users/{id}", middleware.WithLogging(userHandler.Delete))
	mux.HandleFunc("POST /api/admin/reset-database", middleware.WithLogging(userHandler.ResetDatabase))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("tsh-employee-of-month API v1"))
	})

	return mux
}
