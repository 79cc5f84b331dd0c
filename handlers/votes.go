// Copyright (c) 2025 The Shop Houston.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/theshophouston/tsh-employee-of-month/campaign"
	"github.com/theshophouston/tsh-employee-of-month/cliparse"
	"github.com/theshophouston/tsh-employee-of-month/middleware"
	"github.com/theshophouston/tsh-employee-of-month/models"
	"github.com/theshophouston/tsh-employee-of-month/period"
)

type VoteHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	store    *campaign.Store
	ledger   *campaign.Ledger
	resolver *period.Resolver
}

func NewVoteHandler(database *sql.DB, cfg cliparse.Config, store *campaign.Store, ledger *campaign.Ledger, resolver *period.Resolver) *VoteHandler {
	return &VoteHandler{db: database, cfg: cfg, store: store, ledger: ledger, resolver: resolver}
}

// CastVote handles POST /api/votes
//
// One vote per voter per campaign; a re-submission replaces the earlier
// choice so voters can correct a mis-click before the period closes.
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	session, ok := requireUser(w, r, h.cfg.SessionSecret)
	if !ok {
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	candidateID := strings.TrimSpace(req.CandidateID)
	if candidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing candidate")
		return
	}

	if candidateID == session.UserID {
		middleware.ErrorResponse(w, http.StatusBadRequest, "You cannot vote for yourself")
		return
	}

	// A vote for an id that is not a real user is invalid, same as a
	// self-vote.
	var exists bool
	err := h.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM app_user WHERE id = $1)`, candidateID).Scan(&exists)
	if err != nil {
		slog.Error("failed to check candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown candidate")
		return
	}

	now := time.Now()
	p := h.resolver.Resolve(now)

	if err := h.store.Ensure(p); err != nil {
		slog.Error("failed to ensure campaign", "error", err, "campaign_id", p.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	err = h.ledger.Upsert(p.ID, session.UserID, candidateID, strings.TrimSpace(req.Reason), now)
	switch {
	case errors.Is(err, campaign.ErrSelfVote):
		middleware.ErrorResponse(w, http.StatusBadRequest, "You cannot vote for yourself")
		return
	case errors.Is(err, campaign.ErrCampaignClosed):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Voting is closed for this month")
		return
	case errors.Is(err, campaign.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Campaign not found")
		return
	case err != nil:
		slog.Error("failed to record vote", "error", err, "campaign_id", p.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	slog.Info("vote recorded", "campaign_id", p.ID, "voter_id", session.UserID)

	middleware.JSONResponse(w, http.StatusOK, models.CastVoteResponse{
		OK:         true,
		CampaignID: p.ID,
	})
}
