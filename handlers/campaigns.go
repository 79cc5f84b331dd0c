// Copyright (c) 2025 The Shop Houston.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/theshophouston/tsh-employee-of-month/auth"
	"github.com/theshophouston/tsh-employee-of-month/campaign"
	"github.com/theshophouston/tsh-employee-of-month/cliparse"
	"github.com/theshophouston/tsh-employee-of-month/middleware"
	"github.com/theshophouston/tsh-employee-of-month/models"
	"github.com/theshophouston/tsh-employee-of-month/period"
)

type CampaignHandler struct {
	db        *sql.DB
	cfg       cliparse.Config
	store     *campaign.Store
	ledger    *campaign.Ledger
	finalizer *campaign.Finalizer
	resolver  *period.Resolver
}

func NewCampaignHandler(database *sql.DB, cfg cliparse.Config, store *campaign.Store, ledger *campaign.Ledger, finalizer *campaign.Finalizer, resolver *period.Resolver) *CampaignHandler {
	return &CampaignHandler{db: database, cfg: cfg, store: store, ledger: ledger, finalizer: finalizer, resolver: resolver}
}

// viewFor shapes a campaign for the caller. Non-admins never see winners
// or counts while the campaign is open; that is a display rule, not an
// engine rule, so it lives here.
func viewFor(c models.Campaign, session *auth.Session) models.CampaignView {
	view := models.CampaignView{
		ID:              c.ID,
		MonthLabel:      c.MonthLabel,
		Status:          c.Status,
		StartAt:         c.StartAt,
		EndAt:           c.EndAt,
		FinalizedAt:     c.FinalizedAt,
		Winners:         c.Winners,
		ForcedFinalized: c.ForcedFinalized,
	}

	if c.Status == models.StatusOpen && session.Role != models.RoleAdmin {
		view.Winners = nil
		return view
	}

	count := c.WinningVoteCount
	view.WinningVoteCount = &count
	return view
}

// GetCurrent handles GET /api/campaigns/current
//
// Ensures the current month's campaign exists and opportunistically
// finalizes the previous month if its period elapsed unobserved.
func (h *CampaignHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	session, ok := requireUser(w, r, h.cfg.SessionSecret)
	if !ok {
		return
	}

	c, err := h.finalizer.Current(time.Now())
	if err != nil {
		slog.Error("failed to resolve current campaign", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, viewFor(c, session))
}

// Get handles GET /api/campaigns/{id}
func (h *CampaignHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, ok := requireUser(w, r, h.cfg.SessionSecret)
	if !ok {
		return
	}

	id := r.PathValue("id")
	c, err := h.store.Get(id)
	if errors.Is(err, campaign.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Campaign not found")
		return
	}
	if err != nil {
		slog.Error("failed to query campaign", "error", err, "campaign_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if session.Role != models.RoleAdmin {
		middleware.JSONResponse(w, http.StatusOK, viewFor(c, session))
		return
	}

	// Admins get the full ledger and per-candidate breakdown even while
	// the campaign is open.
	votes, err := h.ledger.ListAll(id)
	if err != nil {
		slog.Error("failed to list votes", "error", err, "campaign_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	counts := make(map[string]int)
	for _, v := range votes {
		counts[v.CandidateID]++
	}

	middleware.JSONResponse(w, http.StatusOK, models.CampaignAdminView{
		Campaign:   viewFor(c, session),
		TotalVotes: len(votes),
		VoteCounts: counts,
		Votes:      votes,
	})
}

// List handles GET /api/admin/campaigns
func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r, h.cfg.SessionSecret); !ok {
		return
	}

	campaigns, err := h.store.ListDescending()
	if err != nil {
		slog.Error("failed to list campaigns", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string][]models.Campaign{"campaigns": campaigns})
}

// campaignID returns the {id} path segment, or the current period's ID
// when the route has none (the /current variants).
func (h *CampaignHandler) campaignID(r *http.Request) string {
	if id := r.PathValue("id"); id != "" {
		return id
	}
	return h.resolver.Resolve(time.Now()).ID
}

// ForceFinalize handles POST /api/campaigns/current/force-finalize and
// POST /api/campaigns/{id}/force-finalize
func (h *CampaignHandler) ForceFinalize(w http.ResponseWriter, r *http.Request) {
	session, ok := requireAdmin(w, r, h.cfg.SessionSecret)
	if !ok {
		return
	}

	id := h.campaignID(r)
	result, err := h.finalizer.ForceFinalize(id, session.UserID, time.Now())
	if errors.Is(err, campaign.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Campaign does not exist yet")
		return
	}
	if err != nil {
		slog.Error("failed to force-finalize campaign", "error", err, "campaign_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to finalize campaign")
		return
	}

	if !result.AlreadyFinalized {
		slog.Info("campaign force-finalized",
			"campaign_id", id,
			"actor_id", session.UserID,
			"winners", result.Campaign.Winners,
		)
	}

	middleware.JSONResponse(w, http.StatusOK, models.ForceFinalizeResponse{
		OK:               true,
		CampaignID:       result.Campaign.ID,
		Status:           result.Campaign.Status,
		Winners:          result.Campaign.Winners,
		WinningVoteCount: result.Campaign.WinningVoteCount,
		Forced:           result.Campaign.ForcedFinalized,
		AlreadyFinalized: result.AlreadyFinalized,
	})
}

// Reset handles POST /api/campaigns/current/reset and
// POST /api/campaigns/{id}/reset
func (h *CampaignHandler) Reset(w http.ResponseWriter, r *http.Request) {
	session, ok := requireAdmin(w, r, h.cfg.SessionSecret)
	if !ok {
		return
	}

	id := h.campaignID(r)
	deleted, err := h.finalizer.Reset(id, session.UserID, time.Now())
	switch {
	case errors.Is(err, campaign.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Campaign does not exist yet")
		return
	case errors.Is(err, campaign.ErrNotForced):
		middleware.ErrorResponse(w, http.StatusConflict, "Reset is only allowed if this month was force finalized")
		return
	case err != nil:
		slog.Error("failed to reset campaign", "error", err, "campaign_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reset campaign")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResetCampaignResponse{
		OK:           true,
		CampaignID:   id,
		Status:       models.StatusOpen,
		DeletedVotes: deleted,
	})
}

// ResetVote handles POST /api/campaigns/{id}/votes/{voterId}/reset
func (h *CampaignHandler) ResetVote(w http.ResponseWriter, r *http.Request) {
	session, ok := requireAdmin(w, r, h.cfg.SessionSecret)
	if !ok {
		return
	}

	id := r.PathValue("id")
	voterID := r.PathValue("voterId")

	err := h.finalizer.ResetVote(id, voterID)
	switch {
	case errors.Is(err, campaign.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Campaign not found")
		return
	case errors.Is(err, campaign.ErrVoteNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Vote not found")
		return
	case err != nil:
		slog.Error("failed to reset vote", "error", err, "campaign_id", id, "voter_id", voterID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reset vote")
		return
	}

	slog.Info("vote reset", "campaign_id", id, "voter_id", voterID, "actor_id", session.UserID)

	middleware.JSONResponse(w, http.StatusOK, models.ResetVoteResponse{
		OK:      true,
		VoterID: voterID,
	})
}
