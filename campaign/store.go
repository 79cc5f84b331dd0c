// Copyright (c) 2025 The Shop Houston.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package campaign

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/theshophouston/tsh-employee-of-month/models"
	"github.com/theshophouston/tsh-employee-of-month/period"
)

// Store owns campaign records, keyed by period ID.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Ensure creates the campaign record for p if it does not exist yet.
// ON CONFLICT DO NOTHING makes this safe under concurrent callers racing
// on the same period: exactly one insert wins and later calls never
// overwrite fields of an existing record.
func (s *Store) Ensure(p period.Period) error {
	_, err := s.db.Exec(`
		INSERT INTO campaign (id, month_label, status, start_at, end_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`, p.ID, p.Label, models.StatusOpen, p.StartAt, p.EndAt, time.Now())

	if err != nil {
		return fmt.Errorf("failed to ensure campaign %s: %w", p.ID, err)
	}
	return nil
}

// Get returns the campaign with the given period ID, including its winner
// set, or ErrNotFound.
func (s *Store) Get(id string) (models.Campaign, error) {
	var c models.Campaign
	err := s.db.QueryRow(`
		SELECT id, month_label, status, start_at, end_at, finalized_at,
		       winning_vote_count, forced_finalized, forced_finalized_at,
		       forced_finalized_by, created_at
		FROM campaign
		WHERE id = $1
	`, id).Scan(
		&c.ID, &c.MonthLabel, &c.Status, &c.StartAt, &c.EndAt, &c.FinalizedAt,
		&c.WinningVoteCount, &c.ForcedFinalized, &c.ForcedFinalizedAt,
		&c.ForcedFinalizedBy, &c.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return models.Campaign{}, ErrNotFound
	}
	if err != nil {
		return models.Campaign{}, fmt.Errorf("failed to query campaign %s: %w", id, err)
	}

	winners, err := s.winnersFor(id)
	if err != nil {
		return models.Campaign{}, err
	}
	c.Winners = winners

	return c, nil
}

// ListDescending returns all campaigns, most recent period first. Period
// IDs are zero-padded YYYY-MM so lexicographic order is period order.
func (s *Store) ListDescending() ([]models.Campaign, error) {
	rows, err := s.db.Query(`
		SELECT id, month_label, status, start_at, end_at, finalized_at,
		       winning_vote_count, forced_finalized, forced_finalized_at,
		       forced_finalized_by, created_at
		FROM campaign
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := []models.Campaign{}
	for rows.Next() {
		var c models.Campaign
		if err := rows.Scan(
			&c.ID, &c.MonthLabel, &c.Status, &c.StartAt, &c.EndAt, &c.FinalizedAt,
			&c.WinningVoteCount, &c.ForcedFinalized, &c.ForcedFinalizedAt,
			&c.ForcedFinalizedBy, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		c.Winners = []string{}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}

	winnerRows, err := s.db.Query(`SELECT campaign_id, user_id FROM campaign_winner ORDER BY campaign_id, user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query winners: %w", err)
	}
	defer winnerRows.Close()

	winnersByID := make(map[string][]string)
	for winnerRows.Next() {
		var campaignID, userID string
		if err := winnerRows.Scan(&campaignID, &userID); err != nil {
			return nil, fmt.Errorf("failed to scan winner: %w", err)
		}
		winnersByID[campaignID] = append(winnersByID[campaignID], userID)
	}
	if err := winnerRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query winners: %w", err)
	}

	for i := range campaigns {
		if w, ok := winnersByID[campaigns[i].ID]; ok {
			campaigns[i].Winners = w
		}
	}

	return campaigns, nil
}

// ApplyFinalization transitions the campaign to finalized and records the
// tally result. The status update is conditional on the campaign still
// being open, so two racing finalizers cannot double-apply: the loser
// observes zero rows affected and gets back the already-stored result with
// applied=false. Finalize is therefore idempotent, not an error, on an
// already-finalized campaign.
func (s *Store) ApplyFinalization(id string, winners []string, winningVoteCount int, forced bool, actorID string, now time.Time) (models.Campaign, bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return models.Campaign{}, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var res sql.Result
	if forced {
		res, err = tx.Exec(`
			UPDATE campaign
			SET status = $1, finalized_at = $2, winning_vote_count = $3,
			    forced_finalized = TRUE, forced_finalized_at = $2, forced_finalized_by = $4
			WHERE id = $5 AND status = $6
		`, models.StatusFinalized, now, winningVoteCount, actorID, id, models.StatusOpen)
	} else {
		res, err = tx.Exec(`
			UPDATE campaign
			SET status = $1, finalized_at = $2, winning_vote_count = $3
			WHERE id = $4 AND status = $5
		`, models.StatusFinalized, now, winningVoteCount, id, models.StatusOpen)
	}
	if err != nil {
		return models.Campaign{}, false, fmt.Errorf("failed to finalize campaign %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return models.Campaign{}, false, fmt.Errorf("failed to finalize campaign %s: %w", id, err)
	}

	if affected == 0 {
		// Lost the race or already finalized. Return the stored result.
		existing, err := s.Get(id)
		if err != nil {
			return models.Campaign{}, false, err
		}
		if existing.Status != models.StatusFinalized {
			return models.Campaign{}, false, fmt.Errorf("campaign %s not finalized but update matched no rows", id)
		}
		return existing, false, nil
	}

	// Winner rows ride in the same transaction as the status flip.
	if _, err := tx.Exec(`DELETE FROM campaign_winner WHERE campaign_id = $1`, id); err != nil {
		return models.Campaign{}, false, fmt.Errorf("failed to clear winners for %s: %w", id, err)
	}
	for _, userID := range winners {
		if _, err := tx.Exec(`
			INSERT INTO campaign_winner (campaign_id, user_id)
			VALUES ($1, $2)
		`, id, userID); err != nil {
			return models.Campaign{}, false, fmt.Errorf("failed to insert winner for %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Campaign{}, false, fmt.Errorf("failed to commit finalization of %s: %w", id, err)
	}

	c, err := s.Get(id)
	if err != nil {
		return models.Campaign{}, false, err
	}
	return c, true, nil
}

// ApplyReset reopens a force-finalized campaign, clearing its winner
// fields in place. Resetting a naturally finalized campaign fails with
// ErrNotForced: period-expired history must not be silently reopened.
//
// Resetting a campaign that is already open succeeds as a no-op, so a
// retry after a crash between the status flip and the ledger sweep can
// still reach the sweep and clean up stale votes.
func (s *Store) ApplyReset(id, actorID string, now time.Time) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE campaign
		SET status = $1, finalized_at = NULL, winning_vote_count = 0,
		    forced_finalized = FALSE, forced_finalized_at = NULL, forced_finalized_by = NULL,
		    reset_at = $2, reset_by = $3
		WHERE id = $4 AND forced_finalized = TRUE
	`, models.StatusOpen, now, actorID, id)
	if err != nil {
		return fmt.Errorf("failed to reset campaign %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to reset campaign %s: %w", id, err)
	}

	if affected == 0 {
		var status string
		err := tx.QueryRow(`SELECT status FROM campaign WHERE id = $1`, id).Scan(&status)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to check campaign %s: %w", id, err)
		}
		if status == models.StatusOpen {
			// Already open; nothing to flip. The caller still sweeps
			// the ledger, which may hold leftovers from an interrupted
			// earlier reset.
			return nil
		}
		return ErrNotForced
	}

	if _, err := tx.Exec(`DELETE FROM campaign_winner WHERE campaign_id = $1`, id); err != nil {
		return fmt.Errorf("failed to clear winners for %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reset of %s: %w", id, err)
	}
	return nil
}

func (s *Store) winnersFor(id string) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT user_id FROM campaign_winner
		WHERE campaign_id = $1
		ORDER BY user_id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query winners for %s: %w", id, err)
	}
	defer rows.Close()

	winners := []string{}
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan winner: %w", err)
		}
		winners = append(winners, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query winners for %s: %w", id, err)
	}

	return winners, nil
}
