// Copyright (c) 2025 The Shop Houston.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package campaign

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/theshophouston/tsh-employee-of-month/models"
)

// deleteBatchSize bounds a single DELETE statement so a full-campaign
// reset never exceeds the storage layer's appetite for one atomic delete.
const deleteBatchSize = 400

// Ledger owns per-campaign vote records, one slot per voter. The
// (campaign_id, voter_id) primary key enforces one vote per voter per
// campaign by construction.
type Ledger struct {
	db *sql.DB
}

func NewLedger(db *sql.DB) *Ledger {
	return &Ledger{db: db}
}

// Upsert writes or overwrites the voter's single slot for the campaign.
// A second submission by the same voter replaces the first: voters must
// be able to correct a mis-click before the period closes.
//
// Fails with ErrSelfVote when candidateID == voterID, ErrNotFound when
// the campaign does not exist, and ErrCampaignClosed when it is already
// finalized. The status check and the write share one transaction.
func (l *Ledger) Upsert(campaignID, voterID, candidateID, reason string, now time.Time) error {
	if candidateID == voterID {
		return ErrSelfVote
	}

	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRow(`SELECT status FROM campaign WHERE id = $1`, campaignID).Scan(&status)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query campaign %s: %w", campaignID, err)
	}

	if status != models.StatusOpen {
		return ErrCampaignClosed
	}

	_, err = tx.Exec(`
		INSERT INTO vote (campaign_id, voter_id, candidate_id, reason, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (campaign_id, voter_id) DO UPDATE
		SET candidate_id = $3, reason = $4, created_at = $5
	`, campaignID, voterID, candidateID, reason, now)
	if err != nil {
		return fmt.Errorf("failed to upsert vote for %s: %w", campaignID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit vote for %s: %w", campaignID, err)
	}
	return nil
}

// ListAll returns every vote in the campaign's ledger.
func (l *Ledger) ListAll(campaignID string) ([]models.Vote, error) {
	rows, err := l.db.Query(`
		SELECT campaign_id, voter_id, candidate_id, reason, created_at
		FROM vote
		WHERE campaign_id = $1
		ORDER BY voter_id
	`, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes for %s: %w", campaignID, err)
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.CampaignID, &v.VoterID, &v.CandidateID, &v.Reason, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query votes for %s: %w", campaignID, err)
	}

	return votes, nil
}

// DeleteOne removes a single voter's vote. Admin-only single-vote reset;
// allowed regardless of campaign status.
func (l *Ledger) DeleteOne(campaignID, voterID string) error {
	res, err := l.db.Exec(`
		DELETE FROM vote WHERE campaign_id = $1 AND voter_id = $2
	`, campaignID, voterID)
	if err != nil {
		return fmt.Errorf("failed to delete vote for %s: %w", campaignID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete vote for %s: %w", campaignID, err)
	}
	if affected == 0 {
		return ErrVoteNotFound
	}
	return nil
}

// DeleteAll empties the campaign's ledger in bounded batches and returns
// the total number of votes deleted. Each batch is a single atomic
// statement; re-running against an already-empty ledger returns 0, so the
// full-campaign reset path is safely retryable after a crash.
func (l *Ledger) DeleteAll(campaignID string) (int, error) {
	deleted := 0
	for {
		res, err := l.db.Exec(`
			DELETE FROM vote
			WHERE campaign_id = $1 AND voter_id IN (
				SELECT voter_id FROM vote WHERE campaign_id = $1 LIMIT $2
			)
		`, campaignID, deleteBatchSize)
		if err != nil {
			return deleted, fmt.Errorf("failed to delete votes for %s: %w", campaignID, err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return deleted, fmt.Errorf("failed to delete votes for %s: %w", campaignID, err)
		}

		deleted += int(affected)
		if affected < deleteBatchSize {
			return deleted, nil
		}
	}
}
