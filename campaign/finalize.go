// Copyright (c) 2025 The Shop Houston.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package campaign

import (
	"errors"
	"log/slog"
	"time"

	"github.com/theshophouston/tsh-employee-of-month/models"
	"github.com/theshophouston/tsh-employee-of-month/period"
)

// Finalizer orchestrates the campaign lifecycle: open → finalized
// (natural or forced), and finalized → open again along the forced path
// only. There is no background scheduler; an expired campaign stays open
// until the next request that touches its period triggers the lazy check
// in Current or FinalizeIfDue.
type Finalizer struct {
	store    *Store
	ledger   *Ledger
	resolver *period.Resolver
}

func NewFinalizer(store *Store, ledger *Ledger, resolver *period.Resolver) *Finalizer {
	return &Finalizer{store: store, ledger: ledger, resolver: resolver}
}

// FinalizeResult is the outcome of a finalize call. AlreadyFinalized
// reports that the campaign was finalized before the call and the stored
// result was returned unchanged.
type FinalizeResult struct {
	Campaign         models.Campaign
	AlreadyFinalized bool
}

// Current resolves the active period, lazily creates its campaign record,
// and opportunistically finalizes the previous period if it elapsed while
// nobody was looking.
func (f *Finalizer) Current(now time.Time) (models.Campaign, error) {
	p := f.resolver.Resolve(now)
	if err := f.store.Ensure(p); err != nil {
		return models.Campaign{}, err
	}

	prev := f.resolver.Previous(p)
	if err := f.FinalizeIfDue(prev.ID, now); err != nil {
		// The previous period may never have had a campaign; that is fine.
		if !errors.Is(err, ErrNotFound) {
			return models.Campaign{}, err
		}
	}

	return f.store.Get(p.ID)
}

// FinalizeIfDue performs the natural finalize when the campaign's period
// has elapsed and it is still open. No-op otherwise.
func (f *Finalizer) FinalizeIfDue(id string, now time.Time) error {
	c, err := f.store.Get(id)
	if err != nil {
		return err
	}

	if c.Status != models.StatusOpen || now.Before(c.EndAt) {
		return nil
	}

	result, err := f.finalize(c, false, "", now)
	if err != nil {
		return err
	}
	if !result.AlreadyFinalized {
		slog.Info("campaign finalized naturally",
			"campaign_id", id,
			"winners", result.Campaign.Winners,
			"winning_vote_count", result.Campaign.WinningVoteCount,
		)
	}
	return nil
}

// ForceFinalize closes the campaign early on an administrator's order.
// Idempotent: a second call returns the stored winners unchanged with
// AlreadyFinalized set, and performs no second tally write.
func (f *Finalizer) ForceFinalize(id, actorID string, now time.Time) (FinalizeResult, error) {
	c, err := f.store.Get(id)
	if err != nil {
		return FinalizeResult{}, err
	}
	return f.finalize(c, true, actorID, now)
}

func (f *Finalizer) finalize(c models.Campaign, forced bool, actorID string, now time.Time) (FinalizeResult, error) {
	if c.Status == models.StatusFinalized {
		return FinalizeResult{Campaign: c, AlreadyFinalized: true}, nil
	}

	votes, err := f.ledger.ListAll(c.ID)
	if err != nil {
		return FinalizeResult{}, err
	}

	maxCount, winners := Tally(votes)

	// A racing finalizer may beat this write; ApplyFinalization then
	// returns the winner's stored result with applied=false.
	stored, applied, err := f.store.ApplyFinalization(c.ID, winners, maxCount, forced, actorID, now)
	if err != nil {
		return FinalizeResult{}, err
	}

	return FinalizeResult{Campaign: stored, AlreadyFinalized: !applied}, nil
}

// Reset reopens a force-finalized campaign and empties its ledger,
// returning the number of votes deleted. The status flip commits before
// any vote is deleted; a crash in between leaves the campaign open with a
// stale ledger, and a re-run safely deletes the leftovers (or reports 0).
func (f *Finalizer) Reset(id, actorID string, now time.Time) (int, error) {
	if err := f.store.ApplyReset(id, actorID, now); err != nil {
		return 0, err
	}

	deleted, err := f.ledger.DeleteAll(id)
	if err != nil {
		return deleted, err
	}

	slog.Info("campaign reset", "campaign_id", id, "actor_id", actorID, "deleted_votes", deleted)
	return deleted, nil
}

// ResetVote removes a single voter's vote on an administrator's order.
// Allowed even on finalized campaigns; the ledger is otherwise read-only
// after finalize.
func (f *Finalizer) ResetVote(id, voterID string) error {
	if _, err := f.store.Get(id); err != nil {
		return err
	}
	return f.ledger.DeleteOne(id, voterID)
}
