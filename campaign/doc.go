// Copyright (c) 2025 The Shop Houston.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package campaign implements the campaign lifecycle and vote tally engine.

# Components

Four pieces, each constructed with an injected *sql.DB (no ambient
singletons):

  - Store: campaign records keyed by period ID. Idempotent Ensure
    (write-if-absent), Get, ListDescending, and the two atomic state
    transitions ApplyFinalization and ApplyReset.
  - Ledger: per-campaign votes, one slot per voter. Upsert with replace
    semantics, ListAll, DeleteOne, and batched DeleteAll.
  - Tally: pure vote set → (max count, winner set). Ties unresolved; all
    tied leaders win.
  - Finalizer: orchestrates the state machine across the other three.

# State Machine

	open --(natural or forced finalize)--> finalized
	finalized --(reset, forced path only)--> open

A natural finalize happens lazily when a request observes an open campaign
past its period end; there is no background timer. A forced finalize is an
administrator's early close and is the only finalize that Reset can undo.

# Idempotence

Every mutating operation is idempotent or safely re-invocable: Ensure
races converge on one record, finalize on an already-finalized campaign
returns the stored result without writing, and re-running Reset deletes
nothing and reports 0. A caller's blind retry on a transient storage
error is always correct.

# Errors

Logical precondition violations surface as typed sentinels (ErrSelfVote,
ErrCampaignClosed, ErrNotFound, ErrVoteNotFound, ErrNotForced) matched
with errors.Is. Everything else is a wrapped storage error, safe to retry.
*/
package campaign
