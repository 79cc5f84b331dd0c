// Copyright (c) 2025 The Shop Houston.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package campaign

import "errors"

// Typed rejections. Callers match these with errors.Is; anything else
// coming out of this package is a wrapped storage error and safe to retry.
var (
	// ErrNotFound means the campaign does not exist.
	ErrNotFound = errors.New("campaign not found")

	// ErrVoteNotFound means no vote exists for the given voter.
	ErrVoteNotFound = errors.New("vote not found")

	// ErrSelfVote means the voter tried to vote for themselves.
	ErrSelfVote = errors.New("cannot vote for yourself")

	// ErrCampaignClosed means a write was attempted against a finalized
	// campaign.
	ErrCampaignClosed = errors.New("campaign is finalized")

	// ErrNotForced means a reset was attempted on a campaign that was not
	// force-finalized. Naturally finalized campaigns stay closed.
	ErrNotForced = errors.New("campaign was not force-finalized")
)
