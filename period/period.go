// Copyright (c) 2025 The Shop Houston.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package period

import (
	"fmt"
	"time"
)

// DefaultTimezone is the civil timezone all campaign boundaries are
// computed in, regardless of caller locale.
const DefaultTimezone = "America/Chicago"

// Period is one calendar month in the canonical timezone. EndAt is
// exclusive: the period covers [StartAt, EndAt).
type Period struct {
	ID      string // zero-padded YYYY-MM, sorts in period order
	Label   string // e.g. "January 2026"
	StartAt time.Time
	EndAt   time.Time
}

// Resolver maps timestamps to campaign periods. Resolution is pure and
// deterministic: the same timestamp always yields the same period.
type Resolver struct {
	loc *time.Location
}

// NewResolver creates a Resolver for the named timezone.
func NewResolver(tz string) (*Resolver, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", tz, err)
	}
	return &Resolver{loc: loc}, nil
}

// Resolve returns the period containing t.
func (r *Resolver) Resolve(t time.Time) Period {
	local := t.In(r.loc)
	year, month := local.Year(), local.Month()

	start := time.Date(year, month, 1, 0, 0, 0, 0, r.loc)
	end := start.AddDate(0, 1, 0)

	return Period{
		ID:      fmt.Sprintf("%04d-%02d", year, int(month)),
		Label:   start.Format("January 2006"),
		StartAt: start,
		EndAt:   end,
	}
}

// Previous returns the period immediately before p.
func (r *Resolver) Previous(p Period) Period {
	// StartAt is the first instant of p's month, so stepping back one
	// second lands inside the prior month.
	return r.Resolve(p.StartAt.Add(-time.Second))
}
