// Copyright (c) 2025 The Shop Houston.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package period maps timestamps to campaign periods.

A period is one calendar month in a single canonical civil timezone
(America/Chicago), so "the current campaign" is unambiguous no matter
where a request comes from:

	resolver, err := period.NewResolver(period.DefaultTimezone)
	p := resolver.Resolve(time.Now())
	// p.ID      == "2026-08"
	// p.StartAt == Aug 1 00:00:00 CDT
	// p.EndAt   == Sep 1 00:00:00 CDT (exclusive)

Period IDs are zero-padded YYYY-MM, so lexicographic order is period
order and "most recent campaign" is a simple ORDER BY id DESC.

Resolution is pure: no storage, no side effects, no error conditions for
any valid timestamp.
*/
package period
