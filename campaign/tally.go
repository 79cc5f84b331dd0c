// Copyright (c) 2025 The Shop Houston.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package campaign

import (
	"sort"

	"github.com/theshophouston/tsh-employee-of-month/models"
)

// Tally counts candidate occurrences across the vote set and returns the
// max count plus every candidate attaining it. Plurality only: all tied
// leaders are winners, no tie-break. An empty vote set yields (0, empty),
// not "all candidates tied at zero".
//
// Pure and order-independent: the same multiset of votes always produces
// the same result, and the winner slice comes back sorted.
func Tally(votes []models.Vote) (int, []string) {
	counts := make(map[string]int)
	for _, v := range votes {
		counts[v.CandidateID]++
	}

	max := 0
	for _, n := range counts {
		if n > max {
			max = n
		}
	}

	winners := []string{}
	if max > 0 {
		for candidate, n := range counts {
			if n == max {
				winners = append(winners, candidate)
			}
		}
		sort.Strings(winners)
	}

	return max, winners
}
