/*
engine.go - Full-history bonus recalculation

PURPOSE:
  Recompute is the single writer of Commission.RappelBonus. Given every
  commission entry in the system, the current tier ladder, and the
  calculation method, it assigns a bonus amount to every entry and returns
  a fully consistent collection.

ALGORITHM:
  1. Partition entries by salesperson.
  2. Within each partition, stable-sort by entry date ascending. Entries
     sharing a date keep their pre-sort relative order, which makes
     "strictly prior" well-defined: for the entry at position i, history
     is positions [0, i).
  3. For each entry in order: derive its performance window, sum the
     revenue of prior entries whose date falls inside the window, resolve
     the bonus percentage against that sum, and set
     bonus = revenue × pct / 100.
  4. Concatenate partitions. Output order carries no meaning to consumers.

GUARANTEES:
  - Total: every input entry appears exactly once in the output with a
    bonus value; there is no failure mode for well-typed input.
  - Idempotent: decimal arithmetic with a single multiplication per entry
    means repeated runs with the same ladder/method produce identical
    values, bit for bit.

TRIGGER POLICY (enforced by the tracker package):
  Recompute runs synchronously after tier replacement, method change, and
  commission add/import. Payment-status toggles do NOT trigger it — they
  change payment bookkeeping, never historical revenue.
*/
package rappel

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// RECALCULATION ENGINE
// =============================================================================

// Recompute assigns a rappel bonus to every commission entry. The input
// slice is not modified; the returned slice holds updated copies grouped by
// salesperson, in chronological order within each group.
func Recompute(commissions []Commission, ladder TierLadder, method Method) []Commission {
	byPerson := make(map[SalespersonID][]Commission)
	var order []SalespersonID
	for _, c := range commissions {
		if _, seen := byPerson[c.SalespersonID]; !seen {
			order = append(order, c.SalespersonID)
		}
		byPerson[c.SalespersonID] = append(byPerson[c.SalespersonID], c)
	}

	out := make([]Commission, 0, len(commissions))
	for _, id := range order {
		out = append(out, recomputePartition(byPerson[id], ladder, method)...)
	}
	return out
}

func recomputePartition(entries []Commission, ladder TierLadder, method Method) []Commission {
	// Stable: same-date entries keep their incoming relative order, so the
	// prefix below is deterministic.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].EntryDate.Before(entries[j].EntryDate)
	})

	for i := range entries {
		window := WindowFor(entries[i].EntryDate, method)

		performance := decimal.Zero
		for _, prior := range entries[:i] {
			if window.Contains(prior.EntryDate) {
				performance = performance.Add(prior.Revenue)
			}
		}

		pct := ladder.Resolve(performance)
		entries[i].RappelBonus = entries[i].Revenue.Mul(pct).Div(hundred)
	}
	return entries
}
