/*
tiers.go - Tier ladder ordering and bonus resolution

PURPOSE:
  TierLadder wraps an unordered collection of RappelTier and exposes the
  descending-by-threshold view the resolver scans. Resolution returns the
  bonus percentage of the FIRST tier whose threshold is satisfied by the
  performance revenue, or zero when none qualifies.

DETERMINISM:
  The descending sort MUST be stable. When two tiers share a threshold, the
  one inserted first wins the scan, and that tie-break has to hold across
  repeated runs. sort.SliceStable is a hard requirement here, not an
  implementation detail — a plain sort.Slice would make equal-threshold
  resolution depend on incidental ordering.

VALIDATION:
  None. Negative thresholds and duplicate thresholds are accepted as given;
  callers are responsible for sane input.
*/
package rappel

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// TIER LADDER
// =============================================================================

// TierLadder is an ordered view over a set of rappel tiers.
type TierLadder struct {
	desc []RappelTier
}

// NewTierLadder builds a ladder from tiers in any order. The input slice is
// not retained or modified.
func NewTierLadder(tiers []RappelTier) TierLadder {
	desc := make([]RappelTier, len(tiers))
	copy(desc, tiers)

	// Stable: equal thresholds keep their insertion order.
	sort.SliceStable(desc, func(i, j int) bool {
		return desc[i].Threshold.GreaterThan(desc[j].Threshold)
	})

	return TierLadder{desc: desc}
}

// Descending returns the tiers ordered highest-threshold first.
func (l TierLadder) Descending() []RappelTier {
	out := make([]RappelTier, len(l.desc))
	copy(out, l.desc)
	return out
}

func (l TierLadder) Len() int { return len(l.desc) }

// Resolve returns the bonus percentage applicable to the given performance
// revenue: the first tier in descending-threshold order whose threshold is
// less than or equal to performance. If no tier qualifies, or the ladder is
// empty, the result is exactly zero.
func (l TierLadder) Resolve(performance decimal.Decimal) decimal.Decimal {
	for _, tier := range l.desc {
		if tier.Threshold.LessThanOrEqual(performance) {
			return tier.BonusPct
		}
	}
	return decimal.Zero
}

// DefaultTiers returns the starter ladder used when no tiers have been
// persisted yet.
func DefaultTiers() []RappelTier {
	return []RappelTier{
		{ID: "tier-1", Threshold: decimal.NewFromInt(10000), BonusPct: decimal.NewFromInt(1)},
		{ID: "tier-2", Threshold: decimal.NewFromInt(20000), BonusPct: decimal.NewFromInt(2)},
		{ID: "tier-3", Threshold: decimal.NewFromInt(50000), BonusPct: decimal.NewFromInt(3)},
	}
}
