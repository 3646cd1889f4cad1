package rappel_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pafreitas79/Salescommissiontracker/rappel"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func date(year int, month time.Month, day int) rappel.Date {
	return rappel.NewDate(year, month, day)
}

func entry(id string, person string, revenue string, entryDate rappel.Date) rappel.Commission {
	return rappel.Commission{
		ID:            rappel.CommissionID(id),
		SalespersonID: rappel.SalespersonID(person),
		Revenue:       rappel.MustDecimal(revenue),
		DealID:        "deal-" + id,
		Rate:          rappel.MustDecimal("30"),
		Status:        rappel.StatusUnpaid,
		EntryDate:     entryDate,
	}
}

func tier(id string, threshold, pct string) rappel.RappelTier {
	return rappel.RappelTier{
		ID:        rappel.TierID(id),
		Threshold: rappel.MustDecimal(threshold),
		BonusPct:  rappel.MustDecimal(pct),
	}
}

func ladder(tiers ...rappel.RappelTier) rappel.TierLadder {
	return rappel.NewTierLadder(tiers)
}

func bonusByID(t *testing.T, out []rappel.Commission, id string) string {
	t.Helper()
	for _, c := range out {
		if string(c.ID) == id {
			return c.RappelBonus.String()
		}
	}
	t.Fatalf("entry %q not in result", id)
	return ""
}

// =============================================================================
// WINDOW AND PREFIX SUM TESTS
// =============================================================================

func TestRecompute_FirstEntryGetsNoBonus(t *testing.T) {
	// GIVEN: A single entry and a ladder starting at 10,000
	// WHEN: Recomputing
	// THEN: No prior revenue exists inside the window, so bonus is zero

	l := ladder(tier("t1", "10000", "1"))
	out := rappel.Recompute([]rappel.Commission{
		entry("c1", "sp-1", "50000", date(2024, time.May, 1)),
	}, l, rappel.MethodRolling)

	require.Len(t, out, 1)
	assert.Equal(t, "0", bonusByID(t, out, "c1"))
}

func TestRecompute_OwnRevenueNeverCounts(t *testing.T) {
	// GIVEN: Two entries on the same date, each large enough to qualify
	//        the other if same-date revenue counted
	// WHEN: Recomputing rolling
	// THEN: The window end is exclusive of the entry date, so neither
	//       entry sees the other and both bonuses are zero

	l := ladder(tier("t1", "10000", "1"))
	out := rappel.Recompute([]rappel.Commission{
		entry("c1", "sp-1", "15000", date(2024, time.May, 1)),
		entry("c2", "sp-1", "15000", date(2024, time.May, 1)),
	}, l, rappel.MethodRolling)

	assert.Equal(t, "0", bonusByID(t, out, "c1"))
	assert.Equal(t, "0", bonusByID(t, out, "c2"))
}

func TestRecompute_PriorDayRevenueCounts(t *testing.T) {
	// GIVEN: 15,000 earned the day before a 2,000 entry
	// WHEN: Recomputing rolling with a 10,000/1% tier
	// THEN: The later entry qualifies and earns 2000 × 1% = 20

	l := ladder(tier("t1", "10000", "1"))
	out := rappel.Recompute([]rappel.Commission{
		entry("c1", "sp-1", "15000", date(2024, time.April, 30)),
		entry("c2", "sp-1", "2000", date(2024, time.May, 1)),
	}, l, rappel.MethodRolling)

	assert.Equal(t, "0", bonusByID(t, out, "c1"))
	assert.Equal(t, "20", bonusByID(t, out, "c2"))
}

func TestRecompute_RollingWindowStartInclusive(t *testing.T) {
	// GIVEN: An entry exactly one year before another
	// WHEN: Recomputing rolling
	// THEN: The window start is inclusive, so the old entry still counts

	l := ladder(tier("t1", "10000", "1"))
	out := rappel.Recompute([]rappel.Commission{
		entry("old", "sp-1", "12000", date(2023, time.May, 1)),
		entry("new", "sp-1", "1000", date(2024, time.May, 1)),
	}, l, rappel.MethodRolling)

	assert.Equal(t, "10", bonusByID(t, out, "new"))
}

func TestRecompute_RollingWindowDropsStaleRevenue(t *testing.T) {
	// GIVEN: Qualifying revenue more than a year before the entry
	// WHEN: Recomputing rolling
	// THEN: The stale entry is outside the window and the bonus is zero

	l := ladder(tier("t1", "10000", "1"))
	out := rappel.Recompute([]rappel.Commission{
		entry("old", "sp-1", "12000", date(2023, time.April, 30)),
		entry("new", "sp-1", "1000", date(2024, time.May, 1)),
	}, l, rappel.MethodRolling)

	assert.Equal(t, "0", bonusByID(t, out, "new"))
}

func TestRecompute_MethodsDiverge(t *testing.T) {
	// GIVEN: Revenue split across a year boundary:
	//        9,000 on 2023-06-01, 5,000 on 2024-04-01, 2,000 on 2024-05-01
	// WHEN: Recomputing under each method with tiers 10,000/1% and 20,000/2%
	// THEN: Rolling sees 14,000 before the last entry (1% → 20),
	//       YTD sees only 5,000 (below every tier → 0)

	l := ladder(tier("t1", "10000", "1"), tier("t2", "20000", "2"))
	commissions := []rappel.Commission{
		entry("c1", "sp-1", "9000", date(2023, time.June, 1)),
		entry("c2", "sp-1", "5000", date(2024, time.April, 1)),
		entry("c3", "sp-1", "2000", date(2024, time.May, 1)),
	}

	rolling := rappel.Recompute(commissions, l, rappel.MethodRolling)
	assert.Equal(t, "20", bonusByID(t, rolling, "c3"))

	ytd := rappel.Recompute(commissions, l, rappel.MethodYTD)
	assert.Equal(t, "0", bonusByID(t, ytd, "c3"))
}

func TestRecompute_YTDWindowStartsJanuaryFirst(t *testing.T) {
	// GIVEN: Revenue on Jan 1 of the entry's year and in the prior December
	// WHEN: Recomputing YTD
	// THEN: Only the Jan 1 revenue counts

	l := ladder(tier("t1", "10000", "1"))
	out := rappel.Recompute([]rappel.Commission{
		entry("dec", "sp-1", "50000", date(2023, time.December, 31)),
		entry("jan", "sp-1", "11000", date(2024, time.January, 1)),
		entry("feb", "sp-1", "1000", date(2024, time.February, 1)),
	}, l, rappel.MethodYTD)

	// jan sees nothing from 2023; feb sees jan's 11,000
	assert.Equal(t, "0", bonusByID(t, out, "jan"))
	assert.Equal(t, "10", bonusByID(t, out, "feb"))
}

// =============================================================================
// TIER RESOLUTION TESTS
// =============================================================================

func TestRecompute_ThresholdMetExactly(t *testing.T) {
	// GIVEN: Prior revenue exactly equal to a tier threshold
	// WHEN: Recomputing
	// THEN: The tier applies (threshold is inclusive)

	l := ladder(tier("t1", "10000", "1"))
	out := rappel.Recompute([]rappel.Commission{
		entry("c1", "sp-1", "10000", date(2024, time.January, 10)),
		entry("c2", "sp-1", "3000", date(2024, time.March, 10)),
	}, l, rappel.MethodRolling)

	assert.Equal(t, "30", bonusByID(t, out, "c2"))
}

func TestRecompute_HighestQualifyingTierWins(t *testing.T) {
	// GIVEN: Prior revenue past the second of three tiers
	// WHEN: Recomputing
	// THEN: The highest reached tier's percentage applies, not a sum of tiers

	l := ladder(tier("t1", "10000", "1"), tier("t2", "20000", "2"), tier("t3", "50000", "3"))
	out := rappel.Recompute([]rappel.Commission{
		entry("c1", "sp-1", "25000", date(2024, time.January, 10)),
		entry("c2", "sp-1", "4000", date(2024, time.March, 10)),
	}, l, rappel.MethodRolling)

	// 25,000 reaches the 20,000 tier: 4000 × 2% = 80
	assert.Equal(t, "80", bonusByID(t, out, "c2"))
}

func TestRecompute_EqualThresholds_FirstInsertedWins(t *testing.T) {
	// GIVEN: Two tiers with the same threshold, 1% inserted before 5%
	// WHEN: Recomputing past that threshold
	// THEN: The first-inserted tier resolves (stable ordering)

	l := ladder(tier("a", "10000", "1"), tier("b", "10000", "5"))
	out := rappel.Recompute([]rappel.Commission{
		entry("c1", "sp-1", "12000", date(2024, time.January, 10)),
		entry("c2", "sp-1", "1000", date(2024, time.March, 10)),
	}, l, rappel.MethodRolling)

	assert.Equal(t, "10", bonusByID(t, out, "c2"))
}

func TestRecompute_EmptyLadderZeroesBonuses(t *testing.T) {
	// GIVEN: Entries with stale non-zero bonuses and no tiers
	// WHEN: Recomputing
	// THEN: Every bonus is reset to zero

	stale := entry("c1", "sp-1", "90000", date(2024, time.January, 10))
	stale.RappelBonus = rappel.MustDecimal("999")

	out := rappel.Recompute([]rappel.Commission{stale}, ladder(), rappel.MethodRolling)
	assert.Equal(t, "0", bonusByID(t, out, "c1"))
}

// =============================================================================
// PARTITIONING AND DETERMINISM TESTS
// =============================================================================

func TestRecompute_PartitionsBySalesperson(t *testing.T) {
	// GIVEN: Heavy revenue from a different salesperson
	// WHEN: Recomputing
	// THEN: The other salesperson's revenue never leaks into this one's window

	l := ladder(tier("t1", "10000", "1"))
	out := rappel.Recompute([]rappel.Commission{
		entry("other", "sp-2", "90000", date(2024, time.January, 10)),
		entry("mine", "sp-1", "5000", date(2024, time.March, 10)),
	}, l, rappel.MethodRolling)

	assert.Equal(t, "0", bonusByID(t, out, "mine"))
}

func TestRecompute_InputOrderIrrelevant(t *testing.T) {
	// GIVEN: The same entries in two different input orders
	// WHEN: Recomputing both
	// THEN: Each entry's bonus matches by ID

	l := ladder(tier("t1", "10000", "1"), tier("t2", "20000", "2"))
	a := entry("c1", "sp-1", "11000", date(2024, time.January, 5))
	b := entry("c2", "sp-1", "12000", date(2024, time.February, 5))
	c := entry("c3", "sp-1", "3000", date(2024, time.March, 5))

	forward := rappel.Recompute([]rappel.Commission{a, b, c}, l, rappel.MethodRolling)
	backward := rappel.Recompute([]rappel.Commission{c, b, a}, l, rappel.MethodRolling)

	for _, id := range []string{"c1", "c2", "c3"} {
		assert.Equal(t, bonusByID(t, forward, id), bonusByID(t, backward, id), "entry %s", id)
	}
}

func TestRecompute_Idempotent(t *testing.T) {
	// GIVEN: The output of one recompute pass
	// WHEN: Recomputing again under identical configuration
	// THEN: Every bonus is unchanged

	l := ladder(tier("t1", "10000", "1"), tier("t2", "20000", "2"))
	commissions := []rappel.Commission{
		entry("c1", "sp-1", "11000", date(2024, time.January, 5)),
		entry("c2", "sp-1", "12000", date(2024, time.February, 5)),
		entry("c3", "sp-2", "25000", date(2024, time.February, 10)),
		entry("c4", "sp-1", "3000", date(2024, time.March, 5)),
		entry("c5", "sp-2", "1000", date(2024, time.April, 5)),
	}

	once := rappel.Recompute(commissions, l, rappel.MethodRolling)
	twice := rappel.Recompute(once, l, rappel.MethodRolling)

	require.Len(t, twice, len(once))
	for _, c := range once {
		assert.Equal(t, c.RappelBonus.String(), bonusByID(t, twice, string(c.ID)))
	}
}

func TestRecompute_DoesNotMutateInput(t *testing.T) {
	// GIVEN: An input slice with zero bonuses
	// WHEN: Recomputing produces non-zero bonuses
	// THEN: The caller's slice is untouched

	l := ladder(tier("t1", "10000", "1"))
	in := []rappel.Commission{
		entry("c1", "sp-1", "15000", date(2024, time.January, 5)),
		entry("c2", "sp-1", "2000", date(2024, time.February, 5)),
	}

	out := rappel.Recompute(in, l, rappel.MethodRolling)

	assert.Equal(t, "20", bonusByID(t, out, "c2"))
	assert.True(t, in[1].RappelBonus.IsZero(), "input slice mutated")
}

// =============================================================================
// WINDOW UNIT TESTS
// =============================================================================

func TestWindowFor_Rolling(t *testing.T) {
	w := rappel.WindowFor(date(2024, time.May, 15), rappel.MethodRolling)

	assert.True(t, w.Contains(date(2023, time.May, 15)), "start is inclusive")
	assert.True(t, w.Contains(date(2024, time.May, 14)))
	assert.False(t, w.Contains(date(2024, time.May, 15)), "end is exclusive")
	assert.False(t, w.Contains(date(2023, time.May, 14)))
}

func TestWindowFor_YTD(t *testing.T) {
	w := rappel.WindowFor(date(2024, time.May, 15), rappel.MethodYTD)

	assert.True(t, w.Contains(date(2024, time.January, 1)))
	assert.False(t, w.Contains(date(2023, time.December, 31)))
	assert.False(t, w.Contains(date(2024, time.May, 15)))
}

func TestWindowFor_LeapDayNormalizes(t *testing.T) {
	// Feb 29 minus one year lands on Mar 1 per time.AddDate normalization
	w := rappel.WindowFor(date(2024, time.February, 29), rappel.MethodRolling)

	assert.True(t, w.Contains(date(2023, time.March, 1)))
	assert.False(t, w.Contains(date(2023, time.February, 28)))
}
