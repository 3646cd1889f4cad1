package rappel_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pafreitas79/Salescommissiontracker/rappel"
)

func TestSummarize_Totals(t *testing.T) {
	// GIVEN: One paid and one unpaid entry with a recomputed bonus
	// WHEN: Summarizing
	// THEN: Paid total includes base plus bonus; balance is the remainder

	sp := rappel.Salesperson{
		ID:       "sp-1",
		Name:     "Ana",
		Email:    "ana@example.com",
		BaseRate: rappel.MustDecimal("30"),
	}

	paid := entry("c1", "sp-1", "15000", date(2024, time.January, 5))
	paid.Status = rappel.StatusPaid
	unpaid := entry("c2", "sp-1", "2000", date(2024, time.February, 5))
	unpaid.RappelBonus = rappel.MustDecimal("20")

	s := rappel.Summarize(sp, []rappel.Commission{paid, unpaid})

	assert.Equal(t, "17000", s.TotalRevenue.String())
	// base: 15000×30% + 2000×30% = 4500 + 600 = 5100
	assert.Equal(t, "5100", s.BaseCommission.String())
	assert.Equal(t, "20", s.RappelBonus.String())
	assert.Equal(t, "5120", s.TotalCommission.String())
	// paid entry: 4500 base + 0 bonus
	assert.Equal(t, "4500", s.TotalPaid.String())
	assert.Equal(t, "620", s.Balance.String())
	require.Len(t, s.History, 2)
}

func TestSummarize_IgnoresOtherSalespeople(t *testing.T) {
	sp := rappel.Salesperson{ID: "sp-1", Name: "Ana", BaseRate: rappel.MustDecimal("30")}

	s := rappel.Summarize(sp, []rappel.Commission{
		entry("c1", "sp-2", "90000", date(2024, time.January, 5)),
	})

	assert.True(t, s.TotalRevenue.IsZero())
	assert.Empty(t, s.History)
}

func TestSummarizeAll_OnePerSalesperson(t *testing.T) {
	people := []rappel.Salesperson{
		{ID: "sp-1", Name: "Ana", BaseRate: rappel.MustDecimal("30")},
		{ID: "sp-2", Name: "Ben", BaseRate: rappel.MustDecimal("25")},
	}
	commissions := []rappel.Commission{
		entry("c1", "sp-1", "1000", date(2024, time.January, 5)),
		entry("c2", "sp-2", "2000", date(2024, time.January, 6)),
	}

	summaries := rappel.SummarizeAll(people, commissions)

	require.Len(t, summaries, 2)
	assert.Equal(t, "1000", summaries[0].TotalRevenue.String())
	assert.Equal(t, "2000", summaries[1].TotalRevenue.String())
}
