/*
summary.go - Per-salesperson aggregation view

PURPOSE:
  Derives display figures from the recalculated collections. This is a pure
  read-only projection: no mutation, no caching, recomputed on demand.

FIGURES:
  TotalRevenue:    sum of revenue over all entries
  BaseCommission:  sum of revenue × rate / 100
  RappelBonus:     sum of persisted bonus amounts
  TotalCommission: base + bonus
  TotalPaid:       sum of base + bonus over entries with status Paid
  Balance:         total commission − total paid
*/
package rappel

import "github.com/shopspring/decimal"

// =============================================================================
// SALES SUMMARY
// =============================================================================

// SalesSummary is the aggregation view for one salesperson.
type SalesSummary struct {
	Salesperson Salesperson

	TotalRevenue    decimal.Decimal
	BaseCommission  decimal.Decimal
	RappelBonus     decimal.Decimal
	TotalCommission decimal.Decimal
	TotalPaid       decimal.Decimal
	Balance         decimal.Decimal

	// History holds the salesperson's entries in input order.
	History []Commission
}

// Summarize builds the aggregation view for a single salesperson from the
// full commission collection.
func Summarize(sp Salesperson, commissions []Commission) SalesSummary {
	s := SalesSummary{
		Salesperson:     sp,
		TotalRevenue:    decimal.Zero,
		BaseCommission:  decimal.Zero,
		RappelBonus:     decimal.Zero,
		TotalCommission: decimal.Zero,
		TotalPaid:       decimal.Zero,
		Balance:         decimal.Zero,
	}

	for _, c := range commissions {
		if c.SalespersonID != sp.ID {
			continue
		}
		s.History = append(s.History, c)
		s.TotalRevenue = s.TotalRevenue.Add(c.Revenue)
		s.BaseCommission = s.BaseCommission.Add(c.BaseAmount())
		s.RappelBonus = s.RappelBonus.Add(c.RappelBonus)
		if c.Status == StatusPaid {
			s.TotalPaid = s.TotalPaid.Add(c.TotalAmount())
		}
	}

	s.TotalCommission = s.BaseCommission.Add(s.RappelBonus)
	s.Balance = s.TotalCommission.Sub(s.TotalPaid)
	return s
}

// SummarizeAll builds the aggregation view for every salesperson, in the
// order the salespeople are given.
func SummarizeAll(salespeople []Salesperson, commissions []Commission) []SalesSummary {
	out := make([]SalesSummary, len(salespeople))
	for i, sp := range salespeople {
		out[i] = Summarize(sp, commissions)
	}
	return out
}
