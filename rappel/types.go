/*
Package rappel provides the core commission recalculation engine.

PURPOSE:
  This package contains the domain model and algorithms for tracking sales
  commissions and computing performance-tiered "rappel" bonuses on top of a
  base commission. Everything here is pure computation: given the full
  commission history of a salesperson, a tier ladder, and a calculation
  method, the engine deterministically assigns a bonus amount to every entry.

KEY CONCEPTS IN THIS FILE (types.go):
  - Salesperson: identity, email, and base commission rate
  - Commission: a single revenue-generating entry with a derived rappel bonus
  - RappelTier: one (threshold, bonus-percentage) rung of the ladder
  - Method: how the performance window is measured (rolling vs ytd)

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal for all money and percentage math
  2. Derived data is engine-owned: Commission.RappelBonus is written only
     by Recompute; no other code path assigns it
  3. Snapshots in, snapshots out: operations take and return whole
     collections, never mutate shared state

SEE ALSO:
  - tiers.go:  Tier ladder ordering and bonus resolution
  - window.go: Performance window calculation
  - engine.go: Full-history recalculation
  - summary.go: Per-salesperson aggregation
*/
package rappel

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type SalespersonID string
type CommissionID string
type TierID string

// =============================================================================
// PAYMENT STATUS
// =============================================================================

type PaymentStatus string

const (
	StatusPaid   PaymentStatus = "Paid"
	StatusUnpaid PaymentStatus = "Unpaid"
)

// =============================================================================
// CALCULATION METHOD
// =============================================================================

// Method selects how performance revenue is windowed when resolving a
// commission's bonus tier.
type Method string

const (
	// MethodRolling measures the trailing 12 calendar months ending
	// immediately before the entry's date.
	MethodRolling Method = "rolling"

	// MethodYTD measures from January 1 of the entry's calendar year
	// through immediately before the entry's date.
	MethodYTD Method = "ytd"
)

// DefaultMethod is used when no method has been persisted.
const DefaultMethod = MethodRolling

// Valid reports whether m is a known calculation method.
func (m Method) Valid() bool {
	return m == MethodRolling || m == MethodYTD
}

// =============================================================================
// SALESPERSON
// =============================================================================

// Salesperson is the owner of commission entries. Email is unique across
// salespeople, compared case-insensitively. BaseRate is a percentage in
// [0, 100] snapshotted onto each new commission at creation time.
type Salesperson struct {
	ID       SalespersonID
	Name     string
	Email    string
	BaseRate decimal.Decimal
}

// DefaultBaseRate is the commission rate assigned to salespeople synthesized
// during import, when no rate is known.
var DefaultBaseRate = decimal.NewFromInt(30)

// =============================================================================
// COMMISSION
// =============================================================================

// Commission is a single revenue-generating entry.
//
// Rate is a snapshot of the owning salesperson's base rate at creation time;
// later edits to the salesperson do not touch existing entries.
//
// RappelBonus is a derived amount owned exclusively by Recompute. It is
// persisted alongside the entry but must always equal what the current tier
// ladder and method would produce given the entries strictly before it in
// chronological order.
type Commission struct {
	ID            CommissionID
	SalespersonID SalespersonID
	Revenue       decimal.Decimal
	DealID        string
	Rate          decimal.Decimal
	Status        PaymentStatus
	PaymentDate   *Date
	EntryDate     Date
	IsAdvance     bool
	RappelBonus   decimal.Decimal
}

// BaseAmount returns the base commission for this entry: revenue × rate / 100.
func (c Commission) BaseAmount() decimal.Decimal {
	return c.Revenue.Mul(c.Rate).Div(hundred)
}

// TotalAmount returns base commission plus rappel bonus.
func (c Commission) TotalAmount() decimal.Decimal {
	return c.BaseAmount().Add(c.RappelBonus)
}

// =============================================================================
// RAPPEL TIER
// =============================================================================

// RappelTier is one rung of the bonus ladder: once a salesperson's
// performance revenue reaches Threshold, BonusPct applies to the entry's
// revenue.
type RappelTier struct {
	ID        TierID
	Threshold decimal.Decimal
	BonusPct  decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// MustDecimal parses s as a decimal, returning zero on failure. Intended for
// constants and tests, not for untrusted input.
func MustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
