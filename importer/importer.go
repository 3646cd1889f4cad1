/*
Package importer merges externally supplied commission rows into the
salesperson and commission collections.

PURPOSE:
  Takes rows already tokenized from a CSV file (or any other source) and
  reconciles them against the existing collections: matching salespeople by
  case-insensitive email, synthesizing new ones on demand, snapshotting the
  matched person's current base rate onto each new entry, and finally
  delegating to the recalculation engine so every bonus in the system is
  consistent with the grown history.

FAILURE MODEL:
  Row validation failures are LOCAL. A malformed row is skipped and counted;
  the batch always runs to completion. Reconcile itself cannot fail.

IDEMPOTENCE:
  Re-importing the same file is NOT idempotent. Matching is by email only,
  so repeated rows create duplicate commission entries. This is a known,
  documented limitation — deduplication by deal identifier would be an
  explicit extension, not a silent fix.
*/
package importer

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pafreitas79/Salescommissiontracker/rappel"
)

// =============================================================================
// ROW - Strictly-typed intermediate record for one parsed CSV line
// =============================================================================

// Row is one post-parse import record. All fields are raw strings; Reconcile
// coerces and validates them, skipping rows that fail.
type Row struct {
	Email       string // required
	Name        string // optional; email is used when absent
	Revenue     string // required, numeric
	DealID      string // required
	EntryDate   string // required, ISO calendar date
	Status      string // required, "paid"/"unpaid" (case-insensitive)
	PaymentDate string // optional, ISO calendar date
}

// Stats reports the outcome of a reconciliation batch.
type Stats struct {
	Imported           int
	SalespeopleCreated int
	RowsFailed         int
}

// Result carries the updated collections plus batch statistics.
type Result struct {
	Salespeople []rappel.Salesperson
	Commissions []rappel.Commission
	Stats       Stats
}

// =============================================================================
// RECONCILER
// =============================================================================

// Reconciler merges import rows into existing collections and recomputes
// every bonus afterwards.
type Reconciler struct {
	// Now supplies "today" for defaulted payment dates. Overridable in tests.
	Now func() rappel.Date

	// NewID generates identities for synthesized records.
	NewID func() string
}

func NewReconciler() *Reconciler {
	return &Reconciler{
		Now:   rappel.Today,
		NewID: uuid.NewString,
	}
}

// Reconcile processes rows against the given collections and returns updated
// copies. The inputs are not modified. The returned commissions have been
// fully recomputed under the given ladder and method.
func (r *Reconciler) Reconcile(
	salespeople []rappel.Salesperson,
	commissions []rappel.Commission,
	rows []Row,
	ladder rappel.TierLadder,
	method rappel.Method,
) Result {
	people := append([]rappel.Salesperson(nil), salespeople...)
	entries := append([]rappel.Commission(nil), commissions...)

	byEmail := make(map[string]int, len(people))
	for i, sp := range people {
		byEmail[strings.ToLower(sp.Email)] = i
	}

	var stats Stats
	for _, row := range rows {
		parsed, ok := r.parseRow(row)
		if !ok {
			stats.RowsFailed++
			continue
		}

		idx, exists := byEmail[strings.ToLower(parsed.email)]
		if !exists {
			sp := rappel.Salesperson{
				ID:       rappel.SalespersonID(r.NewID()),
				Name:     parsed.name,
				Email:    parsed.email,
				BaseRate: rappel.DefaultBaseRate,
			}
			people = append(people, sp)
			idx = len(people) - 1
			byEmail[strings.ToLower(sp.Email)] = idx
			stats.SalespeopleCreated++
		}

		owner := people[idx]
		entries = append(entries, rappel.Commission{
			ID:            rappel.CommissionID(r.NewID()),
			SalespersonID: owner.ID,
			Revenue:       parsed.revenue,
			DealID:        parsed.dealID,
			Rate:          owner.BaseRate, // snapshot, not any rate from the row
			Status:        parsed.status,
			PaymentDate:   parsed.paymentDate,
			EntryDate:     parsed.entryDate,
			RappelBonus:   decimal.Zero, // placeholder, overwritten below
		})
		stats.Imported++
	}

	entries = rappel.Recompute(entries, ladder, method)

	return Result{Salespeople: people, Commissions: entries, Stats: stats}
}

// =============================================================================
// ROW PARSING
// =============================================================================

type parsedRow struct {
	email       string
	name        string
	revenue     decimal.Decimal
	dealID      string
	entryDate   rappel.Date
	status      rappel.PaymentStatus
	paymentDate *rappel.Date
}

func (r *Reconciler) parseRow(row Row) (parsedRow, bool) {
	email := strings.TrimSpace(row.Email)
	dealID := strings.TrimSpace(row.DealID)
	status := strings.TrimSpace(row.Status)

	if email == "" || dealID == "" || status == "" {
		return parsedRow{}, false
	}

	revenue, err := decimal.NewFromString(strings.TrimSpace(row.Revenue))
	if err != nil || revenue.IsNegative() {
		return parsedRow{}, false
	}

	entryDate, err := rappel.ParseDate(strings.TrimSpace(row.EntryDate))
	if err != nil {
		return parsedRow{}, false
	}

	p := parsedRow{
		email:     email,
		name:      strings.TrimSpace(row.Name),
		revenue:   revenue,
		dealID:    dealID,
		entryDate: entryDate,
		status:    rappel.StatusUnpaid,
	}
	if p.name == "" {
		p.name = email
	}

	if strings.EqualFold(status, "paid") {
		p.status = rappel.StatusPaid
		if pd := strings.TrimSpace(row.PaymentDate); pd != "" {
			d, err := rappel.ParseDate(pd)
			if err != nil {
				return parsedRow{}, false
			}
			p.paymentDate = &d
		} else {
			today := r.Now()
			p.paymentDate = &today
		}
	}

	return p, true
}
