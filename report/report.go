/*
Package report renders derived documents from the aggregation view.

PURPOSE:
  Builds per-salesperson invoices (unpaid entries with base/bonus/line-total
  breakdown and a grand total due) and per-entry payment receipts (base
  commission, bonus, total paid) as PDF documents. Everything here is a pure
  read-only rendering of already-computed data; no new invariants.

DOCUMENT NUMBERS:
  Invoice and receipt numbers are generated at render time and are not
  persisted — these documents are produced on demand, not stored.
*/
package report

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pafreitas79/Salescommissiontracker/rappel"
)

// =============================================================================
// INVOICE
// =============================================================================

// InvoiceLine is one unpaid commission entry on an invoice.
type InvoiceLine struct {
	EntryDate rappel.Date
	DealID    string
	Revenue   decimal.Decimal
	Rate      decimal.Decimal
	Base      decimal.Decimal
	Bonus     decimal.Decimal
	LineTotal decimal.Decimal
}

// Invoice lists a salesperson's unpaid entries and the grand total due.
type Invoice struct {
	Number      string
	Date        rappel.Date
	Salesperson rappel.Salesperson
	Lines       []InvoiceLine
	BaseTotal   decimal.Decimal
	BonusTotal  decimal.Decimal
	TotalDue    decimal.Decimal
}

// BuildInvoice assembles an invoice from a sales summary. Only unpaid
// entries appear; the grand total matches the summary's balance due.
func BuildInvoice(summary rappel.SalesSummary) Invoice {
	inv := Invoice{
		Number:      "INV-" + shortID(),
		Date:        rappel.Today(),
		Salesperson: summary.Salesperson,
		BaseTotal:   decimal.Zero,
		BonusTotal:  decimal.Zero,
	}

	for _, c := range summary.History {
		if c.Status != rappel.StatusUnpaid {
			continue
		}
		line := InvoiceLine{
			EntryDate: c.EntryDate,
			DealID:    c.DealID,
			Revenue:   c.Revenue,
			Rate:      c.Rate,
			Base:      c.BaseAmount(),
			Bonus:     c.RappelBonus,
			LineTotal: c.TotalAmount(),
		}
		inv.Lines = append(inv.Lines, line)
		inv.BaseTotal = inv.BaseTotal.Add(line.Base)
		inv.BonusTotal = inv.BonusTotal.Add(line.Bonus)
	}

	inv.TotalDue = inv.BaseTotal.Add(inv.BonusTotal)
	return inv
}

// =============================================================================
// RECEIPT
// =============================================================================

// Receipt documents a single paid commission entry.
type Receipt struct {
	Number      string
	Date        rappel.Date
	Salesperson rappel.Salesperson
	Commission  rappel.Commission
	Base        decimal.Decimal
	Bonus       decimal.Decimal
	TotalPaid   decimal.Decimal
}

// BuildReceipt assembles a payment receipt for one commission entry.
func BuildReceipt(sp rappel.Salesperson, c rappel.Commission) Receipt {
	date := rappel.Today()
	if c.PaymentDate != nil {
		date = *c.PaymentDate
	}
	return Receipt{
		Number:      "RCPT-" + shortID(),
		Date:        date,
		Salesperson: sp,
		Commission:  c,
		Base:        c.BaseAmount(),
		Bonus:       c.RappelBonus,
		TotalPaid:   c.TotalAmount(),
	}
}

func shortID() string {
	return strings.ToUpper(strings.SplitN(uuid.NewString(), "-", 2)[0])
}
