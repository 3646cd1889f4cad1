package report_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pafreitas79/Salescommissiontracker/rappel"
	"github.com/pafreitas79/Salescommissiontracker/report"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func testSalesperson() rappel.Salesperson {
	return rappel.Salesperson{
		ID: "sp-1", Name: "Ana", Email: "ana@example.com",
		BaseRate: rappel.MustDecimal("30"),
	}
}

func testEntry(id, revenue, bonus string, status rappel.PaymentStatus) rappel.Commission {
	return rappel.Commission{
		ID: rappel.CommissionID(id), SalespersonID: "sp-1",
		Revenue: rappel.MustDecimal(revenue), DealID: "deal-" + id,
		Rate: rappel.MustDecimal("30"), Status: status,
		EntryDate:   rappel.NewDate(2024, time.January, 5),
		RappelBonus: rappel.MustDecimal(bonus),
	}
}

// =============================================================================
// INVOICE TESTS
// =============================================================================

func TestBuildInvoice_UnpaidEntriesOnly(t *testing.T) {
	// GIVEN: One paid and two unpaid entries
	// WHEN: Building an invoice
	// THEN: Only unpaid entries appear and the totals sum their amounts

	sp := testSalesperson()
	summary := rappel.Summarize(sp, []rappel.Commission{
		testEntry("c1", "1000", "0", rappel.StatusPaid),
		testEntry("c2", "2000", "20", rappel.StatusUnpaid),
		testEntry("c3", "3000", "0", rappel.StatusUnpaid),
	})

	inv := report.BuildInvoice(summary)

	require.Len(t, inv.Lines, 2)
	// base: 2000×30% + 3000×30% = 600 + 900 = 1500
	assert.Equal(t, "1500", inv.BaseTotal.String())
	assert.Equal(t, "20", inv.BonusTotal.String())
	assert.Equal(t, "1520", inv.TotalDue.String())
	assert.True(t, inv.TotalDue.Equal(summary.Balance), "invoice total matches balance due")
	assert.True(t, strings.HasPrefix(inv.Number, "INV-"))
}

func TestBuildInvoice_NothingUnpaid(t *testing.T) {
	sp := testSalesperson()
	summary := rappel.Summarize(sp, []rappel.Commission{
		testEntry("c1", "1000", "0", rappel.StatusPaid),
	})

	inv := report.BuildInvoice(summary)

	assert.Empty(t, inv.Lines)
	assert.True(t, inv.TotalDue.IsZero())
}

// =============================================================================
// RECEIPT TESTS
// =============================================================================

func TestBuildReceipt_UsesPaymentDate(t *testing.T) {
	sp := testSalesperson()
	c := testEntry("c1", "2000", "20", rappel.StatusPaid)
	paid := rappel.NewDate(2024, time.June, 1)
	c.PaymentDate = &paid

	rcpt := report.BuildReceipt(sp, c)

	assert.Equal(t, "2024-06-01", rcpt.Date.String())
	assert.Equal(t, "600", rcpt.Base.String())
	assert.Equal(t, "20", rcpt.Bonus.String())
	assert.Equal(t, "620", rcpt.TotalPaid.String())
	assert.True(t, strings.HasPrefix(rcpt.Number, "RCPT-"))
}

// =============================================================================
// PDF RENDERING TESTS
// =============================================================================

func TestWriteInvoicePDF_ProducesDocument(t *testing.T) {
	sp := testSalesperson()
	summary := rappel.Summarize(sp, []rappel.Commission{
		testEntry("c1", "2000", "20", rappel.StatusUnpaid),
	})

	var buf bytes.Buffer
	require.NoError(t, report.WriteInvoicePDF(&buf, report.BuildInvoice(summary)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestWriteReceiptPDF_ProducesDocument(t *testing.T) {
	sp := testSalesperson()
	c := testEntry("c1", "2000", "20", rappel.StatusPaid)

	var buf bytes.Buffer
	require.NoError(t, report.WriteReceiptPDF(&buf, report.BuildReceipt(sp, c)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
