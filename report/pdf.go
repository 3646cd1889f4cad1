/*
pdf.go - PDF rendering for invoices and receipts

Layout follows the usual invoice shape: company header, bill-to block,
striped entry table, totals right-aligned under it, page footer with the
generation date and page number.
*/
package report

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/pafreitas79/Salescommissiontracker/rappel"
)

const companyName = "CommTrack Inc."

// WriteInvoicePDF renders the invoice as a PDF document to w.
func WriteInvoicePDF(w io.Writer, inv Invoice) error {
	pdf := newDocument("Commission Invoice")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetXY(14, 40)
	pdf.MultiCell(90, 6, fmt.Sprintf("Bill To:\n%s\n%s",
		inv.Salesperson.Name, inv.Salesperson.Email), "", "L", false)

	pdf.SetXY(110, 40)
	pdf.MultiCell(86, 6, fmt.Sprintf("Invoice #: %s\nDate: %s",
		inv.Number, inv.Date), "", "R", false)

	pdf.SetY(62)
	widths := []float64{26, 34, 32, 18, 26, 26, 20}
	headers := []string{"Entry Date", "Deal", "Revenue", "Rate", "Base", "Bonus", "Total"}
	drawTableHeader(pdf, widths, headers)

	pdf.SetFont("Helvetica", "", 9)
	fill := false
	for _, line := range inv.Lines {
		cells := []string{
			line.EntryDate.String(),
			line.DealID,
			money(line.Revenue),
			line.Rate.String() + "%",
			money(line.Base),
			money(line.Bonus),
			money(line.LineTotal),
		}
		drawTableRow(pdf, widths, cells, fill)
		fill = !fill
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)
	rightText(pdf, fmt.Sprintf("Base Commissions Subtotal: %s", money(inv.BaseTotal)))
	rightText(pdf, fmt.Sprintf("Rappel Bonus Subtotal: %s", money(inv.BonusTotal)))
	pdf.SetFont("Helvetica", "B", 12)
	rightText(pdf, fmt.Sprintf("Total Due: %s", money(inv.TotalDue)))

	return pdf.Output(w)
}

// WriteReceiptPDF renders the receipt as a PDF document to w.
func WriteReceiptPDF(w io.Writer, rcpt Receipt) error {
	pdf := newDocument("Payment Receipt")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetXY(14, 40)
	pdf.MultiCell(90, 6, fmt.Sprintf("Paid To:\n%s\n%s",
		rcpt.Salesperson.Name, rcpt.Salesperson.Email), "", "L", false)

	pdf.SetXY(110, 40)
	pdf.MultiCell(86, 6, fmt.Sprintf("Receipt #: %s\nPayment Date: %s",
		rcpt.Number, rcpt.Date), "", "R", false)

	pdf.SetY(62)
	widths := []float64{122, 60}
	drawTableHeader(pdf, widths, []string{"Description", "Amount"})

	pdf.SetFont("Helvetica", "", 9)
	drawTableRow(pdf, widths, []string{
		fmt.Sprintf("Base commission on revenue of %s (deal %s)",
			money(rcpt.Commission.Revenue), rcpt.Commission.DealID),
		money(rcpt.Base),
	}, false)
	drawTableRow(pdf, widths, []string{"Rappel bonus", money(rcpt.Bonus)}, true)

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 12)
	rightText(pdf, fmt.Sprintf("Total Paid: %s", money(rcpt.TotalPaid)))

	return pdf.Output(w)
}

// =============================================================================
// LAYOUT HELPERS
// =============================================================================

func newDocument(title string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.AliasNbPages("")

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetXY(14, 16)
		pdf.CellFormat(0, 8, companyName, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 16)
		pdf.SetXY(0, 14)
		pdf.CellFormat(210, 10, title, "", 0, "C", false, 0, "")
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-14)
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(90, 6, "Generated on: "+rappel.Today().String(), "", 0, "L", false, 0, "")
		pdf.CellFormat(92, 6, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.SetMargins(14, 30, 14)
	return pdf
}

func drawTableHeader(pdf *gofpdf.Fpdf, widths []float64, headers []string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(22, 160, 133)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)
}

func drawTableRow(pdf *gofpdf.Fpdf, widths []float64, cells []string, fill bool) {
	pdf.SetFillColor(240, 240, 240)
	for i, c := range cells {
		pdf.CellFormat(widths[i], 7, c, "", 0, "L", fill, 0, "")
	}
	pdf.Ln(-1)
}

func rightText(pdf *gofpdf.Fpdf, text string) {
	pdf.CellFormat(182, 6, text, "", 1, "R", false, 0, "")
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
