/*
csv.go - CSV payload tokenization for commission imports

PURPOSE:
  Turns an uploaded CSV file into importer rows. Columns are matched by
  header name so the file can carry them in any order; unknown columns
  are ignored.

EXPECTED HEADERS:
  salesperson_email, salesperson_name, revenue, deal_id, entry_date,
  status, payment_date

SEE ALSO:
  - importer/importer.go: Row validation and reconciliation
  - handlers.go: ImportCommissions endpoint
*/
package api

import (
	"encoding/csv"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/pafreitas79/Salescommissiontracker/importer"
)

// maxImportBytes caps import payload size at 10 MB.
const maxImportBytes = 10 << 20

// readImportRows extracts CSV rows from the request. Accepts either a
// multipart form with a "file" field or a raw CSV body.
func readImportRows(r *http.Request) ([]importer.Row, error) {
	body, err := importReader(r)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return parseImportCSV(io.LimitReader(body, maxImportBytes))
}

func importReader(r *http.Request) (io.ReadCloser, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err == nil && strings.HasPrefix(mediaType, "multipart/") {
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("missing form field %q: %w", "file", err)
		}
		return file, nil
	}
	return r.Body, nil
}

// parseImportCSV tokenizes the CSV stream. Malformed quoting or uneven
// record lengths fail the whole payload; per-row value problems are left
// to the reconciler, which counts them instead of failing.
func parseImportCSV(r io.Reader) ([]importer.Row, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty CSV payload")
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["salesperson_email"]; !ok {
		return nil, fmt.Errorf("missing required column %q", "salesperson_email")
	}

	field := func(record []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []importer.Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV record: %w", err)
		}
		rows = append(rows, importer.Row{
			Email:       field(record, "salesperson_email"),
			Name:        field(record, "salesperson_name"),
			Revenue:     field(record, "revenue"),
			DealID:      field(record, "deal_id"),
			EntryDate:   field(record, "entry_date"),
			Status:      field(record, "status"),
			PaymentDate: field(record, "payment_date"),
		})
	}
	return rows, nil
}
