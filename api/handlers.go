/*
handlers.go - HTTP API handlers for the commission tracker

PURPOSE:
  Exposes the commission tracker via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to the tracker.

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input
  3. Call domain logic (tracker, report)
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Record not found
  - 409: Refused operations (deletion guard, duplicate email)
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/pafreitas79/Salescommissiontracker/rappel"
	"github.com/pafreitas79/Salescommissiontracker/report"
	"github.com/pafreitas79/Salescommissiontracker/tracker"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Tracker *tracker.Tracker
}

// NewHandler creates a new handler around the given tracker.
func NewHandler(t *tracker.Tracker) *Handler {
	return &Handler{Tracker: t}
}

// =============================================================================
// SALESPERSON HANDLERS
// =============================================================================

// ListSalespeople returns all salespeople.
// GET /api/salespeople
func (h *Handler) ListSalespeople(w http.ResponseWriter, r *http.Request) {
	salespeople, err := h.Tracker.Salespeople(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list salespeople", err)
		return
	}

	dtos := make([]SalespersonDTO, len(salespeople))
	for i, sp := range salespeople {
		dtos[i] = toSalespersonDTO(sp)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateSalesperson creates a new salesperson.
// POST /api/salespeople
func (h *Handler) CreateSalesperson(w http.ResponseWriter, r *http.Request) {
	var req SalespersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "Name and email are required", nil)
		return
	}

	sp, err := h.Tracker.AddSalesperson(r.Context(), req.Name, req.Email,
		decimal.NewFromFloat(req.BaseRate))
	if err != nil {
		writeDomainError(w, "Failed to create salesperson", err)
		return
	}

	writeJSON(w, http.StatusCreated, toSalespersonDTO(sp))
}

// GetSalesperson returns a single salesperson.
// GET /api/salespeople/{id}
func (h *Handler) GetSalesperson(w http.ResponseWriter, r *http.Request) {
	id := rappel.SalespersonID(chi.URLParam(r, "id"))

	salespeople, err := h.Tracker.Salespeople(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get salesperson", err)
		return
	}
	for _, sp := range salespeople {
		if sp.ID == id {
			writeJSON(w, http.StatusOK, toSalespersonDTO(sp))
			return
		}
	}
	writeError(w, http.StatusNotFound, "Salesperson not found", nil)
}

// UpdateSalesperson edits a salesperson.
// PUT /api/salespeople/{id}
func (h *Handler) UpdateSalesperson(w http.ResponseWriter, r *http.Request) {
	id := rappel.SalespersonID(chi.URLParam(r, "id"))

	var req SalespersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	sp, err := h.Tracker.UpdateSalesperson(r.Context(), id, req.Name, req.Email,
		decimal.NewFromFloat(req.BaseRate))
	if err != nil {
		writeDomainError(w, "Failed to update salesperson", err)
		return
	}

	writeJSON(w, http.StatusOK, toSalespersonDTO(sp))
}

// DeleteSalesperson removes a salesperson. Refused with 409 while any
// commission entry still references it.
// DELETE /api/salespeople/{id}
func (h *Handler) DeleteSalesperson(w http.ResponseWriter, r *http.Request) {
	id := rappel.SalespersonID(chi.URLParam(r, "id"))

	if err := h.Tracker.DeleteSalesperson(r.Context(), id); err != nil {
		writeDomainError(w, "Failed to delete salesperson", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "deleted"})
}

// =============================================================================
// COMMISSION HANDLERS
// =============================================================================

// ListCommissions returns all commission entries.
// GET /api/commissions
func (h *Handler) ListCommissions(w http.ResponseWriter, r *http.Request) {
	commissions, err := h.Tracker.Commissions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list commissions", err)
		return
	}
	writeJSON(w, http.StatusOK, toCommissionDTOs(commissions))
}

// CreateCommission adds a manual commission entry and triggers a full
// recalculation.
// POST /api/commissions
func (h *Handler) CreateCommission(w http.ResponseWriter, r *http.Request) {
	var req CreateCommissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	entryDate, err := rappel.ParseDate(req.EntryDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid entry_date format (use YYYY-MM-DD)", err)
		return
	}

	in := tracker.CommissionInput{
		SalespersonID: rappel.SalespersonID(req.SalespersonID),
		Revenue:       decimal.NewFromFloat(req.Revenue),
		DealID:        req.DealID,
		Status:        parseStatus(req.Status),
		EntryDate:     entryDate,
		IsAdvance:     req.IsAdvance,
	}
	if req.PaymentDate != nil {
		d, err := rappel.ParseDate(*req.PaymentDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid payment_date format (use YYYY-MM-DD)", err)
			return
		}
		in.PaymentDate = &d
	}

	c, err := h.Tracker.AddCommission(r.Context(), in)
	if err != nil {
		writeDomainError(w, "Failed to create commission", err)
		return
	}

	writeJSON(w, http.StatusCreated, toCommissionDTO(c))
}

// SetPaymentStatus toggles a commission's payment status. Deliberately does
// not trigger a recalculation.
// POST /api/commissions/{id}/status
func (h *Handler) SetPaymentStatus(w http.ResponseWriter, r *http.Request) {
	id := rappel.CommissionID(chi.URLParam(r, "id"))

	var req PaymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var paymentDate *rappel.Date
	if req.PaymentDate != nil {
		d, err := rappel.ParseDate(*req.PaymentDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid payment_date format (use YYYY-MM-DD)", err)
			return
		}
		paymentDate = &d
	}

	c, err := h.Tracker.SetPaymentStatus(r.Context(), id, parseStatus(req.Status), paymentDate)
	if err != nil {
		writeDomainError(w, "Failed to update payment status", err)
		return
	}

	writeJSON(w, http.StatusOK, toCommissionDTO(c))
}

// ImportCommissions tokenizes a CSV payload and reconciles its rows into
// the collections. Row-level failures are counted, never fatal; a payload
// that cannot be tokenized at all is a 400.
// POST /api/commissions/import
func (h *Handler) ImportCommissions(w http.ResponseWriter, r *http.Request) {
	rows, err := readImportRows(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse CSV payload", err)
		return
	}

	stats, err := h.Tracker.Import(r.Context(), rows)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to import commissions", err)
		return
	}

	writeJSON(w, http.StatusOK, toImportResultDTO(stats))
}

// =============================================================================
// SETTINGS HANDLERS
// =============================================================================

// GetSettings returns the tier ladder and calculation method.
// GET /api/settings
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	tiers, err := h.Tracker.Tiers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load tiers", err)
		return
	}
	method, err := h.Tracker.Method(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load method", err)
		return
	}

	dto := SettingsDTO{Method: string(method), Tiers: make([]TierDTO, len(tiers))}
	for i, t := range tiers {
		dto.Tiers[i] = toTierDTO(t)
	}
	writeJSON(w, http.StatusOK, dto)
}

// SaveSettings replaces the tier ladder and method, then recalculates every
// bonus in the system.
// PUT /api/settings
func (h *Handler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	tiers := make([]rappel.RappelTier, len(req.Tiers))
	for i, dto := range req.Tiers {
		tiers[i] = fromTierDTO(dto)
	}

	if err := h.Tracker.SaveSettings(r.Context(), tiers, rappel.Method(req.Method)); err != nil {
		writeDomainError(w, "Failed to save settings", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "saved", "recalculated": true})
}

// =============================================================================
// DASHBOARD
// =============================================================================

// GetDashboard returns the aggregation view for every salesperson.
// GET /api/dashboard
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.Tracker.Summaries(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build dashboard", err)
		return
	}

	dtos := make([]SummaryDTO, len(summaries))
	for i, s := range summaries {
		dtos[i] = toSummaryDTO(s)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// DOCUMENT HANDLERS
// =============================================================================

// GetInvoice streams a PDF invoice of a salesperson's unpaid entries.
// GET /api/salespeople/{id}/invoice
func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id := rappel.SalespersonID(chi.URLParam(r, "id"))

	summary, err := h.Tracker.Summary(r.Context(), id)
	if err != nil {
		writeDomainError(w, "Failed to build invoice", err)
		return
	}

	inv := report.BuildInvoice(summary)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "Invoice-"+inv.Number+".pdf"))
	if err := report.WriteInvoicePDF(w, inv); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to render invoice", err)
	}
}

// GetReceipt streams a PDF payment receipt for one commission entry.
// GET /api/commissions/{id}/receipt
func (h *Handler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	id := rappel.CommissionID(chi.URLParam(r, "id"))
	ctx := r.Context()

	commissions, err := h.Tracker.Commissions(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load commissions", err)
		return
	}

	var entry *rappel.Commission
	for i := range commissions {
		if commissions[i].ID == id {
			entry = &commissions[i]
			break
		}
	}
	if entry == nil {
		writeError(w, http.StatusNotFound, "Commission not found", nil)
		return
	}

	salespeople, err := h.Tracker.Salespeople(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load salespeople", err)
		return
	}
	var owner rappel.Salesperson
	for _, sp := range salespeople {
		if sp.ID == entry.SalespersonID {
			owner = sp
			break
		}
	}

	rcpt := report.BuildReceipt(owner, *entry)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "Receipt-"+rcpt.Number+".pdf"))
	if err := report.WriteReceiptPDF(w, rcpt); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to render receipt", err)
	}
}

// =============================================================================
// ADMIN
// =============================================================================

// TriggerRecompute refreshes every bonus under the current configuration.
// Needed after out-of-band changes to the persisted state.
// POST /api/admin/recompute
func (h *Handler) TriggerRecompute(w http.ResponseWriter, r *http.Request) {
	if err := h.Tracker.Recompute(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to recompute", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "recalculated"})
}

// ResetData clears all persisted state back to defaults.
// POST /api/admin/reset
func (h *Handler) ResetData(w http.ResponseWriter, r *http.Request) {
	if err := h.Tracker.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset data", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "reset"})
}

// =============================================================================
// HELPERS
// =============================================================================

func parseStatus(s string) rappel.PaymentStatus {
	if s == string(rappel.StatusPaid) || s == "paid" {
		return rappel.StatusPaid
	}
	return rappel.StatusUnpaid
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps domain errors to HTTP status codes.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	switch {
	case rappel.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case errors.Is(err, rappel.ErrSalespersonHasCommissions),
		errors.Is(err, rappel.ErrDuplicateEmail):
		writeError(w, http.StatusConflict, message, err)
	case rappel.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}
