/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/pafreitas79/Salescommissiontracker/importer"
	"github.com/pafreitas79/Salescommissiontracker/rappel"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// SalespersonDTO represents a salesperson in API responses.
type SalespersonDTO struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	BaseRate float64 `json:"base_rate"`
}

// SalespersonRequest is the request to create or update a salesperson.
type SalespersonRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	BaseRate float64 `json:"base_rate"`
}

// CommissionDTO represents a commission entry in API responses.
type CommissionDTO struct {
	ID            string  `json:"id"`
	SalespersonID string  `json:"salesperson_id"`
	Revenue       float64 `json:"revenue"`
	DealID        string  `json:"deal_id"`
	Rate          float64 `json:"rate"`
	Status        string  `json:"status"`
	PaymentDate   *string `json:"payment_date,omitempty"`
	EntryDate     string  `json:"entry_date"`
	IsAdvance     bool    `json:"is_advance"`
	RappelBonus   float64 `json:"rappel_bonus"`
}

// CreateCommissionRequest is the request to add a manual commission entry.
type CreateCommissionRequest struct {
	SalespersonID string  `json:"salesperson_id"`
	Revenue       float64 `json:"revenue"`
	DealID        string  `json:"deal_id"`
	Status        string  `json:"status"`
	PaymentDate   *string `json:"payment_date,omitempty"`
	EntryDate     string  `json:"entry_date"`
	IsAdvance     bool    `json:"is_advance"`
}

// PaymentStatusRequest toggles a commission's payment status.
type PaymentStatusRequest struct {
	Status      string  `json:"status"`
	PaymentDate *string `json:"payment_date,omitempty"`
}

// TierDTO represents one rappel tier.
type TierDTO struct {
	ID        string  `json:"id,omitempty"`
	Threshold float64 `json:"threshold"`
	BonusPct  float64 `json:"bonus_percentage"`
}

// SettingsDTO carries the tier ladder and calculation method together;
// saving it replaces both and triggers a full recalculation.
type SettingsDTO struct {
	Tiers  []TierDTO `json:"tiers"`
	Method string    `json:"method"`
}

// SummaryDTO is the dashboard view for one salesperson.
type SummaryDTO struct {
	SalespersonDTO
	TotalRevenue    float64         `json:"total_revenue"`
	BaseCommission  float64         `json:"base_commissions"`
	RappelBonus     float64         `json:"rappel_bonus"`
	TotalCommission float64         `json:"total_commission"`
	TotalPaid       float64         `json:"total_paid"`
	Balance         float64         `json:"balance"`
	History         []CommissionDTO `json:"commission_history"`
}

// ImportResultDTO reports CSV import statistics.
type ImportResultDTO struct {
	Imported           int `json:"commissions_imported"`
	SalespeopleCreated int `json:"salespeople_created"`
	RowsFailed         int `json:"rows_failed"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toSalespersonDTO(sp rappel.Salesperson) SalespersonDTO {
	rate, _ := sp.BaseRate.Float64()
	return SalespersonDTO{
		ID:       string(sp.ID),
		Name:     sp.Name,
		Email:    sp.Email,
		BaseRate: rate,
	}
}

func toCommissionDTO(c rappel.Commission) CommissionDTO {
	revenue, _ := c.Revenue.Float64()
	rate, _ := c.Rate.Float64()
	bonus, _ := c.RappelBonus.Float64()

	dto := CommissionDTO{
		ID:            string(c.ID),
		SalespersonID: string(c.SalespersonID),
		Revenue:       revenue,
		DealID:        c.DealID,
		Rate:          rate,
		Status:        string(c.Status),
		EntryDate:     c.EntryDate.String(),
		IsAdvance:     c.IsAdvance,
		RappelBonus:   bonus,
	}
	if c.PaymentDate != nil {
		s := c.PaymentDate.String()
		dto.PaymentDate = &s
	}
	return dto
}

func toCommissionDTOs(cs []rappel.Commission) []CommissionDTO {
	dtos := make([]CommissionDTO, len(cs))
	for i, c := range cs {
		dtos[i] = toCommissionDTO(c)
	}
	return dtos
}

func toSummaryDTO(s rappel.SalesSummary) SummaryDTO {
	totalRevenue, _ := s.TotalRevenue.Float64()
	base, _ := s.BaseCommission.Float64()
	bonus, _ := s.RappelBonus.Float64()
	total, _ := s.TotalCommission.Float64()
	paid, _ := s.TotalPaid.Float64()
	balance, _ := s.Balance.Float64()

	return SummaryDTO{
		SalespersonDTO:  toSalespersonDTO(s.Salesperson),
		TotalRevenue:    totalRevenue,
		BaseCommission:  base,
		RappelBonus:     bonus,
		TotalCommission: total,
		TotalPaid:       paid,
		Balance:         balance,
		History:         toCommissionDTOs(s.History),
	}
}

func toTierDTO(t rappel.RappelTier) TierDTO {
	threshold, _ := t.Threshold.Float64()
	pct, _ := t.BonusPct.Float64()
	return TierDTO{ID: string(t.ID), Threshold: threshold, BonusPct: pct}
}

func fromTierDTO(dto TierDTO) rappel.RappelTier {
	return rappel.RappelTier{
		ID:        rappel.TierID(dto.ID),
		Threshold: decimal.NewFromFloat(dto.Threshold),
		BonusPct:  decimal.NewFromFloat(dto.BonusPct),
	}
}

func toImportResultDTO(stats importer.Stats) ImportResultDTO {
	return ImportResultDTO{
		Imported:           stats.Imported,
		SalespeopleCreated: stats.SalespeopleCreated,
		RowsFailed:         stats.RowsFailed,
	}
}
