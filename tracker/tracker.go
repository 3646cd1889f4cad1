/*
tracker.go - Owning service for the commission collections

PURPOSE:
  Tracker owns the four persisted items and is the only writer. Every
  operation loads a snapshot, applies a pure transformation, and replaces
  the stored collection. The recompute trigger policy lives here:

    recompute runs after  - settings save (tier ladder or method change)
                          - manual commission add
                          - import batch
    recompute does NOT run after a payment-status toggle. Toggles change
    payment bookkeeping, never historical revenue totals, so a consumer
    must not rely on toggling to refresh bonuses.

CONCURRENCY:
  Single-writer by construction: a mutex serializes mutations. Reads go
  straight to the store, which returns atomic snapshots.

SEE ALSO:
  - store.go: persistence interface
  - rappel/engine.go: the recalculation itself
*/
package tracker

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pafreitas79/Salescommissiontracker/importer"
	"github.com/pafreitas79/Salescommissiontracker/rappel"
)

// Tracker coordinates all mutations of the commission system.
type Tracker struct {
	store Store

	mu         sync.Mutex
	reconciler *importer.Reconciler
}

func New(store Store) *Tracker {
	return &Tracker{
		store:      store,
		reconciler: importer.NewReconciler(),
	}
}

// =============================================================================
// READS
// =============================================================================

func (t *Tracker) Salespeople(ctx context.Context) ([]rappel.Salesperson, error) {
	return t.store.LoadSalespeople(ctx)
}

func (t *Tracker) Commissions(ctx context.Context) ([]rappel.Commission, error) {
	return t.store.LoadCommissions(ctx)
}

func (t *Tracker) Tiers(ctx context.Context) ([]rappel.RappelTier, error) {
	return t.store.LoadTiers(ctx)
}

func (t *Tracker) Method(ctx context.Context) (rappel.Method, error) {
	return t.store.LoadMethod(ctx)
}

// Summaries returns the aggregation view for every salesperson.
func (t *Tracker) Summaries(ctx context.Context) ([]rappel.SalesSummary, error) {
	salespeople, err := t.store.LoadSalespeople(ctx)
	if err != nil {
		return nil, err
	}
	commissions, err := t.store.LoadCommissions(ctx)
	if err != nil {
		return nil, err
	}
	return rappel.SummarizeAll(salespeople, commissions), nil
}

// Summary returns the aggregation view for one salesperson.
func (t *Tracker) Summary(ctx context.Context, id rappel.SalespersonID) (rappel.SalesSummary, error) {
	salespeople, err := t.store.LoadSalespeople(ctx)
	if err != nil {
		return rappel.SalesSummary{}, err
	}
	for _, sp := range salespeople {
		if sp.ID == id {
			commissions, err := t.store.LoadCommissions(ctx)
			if err != nil {
				return rappel.SalesSummary{}, err
			}
			return rappel.Summarize(sp, commissions), nil
		}
	}
	return rappel.SalesSummary{}, rappel.ErrSalespersonNotFound
}

// =============================================================================
// SALESPEOPLE
// =============================================================================

// AddSalesperson creates a salesperson. Email must be unique across the
// collection, compared case-insensitively.
func (t *Tracker) AddSalesperson(ctx context.Context, name, email string, baseRate decimal.Decimal) (rappel.Salesperson, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	salespeople, err := t.store.LoadSalespeople(ctx)
	if err != nil {
		return rappel.Salesperson{}, err
	}

	for _, sp := range salespeople {
		if strings.EqualFold(sp.Email, email) {
			return rappel.Salesperson{}, fmt.Errorf("%w: %s", rappel.ErrDuplicateEmail, email)
		}
	}

	sp := rappel.Salesperson{
		ID:       rappel.SalespersonID(uuid.NewString()),
		Name:     name,
		Email:    email,
		BaseRate: baseRate,
	}
	salespeople = append(salespeople, sp)

	if err := t.store.ReplaceSalespeople(ctx, salespeople); err != nil {
		return rappel.Salesperson{}, err
	}
	return sp, nil
}

// UpdateSalesperson edits name, email, and base rate. Existing commissions
// keep their snapshotted rates.
func (t *Tracker) UpdateSalesperson(ctx context.Context, id rappel.SalespersonID, name, email string, baseRate decimal.Decimal) (rappel.Salesperson, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	salespeople, err := t.store.LoadSalespeople(ctx)
	if err != nil {
		return rappel.Salesperson{}, err
	}

	idx := -1
	for i, sp := range salespeople {
		if sp.ID == id {
			idx = i
			continue
		}
		if strings.EqualFold(sp.Email, email) {
			return rappel.Salesperson{}, fmt.Errorf("%w: %s", rappel.ErrDuplicateEmail, email)
		}
	}
	if idx < 0 {
		return rappel.Salesperson{}, rappel.ErrSalespersonNotFound
	}

	salespeople[idx].Name = name
	salespeople[idx].Email = email
	salespeople[idx].BaseRate = baseRate

	if err := t.store.ReplaceSalespeople(ctx, salespeople); err != nil {
		return rappel.Salesperson{}, err
	}
	return salespeople[idx], nil
}

// DeleteSalesperson removes a salesperson. Refused while any commission
// entry still references it; on refusal nothing is mutated.
func (t *Tracker) DeleteSalesperson(ctx context.Context, id rappel.SalespersonID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	salespeople, err := t.store.LoadSalespeople(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i, sp := range salespeople {
		if sp.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return rappel.ErrSalespersonNotFound
	}

	commissions, err := t.store.LoadCommissions(ctx)
	if err != nil {
		return err
	}
	count := 0
	for _, c := range commissions {
		if c.SalespersonID == id {
			count++
		}
	}
	if count > 0 {
		return &rappel.DeleteBlockedError{SalespersonID: id, EntryCount: count}
	}

	salespeople = append(salespeople[:idx], salespeople[idx+1:]...)
	return t.store.ReplaceSalespeople(ctx, salespeople)
}

// =============================================================================
// COMMISSIONS
// =============================================================================

// CommissionInput is a manual commission entry before validation.
type CommissionInput struct {
	SalespersonID rappel.SalespersonID
	Revenue       decimal.Decimal
	DealID        string
	Status        rappel.PaymentStatus
	PaymentDate   *rappel.Date
	EntryDate     rappel.Date
	IsAdvance     bool
}

// AddCommission creates a commission entry, snapshotting the owner's current
// base rate, and recomputes every bonus.
func (t *Tracker) AddCommission(ctx context.Context, in CommissionInput) (rappel.Commission, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if in.Revenue.IsNegative() {
		return rappel.Commission{}, rappel.ErrInvalidRevenue
	}

	salespeople, err := t.store.LoadSalespeople(ctx)
	if err != nil {
		return rappel.Commission{}, err
	}
	var owner *rappel.Salesperson
	for i := range salespeople {
		if salespeople[i].ID == in.SalespersonID {
			owner = &salespeople[i]
			break
		}
	}
	if owner == nil {
		return rappel.Commission{}, rappel.ErrSalespersonNotFound
	}

	c := rappel.Commission{
		ID:            rappel.CommissionID(uuid.NewString()),
		SalespersonID: owner.ID,
		Revenue:       in.Revenue,
		DealID:        in.DealID,
		Rate:          owner.BaseRate,
		Status:        in.Status,
		PaymentDate:   in.PaymentDate,
		EntryDate:     in.EntryDate,
		IsAdvance:     in.IsAdvance,
		RappelBonus:   decimal.Zero,
	}
	if c.Status == "" {
		c.Status = rappel.StatusUnpaid
	}
	if c.Status == rappel.StatusPaid && c.PaymentDate == nil {
		today := rappel.Today()
		c.PaymentDate = &today
	}
	if c.Status == rappel.StatusUnpaid {
		c.PaymentDate = nil
	}

	commissions, err := t.store.LoadCommissions(ctx)
	if err != nil {
		return rappel.Commission{}, err
	}
	commissions = append(commissions, c)

	updated, err := t.recomputeLocked(ctx, commissions)
	if err != nil {
		return rappel.Commission{}, err
	}

	for _, uc := range updated {
		if uc.ID == c.ID {
			return uc, nil
		}
	}
	return c, nil
}

// SetPaymentStatus toggles payment bookkeeping on one entry. The payment
// date is defaulted to today when moving to Paid without an explicit date,
// and cleared when moving to Unpaid. Deliberately does NOT recompute.
func (t *Tracker) SetPaymentStatus(ctx context.Context, id rappel.CommissionID, status rappel.PaymentStatus, paymentDate *rappel.Date) (rappel.Commission, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	commissions, err := t.store.LoadCommissions(ctx)
	if err != nil {
		return rappel.Commission{}, err
	}

	idx := -1
	for i, c := range commissions {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return rappel.Commission{}, rappel.ErrCommissionNotFound
	}

	commissions[idx].Status = status
	switch status {
	case rappel.StatusPaid:
		if paymentDate != nil {
			commissions[idx].PaymentDate = paymentDate
		} else if commissions[idx].PaymentDate == nil {
			today := rappel.Today()
			commissions[idx].PaymentDate = &today
		}
	default:
		commissions[idx].PaymentDate = nil
	}

	if err := t.store.ReplaceCommissions(ctx, commissions); err != nil {
		return rappel.Commission{}, err
	}
	return commissions[idx], nil
}

// =============================================================================
// SETTINGS
// =============================================================================

// SaveSettings replaces the tier ladder and calculation method, then
// recomputes every bonus under the new configuration.
func (t *Tracker) SaveSettings(ctx context.Context, tiers []rappel.RappelTier, method rappel.Method) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !method.Valid() {
		return fmt.Errorf("%w: %q", rappel.ErrInvalidMethod, method)
	}

	for i := range tiers {
		if tiers[i].ID == "" {
			tiers[i].ID = rappel.TierID(uuid.NewString())
		}
	}

	if err := t.store.ReplaceTiers(ctx, tiers); err != nil {
		return err
	}
	if err := t.store.SaveMethod(ctx, method); err != nil {
		return err
	}

	commissions, err := t.store.LoadCommissions(ctx)
	if err != nil {
		return err
	}
	_, err = t.recomputeLocked(ctx, commissions)
	return err
}

// =============================================================================
// IMPORT
// =============================================================================

// Import reconciles parsed rows into the collections and recomputes. Row
// failures are counted in the returned stats, never fatal.
func (t *Tracker) Import(ctx context.Context, rows []importer.Row) (importer.Stats, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	salespeople, err := t.store.LoadSalespeople(ctx)
	if err != nil {
		return importer.Stats{}, err
	}
	commissions, err := t.store.LoadCommissions(ctx)
	if err != nil {
		return importer.Stats{}, err
	}
	ladder, method, err := t.configLocked(ctx)
	if err != nil {
		return importer.Stats{}, err
	}

	result := t.reconciler.Reconcile(salespeople, commissions, rows, ladder, method)

	if err := t.store.ReplaceSalespeople(ctx, result.Salespeople); err != nil {
		return importer.Stats{}, err
	}
	if err := t.store.ReplaceCommissions(ctx, result.Commissions); err != nil {
		return importer.Stats{}, err
	}
	return result.Stats, nil
}

// =============================================================================
// RECOMPUTE
// =============================================================================

// Recompute refreshes every bonus under the currently persisted tier ladder
// and method. Loads never trigger this automatically; call it explicitly
// when tier or method definitions might have changed out of band.
func (t *Tracker) Recompute(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	commissions, err := t.store.LoadCommissions(ctx)
	if err != nil {
		return err
	}
	_, err = t.recomputeLocked(ctx, commissions)
	return err
}

// Reset clears all data back to built-in defaults.
func (t *Tracker) Reset(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store.Reset(ctx)
}

func (t *Tracker) configLocked(ctx context.Context) (rappel.TierLadder, rappel.Method, error) {
	tiers, err := t.store.LoadTiers(ctx)
	if err != nil {
		return rappel.TierLadder{}, "", err
	}
	method, err := t.store.LoadMethod(ctx)
	if err != nil {
		return rappel.TierLadder{}, "", err
	}
	return rappel.NewTierLadder(tiers), method, nil
}

func (t *Tracker) recomputeLocked(ctx context.Context, commissions []rappel.Commission) ([]rappel.Commission, error) {
	ladder, method, err := t.configLocked(ctx)
	if err != nil {
		return nil, err
	}
	updated := rappel.Recompute(commissions, ladder, method)
	if err := t.store.ReplaceCommissions(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}
