/*
Package sqlite provides a SQLite-backed implementation of the tracker Store.

PURPOSE:
  Persists the four collections — salespeople, commissions, rappel tiers,
  and the calculation method — across restarts. Each collection is written
  as a whole (delete + insert inside one SQL transaction), matching the
  snapshot-replace contract of the tracker.

KEY TABLES:
  salespeople:   salesperson records
  commissions:   commission entries, including the derived rappel bonus
  rappel_tiers:  the tier ladder, with insertion position preserved
  settings:      single-row table holding the calculation method

ORDERING:
  rappel_tiers carries a position column because equal-threshold tie-breaks
  depend on insertion order; a ladder reloaded from disk must resolve ties
  identically to the ladder that was saved. commissions carries position
  for the same reason: same-date entries keep their relative order across
  a reload.

MONEY:
  Revenue, rates, and bonuses are stored as decimal strings and parsed back
  with shopspring/decimal, so recomputation after a reload is bit-identical.

DEFAULTING:
  A fresh database is seeded with the starter tier ladder and the rolling
  method. A missing or unparseable settings row falls back to rolling
  rather than failing.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency
  and crash recovery.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety, same as the rest of the process.

SEE ALSO:
  - tracker/store.go: interface definition
  - store/memory: in-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/pafreitas79/Salescommissiontracker/rappel"
)

// Store implements tracker.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	if err := store.seedDefaults(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed defaults: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS salespeople (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		base_rate TEXT NOT NULL,
		position INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_salespeople_email
		ON salespeople(email COLLATE NOCASE);

	CREATE TABLE IF NOT EXISTS commissions (
		id TEXT PRIMARY KEY,
		salesperson_id TEXT NOT NULL,
		revenue TEXT NOT NULL,
		deal_id TEXT NOT NULL,
		rate TEXT NOT NULL,
		status TEXT NOT NULL,
		payment_date TEXT,
		entry_date TEXT NOT NULL,
		is_advance BOOLEAN NOT NULL DEFAULT FALSE,
		rappel_bonus TEXT NOT NULL,
		position INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_commissions_salesperson
		ON commissions(salesperson_id);
	CREATE INDEX IF NOT EXISTS idx_commissions_entry_date
		ON commissions(entry_date);

	CREATE TABLE IF NOT EXISTS rappel_tiers (
		id TEXT PRIMARY KEY,
		threshold TEXT NOT NULL,
		bonus_pct TEXT NOT NULL,
		position INTEGER NOT NULL
	);

	-- Single-row settings table (key = 1).
	CREATE TABLE IF NOT EXISTS settings (
		key INTEGER PRIMARY KEY CHECK (key = 1),
		rappel_method TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// seedDefaults installs the starter ladder and default method on a fresh
// database. An existing settings row means the database has been used
// before, so nothing is touched.
func (s *Store) seedDefaults() error {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM settings").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("INSERT INTO settings (key, rappel_method) VALUES (1, ?)",
		string(rappel.DefaultMethod)); err != nil {
		return err
	}
	for i, tier := range rappel.DefaultTiers() {
		if _, err := tx.Exec(
			"INSERT INTO rappel_tiers (id, threshold, bonus_pct, position) VALUES (?, ?, ?, ?)",
			string(tier.ID), tier.Threshold.String(), tier.BonusPct.String(), i,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// =============================================================================
// SALESPEOPLE
// =============================================================================

func (s *Store) LoadSalespeople(ctx context.Context) ([]rappel.Salesperson, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, email, base_rate FROM salespeople ORDER BY position ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query salespeople: %w", err)
	}
	defer rows.Close()

	var salespeople []rappel.Salesperson
	for rows.Next() {
		var sp rappel.Salesperson
		var baseRate string
		if err := rows.Scan(&sp.ID, &sp.Name, &sp.Email, &baseRate); err != nil {
			return nil, err
		}
		sp.BaseRate = mustDecimal(baseRate)
		salespeople = append(salespeople, sp)
	}
	return salespeople, rows.Err()
}

func (s *Store) ReplaceSalespeople(ctx context.Context, salespeople []rappel.Salesperson) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM salespeople"); err != nil {
		return err
	}
	for i, sp := range salespeople {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO salespeople (id, name, email, base_rate, position) VALUES (?, ?, ?, ?, ?)",
			string(sp.ID), sp.Name, sp.Email, sp.BaseRate.String(), i,
		); err != nil {
			return fmt.Errorf("failed to insert salesperson: %w", err)
		}
	}

	return tx.Commit()
}

// =============================================================================
// COMMISSIONS
// =============================================================================

func (s *Store) LoadCommissions(ctx context.Context) ([]rappel.Commission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, salesperson_id, revenue, deal_id, rate, status,
		       payment_date, entry_date, is_advance, rappel_bonus
		FROM commissions
		ORDER BY position ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query commissions: %w", err)
	}
	defer rows.Close()

	var commissions []rappel.Commission
	for rows.Next() {
		c, err := scanCommission(rows)
		if err != nil {
			return nil, err
		}
		commissions = append(commissions, c)
	}
	return commissions, rows.Err()
}

func scanCommission(rows *sql.Rows) (rappel.Commission, error) {
	var (
		c           rappel.Commission
		revenue     string
		rate        string
		paymentDate sql.NullString
		entryDate   string
		rappelBonus string
	)

	err := rows.Scan(&c.ID, &c.SalespersonID, &revenue, &c.DealID, &rate,
		&c.Status, &paymentDate, &entryDate, &c.IsAdvance, &rappelBonus)
	if err != nil {
		return c, fmt.Errorf("failed to scan commission: %w", err)
	}

	c.Revenue = mustDecimal(revenue)
	c.Rate = mustDecimal(rate)
	c.RappelBonus = mustDecimal(rappelBonus)
	c.EntryDate, _ = rappel.ParseDate(entryDate)
	if paymentDate.Valid && paymentDate.String != "" {
		d, err := rappel.ParseDate(paymentDate.String)
		if err == nil {
			c.PaymentDate = &d
		}
	}

	return c, nil
}

func (s *Store) ReplaceCommissions(ctx context.Context, commissions []rappel.Commission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM commissions"); err != nil {
		return err
	}

	query := `
		INSERT INTO commissions
		(id, salesperson_id, revenue, deal_id, rate, status, payment_date,
		 entry_date, is_advance, rappel_bonus, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	for i, c := range commissions {
		var paymentDate sql.NullString
		if c.PaymentDate != nil {
			paymentDate = sql.NullString{String: c.PaymentDate.String(), Valid: true}
		}
		if _, err := tx.ExecContext(ctx, query,
			string(c.ID), string(c.SalespersonID), c.Revenue.String(), c.DealID,
			c.Rate.String(), string(c.Status), paymentDate, c.EntryDate.String(),
			c.IsAdvance, c.RappelBonus.String(), i,
		); err != nil {
			return fmt.Errorf("failed to insert commission: %w", err)
		}
	}

	return tx.Commit()
}

// =============================================================================
// TIERS
// =============================================================================

func (s *Store) LoadTiers(ctx context.Context) ([]rappel.RappelTier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, threshold, bonus_pct FROM rappel_tiers ORDER BY position ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query tiers: %w", err)
	}
	defer rows.Close()

	var tiers []rappel.RappelTier
	for rows.Next() {
		var tier rappel.RappelTier
		var threshold, bonusPct string
		if err := rows.Scan(&tier.ID, &threshold, &bonusPct); err != nil {
			return nil, err
		}
		tier.Threshold = mustDecimal(threshold)
		tier.BonusPct = mustDecimal(bonusPct)
		tiers = append(tiers, tier)
	}
	return tiers, rows.Err()
}

func (s *Store) ReplaceTiers(ctx context.Context, tiers []rappel.RappelTier) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM rappel_tiers"); err != nil {
		return err
	}
	for i, tier := range tiers {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO rappel_tiers (id, threshold, bonus_pct, position) VALUES (?, ?, ?, ?)",
			string(tier.ID), tier.Threshold.String(), tier.BonusPct.String(), i,
		); err != nil {
			return fmt.Errorf("failed to insert tier: %w", err)
		}
	}

	return tx.Commit()
}

// =============================================================================
// SETTINGS
// =============================================================================

func (s *Store) LoadMethod(ctx context.Context) (rappel.Method, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var method string
	err := s.db.QueryRowContext(ctx,
		"SELECT rappel_method FROM settings WHERE key = 1").Scan(&method)
	if err != nil {
		// Missing or corrupt settings fall back to the default.
		return rappel.DefaultMethod, nil
	}

	m := rappel.Method(method)
	if !m.Valid() {
		return rappel.DefaultMethod, nil
	}
	return m, nil
}

func (s *Store) SaveMethod(ctx context.Context, method rappel.Method) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO settings (key, rappel_method) VALUES (1, ?)
		ON CONFLICT(key) DO UPDATE SET rappel_method = excluded.rappel_method
	`
	_, err := s.db.ExecContext(ctx, query, string(method))
	return err
}

// =============================================================================
// RESET
// =============================================================================

// Reset clears all data and reinstalls the built-in defaults.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"salespeople", "commissions", "rappel_tiers", "settings"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	return s.seedDefaults()
}

// Helper functions

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
