/*
store.go - Persistence interface for the tracked collections

PURPOSE:
  Defines the interface between the tracker and persistence. Four items are
  persisted independently: salespeople, commissions (including the derived
  rappel bonus), the tier ladder, and the calculation method. Loads never
  recompute; a consumer that suspects out-of-band tier/method changes must
  call Tracker.Recompute explicitly.

SNAPSHOT CONTRACT:
  Reads return copies the caller may inspect freely; writes replace a whole
  collection atomically. There is no partial visibility of an in-progress
  recompute: readers observe either the pre-recompute or the fully
  recomputed collection.

DEFAULTING:
  Missing or corrupt persisted state falls back to built-in defaults —
  empty lists for salespeople and commissions, the starter ladder for
  tiers, "rolling" for the method — instead of failing startup.

IMPLEMENTATIONS:
  - store/sqlite: production SQLite store
  - store/memory: in-memory store for testing
*/
package tracker

import (
	"context"

	"github.com/pafreitas79/Salescommissiontracker/rappel"
)

// Store persists the four collections the tracker owns.
type Store interface {
	LoadSalespeople(ctx context.Context) ([]rappel.Salesperson, error)
	ReplaceSalespeople(ctx context.Context, salespeople []rappel.Salesperson) error

	LoadCommissions(ctx context.Context) ([]rappel.Commission, error)
	ReplaceCommissions(ctx context.Context, commissions []rappel.Commission) error

	LoadTiers(ctx context.Context) ([]rappel.RappelTier, error)
	ReplaceTiers(ctx context.Context, tiers []rappel.RappelTier) error

	LoadMethod(ctx context.Context) (rappel.Method, error)
	SaveMethod(ctx context.Context, method rappel.Method) error

	// Reset clears all persisted state back to the built-in defaults.
	Reset(ctx context.Context) error
}
