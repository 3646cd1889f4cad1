/*
errors.go - Centralized error types for the commission domain

PURPOSE:
  All domain error types in one place. Nothing in the recalculation engine
  itself can fail; these errors cover the surrounding operations — lookups,
  referential guards, uniqueness checks.

ERROR CATEGORIES:
  1. Not-found errors  - missing salesperson/commission references
  2. Guard errors      - refused destructive operations
  3. Input errors      - rejected user input

USAGE:
  Callers branch with errors.Is:

    if errors.Is(err, rappel.ErrSalespersonHasCommissions) {
        // refuse-and-report, nothing was mutated
    }
*/
package rappel

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrSalespersonNotFound is returned when a referenced salesperson
	// doesn't exist.
	ErrSalespersonNotFound = errors.New("salesperson not found")

	// ErrCommissionNotFound is returned when a referenced commission
	// doesn't exist.
	ErrCommissionNotFound = errors.New("commission not found")

	// ErrSalespersonHasCommissions is returned when deleting a salesperson
	// that still owns commission entries. The operation is refused and no
	// state changes.
	ErrSalespersonHasCommissions = errors.New("salesperson has commission entries")

	// ErrDuplicateEmail is returned when creating or editing a salesperson
	// would collide with an existing email (case-insensitive).
	ErrDuplicateEmail = errors.New("email already in use")

	// ErrInvalidRevenue is returned for negative or non-finite revenue on
	// manual entry.
	ErrInvalidRevenue = errors.New("revenue must be a non-negative number")

	// ErrInvalidMethod is returned when a settings save carries an unknown
	// calculation method.
	ErrInvalidMethod = errors.New("unknown rappel calculation method")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// DeleteBlockedError reports why a salesperson deletion was refused.
type DeleteBlockedError struct {
	SalespersonID SalespersonID
	EntryCount    int
}

func (e *DeleteBlockedError) Error() string {
	return fmt.Sprintf("cannot delete salesperson %s: %d commission entries reference it",
		e.SalespersonID, e.EntryCount)
}

func (e *DeleteBlockedError) Unwrap() error {
	return ErrSalespersonHasCommissions
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input or
// a refused operation, as opposed to an internal failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrSalespersonHasCommissions) ||
		errors.Is(err, ErrDuplicateEmail) ||
		errors.Is(err, ErrInvalidRevenue) ||
		errors.Is(err, ErrInvalidMethod)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSalespersonNotFound) ||
		errors.Is(err, ErrCommissionNotFound)
}
