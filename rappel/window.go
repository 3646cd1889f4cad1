/*
window.go - Performance window calculation

PURPOSE:
  Computes, for a given entry date and calculation method, the date range
  defining "prior qualifying revenue". Only OTHER entries of the same
  salesperson falling inside this window count toward the performance
  revenue that selects the bonus tier.

HALF-OPEN SEMANTICS:
  Windows are [Start, End) with End equal to the entry's own date. The
  entry's own revenue is therefore never inside its own window, and neither
  is any other entry sharing the exact same calendar date.
*/
package rappel

// =============================================================================
// WINDOW
// =============================================================================

// Window is a half-open date range [Start, End).
type Window struct {
	Start Date
	End   Date
}

// Contains reports whether d falls inside the window.
func (w Window) Contains(d Date) bool {
	return d.AfterOrEqual(w.Start) && d.Before(w.End)
}

func (w Window) String() string {
	return "[" + w.Start.String() + ", " + w.End.String() + ")"
}

// WindowFor returns the performance window for an entry dated entryDate
// under the given method.
//
//	rolling: [entryDate − 1 year, entryDate) — calendar-year subtraction
//	         (same month/day, year − 1), not a fixed 365-day offset.
//	ytd:     [January 1 of entryDate's year, entryDate)
//
// Unknown methods fall back to rolling.
func WindowFor(entryDate Date, method Method) Window {
	switch method {
	case MethodYTD:
		return Window{Start: StartOfYear(entryDate.Year()), End: entryDate}
	default:
		return Window{Start: entryDate.AddYears(-1), End: entryDate}
	}
}
