package reservation

import "time"

// checkoutConflictsWithCheckin fixes the boundary policy for date
// windows: when true, a stay ending on day D and a stay starting on day
// D collide (inclusive boundaries on both ends). Same-day turnover is
// therefore rejected. The SQL predicate in
// repository.ReservationRepository.CountConflicts mirrors this policy
// and must change together with it.
const checkoutConflictsWithCheckin = true

// Overlaps reports whether the date windows [aStart, aEnd] and
// [bStart, bEnd] intersect under the configured boundary policy.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	if checkoutConflictsWithCheckin {
		return !aStart.After(bEnd) && !bStart.After(aEnd)
	}
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
