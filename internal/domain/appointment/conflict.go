package appointment

import (
	"github.com/slotline/booking-api/internal/models"
	"github.com/slotline/booking-api/internal/timegrid"
)

// Interval is a half-open [Start, End) range in minutes since midnight.
type Interval struct {
	Start int
	End   int
}

// Overlaps uses half-open semantics: back-to-back appointments, where
// one ends exactly when the next starts, do not conflict.
func Overlaps(a, b Interval) bool {
	return a.Start < b.End && a.End > b.Start
}

// BusyIntervals extracts the calendar-occupying intervals from a day's
// appointments. Times are re-normalized through the time grid because
// stored values may carry trailing seconds from older write paths.
// Empty intervals (queue reservations awaiting a slot) are skipped.
func BusyIntervals(appointments []models.Appointment) ([]Interval, error) {
	busy := make([]Interval, 0, len(appointments))

	for _, ap := range appointments {
		if !OccupiesCalendar(Status(ap.Status)) {
			continue
		}
		if ap.StartTime == "" || ap.EndTime == "" {
			continue
		}

		start, err := timegrid.ToMinutes(ap.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := timegrid.ToMinutes(ap.EndTime)
		if err != nil {
			return nil, err
		}
		if start >= end {
			continue
		}

		busy = append(busy, Interval{Start: start, End: end})
	}

	return busy, nil
}

// HasConflict tests one candidate interval against the busy set.
func HasConflict(candidate Interval, busy []Interval) bool {
	for _, b := range busy {
		if Overlaps(candidate, b) {
			return true
		}
	}
	return false
}

// FilterFree keeps only candidates whose interval is conflict-free.
// Input order (ascending) is preserved.
func FilterFree(candidates []int, durationMinutes int, busy []Interval) []int {
	free := make([]int, 0, len(candidates))
	for _, start := range candidates {
		if !HasConflict(Interval{Start: start, End: start + durationMinutes}, busy) {
			free = append(free, start)
		}
	}
	return free
}
