package appointment

import (
	"github.com/slotline/booking-api/internal/httperr"
	"github.com/slotline/booking-api/internal/models"
	"github.com/slotline/booking-api/internal/timegrid"
)

// Window is a staff member's working window for one day, in minutes
// since midnight. Break bounds are -1 when the day has no break.
type Window struct {
	Start      int
	End        int
	BreakStart int
	BreakEnd   int
}

// WindowFromWorkingHours normalizes a WorkingHours row into minute
// offsets. Returns ok=false for inactive or empty rows (no error: a day
// off is not a failure).
func WindowFromWorkingHours(wh *models.WorkingHours) (Window, bool, error) {
	win := Window{BreakStart: -1, BreakEnd: -1}

	if wh == nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return win, false, nil
	}

	start, err := timegrid.ToMinutes(wh.StartTime)
	if err != nil {
		return win, false, err
	}
	end, err := timegrid.ToMinutes(wh.EndTime)
	if err != nil {
		return win, false, err
	}
	if start >= end {
		return win, false, nil
	}

	win.Start = start
	win.End = end

	if wh.BreakStart != "" && wh.BreakEnd != "" {
		bs, err := timegrid.ToMinutes(wh.BreakStart)
		if err != nil {
			return win, false, err
		}
		be, err := timegrid.ToMinutes(wh.BreakEnd)
		if err != nil {
			return win, false, err
		}
		if bs < be {
			win.BreakStart = bs
			win.BreakEnd = be
		}
	}

	return win, true, nil
}

// GenerateSlots produces the ordered candidate start minutes for a
// working window and service duration.
//
// nowMinutes trims the start of the window when the requested date is
// today; pass -1 for future dates. The effective start is snapped up to
// the next grid boundary, so slots land on :00/:10/:20/... regardless of
// where the window begins. Candidates overlapping the break window are
// skipped. Conflict filtering against existing bookings is the caller's
// job.
func GenerateSlots(win Window, durationMinutes int, nowMinutes int) ([]int, error) {
	if durationMinutes <= 0 {
		return nil, httperr.ErrBusiness("invalid_duration")
	}

	start := win.Start
	if nowMinutes > start {
		start = nowMinutes
	}
	start = timegrid.SnapUp(start, timegrid.GridStep)

	var slots []int
	for cur := start; cur+durationMinutes <= win.End; cur += timegrid.GridStep {
		if win.BreakStart >= 0 && cur < win.BreakEnd && cur+durationMinutes > win.BreakStart {
			continue
		}
		slots = append(slots, cur)
	}

	return slots, nil
}
