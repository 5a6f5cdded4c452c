package appointment

import (
	"context"
	"time"

	domain "github.com/slotline/booking-api/internal/domain/appointment"
	"github.com/slotline/booking-api/internal/httperr"
	"github.com/slotline/booking-api/internal/timegrid"
	"github.com/slotline/booking-api/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository

	// now is injectable so "today" trimming is testable
	now func() time.Time
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo, now: time.Now}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	biz, err := uc.repo.GetBusinessByID(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}

	svc, err := uc.repo.GetService(ctx, in.BusinessID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if svc.DurationMinutes <= 0 {
		return nil, httperr.ErrBusiness("invalid_duration")
	}

	weekday := int(in.Date.Weekday())

	wh, err := uc.repo.GetActiveWorkingHours(ctx, in.StaffID, weekday)
	if err != nil {
		// day off, not a failure
		return []domain.TimeSlot{}, nil
	}

	win, ok, err := domain.WindowFromWorkingHours(wh)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.TimeSlot{}, nil
	}

	// never publish a slot booking would reject as too_soon: trim by
	// the minimum-advance cutoff instead of the bare clock
	minAdvance := biz.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}

	loc := in.Date.Location()
	dayStart := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), 0, 0, 0, 0, loc)
	cutoff := uc.now().In(loc).Add(time.Duration(minAdvance) * time.Minute)

	nowMinutes := -1
	if timezone.SameDate(cutoff, in.Date, loc) {
		nowMinutes = cutoff.Hour()*60 + cutoff.Minute()
	} else if cutoff.After(dayStart) {
		// the whole requested day is already inside the advance window
		return []domain.TimeSlot{}, nil
	}

	candidates, err := domain.GenerateSlots(win, svc.DurationMinutes, nowMinutes)
	if err != nil {
		return nil, err
	}

	appointments, err := uc.repo.ListDayAppointments(ctx, in.StaffID, in.Date)
	if err != nil {
		return nil, err
	}

	busy, err := domain.BusyIntervals(appointments)
	if err != nil {
		return nil, err
	}

	free := domain.FilterFree(candidates, svc.DurationMinutes, busy)

	slots := make([]domain.TimeSlot, 0, len(free))
	for _, start := range free {
		slots = append(slots, domain.TimeSlot{
			Start: timegrid.FromMinutes(start),
			End:   timegrid.FromMinutes(start + svc.DurationMinutes),
		})
	}

	return slots, nil
}
