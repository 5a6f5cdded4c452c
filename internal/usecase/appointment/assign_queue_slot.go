package appointment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/slotline/booking-api/internal/audit"
	"github.com/slotline/booking-api/internal/changefeed"
	domain "github.com/slotline/booking-api/internal/domain/appointment"
	"github.com/slotline/booking-api/internal/httperr"
	"github.com/slotline/booking-api/internal/models"
	"github.com/slotline/booking-api/internal/timegrid"
	"github.com/slotline/booking-api/internal/timezone"
)

// AssignQueueSlot gives a queue reservation a concrete time slot. The
// reservation becomes a regular pending appointment and starts occupying
// calendar space, so the full booking validation path applies.

type AssignQueueSlotInput struct {
	BusinessID    uint
	AppointmentID uint
	StaffID       uint

	Date string // YYYY-MM-DD
	Time string // HH:MM
}

type AssignQueueSlot struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	feed   changefeed.Feed
	logger *zap.Logger
}

func NewAssignQueueSlot(
	repo domain.Repository,
	audit *audit.Dispatcher,
	feed changefeed.Feed,
	logger *zap.Logger,
) *AssignQueueSlot {
	return &AssignQueueSlot{
		repo:   repo,
		audit:  audit,
		feed:   feed,
		logger: logger,
	}
}

func (uc *AssignQueueSlot) Execute(
	ctx context.Context,
	in AssignQueueSlotInput,
) (*models.Appointment, error) {

	biz, err := uc.repo.GetBusinessByID(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, in.BusinessID, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if domain.Status(ap.Status) != domain.StatusQueueReserved {
		return nil, httperr.ErrBusiness("illegal_transition")
	}

	svc, err := uc.repo.GetService(ctx, in.BusinessID, ap.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if svc.DurationMinutes <= 0 {
		return nil, httperr.ErrBusiness("invalid_duration")
	}

	loc := timezone.Location(biz.Timezone)

	date, err := time.ParseInLocation("2006-01-02", in.Date, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	startMinute, err := timegrid.ToMinutes(in.Time)
	if err != nil {
		return nil, err
	}
	endMinute := startMinute + svc.DurationMinutes

	wh, err := uc.repo.GetActiveWorkingHours(ctx, ap.StaffID, int(date.Weekday()))
	if err != nil {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	win, ok, err := domain.WindowFromWorkingHours(wh)
	if err != nil {
		return nil, err
	}
	if !ok || startMinute < win.Start || endMinute > win.End {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}
	if win.BreakStart >= 0 && startMinute < win.BreakEnd && endMinute > win.BreakStart {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	existing, err := uc.repo.ListDayAppointments(ctx, ap.StaffID, date)
	if err != nil {
		return nil, err
	}
	busy, err := domain.BusyIntervals(existing)
	if err != nil {
		return nil, err
	}
	if domain.HasConflict(domain.Interval{Start: startMinute, End: endMinute}, busy) {
		return nil, httperr.ErrBusiness("slot_conflict")
	}

	ap.Date = date
	ap.StartTime = timegrid.FromMinutes(startMinute)
	ap.EndTime = timegrid.FromMinutes(endMinute)
	ap.StartMinute = startMinute
	ap.EndMinute = endMinute

	now := timezone.NowIn(biz.Timezone)
	if _, err := domain.Transition(ap, domain.StatusPending, domain.CauseStaffAction, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: in.BusinessID,
		StaffID:    &in.StaffID,
		Action:     "queue_slot_assigned",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	publishFeedEvent(ctx, uc.feed, uc.logger, ap, changefeed.ActionUpdated)

	return ap, nil
}
