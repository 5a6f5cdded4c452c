package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/slotline/booking-api/internal/audit"
	"github.com/slotline/booking-api/internal/changefeed"
	domain "github.com/slotline/booking-api/internal/domain/appointment"
	"github.com/slotline/booking-api/internal/httperr"
	"github.com/slotline/booking-api/internal/models"
	"github.com/slotline/booking-api/internal/timegrid"
	"github.com/slotline/booking-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	BusinessID uint
	StaffID    uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceID uint

	Date  string // YYYY-MM-DD
	Time  string // HH:MM
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	feed   changefeed.Feed
	logger *zap.Logger
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	feed changefeed.Feed,
	logger *zap.Logger,
) *CreateBooking {
	return &CreateBooking{
		repo:   repo,
		audit:  audit,
		feed:   feed,
		logger: logger,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Appointment, error) {

	biz, err := uc.repo.GetBusinessByID(ctx, in.BusinessID)
	if err != nil {
		return nil, err
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

	svc, err := uc.repo.GetService(ctx, in.BusinessID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if svc.DurationMinutes <= 0 {
		return nil, httperr.ErrBusiness("invalid_duration")
	}

	endMinute := startMinute + svc.DurationMinutes

	// minimum advance, in the tenant's timezone
	minAdvance := biz.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}

	start := time.Date(
		date.Year(), date.Month(), date.Day(),
		startMinute/60, startMinute%60, 0, 0,
		loc,
	)
	now := timezone.NowIn(biz.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// working window containment
	wh, err := uc.repo.GetActiveWorkingHours(ctx, in.StaffID, int(date.Weekday()))
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

	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.BusinessID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	// best-effort conflict pre-check; the storage constraint is the
	// authoritative guard against concurrent bookings
	existing, err := uc.repo.ListDayAppointments(ctx, in.StaffID, date)
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

	// subscription short-circuit
	paymentStatus := domain.PaymentPending
	isSubscription := false
	var subscriptionID *uint

	covered, err := uc.repo.HasActiveSubscription(ctx, in.BusinessID, in.StaffID, in.ClientPhone)
	if err != nil {
		return nil, err
	}
	if covered {
		subscriptionID, err = uc.repo.GetActiveSubscriptionID(ctx, in.BusinessID, in.StaffID, in.ClientPhone)
		if err != nil {
			return nil, err
		}
		paymentStatus = domain.PaymentPaid
		isSubscription = true
	}

	ap := &models.Appointment{
		BusinessID: in.BusinessID,
		StaffID:    in.StaffID,
		ClientID:   client.ID,
		ServiceID:  svc.ID,

		BookingRef: uuid.NewString(),

		Date:        date,
		StartTime:   timegrid.FromMinutes(startMinute),
		EndTime:     timegrid.FromMinutes(endMinute),
		StartMinute: startMinute,
		EndMinute:   endMinute,

		Status:        string(domain.InitialStatus()),
		PaymentStatus: string(paymentStatus),

		IsSubscriptionAppointment: isSubscription,
		SubscriptionID:            subscriptionID,

		Notes: in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: in.BusinessID,
		StaffID:    &in.StaffID,
		Action:     "appointment_created",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	publishFeedEvent(ctx, uc.feed, uc.logger, ap, changefeed.ActionCreated)

	return ap, nil
}
