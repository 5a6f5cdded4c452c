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
	"github.com/slotline/booking-api/internal/timezone"
)

// ReserveQueueSlot enters a walk-in client into today's queue. The
// reservation holds no calendar time (empty interval) until a concrete
// slot is assigned.

type ReserveQueueSlotInput struct {
	BusinessID uint
	StaffID    uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceID uint
	Notes     string
}

type ReserveQueueSlot struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	feed   changefeed.Feed
	logger *zap.Logger
}

func NewReserveQueueSlot(
	repo domain.Repository,
	audit *audit.Dispatcher,
	feed changefeed.Feed,
	logger *zap.Logger,
) *ReserveQueueSlot {
	return &ReserveQueueSlot{
		repo:   repo,
		audit:  audit,
		feed:   feed,
		logger: logger,
	}
}

func (uc *ReserveQueueSlot) Execute(
	ctx context.Context,
	in ReserveQueueSlotInput,
) (*models.Appointment, error) {

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

	now := timezone.NowIn(biz.Timezone)

	ap := &models.Appointment{
		BusinessID: in.BusinessID,
		StaffID:    in.StaffID,
		ClientID:   client.ID,
		ServiceID:  svc.ID,

		BookingRef: uuid.NewString(),

		Date: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),

		// empty interval: invisible to the conflict detector and the
		// storage constraint until a slot is assigned
		StartMinute: 0,
		EndMinute:   0,

		Status:        string(domain.StatusQueueReserved),
		PaymentStatus: string(domain.PaymentPending),

		Notes: in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: in.BusinessID,
		StaffID:    &in.StaffID,
		Action:     "queue_slot_reserved",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	publishFeedEvent(ctx, uc.feed, uc.logger, ap, changefeed.ActionCreated)

	return ap, nil
}
