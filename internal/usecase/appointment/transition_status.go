package appointment

import (
	"context"

	"go.uber.org/zap"

	"github.com/slotline/booking-api/internal/audit"
	"github.com/slotline/booking-api/internal/changefeed"
	domain "github.com/slotline/booking-api/internal/domain/appointment"
	"github.com/slotline/booking-api/internal/httperr"
	"github.com/slotline/booking-api/internal/models"
	"github.com/slotline/booking-api/internal/timezone"
)

type TransitionStatusInput struct {
	BusinessID    uint
	AppointmentID uint
	StaffID       *uint // nil for system-originated events

	To    domain.Status
	Cause domain.Cause
}

type TransitionStatus struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	feed   changefeed.Feed
	logger *zap.Logger
}

func NewTransitionStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	feed changefeed.Feed,
	logger *zap.Logger,
) *TransitionStatus {
	return &TransitionStatus{
		repo:   repo,
		audit:  audit,
		feed:   feed,
		logger: logger,
	}
}

func (uc *TransitionStatus) Execute(
	ctx context.Context,
	in TransitionStatusInput,
) (*models.Appointment, error) {

	biz, err := uc.repo.GetBusinessByID(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, in.BusinessID, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(biz.Timezone)

	changed, err := domain.Transition(ap, in.To, in.Cause, now)
	if err != nil {
		return nil, err
	}
	if !changed {
		// stale event against a frozen appointment; nothing to persist
		return ap, nil
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: in.BusinessID,
		StaffID:    in.StaffID,
		Action:     "appointment_" + ap.Status,
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	publishFeedEvent(ctx, uc.feed, uc.logger, ap, changefeed.ActionUpdated)

	return ap, nil
}
