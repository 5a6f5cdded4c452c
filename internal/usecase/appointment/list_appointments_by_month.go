package appointment

import (
	"context"
	"time"

	domain "github.com/slotline/booking-api/internal/domain/appointment"
	"github.com/slotline/booking-api/internal/timezone"
)

type ListAppointmentsByMonth struct {
	repo domain.Repository
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo: repo,
	}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	staffID uint,
	businessID uint,
	year int,
	month int,
) ([]AppointmentListItem, error) {

	biz, err := uc.repo.GetBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(biz.Timezone)

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		staffID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	out := make([]AppointmentListItem, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, AppointmentListItem{
			ID:            ap.ID,
			BookingRef:    ap.BookingRef,
			Date:          ap.Date.Format("2006-01-02"),
			StartTime:     ap.StartTime,
			EndTime:       ap.EndTime,
			Status:        ap.Status,
			PaymentStatus: ap.PaymentStatus,
			ClientName:    ap.Client.Name,
			ServiceName:   ap.Service.Name,
		})
	}

	return out, nil
}
