package appointment

import (
	"context"
	"time"

	domain "github.com/slotline/booking-api/internal/domain/appointment"
	"github.com/slotline/booking-api/internal/timezone"
)

type AppointmentListItem struct {
	ID            uint   `json:"id"`
	BookingRef    string `json:"booking_ref"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	ClientName    string `json:"client_name"`
	ServiceName   string `json:"service_name"`
}

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	staffID uint,
	businessID uint,
	date time.Time,
) ([]AppointmentListItem, error) {

	biz, err := uc.repo.GetBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(biz.Timezone)

	start := time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		0, 0, 0, 0,
		loc,
	)
	end := start.Add(24 * time.Hour)

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
