package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/slotline/booking-api/internal/httperr"
	"github.com/slotline/booking-api/internal/models"
)

func TestReserveQueueSlot(t *testing.T) {
	repo := newFakeRepo()
	repo.service = &models.Service{ID: 2, BusinessID: 1, DurationMinutes: 30, Active: true}

	uc := NewReserveQueueSlot(repo, nil, nil, zap.NewNop())

	ap, err := uc.Execute(context.Background(), ReserveQueueSlotInput{
		BusinessID:  1,
		StaffID:     5,
		ClientName:  "Dana",
		ClientPhone: "+15550001111",
		ServiceID:   2,
	})
	require.NoError(t, err)

	require.Equal(t, "queue_reserved", ap.Status)
	require.Equal(t, "pending", ap.PaymentStatus)
	require.NotEmpty(t, ap.BookingRef)

	// empty interval: invisible to conflict detection until assigned
	require.Equal(t, 0, ap.StartMinute)
	require.Equal(t, 0, ap.EndMinute)
	require.Empty(t, ap.StartTime)

	require.Same(t, ap, repo.created)
}

func TestReserveQueueSlotServiceNotFound(t *testing.T) {
	repo := newFakeRepo()
	uc := NewReserveQueueSlot(repo, nil, nil, zap.NewNop())

	_, err := uc.Execute(context.Background(), ReserveQueueSlotInput{
		BusinessID: 1,
		StaffID:    5,
		ServiceID:  2,
	})
	require.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func assignFixture(status string) (*fakeRepo, *AssignQueueSlot) {
	repo := newFakeRepo()
	repo.service = &models.Service{ID: 2, BusinessID: 1, DurationMinutes: 30, Active: true}
	repo.wh = &models.WorkingHours{
		StaffID:   5,
		Active:    true,
		StartTime: "09:00",
		EndTime:   "18:00",
	}
	repo.appointments[10] = &models.Appointment{
		ID:         10,
		BusinessID: 1,
		StaffID:    5,
		ServiceID:  2,
		Status:     status,
	}

	uc := NewAssignQueueSlot(repo, nil, nil, zap.NewNop())
	return repo, uc
}

func assignInput() AssignQueueSlotInput {
	return AssignQueueSlotInput{
		BusinessID:    1,
		AppointmentID: 10,
		StaffID:       5,
		Date:          time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02"),
		Time:          "10:00",
	}
}

func TestAssignQueueSlot(t *testing.T) {
	repo, uc := assignFixture("queue_reserved")

	ap, err := uc.Execute(context.Background(), assignInput())
	require.NoError(t, err)

	require.Equal(t, "pending", ap.Status)
	require.Equal(t, "10:00", ap.StartTime)
	require.Equal(t, "10:30", ap.EndTime)
	require.Equal(t, 600, ap.StartMinute)
	require.Equal(t, 630, ap.EndMinute)
	require.Same(t, ap, repo.updated)
}

func TestAssignQueueSlotRequiresReservation(t *testing.T) {
	repo, uc := assignFixture("pending")

	_, err := uc.Execute(context.Background(), assignInput())
	require.True(t, httperr.IsBusiness(err, "illegal_transition"))
	require.Nil(t, repo.updated)
}

func TestAssignQueueSlotConflict(t *testing.T) {
	repo, uc := assignFixture("queue_reserved")
	repo.day = []models.Appointment{
		{Status: "confirmed", StartTime: "10:00", EndTime: "10:30"},
	}

	_, err := uc.Execute(context.Background(), assignInput())
	require.True(t, httperr.IsBusiness(err, "slot_conflict"))
	require.Nil(t, repo.updated)
}

func TestAssignQueueSlotOverlapsBreak(t *testing.T) {
	repo, uc := assignFixture("queue_reserved")
	repo.wh.BreakStart = "12:00"
	repo.wh.BreakEnd = "13:00"

	in := assignInput()
	in.Time = "12:00"

	_, err := uc.Execute(context.Background(), in)
	require.True(t, httperr.IsBusiness(err, "outside_working_hours"))
	require.Nil(t, repo.updated)
}

func TestAssignQueueSlotOutsideWindow(t *testing.T) {
	_, uc := assignFixture("queue_reserved")

	in := assignInput()
	in.Time = "17:50" // 30-minute service runs past 18:00

	_, err := uc.Execute(context.Background(), in)
	require.True(t, httperr.IsBusiness(err, "outside_working_hours"))
}
