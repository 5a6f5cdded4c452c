package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/slotline/booking-api/internal/domain/appointment"
	"github.com/slotline/booking-api/internal/httperr"
	"github.com/slotline/booking-api/internal/models"
)

func availabilityFixture() (*fakeRepo, *GetAvailability) {
	repo := newFakeRepo()
	repo.service = &models.Service{ID: 2, BusinessID: 1, DurationMinutes: 30, Active: true}
	repo.wh = &models.WorkingHours{
		StaffID:   5,
		Active:    true,
		StartTime: "09:00",
		EndTime:   "12:00",
	}

	uc := NewGetAvailability(repo)
	// far from the requested date, so no "today" trimming
	uc.now = func() time.Time {
		return time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	}

	return repo, uc
}

func availabilityInput() domain.AvailabilityInput {
	return domain.AvailabilityInput{
		BusinessID: 1,
		StaffID:    5,
		ServiceID:  2,
		Date:       time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestGetAvailabilityFutureDate(t *testing.T) {
	_, uc := availabilityFixture()

	slots, err := uc.Execute(context.Background(), availabilityInput())
	require.NoError(t, err)

	// 09:00-12:00, 30-minute service, 10-minute grid
	require.Len(t, slots, 16)
	require.Equal(t, domain.TimeSlot{Start: "09:00", End: "09:30"}, slots[0])
	require.Equal(t, domain.TimeSlot{Start: "11:30", End: "12:00"}, slots[len(slots)-1])
}

func TestGetAvailabilityTodayAppliesMinimumAdvance(t *testing.T) {
	_, uc := availabilityFixture()
	// 07:07 plus the 120-minute advance puts the cutoff at 09:07
	uc.now = func() time.Time {
		return time.Date(2026, 9, 15, 7, 7, 0, 0, time.UTC)
	}

	slots, err := uc.Execute(context.Background(), availabilityInput())
	require.NoError(t, err)

	require.NotEmpty(t, slots)
	require.Equal(t, "09:10", slots[0].Start)
}

func TestGetAvailabilityAdvanceSwallowsWindow(t *testing.T) {
	_, uc := availabilityFixture()
	// cutoff 12:37 is past the 12:00 close, nothing left to offer
	uc.now = func() time.Time {
		return time.Date(2026, 9, 15, 10, 37, 0, 0, time.UTC)
	}

	slots, err := uc.Execute(context.Background(), availabilityInput())
	require.NoError(t, err)
	require.Empty(t, slots)
}

func TestGetAvailabilityAdvanceCrossesMidnight(t *testing.T) {
	_, uc := availabilityFixture()
	// late on the requested day, the cutoff lands on the next one
	uc.now = func() time.Time {
		return time.Date(2026, 9, 15, 23, 30, 0, 0, time.UTC)
	}

	slots, err := uc.Execute(context.Background(), availabilityInput())
	require.NoError(t, err)
	require.Empty(t, slots)
}

func TestGetAvailabilityExcludesBookedSlots(t *testing.T) {
	repo, uc := availabilityFixture()
	repo.day = []models.Appointment{
		// legacy seconds suffix on purpose
		{Status: "confirmed", StartTime: "10:00:00", EndTime: "10:30:00"},
	}

	slots, err := uc.Execute(context.Background(), availabilityInput())
	require.NoError(t, err)

	starts := make([]string, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.Start)
	}

	require.Contains(t, starts, "09:30")
	require.Contains(t, starts, "10:30")
	require.NotContains(t, starts, "09:50")
	require.NotContains(t, starts, "10:00")
	require.NotContains(t, starts, "10:20")
}

func TestGetAvailabilityIgnoresCancelled(t *testing.T) {
	repo, uc := availabilityFixture()
	repo.day = []models.Appointment{
		{Status: "cancelled", StartTime: "10:00", EndTime: "10:30"},
		{Status: "no_show", StartTime: "11:00", EndTime: "11:30"},
	}

	slots, err := uc.Execute(context.Background(), availabilityInput())
	require.NoError(t, err)
	require.Len(t, slots, 16)
}

func TestGetAvailabilityDayOff(t *testing.T) {
	repo, uc := availabilityFixture()
	repo.whErr = errNotFound

	slots, err := uc.Execute(context.Background(), availabilityInput())
	require.NoError(t, err)
	require.Empty(t, slots)
}

func TestGetAvailabilityInactiveDay(t *testing.T) {
	repo, uc := availabilityFixture()
	repo.wh.Active = false

	slots, err := uc.Execute(context.Background(), availabilityInput())
	require.NoError(t, err)
	require.Empty(t, slots)
}

func TestGetAvailabilityServiceNotFound(t *testing.T) {
	repo, uc := availabilityFixture()
	repo.service = nil

	_, err := uc.Execute(context.Background(), availabilityInput())
	require.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestGetAvailabilityInvalidDuration(t *testing.T) {
	repo, uc := availabilityFixture()
	repo.service.DurationMinutes = 0

	_, err := uc.Execute(context.Background(), availabilityInput())
	require.True(t, httperr.IsBusiness(err, "invalid_duration"))
}
