package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/slotline/booking-api/internal/httperr"
	"github.com/slotline/booking-api/internal/models"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCancelled},
		{StatusPending, StatusNoShow},
		{StatusConfirmed, StatusCancelled},
		{StatusConfirmed, StatusNoShow},
		{StatusQueueReserved, StatusPending},
		{StatusQueueReserved, StatusConfirmed},
		{StatusQueueReserved, StatusCancelled},
	}

	for _, tt := range allowed {
		require.NoError(t, CanTransition(tt.from, tt.to),
			"%s -> %s should be legal", tt.from, tt.to)
	}

	denied := []struct{ from, to Status }{
		{StatusCancelled, StatusConfirmed},
		{StatusCancelled, StatusPending},
		{StatusNoShow, StatusConfirmed},
		{StatusNoShow, StatusCancelled},
		{StatusConfirmed, StatusPending},
		{StatusConfirmed, StatusQueueReserved},
		{StatusPending, StatusQueueReserved},
		{StatusQueueReserved, StatusNoShow},
	}

	for _, tt := range denied {
		err := CanTransition(tt.from, tt.to)
		require.True(t, httperr.IsBusiness(err, "illegal_transition"),
			"%s -> %s should be illegal", tt.from, tt.to)
	}
}

func TestOccupiesCalendar(t *testing.T) {
	require.True(t, OccupiesCalendar(StatusPending))
	require.True(t, OccupiesCalendar(StatusConfirmed))
	require.True(t, OccupiesCalendar(StatusQueueReserved))
	require.False(t, OccupiesCalendar(StatusCancelled))
	require.False(t, OccupiesCalendar(StatusNoShow))
}

func TestIsTerminal(t *testing.T) {
	require.True(t, IsTerminal(StatusCancelled))
	require.True(t, IsTerminal(StatusNoShow))
	require.False(t, IsTerminal(StatusPending))
	require.False(t, IsTerminal(StatusConfirmed))
	require.False(t, IsTerminal(StatusQueueReserved))
}

func TestTransitionStaffAction(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: string(StatusPending)}

	changed, err := Transition(ap, StatusConfirmed, CauseStaffAction, now)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, string(StatusConfirmed), ap.Status)
	require.NotNil(t, ap.ConfirmedAt)
	require.Equal(t, now, *ap.ConfirmedAt)

	changed, err = Transition(ap, StatusCancelled, CauseStaffAction, now)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, string(StatusCancelled), ap.Status)
	require.NotNil(t, ap.CancelledAt)
}

func TestTransitionIllegalFromTerminal(t *testing.T) {
	now := time.Now()

	ap := &models.Appointment{Status: string(StatusCancelled)}

	changed, err := Transition(ap, StatusConfirmed, CauseStaffAction, now)
	require.True(t, httperr.IsBusiness(err, "illegal_transition"))
	require.False(t, changed)
	require.Equal(t, string(StatusCancelled), ap.Status)
}

func TestTransitionNoShowTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: string(StatusConfirmed)}

	changed, err := Transition(ap, StatusNoShow, CauseStaffAction, now)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, string(StatusNoShow), ap.Status)
	require.NotNil(t, ap.NoShowAt)
}

func TestTransitionPaymentConfirmed(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	t.Run("advances a pending appointment", func(t *testing.T) {
		ap := &models.Appointment{
			Status:        string(StatusPending),
			PaymentStatus: string(PaymentPending),
		}

		changed, err := Transition(ap, StatusConfirmed, CausePaymentConfirmed, now)
		require.NoError(t, err)
		require.True(t, changed)
		require.Equal(t, string(StatusConfirmed), ap.Status)
		require.Equal(t, string(PaymentPaid), ap.PaymentStatus)
		require.NotNil(t, ap.ConfirmedAt)
	})

	t.Run("advances a queue reservation", func(t *testing.T) {
		ap := &models.Appointment{
			Status:        string(StatusQueueReserved),
			PaymentStatus: string(PaymentPending),
		}

		changed, err := Transition(ap, StatusConfirmed, CausePaymentConfirmed, now)
		require.NoError(t, err)
		require.True(t, changed)
		require.Equal(t, string(StatusConfirmed), ap.Status)
		require.Equal(t, string(PaymentPaid), ap.PaymentStatus)
	})

	t.Run("stale event against a cancelled appointment is a no-op", func(t *testing.T) {
		ap := &models.Appointment{
			Status:        string(StatusCancelled),
			PaymentStatus: string(PaymentPending),
		}

		changed, err := Transition(ap, StatusConfirmed, CausePaymentConfirmed, now)
		require.NoError(t, err)
		require.False(t, changed)
		require.Equal(t, string(StatusCancelled), ap.Status)
		require.Equal(t, string(PaymentPending), ap.PaymentStatus)
	})

	t.Run("already confirmed is a no-op", func(t *testing.T) {
		ap := &models.Appointment{
			Status:        string(StatusConfirmed),
			PaymentStatus: string(PaymentPaid),
		}

		changed, err := Transition(ap, StatusConfirmed, CausePaymentConfirmed, now)
		require.NoError(t, err)
		require.False(t, changed)
	})
}
