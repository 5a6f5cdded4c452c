package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domain "github.com/slotline/booking-api/internal/domain/appointment"
	"github.com/slotline/booking-api/internal/httperr"
	"github.com/slotline/booking-api/internal/models"
)

func transitionFixture(status string) (*fakeRepo, *TransitionStatus) {
	repo := newFakeRepo()
	repo.appointments[10] = &models.Appointment{
		ID:            10,
		BusinessID:    1,
		Status:        status,
		PaymentStatus: "pending",
	}

	uc := NewTransitionStatus(repo, nil, nil, zap.NewNop())
	return repo, uc
}

func TestTransitionStatusConfirm(t *testing.T) {
	repo, uc := transitionFixture("pending")

	ap, err := uc.Execute(context.Background(), TransitionStatusInput{
		BusinessID:    1,
		AppointmentID: 10,
		To:            domain.StatusConfirmed,
		Cause:         domain.CauseStaffAction,
	})
	require.NoError(t, err)

	require.Equal(t, "confirmed", ap.Status)
	require.NotNil(t, ap.ConfirmedAt)
	require.Same(t, ap, repo.updated)
}

func TestTransitionStatusCancelConfirmed(t *testing.T) {
	repo, uc := transitionFixture("confirmed")

	ap, err := uc.Execute(context.Background(), TransitionStatusInput{
		BusinessID:    1,
		AppointmentID: 10,
		To:            domain.StatusCancelled,
		Cause:         domain.CauseClientAction,
	})
	require.NoError(t, err)

	require.Equal(t, "cancelled", ap.Status)
	require.NotNil(t, ap.CancelledAt)
	require.NotNil(t, repo.updated)
}

func TestTransitionStatusIllegal(t *testing.T) {
	repo, uc := transitionFixture("cancelled")

	_, err := uc.Execute(context.Background(), TransitionStatusInput{
		BusinessID:    1,
		AppointmentID: 10,
		To:            domain.StatusConfirmed,
		Cause:         domain.CauseStaffAction,
	})
	require.True(t, httperr.IsBusiness(err, "illegal_transition"))
	require.Nil(t, repo.updated)
}

func TestTransitionStatusNotFound(t *testing.T) {
	_, uc := transitionFixture("pending")

	_, err := uc.Execute(context.Background(), TransitionStatusInput{
		BusinessID:    1,
		AppointmentID: 99,
		To:            domain.StatusConfirmed,
		Cause:         domain.CauseStaffAction,
	})
	require.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

func TestTransitionStatusPaymentConfirms(t *testing.T) {
	repo, uc := transitionFixture("pending")

	ap, err := uc.Execute(context.Background(), TransitionStatusInput{
		BusinessID:    1,
		AppointmentID: 10,
		To:            domain.StatusConfirmed,
		Cause:         domain.CausePaymentConfirmed,
	})
	require.NoError(t, err)

	require.Equal(t, "confirmed", ap.Status)
	require.Equal(t, "paid", ap.PaymentStatus)
	require.NotNil(t, repo.updated)
}

func TestTransitionStatusStalePaymentIsNoOp(t *testing.T) {
	repo, uc := transitionFixture("cancelled")

	ap, err := uc.Execute(context.Background(), TransitionStatusInput{
		BusinessID:    1,
		AppointmentID: 10,
		To:            domain.StatusConfirmed,
		Cause:         domain.CausePaymentConfirmed,
	})
	require.NoError(t, err)

	// nothing persisted, appointment untouched
	require.Equal(t, "cancelled", ap.Status)
	require.Equal(t, "pending", ap.PaymentStatus)
	require.Nil(t, repo.updated)
}
