package appointment

import (
	"time"

	"github.com/slotline/booking-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Cause identifies what triggered a status change. Payment confirmations
// get special handling: they auto-advance open appointments but are
// silently ignored when they arrive late for a terminal one.
type Cause string

const (
	CauseStaffAction      Cause = "staff_action"
	CauseClientAction     Cause = "client_action"
	CausePaymentConfirmed Cause = "payment_confirmed"
)

// Transition applies a status change to the appointment.
//
// Returns whether the row changed. A stale payment confirmation against a
// cancelled/no-show appointment reports (false, nil): not an error, but
// nothing to persist either.
func Transition(ap *models.Appointment, to Status, cause Cause, now time.Time) (bool, error) {
	from := Status(ap.Status)

	if cause == CausePaymentConfirmed {
		if from != StatusPending && from != StatusQueueReserved {
			return false, nil
		}
		ap.Status = string(StatusConfirmed)
		ap.PaymentStatus = string(PaymentPaid)
		ap.ConfirmedAt = &now
		return true, nil
	}

	if err := CanTransition(from, to); err != nil {
		return false, err
	}

	ap.Status = string(to)
	switch to {
	case StatusConfirmed:
		ap.ConfirmedAt = &now
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusNoShow:
		ap.NoShowAt = &now
	}

	return true, nil
}
