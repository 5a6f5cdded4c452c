package appointment

import "github.com/slotline/booking-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending       Status = "pending"
	StatusConfirmed     Status = "confirmed"
	StatusCancelled     Status = "cancelled"
	StatusNoShow        Status = "no_show"
	StatusQueueReserved Status = "queue_reserved"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// OccupiesCalendar reports whether an appointment in this status blocks
// its time range for new bookings. Cancelled and no-show never do.
func OccupiesCalendar(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusQueueReserved:
		return true
	}
	return false
}

// IsTerminal reports whether the status is frozen. No event, including a
// late payment confirmation, moves an appointment out of a terminal state.
func IsTerminal(s Status) bool {
	return s == StatusCancelled || s == StatusNoShow
}

// legalTransitions is the closed transition table.
var legalTransitions = map[Status][]Status{
	StatusPending:       {StatusConfirmed, StatusCancelled, StatusNoShow},
	StatusConfirmed:     {StatusCancelled, StatusNoShow},
	StatusQueueReserved: {StatusPending, StatusConfirmed, StatusCancelled},
}

// CanTransition validates a status change against the transition table.
func CanTransition(from, to Status) error {
	for _, next := range legalTransitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrBusiness("illegal_transition")
}

func InitialStatus() Status {
	return StatusPending
}
