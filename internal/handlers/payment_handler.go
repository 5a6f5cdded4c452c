package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/slotline/booking-api/internal/domain/appointment"
	"github.com/slotline/booking-api/internal/httperr"
	ucAppointment "github.com/slotline/booking-api/internal/usecase/appointment"
)

// PaymentHandler receives payment-confirmation events from the billing
// side of the platform. Gateway specifics (provider webhooks, signature
// checks) live there; by the time an event lands here it is trusted.
type PaymentHandler struct {
	repo             domain.Repository
	transitionStatus *ucAppointment.TransitionStatus
}

func NewPaymentHandler(
	repo domain.Repository,
	transitionStatus *ucAppointment.TransitionStatus,
) *PaymentHandler {
	return &PaymentHandler{
		repo:             repo,
		transitionStatus: transitionStatus,
	}
}

type PaymentConfirmationRequest struct {
	BookingRef string `json:"booking_ref" binding:"required"`
}

func (h *PaymentHandler) Confirm(c *gin.Context) {
	var req PaymentConfirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	ap, err := h.repo.GetAppointmentByRef(c.Request.Context(), req.BookingRef)
	if err != nil {
		httperr.NotFound(c, "appointment_not_found", "Unknown booking reference.")
		return
	}

	// a late confirmation for a cancelled/no-show appointment is a
	// no-op, not an error; the use case handles that
	updated, err := h.transitionStatus.Execute(
		c.Request.Context(),
		ucAppointment.TransitionStatusInput{
			BusinessID:    ap.BusinessID,
			AppointmentID: ap.ID,
			To:            domain.StatusConfirmed,
			Cause:         domain.CausePaymentConfirmed,
		},
	)
	if err != nil {
		httperr.Internal(c, "failed_to_confirm_payment", "Failed to apply payment confirmation.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"booking_ref":    updated.BookingRef,
		"status":         updated.Status,
		"payment_status": updated.PaymentStatus,
	})
}
