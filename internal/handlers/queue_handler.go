package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/slotline/booking-api/internal/httperr"
	"github.com/slotline/booking-api/internal/middleware"
	ucAppointment "github.com/slotline/booking-api/internal/usecase/appointment"
)

// QueueHandler covers the walk-in flow: reserve a place with no time
// attached, then assign a concrete slot once one opens up.
type QueueHandler struct {
	reserveQueueSlot *ucAppointment.ReserveQueueSlot
	assignQueueSlot  *ucAppointment.AssignQueueSlot
}

func NewQueueHandler(
	reserveQueueSlot *ucAppointment.ReserveQueueSlot,
	assignQueueSlot *ucAppointment.AssignQueueSlot,
) *QueueHandler {
	return &QueueHandler{
		reserveQueueSlot: reserveQueueSlot,
		assignQueueSlot:  assignQueueSlot,
	}
}

type ReserveQueueRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Notes       string `json:"notes"`
}

type AssignQueueSlotRequest struct {
	Date string `json:"date" binding:"required"` // YYYY-MM-DD
	Time string `json:"time" binding:"required"` // HH:MM
}

func (h *QueueHandler) Reserve(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var req ReserveQueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	ap, err := h.reserveQueueSlot.Execute(
		c.Request.Context(),
		ucAppointment.ReserveQueueSlotInput{
			BusinessID:  businessID,
			StaffID:     staffID,
			ClientName:  req.ClientName,
			ClientPhone: req.ClientPhone,
			ClientEmail: req.ClientEmail,
			ServiceID:   req.ServiceID,
			Notes:       req.Notes,
		},
	)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(201, ap)
}

func (h *QueueHandler) Assign(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req AssignQueueSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	ap, err := h.assignQueueSlot.Execute(
		c.Request.Context(),
		ucAppointment.AssignQueueSlotInput{
			BusinessID:    businessID,
			AppointmentID: uint(id),
			StaffID:       staffID,
			Date:          req.Date,
			Time:          req.Time,
		},
	)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "appointment_not_found"):
			httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		case httperr.IsBusiness(err, "illegal_transition"):
			httperr.BadRequest(c, "illegal_transition", "Not a queue reservation.")
		default:
			mapBookingError(c, err)
		}
		return
	}

	c.JSON(200, ap)
}
