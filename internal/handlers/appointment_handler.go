package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/slotline/booking-api/internal/domain/appointment"
	"github.com/slotline/booking-api/internal/httperr"
	"github.com/slotline/booking-api/internal/httpresp"
	"github.com/slotline/booking-api/internal/middleware"
	"github.com/slotline/booking-api/internal/models"
	ucAppointment "github.com/slotline/booking-api/internal/usecase/appointment"
	"gorm.io/gorm"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db *gorm.DB

	createBooking    *ucAppointment.CreateBooking
	transitionStatus *ucAppointment.TransitionStatus
	listByDate       *ucAppointment.ListAppointmentsByDate
	listByMonth      *ucAppointment.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	db *gorm.DB,
	createBooking *ucAppointment.CreateBooking,
	transitionStatus *ucAppointment.TransitionStatus,
	listByDate *ucAppointment.ListAppointmentsByDate,
	listByMonth *ucAppointment.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:               db,
		createBooking:    createBooking,
		transitionStatus: transitionStatus,
		listByDate:       listByDate,
		listByMonth:      listByMonth,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:MM
	Notes       string `json:"notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	ap, err := h.createBooking.Execute(
		c.Request.Context(),
		ucAppointment.CreateBookingInput{
			BusinessID:  businessID,
			StaffID:     staffID,
			ClientName:  req.ClientName,
			ClientPhone: req.ClientPhone,
			ClientEmail: req.ClientEmail,
			ServiceID:   req.ServiceID,
			Date:        req.Date,
			Time:        req.Time,
			Notes:       req.Notes,
		},
	)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(201, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	var biz models.Business
	if err := h.db.First(&biz, businessID).Error; err != nil {
		httperr.Internal(c, "business_not_found", "Business not found.")
		return
	}

	date, err := parseDateInBusiness(&biz, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	items, err := h.listByDate.Execute(c.Request.Context(), staffID, businessID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Failed to list appointments.")
		return
	}

	httpresp.List(c, items)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Year and month are required.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Invalid year.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Invalid month.")
		return
	}

	items, err := h.listByMonth.Execute(c.Request.Context(), staffID, businessID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Failed to list appointments.")
		return
	}

	c.JSON(200, gin.H{
		"year":         year,
		"month":        month,
		"appointments": items,
	})
}

// ======================================================
// STATUS TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(c, domain.StatusConfirmed)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, domain.StatusCancelled)
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	h.transition(c, domain.StatusNoShow)
}

func (h *AppointmentHandler) transition(c *gin.Context, to domain.Status) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := h.transitionStatus.Execute(
		c.Request.Context(),
		ucAppointment.TransitionStatusInput{
			BusinessID:    businessID,
			AppointmentID: uint(id),
			StaffID:       &staffID,
			To:            to,
			Cause:         domain.CauseStaffAction,
		},
	)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "appointment_not_found"):
			httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		case httperr.IsBusiness(err, "illegal_transition"):
			httperr.BadRequest(c, "illegal_transition", "Status change not permitted.")
		default:
			httperr.Internal(c, "failed_to_update_appointment", "Failed to update appointment.")
		}
		return
	}

	c.JSON(200, ap)
}

// ======================================================
// ERROR MAPPING
// ======================================================

func mapBookingError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
	case httperr.IsBusiness(err, "malformed_time"):
		httperr.BadRequest(c, "malformed_time", "Unparseable time value.")
	case httperr.IsBusiness(err, "invalid_duration"):
		httperr.BadRequest(c, "invalid_duration", "Service duration is misconfigured.")
	case httperr.IsBusiness(err, "too_soon"):
		httperr.BadRequest(c, "too_soon", "The requested time is too soon.")
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.BadRequest(c, "service_not_found", "Service not found.")
	case httperr.IsBusiness(err, "outside_working_hours"):
		httperr.BadRequest(c, "outside_working_hours", "Outside working hours.")
	case httperr.IsBusiness(err, "slot_conflict"):
		// caller should re-fetch availability, not retry the same slot
		httperr.Conflict(c, "slot_conflict", "The slot is no longer available.")
	default:
		httperr.Internal(c, "persistence_failed", "Failed to create appointment.")
	}
}
