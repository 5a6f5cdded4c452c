package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/slotline/booking-api/internal/domain/appointment"
	"github.com/slotline/booking-api/internal/httperr"
	"github.com/slotline/booking-api/internal/models"
	ucAppointment "github.com/slotline/booking-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// PublicHandler serves the anonymous booking surface: no auth, staff
// resolved per business, responses stripped down to what a client on
// the booking page needs.
type PublicHandler struct {
	db   *gorm.DB
	repo domain.Repository

	getAvailability *ucAppointment.GetAvailability
	createBooking   *ucAppointment.CreateBooking
}

func NewPublicHandler(
	db *gorm.DB,
	repo domain.Repository,
	getAvailability *ucAppointment.GetAvailability,
	createBooking *ucAppointment.CreateBooking,
) *PublicHandler {
	return &PublicHandler{
		db:              db,
		repo:            repo,
		getAvailability: getAvailability,
		createBooking:   createBooking,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type PublicCreateBookingRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	StaffID     uint   `json:"staff_id"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:MM
	Notes       string `json:"notes"`
}

// ======================================================
// HELPERS
// ======================================================

func (h *PublicHandler) businessBySlug(c *gin.Context) (*models.Business, bool) {
	biz, err := h.repo.GetBusinessBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.NotFound(c, "business_not_found", "Business not found.")
		return nil, false
	}

	return biz, true
}

// resolveStaff falls back to the business owner when the booking page
// does not let the client pick a staff member.
func (h *PublicHandler) resolveStaff(c *gin.Context, biz *models.Business, staffID uint) (*models.Staff, bool) {
	var staff models.Staff

	q := h.db.Where("business_id = ?", biz.ID)
	if staffID != 0 {
		q = q.Where("id = ?", staffID)
	} else {
		q = q.Where("role = ?", "owner")
	}

	if err := q.First(&staff).Error; err != nil {
		httperr.BadRequest(c, "staff_not_found", "Staff member not found.")
		return nil, false
	}

	return &staff, true
}

// ======================================================
// SERVICES
// ======================================================

func (h *PublicHandler) ListServices(c *gin.Context) {
	biz, ok := h.businessBySlug(c)
	if !ok {
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Where("business_id = ? AND active = true", biz.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Failed to list services.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"business": gin.H{
			"id":      biz.ID,
			"name":    biz.Name,
			"slug":    biz.Slug,
			"phone":   biz.Phone,
			"address": biz.Address,
		},
		"services": services,
	})
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *PublicHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Date and service are required.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service.")
		return
	}

	var staffID uint
	if s := c.Query("staff_id"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_staff_id", "Invalid staff member.")
			return
		}
		staffID = uint(v)
	}

	biz, ok := h.businessBySlug(c)
	if !ok {
		return
	}

	staff, ok := h.resolveStaff(c, biz, staffID)
	if !ok {
		return
	}

	date, err := parseDateInBusiness(biz, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	slots, err := h.getAvailability.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			BusinessID: biz.ID,
			StaffID:    staff.ID,
			ServiceID:  uint(serviceID),
			Date:       date,
		},
	)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "service_not_found"):
			httperr.BadRequest(c, "service_not_found", "Service not found.")
		case httperr.IsBusiness(err, "invalid_duration"):
			httperr.BadRequest(c, "invalid_duration", "Service duration is misconfigured.")
		case httperr.IsBusiness(err, "malformed_time"):
			httperr.Internal(c, "malformed_time", "Stored schedule is corrupted.")
		default:
			httperr.Internal(c, "availability_failed", "Failed to compute availability.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

// ======================================================
// CREATE BOOKING
// ======================================================

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	biz, ok := h.businessBySlug(c)
	if !ok {
		return
	}

	var req PublicCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	staff, ok := h.resolveStaff(c, biz, req.StaffID)
	if !ok {
		return
	}

	ap, err := h.createBooking.Execute(
		c.Request.Context(),
		ucAppointment.CreateBookingInput{
			BusinessID:  biz.ID,
			StaffID:     staff.ID,
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

	// anonymous write path: no row readback, just the reference
	c.JSON(http.StatusCreated, gin.H{
		"booking_ref":    ap.BookingRef,
		"date":           req.Date,
		"start_time":     ap.StartTime,
		"end_time":       ap.EndTime,
		"status":         ap.Status,
		"payment_status": ap.PaymentStatus,
	})
}
