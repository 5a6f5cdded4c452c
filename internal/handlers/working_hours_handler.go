package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/slotline/booking-api/internal/middleware"
	"github.com/slotline/booking-api/internal/models"
	"github.com/slotline/booking-api/internal/timegrid"
)

type WorkingHoursHandler struct {
	db *gorm.DB
}

func NewWorkingHoursHandler(db *gorm.DB) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db}
}

type WorkingDayConfig struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)

	var hours []models.WorkingHours
	if err := h.db.
		Where("staff_id = ?", staffID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_working_hours"})
		return
	}

	c.JSON(http.StatusOK, hours)
}

func (h *WorkingHoursHandler) Update(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	// one active row per weekday, start before end
	seen := map[int]bool{}
	for _, d := range req.Days {
		if !d.Active {
			continue
		}

		if seen[d.Weekday] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "duplicate_weekday"})
			return
		}
		seen[d.Weekday] = true

		start, err := timegrid.ToMinutes(d.StartTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed_time"})
			return
		}
		end, err := timegrid.ToMinutes(d.EndTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed_time"})
			return
		}
		if start >= end {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_window"})
			return
		}
	}

	if err := h.db.Where("staff_id = ?", staffID).Delete(&models.WorkingHours{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_clear_existing_hours"})
		return
	}

	var toCreate []models.WorkingHours
	for _, d := range req.Days {
		wh := models.WorkingHours{
			StaffID:    staffID,
			Weekday:    d.Weekday,
			Active:     d.Active,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
			BreakStart: d.BreakStart,
			BreakEnd:   d.BreakEnd,
		}
		toCreate = append(toCreate, wh)
	}

	if len(toCreate) > 0 {
		if err := h.db.Create(&toCreate).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_working_hours"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
