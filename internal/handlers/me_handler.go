package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/slotline/booking-api/internal/middleware"
	"github.com/slotline/booking-api/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	staffIDVal, exists := c.Get(middleware.ContextStaffID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	staffID := staffIDVal.(uint)

	var staff models.Staff
	if err := h.db.Preload("Business").First(&staff, staffID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "staff_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          staff.ID,
		"name":        staff.Name,
		"email":       staff.Email,
		"phone":       staff.Phone,
		"role":        staff.Role,
		"business_id": staff.BusinessID,
		"business": gin.H{
			"id":       staff.Business.ID,
			"name":     staff.Business.Name,
			"slug":     staff.Business.Slug,
			"timezone": staff.Business.Timezone,
		},
	})
}
