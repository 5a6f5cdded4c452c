package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/slotline/booking-api/internal/httperr"
	"github.com/slotline/booking-api/internal/middleware"
	"github.com/slotline/booking-api/internal/models"
	"github.com/slotline/booking-api/internal/timezone"
)

type BusinessHandler struct {
	db *gorm.DB
}

func NewBusinessHandler(db *gorm.DB) *BusinessHandler {
	return &BusinessHandler{db: db}
}

type UpdateBusinessConfigRequest struct {
	MinAdvanceMinutes *int    `json:"min_advance_minutes"`
	Timezone          *string `json:"timezone"`
	Phone             *string `json:"phone"`
	Address           *string `json:"address"`
}

func (h *BusinessHandler) GetMeBusiness(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var biz models.Business
	if err := h.db.First(&biz, businessID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "business_not_found", "Business not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_business", "Failed to load business.")
		return
	}

	c.JSON(http.StatusOK, biz)
}

func (h *BusinessHandler) UpdateMeBusiness(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var biz models.Business
	if err := h.db.First(&biz, businessID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "business_not_found", "Business not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_business", "Failed to load business.")
		return
	}

	var req UpdateBusinessConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Minimum advance must be >= 0.")
			return
		}
		biz.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
			return
		}
		biz.Timezone = *req.Timezone
	}

	if req.Phone != nil {
		biz.Phone = *req.Phone
	}
	if req.Address != nil {
		biz.Address = *req.Address
	}

	if err := h.db.Save(&biz).Error; err != nil {
		httperr.Internal(c, "failed_to_update_business", "Failed to update business.")
		return
	}

	c.JSON(http.StatusOK, biz)
}
