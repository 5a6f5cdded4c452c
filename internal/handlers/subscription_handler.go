package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/slotline/booking-api/internal/middleware"
	"github.com/slotline/booking-api/internal/models"
)

// SubscriptionHandler manages the subscription records the booking core
// consults at booking time. Billing for these plans happens elsewhere.
type SubscriptionHandler struct {
	db *gorm.DB
}

func NewSubscriptionHandler(db *gorm.DB) *SubscriptionHandler {
	return &SubscriptionHandler{db: db}
}

type CreateSubscriptionRequest struct {
	ClientPhone string     `json:"client_phone" binding:"required"`
	PlanName    string     `json:"plan_name" binding:"required"`
	StaffID     *uint      `json:"staff_id"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

func (h *SubscriptionHandler) List(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var subs []models.Subscription
	if err := h.db.
		Where("business_id = ?", businessID).
		Order("created_at DESC").
		Find(&subs).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_subscriptions"})
		return
	}

	c.JSON(http.StatusOK, subs)
}

func (h *SubscriptionHandler) Create(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	sub := models.Subscription{
		BusinessID:  businessID,
		StaffID:     req.StaffID,
		ClientPhone: req.ClientPhone,
		PlanName:    req.PlanName,
		Status:      "active",
		ExpiresAt:   req.ExpiresAt,
	}

	if err := h.db.Create(&sub).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_subscription"})
		return
	}

	c.JSON(http.StatusCreated, sub)
}

func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)
	id := c.Param("id")

	var sub models.Subscription
	if err := h.db.
		Where("id = ? AND business_id = ?", id, businessID).
		First(&sub).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "subscription_not_found"})
		return
	}

	sub.Status = "cancelled"
	if err := h.db.Save(&sub).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_cancel_subscription"})
		return
	}

	c.JSON(http.StatusOK, sub)
}
