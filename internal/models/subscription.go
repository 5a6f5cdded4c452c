package models

import "time"

// Subscription is owned by the billing side of the platform; the booking
// core only reads it to decide whether an appointment is pre-paid.
// StaffID nil means the plan covers every staff member of the business.
type Subscription struct {
	ID         uint  `gorm:"primaryKey" json:"id"`
	BusinessID uint  `gorm:"index" json:"business_id"`
	StaffID    *uint `json:"staff_id"`

	ClientPhone string `gorm:"size:20;index" json:"client_phone"`
	PlanName    string `gorm:"size:100" json:"plan_name"`
	Status      string `gorm:"size:20;default:'active'" json:"status"`

	ExpiresAt *time.Time `json:"expires_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
