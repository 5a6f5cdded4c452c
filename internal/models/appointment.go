package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BusinessID uint     `json:"business_id"`
	Business   Business `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"business"`

	StaffID uint  `json:"staff_id"`
	Staff   Staff `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"staff"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	// BookingRef is what anonymous callers get back instead of the row.
	BookingRef string `gorm:"size:36;uniqueIndex" json:"booking_ref"`

	Date time.Time `gorm:"type:date;index" json:"date"`

	// StartTime/EndTime are the display values ("HH:MM"; legacy rows may
	// carry seconds). StartMinute/EndMinute are canonical and back the
	// storage-level no-overlap constraint. Queue reservations hold an
	// empty interval (start == end) until a slot is assigned.
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	StartMinute int    `json:"start_minute"`
	EndMinute   int    `json:"end_minute"`

	Status        string `gorm:"size:20;default:'pending'" json:"status"`
	PaymentStatus string `gorm:"size:20;default:'pending'" json:"payment_status"`

	IsSubscriptionAppointment bool  `json:"is_subscription_appointment"`
	SubscriptionID            *uint `json:"subscription_id"`

	Notes       string     `gorm:"size:255" json:"notes"`
	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	NoShowAt    *time.Time `json:"no_show_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
