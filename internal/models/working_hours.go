package models

import "time"

// WorkingHours is one staff member's window for one weekday (0 = Sunday).
// Times are stored as "HH:MM"; legacy rows may carry a seconds suffix.
// At most one active row per (staff, weekday).
type WorkingHours struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	StaffID uint `gorm:"index:idx_working_hours_staff_weekday" json:"staff_id"`

	Weekday int `gorm:"index:idx_working_hours_staff_weekday" json:"weekday"`

	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
	Active     bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
