package models

import "time"

type NotificationPrefs struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex" json:"user_id"`

	NewAppointments       bool `gorm:"default:true" json:"new_appointments"`
	CancelledAppointments bool `gorm:"default:true" json:"cancelled_appointments"`
	DailySummary          bool `gorm:"default:false" json:"daily_summary"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
