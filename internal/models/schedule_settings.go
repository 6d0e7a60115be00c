package models

import "time"

// ScheduleSettings is the recurring weekly working-hours rule for one
// weekday (time.Weekday numbering, Sunday = 0). At most one row per weekday.
type ScheduleSettings struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Weekday int `gorm:"uniqueIndex" json:"weekday"`

	StartTime    string `gorm:"size:5" json:"start_time"` // HH:mm
	EndTime      string `gorm:"size:5" json:"end_time"`   // HH:mm
	IsWorkingDay bool   `json:"is_working_day"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
