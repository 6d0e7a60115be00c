package models

import "time"

// ScheduleException overrides the weekly rule for one calendar date:
// either closed for the day or open with a different window.
// TherapistID nil means the exception applies salon-wide.
type ScheduleException struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Date in YYYY-MM-DD form, interpreted in the salon timezone.
	Date string `gorm:"size:10;index;not null" json:"date"`

	StartTime    string `gorm:"size:5" json:"start_time"`
	EndTime      string `gorm:"size:5" json:"end_time"`
	IsWorkingDay bool   `json:"is_working_day"`
	Note         string `gorm:"size:255" json:"note"`

	TherapistID *uint `json:"therapist_id"`

	CreatedAt time.Time `json:"created_at"`
}
