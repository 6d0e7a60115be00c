package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Reference is the client-facing booking code used in notifications.
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	ClientID uint   `gorm:"index" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	TherapistID uint      `gorm:"index" json:"therapist_id"`
	Therapist   Therapist `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"therapist"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	// Stored as UTC instants; interpreted in the salon timezone for
	// working-hours checks and chart bucketing.
	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	// Price is snapshotted from the service at booking time and never
	// re-derived from the service's current price.
	Price float64 `json:"price"`

	Notes              string `gorm:"size:500" json:"notes"`
	CancellationReason string `gorm:"size:255" json:"cancellation_reason"`

	ReminderSent bool       `gorm:"default:false" json:"reminder_sent"`
	CancelledAt  *time.Time `json:"cancelled_at"`
	CompletedAt  *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
