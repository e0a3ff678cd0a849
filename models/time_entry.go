package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TimeEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	ClientID  uuid.UUID `gorm:"type:uuid;index;not null"`
	ProjectID uuid.UUID `gorm:"type:uuid;index;not null"`

	StartTime time.Time `gorm:"not null"`
	EndTime   time.Time `gorm:"not null"`
	// Seconds between start and end. Always recomputed from the
	// timestamps on create/update, never taken from client input.
	Duration int64 `gorm:"not null"`

	Description string  `gorm:"type:text"`
	HourlyRate  float64 `gorm:"type:decimal(10,2);not null"` // rate snapshot at entry time
	Billable    bool    `gorm:"default:true"`

	gorm.Model
}
