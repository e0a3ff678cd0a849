package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Expense struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID   uuid.UUID `gorm:"type:uuid;index;not null"`
	ClientID uuid.UUID `gorm:"type:uuid;index;not null"`
	// Optional: an expense may be client-level without a project.
	ProjectID *uuid.UUID `gorm:"type:uuid;index"`

	Date        time.Time `gorm:"not null"`
	Amount      float64   `gorm:"type:decimal(10,2);not null"`
	Category    string    `gorm:"type:varchar(40);not null"`
	Description string    `gorm:"type:text"`
	Billable    bool      `gorm:"default:true"`

	TaxRate     float64 `gorm:"type:decimal(6,4);default:0.0"`
	TaxAmount   float64 `gorm:"type:decimal(10,2);default:0.0"` // amount * tax rate
	TotalAmount float64 `gorm:"type:decimal(10,2);not null"`    // amount + tax amount

	Tags StringList `gorm:"type:jsonb;default:'[]'"`

	gorm.Model
}
