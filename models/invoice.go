package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	InvoiceStatusDraft   = "draft"
	InvoiceStatusSent    = "sent"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusOverdue = "overdue"
)

type Invoice struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null"`

	InvoiceNumber string    `gorm:"uniqueIndex;not null"`
	ClientID      uuid.UUID `gorm:"type:uuid;index;not null"`
	// Projects the billed work belongs to, as uuid strings.
	ProjectIDs StringList `gorm:"type:jsonb;default:'[]'"`

	IssueDate time.Time `gorm:"not null"`
	DueDate   time.Time `gorm:"not null"`
	Status    string    `gorm:"type:varchar(20);default:'draft'"`

	// Sum of item amounts. The items list is the source of truth; this
	// is recomputed on every item mutation.
	Amount float64 `gorm:"type:decimal(10,2);not null"`

	Notes    string `gorm:"type:text"`
	Template string `gorm:"type:varchar(40);default:'standard'"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID"`
}

type InvoiceItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	InvoiceID uuid.UUID `gorm:"type:uuid;index;not null"`

	Description string  `gorm:"not null"`
	Quantity    float64 `gorm:"type:decimal(10,4);not null"` // hours may be fractional
	Rate        float64 `gorm:"type:decimal(10,2);not null"`
	Amount      float64 `gorm:"type:decimal(10,2);not null"` // quantity * rate
}
