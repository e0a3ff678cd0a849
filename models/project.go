package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ProjectStatusActive    = "active"
	ProjectStatusOnHold    = "on_hold"
	ProjectStatusCompleted = "completed"

	BudgetTypeFixed  = "fixed"
	BudgetTypeHourly = "hourly"
)

type Project struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID   uuid.UUID `gorm:"type:uuid;index;not null"`
	ClientID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name        string `gorm:"not null"`
	Description string `gorm:"type:text"`
	Status      string `gorm:"type:varchar(20);default:'active'"`

	HourlyRate   float64 `gorm:"type:decimal(10,2);default:0.0"`
	BudgetAmount float64 `gorm:"type:decimal(10,2);default:0.0"`
	BudgetType   string  `gorm:"type:varchar(10);default:'hourly'"` // fixed or hourly

	Milestones []Milestone `gorm:"foreignKey:ProjectID"`

	gorm.Model
}
