package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MilestoneStatusPending    = "pending"
	MilestoneStatusInProgress = "in_progress"
	MilestoneStatusCompleted  = "completed"
)

// Milestone is a dated deliverable owned by exactly one project.
type Milestone struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	ProjectID uuid.UUID `gorm:"type:uuid;index;not null"`

	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	DueDate     *time.Time
	Amount      float64 `gorm:"type:decimal(10,2);default:0.0"`
	Status      string  `gorm:"type:varchar(20);default:'pending'"`

	gorm.Model
}

func (m *Milestone) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}
