package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ClientStatusActive   = "active"
	ClientStatusInactive = "inactive"
)

type Client struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name    string `gorm:"not null"`
	Email   string
	Phone   string
	Address string
	Website string
	Status  string `gorm:"type:varchar(20);default:'active'"`
	Notes   string `gorm:"type:text"`

	Communications []CommunicationLog `gorm:"foreignKey:ClientID"`
	Projects       []Project          `gorm:"foreignKey:ClientID"`
	Invoices       []Invoice          `gorm:"foreignKey:ClientID"`

	gorm.Model
}

// CommunicationLog is one dated note in a client's communication history.
type CommunicationLog struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	ClientID uuid.UUID `gorm:"type:uuid;index;not null"`
	Date     time.Time `gorm:"not null"`
	Note     string    `gorm:"type:text;not null"`
}

func (l *CommunicationLog) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}
