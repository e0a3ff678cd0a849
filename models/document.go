package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AccessLevelPrivate = "private"
	AccessLevelShared  = "shared"
	AccessLevelPublic  = "public"

	// RootFolderID is the sentinel parent of top-level folders and documents.
	RootFolderID = "root"
)

type Document struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name     string `gorm:"not null"`
	FolderID string `gorm:"type:varchar(40);index;default:'root'"`

	Tags        StringList `gorm:"type:jsonb;default:'[]'"`
	AccessLevel string     `gorm:"type:varchar(20);default:'private'"`
	Encrypted   bool       `gorm:"default:false"`

	Versions         []DocumentVersion `gorm:"foreignKey:DocumentID"`
	CurrentVersionID *uuid.UUID        `gorm:"type:uuid"`

	gorm.Model
}

type DocumentVersion struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	DocumentID uuid.UUID `gorm:"type:uuid;index;not null"`

	UploadedAt time.Time `gorm:"not null"`
	Size       int64     `gorm:"default:0"`
	Uploader   string
	Notes      string `gorm:"type:text"`
}

func (v *DocumentVersion) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return
}

type Folder struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name     string `gorm:"not null"`
	ParentID string `gorm:"type:varchar(40);index;default:'root'"`

	gorm.Model
}

func (f *Folder) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return
}
