package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Media references a blob in the S3-compatible object store. The row is a
// passthrough record: the storage key identifies the object, the URL is what
// public clients receive.
type Media struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UUID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_media_uuid" json:"uuid"`
	FileName     string    `gorm:"size:255;not null" json:"file_name"`
	ContentType  string    `gorm:"size:100;not null" json:"content_type"`
	SizeBytes    int64     `gorm:"not null" json:"size_bytes"`
	StorageKey   string    `gorm:"size:512;not null;uniqueIndex:uk_media_storage_key" json:"storage_key"`
	URL          string    `gorm:"size:1024;not null" json:"url"`
	UploadedByID *uint     `gorm:"index:idx_media_uploaded_by" json:"uploaded_by_id,omitempty"`
	CreatedAt    time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`

	UploadedBy *User `gorm:"foreignKey:UploadedByID;references:ID" json:"uploaded_by,omitempty"`
}

func (Media) TableName() string {
	return "media"
}

func (m *Media) BeforeCreate(tx *gorm.DB) error {
	if m.UUID == uuid.Nil {
		m.UUID = uuid.New()
	}
	return nil
}

// MediaFilter represents filter criteria for media queries
type MediaFilter struct {
	ID           *uint
	UUID         *uuid.UUID
	StorageKey   *string
	UploadedByID *uint
	ContentType  *string
}
