package models

import (
	"time"
)

// Tag is a flat label attached to news articles, identified by a unique code
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"size:100;not null;uniqueIndex:uk_tags_code" json:"code"`
	IsActive  bool      `gorm:"not null;default:true;index:idx_tags_is_active" json:"is_active"`
	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
}

func (Tag) TableName() string {
	return "tags"
}

// TagFilter represents filter criteria for tag queries
type TagFilter struct {
	ID       *uint
	Code     *string
	IsActive *bool
}
