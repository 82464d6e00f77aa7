package models

import (
	"time"
)

// AdsPlacement is a named slot on the site where creatives can be shown
type AdsPlacement struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Code        string     `gorm:"size:100;not null;uniqueIndex:uk_ads_placements_code" json:"code"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	Width       *int       `json:"width,omitempty"`
	Height      *int       `json:"height,omitempty"`
	IsActive    bool       `gorm:"not null;default:true;index:idx_ads_placements_is_active" json:"is_active"`
	CreatedAt   time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func (AdsPlacement) TableName() string {
	return "ads_placements"
}

// AdsPlacementFilter represents filter criteria for placement queries
type AdsPlacementFilter struct {
	ID       *uint
	Code     *string
	IsActive *bool
}
