package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdsCampaignStatus represents the status of an advertising campaign
type AdsCampaignStatus string

const (
	AdsCampaignStatusDraft  AdsCampaignStatus = "draft"
	AdsCampaignStatusActive AdsCampaignStatus = "active"
	AdsCampaignStatusPaused AdsCampaignStatus = "paused"
	AdsCampaignStatusEnded  AdsCampaignStatus = "ended"
)

// String returns the string representation of the status
func (s AdsCampaignStatus) String() string {
	return string(s)
}

// Valid checks if the status is valid
func (s AdsCampaignStatus) Valid() bool {
	switch s {
	case AdsCampaignStatusDraft, AdsCampaignStatusActive,
		AdsCampaignStatusPaused, AdsCampaignStatusEnded:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether a status change is permitted.
// ENDED is terminal: once a campaign has ended no further change is allowed.
func (s AdsCampaignStatus) CanTransitionTo(next AdsCampaignStatus) bool {
	if !next.Valid() {
		return false
	}
	if s == AdsCampaignStatusEnded {
		return false
	}
	return s != next
}

// Scan implements the sql.Scanner interface for AdsCampaignStatus
func (s *AdsCampaignStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = AdsCampaignStatus(v)
	case []byte:
		*s = AdsCampaignStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into AdsCampaignStatus", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for AdsCampaignStatus
func (s AdsCampaignStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid AdsCampaignStatus: %s", s)
	}
	return string(s), nil
}

// AdsCampaign groups creatives and assignments for one advertiser. The daily
// caps are advisory: reporting uses them, the selection engine does not.
type AdsCampaign struct {
	ID                 uint              `gorm:"primaryKey" json:"id"`
	UUID               uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:uk_ads_campaigns_uuid" json:"uuid"`
	Name               string            `gorm:"size:255;not null" json:"name"`
	Advertiser         string            `gorm:"size:255" json:"advertiser,omitempty"`
	Status             AdsCampaignStatus `gorm:"type:ads_campaign_status;not null;default:'draft';index:idx_ads_campaigns_status" json:"status"`
	StartAt            *time.Time        `json:"start_at,omitempty"`
	EndAt              *time.Time        `json:"end_at,omitempty"`
	DailyImpressionCap *int              `json:"daily_impression_cap,omitempty"`
	DailyClickCap      *int              `json:"daily_click_cap,omitempty"`
	CreatedAt          time.Time         `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt          *time.Time        `json:"updated_at,omitempty"`

	// Relations
	Creatives []AdsCreative `gorm:"foreignKey:CampaignID" json:"creatives,omitempty"`
}

func (AdsCampaign) TableName() string {
	return "ads_campaigns"
}

func (c *AdsCampaign) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == uuid.Nil {
		c.UUID = uuid.New()
	}
	return nil
}

// WindowContains reports whether now falls inside the campaign's validity
// window, treating nil bounds as unbounded; the end bound is exclusive.
func (c *AdsCampaign) WindowContains(now time.Time) bool {
	if c.StartAt != nil && now.Before(*c.StartAt) {
		return false
	}
	if c.EndAt != nil && !now.Before(*c.EndAt) {
		return false
	}
	return true
}

// AdsCampaignFilter represents filter criteria for campaign queries
type AdsCampaignFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	Name          *string
	Advertiser    *string
	Status        *AdsCampaignStatus
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
