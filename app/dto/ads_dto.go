package dto

import (
	"time"
)

// CreateCampaignRequest represents the request to create an ad campaign
type CreateCampaignRequest struct {
	Name               string     `json:"name" validate:"required,min=1,max=255"`
	Advertiser         string     `json:"advertiser" validate:"required,min=1,max=255"`
	StartAt            *time.Time `json:"start_at,omitempty"`
	EndAt              *time.Time `json:"end_at,omitempty"`
	DailyImpressionCap *int       `json:"daily_impression_cap,omitempty"`
	DailyClickCap      *int       `json:"daily_click_cap,omitempty"`
}

// UpdateCampaignRequest represents the request to update a campaign. Nil
// fields are left untouched.
type UpdateCampaignRequest struct {
	ID                 uint       `json:"-"`
	Name               *string    `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Advertiser         *string    `json:"advertiser,omitempty" validate:"omitempty,min=1,max=255"`
	Status             *string    `json:"status,omitempty" validate:"omitempty,oneof=draft active paused ended"`
	StartAt            *time.Time `json:"start_at,omitempty"`
	EndAt              *time.Time `json:"end_at,omitempty"`
	DailyImpressionCap *int       `json:"daily_impression_cap,omitempty"`
	DailyClickCap      *int       `json:"daily_click_cap,omitempty"`
}

// CampaignDTO represents a campaign in admin responses
type CampaignDTO struct {
	ID                 uint       `json:"id"`
	UUID               string     `json:"uuid"`
	Name               string     `json:"name"`
	Advertiser         string     `json:"advertiser"`
	Status             string     `json:"status"`
	StartAt            *time.Time `json:"start_at,omitempty"`
	EndAt              *time.Time `json:"end_at,omitempty"`
	DailyImpressionCap *int       `json:"daily_impression_cap,omitempty"`
	DailyClickCap      *int       `json:"daily_click_cap,omitempty"`
	CreativeCount      int        `json:"creative_count"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
}

// ListCampaignsRequest represents admin campaign listing filters
type ListCampaignsRequest struct {
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
	Status   *string `json:"status,omitempty"`
	Name     *string `json:"name,omitempty"`
}

// ListCampaignsResponse represents the paginated campaign listing
type ListCampaignsResponse struct {
	Items      []CampaignDTO `json:"items"`
	Pagination PaginationDTO `json:"pagination"`
}

// CreativeTranslationInput carries one language version of creative text
type CreativeTranslationInput struct {
	Lang    string `json:"lang" validate:"required,min=2,max=10"`
	Title   string `json:"title,omitempty" validate:"omitempty,max=500"`
	AltText string `json:"alt_text,omitempty" validate:"omitempty,max=500"`
}

// CreateCreativeRequest represents the request to create a creative. Exactly
// one of the image or html fields must be set.
type CreateCreativeRequest struct {
	CampaignID   uint                       `json:"campaign_id" validate:"required"`
	MediaID      *uint                      `json:"media_id,omitempty"`
	HTMLSnippet  *string                    `json:"html_snippet,omitempty"`
	LandingURL   string                     `json:"landing_url,omitempty" validate:"omitempty,url,max=1024"`
	Translations []CreativeTranslationInput `json:"translations,omitempty" validate:"omitempty,dive"`
}

// UpdateCreativeRequest represents the request to update a creative
type UpdateCreativeRequest struct {
	ID           uint                       `json:"-"`
	IsActive     *bool                      `json:"is_active,omitempty"`
	LandingURL   *string                    `json:"landing_url,omitempty" validate:"omitempty,url,max=1024"`
	Translations []CreativeTranslationInput `json:"translations,omitempty" validate:"omitempty,dive"`
}

// CreativeDTO represents a creative in admin responses
type CreativeDTO struct {
	ID          uint       `json:"id"`
	UUID        string     `json:"uuid"`
	CampaignID  uint       `json:"campaign_id"`
	Kind        string     `json:"kind"`
	MediaID     *uint      `json:"media_id,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	HTMLSnippet string     `json:"html_snippet,omitempty"`
	LandingURL  string     `json:"landing_url,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// CreatePlacementRequest represents the request to create a placement
type CreatePlacementRequest struct {
	Code        string `json:"code" validate:"required,min=1,max=100"`
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Description string `json:"description,omitempty"`
	Width       *int   `json:"width,omitempty" validate:"omitempty,min=1"`
	Height      *int   `json:"height,omitempty" validate:"omitempty,min=1"`
}

// UpdatePlacementRequest represents the request to update a placement
type UpdatePlacementRequest struct {
	ID          uint    `json:"-"`
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	Width       *int    `json:"width,omitempty" validate:"omitempty,min=1"`
	Height      *int    `json:"height,omitempty" validate:"omitempty,min=1"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// PlacementDTO represents a placement in admin responses
type PlacementDTO struct {
	ID          uint       `json:"id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Width       *int       `json:"width,omitempty"`
	Height      *int       `json:"height,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// CreateAssignmentRequest represents the request to assign a creative to a
// placement
type CreateAssignmentRequest struct {
	PlacementID    uint       `json:"placement_id" validate:"required"`
	CreativeID     uint       `json:"creative_id" validate:"required"`
	Weight         *int       `json:"weight,omitempty" validate:"omitempty,min=0,max=100"`
	LangFilter     []string   `json:"lang_filter,omitempty"`
	CategoryFilter []int64    `json:"category_filter,omitempty"`
	StartAt        *time.Time `json:"start_at,omitempty"`
	EndAt          *time.Time `json:"end_at,omitempty"`
}

// UpdateAssignmentRequest represents the request to update an assignment
type UpdateAssignmentRequest struct {
	ID             uint       `json:"-"`
	Weight         *int       `json:"weight,omitempty" validate:"omitempty,min=0,max=100"`
	LangFilter     []string   `json:"lang_filter,omitempty"`
	CategoryFilter []int64    `json:"category_filter,omitempty"`
	StartAt        *time.Time `json:"start_at,omitempty"`
	EndAt          *time.Time `json:"end_at,omitempty"`
	IsActive       *bool      `json:"is_active,omitempty"`
}

// AssignmentDTO represents an assignment in admin responses
type AssignmentDTO struct {
	ID             uint       `json:"id"`
	PlacementID    uint       `json:"placement_id"`
	CreativeID     uint       `json:"creative_id"`
	Weight         int        `json:"weight"`
	LangFilter     []string   `json:"lang_filter,omitempty"`
	CategoryFilter []int64    `json:"category_filter,omitempty"`
	StartAt        *time.Time `json:"start_at,omitempty"`
	EndAt          *time.Time `json:"end_at,omitempty"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}
