package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreativeKind discriminates the creative payload variant
type CreativeKind string

const (
	CreativeKindImage CreativeKind = "image"
	CreativeKindHTML  CreativeKind = "html"
)

var (
	ErrCreativePayloadKind  = errors.New("creative payload kind must be image or html")
	ErrCreativePayloadImage = errors.New("image creative requires a media reference and no html snippet")
	ErrCreativePayloadHTML  = errors.New("html creative requires a snippet and no media reference")
)

// CreativePayload is a tagged union stored as jsonb: an image creative
// carries a media reference, an html creative carries a snippet. The XOR
// invariant is enforced by the constructors and Validate, not by runtime
// null checks scattered over the callers.
type CreativePayload struct {
	Kind        CreativeKind `json:"kind"`
	MediaID     *uint        `json:"media_id,omitempty"`
	ImageURL    string       `json:"image_url,omitempty"`
	HTMLSnippet string       `json:"html_snippet,omitempty"`
}

// NewImagePayload builds an image creative payload. The URL is denormalized
// from the media row so public resolution needs no media join.
func NewImagePayload(mediaID uint, imageURL string) CreativePayload {
	return CreativePayload{Kind: CreativeKindImage, MediaID: &mediaID, ImageURL: imageURL}
}

// NewHTMLPayload builds an html creative payload
func NewHTMLPayload(snippet string) CreativePayload {
	return CreativePayload{Kind: CreativeKindHTML, HTMLSnippet: snippet}
}

// Validate enforces the image-xor-html invariant
func (p CreativePayload) Validate() error {
	switch p.Kind {
	case CreativeKindImage:
		if p.MediaID == nil || p.HTMLSnippet != "" {
			return ErrCreativePayloadImage
		}
	case CreativeKindHTML:
		if p.HTMLSnippet == "" || p.MediaID != nil {
			return ErrCreativePayloadHTML
		}
	default:
		return ErrCreativePayloadKind
	}
	return nil
}

// Value implements the driver.Valuer interface for CreativePayload
func (p CreativePayload) Value() (driver.Value, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(p)
}

// Scan implements the sql.Scanner interface for CreativePayload
func (p *CreativePayload) Scan(value any) error {
	if value == nil {
		*p = CreativePayload{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into CreativePayload", value)
	}

	return json.Unmarshal(bytes, p)
}

// AdsCreative is the ad content itself, belonging to exactly one campaign
type AdsCreative struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	UUID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uk_ads_creatives_uuid" json:"uuid"`
	CampaignID uint            `gorm:"not null;index:idx_ads_creatives_campaign_id" json:"campaign_id"`
	Payload    CreativePayload `gorm:"type:jsonb;not null" json:"payload"`
	LandingURL string          `gorm:"size:1024" json:"landing_url,omitempty"`
	IsActive   bool            `gorm:"not null;default:true;index:idx_ads_creatives_is_active" json:"is_active"`
	CreatedAt  time.Time       `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt  *time.Time      `json:"updated_at,omitempty"`

	// Relations
	Campaign     *AdsCampaign             `gorm:"foreignKey:CampaignID;references:ID" json:"campaign,omitempty"`
	Translations []AdsCreativeTranslation `gorm:"foreignKey:CreativeID" json:"translations,omitempty"`
}

func (AdsCreative) TableName() string {
	return "ads_creatives"
}

func (c *AdsCreative) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == uuid.Nil {
		c.UUID = uuid.New()
	}
	return nil
}

// TranslationFor returns the translation for lang, or nil when absent
func (c *AdsCreative) TranslationFor(lang string) *AdsCreativeTranslation {
	for i := range c.Translations {
		if c.Translations[i].Lang == lang {
			return &c.Translations[i]
		}
	}
	return nil
}

// AdsCreativeTranslation holds per-language creative text, unique per (creative, lang)
type AdsCreativeTranslation struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	CreativeID uint   `gorm:"not null;uniqueIndex:uk_ads_creative_translations_creative_lang,priority:1" json:"creative_id"`
	Lang       string `gorm:"size:10;not null;uniqueIndex:uk_ads_creative_translations_creative_lang,priority:2" json:"lang"`
	Title      string `gorm:"size:500" json:"title,omitempty"`
	AltText    string `gorm:"size:500" json:"alt_text,omitempty"`
}

func (AdsCreativeTranslation) TableName() string {
	return "ads_creative_translations"
}

// AdsCreativeFilter represents filter criteria for creative queries
type AdsCreativeFilter struct {
	ID         *uint
	UUID       *uuid.UUID
	CampaignID *uint
	IsActive   *bool
}
