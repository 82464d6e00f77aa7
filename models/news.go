package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewsStatus represents the publication status of a news article
type NewsStatus string

const (
	NewsStatusDraft       NewsStatus = "draft"
	NewsStatusReview      NewsStatus = "review"
	NewsStatusPublished   NewsStatus = "published"
	NewsStatusUnpublished NewsStatus = "unpublished"
	NewsStatusArchived    NewsStatus = "archived"
)

// String returns the string representation of the status
func (s NewsStatus) String() string {
	return string(s)
}

// Valid checks if the status is valid
func (s NewsStatus) Valid() bool {
	switch s {
	case NewsStatusDraft, NewsStatusReview, NewsStatusPublished,
		NewsStatusUnpublished, NewsStatusArchived:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for NewsStatus
func (s *NewsStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = NewsStatus(v)
	case []byte:
		*s = NewsStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into NewsStatus", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for NewsStatus
func (s NewsStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid NewsStatus: %s", s)
	}
	return string(s), nil
}

// News represents a localized news article with its publication lifecycle.
// Soft deletion is a parallel path on is_deleted/deleted_at, not a status.
type News struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UUID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uk_news_uuid" json:"uuid"`
	AuthorID     uint       `gorm:"not null;index:idx_news_author_id" json:"author_id"`
	CategoryID   *uint      `gorm:"index:idx_news_category_id" json:"category_id,omitempty"`
	CoverMediaID *uint      `json:"cover_media_id,omitempty"`
	Status       NewsStatus `gorm:"type:news_status;not null;default:'draft';index:idx_news_status" json:"status"`
	IsFeatured   bool       `gorm:"not null;default:false" json:"is_featured"`
	IsDeleted    bool       `gorm:"not null;default:false;index:idx_news_is_deleted" json:"is_deleted"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
	PublishAt    *time.Time `gorm:"index:idx_news_publish_at" json:"publish_at,omitempty"`
	UnpublishAt  *time.Time `gorm:"index:idx_news_unpublish_at" json:"unpublish_at,omitempty"`
	CreatedAt    time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_news_created_at" json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`

	// Relations
	Author       *User             `gorm:"foreignKey:AuthorID;references:ID" json:"author,omitempty"`
	Category     *Category         `gorm:"foreignKey:CategoryID;references:ID" json:"category,omitempty"`
	CoverMedia   *Media            `gorm:"foreignKey:CoverMediaID;references:ID" json:"cover_media,omitempty"`
	Translations []NewsTranslation `gorm:"foreignKey:NewsID" json:"translations,omitempty"`
	Tags         []Tag             `gorm:"many2many:news_tags" json:"tags,omitempty"`
}

func (News) TableName() string {
	return "news"
}

func (n *News) BeforeCreate(tx *gorm.DB) error {
	if n.UUID == uuid.Nil {
		n.UUID = uuid.New()
	}
	return nil
}

// TranslationFor returns the translation for lang, or nil when absent
func (n *News) TranslationFor(lang string) *NewsTranslation {
	for i := range n.Translations {
		if n.Translations[i].Lang == lang {
			return &n.Translations[i]
		}
	}
	return nil
}

// NewsTranslation holds per-language article content; slug unique per language
type NewsTranslation struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	NewsID          uint   `gorm:"not null;index:idx_news_translations_news_id;uniqueIndex:uk_news_translations_news_lang,priority:1" json:"news_id"`
	Lang            string `gorm:"size:10;not null;uniqueIndex:uk_news_translations_news_lang,priority:2;uniqueIndex:uk_news_translations_lang_slug,priority:1" json:"lang"`
	Title           string `gorm:"size:500;not null" json:"title"`
	Slug            string `gorm:"size:500;not null;uniqueIndex:uk_news_translations_lang_slug,priority:2" json:"slug"`
	Summary         string `gorm:"type:text" json:"summary,omitempty"`
	Content         string `gorm:"type:text" json:"content,omitempty"`
	MetaTitle       string `gorm:"size:500" json:"meta_title,omitempty"`
	MetaDescription string `gorm:"size:1000" json:"meta_description,omitempty"`
}

func (NewsTranslation) TableName() string {
	return "news_translations"
}

// NewsFilter represents filter criteria for news queries
type NewsFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	AuthorID      *uint
	CategoryID    *uint
	CoverMediaID  *uint
	Status        *NewsStatus
	IsFeatured    *bool
	IsDeleted     *bool
	Lang          *string
	TagCode       *string
	Search        *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
