package dto

import (
	"time"
)

// NewsTranslationInput carries one language version of an article in
// create/update requests
type NewsTranslationInput struct {
	Lang            string  `json:"lang" validate:"required,min=2,max=10"`
	Title           string  `json:"title" validate:"required,min=1,max=500"`
	Slug            *string `json:"slug,omitempty" validate:"omitempty,max=500"`
	Summary         string  `json:"summary,omitempty"`
	Content         string  `json:"content" validate:"required"`
	MetaTitle       string  `json:"meta_title,omitempty" validate:"omitempty,max=500"`
	MetaDescription string  `json:"meta_description,omitempty" validate:"omitempty,max=1000"`
}

// CreateNewsRequest represents the request to create a news article
type CreateNewsRequest struct {
	AuthorID     uint                   `json:"-"`
	CategoryID   *uint                  `json:"category_id,omitempty"`
	CoverMediaID *uint                  `json:"cover_media_id,omitempty"`
	IsFeatured   *bool                  `json:"is_featured,omitempty"`
	PublishAt    *time.Time             `json:"publish_at,omitempty"`
	UnpublishAt  *time.Time             `json:"unpublish_at,omitempty"`
	Tags         []string               `json:"tags,omitempty"`
	Translations []NewsTranslationInput `json:"translations" validate:"required,min=1,dive"`
}

// UpdateNewsRequest represents the request to update an article. Nil fields
// are left untouched.
type UpdateNewsRequest struct {
	ID           uint                   `json:"-"`
	ActorID      uint                   `json:"-"`
	CategoryID   *uint                  `json:"category_id,omitempty"`
	CoverMediaID *uint                  `json:"cover_media_id,omitempty"`
	IsFeatured   *bool                  `json:"is_featured,omitempty"`
	PublishAt    *time.Time             `json:"publish_at,omitempty"`
	UnpublishAt  *time.Time             `json:"unpublish_at,omitempty"`
	Tags         []string               `json:"tags,omitempty"`
	Translations []NewsTranslationInput `json:"translations,omitempty" validate:"omitempty,dive"`
}

// ChangeNewsStatusRequest represents a manual status transition
type ChangeNewsStatusRequest struct {
	ID      uint   `json:"-"`
	ActorID uint   `json:"-"`
	Status  string `json:"status" validate:"required,oneof=draft review published unpublished archived"`
}

// ListNewsRequest represents admin listing filters
type ListNewsRequest struct {
	Page       int     `json:"page"`
	PageSize   int     `json:"page_size"`
	Status     *string `json:"status,omitempty"`
	CategoryID *uint   `json:"category_id,omitempty"`
	AuthorID   *uint   `json:"author_id,omitempty"`
	Lang       *string `json:"lang,omitempty"`
	TagCode    *string `json:"tag,omitempty"`
	Search     *string `json:"search,omitempty"`
	Deleted    *bool   `json:"deleted,omitempty"`
}

// NewsTranslationDTO represents one language version in responses
type NewsTranslationDTO struct {
	Lang            string `json:"lang"`
	Title           string `json:"title"`
	Slug            string `json:"slug"`
	Summary         string `json:"summary,omitempty"`
	Content         string `json:"content,omitempty"`
	MetaTitle       string `json:"meta_title,omitempty"`
	MetaDescription string `json:"meta_description,omitempty"`
}

// NewsDTO represents a full article in admin responses
type NewsDTO struct {
	ID           uint                 `json:"id"`
	UUID         string               `json:"uuid"`
	Status       string               `json:"status"`
	AuthorID     uint                 `json:"author_id"`
	Author       *UserDTO             `json:"author,omitempty"`
	CategoryID   *uint                `json:"category_id,omitempty"`
	CoverMediaID *uint                `json:"cover_media_id,omitempty"`
	CoverURL     string               `json:"cover_url,omitempty"`
	IsFeatured   bool                 `json:"is_featured"`
	IsDeleted    bool                 `json:"is_deleted"`
	PublishAt    *time.Time           `json:"publish_at,omitempty"`
	UnpublishAt  *time.Time           `json:"unpublish_at,omitempty"`
	Tags         []string             `json:"tags,omitempty"`
	Translations []NewsTranslationDTO `json:"translations"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    *time.Time           `json:"updated_at,omitempty"`
}

// ListNewsResponse represents the paginated admin listing
type ListNewsResponse struct {
	Items      []NewsDTO     `json:"items"`
	Pagination PaginationDTO `json:"pagination"`
}

// NewsDiffDTO mirrors the recorded change payload of a history entry
type NewsDiffDTO struct {
	Field       string     `json:"field,omitempty"`
	From        string     `json:"from,omitempty"`
	To          string     `json:"to,omitempty"`
	Action      string     `json:"action,omitempty"`
	Actor       string     `json:"actor,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
}

// NewsHistoryDTO represents one audit trail entry
type NewsHistoryDTO struct {
	ID         uint        `json:"id"`
	NewsID     uint        `json:"news_id"`
	FromStatus *string     `json:"from_status,omitempty"`
	ToStatus   string      `json:"to_status"`
	ChangedBy  *UserDTO    `json:"changed_by,omitempty"`
	Diff       NewsDiffDTO `json:"diff"`
	CreatedAt  time.Time   `json:"created_at"`
}

// ListNewsHistoryResponse represents the audit trail listing
type ListNewsHistoryResponse struct {
	Items []NewsHistoryDTO `json:"items"`
}
