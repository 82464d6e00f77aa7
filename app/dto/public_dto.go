package dto

import (
	"time"
)

// ResolveAdRequest represents the public ad resolution query
type ResolveAdRequest struct {
	PlacementCode string `json:"-"`
	Lang          string `json:"-"`
	CategoryID    *uint  `json:"-"`
}

// PublicAdDTO represents the selected ad returned to the site frontend
type PublicAdDTO struct {
	CreativeID  uint   `json:"creative_id"`
	Kind        string `json:"kind"`
	Title       string `json:"title,omitempty"`
	AltText     string `json:"alt_text,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	HTMLSnippet string `json:"html_snippet,omitempty"`
	LandingURL  string `json:"landing_url,omitempty"`
}

// PublicNewsListRequest represents the public article listing query
type PublicNewsListRequest struct {
	Lang       string  `json:"-"`
	Page       int     `json:"-"`
	PageSize   int     `json:"-"`
	CategoryID *uint   `json:"-"`
	TagCode    *string `json:"-"`
}

// PublicNewsItemDTO represents one article in public listings
type PublicNewsItemDTO struct {
	UUID         string    `json:"uuid"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Summary      string    `json:"summary,omitempty"`
	CoverURL     string    `json:"cover_url,omitempty"`
	CategorySlug string    `json:"category_slug,omitempty"`
	IsFeatured   bool      `json:"is_featured"`
	PublishedAt  time.Time `json:"published_at"`
}

// PublicNewsListResponse represents the paginated public listing
type PublicNewsListResponse struct {
	Items      []PublicNewsItemDTO `json:"items"`
	Pagination PaginationDTO       `json:"pagination"`
}

// PublicNewsDetailDTO represents a full public article
type PublicNewsDetailDTO struct {
	UUID            string    `json:"uuid"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Summary         string    `json:"summary,omitempty"`
	Content         string    `json:"content"`
	MetaTitle       string    `json:"meta_title,omitempty"`
	MetaDescription string    `json:"meta_description,omitempty"`
	CoverURL        string    `json:"cover_url,omitempty"`
	CategorySlug    string    `json:"category_slug,omitempty"`
	CategoryTitle   string    `json:"category_title,omitempty"`
	AuthorName      string    `json:"author_name,omitempty"`
	Tags            []string  `json:"tags,omitempty"`
	IsFeatured      bool      `json:"is_featured"`
	PublishedAt     time.Time `json:"published_at"`
}

// PublicCategoryDTO represents a category in the public menu tree
type PublicCategoryDTO struct {
	ID       uint                `json:"id"`
	Slug     string              `json:"slug"`
	Title    string              `json:"title"`
	Children []PublicCategoryDTO `json:"children,omitempty"`
}

// PublicTagDTO represents a tag in public listings
type PublicTagDTO struct {
	Code string `json:"code"`
}
