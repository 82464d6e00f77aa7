package dto

import (
	"time"
)

// UploadMediaRequest represents an upload: the body bytes arrive separately,
// this carries the metadata
type UploadMediaRequest struct {
	UploadedByID uint   `json:"-"`
	FileName     string `json:"file_name" validate:"required,min=1,max=500"`
	ContentType  string `json:"content_type" validate:"required,min=1,max=255"`
	SizeBytes    int64  `json:"size_bytes" validate:"required,min=1"`
}

// MediaDTO represents a media record in responses
type MediaDTO struct {
	ID          uint      `json:"id"`
	UUID        string    `json:"uuid"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListMediaRequest represents media listing filters
type ListMediaRequest struct {
	Page         int     `json:"page"`
	PageSize     int     `json:"page_size"`
	ContentType  *string `json:"content_type,omitempty"`
	UploadedByID *uint   `json:"uploaded_by_id,omitempty"`
}

// ListMediaResponse represents the paginated media listing
type ListMediaResponse struct {
	Items      []MediaDTO    `json:"items"`
	Pagination PaginationDTO `json:"pagination"`
}
