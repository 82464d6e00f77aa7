package dto

import (
	"time"
)

// CreateTagRequest represents the request to create a tag
type CreateTagRequest struct {
	Code string `json:"code" validate:"required,min=1,max=100"`
}

// UpdateTagRequest represents the request to update a tag
type UpdateTagRequest struct {
	ID       uint    `json:"-"`
	Code     *string `json:"code,omitempty" validate:"omitempty,min=1,max=100"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// TagDTO represents a tag in admin responses
type TagDTO struct {
	ID        uint      `json:"id"`
	Code      string    `json:"code"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// ListTagsResponse represents the tag listing
type ListTagsResponse struct {
	Items []TagDTO `json:"items"`
}
