package dto

import (
	"time"
)

// CategoryTranslationInput carries one language version of a category
type CategoryTranslationInput struct {
	Lang        string  `json:"lang" validate:"required,min=2,max=10"`
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	Slug        *string `json:"slug,omitempty" validate:"omitempty,max=255"`
	Description string  `json:"description,omitempty" validate:"omitempty,max=1000"`
}

// CreateCategoryRequest represents the request to create a category
type CreateCategoryRequest struct {
	ParentID     *uint                      `json:"parent_id,omitempty"`
	SortOrder    *int                       `json:"sort_order,omitempty"`
	Translations []CategoryTranslationInput `json:"translations" validate:"required,min=1,dive"`
}

// UpdateCategoryRequest represents the request to update a category
type UpdateCategoryRequest struct {
	ID           uint                       `json:"-"`
	ParentID     *uint                      `json:"parent_id,omitempty"`
	SortOrder    *int                       `json:"sort_order,omitempty"`
	IsActive     *bool                      `json:"is_active,omitempty"`
	Translations []CategoryTranslationInput `json:"translations,omitempty" validate:"omitempty,dive"`
}

// CategoryTranslationDTO represents one language version in responses
type CategoryTranslationDTO struct {
	Lang        string `json:"lang"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// CategoryDTO represents a category in admin responses
type CategoryDTO struct {
	ID           uint                     `json:"id"`
	ParentID     *uint                    `json:"parent_id,omitempty"`
	SortOrder    int                      `json:"sort_order"`
	IsActive     bool                     `json:"is_active"`
	Translations []CategoryTranslationDTO `json:"translations"`
	CreatedAt    time.Time                `json:"created_at"`
	UpdatedAt    *time.Time               `json:"updated_at,omitempty"`
}

// ListCategoriesResponse represents the category listing
type ListCategoriesResponse struct {
	Items []CategoryDTO `json:"items"`
}
