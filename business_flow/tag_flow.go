// Package businessflow contains the core business logic and use cases for the editorial and ad-serving workflows
package businessflow

import (
	"context"
	"strings"

	"github.com/khabarhub/newsads/app/dto"
	"github.com/khabarhub/newsads/models"
	"github.com/khabarhub/newsads/repository"
)

// TagFlow handles tag management
type TagFlow interface {
	CreateTag(ctx context.Context, req *dto.CreateTagRequest, metadata *ClientMetadata) (*dto.TagDTO, error)
	UpdateTag(ctx context.Context, req *dto.UpdateTagRequest, metadata *ClientMetadata) (*dto.TagDTO, error)
	ListTags(ctx context.Context) (*dto.ListTagsResponse, error)
	DeleteTag(ctx context.Context, id uint, metadata *ClientMetadata) error
}

// TagFlowImpl implements the tag business flow
type TagFlowImpl struct {
	tagRepo repository.TagRepository
}

// NewTagFlow creates a new tag flow instance
func NewTagFlow(tagRepo repository.TagRepository) TagFlow {
	return &TagFlowImpl{tagRepo: tagRepo}
}

// CreateTag creates a tag; codes are lowercased and globally unique
func (s *TagFlowImpl) CreateTag(ctx context.Context, req *dto.CreateTagRequest, metadata *ClientMetadata) (*dto.TagDTO, error) {
	code := strings.ToLower(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, NewBusinessError("TAG_VALIDATION_FAILED", "Tag code is required", ErrTagNotFound)
	}

	existing, err := s.tagRepo.ByCode(ctx, code)
	if err != nil {
		return nil, NewBusinessError("TAG_LOOKUP_FAILED", "Failed to lookup tag", err)
	}
	if existing != nil {
		return nil, NewBusinessError("TAG_CODE_TAKEN", "Tag code already exists", ErrTagCodeTaken)
	}

	tag := &models.Tag{Code: code, IsActive: true}
	if err := s.tagRepo.Save(ctx, tag); err != nil {
		return nil, NewBusinessError("TAG_CREATION_FAILED", "Tag creation failed", err)
	}

	return toTagDTO(tag), nil
}

// UpdateTag applies a partial update to a tag
func (s *TagFlowImpl) UpdateTag(ctx context.Context, req *dto.UpdateTagRequest, metadata *ClientMetadata) (*dto.TagDTO, error) {
	tag, err := s.tagRepo.ByID(ctx, req.ID)
	if err != nil {
		return nil, NewBusinessError("TAG_LOOKUP_FAILED", "Failed to lookup tag", err)
	}
	if tag == nil {
		return nil, NewBusinessError("TAG_NOT_FOUND", "Tag not found", ErrTagNotFound)
	}

	if req.Code != nil {
		code := strings.ToLower(strings.TrimSpace(*req.Code))
		if code != tag.Code {
			existing, err := s.tagRepo.ByCode(ctx, code)
			if err != nil {
				return nil, NewBusinessError("TAG_LOOKUP_FAILED", "Failed to lookup tag", err)
			}
			if existing != nil {
				return nil, NewBusinessError("TAG_CODE_TAKEN", "Tag code already exists", ErrTagCodeTaken)
			}
			tag.Code = code
		}
	}
	if req.IsActive != nil {
		tag.IsActive = *req.IsActive
	}

	if err := s.tagRepo.Update(ctx, *tag); err != nil {
		return nil, NewBusinessError("TAG_UPDATE_FAILED", "Tag update failed", err)
	}

	return toTagDTO(tag), nil
}

// ListTags retrieves every tag
func (s *TagFlowImpl) ListTags(ctx context.Context) (*dto.ListTagsResponse, error) {
	tags, err := s.tagRepo.ByFilter(ctx, models.TagFilter{}, "code ASC", 0, 0)
	if err != nil {
		return nil, NewBusinessError("TAG_LIST_FAILED", "Failed to list tags", err)
	}

	resp := &dto.ListTagsResponse{Items: make([]dto.TagDTO, 0, len(tags))}
	for _, t := range tags {
		resp.Items = append(resp.Items, *toTagDTO(t))
	}

	return resp, nil
}

// DeleteTag removes a tag; its article associations are detached, the
// articles themselves are untouched
func (s *TagFlowImpl) DeleteTag(ctx context.Context, id uint, metadata *ClientMetadata) error {
	tag, err := s.tagRepo.ByID(ctx, id)
	if err != nil {
		return NewBusinessError("TAG_LOOKUP_FAILED", "Failed to lookup tag", err)
	}
	if tag == nil {
		return NewBusinessError("TAG_NOT_FOUND", "Tag not found", ErrTagNotFound)
	}

	if err := s.tagRepo.Delete(ctx, id); err != nil {
		return NewBusinessError("TAG_DELETE_FAILED", "Tag deletion failed", err)
	}
	return nil
}

func toTagDTO(t *models.Tag) *dto.TagDTO {
	return &dto.TagDTO{
		ID:        t.ID,
		Code:      t.Code,
		IsActive:  t.IsActive,
		CreatedAt: t.CreatedAt,
	}
}
