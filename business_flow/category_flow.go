// Package businessflow contains the core business logic and use cases for the editorial and ad-serving workflows
package businessflow

import (
	"context"
	"fmt"

	"github.com/khabarhub/newsads/app/dto"
	"github.com/khabarhub/newsads/models"
	"github.com/khabarhub/newsads/repository"
	"github.com/khabarhub/newsads/utils"
)

// CategoryFlow handles category tree management
type CategoryFlow interface {
	CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest, metadata *ClientMetadata) (*dto.CategoryDTO, error)
	UpdateCategory(ctx context.Context, req *dto.UpdateCategoryRequest, metadata *ClientMetadata) (*dto.CategoryDTO, error)
	GetCategory(ctx context.Context, id uint) (*dto.CategoryDTO, error)
	ListCategories(ctx context.Context) (*dto.ListCategoriesResponse, error)
	DeleteCategory(ctx context.Context, id uint, metadata *ClientMetadata) error
}

// CategoryFlowImpl implements the category business flow
type CategoryFlowImpl struct {
	categoryRepo repository.CategoryRepository
	newsRepo     repository.NewsRepository
	txm          repository.TxManager
}

// NewCategoryFlow creates a new category flow instance
func NewCategoryFlow(
	categoryRepo repository.CategoryRepository,
	newsRepo repository.NewsRepository,
	txm repository.TxManager,
) CategoryFlow {
	return &CategoryFlowImpl{
		categoryRepo: categoryRepo,
		newsRepo:     newsRepo,
		txm:          txm,
	}
}

// CreateCategory creates a category with its translations. Slugs are unique
// per language across the whole tree.
func (s *CategoryFlowImpl) CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest, metadata *ClientMetadata) (*dto.CategoryDTO, error) {
	if req.ParentID != nil {
		parent, err := s.categoryRepo.ByID(ctx, *req.ParentID)
		if err != nil {
			return nil, NewBusinessError("CATEGORY_LOOKUP_FAILED", "Failed to lookup parent category", err)
		}
		if parent == nil {
			return nil, NewBusinessError("CATEGORY_NOT_FOUND", "Parent category not found", ErrCategoryNotFound)
		}
	}

	var category *models.Category
	err := s.txm.WithTx(ctx, func(txCtx context.Context) error {
		category = &models.Category{
			ParentID: req.ParentID,
			IsActive: true,
		}
		if req.SortOrder != nil {
			category.SortOrder = *req.SortOrder
		}
		if err := s.categoryRepo.Save(txCtx, category); err != nil {
			return err
		}

		for _, in := range req.Translations {
			tr, err := s.buildTranslation(txCtx, category.ID, in)
			if err != nil {
				return err
			}
			if err := s.categoryRepo.SaveTranslation(txCtx, tr); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, NewBusinessError("CATEGORY_CREATION_FAILED", "Category creation failed", err)
	}

	return s.GetCategory(ctx, category.ID)
}

// UpdateCategory applies a partial update. Reparenting onto itself or onto
// one of its descendants is rejected.
func (s *CategoryFlowImpl) UpdateCategory(ctx context.Context, req *dto.UpdateCategoryRequest, metadata *ClientMetadata) (*dto.CategoryDTO, error) {
	category, err := s.categoryRepo.ByID(ctx, req.ID)
	if err != nil {
		return nil, NewBusinessError("CATEGORY_LOOKUP_FAILED", "Failed to lookup category", err)
	}
	if category == nil {
		return nil, NewBusinessError("CATEGORY_NOT_FOUND", "Category not found", ErrCategoryNotFound)
	}

	if req.ParentID != nil {
		if err := s.validateParent(ctx, req.ID, *req.ParentID); err != nil {
			return nil, err
		}
		category.ParentID = req.ParentID
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	err = s.txm.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.categoryRepo.Update(txCtx, *category); err != nil {
			return err
		}

		for _, in := range req.Translations {
			existing := category.TranslationFor(in.Lang)
			tr, err := s.buildTranslation(txCtx, category.ID, in)
			if err != nil {
				return err
			}
			if existing != nil {
				tr.ID = existing.ID
				if in.Slug == nil {
					tr.Slug = existing.Slug
				}
			}
			if err := s.categoryRepo.SaveTranslation(txCtx, tr); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, NewBusinessError("CATEGORY_UPDATE_FAILED", "Category update failed", err)
	}

	return s.GetCategory(ctx, req.ID)
}

// GetCategory retrieves a category by id
func (s *CategoryFlowImpl) GetCategory(ctx context.Context, id uint) (*dto.CategoryDTO, error) {
	category, err := s.categoryRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("CATEGORY_LOOKUP_FAILED", "Failed to lookup category", err)
	}
	if category == nil {
		return nil, NewBusinessError("CATEGORY_NOT_FOUND", "Category not found", ErrCategoryNotFound)
	}

	return toCategoryDTO(category), nil
}

// ListCategories retrieves every category with translations
func (s *CategoryFlowImpl) ListCategories(ctx context.Context) (*dto.ListCategoriesResponse, error) {
	categories, err := s.categoryRepo.ByFilter(ctx, models.CategoryFilter{}, "sort_order ASC, id ASC", 0, 0)
	if err != nil {
		return nil, NewBusinessError("CATEGORY_LIST_FAILED", "Failed to list categories", err)
	}

	resp := &dto.ListCategoriesResponse{Items: make([]dto.CategoryDTO, 0, len(categories))}
	for _, c := range categories {
		resp.Items = append(resp.Items, *toCategoryDTO(c))
	}

	return resp, nil
}

// DeleteCategory removes an empty leaf category
func (s *CategoryFlowImpl) DeleteCategory(ctx context.Context, id uint, metadata *ClientMetadata) error {
	category, err := s.categoryRepo.ByID(ctx, id)
	if err != nil {
		return NewBusinessError("CATEGORY_LOOKUP_FAILED", "Failed to lookup category", err)
	}
	if category == nil {
		return NewBusinessError("CATEGORY_NOT_FOUND", "Category not found", ErrCategoryNotFound)
	}

	children, err := s.categoryRepo.ListByParent(ctx, &id)
	if err != nil {
		return NewBusinessError("CATEGORY_LOOKUP_FAILED", "Failed to lookup child categories", err)
	}
	if len(children) > 0 {
		return NewBusinessError("CATEGORY_HAS_CHILDREN", "Category has child categories", ErrCategoryHasChildren)
	}

	inUse, err := s.newsRepo.Exists(ctx, models.NewsFilter{CategoryID: &id})
	if err != nil {
		return NewBusinessError("CATEGORY_LOOKUP_FAILED", "Failed to check category usage", err)
	}
	if inUse {
		return NewBusinessError("CATEGORY_IN_USE", "Category is referenced by news", ErrCategoryHasChildren)
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return NewBusinessError("CATEGORY_DELETE_FAILED", "Category delete failed", err)
	}
	return nil
}

// validateParent walks up from the proposed parent; finding the category
// itself on the way to the root means the move would create a cycle
func (s *CategoryFlowImpl) validateParent(ctx context.Context, categoryID, parentID uint) error {
	if parentID == categoryID {
		return NewBusinessError("CATEGORY_PARENT_INVALID", "Category cannot be its own parent", ErrCategoryParentInvalid)
	}

	current := parentID
	for current != 0 {
		ancestor, err := s.categoryRepo.ByID(ctx, current)
		if err != nil {
			return NewBusinessError("CATEGORY_LOOKUP_FAILED", "Failed to lookup ancestor category", err)
		}
		if ancestor == nil {
			return NewBusinessError("CATEGORY_NOT_FOUND", "Parent category not found", ErrCategoryNotFound)
		}
		if ancestor.ID == categoryID {
			return NewBusinessError("CATEGORY_PARENT_INVALID", "Move would create a cycle", ErrCategoryParentInvalid)
		}
		if ancestor.ParentID == nil {
			break
		}
		current = *ancestor.ParentID
	}

	return nil
}

func (s *CategoryFlowImpl) buildTranslation(ctx context.Context, categoryID uint, in dto.CategoryTranslationInput) (*models.CategoryTranslation, error) {
	slug := ""
	if in.Slug != nil {
		slug = utils.GenerateSlug(*in.Slug)
	}
	if slug == "" {
		slug = utils.GenerateSlug(in.Title)
	}
	if slug == "" {
		return nil, ErrCategorySlugTaken
	}

	taken, err := s.categoryRepo.SlugExists(ctx, in.Lang, slug, categoryID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: %s (%s)", ErrCategorySlugTaken, slug, in.Lang)
	}

	return &models.CategoryTranslation{
		CategoryID:  categoryID,
		Lang:        in.Lang,
		Title:       in.Title,
		Slug:        slug,
		Description: in.Description,
	}, nil
}

func toCategoryDTO(c *models.Category) *dto.CategoryDTO {
	resp := &dto.CategoryDTO{
		ID:        c.ID,
		ParentID:  c.ParentID,
		SortOrder: c.SortOrder,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	for _, tr := range c.Translations {
		resp.Translations = append(resp.Translations, dto.CategoryTranslationDTO{
			Lang:        tr.Lang,
			Title:       tr.Title,
			Slug:        tr.Slug,
			Description: tr.Description,
		})
	}
	return resp
}
