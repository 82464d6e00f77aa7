package repository

import (
	"context"
	"errors"

	"github.com/khabarhub/newsads/models"
	"github.com/khabarhub/newsads/utils"
	"gorm.io/gorm"
)

// CategoryRepositoryImpl implements the CategoryRepository interface
type CategoryRepositoryImpl struct {
	*BaseRepository[models.Category, models.CategoryFilter]
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &CategoryRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Category, models.CategoryFilter](db),
	}
}

// ByID retrieves a category with its translations
func (r *CategoryRepositoryImpl) ByID(ctx context.Context, id uint) (*models.Category, error) {
	db := r.getDB(ctx)

	var category models.Category
	err := db.Preload("Translations").Last(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &category, nil
}

// ListActiveWithTranslations retrieves all active categories with translations,
// ordered for stable menu rendering
func (r *CategoryRepositoryImpl) ListActiveWithTranslations(ctx context.Context) ([]*models.Category, error) {
	isActive := true
	filter := models.CategoryFilter{IsActive: &isActive}
	return r.ByFilter(ctx, filter, "sort_order ASC, id ASC", 0, 0)
}

// ListByParent retrieves categories under the given parent; a nil parent
// selects the root level
func (r *CategoryRepositoryImpl) ListByParent(ctx context.Context, parentID *uint) ([]*models.Category, error) {
	db := r.getDB(ctx)

	query := db.Preload("Translations").Order("sort_order ASC, id ASC")
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}

	var categories []*models.Category
	err := query.Find(&categories).Error
	if err != nil {
		return nil, err
	}

	return categories, nil
}

// SlugExists checks whether a translation slug is already taken for the
// language, excluding one category (pass 0 to exclude nothing)
func (r *CategoryRepositoryImpl) SlugExists(ctx context.Context, lang, slug string, excludeCategoryID uint) (bool, error) {
	db := r.getDB(ctx)

	var count int64
	query := db.Model(&models.CategoryTranslation{}).
		Where("lang = ? AND slug = ?", lang, slug)
	if excludeCategoryID > 0 {
		query = query.Where("category_id <> ?", excludeCategoryID)
	}

	err := query.Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// Update updates a category
func (r *CategoryRepositoryImpl) Update(ctx context.Context, category models.Category) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	now := utils.UTCNow()
	category.UpdatedAt = &now

	err = db.Omit("Translations").Save(&category).Error
	return err
}

// SaveTranslation inserts or updates a category translation
func (r *CategoryRepositoryImpl) SaveTranslation(ctx context.Context, tr *models.CategoryTranslation) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	err = db.Save(tr).Error
	return err
}

// Delete removes a category and its translations
func (r *CategoryRepositoryImpl) Delete(ctx context.Context, id uint) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	err = db.Where("category_id = ?", id).Delete(&models.CategoryTranslation{}).Error
	if err != nil {
		return err
	}

	err = db.Delete(&models.Category{}, id).Error
	return err
}

// ByFilter retrieves categories based on filter criteria
func (r *CategoryRepositoryImpl) ByFilter(ctx context.Context, filter models.CategoryFilter, orderBy string, limit, offset int) ([]*models.Category, error) {
	db := r.getDB(ctx)

	var categories []*models.Category
	query := r.applyFilter(db, filter)

	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	query = query.Preload("Translations")

	err := query.Find(&categories).Error
	if err != nil {
		return nil, err
	}

	return categories, nil
}

// Count returns the number of categories matching the filter
func (r *CategoryRepositoryImpl) Count(ctx context.Context, filter models.CategoryFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.Category{}), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any category matching the filter exists
func (r *CategoryRepositoryImpl) Exists(ctx context.Context, filter models.CategoryFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *CategoryRepositoryImpl) applyFilter(db *gorm.DB, filter models.CategoryFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.ParentID != nil {
		db = db.Where("parent_id = ?", *filter.ParentID)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}

	return db
}
