package repository

import (
	"context"

	"github.com/khabarhub/newsads/models"
	"gorm.io/gorm"
)

// TagRepositoryImpl implements the TagRepository interface
type TagRepositoryImpl struct {
	*BaseRepository[models.Tag, models.TagFilter]
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &TagRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Tag, models.TagFilter](db),
	}
}

// ByCode retrieves a tag by its code
func (r *TagRepositoryImpl) ByCode(ctx context.Context, code string) (*models.Tag, error) {
	filter := models.TagFilter{Code: &code}
	tags, err := r.ByFilter(ctx, filter, "", 0, 0)
	if err != nil {
		return nil, err
	}

	if len(tags) == 0 {
		return nil, nil
	}

	return tags[0], nil
}

// ByCodes retrieves all tags matching the given codes
func (r *TagRepositoryImpl) ByCodes(ctx context.Context, codes []string) ([]*models.Tag, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	db := r.getDB(ctx)

	var tags []*models.Tag
	err := db.Where("code IN ?", codes).Find(&tags).Error
	if err != nil {
		return nil, err
	}

	return tags, nil
}

// ListActive retrieves all active tags ordered by code
func (r *TagRepositoryImpl) ListActive(ctx context.Context) ([]*models.Tag, error) {
	isActive := true
	filter := models.TagFilter{IsActive: &isActive}
	return r.ByFilter(ctx, filter, "code ASC", 0, 0)
}

// Update updates a tag
func (r *TagRepositoryImpl) Update(ctx context.Context, tag models.Tag) error {
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

	err = db.Save(&tag).Error
	return err
}

// Delete removes a tag and its article associations
func (r *TagRepositoryImpl) Delete(ctx context.Context, id uint) error {
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

	if err = db.Exec("DELETE FROM news_tags WHERE tag_id = ?", id).Error; err != nil {
		return err
	}
	err = db.Delete(&models.Tag{}, id).Error
	return err
}

// ByFilter retrieves tags based on filter criteria
func (r *TagRepositoryImpl) ByFilter(ctx context.Context, filter models.TagFilter, orderBy string, limit, offset int) ([]*models.Tag, error) {
	db := r.getDB(ctx)

	var tags []*models.Tag
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

	err := query.Find(&tags).Error
	if err != nil {
		return nil, err
	}

	return tags, nil
}

// Count returns the number of tags matching the filter
func (r *TagRepositoryImpl) Count(ctx context.Context, filter models.TagFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.Tag{}), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any tag matching the filter exists
func (r *TagRepositoryImpl) Exists(ctx context.Context, filter models.TagFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *TagRepositoryImpl) applyFilter(db *gorm.DB, filter models.TagFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.Code != nil {
		db = db.Where("code = ?", *filter.Code)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}

	return db
}
