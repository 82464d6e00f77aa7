package repository

import (
	"context"
	"errors"
	"time"

	"github.com/khabarhub/newsads/models"
	"github.com/khabarhub/newsads/utils"
	"gorm.io/gorm"
)

// NewsRepositoryImpl implements the NewsRepository interface
type NewsRepositoryImpl struct {
	*BaseRepository[models.News, models.NewsFilter]
}

// NewNewsRepository creates a new news repository
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &NewsRepositoryImpl{
		BaseRepository: NewBaseRepository[models.News, models.NewsFilter](db),
	}
}

// ByID retrieves a news article with its relations
func (r *NewsRepositoryImpl) ByID(ctx context.Context, id uint) (*models.News, error) {
	db := r.getDB(ctx)

	var news models.News
	err := db.Preload("Author").
		Preload("Category").
		Preload("Category.Translations").
		Preload("CoverMedia").
		Preload("Translations").
		Preload("Tags").
		Last(&news, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &news, nil
}

// ByUUID retrieves a news article by UUID
func (r *NewsRepositoryImpl) ByUUID(ctx context.Context, uuid string) (*models.News, error) {
	parsedUUID, err := utils.ParseUUID(uuid)
	if err != nil {
		return nil, err
	}

	filter := models.NewsFilter{UUID: &parsedUUID}
	news, err := r.ByFilter(ctx, filter, "", 0, 0)
	if err != nil {
		return nil, err
	}

	if len(news) == 0 {
		return nil, nil
	}

	return news[0], nil
}

// ByIDNotDeleted retrieves a news article by ID, treating soft-deleted rows
// as absent
func (r *NewsRepositoryImpl) ByIDNotDeleted(ctx context.Context, id uint) (*models.News, error) {
	news, err := r.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if news == nil || news.IsDeleted {
		return nil, nil
	}
	return news, nil
}

// FindPublishedBySlug retrieves a published, non-deleted article whose
// translation matches the (lang, slug) pair
func (r *NewsRepositoryImpl) FindPublishedBySlug(ctx context.Context, lang, slug string) (*models.News, error) {
	db := r.getDB(ctx)

	var news models.News
	err := db.Joins("JOIN news_translations ON news_translations.news_id = news.id").
		Where("news_translations.lang = ? AND news_translations.slug = ?", lang, slug).
		Where("news.status = ?", models.NewsStatusPublished).
		Where("news.is_deleted = ?", false).
		Preload("Author").
		Preload("Category").
		Preload("Category.Translations").
		Preload("CoverMedia").
		Preload("Translations").
		Preload("Tags").
		First(&news).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &news, nil
}

// SlugExists checks whether a translation slug is already taken for the
// language, excluding one article (pass 0 to exclude nothing)
func (r *NewsRepositoryImpl) SlugExists(ctx context.Context, lang, slug string, excludeNewsID uint) (bool, error) {
	db := r.getDB(ctx)

	var count int64
	query := db.Model(&models.NewsTranslation{}).
		Where("lang = ? AND slug = ?", lang, slug)
	if excludeNewsID > 0 {
		query = query.Where("news_id <> ?", excludeNewsID)
	}

	err := query.Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// ListDueForPublish retrieves non-deleted review articles whose publish_at
// has passed, oldest first
func (r *NewsRepositoryImpl) ListDueForPublish(ctx context.Context, now time.Time, limit int) ([]*models.News, error) {
	db := r.getDB(ctx)

	query := db.Where("status = ?", models.NewsStatusReview).
		Where("is_deleted = ?", false).
		Where("publish_at IS NOT NULL AND publish_at <= ?", now).
		Order("publish_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var news []*models.News
	err := query.Find(&news).Error
	if err != nil {
		return nil, err
	}

	return news, nil
}

// ListDueForUnpublish retrieves non-deleted published articles whose
// unpublish_at has passed, oldest first
func (r *NewsRepositoryImpl) ListDueForUnpublish(ctx context.Context, now time.Time, limit int) ([]*models.News, error) {
	db := r.getDB(ctx)

	query := db.Where("status = ?", models.NewsStatusPublished).
		Where("is_deleted = ?", false).
		Where("unpublish_at IS NOT NULL AND unpublish_at <= ?", now).
		Order("unpublish_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var news []*models.News
	err := query.Find(&news).Error
	if err != nil {
		return nil, err
	}

	return news, nil
}

// Update updates a news article. Associations are managed through their
// dedicated methods, not through Save.
func (r *NewsRepositoryImpl) Update(ctx context.Context, news models.News) error {
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
	news.UpdatedAt = &now

	err = db.Omit("Author", "Category", "CoverMedia", "Translations", "Tags").
		Save(&news).Error
	return err
}

// UpdateStatusIfCurrent transitions the article's status only when the row
// still holds the expected current status. Returns false when another writer
// got there first, which callers treat as "already handled".
func (r *NewsRepositoryImpl) UpdateStatusIfCurrent(ctx context.Context, id uint, from, to models.NewsStatus) (bool, error) {
	db := r.getDB(ctx)

	result := db.Model(&models.News{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{
			"status":     to,
			"updated_at": utils.UTCNow(),
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// SetDeleted flips the soft-delete flag
func (r *NewsRepositoryImpl) SetDeleted(ctx context.Context, id uint, deleted bool, at *time.Time) error {
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

	err = db.Model(&models.News{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_deleted": deleted,
			"deleted_at": at,
			"updated_at": utils.UTCNow(),
		}).Error
	return err
}

// ReplaceTags replaces the article's tag associations
func (r *NewsRepositoryImpl) ReplaceTags(ctx context.Context, newsID uint, tags []*models.Tag) error {
	db := r.getDB(ctx)

	news := models.News{ID: newsID}
	return db.Model(&news).Association("Tags").Replace(tags)
}

// SaveTranslation inserts or updates a news translation
func (r *NewsRepositoryImpl) SaveTranslation(ctx context.Context, tr *models.NewsTranslation) error {
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

// HardDelete permanently removes an article, its translations, tag links
// and history. Only soft-deleted articles should reach this.
func (r *NewsRepositoryImpl) HardDelete(ctx context.Context, id uint) error {
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

	if err = db.Exec("DELETE FROM news_tags WHERE news_id = ?", id).Error; err != nil {
		return err
	}
	if err = db.Where("news_id = ?", id).Delete(&models.NewsTranslation{}).Error; err != nil {
		return err
	}
	if err = db.Where("news_id = ?", id).Delete(&models.NewsHistory{}).Error; err != nil {
		return err
	}

	err = db.Delete(&models.News{}, id).Error
	return err
}

// ByFilter retrieves news articles based on filter criteria
func (r *NewsRepositoryImpl) ByFilter(ctx context.Context, filter models.NewsFilter, orderBy string, limit, offset int) ([]*models.News, error) {
	db := r.getDB(ctx)

	var news []*models.News
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

	query = query.Preload("Author").
		Preload("Category").
		Preload("Category.Translations").
		Preload("CoverMedia").
		Preload("Translations").
		Preload("Tags")

	err := query.Find(&news).Error
	if err != nil {
		return nil, err
	}

	return news, nil
}

// Count returns the number of news articles matching the filter
func (r *NewsRepositoryImpl) Count(ctx context.Context, filter models.NewsFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.News{}), filter)

	err := query.Distinct("news.id").Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any news article matching the filter exists
func (r *NewsRepositoryImpl) Exists(ctx context.Context, filter models.NewsFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query. Lang, TagCode and
// Search operate through joins, so callers combining them with pagination get
// distinct rows via Count's Distinct and gorm's relation preloading.
func (r *NewsRepositoryImpl) applyFilter(db *gorm.DB, filter models.NewsFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("news.id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("news.uuid = ?", *filter.UUID)
	}
	if filter.AuthorID != nil {
		db = db.Where("news.author_id = ?", *filter.AuthorID)
	}
	if filter.CategoryID != nil {
		db = db.Where("news.category_id = ?", *filter.CategoryID)
	}
	if filter.CoverMediaID != nil {
		db = db.Where("news.cover_media_id = ?", *filter.CoverMediaID)
	}
	if filter.Status != nil {
		db = db.Where("news.status = ?", *filter.Status)
	}
	if filter.IsFeatured != nil {
		db = db.Where("news.is_featured = ?", *filter.IsFeatured)
	}
	if filter.IsDeleted != nil {
		db = db.Where("news.is_deleted = ?", *filter.IsDeleted)
	}
	if filter.Lang != nil || filter.Search != nil {
		db = db.Joins("JOIN news_translations ON news_translations.news_id = news.id")
		if filter.Lang != nil {
			db = db.Where("news_translations.lang = ?", *filter.Lang)
		}
		if filter.Search != nil {
			pattern := "%" + *filter.Search + "%"
			db = db.Where("(news_translations.title ILIKE ? OR news_translations.summary ILIKE ?)", pattern, pattern)
		}
	}
	if filter.TagCode != nil {
		db = db.Joins("JOIN news_tags ON news_tags.news_id = news.id").
			Joins("JOIN tags ON tags.id = news_tags.tag_id").
			Where("tags.code = ?", *filter.TagCode)
	}
	if filter.CreatedAfter != nil {
		db = db.Where("news.created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("news.created_at < ?", *filter.CreatedBefore)
	}

	return db
}
