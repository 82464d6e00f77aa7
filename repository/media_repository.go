package repository

import (
	"context"

	"github.com/khabarhub/newsads/models"
	"github.com/khabarhub/newsads/utils"
	"gorm.io/gorm"
)

// MediaRepositoryImpl implements the MediaRepository interface
type MediaRepositoryImpl struct {
	*BaseRepository[models.Media, models.MediaFilter]
}

// NewMediaRepository creates a new media repository
func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &MediaRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Media, models.MediaFilter](db),
	}
}

// ByUUID retrieves a media record by UUID
func (r *MediaRepositoryImpl) ByUUID(ctx context.Context, uuid string) (*models.Media, error) {
	parsedUUID, err := utils.ParseUUID(uuid)
	if err != nil {
		return nil, err
	}

	filter := models.MediaFilter{UUID: &parsedUUID}
	media, err := r.ByFilter(ctx, filter, "", 0, 0)
	if err != nil {
		return nil, err
	}

	if len(media) == 0 {
		return nil, nil
	}

	return media[0], nil
}

// ByStorageKey retrieves a media record by its object storage key
func (r *MediaRepositoryImpl) ByStorageKey(ctx context.Context, key string) (*models.Media, error) {
	filter := models.MediaFilter{StorageKey: &key}
	media, err := r.ByFilter(ctx, filter, "", 0, 0)
	if err != nil {
		return nil, err
	}

	if len(media) == 0 {
		return nil, nil
	}

	return media[0], nil
}

// Delete removes a media record
func (r *MediaRepositoryImpl) Delete(ctx context.Context, id uint) error {
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

	err = db.Delete(&models.Media{}, id).Error
	return err
}

// ByFilter retrieves media records based on filter criteria
func (r *MediaRepositoryImpl) ByFilter(ctx context.Context, filter models.MediaFilter, orderBy string, limit, offset int) ([]*models.Media, error) {
	db := r.getDB(ctx)

	var media []*models.Media
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

	err := query.Find(&media).Error
	if err != nil {
		return nil, err
	}

	return media, nil
}

// Count returns the number of media records matching the filter
func (r *MediaRepositoryImpl) Count(ctx context.Context, filter models.MediaFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.Media{}), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any media record matching the filter exists
func (r *MediaRepositoryImpl) Exists(ctx context.Context, filter models.MediaFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *MediaRepositoryImpl) applyFilter(db *gorm.DB, filter models.MediaFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.StorageKey != nil {
		db = db.Where("storage_key = ?", *filter.StorageKey)
	}
	if filter.UploadedByID != nil {
		db = db.Where("uploaded_by_id = ?", *filter.UploadedByID)
	}
	if filter.ContentType != nil {
		db = db.Where("content_type = ?", *filter.ContentType)
	}

	return db
}
