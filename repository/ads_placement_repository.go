package repository

import (
	"context"

	"github.com/khabarhub/newsads/models"
	"github.com/khabarhub/newsads/utils"
	"gorm.io/gorm"
)

// AdsPlacementRepositoryImpl implements the AdsPlacementRepository interface
type AdsPlacementRepositoryImpl struct {
	*BaseRepository[models.AdsPlacement, models.AdsPlacementFilter]
}

// NewAdsPlacementRepository creates a new placement repository
func NewAdsPlacementRepository(db *gorm.DB) AdsPlacementRepository {
	return &AdsPlacementRepositoryImpl{
		BaseRepository: NewBaseRepository[models.AdsPlacement, models.AdsPlacementFilter](db),
	}
}

// ByCode retrieves a placement by its code
func (r *AdsPlacementRepositoryImpl) ByCode(ctx context.Context, code string) (*models.AdsPlacement, error) {
	filter := models.AdsPlacementFilter{Code: &code}
	placements, err := r.ByFilter(ctx, filter, "", 0, 0)
	if err != nil {
		return nil, err
	}

	if len(placements) == 0 {
		return nil, nil
	}

	return placements[0], nil
}

// ListActive retrieves all active placements ordered by code
func (r *AdsPlacementRepositoryImpl) ListActive(ctx context.Context) ([]*models.AdsPlacement, error) {
	isActive := true
	filter := models.AdsPlacementFilter{IsActive: &isActive}
	return r.ByFilter(ctx, filter, "code ASC", 0, 0)
}

// Update updates a placement
func (r *AdsPlacementRepositoryImpl) Update(ctx context.Context, placement models.AdsPlacement) error {
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
	placement.UpdatedAt = &now

	err = db.Save(&placement).Error
	return err
}

// ByFilter retrieves placements based on filter criteria
func (r *AdsPlacementRepositoryImpl) ByFilter(ctx context.Context, filter models.AdsPlacementFilter, orderBy string, limit, offset int) ([]*models.AdsPlacement, error) {
	db := r.getDB(ctx)

	var placements []*models.AdsPlacement
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

	err := query.Find(&placements).Error
	if err != nil {
		return nil, err
	}

	return placements, nil
}

// Count returns the number of placements matching the filter
func (r *AdsPlacementRepositoryImpl) Count(ctx context.Context, filter models.AdsPlacementFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.AdsPlacement{}), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any placement matching the filter exists
func (r *AdsPlacementRepositoryImpl) Exists(ctx context.Context, filter models.AdsPlacementFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *AdsPlacementRepositoryImpl) applyFilter(db *gorm.DB, filter models.AdsPlacementFilter) *gorm.DB {
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
