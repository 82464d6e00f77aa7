package repository

import (
	"context"
	"errors"

	"github.com/khabarhub/newsads/models"
	"github.com/khabarhub/newsads/utils"
	"gorm.io/gorm"
)

// AdsCampaignRepositoryImpl implements the AdsCampaignRepository interface
type AdsCampaignRepositoryImpl struct {
	*BaseRepository[models.AdsCampaign, models.AdsCampaignFilter]
}

// NewAdsCampaignRepository creates a new campaign repository
func NewAdsCampaignRepository(db *gorm.DB) AdsCampaignRepository {
	return &AdsCampaignRepositoryImpl{
		BaseRepository: NewBaseRepository[models.AdsCampaign, models.AdsCampaignFilter](db),
	}
}

// ByID retrieves a campaign with its creatives
func (r *AdsCampaignRepositoryImpl) ByID(ctx context.Context, id uint) (*models.AdsCampaign, error) {
	db := r.getDB(ctx)

	var campaign models.AdsCampaign
	err := db.Preload("Creatives").Last(&campaign, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &campaign, nil
}

// ByUUID retrieves a campaign by UUID
func (r *AdsCampaignRepositoryImpl) ByUUID(ctx context.Context, uuid string) (*models.AdsCampaign, error) {
	parsedUUID, err := utils.ParseUUID(uuid)
	if err != nil {
		return nil, err
	}

	filter := models.AdsCampaignFilter{UUID: &parsedUUID}
	campaigns, err := r.ByFilter(ctx, filter, "", 0, 0)
	if err != nil {
		return nil, err
	}

	if len(campaigns) == 0 {
		return nil, nil
	}

	return campaigns[0], nil
}

// Update updates a campaign
func (r *AdsCampaignRepositoryImpl) Update(ctx context.Context, campaign models.AdsCampaign) error {
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
	campaign.UpdatedAt = &now

	err = db.Omit("Creatives").Save(&campaign).Error
	return err
}

// UpdateStatus updates only the status of a campaign
func (r *AdsCampaignRepositoryImpl) UpdateStatus(ctx context.Context, id uint, status models.AdsCampaignStatus) error {
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

	err = db.Model(&models.AdsCampaign{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": utils.UTCNow(),
		}).Error
	return err
}

// ByFilter retrieves campaigns based on filter criteria
func (r *AdsCampaignRepositoryImpl) ByFilter(ctx context.Context, filter models.AdsCampaignFilter, orderBy string, limit, offset int) ([]*models.AdsCampaign, error) {
	db := r.getDB(ctx)

	var campaigns []*models.AdsCampaign
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

	query = query.Preload("Creatives")

	err := query.Find(&campaigns).Error
	if err != nil {
		return nil, err
	}

	return campaigns, nil
}

// Count returns the number of campaigns matching the filter
func (r *AdsCampaignRepositoryImpl) Count(ctx context.Context, filter models.AdsCampaignFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.AdsCampaign{}), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any campaign matching the filter exists
func (r *AdsCampaignRepositoryImpl) Exists(ctx context.Context, filter models.AdsCampaignFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *AdsCampaignRepositoryImpl) applyFilter(db *gorm.DB, filter models.AdsCampaignFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.Name != nil {
		db = db.Where("name ILIKE ?", "%"+*filter.Name+"%")
	}
	if filter.Advertiser != nil {
		db = db.Where("advertiser ILIKE ?", "%"+*filter.Advertiser+"%")
	}
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("created_at < ?", *filter.CreatedBefore)
	}

	return db
}
