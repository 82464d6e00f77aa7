package repository

import (
	"context"
	"errors"

	"github.com/khabarhub/newsads/models"
	"github.com/khabarhub/newsads/utils"
	"gorm.io/gorm"
)

// AdsCreativeRepositoryImpl implements the AdsCreativeRepository interface
type AdsCreativeRepositoryImpl struct {
	*BaseRepository[models.AdsCreative, models.AdsCreativeFilter]
}

// NewAdsCreativeRepository creates a new creative repository
func NewAdsCreativeRepository(db *gorm.DB) AdsCreativeRepository {
	return &AdsCreativeRepositoryImpl{
		BaseRepository: NewBaseRepository[models.AdsCreative, models.AdsCreativeFilter](db),
	}
}

// ByID retrieves a creative with its campaign and translations
func (r *AdsCreativeRepositoryImpl) ByID(ctx context.Context, id uint) (*models.AdsCreative, error) {
	db := r.getDB(ctx)

	var creative models.AdsCreative
	err := db.Preload("Campaign").
		Preload("Translations").
		Last(&creative, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &creative, nil
}

// ByUUID retrieves a creative by UUID
func (r *AdsCreativeRepositoryImpl) ByUUID(ctx context.Context, uuid string) (*models.AdsCreative, error) {
	parsedUUID, err := utils.ParseUUID(uuid)
	if err != nil {
		return nil, err
	}

	filter := models.AdsCreativeFilter{UUID: &parsedUUID}
	creatives, err := r.ByFilter(ctx, filter, "", 0, 0)
	if err != nil {
		return nil, err
	}

	if len(creatives) == 0 {
		return nil, nil
	}

	return creatives[0], nil
}

// ListByCampaign retrieves all creatives belonging to a campaign
func (r *AdsCreativeRepositoryImpl) ListByCampaign(ctx context.Context, campaignID uint) ([]*models.AdsCreative, error) {
	filter := models.AdsCreativeFilter{CampaignID: &campaignID}
	return r.ByFilter(ctx, filter, "id ASC", 0, 0)
}

// Update updates a creative
func (r *AdsCreativeRepositoryImpl) Update(ctx context.Context, creative models.AdsCreative) error {
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
	creative.UpdatedAt = &now

	err = db.Omit("Campaign", "Translations").Save(&creative).Error
	return err
}

// SaveTranslation inserts or updates a creative translation
func (r *AdsCreativeRepositoryImpl) SaveTranslation(ctx context.Context, tr *models.AdsCreativeTranslation) error {
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

// ByFilter retrieves creatives based on filter criteria
func (r *AdsCreativeRepositoryImpl) ByFilter(ctx context.Context, filter models.AdsCreativeFilter, orderBy string, limit, offset int) ([]*models.AdsCreative, error) {
	db := r.getDB(ctx)

	var creatives []*models.AdsCreative
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

	query = query.Preload("Campaign").Preload("Translations")

	err := query.Find(&creatives).Error
	if err != nil {
		return nil, err
	}

	return creatives, nil
}

// Count returns the number of creatives matching the filter
func (r *AdsCreativeRepositoryImpl) Count(ctx context.Context, filter models.AdsCreativeFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.AdsCreative{}), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any creative matching the filter exists
func (r *AdsCreativeRepositoryImpl) Exists(ctx context.Context, filter models.AdsCreativeFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *AdsCreativeRepositoryImpl) applyFilter(db *gorm.DB, filter models.AdsCreativeFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.CampaignID != nil {
		db = db.Where("campaign_id = ?", *filter.CampaignID)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}

	return db
}
