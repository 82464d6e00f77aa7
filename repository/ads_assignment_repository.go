package repository

import (
	"context"
	"time"

	"github.com/khabarhub/newsads/models"
	"github.com/khabarhub/newsads/utils"
	"gorm.io/gorm"
)

// AdsAssignmentRepositoryImpl implements the AdsAssignmentRepository interface
type AdsAssignmentRepositoryImpl struct {
	*BaseRepository[models.AdsAssignment, models.AdsAssignmentFilter]
}

// NewAdsAssignmentRepository creates a new assignment repository
func NewAdsAssignmentRepository(db *gorm.DB) AdsAssignmentRepository {
	return &AdsAssignmentRepositoryImpl{
		BaseRepository: NewBaseRepository[models.AdsAssignment, models.AdsAssignmentFilter](db),
	}
}

// ListActiveForPlacement retrieves assignments eligible for serving on a
// placement at the given instant: assignment, creative and campaign must all
// be active, the campaign and assignment run windows must contain now. The
// language and category filters are evaluated in the selection flow, not
// here. Stable id ordering keeps the weighted walk deterministic for a
// given database state.
func (r *AdsAssignmentRepositoryImpl) ListActiveForPlacement(ctx context.Context, placementID uint, now time.Time) ([]*models.AdsAssignment, error) {
	db := r.getDB(ctx)

	var assignments []*models.AdsAssignment
	err := db.Joins("JOIN ads_creatives ON ads_creatives.id = ads_assignments.creative_id").
		Joins("JOIN ads_campaigns ON ads_campaigns.id = ads_creatives.campaign_id").
		Where("ads_assignments.placement_id = ?", placementID).
		Where("ads_assignments.is_active = ?", true).
		Where("ads_creatives.is_active = ?", true).
		Where("ads_campaigns.status = ?", models.AdsCampaignStatusActive).
		Where("(ads_assignments.start_at IS NULL OR ads_assignments.start_at <= ?)", now).
		Where("(ads_assignments.end_at IS NULL OR ads_assignments.end_at > ?)", now).
		Where("(ads_campaigns.start_at IS NULL OR ads_campaigns.start_at <= ?)", now).
		Where("(ads_campaigns.end_at IS NULL OR ads_campaigns.end_at > ?)", now).
		Preload("Creative").
		Preload("Creative.Campaign").
		Preload("Creative.Translations").
		Order("ads_assignments.id ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}

	return assignments, nil
}

// Update updates an assignment
func (r *AdsAssignmentRepositoryImpl) Update(ctx context.Context, assignment models.AdsAssignment) error {
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
	assignment.UpdatedAt = &now

	err = db.Omit("Placement", "Creative").Save(&assignment).Error
	return err
}

// Delete removes an assignment
func (r *AdsAssignmentRepositoryImpl) Delete(ctx context.Context, id uint) error {
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

	err = db.Delete(&models.AdsAssignment{}, id).Error
	return err
}

// ByFilter retrieves assignments based on filter criteria
func (r *AdsAssignmentRepositoryImpl) ByFilter(ctx context.Context, filter models.AdsAssignmentFilter, orderBy string, limit, offset int) ([]*models.AdsAssignment, error) {
	db := r.getDB(ctx)

	var assignments []*models.AdsAssignment
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

	query = query.Preload("Placement").
		Preload("Creative").
		Preload("Creative.Campaign")

	err := query.Find(&assignments).Error
	if err != nil {
		return nil, err
	}

	return assignments, nil
}

// Count returns the number of assignments matching the filter
func (r *AdsAssignmentRepositoryImpl) Count(ctx context.Context, filter models.AdsAssignmentFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.AdsAssignment{}), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any assignment matching the filter exists
func (r *AdsAssignmentRepositoryImpl) Exists(ctx context.Context, filter models.AdsAssignmentFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *AdsAssignmentRepositoryImpl) applyFilter(db *gorm.DB, filter models.AdsAssignmentFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.PlacementID != nil {
		db = db.Where("placement_id = ?", *filter.PlacementID)
	}
	if filter.CreativeID != nil {
		db = db.Where("creative_id = ?", *filter.CreativeID)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}

	return db
}
