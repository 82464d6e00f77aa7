// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"time"

	"github.com/khabarhub/newsads/models"
)

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// UserRepository defines operations for editorial users
type UserRepository interface {
	Repository[models.User, models.UserFilter]
	ByUsername(ctx context.Context, username string) (*models.User, error)
	ByUUID(ctx context.Context, uuid string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID uint, passwordHash string) error
	SetActive(ctx context.Context, userID uint, active bool) error
	Delete(ctx context.Context, id uint) error
}

// MediaRepository defines operations for uploaded media
type MediaRepository interface {
	Repository[models.Media, models.MediaFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Media, error)
	ByStorageKey(ctx context.Context, key string) (*models.Media, error)
	Delete(ctx context.Context, id uint) error
}

// TagRepository defines operations for tags
type TagRepository interface {
	Repository[models.Tag, models.TagFilter]
	ByCode(ctx context.Context, code string) (*models.Tag, error)
	ByCodes(ctx context.Context, codes []string) ([]*models.Tag, error)
	ListActive(ctx context.Context) ([]*models.Tag, error)
	Update(ctx context.Context, tag models.Tag) error
	Delete(ctx context.Context, id uint) error
}

// CategoryRepository defines operations for categories and their translations
type CategoryRepository interface {
	Repository[models.Category, models.CategoryFilter]
	ListActiveWithTranslations(ctx context.Context) ([]*models.Category, error)
	ListByParent(ctx context.Context, parentID *uint) ([]*models.Category, error)
	SlugExists(ctx context.Context, lang, slug string, excludeCategoryID uint) (bool, error)
	Update(ctx context.Context, category models.Category) error
	SaveTranslation(ctx context.Context, tr *models.CategoryTranslation) error
	Delete(ctx context.Context, id uint) error
}

// NewsRepository defines operations for news articles
type NewsRepository interface {
	Repository[models.News, models.NewsFilter]
	ByUUID(ctx context.Context, uuid string) (*models.News, error)
	ByIDNotDeleted(ctx context.Context, id uint) (*models.News, error)
	FindPublishedBySlug(ctx context.Context, lang, slug string) (*models.News, error)
	SlugExists(ctx context.Context, lang, slug string, excludeNewsID uint) (bool, error)
	ListDueForPublish(ctx context.Context, now time.Time, limit int) ([]*models.News, error)
	ListDueForUnpublish(ctx context.Context, now time.Time, limit int) ([]*models.News, error)
	Update(ctx context.Context, news models.News) error
	UpdateStatusIfCurrent(ctx context.Context, id uint, from, to models.NewsStatus) (bool, error)
	SetDeleted(ctx context.Context, id uint, deleted bool, at *time.Time) error
	ReplaceTags(ctx context.Context, newsID uint, tags []*models.Tag) error
	SaveTranslation(ctx context.Context, tr *models.NewsTranslation) error
	HardDelete(ctx context.Context, id uint) error
}

// NewsHistoryRepository defines operations for the append-only news audit trail.
// History rows are never updated or deleted.
type NewsHistoryRepository interface {
	Save(ctx context.Context, entry *models.NewsHistory) error
	ListByNews(ctx context.Context, newsID uint, limit, offset int) ([]*models.NewsHistory, error)
}

// AdsCampaignRepository defines operations for ad campaigns
type AdsCampaignRepository interface {
	Repository[models.AdsCampaign, models.AdsCampaignFilter]
	ByUUID(ctx context.Context, uuid string) (*models.AdsCampaign, error)
	Update(ctx context.Context, campaign models.AdsCampaign) error
	UpdateStatus(ctx context.Context, id uint, status models.AdsCampaignStatus) error
}

// AdsCreativeRepository defines operations for ad creatives
type AdsCreativeRepository interface {
	Repository[models.AdsCreative, models.AdsCreativeFilter]
	ByUUID(ctx context.Context, uuid string) (*models.AdsCreative, error)
	ListByCampaign(ctx context.Context, campaignID uint) ([]*models.AdsCreative, error)
	Update(ctx context.Context, creative models.AdsCreative) error
	SaveTranslation(ctx context.Context, tr *models.AdsCreativeTranslation) error
}

// AdsPlacementRepository defines operations for ad placements
type AdsPlacementRepository interface {
	Repository[models.AdsPlacement, models.AdsPlacementFilter]
	ByCode(ctx context.Context, code string) (*models.AdsPlacement, error)
	ListActive(ctx context.Context) ([]*models.AdsPlacement, error)
	Update(ctx context.Context, placement models.AdsPlacement) error
}

// AdsAssignmentRepository defines operations for creative-to-placement assignments
type AdsAssignmentRepository interface {
	Repository[models.AdsAssignment, models.AdsAssignmentFilter]
	ListActiveForPlacement(ctx context.Context, placementID uint, now time.Time) ([]*models.AdsAssignment, error)
	Update(ctx context.Context, assignment models.AdsAssignment) error
	Delete(ctx context.Context, id uint) error
}
