package repository

import (
	"context"
	"fmt"

	"github.com/khabarhub/newsads/models"
	"gorm.io/gorm"
)

// NewsHistoryRepositoryImpl implements the NewsHistoryRepository interface.
// The underlying table is append-only: this type deliberately exposes no
// update or delete operation.
type NewsHistoryRepositoryImpl struct {
	db *gorm.DB
}

// NewNewsHistoryRepository creates a new news history repository
func NewNewsHistoryRepository(db *gorm.DB) NewsHistoryRepository {
	return &NewsHistoryRepositoryImpl{db: db}
}

func (r *NewsHistoryRepositoryImpl) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(TxContextKey).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db
}

// Save appends a history entry
func (r *NewsHistoryRepositoryImpl) Save(ctx context.Context, entry *models.NewsHistory) error {
	db := r.getDB(ctx)

	err := db.Create(entry).Error
	if err != nil {
		return fmt.Errorf("failed to save history entry: %w", err)
	}

	return nil
}

// ListByNews retrieves history entries for an article, newest first
func (r *NewsHistoryRepositoryImpl) ListByNews(ctx context.Context, newsID uint, limit, offset int) ([]*models.NewsHistory, error) {
	db := r.getDB(ctx)

	query := db.Where("news_id = ?", newsID).
		Preload("ChangedBy").
		Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var entries []*models.NewsHistory
	err := query.Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}
