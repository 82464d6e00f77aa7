// Package businessflow contains the core business logic and use cases for the editorial and ad-serving workflows
package businessflow

import (
	"context"
	"fmt"
	"time"

	"github.com/khabarhub/newsads/app/dto"
	"github.com/khabarhub/newsads/models"
	"github.com/khabarhub/newsads/repository"
	"github.com/khabarhub/newsads/utils"
)

// NewsFlow handles the editorial news lifecycle
type NewsFlow interface {
	CreateNews(ctx context.Context, req *dto.CreateNewsRequest, metadata *ClientMetadata) (*dto.NewsDTO, error)
	UpdateNews(ctx context.Context, req *dto.UpdateNewsRequest, metadata *ClientMetadata) (*dto.NewsDTO, error)
	GetNews(ctx context.Context, id uint) (*dto.NewsDTO, error)
	ListNews(ctx context.Context, req *dto.ListNewsRequest) (*dto.ListNewsResponse, error)
	ChangeStatus(ctx context.Context, req *dto.ChangeNewsStatusRequest, metadata *ClientMetadata) (*dto.NewsDTO, error)
	SoftDeleteNews(ctx context.Context, id, actorID uint, metadata *ClientMetadata) error
	RestoreNews(ctx context.Context, id, actorID uint, metadata *ClientMetadata) error
	HardDeleteNews(ctx context.Context, id, actorID uint, metadata *ClientMetadata) error
	GetHistory(ctx context.Context, newsID uint, limit, offset int) (*dto.ListNewsHistoryResponse, error)
}

// NewsFlowImpl implements the news business flow
type NewsFlowImpl struct {
	newsRepo     repository.NewsRepository
	historyRepo  repository.NewsHistoryRepository
	tagRepo      repository.TagRepository
	categoryRepo repository.CategoryRepository
	mediaRepo    repository.MediaRepository
	txm          repository.TxManager
}

// NewNewsFlow creates a new news flow instance
func NewNewsFlow(
	newsRepo repository.NewsRepository,
	historyRepo repository.NewsHistoryRepository,
	tagRepo repository.TagRepository,
	categoryRepo repository.CategoryRepository,
	mediaRepo repository.MediaRepository,
	txm repository.TxManager,
) NewsFlow {
	return &NewsFlowImpl{
		newsRepo:     newsRepo,
		historyRepo:  historyRepo,
		tagRepo:      tagRepo,
		categoryRepo: categoryRepo,
		mediaRepo:    mediaRepo,
		txm:          txm,
	}
}

// CreateNews creates a draft article with its translations, tags and an
// initial history record, all in one transaction
func (s *NewsFlowImpl) CreateNews(ctx context.Context, req *dto.CreateNewsRequest, metadata *ClientMetadata) (*dto.NewsDTO, error) {
	if err := s.validateCreateNewsRequest(req); err != nil {
		return nil, NewBusinessError("NEWS_VALIDATION_FAILED", "News validation failed", err)
	}

	if req.CategoryID != nil {
		category, err := s.categoryRepo.ByID(ctx, *req.CategoryID)
		if err != nil {
			return nil, NewBusinessError("CATEGORY_LOOKUP_FAILED", "Failed to lookup category", err)
		}
		if category == nil {
			return nil, NewBusinessError("CATEGORY_NOT_FOUND", "Category not found", ErrCategoryNotFound)
		}
	}

	if req.CoverMediaID != nil {
		media, err := s.mediaRepo.ByID(ctx, *req.CoverMediaID)
		if err != nil {
			return nil, NewBusinessError("MEDIA_LOOKUP_FAILED", "Failed to lookup cover media", err)
		}
		if media == nil {
			return nil, NewBusinessError("MEDIA_NOT_FOUND", "Cover media not found", ErrMediaNotFound)
		}
	}

	tags, err := s.resolveTags(ctx, req.Tags)
	if err != nil {
		return nil, err
	}

	var news *models.News
	err = s.txm.WithTx(ctx, func(txCtx context.Context) error {
		news = &models.News{
			AuthorID:     req.AuthorID,
			CategoryID:   req.CategoryID,
			CoverMediaID: req.CoverMediaID,
			Status:       models.NewsStatusDraft,
			IsFeatured:   utils.IsTrue(req.IsFeatured),
			PublishAt:    req.PublishAt,
			UnpublishAt:  req.UnpublishAt,
		}
		if err := s.newsRepo.Save(txCtx, news); err != nil {
			return err
		}

		for _, in := range req.Translations {
			tr, err := s.buildTranslation(txCtx, news.ID, in)
			if err != nil {
				return err
			}
			if err := s.newsRepo.SaveTranslation(txCtx, tr); err != nil {
				return err
			}
		}

		if len(tags) > 0 {
			if err := s.newsRepo.ReplaceTags(txCtx, news.ID, tags); err != nil {
				return err
			}
		}

		entry := &models.NewsHistory{
			NewsID:      news.ID,
			ChangedByID: &req.AuthorID,
			ToStatus:    string(models.NewsStatusDraft),
			Diff: models.NewsDiff{
				Field:  "status",
				To:     string(models.NewsStatusDraft),
				Action: models.HistoryActionStatusChange,
				Actor:  fmt.Sprintf("%d", req.AuthorID),
			},
		}
		return s.historyRepo.Save(txCtx, entry)
	})
	if err != nil {
		return nil, NewBusinessError("NEWS_CREATION_FAILED", "News creation failed", err)
	}

	return s.GetNews(ctx, news.ID)
}

// UpdateNews applies a partial update; nil request fields keep current values
func (s *NewsFlowImpl) UpdateNews(ctx context.Context, req *dto.UpdateNewsRequest, metadata *ClientMetadata) (*dto.NewsDTO, error) {
	news, err := s.newsRepo.ByIDNotDeleted(ctx, req.ID)
	if err != nil {
		return nil, NewBusinessError("NEWS_LOOKUP_FAILED", "Failed to lookup news", err)
	}
	if news == nil {
		return nil, NewBusinessError("NEWS_NOT_FOUND", "News not found", ErrNewsNotFound)
	}

	if req.CategoryID == nil && req.CoverMediaID == nil && req.IsFeatured == nil &&
		req.PublishAt == nil && req.UnpublishAt == nil &&
		req.Tags == nil && len(req.Translations) == 0 {
		return nil, NewBusinessError("NEWS_UPDATE_EMPTY", "Nothing to update", ErrNewsUpdateRequired)
	}

	if req.CategoryID != nil {
		category, err := s.categoryRepo.ByID(ctx, *req.CategoryID)
		if err != nil {
			return nil, NewBusinessError("CATEGORY_LOOKUP_FAILED", "Failed to lookup category", err)
		}
		if category == nil {
			return nil, NewBusinessError("CATEGORY_NOT_FOUND", "Category not found", ErrCategoryNotFound)
		}
		news.CategoryID = req.CategoryID
	}
	if req.CoverMediaID != nil {
		media, err := s.mediaRepo.ByID(ctx, *req.CoverMediaID)
		if err != nil {
			return nil, NewBusinessError("MEDIA_LOOKUP_FAILED", "Failed to lookup cover media", err)
		}
		if media == nil {
			return nil, NewBusinessError("MEDIA_NOT_FOUND", "Cover media not found", ErrMediaNotFound)
		}
		news.CoverMediaID = req.CoverMediaID
	}
	if req.IsFeatured != nil {
		news.IsFeatured = *req.IsFeatured
	}
	if req.PublishAt != nil {
		news.PublishAt = req.PublishAt
	}
	if req.UnpublishAt != nil {
		news.UnpublishAt = req.UnpublishAt
	}
	if news.PublishAt != nil && news.UnpublishAt != nil && !news.UnpublishAt.After(*news.PublishAt) {
		return nil, NewBusinessError("NEWS_SCHEDULE_INVALID", "Invalid schedule window", ErrUnpublishBeforePublish)
	}

	var tags []*models.Tag
	if req.Tags != nil {
		tags, err = s.resolveTags(ctx, req.Tags)
		if err != nil {
			return nil, err
		}
	}

	err = s.txm.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.newsRepo.Update(txCtx, *news); err != nil {
			return err
		}

		for _, in := range req.Translations {
			existing := news.TranslationFor(in.Lang)
			tr, err := s.buildTranslation(txCtx, news.ID, in)
			if err != nil {
				return err
			}
			if existing != nil {
				tr.ID = existing.ID
				// keep the published URL stable unless a new slug is given
				if in.Slug == nil {
					tr.Slug = existing.Slug
				}
			}
			if err := s.newsRepo.SaveTranslation(txCtx, tr); err != nil {
				return err
			}
		}

		if req.Tags != nil {
			if err := s.newsRepo.ReplaceTags(txCtx, news.ID, tags); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, NewBusinessError("NEWS_UPDATE_FAILED", "News update failed", err)
	}

	return s.GetNews(ctx, req.ID)
}

// GetNews retrieves an article by id, treating soft-deleted rows as absent
func (s *NewsFlowImpl) GetNews(ctx context.Context, id uint) (*dto.NewsDTO, error) {
	news, err := s.newsRepo.ByIDNotDeleted(ctx, id)
	if err != nil {
		return nil, NewBusinessError("NEWS_LOOKUP_FAILED", "Failed to lookup news", err)
	}
	if news == nil {
		return nil, NewBusinessError("NEWS_NOT_FOUND", "News not found", ErrNewsNotFound)
	}

	return toNewsDTO(news), nil
}

// ListNews retrieves a filtered, paginated admin listing
func (s *NewsFlowImpl) ListNews(ctx context.Context, req *dto.ListNewsRequest) (*dto.ListNewsResponse, error) {
	page, size := NormalizePage(req.Page, req.PageSize, utils.DefaultPageSize, utils.MaxPageSize)

	filter := models.NewsFilter{
		CategoryID: req.CategoryID,
		AuthorID:   req.AuthorID,
		Lang:       req.Lang,
		TagCode:    req.TagCode,
		Search:     req.Search,
	}
	if req.Status != nil {
		status := models.NewsStatus(*req.Status)
		if !status.Valid() {
			return nil, NewBusinessError("NEWS_STATUS_INVALID", "Invalid news status", ErrInvalidStatusValue)
		}
		filter.Status = &status
	}
	deleted := false
	if req.Deleted != nil {
		deleted = *req.Deleted
	}
	filter.IsDeleted = &deleted

	total, err := s.newsRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("NEWS_COUNT_FAILED", "Failed to count news", err)
	}

	items, err := s.newsRepo.ByFilter(ctx, filter, "news.created_at DESC, news.id DESC", size, (page-1)*size)
	if err != nil {
		return nil, NewBusinessError("NEWS_LIST_FAILED", "Failed to list news", err)
	}

	resp := &dto.ListNewsResponse{
		Items:      make([]dto.NewsDTO, 0, len(items)),
		Pagination: paginationDTO(page, size, total),
	}
	for _, n := range items {
		resp.Items = append(resp.Items, *toNewsDTO(n))
	}

	return resp, nil
}

// ChangeStatus performs a manual publication state transition. The history
// entry and the status write commit atomically; the write is guarded on the
// loaded status so concurrent transitions cannot double-record.
func (s *NewsFlowImpl) ChangeStatus(ctx context.Context, req *dto.ChangeNewsStatusRequest, metadata *ClientMetadata) (*dto.NewsDTO, error) {
	target := models.NewsStatus(req.Status)
	if !target.Valid() {
		return nil, NewBusinessError("NEWS_STATUS_INVALID", "Invalid news status", ErrInvalidStatusValue)
	}

	news, err := s.newsRepo.ByIDNotDeleted(ctx, req.ID)
	if err != nil {
		return nil, NewBusinessError("NEWS_LOOKUP_FAILED", "Failed to lookup news", err)
	}
	if news == nil {
		return nil, NewBusinessError("NEWS_NOT_FOUND", "News not found", ErrNewsNotFound)
	}

	if news.Status == target {
		return nil, NewBusinessError("NEWS_STATUS_UNCHANGED", "Status has not been changed", ErrSameStatusTransition)
	}

	from := news.Status
	err = s.txm.WithTx(ctx, func(txCtx context.Context) error {
		updated, err := s.newsRepo.UpdateStatusIfCurrent(txCtx, news.ID, from, target)
		if err != nil {
			return err
		}
		if !updated {
			return ErrSameStatusTransition
		}

		fromStr := string(from)
		entry := &models.NewsHistory{
			NewsID:      news.ID,
			ChangedByID: &req.ActorID,
			FromStatus:  &fromStr,
			ToStatus:    string(target),
			Diff: models.NewsDiff{
				Field:  "status",
				From:   string(from),
				To:     string(target),
				Action: models.HistoryActionStatusChange,
				Actor:  fmt.Sprintf("%d", req.ActorID),
			},
		}
		return s.historyRepo.Save(txCtx, entry)
	})
	if err != nil {
		if IsSameStatusTransition(err) {
			return nil, NewBusinessError("NEWS_STATUS_UNCHANGED", "Status has not been changed", ErrSameStatusTransition)
		}
		return nil, NewBusinessError("NEWS_STATUS_CHANGE_FAILED", "Status change failed", err)
	}

	return s.GetNews(ctx, req.ID)
}

// SoftDeleteNews hides an article without destroying it
func (s *NewsFlowImpl) SoftDeleteNews(ctx context.Context, id, actorID uint, metadata *ClientMetadata) error {
	news, err := s.newsRepo.ByID(ctx, id)
	if err != nil {
		return NewBusinessError("NEWS_LOOKUP_FAILED", "Failed to lookup news", err)
	}
	if news == nil {
		return NewBusinessError("NEWS_NOT_FOUND", "News not found", ErrNewsNotFound)
	}
	if news.IsDeleted {
		return NewBusinessError("NEWS_ALREADY_DELETED", "News is already deleted", ErrNewsDeleted)
	}

	now := utils.UTCNow()
	return s.deleteFlagTx(ctx, news, actorID, true, &now, models.HistoryActionSoftDelete)
}

// RestoreNews brings a soft-deleted article back
func (s *NewsFlowImpl) RestoreNews(ctx context.Context, id, actorID uint, metadata *ClientMetadata) error {
	news, err := s.newsRepo.ByID(ctx, id)
	if err != nil {
		return NewBusinessError("NEWS_LOOKUP_FAILED", "Failed to lookup news", err)
	}
	if news == nil {
		return NewBusinessError("NEWS_NOT_FOUND", "News not found", ErrNewsNotFound)
	}
	if !news.IsDeleted {
		return NewBusinessError("NEWS_NOT_DELETED", "News is not deleted", ErrNewsNotDeleted)
	}

	return s.deleteFlagTx(ctx, news, actorID, false, nil, models.HistoryActionRestore)
}

func (s *NewsFlowImpl) deleteFlagTx(ctx context.Context, news *models.News, actorID uint, deleted bool, at *time.Time, action string) error {
	err := s.txm.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.newsRepo.SetDeleted(txCtx, news.ID, deleted, at); err != nil {
			return err
		}

		status := string(news.Status)
		entry := &models.NewsHistory{
			NewsID:      news.ID,
			ChangedByID: &actorID,
			FromStatus:  &status,
			ToStatus:    status,
			Diff: models.NewsDiff{
				Action: action,
				Actor:  fmt.Sprintf("%d", actorID),
			},
		}
		return s.historyRepo.Save(txCtx, entry)
	})
	if err != nil {
		return NewBusinessError("NEWS_DELETE_FLAG_FAILED", "Delete flag update failed", err)
	}
	return nil
}

// HardDeleteNews permanently removes a soft-deleted article
func (s *NewsFlowImpl) HardDeleteNews(ctx context.Context, id, actorID uint, metadata *ClientMetadata) error {
	news, err := s.newsRepo.ByID(ctx, id)
	if err != nil {
		return NewBusinessError("NEWS_LOOKUP_FAILED", "Failed to lookup news", err)
	}
	if news == nil {
		return NewBusinessError("NEWS_NOT_FOUND", "News not found", ErrNewsNotFound)
	}
	if !news.IsDeleted {
		return NewBusinessError("NEWS_NOT_DELETED", "Only soft-deleted news can be removed", ErrNewsNotDeleted)
	}

	if err := s.newsRepo.HardDelete(ctx, id); err != nil {
		return NewBusinessError("NEWS_HARD_DELETE_FAILED", "Hard delete failed", err)
	}
	return nil
}

// GetHistory retrieves the append-only audit trail, newest first
func (s *NewsFlowImpl) GetHistory(ctx context.Context, newsID uint, limit, offset int) (*dto.ListNewsHistoryResponse, error) {
	news, err := s.newsRepo.ByID(ctx, newsID)
	if err != nil {
		return nil, NewBusinessError("NEWS_LOOKUP_FAILED", "Failed to lookup news", err)
	}
	if news == nil {
		return nil, NewBusinessError("NEWS_NOT_FOUND", "News not found", ErrNewsNotFound)
	}

	entries, err := s.historyRepo.ListByNews(ctx, newsID, limit, offset)
	if err != nil {
		return nil, NewBusinessError("NEWS_HISTORY_FAILED", "Failed to list history", err)
	}

	resp := &dto.ListNewsHistoryResponse{Items: make([]dto.NewsHistoryDTO, 0, len(entries))}
	for _, e := range entries {
		resp.Items = append(resp.Items, toNewsHistoryDTO(e))
	}

	return resp, nil
}

func (s *NewsFlowImpl) validateCreateNewsRequest(req *dto.CreateNewsRequest) error {
	if len(req.Translations) == 0 {
		return ErrNewsTitleRequired
	}
	for _, tr := range req.Translations {
		if tr.Lang == "" {
			return ErrNewsLangRequired
		}
		if tr.Title == "" {
			return ErrNewsTitleRequired
		}
		if tr.Content == "" {
			return ErrNewsContentRequired
		}
	}
	if req.PublishAt != nil && req.UnpublishAt != nil && !req.UnpublishAt.After(*req.PublishAt) {
		return ErrUnpublishBeforePublish
	}
	return nil
}

// buildTranslation sanitizes the content and derives a unique slug for the
// language, suffixing -2, -3... on collision
func (s *NewsFlowImpl) buildTranslation(ctx context.Context, newsID uint, in dto.NewsTranslationInput) (*models.NewsTranslation, error) {
	slug := ""
	if in.Slug != nil {
		slug = utils.GenerateSlug(*in.Slug)
	}
	if slug == "" {
		slug = utils.GenerateSlug(in.Title)
	}
	if slug == "" {
		return nil, ErrNewsTitleRequired
	}

	unique, err := s.uniqueSlug(ctx, in.Lang, slug, newsID)
	if err != nil {
		return nil, err
	}

	return &models.NewsTranslation{
		NewsID:          newsID,
		Lang:            in.Lang,
		Title:           in.Title,
		Slug:            unique,
		Summary:         in.Summary,
		Content:         utils.SanitizeHTML(in.Content),
		MetaTitle:       in.MetaTitle,
		MetaDescription: in.MetaDescription,
	}, nil
}

func (s *NewsFlowImpl) uniqueSlug(ctx context.Context, lang, slug string, excludeNewsID uint) (string, error) {
	candidate := slug
	for i := 2; ; i++ {
		taken, err := s.newsRepo.SlugExists(ctx, lang, candidate, excludeNewsID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", slug, i)
	}
}

func (s *NewsFlowImpl) resolveTags(ctx context.Context, codes []string) ([]*models.Tag, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	tags, err := s.tagRepo.ByCodes(ctx, codes)
	if err != nil {
		return nil, NewBusinessError("TAG_LOOKUP_FAILED", "Failed to lookup tags", err)
	}
	if len(tags) != len(codes) {
		return nil, NewBusinessError("TAG_NOT_FOUND", "One or more tags do not exist", ErrTagNotFound)
	}

	return tags, nil
}

func toNewsDTO(news *models.News) *dto.NewsDTO {
	resp := &dto.NewsDTO{
		ID:           news.ID,
		UUID:         news.UUID.String(),
		Status:       string(news.Status),
		AuthorID:     news.AuthorID,
		CategoryID:   news.CategoryID,
		CoverMediaID: news.CoverMediaID,
		IsFeatured:   news.IsFeatured,
		IsDeleted:    news.IsDeleted,
		PublishAt:    news.PublishAt,
		UnpublishAt:  news.UnpublishAt,
		CreatedAt:    news.CreatedAt,
		UpdatedAt:    news.UpdatedAt,
	}

	if news.Author != nil {
		resp.Author = toUserDTO(news.Author)
	}
	if news.CoverMedia != nil {
		resp.CoverURL = news.CoverMedia.URL
	}
	for _, t := range news.Tags {
		resp.Tags = append(resp.Tags, t.Code)
	}
	for _, tr := range news.Translations {
		resp.Translations = append(resp.Translations, dto.NewsTranslationDTO{
			Lang:            tr.Lang,
			Title:           tr.Title,
			Slug:            tr.Slug,
			Summary:         tr.Summary,
			Content:         tr.Content,
			MetaTitle:       tr.MetaTitle,
			MetaDescription: tr.MetaDescription,
		})
	}

	return resp
}

func toNewsHistoryDTO(e *models.NewsHistory) dto.NewsHistoryDTO {
	resp := dto.NewsHistoryDTO{
		ID:         e.ID,
		NewsID:     e.NewsID,
		FromStatus: e.FromStatus,
		ToStatus:   e.ToStatus,
		CreatedAt:  e.CreatedAt,
		Diff: dto.NewsDiffDTO{
			Field:       e.Diff.Field,
			From:        e.Diff.From,
			To:          e.Diff.To,
			Action:      e.Diff.Action,
			Actor:       e.Diff.Actor,
			ScheduledAt: e.Diff.ScheduledAt,
			Timestamp:   e.Diff.Timestamp,
		},
	}
	if e.ChangedBy != nil {
		resp.ChangedBy = toUserDTO(e.ChangedBy)
	}
	return resp
}

func toUserDTO(u *models.User) *dto.UserDTO {
	return &dto.UserDTO{
		ID:        u.ID,
		UUID:      u.UUID.String(),
		Username:  u.Username,
		FullName:  u.FullName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

func paginationDTO(page, size int, total int64) dto.PaginationDTO {
	totalPages := int((total + int64(size) - 1) / int64(size))
	return dto.PaginationDTO{
		Page:       page,
		PageSize:   size,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
