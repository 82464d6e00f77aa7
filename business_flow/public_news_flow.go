// Package businessflow contains the core business logic and use cases for the editorial and ad-serving workflows
package businessflow

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/khabarhub/newsads/app/dto"
	"github.com/khabarhub/newsads/models"
	"github.com/khabarhub/newsads/repository"
	"github.com/khabarhub/newsads/utils"
	"github.com/redis/go-redis/v9"
)

// PublicNewsFlow serves the read-only site surface: published articles,
// the category tree and tag list
type PublicNewsFlow interface {
	ListNews(ctx context.Context, req *dto.PublicNewsListRequest) (*dto.PublicNewsListResponse, error)
	GetNewsBySlug(ctx context.Context, lang, slug string) (*dto.PublicNewsDetailDTO, error)
	ListCategories(ctx context.Context, lang string) ([]dto.PublicCategoryDTO, error)
	ListTags(ctx context.Context) ([]dto.PublicTagDTO, error)
}

// PublicNewsFlowImpl implements the public content flow
type PublicNewsFlowImpl struct {
	newsRepo     repository.NewsRepository
	categoryRepo repository.CategoryRepository
	tagRepo      repository.TagRepository
	rc           *redis.Client
}

// NewPublicNewsFlow creates a new public news flow instance
func NewPublicNewsFlow(
	newsRepo repository.NewsRepository,
	categoryRepo repository.CategoryRepository,
	tagRepo repository.TagRepository,
	rc *redis.Client,
) PublicNewsFlow {
	return &PublicNewsFlowImpl{
		newsRepo:     newsRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		rc:           rc,
	}
}

// ListNews retrieves a page of published articles for the site. Results are
// cached per full query shape with a short TTL; staleness up to the TTL is
// accepted instead of write-side invalidation.
func (s *PublicNewsFlowImpl) ListNews(ctx context.Context, req *dto.PublicNewsListRequest) (*dto.PublicNewsListResponse, error) {
	lang := req.Lang
	if lang == "" {
		lang = utils.DefaultLanguage
	}
	page, size := NormalizePage(req.Page, req.PageSize, utils.DefaultPageSize, utils.MaxPageSize)

	cat := "all"
	if req.CategoryID != nil {
		cat = fmt.Sprintf("%d", *req.CategoryID)
	}
	tag := "all"
	if req.TagCode != nil {
		tag = *req.TagCode
	}
	cacheKey := fmt.Sprintf(utils.NewsListCacheKeyFormat, lang, page, size, cat, tag)

	if s.rc != nil {
		if bs, err := s.rc.Get(ctx, cacheKey).Bytes(); err == nil && len(bs) > 0 {
			var cached dto.PublicNewsListResponse
			if err := json.Unmarshal(bs, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	published := models.NewsStatusPublished
	notDeleted := false
	filter := models.NewsFilter{
		Status:     &published,
		IsDeleted:  &notDeleted,
		Lang:       &lang,
		CategoryID: req.CategoryID,
		TagCode:    req.TagCode,
	}

	total, err := s.newsRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("NEWS_COUNT_FAILED", "Failed to count news", err)
	}

	items, err := s.newsRepo.ByFilter(ctx, filter, "news.publish_at DESC, news.created_at DESC", size, (page-1)*size)
	if err != nil {
		return nil, NewBusinessError("NEWS_LIST_FAILED", "Failed to list news", err)
	}

	resp := &dto.PublicNewsListResponse{
		Items:      make([]dto.PublicNewsItemDTO, 0, len(items)),
		Pagination: paginationDTO(page, size, total),
	}
	for _, n := range items {
		if item, ok := s.toPublicItem(n, lang); ok {
			resp.Items = append(resp.Items, item)
		}
	}

	if s.rc != nil {
		if bs, err := json.Marshal(resp); err == nil {
			_ = s.rc.Set(ctx, cacheKey, bs, utils.NewsListCacheTTL).Err()
		}
	}

	return resp, nil
}

// GetNewsBySlug retrieves a published article by its language-scoped slug
func (s *PublicNewsFlowImpl) GetNewsBySlug(ctx context.Context, lang, slug string) (*dto.PublicNewsDetailDTO, error) {
	if lang == "" {
		lang = utils.DefaultLanguage
	}

	cacheKey := fmt.Sprintf(utils.NewsDetailCacheKeyFormat, slug, lang)
	if s.rc != nil {
		if bs, err := s.rc.Get(ctx, cacheKey).Bytes(); err == nil && len(bs) > 0 {
			var cached dto.PublicNewsDetailDTO
			if err := json.Unmarshal(bs, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	news, err := s.newsRepo.FindPublishedBySlug(ctx, lang, slug)
	if err != nil {
		return nil, NewBusinessError("NEWS_LOOKUP_FAILED", "Failed to lookup news", err)
	}
	if news == nil {
		return nil, NewBusinessError("NEWS_NOT_FOUND", "News not found", ErrNewsNotFound)
	}

	tr := news.TranslationFor(lang)
	if tr == nil {
		return nil, NewBusinessError("NEWS_NOT_FOUND", "News not found", ErrNewsNotFound)
	}

	resp := &dto.PublicNewsDetailDTO{
		UUID:            news.UUID.String(),
		Title:           tr.Title,
		Slug:            tr.Slug,
		Summary:         tr.Summary,
		Content:         tr.Content,
		MetaTitle:       tr.MetaTitle,
		MetaDescription: tr.MetaDescription,
		IsFeatured:      news.IsFeatured,
		PublishedAt:     publishedAt(news),
	}
	if news.CoverMedia != nil {
		resp.CoverURL = news.CoverMedia.URL
	}
	if news.Author != nil {
		resp.AuthorName = news.Author.FullName
	}
	if news.Category != nil {
		if ctr := news.Category.TranslationFor(lang); ctr != nil {
			resp.CategorySlug = ctr.Slug
			resp.CategoryTitle = ctr.Title
		}
	}
	for _, t := range news.Tags {
		resp.Tags = append(resp.Tags, t.Code)
	}

	if s.rc != nil {
		if bs, err := json.Marshal(resp); err == nil {
			_ = s.rc.Set(ctx, cacheKey, bs, utils.NewsDetailCacheTTL).Err()
		}
	}

	return resp, nil
}

// ListCategories retrieves the active category tree for the site menu
func (s *PublicNewsFlowImpl) ListCategories(ctx context.Context, lang string) ([]dto.PublicCategoryDTO, error) {
	if lang == "" {
		lang = utils.DefaultLanguage
	}

	cacheKey := fmt.Sprintf(utils.CategoriesCacheKeyFormat, lang)
	if s.rc != nil {
		if bs, err := s.rc.Get(ctx, cacheKey).Bytes(); err == nil && len(bs) > 0 {
			var cached []dto.PublicCategoryDTO
			if err := json.Unmarshal(bs, &cached); err == nil {
				return cached, nil
			}
		}
	}

	categories, err := s.categoryRepo.ListActiveWithTranslations(ctx)
	if err != nil {
		return nil, NewBusinessError("CATEGORY_LIST_FAILED", "Failed to list categories", err)
	}

	tree := buildCategoryTree(categories, lang)

	if s.rc != nil {
		if bs, err := json.Marshal(tree); err == nil {
			_ = s.rc.Set(ctx, cacheKey, bs, utils.CategoriesCacheTTL).Err()
		}
	}

	return tree, nil
}

// ListTags retrieves the active tag codes
func (s *PublicNewsFlowImpl) ListTags(ctx context.Context) ([]dto.PublicTagDTO, error) {
	if s.rc != nil {
		if bs, err := s.rc.Get(ctx, utils.TagsCacheKey).Bytes(); err == nil && len(bs) > 0 {
			var cached []dto.PublicTagDTO
			if err := json.Unmarshal(bs, &cached); err == nil {
				return cached, nil
			}
		}
	}

	tags, err := s.tagRepo.ListActive(ctx)
	if err != nil {
		return nil, NewBusinessError("TAG_LIST_FAILED", "Failed to list tags", err)
	}

	resp := make([]dto.PublicTagDTO, 0, len(tags))
	for _, t := range tags {
		resp = append(resp, dto.PublicTagDTO{Code: t.Code})
	}

	if s.rc != nil {
		if bs, err := json.Marshal(resp); err == nil {
			_ = s.rc.Set(ctx, utils.TagsCacheKey, bs, utils.TagsCacheTTL).Err()
		}
	}

	return resp, nil
}

// toPublicItem skips articles with no translation for the requested language
// rather than leaking another language into the listing
func (s *PublicNewsFlowImpl) toPublicItem(news *models.News, lang string) (dto.PublicNewsItemDTO, bool) {
	tr := news.TranslationFor(lang)
	if tr == nil {
		return dto.PublicNewsItemDTO{}, false
	}

	item := dto.PublicNewsItemDTO{
		UUID:        news.UUID.String(),
		Title:       tr.Title,
		Slug:        tr.Slug,
		Summary:     tr.Summary,
		IsFeatured:  news.IsFeatured,
		PublishedAt: publishedAt(news),
	}
	if news.CoverMedia != nil {
		item.CoverURL = news.CoverMedia.URL
	}
	if news.Category != nil {
		if ctr := news.Category.TranslationFor(lang); ctr != nil {
			item.CategorySlug = ctr.Slug
		}
	}

	return item, true
}

func publishedAt(news *models.News) time.Time {
	if news.PublishAt != nil {
		return *news.PublishAt
	}
	return news.CreatedAt
}

// buildCategoryTree assembles the flat parent-id rows into nested DTOs.
// Children are linked through an id index, so a dangling parent reference
// drops the subtree instead of recursing.
func buildCategoryTree(categories []*models.Category, lang string) []dto.PublicCategoryDTO {
	childIDs := make(map[uint][]uint, len(categories))
	translated := make(map[uint]*models.Category, len(categories))
	rootIDs := make([]uint, 0, len(categories))

	for _, c := range categories {
		if c.TranslationFor(lang) == nil {
			continue
		}
		translated[c.ID] = c
		if c.ParentID == nil {
			rootIDs = append(rootIDs, c.ID)
		} else {
			childIDs[*c.ParentID] = append(childIDs[*c.ParentID], c.ID)
		}
	}

	var build func(id uint) dto.PublicCategoryDTO
	build = func(id uint) dto.PublicCategoryDTO {
		c := translated[id]
		tr := c.TranslationFor(lang)
		node := dto.PublicCategoryDTO{
			ID:    c.ID,
			Slug:  tr.Slug,
			Title: tr.Title,
		}
		for _, childID := range childIDs[id] {
			node.Children = append(node.Children, build(childID))
		}
		return node
	}

	roots := make([]dto.PublicCategoryDTO, 0, len(rootIDs))
	for _, id := range rootIDs {
		roots = append(roots, build(id))
	}

	return roots
}
