// Package businessflow contains the core business logic and use cases for the editorial and ad-serving workflows
package businessflow

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/khabarhub/newsads/app/dto"
	"github.com/khabarhub/newsads/models"
	"github.com/khabarhub/newsads/repository"
	"github.com/khabarhub/newsads/utils"
	"github.com/redis/go-redis/v9"
)

// PublicAdsFlow resolves which creative to serve for a placement
type PublicAdsFlow interface {
	ResolveAd(ctx context.Context, req *dto.ResolveAdRequest, metadata *ClientMetadata) (*dto.PublicAdDTO, error)
}

// PublicAdsFlowImpl implements the public ad selection flow
type PublicAdsFlowImpl struct {
	placementRepo  repository.AdsPlacementRepository
	assignmentRepo repository.AdsAssignmentRepository
	rc             *redis.Client
	cacheTTL       time.Duration

	// injectable for deterministic tests
	now  func() time.Time
	intn func(n int) int
}

// NewPublicAdsFlow creates a new public ads flow instance
func NewPublicAdsFlow(
	placementRepo repository.AdsPlacementRepository,
	assignmentRepo repository.AdsAssignmentRepository,
	rc *redis.Client,
	cacheTTL time.Duration,
) PublicAdsFlow {
	if cacheTTL <= 0 {
		cacheTTL = utils.AdCacheTTL
	}
	return &PublicAdsFlowImpl{
		placementRepo:  placementRepo,
		assignmentRepo: assignmentRepo,
		rc:             rc,
		cacheTTL:       cacheTTL,
		now:            utils.UTCNow,
		intn:           rand.IntN,
	}
}

// ResolveAd picks one eligible creative for the placement using weighted
// random rotation. The selection is cached per (placement, lang, category)
// for the cache TTL, so rotation effectively happens once per TTL window per
// key.
func (s *PublicAdsFlowImpl) ResolveAd(ctx context.Context, req *dto.ResolveAdRequest, metadata *ClientMetadata) (*dto.PublicAdDTO, error) {
	lang := req.Lang
	if lang == "" {
		lang = utils.DefaultLanguage
	}

	cacheKey := adCacheKey(req.PlacementCode, lang, req.CategoryID)
	if s.rc != nil {
		if bs, err := s.rc.Get(ctx, cacheKey).Bytes(); err == nil && len(bs) > 0 {
			var cached dto.PublicAdDTO
			if err := json.Unmarshal(bs, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	placement, err := s.placementRepo.ByCode(ctx, req.PlacementCode)
	if err != nil {
		return nil, NewBusinessError("PLACEMENT_LOOKUP_FAILED", "Failed to lookup placement", err)
	}
	if placement == nil || !placement.IsActive {
		return nil, NewBusinessError("PLACEMENT_NOT_FOUND", "Placement not found", ErrPlacementNotFound)
	}

	now := s.now()
	assignments, err := s.assignmentRepo.ListActiveForPlacement(ctx, placement.ID, now)
	if err != nil {
		return nil, NewBusinessError("ASSIGNMENT_LOOKUP_FAILED", "Failed to lookup assignments", err)
	}

	eligible := make([]*models.AdsAssignment, 0, len(assignments))
	for _, a := range assignments {
		if !a.WindowContains(now) {
			continue
		}
		if !a.MatchesLang(lang) {
			continue
		}
		if !a.MatchesCategory(req.CategoryID) {
			continue
		}
		eligible = append(eligible, a)
	}

	if len(eligible) == 0 {
		return nil, NewBusinessError("NO_ELIGIBLE_AD", "No eligible ad for this placement", ErrNoEligibleAd)
	}

	selected := s.selectWeighted(eligible)

	resp, err := s.toPublicAdDTO(selected, lang)
	if err != nil {
		return nil, NewBusinessError("AD_PAYLOAD_INVALID", "Selected creative has an invalid payload", err)
	}

	if s.rc != nil {
		if bs, err := json.Marshal(resp); err == nil {
			_ = s.rc.Set(ctx, cacheKey, bs, s.cacheTTL).Err()
		}
	}

	return resp, nil
}

// selectWeighted draws one assignment proportionally to its effective
// weight. When every weight is zero the draw is uniform, so zero-weight
// assignments still serve rather than starving the placement.
func (s *PublicAdsFlowImpl) selectWeighted(eligible []*models.AdsAssignment) *models.AdsAssignment {
	total := 0
	for _, a := range eligible {
		total += a.EffectiveWeight()
	}

	if total <= 0 {
		return eligible[s.intn(len(eligible))]
	}

	r := s.intn(total)
	cumulative := 0
	for _, a := range eligible {
		cumulative += a.EffectiveWeight()
		if r < cumulative {
			return a
		}
	}

	// unreachable with consistent weights
	return eligible[len(eligible)-1]
}

func (s *PublicAdsFlowImpl) toPublicAdDTO(a *models.AdsAssignment, lang string) (*dto.PublicAdDTO, error) {
	creative := a.Creative
	if creative == nil {
		return nil, ErrCreativeNotFound
	}
	if err := creative.Payload.Validate(); err != nil {
		return nil, err
	}

	resp := &dto.PublicAdDTO{
		CreativeID: creative.ID,
		Kind:       string(creative.Payload.Kind),
		LandingURL: creative.LandingURL,
	}

	switch creative.Payload.Kind {
	case models.CreativeKindImage:
		resp.ImageURL = creative.Payload.ImageURL
	case models.CreativeKindHTML:
		resp.HTMLSnippet = creative.Payload.HTMLSnippet
	}

	// A missing translation is not an error; the title and alt text simply
	// stay empty rather than serving another language's copy.
	if tr := creative.TranslationFor(lang); tr != nil {
		resp.Title = tr.Title
		resp.AltText = tr.AltText
	}

	return resp, nil
}

// adCacheKey builds the selection cache key; a missing category collapses
// into the "all" bucket
func adCacheKey(placementCode, lang string, categoryID *uint) string {
	cat := "all"
	if categoryID != nil {
		cat = fmt.Sprintf("%d", *categoryID)
	}
	return fmt.Sprintf(utils.AdCacheKeyFormat, placementCode, lang, cat)
}
