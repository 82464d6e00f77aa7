// Package businessflow contains the core business logic and use cases for the editorial and ad-serving workflows
package businessflow

import (
	"context"
	"time"

	"github.com/khabarhub/newsads/app/dto"
	"github.com/khabarhub/newsads/models"
	"github.com/khabarhub/newsads/repository"
	"github.com/khabarhub/newsads/utils"
	"github.com/lib/pq"
)

// AdsAdminFlow handles campaign, creative, placement and assignment
// management
type AdsAdminFlow interface {
	CreateCampaign(ctx context.Context, req *dto.CreateCampaignRequest, metadata *ClientMetadata) (*dto.CampaignDTO, error)
	UpdateCampaign(ctx context.Context, req *dto.UpdateCampaignRequest, metadata *ClientMetadata) (*dto.CampaignDTO, error)
	GetCampaign(ctx context.Context, id uint) (*dto.CampaignDTO, error)
	ListCampaigns(ctx context.Context, req *dto.ListCampaignsRequest) (*dto.ListCampaignsResponse, error)

	CreateCreative(ctx context.Context, req *dto.CreateCreativeRequest, metadata *ClientMetadata) (*dto.CreativeDTO, error)
	UpdateCreative(ctx context.Context, req *dto.UpdateCreativeRequest, metadata *ClientMetadata) (*dto.CreativeDTO, error)
	ListCreativesByCampaign(ctx context.Context, campaignID uint) ([]dto.CreativeDTO, error)

	CreatePlacement(ctx context.Context, req *dto.CreatePlacementRequest, metadata *ClientMetadata) (*dto.PlacementDTO, error)
	UpdatePlacement(ctx context.Context, req *dto.UpdatePlacementRequest, metadata *ClientMetadata) (*dto.PlacementDTO, error)
	ListPlacements(ctx context.Context) ([]dto.PlacementDTO, error)

	CreateAssignment(ctx context.Context, req *dto.CreateAssignmentRequest, metadata *ClientMetadata) (*dto.AssignmentDTO, error)
	UpdateAssignment(ctx context.Context, req *dto.UpdateAssignmentRequest, metadata *ClientMetadata) (*dto.AssignmentDTO, error)
	DeleteAssignment(ctx context.Context, id uint, metadata *ClientMetadata) error
	ListAssignmentsByPlacement(ctx context.Context, placementID uint) ([]dto.AssignmentDTO, error)
}

// AdsAdminFlowImpl implements the ads admin flow
type AdsAdminFlowImpl struct {
	campaignRepo   repository.AdsCampaignRepository
	creativeRepo   repository.AdsCreativeRepository
	placementRepo  repository.AdsPlacementRepository
	assignmentRepo repository.AdsAssignmentRepository
	mediaRepo      repository.MediaRepository
	txm            repository.TxManager
}

// NewAdsAdminFlow creates a new ads admin flow instance
func NewAdsAdminFlow(
	campaignRepo repository.AdsCampaignRepository,
	creativeRepo repository.AdsCreativeRepository,
	placementRepo repository.AdsPlacementRepository,
	assignmentRepo repository.AdsAssignmentRepository,
	mediaRepo repository.MediaRepository,
	txm repository.TxManager,
) AdsAdminFlow {
	return &AdsAdminFlowImpl{
		campaignRepo:   campaignRepo,
		creativeRepo:   creativeRepo,
		placementRepo:  placementRepo,
		assignmentRepo: assignmentRepo,
		mediaRepo:      mediaRepo,
		txm:            txm,
	}
}

// CreateCampaign creates a draft campaign
func (s *AdsAdminFlowImpl) CreateCampaign(ctx context.Context, req *dto.CreateCampaignRequest, metadata *ClientMetadata) (*dto.CampaignDTO, error) {
	if req.Name == "" {
		return nil, NewBusinessError("CAMPAIGN_VALIDATION_FAILED", "Campaign validation failed", ErrCampaignNameRequired)
	}
	if req.StartAt != nil && req.EndAt != nil && !req.EndAt.After(*req.StartAt) {
		return nil, NewBusinessError("CAMPAIGN_WINDOW_INVALID", "Campaign window is invalid", ErrCampaignWindowInvalid)
	}

	campaign := &models.AdsCampaign{
		Name:               req.Name,
		Advertiser:         req.Advertiser,
		Status:             models.AdsCampaignStatusDraft,
		StartAt:            req.StartAt,
		EndAt:              req.EndAt,
		DailyImpressionCap: req.DailyImpressionCap,
		DailyClickCap:      req.DailyClickCap,
	}
	if err := s.campaignRepo.Save(ctx, campaign); err != nil {
		return nil, NewBusinessError("CAMPAIGN_CREATION_FAILED", "Campaign creation failed", err)
	}

	return toCampaignDTO(campaign), nil
}

// UpdateCampaign applies a partial update. Status changes go through the
// campaign transition rules: ENDED is terminal.
func (s *AdsAdminFlowImpl) UpdateCampaign(ctx context.Context, req *dto.UpdateCampaignRequest, metadata *ClientMetadata) (*dto.CampaignDTO, error) {
	campaign, err := s.campaignRepo.ByID(ctx, req.ID)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_LOOKUP_FAILED", "Failed to lookup campaign", err)
	}
	if campaign == nil {
		return nil, NewBusinessError("CAMPAIGN_NOT_FOUND", "Campaign not found", ErrCampaignNotFound)
	}

	if req.Status != nil {
		target := models.AdsCampaignStatus(*req.Status)
		if !target.Valid() {
			return nil, NewBusinessError("CAMPAIGN_STATUS_INVALID", "Invalid campaign status", ErrInvalidCampaignTransition)
		}
		if !campaign.Status.CanTransitionTo(target) {
			return nil, NewBusinessError("CAMPAIGN_TRANSITION_INVALID", "Invalid campaign status transition", ErrInvalidCampaignTransition)
		}
		campaign.Status = target
	}
	if req.Name != nil {
		campaign.Name = *req.Name
	}
	if req.Advertiser != nil {
		campaign.Advertiser = *req.Advertiser
	}
	if req.StartAt != nil {
		campaign.StartAt = req.StartAt
	}
	if req.EndAt != nil {
		campaign.EndAt = req.EndAt
	}
	if req.DailyImpressionCap != nil {
		campaign.DailyImpressionCap = req.DailyImpressionCap
	}
	if req.DailyClickCap != nil {
		campaign.DailyClickCap = req.DailyClickCap
	}
	if campaign.StartAt != nil && campaign.EndAt != nil && !campaign.EndAt.After(*campaign.StartAt) {
		return nil, NewBusinessError("CAMPAIGN_WINDOW_INVALID", "Campaign window is invalid", ErrCampaignWindowInvalid)
	}

	if err := s.campaignRepo.Update(ctx, *campaign); err != nil {
		return nil, NewBusinessError("CAMPAIGN_UPDATE_FAILED", "Campaign update failed", err)
	}

	return s.GetCampaign(ctx, req.ID)
}

// GetCampaign retrieves a campaign by id
func (s *AdsAdminFlowImpl) GetCampaign(ctx context.Context, id uint) (*dto.CampaignDTO, error) {
	campaign, err := s.campaignRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_LOOKUP_FAILED", "Failed to lookup campaign", err)
	}
	if campaign == nil {
		return nil, NewBusinessError("CAMPAIGN_NOT_FOUND", "Campaign not found", ErrCampaignNotFound)
	}

	return toCampaignDTO(campaign), nil
}

// ListCampaigns retrieves a filtered, paginated campaign listing
func (s *AdsAdminFlowImpl) ListCampaigns(ctx context.Context, req *dto.ListCampaignsRequest) (*dto.ListCampaignsResponse, error) {
	page, size := NormalizePage(req.Page, req.PageSize, utils.DefaultPageSize, utils.MaxPageSize)

	filter := models.AdsCampaignFilter{Name: req.Name}
	if req.Status != nil {
		status := models.AdsCampaignStatus(*req.Status)
		if !status.Valid() {
			return nil, NewBusinessError("CAMPAIGN_STATUS_INVALID", "Invalid campaign status", ErrInvalidCampaignTransition)
		}
		filter.Status = &status
	}

	total, err := s.campaignRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_COUNT_FAILED", "Failed to count campaigns", err)
	}

	items, err := s.campaignRepo.ByFilter(ctx, filter, "created_at DESC", size, (page-1)*size)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_LIST_FAILED", "Failed to list campaigns", err)
	}

	resp := &dto.ListCampaignsResponse{
		Items:      make([]dto.CampaignDTO, 0, len(items)),
		Pagination: paginationDTO(page, size, total),
	}
	for _, c := range items {
		resp.Items = append(resp.Items, *toCampaignDTO(c))
	}

	return resp, nil
}

// CreateCreative creates a creative under a campaign. Exactly one of
// media_id and html_snippet must be present.
func (s *AdsAdminFlowImpl) CreateCreative(ctx context.Context, req *dto.CreateCreativeRequest, metadata *ClientMetadata) (*dto.CreativeDTO, error) {
	campaign, err := s.campaignRepo.ByID(ctx, req.CampaignID)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_LOOKUP_FAILED", "Failed to lookup campaign", err)
	}
	if campaign == nil {
		return nil, NewBusinessError("CAMPAIGN_NOT_FOUND", "Campaign not found", ErrCampaignNotFound)
	}
	if campaign.Status == models.AdsCampaignStatusEnded {
		return nil, NewBusinessError("CAMPAIGN_ENDED", "Campaign has ended", ErrCampaignEnded)
	}

	var payload models.CreativePayload
	switch {
	case req.MediaID != nil && req.HTMLSnippet == nil:
		media, err := s.mediaRepo.ByID(ctx, *req.MediaID)
		if err != nil {
			return nil, NewBusinessError("MEDIA_LOOKUP_FAILED", "Failed to lookup media", err)
		}
		if media == nil {
			return nil, NewBusinessError("MEDIA_NOT_FOUND", "Media not found", ErrMediaNotFound)
		}
		payload = models.NewImagePayload(media.ID, media.URL)
	case req.HTMLSnippet != nil && req.MediaID == nil:
		payload = models.NewHTMLPayload(*req.HTMLSnippet)
	default:
		return nil, NewBusinessError("CREATIVE_PAYLOAD_INVALID", "Creative payload is invalid", models.ErrCreativePayloadKind)
	}
	if err := payload.Validate(); err != nil {
		return nil, NewBusinessError("CREATIVE_PAYLOAD_INVALID", "Creative payload is invalid", err)
	}

	var creative *models.AdsCreative
	err = s.txm.WithTx(ctx, func(txCtx context.Context) error {
		creative = &models.AdsCreative{
			CampaignID: req.CampaignID,
			Payload:    payload,
			LandingURL: req.LandingURL,
			IsActive:   true,
		}
		if err := s.creativeRepo.Save(txCtx, creative); err != nil {
			return err
		}

		for _, in := range req.Translations {
			tr := &models.AdsCreativeTranslation{
				CreativeID: creative.ID,
				Lang:       in.Lang,
				Title:      in.Title,
				AltText:    in.AltText,
			}
			if err := s.creativeRepo.SaveTranslation(txCtx, tr); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, NewBusinessError("CREATIVE_CREATION_FAILED", "Creative creation failed", err)
	}

	return toCreativeDTO(creative), nil
}

// UpdateCreative applies a partial update to a creative
func (s *AdsAdminFlowImpl) UpdateCreative(ctx context.Context, req *dto.UpdateCreativeRequest, metadata *ClientMetadata) (*dto.CreativeDTO, error) {
	creative, err := s.creativeRepo.ByID(ctx, req.ID)
	if err != nil {
		return nil, NewBusinessError("CREATIVE_LOOKUP_FAILED", "Failed to lookup creative", err)
	}
	if creative == nil {
		return nil, NewBusinessError("CREATIVE_NOT_FOUND", "Creative not found", ErrCreativeNotFound)
	}

	if req.IsActive != nil {
		creative.IsActive = *req.IsActive
	}
	if req.LandingURL != nil {
		creative.LandingURL = *req.LandingURL
	}

	err = s.txm.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.creativeRepo.Update(txCtx, *creative); err != nil {
			return err
		}

		for _, in := range req.Translations {
			tr := &models.AdsCreativeTranslation{
				CreativeID: creative.ID,
				Lang:       in.Lang,
				Title:      in.Title,
				AltText:    in.AltText,
			}
			if existing := creative.TranslationFor(in.Lang); existing != nil {
				tr.ID = existing.ID
			}
			if err := s.creativeRepo.SaveTranslation(txCtx, tr); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, NewBusinessError("CREATIVE_UPDATE_FAILED", "Creative update failed", err)
	}

	updated, err := s.creativeRepo.ByID(ctx, req.ID)
	if err != nil {
		return nil, NewBusinessError("CREATIVE_LOOKUP_FAILED", "Failed to lookup creative", err)
	}

	return toCreativeDTO(updated), nil
}

// ListCreativesByCampaign retrieves all creatives under a campaign
func (s *AdsAdminFlowImpl) ListCreativesByCampaign(ctx context.Context, campaignID uint) ([]dto.CreativeDTO, error) {
	campaign, err := s.campaignRepo.ByID(ctx, campaignID)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_LOOKUP_FAILED", "Failed to lookup campaign", err)
	}
	if campaign == nil {
		return nil, NewBusinessError("CAMPAIGN_NOT_FOUND", "Campaign not found", ErrCampaignNotFound)
	}

	creatives, err := s.creativeRepo.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, NewBusinessError("CREATIVE_LIST_FAILED", "Failed to list creatives", err)
	}

	resp := make([]dto.CreativeDTO, 0, len(creatives))
	for _, c := range creatives {
		resp = append(resp, *toCreativeDTO(c))
	}

	return resp, nil
}

// CreatePlacement creates an ad slot; placement codes are globally unique
func (s *AdsAdminFlowImpl) CreatePlacement(ctx context.Context, req *dto.CreatePlacementRequest, metadata *ClientMetadata) (*dto.PlacementDTO, error) {
	existing, err := s.placementRepo.ByCode(ctx, req.Code)
	if err != nil {
		return nil, NewBusinessError("PLACEMENT_LOOKUP_FAILED", "Failed to lookup placement", err)
	}
	if existing != nil {
		return nil, NewBusinessError("PLACEMENT_CODE_TAKEN", "Placement code already exists", ErrPlacementCodeTaken)
	}

	placement := &models.AdsPlacement{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Width:       req.Width,
		Height:      req.Height,
		IsActive:    true,
	}
	if err := s.placementRepo.Save(ctx, placement); err != nil {
		return nil, NewBusinessError("PLACEMENT_CREATION_FAILED", "Placement creation failed", err)
	}

	return toPlacementDTO(placement), nil
}

// UpdatePlacement applies a partial update to a placement
func (s *AdsAdminFlowImpl) UpdatePlacement(ctx context.Context, req *dto.UpdatePlacementRequest, metadata *ClientMetadata) (*dto.PlacementDTO, error) {
	placement, err := s.placementRepo.ByID(ctx, req.ID)
	if err != nil {
		return nil, NewBusinessError("PLACEMENT_LOOKUP_FAILED", "Failed to lookup placement", err)
	}
	if placement == nil {
		return nil, NewBusinessError("PLACEMENT_NOT_FOUND", "Placement not found", ErrPlacementNotFound)
	}

	if req.Name != nil {
		placement.Name = *req.Name
	}
	if req.Description != nil {
		placement.Description = *req.Description
	}
	if req.Width != nil {
		placement.Width = req.Width
	}
	if req.Height != nil {
		placement.Height = req.Height
	}
	if req.IsActive != nil {
		placement.IsActive = *req.IsActive
	}

	if err := s.placementRepo.Update(ctx, *placement); err != nil {
		return nil, NewBusinessError("PLACEMENT_UPDATE_FAILED", "Placement update failed", err)
	}

	return toPlacementDTO(placement), nil
}

// ListPlacements retrieves every placement
func (s *AdsAdminFlowImpl) ListPlacements(ctx context.Context) ([]dto.PlacementDTO, error) {
	placements, err := s.placementRepo.ByFilter(ctx, models.AdsPlacementFilter{}, "code ASC", 0, 0)
	if err != nil {
		return nil, NewBusinessError("PLACEMENT_LIST_FAILED", "Failed to list placements", err)
	}

	resp := make([]dto.PlacementDTO, 0, len(placements))
	for _, p := range placements {
		resp = append(resp, *toPlacementDTO(p))
	}

	return resp, nil
}

// CreateAssignment binds a creative to a placement
func (s *AdsAdminFlowImpl) CreateAssignment(ctx context.Context, req *dto.CreateAssignmentRequest, metadata *ClientMetadata) (*dto.AssignmentDTO, error) {
	if err := validateAssignmentFields(req.Weight, req.StartAt, req.EndAt); err != nil {
		return nil, err
	}

	placement, err := s.placementRepo.ByID(ctx, req.PlacementID)
	if err != nil {
		return nil, NewBusinessError("PLACEMENT_LOOKUP_FAILED", "Failed to lookup placement", err)
	}
	if placement == nil {
		return nil, NewBusinessError("PLACEMENT_NOT_FOUND", "Placement not found", ErrPlacementNotFound)
	}

	creative, err := s.creativeRepo.ByID(ctx, req.CreativeID)
	if err != nil {
		return nil, NewBusinessError("CREATIVE_LOOKUP_FAILED", "Failed to lookup creative", err)
	}
	if creative == nil {
		return nil, NewBusinessError("CREATIVE_NOT_FOUND", "Creative not found", ErrCreativeNotFound)
	}

	dup, err := s.assignmentRepo.Exists(ctx, models.AdsAssignmentFilter{
		PlacementID: &req.PlacementID,
		CreativeID:  &req.CreativeID,
	})
	if err != nil {
		return nil, NewBusinessError("ASSIGNMENT_LOOKUP_FAILED", "Failed to lookup assignment", err)
	}
	if dup {
		return nil, NewBusinessError("ASSIGNMENT_EXISTS", "Assignment already exists", ErrAssignmentExists)
	}

	assignment := &models.AdsAssignment{
		PlacementID:    req.PlacementID,
		CreativeID:     req.CreativeID,
		Weight:         req.Weight,
		LangFilter:     pq.StringArray(req.LangFilter),
		CategoryFilter: pq.Int64Array(req.CategoryFilter),
		StartAt:        req.StartAt,
		EndAt:          req.EndAt,
		IsActive:       true,
	}
	if err := s.assignmentRepo.Save(ctx, assignment); err != nil {
		return nil, NewBusinessError("ASSIGNMENT_CREATION_FAILED", "Assignment creation failed", err)
	}

	return toAssignmentDTO(assignment), nil
}

// UpdateAssignment applies a partial update to an assignment
func (s *AdsAdminFlowImpl) UpdateAssignment(ctx context.Context, req *dto.UpdateAssignmentRequest, metadata *ClientMetadata) (*dto.AssignmentDTO, error) {
	assignment, err := s.assignmentRepo.ByID(ctx, req.ID)
	if err != nil {
		return nil, NewBusinessError("ASSIGNMENT_LOOKUP_FAILED", "Failed to lookup assignment", err)
	}
	if assignment == nil {
		return nil, NewBusinessError("ASSIGNMENT_NOT_FOUND", "Assignment not found", ErrAssignmentNotFound)
	}

	if req.Weight != nil {
		assignment.Weight = req.Weight
	}
	if req.LangFilter != nil {
		assignment.LangFilter = pq.StringArray(req.LangFilter)
	}
	if req.CategoryFilter != nil {
		assignment.CategoryFilter = pq.Int64Array(req.CategoryFilter)
	}
	if req.StartAt != nil {
		assignment.StartAt = req.StartAt
	}
	if req.EndAt != nil {
		assignment.EndAt = req.EndAt
	}
	if req.IsActive != nil {
		assignment.IsActive = *req.IsActive
	}
	if err := validateAssignmentFields(assignment.Weight, assignment.StartAt, assignment.EndAt); err != nil {
		return nil, err
	}

	if err := s.assignmentRepo.Update(ctx, *assignment); err != nil {
		return nil, NewBusinessError("ASSIGNMENT_UPDATE_FAILED", "Assignment update failed", err)
	}

	return toAssignmentDTO(assignment), nil
}

// DeleteAssignment removes an assignment
func (s *AdsAdminFlowImpl) DeleteAssignment(ctx context.Context, id uint, metadata *ClientMetadata) error {
	assignment, err := s.assignmentRepo.ByID(ctx, id)
	if err != nil {
		return NewBusinessError("ASSIGNMENT_LOOKUP_FAILED", "Failed to lookup assignment", err)
	}
	if assignment == nil {
		return NewBusinessError("ASSIGNMENT_NOT_FOUND", "Assignment not found", ErrAssignmentNotFound)
	}

	if err := s.assignmentRepo.Delete(ctx, id); err != nil {
		return NewBusinessError("ASSIGNMENT_DELETE_FAILED", "Assignment delete failed", err)
	}
	return nil
}

// ListAssignmentsByPlacement retrieves all assignments for a placement
func (s *AdsAdminFlowImpl) ListAssignmentsByPlacement(ctx context.Context, placementID uint) ([]dto.AssignmentDTO, error) {
	placement, err := s.placementRepo.ByID(ctx, placementID)
	if err != nil {
		return nil, NewBusinessError("PLACEMENT_LOOKUP_FAILED", "Failed to lookup placement", err)
	}
	if placement == nil {
		return nil, NewBusinessError("PLACEMENT_NOT_FOUND", "Placement not found", ErrPlacementNotFound)
	}

	assignments, err := s.assignmentRepo.ByFilter(ctx, models.AdsAssignmentFilter{PlacementID: &placementID}, "id ASC", 0, 0)
	if err != nil {
		return nil, NewBusinessError("ASSIGNMENT_LIST_FAILED", "Failed to list assignments", err)
	}

	resp := make([]dto.AssignmentDTO, 0, len(assignments))
	for _, a := range assignments {
		resp = append(resp, *toAssignmentDTO(a))
	}

	return resp, nil
}

func validateAssignmentFields(weight *int, startAt, endAt *time.Time) error {
	if weight != nil && (*weight < models.MinAssignmentWeight || *weight > models.MaxAssignmentWeight) {
		return NewBusinessError("ASSIGNMENT_WEIGHT_INVALID", "Weight is out of range", ErrWeightOutOfRange)
	}
	if startAt != nil && endAt != nil && !endAt.After(*startAt) {
		return NewBusinessError("ASSIGNMENT_WINDOW_INVALID", "Assignment window is invalid", ErrAssignmentWindowInvalid)
	}
	return nil
}

func toCampaignDTO(c *models.AdsCampaign) *dto.CampaignDTO {
	return &dto.CampaignDTO{
		ID:                 c.ID,
		UUID:               c.UUID.String(),
		Name:               c.Name,
		Advertiser:         c.Advertiser,
		Status:             string(c.Status),
		StartAt:            c.StartAt,
		EndAt:              c.EndAt,
		DailyImpressionCap: c.DailyImpressionCap,
		DailyClickCap:      c.DailyClickCap,
		CreativeCount:      len(c.Creatives),
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

func toCreativeDTO(c *models.AdsCreative) *dto.CreativeDTO {
	return &dto.CreativeDTO{
		ID:          c.ID,
		UUID:        c.UUID.String(),
		CampaignID:  c.CampaignID,
		Kind:        string(c.Payload.Kind),
		MediaID:     c.Payload.MediaID,
		ImageURL:    c.Payload.ImageURL,
		HTMLSnippet: c.Payload.HTMLSnippet,
		LandingURL:  c.LandingURL,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toPlacementDTO(p *models.AdsPlacement) *dto.PlacementDTO {
	return &dto.PlacementDTO{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Width:       p.Width,
		Height:      p.Height,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toAssignmentDTO(a *models.AdsAssignment) *dto.AssignmentDTO {
	return &dto.AssignmentDTO{
		ID:             a.ID,
		PlacementID:    a.PlacementID,
		CreativeID:     a.CreativeID,
		Weight:         a.EffectiveWeight(),
		LangFilter:     []string(a.LangFilter),
		CategoryFilter: []int64(a.CategoryFilter),
		StartAt:        a.StartAt,
		EndAt:          a.EndAt,
		IsActive:       a.IsActive,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
