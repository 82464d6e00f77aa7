package handlers

import (
	"log"

	"github.com/khabarhub/newsads/app/dto"
	businessflow "github.com/khabarhub/newsads/business_flow"

	"github.com/gofiber/fiber/v3"
)

// AdsAdminHandlerInterface defines the contract for the ads administration API
type AdsAdminHandlerInterface interface {
	CreateCampaign(c fiber.Ctx) error
	UpdateCampaign(c fiber.Ctx) error
	GetCampaign(c fiber.Ctx) error
	ListCampaigns(c fiber.Ctx) error
	CreateCreative(c fiber.Ctx) error
	UpdateCreative(c fiber.Ctx) error
	ListCreativesByCampaign(c fiber.Ctx) error
	CreatePlacement(c fiber.Ctx) error
	UpdatePlacement(c fiber.Ctx) error
	ListPlacements(c fiber.Ctx) error
	CreateAssignment(c fiber.Ctx) error
	UpdateAssignment(c fiber.Ctx) error
	DeleteAssignment(c fiber.Ctx) error
	ListAssignmentsByPlacement(c fiber.Ctx) error
}

// AdsAdminHandler handles campaign, creative, placement and assignment management
type AdsAdminHandler struct {
	baseHandler
	adsFlow businessflow.AdsAdminFlow
}

// NewAdsAdminHandler creates a new ads admin handler
func NewAdsAdminHandler(adsFlow businessflow.AdsAdminFlow) *AdsAdminHandler {
	return &AdsAdminHandler{
		baseHandler: newBaseHandler(),
		adsFlow:     adsFlow,
	}
}

// CreateCampaign creates a draft campaign
func (h *AdsAdminHandler) CreateCampaign(c fiber.Ctx) error {
	var req dto.CreateCampaignRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if messages := h.validateStruct(&req); messages != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	result, err := h.adsFlow.CreateCampaign(h.createRequestContext(c, "/api/v1/admin/ads/campaigns"), &req, clientMetadata(c))
	if err != nil {
		if berr, ok := err.(*businessflow.BusinessError); ok && berr.Code == "CAMPAIGN_VALIDATION_FAILED" {
			return h.ErrorResponse(c, fiber.StatusBadRequest, berr.Message, berr.Code, nil)
		}

		log.Println("Create campaign failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create campaign", "CAMPAIGN_CREATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Campaign created", result)
}

// UpdateCampaign applies a partial update including status transitions
func (h *AdsAdminHandler) UpdateCampaign(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid campaign id", "INVALID_CAMPAIGN_ID", nil)
	}

	var req dto.UpdateCampaignRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if messages := h.validateStruct(&req); messages != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	req.ID = id

	result, err := h.adsFlow.UpdateCampaign(h.createRequestContext(c, "/api/v1/admin/ads/campaigns/:id"), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsCampaignNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Campaign not found", "CAMPAIGN_NOT_FOUND", nil)
		}
		if businessflow.IsInvalidCampaignTransition(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Campaign status transition not allowed", "INVALID_CAMPAIGN_TRANSITION", nil)
		}
		if berr, ok := err.(*businessflow.BusinessError); ok && berr.Code == "CAMPAIGN_VALIDATION_FAILED" {
			return h.ErrorResponse(c, fiber.StatusBadRequest, berr.Message, berr.Code, nil)
		}

		log.Println("Update campaign failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update campaign", "CAMPAIGN_UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Campaign updated", result)
}

// GetCampaign returns one campaign
func (h *AdsAdminHandler) GetCampaign(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid campaign id", "INVALID_CAMPAIGN_ID", nil)
	}

	result, err := h.adsFlow.GetCampaign(h.createRequestContext(c, "/api/v1/admin/ads/campaigns/:id"), id)
	if err != nil {
		if businessflow.IsCampaignNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Campaign not found", "CAMPAIGN_NOT_FOUND", nil)
		}

		log.Println("Get campaign failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load campaign", "CAMPAIGN_LOOKUP_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Campaign found", result)
}

// ListCampaigns returns a filtered page of campaigns
func (h *AdsAdminHandler) ListCampaigns(c fiber.Ctx) error {
	req := dto.ListCampaignsRequest{
		Page:     queryInt(c, "page", 0),
		PageSize: queryInt(c, "page_size", 0),
	}
	if v := c.Query("status"); v != "" {
		req.Status = &v
	}
	if v := c.Query("name"); v != "" {
		req.Name = &v
	}

	result, err := h.adsFlow.ListCampaigns(h.createRequestContext(c, "/api/v1/admin/ads/campaigns"), &req)
	if err != nil {
		log.Println("List campaigns failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list campaigns", "CAMPAIGN_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Campaigns listed", result)
}

// CreateCreative attaches a creative to a campaign
func (h *AdsAdminHandler) CreateCreative(c fiber.Ctx) error {
	campaignID, err := pathID(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid campaign id", "INVALID_CAMPAIGN_ID", nil)
	}

	var req dto.CreateCreativeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if messages := h.validateStruct(&req); messages != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	req.CampaignID = campaignID

	result, err := h.adsFlow.CreateCreative(h.createRequestContext(c, "/api/v1/admin/ads/campaigns/:id/creatives"), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsCampaignNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Campaign not found", "CAMPAIGN_NOT_FOUND", nil)
		}
		if businessflow.IsMediaNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Media not found", "MEDIA_NOT_FOUND", nil)
		}
		if berr, ok := err.(*businessflow.BusinessError); ok &&
			(berr.Code == "CREATIVE_VALIDATION_FAILED" || berr.Code == "CAMPAIGN_ENDED") {
			return h.ErrorResponse(c, fiber.StatusBadRequest, berr.Message, berr.Code, nil)
		}

		log.Println("Create creative failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create creative", "CREATIVE_CREATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Creative created", result)
}

// UpdateCreative applies a partial update to a creative
func (h *AdsAdminHandler) UpdateCreative(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid creative id", "INVALID_CREATIVE_ID", nil)
	}

	var req dto.UpdateCreativeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if messages := h.validateStruct(&req); messages != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	req.ID = id

	result, err := h.adsFlow.UpdateCreative(h.createRequestContext(c, "/api/v1/admin/ads/creatives/:id"), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsCreativeNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Creative not found", "CREATIVE_NOT_FOUND", nil)
		}

		log.Println("Update creative failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update creative", "CREATIVE_UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Creative updated", result)
}

// ListCreativesByCampaign returns all creatives of one campaign
func (h *AdsAdminHandler) ListCreativesByCampaign(c fiber.Ctx) error {
	campaignID, err := pathID(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid campaign id", "INVALID_CAMPAIGN_ID", nil)
	}

	result, err := h.adsFlow.ListCreativesByCampaign(h.createRequestContext(c, "/api/v1/admin/ads/campaigns/:id/creatives"), campaignID)
	if err != nil {
		if businessflow.IsCampaignNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Campaign not found", "CAMPAIGN_NOT_FOUND", nil)
		}

		log.Println("List creatives failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list creatives", "CREATIVE_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Creatives listed", result)
}

// CreatePlacement registers a new ad slot
func (h *AdsAdminHandler) CreatePlacement(c fiber.Ctx) error {
	var req dto.CreatePlacementRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if messages := h.validateStruct(&req); messages != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	result, err := h.adsFlow.CreatePlacement(h.createRequestContext(c, "/api/v1/admin/ads/placements"), &req, clientMetadata(c))
	if err != nil {
		if berr, ok := err.(*businessflow.BusinessError); ok && berr.Code == "PLACEMENT_CODE_TAKEN" {
			return h.ErrorResponse(c, fiber.StatusConflict, "Placement code already exists", berr.Code, nil)
		}

		log.Println("Create placement failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create placement", "PLACEMENT_CREATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Placement created", result)
}

// UpdatePlacement applies a partial update to a placement
func (h *AdsAdminHandler) UpdatePlacement(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid placement id", "INVALID_PLACEMENT_ID", nil)
	}

	var req dto.UpdatePlacementRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if messages := h.validateStruct(&req); messages != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	req.ID = id

	result, err := h.adsFlow.UpdatePlacement(h.createRequestContext(c, "/api/v1/admin/ads/placements/:id"), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsPlacementNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Placement not found", "PLACEMENT_NOT_FOUND", nil)
		}

		log.Println("Update placement failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update placement", "PLACEMENT_UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Placement updated", result)
}

// ListPlacements returns all placements
func (h *AdsAdminHandler) ListPlacements(c fiber.Ctx) error {
	result, err := h.adsFlow.ListPlacements(h.createRequestContext(c, "/api/v1/admin/ads/placements"))
	if err != nil {
		log.Println("List placements failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list placements", "PLACEMENT_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Placements listed", result)
}

// CreateAssignment links a creative to a placement with targeting
func (h *AdsAdminHandler) CreateAssignment(c fiber.Ctx) error {
	var req dto.CreateAssignmentRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if messages := h.validateStruct(&req); messages != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	result, err := h.adsFlow.CreateAssignment(h.createRequestContext(c, "/api/v1/admin/ads/assignments"), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsPlacementNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Placement not found", "PLACEMENT_NOT_FOUND", nil)
		}
		if businessflow.IsCreativeNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Creative not found", "CREATIVE_NOT_FOUND", nil)
		}
		if businessflow.IsAssignmentExists(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Creative is already assigned to this placement", "ASSIGNMENT_EXISTS", nil)
		}
		if berr, ok := err.(*businessflow.BusinessError); ok && berr.Code == "ASSIGNMENT_VALIDATION_FAILED" {
			return h.ErrorResponse(c, fiber.StatusBadRequest, berr.Message, berr.Code, nil)
		}

		log.Println("Create assignment failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create assignment", "ASSIGNMENT_CREATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Assignment created", result)
}

// UpdateAssignment applies a partial update to an assignment
func (h *AdsAdminHandler) UpdateAssignment(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid assignment id", "INVALID_ASSIGNMENT_ID", nil)
	}

	var req dto.UpdateAssignmentRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if messages := h.validateStruct(&req); messages != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	req.ID = id

	result, err := h.adsFlow.UpdateAssignment(h.createRequestContext(c, "/api/v1/admin/ads/assignments/:id"), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsAssignmentNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Assignment not found", "ASSIGNMENT_NOT_FOUND", nil)
		}
		if berr, ok := err.(*businessflow.BusinessError); ok && berr.Code == "ASSIGNMENT_VALIDATION_FAILED" {
			return h.ErrorResponse(c, fiber.StatusBadRequest, berr.Message, berr.Code, nil)
		}

		log.Println("Update assignment failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update assignment", "ASSIGNMENT_UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Assignment updated", result)
}

// DeleteAssignment removes a creative from a placement
func (h *AdsAdminHandler) DeleteAssignment(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid assignment id", "INVALID_ASSIGNMENT_ID", nil)
	}

	if err := h.adsFlow.DeleteAssignment(h.createRequestContext(c, "/api/v1/admin/ads/assignments/:id"), id, clientMetadata(c)); err != nil {
		if businessflow.IsAssignmentNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Assignment not found", "ASSIGNMENT_NOT_FOUND", nil)
		}

		log.Println("Delete assignment failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete assignment", "ASSIGNMENT_DELETE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Assignment deleted", nil)
}

// ListAssignmentsByPlacement returns all assignments for one placement
func (h *AdsAdminHandler) ListAssignmentsByPlacement(c fiber.Ctx) error {
	placementID, err := pathID(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid placement id", "INVALID_PLACEMENT_ID", nil)
	}

	result, err := h.adsFlow.ListAssignmentsByPlacement(h.createRequestContext(c, "/api/v1/admin/ads/placements/:id/assignments"), placementID)
	if err != nil {
		if businessflow.IsPlacementNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Placement not found", "PLACEMENT_NOT_FOUND", nil)
		}

		log.Println("List assignments failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list assignments", "ASSIGNMENT_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Assignments listed", result)
}
