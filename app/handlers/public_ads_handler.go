package handlers

import (
	"log"
	"strconv"
	"strings"

	"github.com/khabarhub/newsads/app/dto"
	"github.com/khabarhub/newsads/app/middleware"
	businessflow "github.com/khabarhub/newsads/business_flow"

	"github.com/gofiber/fiber/v3"
)

// PublicAdsHandlerInterface defines the contract for public ad serving
type PublicAdsHandlerInterface interface {
	ResolveAd(c fiber.Ctx) error
}

// PublicAdsHandler serves ads to the site frontend
type PublicAdsHandler struct {
	baseHandler
	adsFlow businessflow.PublicAdsFlow
}

// NewPublicAdsHandler creates a new public ads handler
func NewPublicAdsHandler(adsFlow businessflow.PublicAdsFlow) *PublicAdsHandler {
	return &PublicAdsHandler{
		baseHandler: newBaseHandler(),
		adsFlow:     adsFlow,
	}
}

// ResolveAd picks one ad for a placement. No eligible ad is a normal outcome
// and comes back as 204 so the frontend can collapse the slot without
// treating it as an error.
func (h *PublicAdsHandler) ResolveAd(c fiber.Ctx) error {
	placementCode := strings.TrimSpace(c.Params("code"))
	if placementCode == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Placement code is required", "PLACEMENT_CODE_REQUIRED", nil)
	}

	req := &dto.ResolveAdRequest{
		PlacementCode: placementCode,
		Lang:          c.Query("lang"),
	}

	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid category_id", "INVALID_CATEGORY_ID", nil)
		}
		categoryID := uint(id)
		req.CategoryID = &categoryID
	}

	result, err := h.adsFlow.ResolveAd(h.createRequestContext(c, "/api/v1/public/ads"), req, clientMetadata(c))
	if err != nil {
		if businessflow.IsNoEligibleAd(err) {
			middleware.RecordAdResolution(placementCode, "empty")
			return c.SendStatus(fiber.StatusNoContent)
		}
		if businessflow.IsPlacementNotFound(err) {
			middleware.RecordAdResolution(placementCode, "not_found")
			return h.ErrorResponse(c, fiber.StatusNotFound, "Placement not found", "PLACEMENT_NOT_FOUND", nil)
		}

		middleware.RecordAdResolution(placementCode, "error")
		log.Println("Resolve ad failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to resolve ad", "AD_RESOLUTION_FAILED", nil)
	}

	middleware.RecordAdResolution(placementCode, "served")
	return h.SuccessResponse(c, fiber.StatusOK, "Ad resolved", result)
}
