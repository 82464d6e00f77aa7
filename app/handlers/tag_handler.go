package handlers

import (
	"log"

	"github.com/khabarhub/newsads/app/dto"
	businessflow "github.com/khabarhub/newsads/business_flow"

	"github.com/gofiber/fiber/v3"
)

// TagHandlerInterface defines the contract for tag administration
type TagHandlerInterface interface {
	CreateTag(c fiber.Ctx) error
	UpdateTag(c fiber.Ctx) error
	ListTags(c fiber.Ctx) error
	DeleteTag(c fiber.Ctx) error
}

// TagHandler handles tag management requests
type TagHandler struct {
	baseHandler
	tagFlow businessflow.TagFlow
}

// NewTagHandler creates a new tag handler
func NewTagHandler(tagFlow businessflow.TagFlow) *TagHandler {
	return &TagHandler{
		baseHandler: newBaseHandler(),
		tagFlow:     tagFlow,
	}
}

// CreateTag registers a new tag code
func (h *TagHandler) CreateTag(c fiber.Ctx) error {
	var req dto.CreateTagRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if messages := h.validateStruct(&req); messages != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	result, err := h.tagFlow.CreateTag(h.createRequestContext(c, "/api/v1/admin/tags"), &req, clientMetadata(c))
	if err != nil {
		if berr, ok := err.(*businessflow.BusinessError); ok && berr.Code == "TAG_CODE_TAKEN" {
			return h.ErrorResponse(c, fiber.StatusConflict, "Tag code already exists", berr.Code, nil)
		}

		log.Println("Create tag failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create tag", "TAG_CREATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Tag created", result)
}

// UpdateTag renames or toggles a tag
func (h *TagHandler) UpdateTag(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid tag id", "INVALID_TAG_ID", nil)
	}

	var req dto.UpdateTagRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if messages := h.validateStruct(&req); messages != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	req.ID = id

	result, err := h.tagFlow.UpdateTag(h.createRequestContext(c, "/api/v1/admin/tags/:id"), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsTagNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Tag not found", "TAG_NOT_FOUND", nil)
		}
		if berr, ok := err.(*businessflow.BusinessError); ok && berr.Code == "TAG_CODE_TAKEN" {
			return h.ErrorResponse(c, fiber.StatusConflict, "Tag code already exists", berr.Code, nil)
		}

		log.Println("Update tag failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update tag", "TAG_UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Tag updated", result)
}

// DeleteTag removes a tag and detaches it from articles
func (h *TagHandler) DeleteTag(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid tag id", "INVALID_TAG_ID", nil)
	}

	if err := h.tagFlow.DeleteTag(h.createRequestContext(c, "/api/v1/admin/tags/:id"), id, clientMetadata(c)); err != nil {
		if businessflow.IsTagNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Tag not found", "TAG_NOT_FOUND", nil)
		}

		log.Println("Delete tag failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete tag", "TAG_DELETE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Tag deleted", nil)
}

// ListTags returns all tags for the admin panel
func (h *TagHandler) ListTags(c fiber.Ctx) error {
	result, err := h.tagFlow.ListTags(h.createRequestContext(c, "/api/v1/admin/tags"))
	if err != nil {
		log.Println("List tags failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list tags", "TAG_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Tags listed", result)
}
