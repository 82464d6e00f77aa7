package handlers

import (
	"context"
	"log"
	"strconv"

	"github.com/khabarhub/newsads/app/dto"
	"github.com/khabarhub/newsads/app/middleware"
	businessflow "github.com/khabarhub/newsads/business_flow"

	"github.com/gofiber/fiber/v3"
)

// NewsHandlerInterface defines the contract for the editorial news API
type NewsHandlerInterface interface {
	CreateNews(c fiber.Ctx) error
	UpdateNews(c fiber.Ctx) error
	GetNews(c fiber.Ctx) error
	ListNews(c fiber.Ctx) error
	ChangeStatus(c fiber.Ctx) error
	SoftDeleteNews(c fiber.Ctx) error
	RestoreNews(c fiber.Ctx) error
	HardDeleteNews(c fiber.Ctx) error
	GetHistory(c fiber.Ctx) error
}

// NewsHandler handles editorial news management requests
type NewsHandler struct {
	baseHandler
	newsFlow businessflow.NewsFlow
}

// NewNewsHandler creates a new news handler
func NewNewsHandler(newsFlow businessflow.NewsFlow) *NewsHandler {
	return &NewsHandler{
		baseHandler: newBaseHandler(),
		newsFlow:    newsFlow,
	}
}

// CreateNews creates a draft article with its translations
func (h *NewsHandler) CreateNews(c fiber.Ctx) error {
	var req dto.CreateNewsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if messages := h.validateStruct(&req); messages != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	req.AuthorID, _ = c.Locals(middleware.LocalsUserID).(uint)

	result, err := h.newsFlow.CreateNews(h.createRequestContext(c, "/api/v1/admin/news"), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsCategoryNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Category not found", "CATEGORY_NOT_FOUND", nil)
		}
		if businessflow.IsMediaNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Cover media not found", "MEDIA_NOT_FOUND", nil)
		}
		if businessflow.IsTagNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Unknown tag code", "TAG_NOT_FOUND", nil)
		}
		if berr, ok := err.(*businessflow.BusinessError); ok && berr.Code == "NEWS_VALIDATION_FAILED" {
			return h.ErrorResponse(c, fiber.StatusBadRequest, berr.Message, berr.Code, nil)
		}

		log.Println("Create news failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create news", "NEWS_CREATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "News created", result)
}

// UpdateNews applies a partial update to an article
func (h *NewsHandler) UpdateNews(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid news id", "INVALID_NEWS_ID", nil)
	}

	var req dto.UpdateNewsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if messages := h.validateStruct(&req); messages != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	req.ID = id
	req.ActorID, _ = c.Locals(middleware.LocalsUserID).(uint)

	result, err := h.newsFlow.UpdateNews(h.createRequestContext(c, "/api/v1/admin/news/:id"), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsNewsNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "News not found", "NEWS_NOT_FOUND", nil)
		}
		if businessflow.IsCategoryNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Category not found", "CATEGORY_NOT_FOUND", nil)
		}
		if businessflow.IsMediaNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Cover media not found", "MEDIA_NOT_FOUND", nil)
		}
		if businessflow.IsTagNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Unknown tag code", "TAG_NOT_FOUND", nil)
		}
		if berr, ok := err.(*businessflow.BusinessError); ok && (berr.Code == "NEWS_UPDATE_EMPTY" || berr.Code == "NEWS_VALIDATION_FAILED") {
			return h.ErrorResponse(c, fiber.StatusBadRequest, berr.Message, berr.Code, nil)
		}

		log.Println("Update news failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update news", "NEWS_UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "News updated", result)
}

// GetNews returns one article with translations and relations
func (h *NewsHandler) GetNews(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid news id", "INVALID_NEWS_ID", nil)
	}

	result, err := h.newsFlow.GetNews(h.createRequestContext(c, "/api/v1/admin/news/:id"), id)
	if err != nil {
		if businessflow.IsNewsNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "News not found", "NEWS_NOT_FOUND", nil)
		}

		log.Println("Get news failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load news", "NEWS_LOOKUP_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "News found", result)
}

// ListNews returns a filtered page of articles for the admin panel
func (h *NewsHandler) ListNews(c fiber.Ctx) error {
	req := dto.ListNewsRequest{
		Page:     queryInt(c, "page", 0),
		PageSize: queryInt(c, "page_size", 0),
	}
	if v := c.Query("status"); v != "" {
		req.Status = &v
	}
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid category_id", "INVALID_CATEGORY_ID", nil)
		}
		categoryID := uint(id)
		req.CategoryID = &categoryID
	}
	if raw := c.Query("author_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid author_id", "INVALID_AUTHOR_ID", nil)
		}
		authorID := uint(id)
		req.AuthorID = &authorID
	}
	if v := c.Query("lang"); v != "" {
		req.Lang = &v
	}
	if v := c.Query("tag"); v != "" {
		req.TagCode = &v
	}
	if v := c.Query("search"); v != "" {
		req.Search = &v
	}
	if raw := c.Query("deleted"); raw != "" {
		deleted := raw == "true" || raw == "1"
		req.Deleted = &deleted
	}

	result, err := h.newsFlow.ListNews(h.createRequestContext(c, "/api/v1/admin/news"), &req)
	if err != nil {
		log.Println("List news failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list news", "NEWS_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "News listed", result)
}

// ChangeStatus applies a manual status transition
func (h *NewsHandler) ChangeStatus(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid news id", "INVALID_NEWS_ID", nil)
	}

	var req dto.ChangeNewsStatusRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if messages := h.validateStruct(&req); messages != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	req.ID = id
	req.ActorID, _ = c.Locals(middleware.LocalsUserID).(uint)

	result, err := h.newsFlow.ChangeStatus(h.createRequestContext(c, "/api/v1/admin/news/:id/status"), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsNewsNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "News not found", "NEWS_NOT_FOUND", nil)
		}
		if businessflow.IsSameStatusTransition(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "News already has the requested status", "NEWS_STATUS_UNCHANGED", nil)
		}

		log.Println("Change news status failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to change status", "NEWS_STATUS_CHANGE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Status changed", result)
}

// SoftDeleteNews hides an article without removing it
func (h *NewsHandler) SoftDeleteNews(c fiber.Ctx) error {
	return h.deleteFlag(c, "/api/v1/admin/news/:id", h.newsFlow.SoftDeleteNews, "News deleted", "NEWS_DELETE_FAILED")
}

// RestoreNews brings a soft-deleted article back
func (h *NewsHandler) RestoreNews(c fiber.Ctx) error {
	return h.deleteFlag(c, "/api/v1/admin/news/:id/restore", h.newsFlow.RestoreNews, "News restored", "NEWS_RESTORE_FAILED")
}

// HardDeleteNews permanently removes a soft-deleted article
func (h *NewsHandler) HardDeleteNews(c fiber.Ctx) error {
	return h.deleteFlag(c, "/api/v1/admin/news/:id/purge", h.newsFlow.HardDeleteNews, "News permanently deleted", "NEWS_PURGE_FAILED")
}

func (h *NewsHandler) deleteFlag(c fiber.Ctx, endpoint string, op func(ctx context.Context, id, actorID uint, metadata *businessflow.ClientMetadata) error, successMessage, failCode string) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid news id", "INVALID_NEWS_ID", nil)
	}

	actorID, _ := c.Locals(middleware.LocalsUserID).(uint)

	if err := op(h.createRequestContext(c, endpoint), id, actorID, clientMetadata(c)); err != nil {
		if businessflow.IsNewsNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "News not found", "NEWS_NOT_FOUND", nil)
		}
		if berr, ok := err.(*businessflow.BusinessError); ok &&
			(berr.Code == "NEWS_ALREADY_DELETED" || berr.Code == "NEWS_NOT_DELETED") {
			return h.ErrorResponse(c, fiber.StatusConflict, berr.Message, berr.Code, nil)
		}

		log.Println("News delete operation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Operation failed", failCode, nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, successMessage, nil)
}

// GetHistory returns the audit trail for one article
func (h *NewsHandler) GetHistory(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid news id", "INVALID_NEWS_ID", nil)
	}

	limit := queryInt(c, "limit", 50)
	offset := queryInt(c, "offset", 0)

	result, err := h.newsFlow.GetHistory(h.createRequestContext(c, "/api/v1/admin/news/:id/history"), id, limit, offset)
	if err != nil {
		if businessflow.IsNewsNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "News not found", "NEWS_NOT_FOUND", nil)
		}

		log.Println("Get news history failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load history", "NEWS_HISTORY_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "History listed", result)
}

// pathID parses a positive integer path parameter
func pathID(c fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, strconv.ErrSyntax
	}
	return uint(id), nil
}
