package handlers

import (
	"log"
	"strconv"
	"strings"

	"github.com/khabarhub/newsads/app/dto"
	businessflow "github.com/khabarhub/newsads/business_flow"

	"github.com/gofiber/fiber/v3"
)

// PublicNewsHandlerInterface defines the contract for the public content API
type PublicNewsHandlerInterface interface {
	ListNews(c fiber.Ctx) error
	GetNewsBySlug(c fiber.Ctx) error
	ListCategories(c fiber.Ctx) error
	ListTags(c fiber.Ctx) error
}

// PublicNewsHandler serves published articles, the category menu and tags
type PublicNewsHandler struct {
	baseHandler
	newsFlow businessflow.PublicNewsFlow
}

// NewPublicNewsHandler creates a new public news handler
func NewPublicNewsHandler(newsFlow businessflow.PublicNewsFlow) *PublicNewsHandler {
	return &PublicNewsHandler{
		baseHandler: newBaseHandler(),
		newsFlow:    newsFlow,
	}
}

// ListNews returns a page of published articles
func (h *PublicNewsHandler) ListNews(c fiber.Ctx) error {
	req := &dto.PublicNewsListRequest{
		Lang:     c.Query("lang"),
		Page:     queryInt(c, "page", 0),
		PageSize: queryInt(c, "page_size", 0),
	}

	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid category_id", "INVALID_CATEGORY_ID", nil)
		}
		categoryID := uint(id)
		req.CategoryID = &categoryID
	}
	if tag := strings.TrimSpace(c.Query("tag")); tag != "" {
		req.TagCode = &tag
	}

	result, err := h.newsFlow.ListNews(h.createRequestContext(c, "/api/v1/public/news"), req)
	if err != nil {
		log.Println("Public news listing failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list news", "NEWS_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "News listed", result)
}

// GetNewsBySlug returns a single published article for a language and slug
func (h *PublicNewsHandler) GetNewsBySlug(c fiber.Ctx) error {
	slug := strings.TrimSpace(c.Params("slug"))
	if slug == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Slug is required", "SLUG_REQUIRED", nil)
	}

	result, err := h.newsFlow.GetNewsBySlug(h.createRequestContext(c, "/api/v1/public/news/:slug"), c.Query("lang"), slug)
	if err != nil {
		if businessflow.IsNewsNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "News not found", "NEWS_NOT_FOUND", nil)
		}

		log.Println("Public news detail failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load news", "NEWS_DETAIL_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "News found", result)
}

// ListCategories returns the active category tree for the site menu
func (h *PublicNewsHandler) ListCategories(c fiber.Ctx) error {
	result, err := h.newsFlow.ListCategories(h.createRequestContext(c, "/api/v1/public/categories"), c.Query("lang"))
	if err != nil {
		log.Println("Public category listing failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list categories", "CATEGORY_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Categories listed", result)
}

// ListTags returns active tag codes
func (h *PublicNewsHandler) ListTags(c fiber.Ctx) error {
	result, err := h.newsFlow.ListTags(h.createRequestContext(c, "/api/v1/public/tags"))
	if err != nil {
		log.Println("Public tag listing failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list tags", "TAG_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Tags listed", result)
}

// queryInt parses an integer query parameter, returning def when absent or malformed
func queryInt(c fiber.Ctx, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
