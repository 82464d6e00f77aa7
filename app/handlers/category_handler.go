package handlers

import (
	"log"

	"github.com/khabarhub/newsads/app/dto"
	businessflow "github.com/khabarhub/newsads/business_flow"

	"github.com/gofiber/fiber/v3"
)

// CategoryHandlerInterface defines the contract for category administration
type CategoryHandlerInterface interface {
	CreateCategory(c fiber.Ctx) error
	UpdateCategory(c fiber.Ctx) error
	GetCategory(c fiber.Ctx) error
	ListCategories(c fiber.Ctx) error
	DeleteCategory(c fiber.Ctx) error
}

// CategoryHandler handles category management requests
type CategoryHandler struct {
	baseHandler
	categoryFlow businessflow.CategoryFlow
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryFlow businessflow.CategoryFlow) *CategoryHandler {
	return &CategoryHandler{
		baseHandler:  newBaseHandler(),
		categoryFlow: categoryFlow,
	}
}

// CreateCategory creates a category with its translations
func (h *CategoryHandler) CreateCategory(c fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if messages := h.validateStruct(&req); messages != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	result, err := h.categoryFlow.CreateCategory(h.createRequestContext(c, "/api/v1/admin/categories"), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsCategoryNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Parent category not found", "CATEGORY_NOT_FOUND", nil)
		}
		if berr, ok := err.(*businessflow.BusinessError); ok && berr.Code == "CATEGORY_SLUG_TAKEN" {
			return h.ErrorResponse(c, fiber.StatusConflict, berr.Message, berr.Code, nil)
		}

		log.Println("Create category failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create category", "CATEGORY_CREATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Category created", result)
}

// UpdateCategory applies a partial update to a category
func (h *CategoryHandler) UpdateCategory(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid category id", "INVALID_CATEGORY_ID", nil)
	}

	var req dto.UpdateCategoryRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if messages := h.validateStruct(&req); messages != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	req.ID = id

	result, err := h.categoryFlow.UpdateCategory(h.createRequestContext(c, "/api/v1/admin/categories/:id"), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsCategoryNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Category not found", "CATEGORY_NOT_FOUND", nil)
		}
		if berr, ok := err.(*businessflow.BusinessError); ok &&
			(berr.Code == "CATEGORY_PARENT_INVALID" || berr.Code == "CATEGORY_SLUG_TAKEN") {
			return h.ErrorResponse(c, fiber.StatusBadRequest, berr.Message, berr.Code, nil)
		}

		log.Println("Update category failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update category", "CATEGORY_UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Category updated", result)
}

// GetCategory returns one category with translations
func (h *CategoryHandler) GetCategory(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid category id", "INVALID_CATEGORY_ID", nil)
	}

	result, err := h.categoryFlow.GetCategory(h.createRequestContext(c, "/api/v1/admin/categories/:id"), id)
	if err != nil {
		if businessflow.IsCategoryNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Category not found", "CATEGORY_NOT_FOUND", nil)
		}

		log.Println("Get category failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load category", "CATEGORY_LOOKUP_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Category found", result)
}

// ListCategories returns the full category list for the admin panel
func (h *CategoryHandler) ListCategories(c fiber.Ctx) error {
	result, err := h.categoryFlow.ListCategories(h.createRequestContext(c, "/api/v1/admin/categories"))
	if err != nil {
		log.Println("List categories failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list categories", "CATEGORY_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Categories listed", result)
}

// DeleteCategory removes an empty leaf category
func (h *CategoryHandler) DeleteCategory(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid category id", "INVALID_CATEGORY_ID", nil)
	}

	if err := h.categoryFlow.DeleteCategory(h.createRequestContext(c, "/api/v1/admin/categories/:id"), id, clientMetadata(c)); err != nil {
		if businessflow.IsCategoryNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Category not found", "CATEGORY_NOT_FOUND", nil)
		}
		if berr, ok := err.(*businessflow.BusinessError); ok &&
			(berr.Code == "CATEGORY_HAS_CHILDREN" || berr.Code == "CATEGORY_IN_USE") {
			return h.ErrorResponse(c, fiber.StatusConflict, berr.Message, berr.Code, nil)
		}

		log.Println("Delete category failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete category", "CATEGORY_DELETE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Category deleted", nil)
}
