package handlers

import (
	"log"

	"github.com/khabarhub/newsads/app/dto"
	"github.com/khabarhub/newsads/app/middleware"
	businessflow "github.com/khabarhub/newsads/business_flow"

	"github.com/gofiber/fiber/v3"
)

// UserHandlerInterface defines the contract for admin user management
type UserHandlerInterface interface {
	CreateUser(c fiber.Ctx) error
	ListUsers(c fiber.Ctx) error
	SetUserActive(c fiber.Ctx) error
	DeleteUser(c fiber.Ctx) error
}

// UserHandler handles the admin user management requests
type UserHandler struct {
	baseHandler
	userFlow businessflow.UserFlow
}

// NewUserHandler creates a new user management handler
func NewUserHandler(userFlow businessflow.UserFlow) *UserHandler {
	return &UserHandler{
		baseHandler: newBaseHandler(),
		userFlow:    userFlow,
	}
}

// CreateUser adds an editorial account
func (h *UserHandler) CreateUser(c fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if messages := h.validateStruct(&req); messages != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	result, err := h.userFlow.CreateUser(h.createRequestContext(c, "/api/v1/admin/users"), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsUsernameTaken(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Username already exists", "USERNAME_TAKEN", nil)
		}

		log.Println("Create user failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create user", "USER_CREATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "User created", result)
}

// ListUsers returns a page of editorial users
func (h *UserHandler) ListUsers(c fiber.Ctx) error {
	req := dto.ListUsersRequest{
		Page:     queryInt(c, "page", 0),
		PageSize: queryInt(c, "page_size", 0),
	}
	if v := c.Query("role"); v != "" {
		req.Role = &v
	}
	if raw := c.Query("is_active"); raw != "" {
		active := raw == "true" || raw == "1"
		req.IsActive = &active
	}

	result, err := h.userFlow.ListUsers(h.createRequestContext(c, "/api/v1/admin/users"), &req)
	if err != nil {
		log.Println("List users failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list users", "USER_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Users listed", result)
}

// SetUserActive toggles an account's active flag
func (h *UserHandler) SetUserActive(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid user id", "INVALID_USER_ID", nil)
	}

	var req dto.SetUserActiveRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if messages := h.validateStruct(&req); messages != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	req.ID = id
	req.ActorID, _ = c.Locals(middleware.LocalsUserID).(uint)

	result, err := h.userFlow.SetUserActive(h.createRequestContext(c, "/api/v1/admin/users/:id/active"), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsUserNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "User not found", "USER_NOT_FOUND", nil)
		}
		if businessflow.IsUserSelfTarget(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Cannot change your own active status", "USER_SELF_TARGET", nil)
		}

		log.Println("Set user active failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update user", "USER_UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "User updated", result)
}

// DeleteUser removes an account
func (h *UserHandler) DeleteUser(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid user id", "INVALID_USER_ID", nil)
	}

	actorID, _ := c.Locals(middleware.LocalsUserID).(uint)

	if err := h.userFlow.DeleteUser(h.createRequestContext(c, "/api/v1/admin/users/:id"), id, actorID, clientMetadata(c)); err != nil {
		if businessflow.IsUserNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "User not found", "USER_NOT_FOUND", nil)
		}
		if businessflow.IsUserSelfTarget(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Cannot remove your own account", "USER_SELF_TARGET", nil)
		}

		log.Println("Delete user failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to remove user", "USER_DELETE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "User removed", nil)
}
