package handlers

import (
	"log"

	"github.com/khabarhub/newsads/app/dto"
	"github.com/khabarhub/newsads/app/middleware"
	businessflow "github.com/khabarhub/newsads/business_flow"

	"github.com/gofiber/fiber/v3"
)

// maxUploadBytes caps the accepted upload size (25 MB)
const maxUploadBytes = 25 << 20

// MediaHandlerInterface defines the contract for media administration
type MediaHandlerInterface interface {
	UploadMedia(c fiber.Ctx) error
	GetMedia(c fiber.Ctx) error
	ListMedia(c fiber.Ctx) error
	DeleteMedia(c fiber.Ctx) error
}

// MediaHandler handles media upload and management requests
type MediaHandler struct {
	baseHandler
	mediaFlow businessflow.MediaFlow
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(mediaFlow businessflow.MediaFlow) *MediaHandler {
	return &MediaHandler{
		baseHandler: newBaseHandler(),
		mediaFlow:   mediaFlow,
	}
}

// UploadMedia accepts a multipart file and stores it
func (h *MediaHandler) UploadMedia(c fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil || fileHeader == nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "file is required", "INVALID_FILE", nil)
	}
	if fileHeader.Size > maxUploadBytes {
		return h.ErrorResponse(c, fiber.StatusRequestEntityTooLarge, "File is too large", "MEDIA_TOO_LARGE", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "invalid file", "INVALID_FILE", err.Error())
	}
	defer file.Close()

	uploadedByID, _ := c.Locals(middleware.LocalsUserID).(uint)

	req := dto.UploadMediaRequest{
		UploadedByID: uploadedByID,
		FileName:     fileHeader.Filename,
		ContentType:  fileHeader.Header.Get("Content-Type"),
		SizeBytes:    fileHeader.Size,
	}

	if messages := h.validateStruct(&req); messages != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	result, err := h.mediaFlow.UploadMedia(h.createRequestContext(c, "/api/v1/admin/media"), &req, file, clientMetadata(c))
	if err != nil {
		log.Println("Upload media failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to upload media", "MEDIA_UPLOAD_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Media uploaded", result)
}

// GetMedia returns one media record
func (h *MediaHandler) GetMedia(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid media id", "INVALID_MEDIA_ID", nil)
	}

	result, err := h.mediaFlow.GetMedia(h.createRequestContext(c, "/api/v1/admin/media/:id"), id, clientMetadata(c))
	if err != nil {
		if businessflow.IsMediaNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Media not found", "MEDIA_NOT_FOUND", nil)
		}

		log.Println("Get media failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load media", "MEDIA_LOOKUP_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Media found", result)
}

// ListMedia returns a page of media records
func (h *MediaHandler) ListMedia(c fiber.Ctx) error {
	req := dto.ListMediaRequest{
		Page:     queryInt(c, "page", 0),
		PageSize: queryInt(c, "page_size", 0),
	}
	if v := c.Query("content_type"); v != "" {
		req.ContentType = &v
	}

	result, err := h.mediaFlow.ListMedia(h.createRequestContext(c, "/api/v1/admin/media"), &req, clientMetadata(c))
	if err != nil {
		log.Println("List media failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list media", "MEDIA_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Media listed", result)
}

// DeleteMedia removes a media record and its stored object
func (h *MediaHandler) DeleteMedia(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid media id", "INVALID_MEDIA_ID", nil)
	}

	if err := h.mediaFlow.DeleteMedia(h.createRequestContext(c, "/api/v1/admin/media/:id"), id, clientMetadata(c)); err != nil {
		if businessflow.IsMediaNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Media not found", "MEDIA_NOT_FOUND", nil)
		}
		if businessflow.IsMediaInUse(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Media is referenced by news and cannot be deleted", "MEDIA_IN_USE", nil)
		}

		log.Println("Delete media failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete media", "MEDIA_DELETE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Media deleted", nil)
}
