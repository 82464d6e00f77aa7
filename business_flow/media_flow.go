package businessflow

import (
	"context"
	"io"

	"github.com/khabarhub/newsads/app/dto"
	"github.com/khabarhub/newsads/app/services"
	"github.com/khabarhub/newsads/models"
	"github.com/khabarhub/newsads/repository"
)

// MediaFlow handles media upload and lifecycle
type MediaFlow interface {
	UploadMedia(ctx context.Context, req *dto.UploadMediaRequest, body io.Reader, metadata *ClientMetadata) (*dto.MediaDTO, error)
	GetMedia(ctx context.Context, id uint, metadata *ClientMetadata) (*dto.MediaDTO, error)
	ListMedia(ctx context.Context, req *dto.ListMediaRequest, metadata *ClientMetadata) (*dto.ListMediaResponse, error)
	DeleteMedia(ctx context.Context, id uint, metadata *ClientMetadata) error
}

// MediaFlowImpl implements MediaFlow
type MediaFlowImpl struct {
	mediaRepo repository.MediaRepository
	newsRepo  repository.NewsRepository
	storage   services.StorageService
	txm       repository.TxManager
}

// NewMediaFlow creates a new media flow
func NewMediaFlow(
	mediaRepo repository.MediaRepository,
	newsRepo repository.NewsRepository,
	storage services.StorageService,
	txm repository.TxManager,
) MediaFlow {
	return &MediaFlowImpl{
		mediaRepo: mediaRepo,
		newsRepo:  newsRepo,
		storage:   storage,
		txm:       txm,
	}
}

// UploadMedia streams the body into object storage and records the media row.
// The object is uploaded first; if the row insert fails the orphaned object
// is removed so storage does not accumulate unreferenced blobs.
func (f *MediaFlowImpl) UploadMedia(ctx context.Context, req *dto.UploadMediaRequest, body io.Reader, metadata *ClientMetadata) (*dto.MediaDTO, error) {
	storageKey, url, err := f.storage.Put(ctx, req.FileName, req.ContentType, req.SizeBytes, body)
	if err != nil {
		return nil, NewBusinessError("MEDIA_UPLOAD_FAILED", "Failed to store media object", err)
	}

	media := &models.Media{
		FileName:     req.FileName,
		ContentType:  req.ContentType,
		SizeBytes:    req.SizeBytes,
		StorageKey:   storageKey,
		URL:          url,
		UploadedByID: &req.UploadedByID,
	}

	if err := f.mediaRepo.Save(ctx, media); err != nil {
		_ = f.storage.Remove(ctx, storageKey)
		return nil, NewBusinessError("MEDIA_SAVE_FAILED", "Failed to save media record", err)
	}

	result := toMediaDTO(media)
	return &result, nil
}

// GetMedia returns a single media record
func (f *MediaFlowImpl) GetMedia(ctx context.Context, id uint, metadata *ClientMetadata) (*dto.MediaDTO, error) {
	media, err := f.mediaRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("MEDIA_LOOKUP_FAILED", "Failed to look up media", err)
	}
	if media == nil {
		return nil, NewBusinessError("MEDIA_NOT_FOUND", "Media not found", ErrMediaNotFound)
	}

	result := toMediaDTO(media)
	return &result, nil
}

// ListMedia returns a page of media records
func (f *MediaFlowImpl) ListMedia(ctx context.Context, req *dto.ListMediaRequest, metadata *ClientMetadata) (*dto.ListMediaResponse, error) {
	page, pageSize := NormalizePage(req.Page, req.PageSize, 20, 100)

	filter := models.MediaFilter{
		ContentType:  req.ContentType,
		UploadedByID: req.UploadedByID,
	}

	total, err := f.mediaRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("MEDIA_LIST_FAILED", "Failed to count media", err)
	}

	items, err := f.mediaRepo.ByFilter(ctx, filter, "created_at DESC", pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, NewBusinessError("MEDIA_LIST_FAILED", "Failed to list media", err)
	}

	dtos := make([]dto.MediaDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, toMediaDTO(items[i]))
	}

	return &dto.ListMediaResponse{
		Items:      dtos,
		Pagination: paginationDTO(page, pageSize, total),
	}, nil
}

// DeleteMedia removes the media row and its stored object. Media still
// referenced by news as a cover image cannot be deleted.
func (f *MediaFlowImpl) DeleteMedia(ctx context.Context, id uint, metadata *ClientMetadata) error {
	media, err := f.mediaRepo.ByID(ctx, id)
	if err != nil {
		return NewBusinessError("MEDIA_LOOKUP_FAILED", "Failed to look up media", err)
	}
	if media == nil {
		return NewBusinessError("MEDIA_NOT_FOUND", "Media not found", ErrMediaNotFound)
	}

	inUse, err := f.newsRepo.Exists(ctx, models.NewsFilter{CoverMediaID: &media.ID})
	if err != nil {
		return NewBusinessError("MEDIA_LOOKUP_FAILED", "Failed to check media usage", err)
	}
	if inUse {
		return NewBusinessError("MEDIA_IN_USE", "Media is referenced by news and cannot be deleted", ErrMediaInUse)
	}

	if err := f.txm.WithTx(ctx, func(txCtx context.Context) error {
		return f.mediaRepo.Delete(txCtx, media.ID)
	}); err != nil {
		return NewBusinessError("MEDIA_DELETE_FAILED", "Failed to delete media record", err)
	}

	if err := f.storage.Remove(ctx, media.StorageKey); err != nil {
		// Row is gone; an orphaned object is preferable to a dangling row.
		return NewBusinessError("MEDIA_OBJECT_DELETE_FAILED", "Media record deleted but object removal failed", err)
	}

	return nil
}

func toMediaDTO(media *models.Media) dto.MediaDTO {
	return dto.MediaDTO{
		ID:          media.ID,
		UUID:        media.UUID.String(),
		FileName:    media.FileName,
		ContentType: media.ContentType,
		SizeBytes:   media.SizeBytes,
		URL:         media.URL,
		CreatedAt:   media.CreatedAt,
	}
}
