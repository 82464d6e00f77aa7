package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageService stores and removes media objects
type StorageService interface {
	Put(ctx context.Context, filename, contentType string, size int64, body io.Reader) (storageKey string, url string, err error)
	Remove(ctx context.Context, storageKey string) error
	URL(storageKey string) string
}

// StorageServiceImpl wraps a MinIO client. The bucket is created lazily on
// first upload so a fresh deployment does not need a provisioning step.
type StorageServiceImpl struct {
	client   *minio.Client
	endpoint string
	bucket   string
	useSSL   bool

	mu            sync.Mutex
	bucketChecked bool
}

// NewStorageService creates a new MinIO-backed storage service
func NewStorageService(endpoint, accessKey, secretKey, bucket string, useSSL bool) (StorageService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &StorageServiceImpl{
		client:   client,
		endpoint: endpoint,
		bucket:   bucket,
		useSSL:   useSSL,
	}, nil
}

// Put uploads an object under a fresh UUID key and returns its public URL
func (s *StorageServiceImpl) Put(ctx context.Context, filename, contentType string, size int64, body io.Reader) (string, string, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return "", "", err
	}

	storageKey := uuid.New().String() + fileExtension(filename)

	_, err := s.client.PutObject(ctx, s.bucket, storageKey, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload object: %w", err)
	}

	return storageKey, s.URL(storageKey), nil
}

// Remove deletes an object from the bucket
func (s *StorageServiceImpl) Remove(ctx context.Context, storageKey string) error {
	err := s.client.RemoveObject(ctx, s.bucket, storageKey, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to remove object: %w", err)
	}
	return nil
}

// URL returns the public URL for a stored object
func (s *StorageServiceImpl) URL(storageKey string) string {
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, storageKey)
}

func (s *StorageServiceImpl) ensureBucket(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bucketChecked {
		return nil
	}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	s.bucketChecked = true
	return nil
}

func fileExtension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return ""
	}
	return filename[idx:]
}
