package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// ImageStore persists item images and maps them to public URLs.
// Upload and Replace return the URL stored on the item row; Delete takes that
// URL back and removes the underlying object.
type ImageStore struct {
	client  Client
	bucket  string
	baseURL string
	prefix  string
}

// NewImageStore creates an image store on top of a storage client.
// baseURL is the public endpoint objects are served from, e.g.
// "https://cdn.example.com/item-images".
func NewImageStore(client Client, bucket, baseURL string) *ImageStore {
	return &ImageStore{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		prefix:  "items",
	}
}

// Upload stores a new image and returns its public URL.
func (s *ImageStore) Upload(ctx context.Context, reader io.Reader, size int64, contentType string) (string, error) {
	key := fmt.Sprintf("%s/%s", s.prefix, uuid.NewString())
	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return s.baseURL + "/" + key, nil
}

// Replace uploads a new image and removes the object behind oldURL.
// The old object is deleted best-effort after the new upload succeeds.
func (s *ImageStore) Replace(ctx context.Context, reader io.Reader, size int64, contentType, oldURL string) (string, error) {
	url, err := s.Upload(ctx, reader, size, contentType)
	if err != nil {
		return "", err
	}
	if oldURL != "" {
		_ = s.Delete(ctx, oldURL)
	}
	return url, nil
}

// Delete removes the object behind a previously returned URL.
// URLs not produced by this store are ignored.
func (s *ImageStore) Delete(ctx context.Context, url string) error {
	key, ok := s.objectKey(url)
	if !ok {
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete image %s: %w", key, err)
	}
	return nil
}

func (s *ImageStore) objectKey(url string) (string, bool) {
	if !strings.HasPrefix(url, s.baseURL+"/") {
		return "", false
	}
	return strings.TrimPrefix(url, s.baseURL+"/"), true
}
