package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/phambaophuc/image-annotator/pkg/utils"
	storage_go "github.com/supabase-community/storage-go"
)

var ErrMirrorDisabled = errors.New("supabase mirror not configured")

func (s *StorageService) MirrorEnabled() bool {
	return s.sbClient != nil
}

// Upload puts data in the bucket under key and returns its public URL.
func (s *StorageService) Upload(ctx context.Context, data io.Reader, key, contentType string) (string, error) {
	if !s.MirrorEnabled() {
		return "", ErrMirrorDisabled
	}

	upsert := true
	_, err := s.sbClient.UploadFile(s.bucket, key, data, storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to supabase: %w", err)
	}

	publicURL := s.sbClient.GetPublicUrl(s.bucket, key)
	return publicURL.SignedURL, nil
}

// Delete removes an object from the bucket.
func (s *StorageService) Delete(ctx context.Context, key string) error {
	if !s.MirrorEnabled() {
		return ErrMirrorDisabled
	}
	_, err := s.sbClient.RemoveFile(s.bucket, []string{key})
	return err
}

func contentTypeFor(path string) string {
	return utils.ContentTypeFor(path)
}
