package storage

import (
	"context"
	"time"

	"github.com/hmehmood121/ZuhaSurgical/internal/application/uploads"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/shared"
)

// ErrStorageDisabled is returned for uploads when no bucket is configured
var ErrStorageDisabled = shared.NewDomainError("STORAGE_DISABLED", "Image uploads are not configured")

// DisabledStorage stands in when storage.enabled is false. Uploads fail;
// deletes succeed so removing a banner still works.
type DisabledStorage struct{}

// GenerateUploadURL always fails
func (DisabledStorage) GenerateUploadURL(context.Context, string, string, time.Duration) (string, time.Time, error) {
	return "", time.Time{}, ErrStorageDisabled
}

// Upload always fails
func (DisabledStorage) Upload(context.Context, string, []byte, string) error {
	return ErrStorageDisabled
}

// DeleteObject does nothing
func (DisabledStorage) DeleteObject(context.Context, string) error {
	return nil
}

// PublicURL returns the key unchanged
func (DisabledStorage) PublicURL(storageKey string) string {
	return storageKey
}

var _ uploads.ObjectStorage = DisabledStorage{}
