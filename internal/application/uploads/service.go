// Package uploads hands out object keys and upload URLs for admin images.
package uploads

import (
	"context"
	"net/http"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hmehmood121/ZuhaSurgical/internal/domain/shared"
)

// MaxUploadSize caps direct uploads through the server
const MaxUploadSize = 10 << 20

// Prefix is an object key namespace
type Prefix string

const (
	PrefixProducts   Prefix = "products"
	PrefixCategories Prefix = "categories"
	PrefixBanners    Prefix = "banners"
)

var (
	ErrInvalidPrefix = shared.NewDomainError("INVALID_PREFIX", "Upload prefix must be products, categories or banners")
	ErrNotAnImage    = shared.NewDomainError("INVALID_CONTENT_TYPE", "Only image uploads are accepted")
	ErrTooLarge      = shared.NewDomainError("FILE_TOO_LARGE", "Uploads are limited to 10 MiB")
	ErrEmptyFile     = shared.NewDomainError("INVALID_INPUT", "Upload is empty")
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ObjectStorage is the object store behind uploads
type ObjectStorage interface {
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	DeleteObject(ctx context.Context, storageKey string) error
	PublicURL(storageKey string) string
}

// PresignRequest asks for a presigned PUT URL
type PresignRequest struct {
	Prefix      string `json:"prefix" binding:"required,oneof=products categories banners"`
	FileName    string `json:"fileName" binding:"required,max=255"`
	ContentType string `json:"contentType" binding:"required"`
}

// PresignResponse carries the upload URL and where the object will live
type PresignResponse struct {
	UploadURL string    `json:"uploadUrl"`
	Key       string    `json:"key"`
	PublicURL string    `json:"publicUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UploadResponse describes an object uploaded through the server
type UploadResponse struct {
	Key       string `json:"key"`
	PublicURL string `json:"publicUrl"`
}

// Service issues upload keys
type Service struct {
	storage ObjectStorage
	now     func() time.Time
}

// NewService creates the upload service
func NewService(storage ObjectStorage) *Service {
	return &Service{storage: storage, now: time.Now}
}

// Presign returns a URL the browser can PUT the file to
func (s *Service) Presign(ctx context.Context, req PresignRequest) (*PresignResponse, error) {
	key, err := s.Key(req.Prefix, req.FileName)
	if err != nil {
		return nil, err
	}
	if !isImage(req.ContentType) {
		return nil, ErrNotAnImage
	}

	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, req.ContentType, 0)
	if err != nil {
		return nil, err
	}
	return &PresignResponse{
		UploadURL: url,
		Key:       key,
		PublicURL: s.storage.PublicURL(key),
		ExpiresAt: expiresAt,
	}, nil
}

// Upload stores data under a fresh key. An empty contentType is sniffed from
// the data.
func (s *Service) Upload(ctx context.Context, prefix, fileName, contentType string, data []byte) (*UploadResponse, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if len(data) > MaxUploadSize {
		return nil, ErrTooLarge
	}
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	if !isImage(contentType) {
		return nil, ErrNotAnImage
	}

	key, err := s.Key(prefix, fileName)
	if err != nil {
		return nil, err
	}
	if err := s.storage.Upload(ctx, key, data, contentType); err != nil {
		return nil, err
	}
	return &UploadResponse{Key: key, PublicURL: s.storage.PublicURL(key)}, nil
}

// Key builds <prefix>/<unixMillis>_<sanitized file name>
func (s *Service) Key(prefix, fileName string) (string, error) {
	p := Prefix(strings.Trim(strings.TrimSpace(prefix), "/"))
	switch p {
	case PrefixProducts, PrefixCategories, PrefixBanners:
	default:
		return "", ErrInvalidPrefix
	}
	return string(p) + "/" + strconv.FormatInt(s.now().UnixMilli(), 10) + "_" + SanitizeFileName(fileName), nil
}

// SanitizeFileName keeps the base name and replaces runs of anything outside
// letters, digits, dot, dash and underscore with a single underscore.
func SanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	name = unsafeName.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return "file"
	}
	return name
}

func isImage(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}
