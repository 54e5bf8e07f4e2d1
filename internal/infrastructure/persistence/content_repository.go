package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/content"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/shared"
	"gorm.io/gorm"
)

const maxContactPageSize = 100

func deleteByID(ctx context.Context, db *gorm.DB, model any, id uuid.UUID) error {
	result := db.WithContext(ctx).Delete(model, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormBannerRepository implements content.BannerRepository using GORM
type GormBannerRepository struct {
	db *gorm.DB
}

// NewGormBannerRepository creates a new GormBannerRepository
func NewGormBannerRepository(db *gorm.DB) *GormBannerRepository {
	return &GormBannerRepository{db: db}
}

func (r *GormBannerRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.Banner, error) {
	var b content.Banner
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

// FindAll returns banners in carousel order
func (r *GormBannerRepository) FindAll(ctx context.Context) ([]content.Banner, error) {
	var banners []content.Banner
	if err := r.db.WithContext(ctx).Order("position ASC, created_at ASC").Find(&banners).Error; err != nil {
		return nil, err
	}
	return banners, nil
}

func (r *GormBannerRepository) Save(ctx context.Context, b *content.Banner) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *GormBannerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &content.Banner{}, id)
}

// GormAnnouncementRepository implements content.AnnouncementRepository using GORM
type GormAnnouncementRepository struct {
	db *gorm.DB
}

// NewGormAnnouncementRepository creates a new GormAnnouncementRepository
func NewGormAnnouncementRepository(db *gorm.DB) *GormAnnouncementRepository {
	return &GormAnnouncementRepository{db: db}
}

func (r *GormAnnouncementRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.Announcement, error) {
	var a content.Announcement
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

// FindAll returns announcements newest first
func (r *GormAnnouncementRepository) FindAll(ctx context.Context, activeOnly bool) ([]content.Announcement, error) {
	query := r.db.WithContext(ctx)
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	var announcements []content.Announcement
	if err := query.Order("created_at DESC").Find(&announcements).Error; err != nil {
		return nil, err
	}
	return announcements, nil
}

func (r *GormAnnouncementRepository) Save(ctx context.Context, a *content.Announcement) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *GormAnnouncementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &content.Announcement{}, id)
}

// GormContactMessageRepository implements content.ContactMessageRepository using GORM
type GormContactMessageRepository struct {
	db *gorm.DB
}

// NewGormContactMessageRepository creates a new GormContactMessageRepository
func NewGormContactMessageRepository(db *gorm.DB) *GormContactMessageRepository {
	return &GormContactMessageRepository{db: db}
}

func (r *GormContactMessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.ContactMessage, error) {
	var m content.ContactMessage
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

// FindAll returns one page of contact messages and the total match count
func (r *GormContactMessageRepository) FindAll(ctx context.Context, filter shared.Filter) ([]content.ContactMessage, int64, error) {
	f := filter.Normalize(maxContactPageSize)
	query := r.db.WithContext(ctx).Model(&content.ContactMessage{})
	if search := strings.TrimSpace(f.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(subject) LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []content.ContactMessage
	if err := query.
		Order(sortClause(f.OrderBy, f.OrderDir, ContactMessageSortFields, "created_at")).
		Offset(f.Offset()).
		Limit(f.PageSize).
		Find(&messages).Error; err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

func (r *GormContactMessageRepository) Save(ctx context.Context, m *content.ContactMessage) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *GormContactMessageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &content.ContactMessage{}, id)
}

var (
	_ content.BannerRepository         = (*GormBannerRepository)(nil)
	_ content.AnnouncementRepository   = (*GormAnnouncementRepository)(nil)
	_ content.ContactMessageRepository = (*GormContactMessageRepository)(nil)
)
