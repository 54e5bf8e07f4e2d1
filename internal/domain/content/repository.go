package content

import (
	"context"

	"github.com/google/uuid"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/shared"
)

// BannerRepository persists banners
type BannerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Banner, error)
	FindAll(ctx context.Context) ([]Banner, error)
	Save(ctx context.Context, b *Banner) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AnnouncementRepository persists announcements
type AnnouncementRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Announcement, error)
	// FindAll returns announcements, only active ones when activeOnly is set
	FindAll(ctx context.Context, activeOnly bool) ([]Announcement, error)
	Save(ctx context.Context, a *Announcement) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ContactMessageRepository persists contact messages
type ContactMessageRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ContactMessage, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]ContactMessage, int64, error)
	Save(ctx context.Context, m *ContactMessage) error
	Delete(ctx context.Context, id uuid.UUID) error
}
