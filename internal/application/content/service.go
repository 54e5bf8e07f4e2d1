// Package content manages banners, announcements and contact messages.
package content

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/hmehmood121/ZuhaSurgical/internal/application/tracking"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/content"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/shared"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ObjectDeleter removes uploaded objects
type ObjectDeleter interface {
	DeleteObject(ctx context.Context, storageKey string) error
}

// LeadTracker records contact form submissions as leads
type LeadTracker interface {
	Lead(ctx context.Context, rc tracking.RequestContext, contact tracking.Contact) tracking.PixelEvent
}

// Service handles storefront content
type Service struct {
	banners       content.BannerRepository
	announcements content.AnnouncementRepository
	contacts      content.ContactMessageRepository
	objects       ObjectDeleter
	tracker       LeadTracker
	logger        *zap.Logger
}

// NewService creates the content service. objects may be nil when object
// storage is disabled.
func NewService(
	banners content.BannerRepository,
	announcements content.AnnouncementRepository,
	contacts content.ContactMessageRepository,
	objects ObjectDeleter,
	tracker LeadTracker,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		banners:       banners,
		announcements: announcements,
		contacts:      contacts,
		objects:       objects,
		tracker:       tracker,
		logger:        log,
	}
}

// ListBanners returns banners ordered by position
func (s *Service) ListBanners(ctx context.Context) ([]BannerResponse, error) {
	banners, err := s.banners.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]BannerResponse, len(banners))
	for i := range banners {
		out[i] = toBannerResponse(&banners[i])
	}
	return out, nil
}

// CreateBanner saves a banner for an already uploaded image
func (s *Service) CreateBanner(ctx context.Context, req BannerRequest) (*BannerResponse, error) {
	b, err := content.NewBanner(req.URL, req.StoragePath, req.Position)
	if err != nil {
		return nil, err
	}
	if err := s.banners.Save(ctx, b); err != nil {
		return nil, err
	}
	resp := toBannerResponse(b)
	return &resp, nil
}

// DeleteBanner removes the banner and then its stored image. A failed object
// delete is logged; the banner is already gone.
func (s *Service) DeleteBanner(ctx context.Context, id uuid.UUID) error {
	b, err := s.banners.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.banners.Delete(ctx, id); err != nil {
		return err
	}

	if b.StoragePath != "" && s.objects != nil {
		if err := s.objects.DeleteObject(ctx, b.StoragePath); err != nil {
			logger.FromContextOr(ctx, s.logger).Warn("Failed to delete banner image",
				zap.String("banner_id", id.String()),
				zap.String("storage_path", b.StoragePath),
				zap.Error(err))
		}
	}
	return nil
}

// ListAnnouncements returns announcements; the storefront asks for active ones
func (s *Service) ListAnnouncements(ctx context.Context, activeOnly bool) ([]AnnouncementResponse, error) {
	list, err := s.announcements.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]AnnouncementResponse, len(list))
	for i := range list {
		out[i] = toAnnouncementResponse(&list[i])
	}
	return out, nil
}

// CreateAnnouncement adds an announcement, active unless told otherwise
func (s *Service) CreateAnnouncement(ctx context.Context, req AnnouncementRequest) (*AnnouncementResponse, error) {
	a, err := content.NewAnnouncement(req.Text)
	if err != nil {
		return nil, err
	}
	if req.Active != nil {
		a.Active = *req.Active
	}
	if err := s.announcements.Save(ctx, a); err != nil {
		return nil, err
	}
	resp := toAnnouncementResponse(a)
	return &resp, nil
}

// UpdateAnnouncement replaces the text and, when given, the visibility
func (s *Service) UpdateAnnouncement(ctx context.Context, id uuid.UUID, req AnnouncementRequest) (*AnnouncementResponse, error) {
	a, err := s.announcements.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	active := a.Active
	if req.Active != nil {
		active = *req.Active
	}
	if err := a.Update(req.Text, active); err != nil {
		return nil, err
	}
	if err := s.announcements.Save(ctx, a); err != nil {
		return nil, err
	}
	resp := toAnnouncementResponse(a)
	return &resp, nil
}

// DeleteAnnouncement removes an announcement
func (s *Service) DeleteAnnouncement(ctx context.Context, id uuid.UUID) error {
	if _, err := s.announcements.FindByID(ctx, id); err != nil {
		return err
	}
	return s.announcements.Delete(ctx, id)
}

// SubmitContact stores a storefront contact message and tracks it as a Lead
func (s *Service) SubmitContact(ctx context.Context, rc tracking.RequestContext, req ContactRequest) (*ContactSubmitResponse, error) {
	m, err := content.NewContactMessage(req.Name, req.Email, req.Subject, req.Message)
	if err != nil {
		return nil, err
	}
	if err := s.contacts.Save(ctx, m); err != nil {
		return nil, err
	}

	resp := &ContactSubmitResponse{Contact: toContactResponse(m)}
	if s.tracker != nil {
		resp.Pixel = s.tracker.Lead(ctx, rc, tracking.Contact{Email: m.Email})
	}
	return resp, nil
}

// ListContacts returns a page of contact messages, newest first
func (s *Service) ListContacts(ctx context.Context, filter ContactFilter) (shared.Paginated[ContactResponse], error) {
	f := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Search:   strings.TrimSpace(filter.Search),
		OrderBy:  "created_at",
		OrderDir: "desc",
	}.Normalize(100)

	list, total, err := s.contacts.FindAll(ctx, f)
	if err != nil {
		return shared.Paginated[ContactResponse]{}, err
	}
	out := make([]ContactResponse, len(list))
	for i := range list {
		out[i] = toContactResponse(&list[i])
	}
	return shared.NewPaginated(out, total, f.Page, f.PageSize), nil
}

// UpdateContact edits a contact message
func (s *Service) UpdateContact(ctx context.Context, id uuid.UUID, req ContactRequest) (*ContactResponse, error) {
	m, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := m.Update(req.Name, req.Email, req.Subject, req.Message); err != nil {
		return nil, err
	}
	if err := s.contacts.Save(ctx, m); err != nil {
		return nil, err
	}
	resp := toContactResponse(m)
	return &resp, nil
}

// DeleteContact removes a contact message
func (s *Service) DeleteContact(ctx context.Context, id uuid.UUID) error {
	if _, err := s.contacts.FindByID(ctx, id); err != nil {
		return err
	}
	return s.contacts.Delete(ctx, id)
}
