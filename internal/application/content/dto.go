package content

import (
	"time"

	"github.com/google/uuid"
	"github.com/hmehmood121/ZuhaSurgical/internal/application/tracking"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/content"
)

// BannerRequest registers an uploaded banner image
type BannerRequest struct {
	URL         string `json:"url" binding:"required,url,max=1000"`
	StoragePath string `json:"storagePath" binding:"max=500"`
	Position    int    `json:"position" binding:"min=0"`
}

// BannerResponse represents a banner
type BannerResponse struct {
	ID          uuid.UUID `json:"id"`
	URL         string    `json:"url"`
	StoragePath string    `json:"storagePath,omitempty"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AnnouncementRequest creates or replaces an announcement
type AnnouncementRequest struct {
	Text   string `json:"text" binding:"required,max=500"`
	Active *bool  `json:"active"`
}

// AnnouncementResponse represents an announcement
type AnnouncementResponse struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ContactRequest is a contact form submission or admin edit
type ContactRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Email   string `json:"email" binding:"required,email,max=320"`
	Subject string `json:"subject" binding:"required,max=300"`
	Message string `json:"message" binding:"required,max=5000"`
}

// ContactResponse represents a contact message
type ContactResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// ContactSubmitResponse answers the storefront contact form
type ContactSubmitResponse struct {
	Contact ContactResponse     `json:"contact"`
	Pixel   tracking.PixelEvent `json:"pixel"`
}

// ContactFilter is the admin contact list query
type ContactFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

func toBannerResponse(b *content.Banner) BannerResponse {
	return BannerResponse{
		ID:          b.ID,
		URL:         b.URL,
		StoragePath: b.StoragePath,
		Position:    b.Position,
		CreatedAt:   b.CreatedAt,
	}
}

func toAnnouncementResponse(a *content.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:        a.ID,
		Text:      a.Text,
		Active:    a.Active,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toContactResponse(m *content.ContactMessage) ContactResponse {
	return ContactResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Subject:   m.Subject,
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
	}
}
