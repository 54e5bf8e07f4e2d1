// Package content holds the storefront's editorial pieces: hero banners,
// announcement bar messages and customer contact messages.
package content

import (
	"net/mail"
	"strings"
	"time"

	"github.com/hmehmood121/ZuhaSurgical/internal/domain/shared"
)

// Banner is a hero image on the home page
type Banner struct {
	shared.BaseEntity
	URL         string `gorm:"type:varchar(1000);not null"`
	StoragePath string `gorm:"type:varchar(500)"`
	Position    int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Banner) TableName() string {
	return "banners"
}

// NewBanner creates a banner for an uploaded image
func NewBanner(url, storagePath string, position int) (*Banner, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, shared.NewDomainError("INVALID_BANNER", "Banner image URL is required")
	}
	if position < 0 {
		return nil, shared.NewDomainError("INVALID_BANNER", "Banner position cannot be negative")
	}
	return &Banner{
		BaseEntity:  shared.NewBaseEntity(),
		URL:         url,
		StoragePath: strings.TrimSpace(storagePath),
		Position:    position,
	}, nil
}

// Announcement is a line shown in the storefront announcement bar
type Announcement struct {
	shared.BaseEntity
	Text   string `gorm:"type:varchar(500);not null"`
	Active bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Announcement) TableName() string {
	return "announcements"
}

// NewAnnouncement creates an active announcement
func NewAnnouncement(text string) (*Announcement, error) {
	a := &Announcement{BaseEntity: shared.NewBaseEntity(), Active: true}
	if err := a.Update(text, true); err != nil {
		return nil, err
	}
	return a, nil
}

// Update replaces the text and visibility
func (a *Announcement) Update(text string, active bool) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return shared.NewDomainError("INVALID_ANNOUNCEMENT", "Announcement text cannot be empty")
	}
	if len(text) > 500 {
		return shared.NewDomainError("INVALID_ANNOUNCEMENT", "Announcement text cannot exceed 500 characters")
	}
	a.Text = text
	a.Active = active
	a.UpdatedAt = time.Now()
	return nil
}

// ContactMessage is a message sent through the contact form
type ContactMessage struct {
	shared.BaseEntity
	Name    string `gorm:"type:varchar(200);not null"`
	Email   string `gorm:"type:varchar(320);not null"`
	Subject string `gorm:"type:varchar(300);not null"`
	Message string `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (ContactMessage) TableName() string {
	return "contact_messages"
}

// NewContactMessage validates and creates a contact message
func NewContactMessage(name, email, subject, message string) (*ContactMessage, error) {
	m := &ContactMessage{BaseEntity: shared.NewBaseEntity()}
	if err := m.Update(name, email, subject, message); err != nil {
		return nil, err
	}
	return m, nil
}

// Update replaces every field; all are required
func (m *ContactMessage) Update(name, email, subject, message string) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	subject = strings.TrimSpace(subject)
	message = strings.TrimSpace(message)

	if name == "" || email == "" || subject == "" || message == "" {
		return shared.NewDomainError("INVALID_CONTACT", "Name, email, subject and message are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return shared.NewDomainError("INVALID_CONTACT", "Email address is not valid")
	}

	m.Name = name
	m.Email = email
	m.Subject = subject
	m.Message = message
	m.UpdatedAt = time.Now()
	return nil
}
