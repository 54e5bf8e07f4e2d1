package catalog

import (
	"strings"
	"time"

	"github.com/hmehmood121/ZuhaSurgical/internal/domain/shared"
)

// Category groups products on the storefront
type Category struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(100);not null"`
	Slug        string `gorm:"type:varchar(120);not null;uniqueIndex"`
	Description string `gorm:"type:text;not null"`
	ImageURL    string `gorm:"type:varchar(1000);not null"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a category. Name, description and image are required.
func NewCategory(name, description, imageURL string) (*Category, error) {
	c := &Category{BaseAggregateRoot: shared.NewBaseAggregateRoot()}
	if err := c.apply(name, description, imageURL); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the category fields
func (c *Category) Update(name, description, imageURL string) error {
	if err := c.apply(name, description, imageURL); err != nil {
		return err
	}
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

func (c *Category) apply(name, description, imageURL string) error {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	imageURL = strings.TrimSpace(imageURL)

	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	if Slugify(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name must contain letters or digits")
	}
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Category description cannot be empty")
	}
	if imageURL == "" {
		return shared.NewDomainError("INVALID_IMAGE", "Category image is required")
	}

	c.Name = name
	c.Slug = Slugify(name)
	c.Description = description
	c.ImageURL = imageURL
	return nil
}
