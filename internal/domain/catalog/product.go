package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// IsValid reports whether the status is known
func (s ProductStatus) IsValid() bool {
	return s == ProductStatusActive || s == ProductStatusInactive
}

// Product is a sellable catalog item. Colors and sizes are the variant axes a
// shopper picks from when adding to the cart.
type Product struct {
	shared.BaseAggregateRoot
	Name             string              `gorm:"type:varchar(200);not null"`
	Slug             string              `gorm:"type:varchar(220);not null;uniqueIndex"`
	CategoryID       uuid.UUID           `gorm:"type:uuid;not null;index"`
	Category         *Category           `gorm:"foreignKey:CategoryID"`
	OldPrice         decimal.NullDecimal `gorm:"type:decimal(18,2)"`
	Price            decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	ShortDescription string              `gorm:"type:varchar(500)"`
	Description      string              `gorm:"type:text"`
	Stock            int                 `gorm:"not null;default:0"`
	Colors           []string            `gorm:"serializer:json;type:jsonb"`
	Sizes            []string            `gorm:"serializer:json;type:jsonb"`
	Images           []string            `gorm:"serializer:json;type:jsonb"`
	Status           ProductStatus       `gorm:"type:varchar(20);not null;default:'active';index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// ProductDetails carries the editable fields of a product
type ProductDetails struct {
	Name             string
	CategoryID       uuid.UUID
	Price            decimal.Decimal
	OldPrice         *decimal.Decimal
	ShortDescription string
	Description      string
	Stock            int
	Colors           []string
	Sizes            []string
	Images           []string
}

// NewProduct creates an active product. The slug is derived from the name.
func NewProduct(d ProductDetails) (*Product, error) {
	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Status:            ProductStatusActive,
	}
	if err := product.apply(d); err != nil {
		return nil, err
	}
	return product, nil
}

// Update replaces the editable fields. The slug is re-derived from the name.
func (p *Product) Update(d ProductDetails) error {
	if err := p.apply(d); err != nil {
		return err
	}
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

func (p *Product) apply(d ProductDetails) error {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	slug := Slugify(name)
	if slug == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name must contain letters or digits")
	}
	if d.CategoryID == uuid.Nil {
		return shared.NewDomainError("INVALID_CATEGORY", "Product category is required")
	}
	if !d.Price.IsPositive() {
		return shared.NewDomainError("INVALID_PRICE", "Price must be greater than zero")
	}
	if d.OldPrice != nil && d.OldPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Old price cannot be negative")
	}
	if d.Stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	p.Name = name
	p.Slug = slug
	p.CategoryID = d.CategoryID
	p.Price = d.Price
	p.OldPrice = decimal.NullDecimal{}
	if d.OldPrice != nil {
		p.OldPrice = decimal.NewNullDecimal(*d.OldPrice)
	}
	p.ShortDescription = strings.TrimSpace(d.ShortDescription)
	p.Description = d.Description
	p.Stock = d.Stock
	p.Colors = cleanList(d.Colors)
	p.Sizes = cleanList(d.Sizes)
	p.Images = cleanList(d.Images)
	return nil
}

// SetStatus activates or deactivates the product
func (p *Product) SetStatus(status ProductStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Status must be active or inactive")
	}
	if p.Status == status {
		return nil
	}
	p.Status = status
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// IsActive reports whether the product is visible on the storefront
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// HasSize reports whether size is one of the product's sizes
func (p *Product) HasSize(size string) bool {
	return containsFold(p.Sizes, size)
}

// HasColor reports whether color is one of the product's colors
func (p *Product) HasColor(color string) bool {
	return containsFold(p.Colors, color)
}

// ValidateVariant checks a shopper's size and color choice. A product with no
// sizes (or colors) accepts only an empty choice for that axis.
func (p *Product) ValidateVariant(size, color string) error {
	if size != "" && !p.HasSize(size) {
		return shared.NewDomainError("INVALID_VARIANT", "Size "+size+" is not available for this product")
	}
	if size == "" && len(p.Sizes) > 0 {
		return shared.NewDomainError("INVALID_VARIANT", "Please select a size")
	}
	if color != "" && !p.HasColor(color) {
		return shared.NewDomainError("INVALID_VARIANT", "Color "+color+" is not available for this product")
	}
	if color == "" && len(p.Colors) > 0 {
		return shared.NewDomainError("INVALID_VARIANT", "Please select a color")
	}
	return nil
}

// CanonicalVariant returns size and color spelled as the product lists them
func (p *Product) CanonicalVariant(size, color string) (string, string) {
	return canonical(p.Sizes, size), canonical(p.Colors, color)
}

// PrimaryImage returns the first image URL or an empty string
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// CategoryName returns the loaded category's name, if any
func (p *Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		k := strings.ToLower(v)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, v)
	}
	return out
}

func containsFold(list []string, v string) bool {
	return canonical(list, v) != ""
}

func canonical(list []string, v string) string {
	for _, item := range list {
		if strings.EqualFold(item, v) {
			return item
		}
	}
	return ""
}
