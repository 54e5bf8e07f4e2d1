package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductRequest is the payload for creating or replacing a product
type ProductRequest struct {
	Name             string           `json:"name" binding:"required,min=1,max=200"`
	CategoryID       uuid.UUID        `json:"categoryId"`
	Price            decimal.Decimal  `json:"price"`
	OldPrice         *decimal.Decimal `json:"oldPrice"`
	ShortDescription string           `json:"shortDescription" binding:"max=500"`
	Description      string           `json:"description" binding:"max=20000"`
	Stock            int              `json:"stock" binding:"min=0"`
	Colors           []string         `json:"colors" binding:"max=50,dive,max=50"`
	Sizes            []string         `json:"sizes" binding:"max=50,dive,max=50"`
	Images           []string         `json:"images" binding:"max=20,dive,url"`
}

func (r ProductRequest) details() catalog.ProductDetails {
	return catalog.ProductDetails{
		Name:             r.Name,
		CategoryID:       r.CategoryID,
		Price:            r.Price,
		OldPrice:         r.OldPrice,
		ShortDescription: r.ShortDescription,
		Description:      r.Description,
		Stock:            r.Stock,
		Colors:           r.Colors,
		Sizes:            r.Sizes,
		Images:           r.Images,
	}
}

// ProductStatusRequest toggles storefront visibility
type ProductStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}

// CategoryRef is the category summary embedded in a product
type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID               uuid.UUID        `json:"id"`
	Name             string           `json:"name"`
	Slug             string           `json:"slug"`
	CategoryID       uuid.UUID        `json:"categoryId"`
	Category         *CategoryRef     `json:"category,omitempty"`
	Price            decimal.Decimal  `json:"price"`
	OldPrice         *decimal.Decimal `json:"oldPrice,omitempty"`
	ShortDescription string           `json:"shortDescription"`
	Description      string           `json:"description"`
	Stock            int              `json:"stock"`
	Colors           []string         `json:"colors"`
	Sizes            []string         `json:"sizes"`
	Images           []string         `json:"images"`
	Status           string           `json:"status"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// ProductDetailResponse is the storefront product page
type ProductDetailResponse struct {
	Product ProductResponse   `json:"product"`
	Related []ProductResponse `json:"related"`
}

// AdminProductFilter represents the admin product list query
type AdminProductFilter struct {
	Search     string `form:"search"`
	Status     string `form:"status" binding:"omitempty,oneof=active inactive"`
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ShopProductFilter represents the storefront product list query
type ShopProductFilter struct {
	Search     string `form:"search"`
	Category   string `form:"category"`
	PriceRange string `form:"price_range"`
	Sort       string `form:"sort"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CategoryRequest is the payload for creating or replacing a category
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"required,max=2000"`
	ImageURL    string `json:"imageUrl" binding:"required,url"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"imageUrl"`
	ProductCount *int64    `json:"productCount,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CategoryProductsResponse is a category page with its products
type CategoryProductsResponse struct {
	Category   CategoryResponse  `json:"category"`
	Products   []ProductResponse `json:"products"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}

// ToProductResponse converts a domain product to a response
func ToProductResponse(p *catalog.Product) ProductResponse {
	resp := ProductResponse{
		ID:               p.ID,
		Name:             p.Name,
		Slug:             p.Slug,
		CategoryID:       p.CategoryID,
		Price:            p.Price,
		ShortDescription: p.ShortDescription,
		Description:      p.Description,
		Stock:            p.Stock,
		Colors:           nonNil(p.Colors),
		Sizes:            nonNil(p.Sizes),
		Images:           nonNil(p.Images),
		Status:           string(p.Status),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.OldPrice.Valid {
		old := p.OldPrice.Decimal
		resp.OldPrice = &old
	}
	if p.Category != nil {
		resp.Category = &CategoryRef{ID: p.Category.ID, Name: p.Category.Name, Slug: p.Category.Slug}
	}
	return resp
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out
}

// ToCategoryResponse converts a domain category to a response
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
