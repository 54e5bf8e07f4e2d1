package catalog

import (
	"context"
	"testing"

	"github.com/hmehmood121/ZuhaSurgical/internal/domain/catalog"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStorefrontService_ListProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("restricts to active and applies category, price and sort", func(t *testing.T) {
		products := new(MockProductRepository)
		categories := new(MockCategoryRepository)
		svc := NewStorefrontService(products, categories)
		c := newTestCategory(t)
		p := newTestProduct(t, c.ID)

		categories.On("FindBySlug", ctx, "diagnostics").Return(c, nil)
		products.On("FindAll", ctx, mock.MatchedBy(func(f catalog.ProductFilter) bool {
			return f.Status != nil && *f.Status == catalog.ProductStatusActive &&
				f.CategoryID != nil && *f.CategoryID == c.ID &&
				f.Sort == catalog.SortPriceLow &&
				f.PriceRange.Contains(decimal.NewFromInt(1000)) &&
				f.PriceRange.Contains(decimal.NewFromInt(5000)) &&
				!f.PriceRange.Contains(decimal.NewFromInt(999))
		})).Return([]catalog.Product{*p}, int64(1), nil)

		page, err := svc.ListProducts(ctx, ShopProductFilter{Category: "diagnostics", PriceRange: "1000-5000", Sort: "price-low"})
		require.NoError(t, err)
		assert.Len(t, page.Items, 1)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 20, page.PageSize)
	})

	t.Run("unknown sort defaults to name", func(t *testing.T) {
		products := new(MockProductRepository)
		svc := NewStorefrontService(products, new(MockCategoryRepository))

		products.On("FindAll", ctx, mock.MatchedBy(func(f catalog.ProductFilter) bool {
			return f.Sort == catalog.SortName && f.CategoryID == nil
		})).Return([]catalog.Product{}, int64(0), nil)

		_, err := svc.ListProducts(ctx, ShopProductFilter{Sort: "cheapest", Category: "all"})
		require.NoError(t, err)
		products.AssertExpectations(t)
	})

	t.Run("unknown category slug yields empty page", func(t *testing.T) {
		products := new(MockProductRepository)
		categories := new(MockCategoryRepository)
		svc := NewStorefrontService(products, categories)

		categories.On("FindBySlug", ctx, "ghost").Return(nil, shared.ErrNotFound)

		page, err := svc.ListProducts(ctx, ShopProductFilter{Category: "ghost"})
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		products.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
	})

	t.Run("unknown price range", func(t *testing.T) {
		svc := NewStorefrontService(new(MockProductRepository), new(MockCategoryRepository))
		_, err := svc.ListProducts(ctx, ShopProductFilter{PriceRange: "cheap"})
		assert.ErrorIs(t, err, ErrInvalidPriceRange)
	})
}

func TestStorefrontService_GetProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("returns product with up to four related", func(t *testing.T) {
		products := new(MockProductRepository)
		svc := NewStorefrontService(products, new(MockCategoryRepository))
		c := newTestCategory(t)
		p := newTestProduct(t, c.ID)
		related := make([]catalog.Product, 5)
		for i := range related {
			related[i] = *newTestProduct(t, c.ID)
		}

		products.On("FindBySlug", ctx, "pulse-oximeter").Return(p, nil)
		products.On("FindRelated", ctx, c.ID, p.ID, RelatedLimit).Return(related, nil)

		resp, err := svc.GetProduct(ctx, "pulse-oximeter")
		require.NoError(t, err)
		assert.Equal(t, p.ID, resp.Product.ID)
		assert.Len(t, resp.Related, RelatedLimit)
	})

	t.Run("inactive product is not found", func(t *testing.T) {
		products := new(MockProductRepository)
		svc := NewStorefrontService(products, new(MockCategoryRepository))
		p := newTestProduct(t, newTestCategory(t).ID)
		require.NoError(t, p.SetStatus(catalog.ProductStatusInactive))

		products.On("FindBySlug", ctx, "pulse-oximeter").Return(p, nil)

		_, err := svc.GetProduct(ctx, "pulse-oximeter")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestStorefrontService_CategoryProducts(t *testing.T) {
	ctx := context.Background()
	products := new(MockProductRepository)
	categories := new(MockCategoryRepository)
	svc := NewStorefrontService(products, categories)
	c := newTestCategory(t)

	categories.On("FindBySlug", ctx, "diagnostics").Return(c, nil)
	products.On("FindAll", ctx, mock.MatchedBy(func(f catalog.ProductFilter) bool {
		return f.CategoryID != nil && *f.CategoryID == c.ID
	})).Return([]catalog.Product{*newTestProduct(t, c.ID)}, int64(1), nil)

	resp, err := svc.CategoryProducts(ctx, "diagnostics", ShopProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, "Diagnostics", resp.Category.Name)
	assert.Len(t, resp.Products, 1)
	assert.Equal(t, 1, resp.TotalPages)

	categories.On("FindBySlug", ctx, "missing").Return(nil, shared.ErrNotFound)
	_, err = svc.CategoryProducts(ctx, "missing", ShopProductFilter{})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
