package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/hmehmood121/ZuhaSurgical/internal/domain/catalog"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/shared"
)

// RelatedLimit caps the related products shown on a product page
const RelatedLimit = 4

// ErrInvalidPriceRange is returned for an unknown price bucket
var ErrInvalidPriceRange = shared.NewDomainError("INVALID_PRICE_RANGE", "Unknown price range")

// StorefrontService serves the shopper-facing catalog. Only active products
// are ever returned.
type StorefrontService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
}

// NewStorefrontService creates a new StorefrontService
func NewStorefrontService(productRepo catalog.ProductRepository, categoryRepo catalog.CategoryRepository) *StorefrontService {
	return &StorefrontService{productRepo: productRepo, categoryRepo: categoryRepo}
}

// ListProducts returns one page of active products. An unknown category
// slug yields an empty page.
func (s *StorefrontService) ListProducts(ctx context.Context, filter ShopProductFilter) (shared.Paginated[ProductResponse], error) {
	f, err := s.productFilter(filter)
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}

	if slug := strings.TrimSpace(filter.Category); slug != "" && slug != "all" {
		category, err := s.categoryRepo.FindBySlug(ctx, slug)
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewPaginated([]ProductResponse{}, 0, f.Page, f.PageSize), nil
		}
		if err != nil {
			return shared.Paginated[ProductResponse]{}, err
		}
		f.CategoryID = &category.ID
	}

	products, total, err := s.productRepo.FindAll(ctx, f)
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}
	return shared.NewPaginated(ToProductResponses(products), total, f.Page, f.PageSize), nil
}

// GetProduct returns the active product with slug and up to RelatedLimit
// active products from the same category.
func (s *StorefrontService) GetProduct(ctx context.Context, slug string) (*ProductDetailResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !product.IsActive() {
		return nil, shared.ErrNotFound
	}

	related, err := s.productRepo.FindRelated(ctx, product.CategoryID, product.ID, RelatedLimit)
	if err != nil {
		return nil, err
	}
	if len(related) > RelatedLimit {
		related = related[:RelatedLimit]
	}

	return &ProductDetailResponse{
		Product: ToProductResponse(product),
		Related: ToProductResponses(related),
	}, nil
}

// ListCategories returns every category
func (s *StorefrontService) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CategoryResponse, len(categories))
	for i := range categories {
		out[i] = ToCategoryResponse(&categories[i])
	}
	return out, nil
}

// CategoryProducts returns the category with slug and its active products
func (s *StorefrontService) CategoryProducts(ctx context.Context, slug string, filter ShopProductFilter) (*CategoryProductsResponse, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	f, err := s.productFilter(filter)
	if err != nil {
		return nil, err
	}
	f.CategoryID = &category.ID

	products, total, err := s.productRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(ToProductResponses(products), total, f.Page, f.PageSize)
	return &CategoryProductsResponse{
		Category:   ToCategoryResponse(category),
		Products:   page.Items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

func (s *StorefrontService) productFilter(filter ShopProductFilter) (catalog.ProductFilter, error) {
	priceRange, ok := catalog.ParsePriceRange(strings.TrimSpace(filter.PriceRange))
	if !ok {
		return catalog.ProductFilter{}, ErrInvalidPriceRange
	}
	active := catalog.ProductStatusActive
	return catalog.ProductFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			Search:   strings.TrimSpace(filter.Search),
		}.Normalize(maxPageSize),
		Status:     &active,
		PriceRange: priceRange,
		Sort:       catalog.ParseProductSort(filter.Sort),
	}, nil
}
