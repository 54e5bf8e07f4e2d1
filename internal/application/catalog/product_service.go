package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/catalog"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/shared"
)

const maxPageSize = 100

// ProductService handles admin product operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, categoryRepo catalog.CategoryRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// Create creates a new active product
func (s *ProductService) Create(ctx context.Context, req ProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.details())
	if err != nil {
		return nil, err
	}
	category, err := s.requireCategory(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueSlug(ctx, product.Slug, nil); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	product.Category = category

	resp := ToProductResponse(product)
	return &resp, nil
}

// GetByID returns a product regardless of status
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// List returns one page of products for the admin console
func (s *ProductService) List(ctx context.Context, filter AdminProductFilter) (shared.Paginated[ProductResponse], error) {
	f := catalog.ProductFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			Search:   strings.TrimSpace(filter.Search),
		}.Normalize(maxPageSize),
		Sort: catalog.SortNewest,
	}
	if filter.CategoryID != "" {
		id, err := uuid.Parse(filter.CategoryID)
		if err != nil {
			return shared.Paginated[ProductResponse]{}, shared.ErrInvalidInput
		}
		f.CategoryID = &id
	}
	if filter.Status != "" {
		status := catalog.ProductStatus(filter.Status)
		f.Status = &status
	}

	products, total, err := s.productRepo.FindAll(ctx, f)
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}
	return shared.NewPaginated(ToProductResponses(products), total, f.Page, f.PageSize), nil
}

// Update replaces the editable fields of a product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req ProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.Update(req.details()); err != nil {
		return nil, err
	}
	category, err := s.requireCategory(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueSlug(ctx, product.Slug, &product.ID); err != nil {
		return nil, err
	}

	product.Category = category
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// SetStatus activates or deactivates a product
func (s *ProductService) SetStatus(ctx context.Context, id uuid.UUID, status string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.SetStatus(catalog.ProductStatus(status)); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete removes a product. Carts keep their snapshots of it.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

func (s *ProductService) requireCategory(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
		}
		return nil, err
	}
	return category, nil
}

func (s *ProductService) ensureUniqueSlug(ctx context.Context, slug string, excludeID *uuid.UUID) error {
	exists, err := s.productRepo.ExistsBySlug(ctx, slug, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError("ALREADY_EXISTS", "A product with this name already exists")
	}
	return nil
}
