package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/catalog"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/shared"
)

// ErrCategoryInUse is returned when deleting a category that still has products
var ErrCategoryInUse = shared.NewDomainError("CONFLICT", "Cannot delete category with associated products")

// CategoryService handles category operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	productRepo  catalog.ProductRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository, productRepo catalog.ProductRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, req CategoryRequest) (*CategoryResponse, error) {
	category, err := catalog.NewCategory(req.Name, req.Description, req.ImageURL)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueSlug(ctx, category.Slug, nil); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// GetByID returns a category
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// List returns all categories ordered by name. With counts set, each entry
// carries its product count.
func (s *CategoryService) List(ctx context.Context, counts bool) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]CategoryResponse, len(categories))
	for i := range categories {
		out[i] = ToCategoryResponse(&categories[i])
		if !counts {
			continue
		}
		n, err := s.productRepo.CountByCategory(ctx, categories[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].ProductCount = &n
	}
	return out, nil
}

// Update replaces a category's fields
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req CategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := category.Update(req.Name, req.Description, req.ImageURL); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueSlug(ctx, category.Slug, &category.ID); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Delete removes a category that has no products
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	n, err := s.productRepo.CountByCategory(ctx, category.ID)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrCategoryInUse
	}

	return s.categoryRepo.Delete(ctx, id)
}

func (s *CategoryService) ensureUniqueSlug(ctx context.Context, slug string, excludeID *uuid.UUID) error {
	exists, err := s.categoryRepo.ExistsBySlug(ctx, slug, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError("ALREADY_EXISTS", "A category with this name already exists")
	}
	return nil
}
