package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hmehmood121/ZuhaSurgical/internal/application/tracking"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/cart"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/catalog"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/shared"
)

// ErrProductUnavailable is returned when the product is missing or inactive
var ErrProductUnavailable = shared.NewDomainError("NOT_FOUND", "Product not found")

// ProductFinder loads a product with its category
type ProductFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
}

// Tracker emits the add-to-cart conversion events
type Tracker interface {
	AddToCart(ctx context.Context, rc tracking.RequestContext, p tracking.Product) tracking.PixelEvent
	BuyNow(ctx context.Context, rc tracking.RequestContext, p tracking.Product) tracking.PixelEvent
}

// AddProductInput is a shopper's add-to-cart request
type AddProductInput struct {
	ProductID uuid.UUID
	Quantity  int // 0 means 1
	Size      string
	Color     string
	BuyNow    bool
}

// AddProductResult is the cart after the add plus the pixel instruction
type AddProductResult struct {
	MutationResult
	Pixel tracking.PixelEvent
}

// Shop adds catalog products to session carts.
type Shop struct {
	carts    *Service
	products ProductFinder
	tracker  Tracker
}

// NewShop creates a Shop
func NewShop(carts *Service, products ProductFinder, tracker Tracker) *Shop {
	return &Shop{carts: carts, products: products, tracker: tracker}
}

// AddProduct looks up the active product, checks the chosen variant and
// adds a snapshot of it to the session's cart.
func (s *Shop) AddProduct(ctx context.Context, sessionID string, rc tracking.RequestContext, in AddProductInput) (*AddProductResult, error) {
	product, err := s.products.FindByID(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrProductUnavailable
		}
		return nil, err
	}
	if !product.IsActive() {
		return nil, ErrProductUnavailable
	}
	if err := product.ValidateVariant(in.Size, in.Color); err != nil {
		return nil, err
	}
	size, color := product.CanonicalVariant(in.Size, in.Color)

	quantity := in.Quantity
	if quantity == 0 {
		quantity = 1
	}

	manager, err := s.carts.Session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	res, err := manager.AddItem(ctx, Snapshot(product), quantity, size, color)
	if err != nil {
		return nil, err
	}

	tp := tracking.Product{
		ID:       product.ID.String(),
		Name:     product.Name,
		Category: product.CategoryName(),
		Price:    product.Price,
		Quantity: quantity,
	}
	out := &AddProductResult{MutationResult: res}
	if in.BuyNow {
		out.Pixel = s.tracker.BuyNow(ctx, rc, tp)
	} else {
		out.Pixel = s.tracker.AddToCart(ctx, rc, tp)
	}
	return out, nil
}

// Snapshot copies the display fields of a product for a cart line
func Snapshot(p *catalog.Product) cart.ProductSnapshot {
	return cart.ProductSnapshot{
		ID:       p.ID.String(),
		Slug:     p.Slug,
		Name:     p.Name,
		Price:    p.Price,
		Images:   append([]string(nil), p.Images...),
		Category: p.CategoryName(),
	}
}
