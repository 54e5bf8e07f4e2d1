package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Filter narrows order listings
type Filter struct {
	shared.Filter
	Status *Status
	Since  *time.Time
}

// Stats aggregates orders for the dashboard
type Stats struct {
	TotalOrders  int64
	TotalRevenue decimal.Decimal
	Pending      int64
	Shipped      int64
	Delivered    int64
}

// Repository defines the interface for order persistence
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByNumber(ctx context.Context, number string) (*Order, error)
	FindAll(ctx context.Context, filter Filter) ([]Order, int64, error)
	// Recent returns the newest orders placed at or after since (nil means ever)
	Recent(ctx context.Context, since *time.Time, limit int) ([]Order, error)
	Stats(ctx context.Context, since *time.Time) (Stats, error)
	Create(ctx context.Context, o *Order) error
	Update(ctx context.Context, o *Order) error
	Delete(ctx context.Context, id uuid.UUID) error
}
