package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/order"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const maxOrderPageSize = 100

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Order("line_no ASC")
}

// FindByID finds an order with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Items", preloadItems).
		First(&o, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

// FindByNumber finds an order by its public order number
func (r *GormOrderRepository) FindByNumber(ctx context.Context, number string) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Items", preloadItems).
		Where("order_number = ?", strings.ToUpper(strings.TrimSpace(number))).
		First(&o).Error; err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

// FindAll returns one page of orders and the total match count
func (r *GormOrderRepository) FindAll(ctx context.Context, filter order.Filter) ([]order.Order, int64, error) {
	f := filter.Filter.Normalize(maxOrderPageSize)
	query := r.db.WithContext(ctx).Model(&order.Order{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Since != nil {
		query = query.Where("created_at >= ?", *filter.Since)
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(order_number) LIKE ? OR LOWER(customer_name) LIKE ? OR LOWER(customer_email) LIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []order.Order
	if err := query.
		Preload("Items", preloadItems).
		Order(sortClause(f.OrderBy, f.OrderDir, OrderSortFields, "created_at")).
		Offset(f.Offset()).
		Limit(f.PageSize).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// Recent returns the newest orders placed at or after since
func (r *GormOrderRepository) Recent(ctx context.Context, since *time.Time, limit int) ([]order.Order, error) {
	query := r.db.WithContext(ctx).Preload("Items", preloadItems)
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var orders []order.Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

type orderStatsRow struct {
	TotalOrders  int64
	TotalRevenue decimal.NullDecimal
	Pending      int64
	Shipped      int64
	Delivered    int64
}

// Stats aggregates order counts and revenue since the given time
func (r *GormOrderRepository) Stats(ctx context.Context, since *time.Time) (order.Stats, error) {
	query := r.db.WithContext(ctx).Model(&order.Order{}).Select(
		"COUNT(*) AS total_orders, "+
			"SUM(total) AS total_revenue, "+
			"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS pending, "+
			"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS shipped, "+
			"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS delivered",
		order.StatusPending, order.StatusShipped, order.StatusDelivered,
	)
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}

	var row orderStatsRow
	if err := query.Scan(&row).Error; err != nil {
		return order.Stats{}, err
	}

	stats := order.Stats{
		TotalOrders:  row.TotalOrders,
		TotalRevenue: decimal.Zero,
		Pending:      row.Pending,
		Shipped:      row.Shipped,
		Delivered:    row.Delivered,
	}
	if row.TotalRevenue.Valid {
		stats.TotalRevenue = row.TotalRevenue.Decimal
	}
	return stats, nil
}

// Create inserts an order and its items
func (r *GormOrderRepository) Create(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

// Update saves the status and customer details. Items are immutable once placed.
func (r *GormOrderRepository) Update(ctx context.Context, o *order.Order) error {
	result := r.db.WithContext(ctx).Model(&order.Order{}).Where("id = ?", o.ID).Updates(map[string]any{
		"status":               o.Status,
		"shipped_at":           o.ShippedAt,
		"delivered_at":         o.DeliveredAt,
		"customer_name":        o.Customer.Name,
		"customer_email":       o.Customer.Email,
		"customer_phone":       o.Customer.Phone,
		"customer_address":     o.Customer.Address,
		"customer_city":        o.Customer.City,
		"customer_postal_code": o.Customer.PostalCode,
		"version":              o.Version,
		"updated_at":           o.UpdatedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes an order and its items
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&order.Item{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&order.Order{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

var _ order.Repository = (*GormOrderRepository)(nil)
