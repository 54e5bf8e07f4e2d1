package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/order"
	"github.com/shopspring/decimal"
)

// ListFilter represents the admin order list query
type ListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=pending shipped delivered"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// StatusRequest changes an order's status
type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CustomerRequest replaces an order's contact details
type CustomerRequest struct {
	Name       string `json:"name" binding:"required,max=200"`
	Email      string `json:"email" binding:"required,email,max=320"`
	Phone      string `json:"phone" binding:"required,max=40"`
	Address    string `json:"address" binding:"required,max=500"`
	City       string `json:"city" binding:"required,max=100"`
	PostalCode string `json:"postalCode" binding:"max=20"`
}

// CustomerResponse is an order's contact block
type CustomerResponse struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

// ItemResponse is an order line
type ItemResponse struct {
	ProductID   string          `json:"productId"`
	ProductSlug string          `json:"productSlug,omitempty"`
	Name        string          `json:"name"`
	Image       string          `json:"image,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Size        string          `json:"size,omitempty"`
	Color       string          `json:"color,omitempty"`
	Total       decimal.Decimal `json:"total"`
}

// OrderResponse represents an order in admin responses
type OrderResponse struct {
	ID            uuid.UUID        `json:"id"`
	OrderID       string           `json:"orderId"`
	Customer      CustomerResponse `json:"customer"`
	PaymentMethod string           `json:"paymentMethod"`
	Items         []ItemResponse   `json:"items"`
	ItemCount     int              `json:"itemCount"`
	Subtotal      decimal.Decimal  `json:"subtotal"`
	DeliveryFee   decimal.Decimal  `json:"deliveryFee"`
	Total         decimal.Decimal  `json:"total"`
	Status        string           `json:"status"`
	ShippedAt     *time.Time       `json:"shippedAt,omitempty"`
	DeliveredAt   *time.Time       `json:"deliveredAt,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// DashboardResponse is the admin dashboard
type DashboardResponse struct {
	Period          string          `json:"period"`
	TotalOrders     int64           `json:"totalOrders"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	PendingOrders   int64           `json:"pendingOrders"`
	ShippedOrders   int64           `json:"shippedOrders"`
	DeliveredOrders int64           `json:"deliveredOrders"`
	TotalProducts   int64           `json:"totalProducts"`
	TotalCategories int64           `json:"totalCategories"`
	RecentOrders    []OrderResponse `json:"recentOrders"`
}

// ToOrderResponse converts a domain order
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]ItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = ItemResponse{
			ProductID:   item.ProductID,
			ProductSlug: item.ProductSlug,
			Name:        item.Name,
			Image:       item.Image,
			Price:       item.Price,
			Quantity:    item.Quantity,
			Size:        item.Size,
			Color:       item.Color,
			Total:       item.Amount(),
		}
	}
	return OrderResponse{
		ID:      o.ID,
		OrderID: o.OrderNumber,
		Customer: CustomerResponse{
			Name:       o.Customer.Name,
			Email:      o.Customer.Email,
			Phone:      o.Customer.Phone,
			Address:    o.Customer.Address,
			City:       o.Customer.City,
			PostalCode: o.Customer.PostalCode,
		},
		PaymentMethod: string(o.PaymentMethod),
		Items:         items,
		ItemCount:     o.ItemCount(),
		Subtotal:      o.Subtotal,
		DeliveryFee:   o.DeliveryFee,
		Total:         o.Total,
		Status:        string(o.Status),
		ShippedAt:     o.ShippedAt,
		DeliveredAt:   o.DeliveredAt,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// ToOrderResponses converts a slice of orders
func ToOrderResponses(orders []order.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = ToOrderResponse(&orders[i])
	}
	return out
}
