package checkout

import (
	"time"

	appcart "github.com/hmehmood121/ZuhaSurgical/internal/application/cart"
	"github.com/hmehmood121/ZuhaSurgical/internal/application/tracking"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/order"
	"github.com/shopspring/decimal"
)

// CustomerInput is the shipping contact entered at checkout
type CustomerInput struct {
	Name       string `json:"name" binding:"required,max=200"`
	Email      string `json:"email" binding:"required,email,max=320"`
	Phone      string `json:"phone" binding:"required,max=40"`
	Address    string `json:"address" binding:"required,max=500"`
	City       string `json:"city" binding:"required,max=100"`
	PostalCode string `json:"postalCode" binding:"max=20"`
}

func (c CustomerInput) toDomain() order.Customer {
	return order.Customer{
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Address:    c.Address,
		City:       c.City,
		PostalCode: c.PostalCode,
	}
}

// PlaceOrderRequest is the checkout form
type PlaceOrderRequest struct {
	Customer      CustomerInput `json:"customer" binding:"required"`
	PaymentMethod string        `json:"paymentMethod" binding:"required,oneof=cod bankTransfer jazzcash"`
}

// EmailsSent reports which order emails went out
type EmailsSent struct {
	Customer bool `json:"customer"`
	Business bool `json:"business"`
}

// PlaceOrderResponse is returned after a successful checkout
type PlaceOrderResponse struct {
	OrderID    string              `json:"orderId"`
	Total      decimal.Decimal     `json:"total"`
	EmailsSent EmailsSent          `json:"emailsSent"`
	Pixel      tracking.PixelEvent `json:"pixel"`
	Warning    string              `json:"warning,omitempty"`
}

// BeginResponse is the checkout page data
type BeginResponse struct {
	Cart  appcart.View        `json:"cart"`
	Pixel tracking.PixelEvent `json:"pixel"`
}

// SummaryItem is an order line on the success page
type SummaryItem struct {
	Name     string          `json:"name"`
	Image    string          `json:"image,omitempty"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Size     string          `json:"size,omitempty"`
	Color    string          `json:"color,omitempty"`
}

// OrderSummary is the public order-success view. It omits contact details
// other than the first name and city.
type OrderSummary struct {
	OrderID       string          `json:"orderId"`
	CustomerName  string          `json:"customerName"`
	City          string          `json:"city"`
	PaymentMethod string          `json:"paymentMethod"`
	PaymentLabel  string          `json:"paymentLabel"`
	Items         []SummaryItem   `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	DeliveryFee   decimal.Decimal `json:"deliveryFee"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	PlacedAt      time.Time       `json:"placedAt"`
}
