// Package order models placed storefront orders and their fulfilment status.
package order

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status is the fulfilment status of an order
type Status string

const (
	StatusPending   Status = "pending"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
)

// ParseStatus accepts a status in any letter case
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusPending, StatusShipped, StatusDelivered:
		return st, nil
	default:
		return "", shared.NewDomainError("INVALID_STATUS", "Status must be pending, shipped or delivered")
	}
}

// PaymentMethod is how the customer pays
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cod"
	PaymentBankTransfer   PaymentMethod = "bankTransfer"
	PaymentJazzCash       PaymentMethod = "jazzcash"
)

// IsValid reports whether the method is supported
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCashOnDelivery, PaymentBankTransfer, PaymentJazzCash:
		return true
	}
	return false
}

// Label is the human readable payment method
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentBankTransfer:
		return "Bank Transfer"
	case PaymentJazzCash:
		return "JazzCash"
	default:
		return "Cash on Delivery"
	}
}

// Customer holds the shipping contact of an order
type Customer struct {
	Name       string `gorm:"type:varchar(200);not null"`
	Email      string `gorm:"type:varchar(320);not null;index"`
	Phone      string `gorm:"type:varchar(40);not null"`
	Address    string `gorm:"type:varchar(500);not null"`
	City       string `gorm:"type:varchar(100);not null"`
	PostalCode string `gorm:"type:varchar(20)"`
}

// Validate checks required fields and the email format
func (c *Customer) Validate() error {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Address = strings.TrimSpace(c.Address)
	c.City = strings.TrimSpace(c.City)
	c.PostalCode = strings.TrimSpace(c.PostalCode)

	switch {
	case c.Name == "":
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer name is required")
	case c.Email == "":
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer email is required")
	case c.Phone == "":
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer phone is required")
	case c.Address == "":
		return shared.NewDomainError("INVALID_CUSTOMER", "Delivery address is required")
	case c.City == "":
		return shared.NewDomainError("INVALID_CUSTOMER", "City is required")
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer email is not valid")
	}
	return nil
}

// Item is a purchased line, copied from the cart at checkout
type Item struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	LineNo      int             `gorm:"not null"`
	ProductID   string          `gorm:"type:varchar(64);not null"`
	ProductSlug string          `gorm:"type:varchar(220)"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Image       string          `gorm:"type:varchar(1000)"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Quantity    int             `gorm:"not null"`
	Size        string          `gorm:"type:varchar(50)"`
	Color       string          `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "order_items"
}

// Amount returns price times quantity
func (i Item) Amount() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is a placed order
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber   string          `gorm:"type:varchar(40);not null;uniqueIndex"`
	Customer      Customer        `gorm:"embedded;embeddedPrefix:customer_"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(20);not null"`
	Items         []Item          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	DeliveryFee   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Total         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Status        Status          `gorm:"type:varchar(20);not null;default:'pending';index"`
	ShippedAt     *time.Time
	DeliveredAt   *time.Time
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a pending order. The subtotal is the sum of the items and
// the total adds the delivery fee.
func NewOrder(number string, customer Customer, method PaymentMethod, items []Item, deliveryFee decimal.Decimal) (*Order, error) {
	if strings.TrimSpace(number) == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method must be cod, bankTransfer or jazzcash")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "An order needs at least one item")
	}
	if deliveryFee.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Delivery fee cannot be negative")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       number,
		Customer:          customer,
		PaymentMethod:     method,
		DeliveryFee:       deliveryFee,
		Status:            StatusPending,
	}

	subtotal := decimal.Zero
	o.Items = make([]Item, len(items))
	for i, item := range items {
		if item.Quantity < 1 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be at least 1")
		}
		if item.Price.IsNegative() {
			return nil, shared.NewDomainError("INVALID_AMOUNT", "Item price cannot be negative")
		}
		item.ID = uuid.New()
		item.OrderID = o.ID
		item.LineNo = i + 1
		o.Items[i] = item
		subtotal = subtotal.Add(item.Amount())
	}
	o.Subtotal = subtotal
	o.Total = subtotal.Add(deliveryFee)

	o.AddDomainEvent(NewOrderPlacedEvent(o))
	return o, nil
}

// ItemCount returns the total quantity over all items
func (o *Order) ItemCount() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}

// UpdateStatus moves the order between pending, shipped and delivered. The
// admin console may move in either direction.
func (o *Order) UpdateStatus(status Status) error {
	if _, err := ParseStatus(string(status)); err != nil {
		return err
	}
	if o.Status == status {
		return nil
	}

	old := o.Status
	now := time.Now()
	switch status {
	case StatusShipped:
		o.ShippedAt = &now
		o.DeliveredAt = nil
	case StatusDelivered:
		if o.ShippedAt == nil {
			o.ShippedAt = &now
		}
		o.DeliveredAt = &now
	case StatusPending:
		o.ShippedAt = nil
		o.DeliveredAt = nil
	}
	o.Status = status
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, old))
	return nil
}

// UpdateCustomer replaces the shipping contact
func (o *Order) UpdateCustomer(c Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	o.Customer = c
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}
