// Package cart holds the shopping cart state: line items keyed by product
// and variant, running totals and the delivery fee rule.
package cart

import (
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Sentinels used in the line key when a variant axis is not selected.
const (
	NoSize  = "no-size"
	NoColor = "no-color"
)

// MaxLineQuantity caps the quantity of a single line item.
const MaxLineQuantity = 9999

// Cart errors
var (
	ErrInvalidQuantity = shared.NewDomainError("INVALID_QUANTITY", "Quantity must be between 1 and 9999")
	ErrInvalidProduct  = shared.NewDomainError("INVALID_PRODUCT", "Product snapshot requires an id, a name and a non-negative price")
)

// ProductSnapshot is the copy of a product's display fields taken when it is
// added. Later catalog changes never touch a snapshot already in a cart.
type ProductSnapshot struct {
	ID       string          `json:"id"`
	Slug     string          `json:"slug,omitempty"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Images   []string        `json:"images,omitempty"`
	Category string          `json:"category,omitempty"`
}

func (p ProductSnapshot) validate() error {
	if p.ID == "" || p.Name == "" || p.Price.IsNegative() {
		return ErrInvalidProduct
	}
	return nil
}

// LineItem is one product plus variant combination and its quantity.
type LineItem struct {
	Key           string          `json:"key"`
	Product       ProductSnapshot `json:"product"`
	Quantity      int             `json:"quantity"`
	SelectedSize  string          `json:"selectedSize,omitempty"`
	SelectedColor string          `json:"selectedColor,omitempty"`
}

// Subtotal returns unit price times quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Product.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// LineKey builds the merge key for a product and its selected variant.
func LineKey(productID, size, color string) string {
	if size == "" {
		size = NoSize
	}
	if color == "" {
		color = NoColor
	}
	return productID + "-" + size + "-" + color
}

// Cart is the in-memory cart state. It is not safe for concurrent use; callers
// serialize access (see the application cart manager).
type Cart struct {
	items         []LineItem
	totalPrice    decimal.Decimal
	totalQuantity int
	policy        DeliveryPolicy
}

// New creates an empty cart priced with the given delivery policy.
func New(policy DeliveryPolicy) *Cart {
	return &Cart{
		items:      make([]LineItem, 0),
		totalPrice: decimal.Zero,
		policy:     policy,
	}
}

// AddItem merges quantity into the line for (product, size, color) or appends a
// new line. Totals grow by price*quantity in both branches. A merge that would
// take the line past MaxLineQuantity is rejected and leaves the cart as it was.
func (c *Cart) AddItem(product ProductSnapshot, quantity int, size, color string) (LineItem, error) {
	if quantity <= 0 || quantity > MaxLineQuantity {
		return LineItem{}, ErrInvalidQuantity
	}
	if err := product.validate(); err != nil {
		return LineItem{}, err
	}

	key := LineKey(product.ID, size, color)
	if i := c.indexOf(key); i >= 0 {
		if c.items[i].Quantity > MaxLineQuantity-quantity {
			return LineItem{}, ErrInvalidQuantity
		}
		c.items[i].Quantity += quantity
		c.addTotals(c.items[i].Product.Price, quantity)
		return c.copyOf(i), nil
	}

	item := LineItem{
		Key:           key,
		Product:       cloneSnapshot(product),
		Quantity:      quantity,
		SelectedSize:  size,
		SelectedColor: color,
	}
	c.items = append(c.items, item)
	c.addTotals(item.Product.Price, quantity)
	return c.copyOf(len(c.items) - 1), nil
}

// RemoveItem drops the line with key. It reports false when no such line exists.
func (c *Cart) RemoveItem(key string) bool {
	i := c.indexOf(key)
	if i < 0 {
		return false
	}
	item := c.items[i]
	c.addTotals(item.Product.Price, -item.Quantity)
	c.items = append(c.items[:i], c.items[i+1:]...)
	return true
}

// UpdateQuantity sets the quantity of an existing line. A quantity <= 0 removes
// the line; one above MaxLineQuantity is rejected. It reports whether the cart
// changed.
func (c *Cart) UpdateQuantity(key string, quantity int) (bool, error) {
	if quantity <= 0 {
		return c.RemoveItem(key), nil
	}
	if quantity > MaxLineQuantity {
		return false, ErrInvalidQuantity
	}
	i := c.indexOf(key)
	if i < 0 {
		return false, nil
	}
	delta := quantity - c.items[i].Quantity
	c.addTotals(c.items[i].Product.Price, delta)
	c.items[i].Quantity = quantity
	return delta != 0, nil
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = make([]LineItem, 0)
	c.totalPrice = decimal.Zero
	c.totalQuantity = 0
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	for i, item := range c.items {
		item.Product = cloneSnapshot(item.Product)
		out[i] = item
	}
	return out
}

// Item looks up a line by key.
func (c *Cart) Item(key string) (LineItem, bool) {
	i := c.indexOf(key)
	if i < 0 {
		return LineItem{}, false
	}
	return c.copyOf(i), true
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.items)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// TotalPrice returns the running sum of line subtotals.
func (c *Cart) TotalPrice() decimal.Decimal {
	return c.totalPrice
}

// TotalQuantity returns the running sum of quantities.
func (c *Cart) TotalQuantity() int {
	return c.totalQuantity
}

// DeliveryFee derives the fee from the current total.
func (c *Cart) DeliveryFee() decimal.Decimal {
	return c.policy.FeeFor(c.totalPrice)
}

// FinalTotal is TotalPrice plus DeliveryFee.
func (c *Cart) FinalTotal() decimal.Decimal {
	return c.totalPrice.Add(c.DeliveryFee())
}

// Clone returns an independent copy of the cart.
func (c *Cart) Clone() *Cart {
	return &Cart{
		items:         c.Items(),
		totalPrice:    c.totalPrice,
		totalQuantity: c.totalQuantity,
		policy:        c.policy,
	}
}

// Policy returns the delivery policy the cart is priced with.
func (c *Cart) Policy() DeliveryPolicy {
	return c.policy
}

func (c *Cart) addTotals(price decimal.Decimal, quantity int) {
	c.totalPrice = c.totalPrice.Add(price.Mul(decimal.NewFromInt(int64(quantity))))
	c.totalQuantity += quantity
}

func (c *Cart) copyOf(i int) LineItem {
	item := c.items[i]
	item.Product = cloneSnapshot(item.Product)
	return item
}

func (c *Cart) indexOf(key string) int {
	for i := range c.items {
		if c.items[i].Key == key {
			return i
		}
	}
	return -1
}

func cloneSnapshot(p ProductSnapshot) ProductSnapshot {
	if p.Images != nil {
		p.Images = append([]string(nil), p.Images...)
	}
	return p
}
