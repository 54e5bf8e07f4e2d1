package cart

import "github.com/shopspring/decimal"

// Default delivery pricing in PKR.
var (
	DefaultDeliveryFee           = decimal.NewFromInt(200)
	DefaultFreeDeliveryThreshold = decimal.NewFromInt(10000)
)

// DeliveryPolicy charges a flat fee unless the subtotal reaches the
// free-delivery threshold.
type DeliveryPolicy struct {
	Fee           decimal.Decimal
	FreeThreshold decimal.Decimal
}

// DefaultDeliveryPolicy returns the storefront's standard policy
func DefaultDeliveryPolicy() DeliveryPolicy {
	return DeliveryPolicy{
		Fee:           DefaultDeliveryFee,
		FreeThreshold: DefaultFreeDeliveryThreshold,
	}
}

// FeeFor returns the delivery fee for a subtotal.
func (p DeliveryPolicy) FeeFor(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(p.FreeThreshold) {
		return decimal.Zero
	}
	return p.Fee
}
