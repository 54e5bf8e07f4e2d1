package telemetry

import (
	"context"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
)

// Status label values
const (
	StatusSent    = "sent"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// StoreMetrics records storefront business counters. A nil *StoreMetrics is
// valid and records nothing, so services can hold one unconditionally.
type StoreMetrics struct {
	cartItemsAdded      *Counter
	cartPersistFailures *Counter
	ordersPlaced        *Counter
	orderRevenue        *Counter
	trackingEvents      *Counter
	emails              *Counter
}

// NewStoreMetrics registers the store counters on meter.
func NewStoreMetrics(meter metric.Meter) (*StoreMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	m := &StoreMetrics{}
	counters := []struct {
		dst               **Counter
		name, desc, unit string
	}{
		{&m.cartItemsAdded, "store_cart_items_added_total", "Units added to carts", "{items}"},
		{&m.cartPersistFailures, "store_cart_persist_failures_total", "Cart writes to the KV store that failed", "{writes}"},
		{&m.ordersPlaced, "store_orders_placed_total", "Orders placed at checkout", "{orders}"},
		{&m.orderRevenue, "store_order_revenue_total", "Order totals in paisa", "{paisa}"},
		{&m.trackingEvents, "store_tracking_events_total", "Conversion API events by outcome", "{events}"},
		{&m.emails, "store_emails_total", "Order emails by recipient and outcome", "{emails}"},
	}
	for _, c := range counters {
		counter, err := NewCounter(meter, c.name, c.desc, c.unit)
		if err != nil {
			return nil, err
		}
		*c.dst = counter
	}
	return m, nil
}

// CartItemsAdded counts units added to a cart.
func (m *StoreMetrics) CartItemsAdded(ctx context.Context, quantity int) {
	if m == nil {
		return
	}
	m.cartItemsAdded.Add(ctx, int64(quantity))
}

// CartPersistFailed counts a failed cart write for the given operation.
func (m *StoreMetrics) CartPersistFailed(ctx context.Context, operation string) {
	if m == nil {
		return
	}
	m.cartPersistFailures.Inc(ctx, AttrOperation.String(operation))
}

// OrderPlaced counts an order and adds its total to revenue.
func (m *StoreMetrics) OrderPlaced(ctx context.Context, paymentMethod string, total decimal.Decimal) {
	if m == nil {
		return
	}
	attr := AttrPaymentMethod.String(paymentMethod)
	m.ordersPlaced.Inc(ctx, attr)
	m.orderRevenue.Add(ctx, total.Mul(decimal.NewFromInt(100)).IntPart(), attr)
}

// TrackingEvent counts a conversion event outcome.
func (m *StoreMetrics) TrackingEvent(ctx context.Context, event, status string) {
	if m == nil {
		return
	}
	m.trackingEvents.Inc(ctx, AttrEvent.String(event), AttrStatus.String(status))
}

// Email counts an order email outcome.
func (m *StoreMetrics) Email(ctx context.Context, recipient, status string) {
	if m == nil {
		return
	}
	m.emails.Inc(ctx, AttrRecipient.String(recipient), AttrStatus.String(status))
}
