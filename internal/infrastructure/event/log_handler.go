package event

import (
	"context"

	"github.com/hmehmood121/ZuhaSurgical/internal/domain/order"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/shared"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// OrderLogHandler writes an info line for every order event
type OrderLogHandler struct {
	logger *zap.Logger
}

// NewOrderLogHandler creates the handler
func NewOrderLogHandler(log *zap.Logger) *OrderLogHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderLogHandler{logger: log}
}

// EventTypes returns the order event types
func (h *OrderLogHandler) EventTypes() []string {
	return []string{order.EventTypeOrderPlaced, order.EventTypeOrderStatusChanged}
}

// Handle logs the event
func (h *OrderLogHandler) Handle(ctx context.Context, ev shared.DomainEvent) error {
	log := logger.FromContextOr(ctx, h.logger)
	switch e := ev.(type) {
	case *order.OrderPlacedEvent:
		log.Info("Order placed",
			zap.String("order_number", e.OrderNumber),
			zap.String("payment_method", string(e.PaymentMethod)),
			zap.String("total", e.Total.StringFixed(2)),
			zap.Int("lines", len(e.Items)))
	case *order.OrderStatusChangedEvent:
		log.Info("Order status changed",
			zap.String("order_number", e.OrderNumber),
			zap.String("from", string(e.From)),
			zap.String("to", string(e.To)))
	default:
		log.Debug("Order event", zap.String("event_type", ev.EventType()))
	}
	return nil
}
