// Package checkout turns a session cart into a placed order.
package checkout

import (
	"context"
	"strings"

	appcart "github.com/hmehmood121/ZuhaSurgical/internal/application/cart"
	"github.com/hmehmood121/ZuhaSurgical/internal/application/tracking"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/cart"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/order"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/shared"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/logger"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrCartEmpty is returned when checking out an empty cart
var ErrCartEmpty = shared.NewDomainError("CART_EMPTY", "Your cart is empty")

// CartSessions resolves a session's cart handle
type CartSessions interface {
	Session(ctx context.Context, sessionID string) (*appcart.Manager, error)
}

// NumberGenerator issues order numbers
type NumberGenerator interface {
	Next() (string, error)
}

// Notifier sends the order emails
type Notifier interface {
	OrderConfirmation(ctx context.Context, o *order.Order) error
	OrderNotification(ctx context.Context, o *order.Order) error
}

// Tracker emits checkout conversion events
type Tracker interface {
	InitiateCheckout(ctx context.Context, rc tracking.RequestContext, items []tracking.Product, total decimal.Decimal) tracking.PixelEvent
	Purchase(ctx context.Context, rc tracking.RequestContext, contact tracking.Contact, orderID string, items []tracking.Product, total decimal.Decimal) tracking.PixelEvent
}

// Service places orders
type Service struct {
	carts     CartSessions
	orders    order.Repository
	numbers   NumberGenerator
	notifier  Notifier
	publisher shared.EventPublisher
	tracker   Tracker
	logger    *zap.Logger
	metrics   *telemetry.StoreMetrics
}

// Option configures a Service
type Option func(*Service)

// WithLogger sets the fallback logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithMetrics records placed orders
func WithMetrics(m *telemetry.StoreMetrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService creates a checkout Service
func NewService(
	carts CartSessions,
	orders order.Repository,
	numbers NumberGenerator,
	notifier Notifier,
	publisher shared.EventPublisher,
	tracker Tracker,
	opts ...Option,
) *Service {
	s := &Service{
		carts:     carts,
		orders:    orders,
		numbers:   numbers,
		notifier:  notifier,
		publisher: publisher,
		tracker:   tracker,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) log(ctx context.Context) *zap.Logger {
	return logger.WithTraceContext(ctx, logger.FromContextOr(ctx, s.logger))
}

// Begin returns the cart for the checkout page and tracks InitiateCheckout
func (s *Service) Begin(ctx context.Context, sessionID string, rc tracking.RequestContext) (*BeginResponse, error) {
	manager, err := s.carts.Session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	view := manager.View(ctx)
	if len(view.Items) == 0 {
		return nil, ErrCartEmpty
	}
	return &BeginResponse{
		Cart:  view,
		Pixel: s.tracker.InitiateCheckout(ctx, rc, trackingProducts(view.Items), view.FinalTotal),
	}, nil
}

// PlaceOrder converts the session's cart into an order. The cart's lines are
// claimed and the order saved in one step, so a repeated submit finds an
// empty cart and lines added meanwhile are kept for the next order. A save
// failure puts the lines back. Email, event publishing and tracking failures
// are logged and never undo the order.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string, rc tracking.RequestContext, req PlaceOrderRequest) (*PlaceOrderResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "checkout", "place_order")
	var err error
	defer func() { telemetry.EndSpan(span, err) }()

	manager, err := s.carts.Session(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var o *order.Order
	log := s.log(ctx)
	res, err := manager.Checkout(ctx, func(view appcart.View) error {
		if len(view.Items) == 0 {
			return ErrCartEmpty
		}
		number, err := s.numbers.Next()
		if err != nil {
			return err
		}
		method := order.PaymentMethod(strings.TrimSpace(req.PaymentMethod))
		o, err = order.NewOrder(number, req.Customer.toDomain(), method, orderItems(view.Items), view.DeliveryFee)
		if err != nil {
			return err
		}
		log = log.With(zap.String("order_number", o.OrderNumber))
		if err := s.orders.Create(ctx, o); err != nil {
			log.Error("Failed to save order", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.OrderPlaced(ctx, string(o.PaymentMethod), o.Total)

	resp := &PlaceOrderResponse{OrderID: o.OrderNumber, Total: o.Total, Warning: res.Warning}
	resp.EmailsSent = s.sendEmails(ctx, log, o)

	if pubErr := s.publisher.Publish(ctx, o.GetDomainEvents()...); pubErr != nil {
		log.Warn("Failed to publish order events", zap.Error(pubErr))
	}
	o.ClearDomainEvents()

	contact := tracking.Contact{Email: o.Customer.Email, Phone: o.Customer.Phone}
	resp.Pixel = s.tracker.Purchase(ctx, rc, contact, o.OrderNumber, trackingProducts(res.View.Items), o.Total)

	log.Info("Order placed",
		zap.String("payment_method", string(o.PaymentMethod)),
		zap.String("total", o.Total.String()),
		zap.Int("items", o.ItemCount()),
		zap.Bool("customer_email", resp.EmailsSent.Customer),
		zap.Bool("business_email", resp.EmailsSent.Business),
	)
	return resp, nil
}

func (s *Service) sendEmails(ctx context.Context, log *zap.Logger, o *order.Order) EmailsSent {
	var sent EmailsSent
	if err := s.notifier.OrderConfirmation(ctx, o); err != nil {
		log.Warn("Customer confirmation email failed", zap.Error(err))
	} else {
		sent.Customer = true
	}
	if err := s.notifier.OrderNotification(ctx, o); err != nil {
		log.Warn("Business notification email failed", zap.Error(err))
	} else {
		sent.Business = true
	}
	return sent
}

// Summary returns the public view of a placed order
func (s *Service) Summary(ctx context.Context, orderNumber string) (*OrderSummary, error) {
	o, err := s.orders.FindByNumber(ctx, strings.TrimSpace(orderNumber))
	if err != nil {
		return nil, err
	}

	items := make([]SummaryItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = SummaryItem{
			Name:     item.Name,
			Image:    item.Image,
			Price:    item.Price,
			Quantity: item.Quantity,
			Size:     item.Size,
			Color:    item.Color,
		}
	}
	return &OrderSummary{
		OrderID:       o.OrderNumber,
		CustomerName:  firstName(o.Customer.Name),
		City:          o.Customer.City,
		PaymentMethod: string(o.PaymentMethod),
		PaymentLabel:  o.PaymentMethod.Label(),
		Items:         items,
		Subtotal:      o.Subtotal,
		DeliveryFee:   o.DeliveryFee,
		Total:         o.Total,
		Status:        string(o.Status),
		PlacedAt:      o.CreatedAt,
	}, nil
}

func firstName(name string) string {
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

func orderItems(lines []cart.LineItem) []order.Item {
	items := make([]order.Item, len(lines))
	for i, line := range lines {
		image := ""
		if len(line.Product.Images) > 0 {
			image = line.Product.Images[0]
		}
		items[i] = order.Item{
			ProductID:   line.Product.ID,
			ProductSlug: line.Product.Slug,
			Name:        line.Product.Name,
			Image:       image,
			Price:       line.Product.Price,
			Quantity:    line.Quantity,
			Size:        line.SelectedSize,
			Color:       line.SelectedColor,
		}
	}
	return items
}

func trackingProducts(lines []cart.LineItem) []tracking.Product {
	out := make([]tracking.Product, len(lines))
	for i, line := range lines {
		out[i] = tracking.Product{
			ID:       line.Product.ID,
			Name:     line.Product.Name,
			Category: line.Product.Category,
			Price:    line.Product.Price,
			Quantity: line.Quantity,
		}
	}
	return out
}
