// Package order serves the admin order console and dashboard.
package order

import (
	"context"
	"strings"
	"time"

	"github.com/hmehmood121/ZuhaSurgical/internal/domain/order"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/shared"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/logger"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/printing"
	"go.uber.org/zap"
)

// RecentOrdersLimit is the number of orders shown on the dashboard
const RecentOrdersLimit = 10

// Counter counts catalog rows for the dashboard
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// SlipRenderer renders the printable slip of an order
type SlipRenderer interface {
	RenderHTML(o *order.Order) ([]byte, error)
}

// Service handles admin order operations
type Service struct {
	orders     order.Repository
	products   Counter
	categories Counter
	publisher  shared.EventPublisher
	slips      SlipRenderer
	pdf        printing.PDFRenderer
	now        func() time.Time
	logger     *zap.Logger
}

// NewService creates the order admin service
func NewService(
	orders order.Repository,
	products, categories Counter,
	publisher shared.EventPublisher,
	slips SlipRenderer,
	pdf printing.PDFRenderer,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if pdf == nil {
		pdf = printing.DisabledRenderer{}
	}
	return &Service{
		orders:     orders,
		products:   products,
		categories: categories,
		publisher:  publisher,
		slips:      slips,
		pdf:        pdf,
		now:        time.Now,
		logger:     log,
	}
}

// List returns one page of orders, newest first
func (s *Service) List(ctx context.Context, filter ListFilter) (shared.Paginated[OrderResponse], error) {
	f := order.Filter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			Search:   strings.TrimSpace(filter.Search),
		}.Normalize(100),
	}
	if filter.Status != "" {
		status, err := order.ParseStatus(filter.Status)
		if err != nil {
			return shared.Paginated[OrderResponse]{}, err
		}
		f.Status = &status
	}

	orders, total, err := s.orders.FindAll(ctx, f)
	if err != nil {
		return shared.Paginated[OrderResponse]{}, err
	}
	return shared.NewPaginated(ToOrderResponses(orders), total, f.Page, f.PageSize), nil
}

// Get returns the order with number
func (s *Service) Get(ctx context.Context, number string) (*OrderResponse, error) {
	o, err := s.orders.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// UpdateStatus moves the order to status and publishes the change
func (s *Service) UpdateStatus(ctx context.Context, number string, status string) (*OrderResponse, error) {
	next, err := order.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	o, err := s.orders.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if err := o.UpdateStatus(next); err != nil {
		return nil, err
	}
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, err
	}

	if events := o.GetDomainEvents(); len(events) > 0 {
		if err := s.publisher.Publish(ctx, events...); err != nil {
			logger.FromContextOr(ctx, s.logger).Warn("Failed to publish order status event",
				zap.String("order_number", o.OrderNumber), zap.Error(err))
		}
		o.ClearDomainEvents()
	}

	resp := ToOrderResponse(o)
	return &resp, nil
}

// UpdateCustomer replaces the order's contact details
func (s *Service) UpdateCustomer(ctx context.Context, number string, req CustomerRequest) (*OrderResponse, error) {
	o, err := s.orders.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	err = o.UpdateCustomer(order.Customer{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		return nil, err
	}
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, err
	}

	resp := ToOrderResponse(o)
	return &resp, nil
}

// Delete removes an order and its items
func (s *Service) Delete(ctx context.Context, number string) error {
	o, err := s.orders.FindByNumber(ctx, number)
	if err != nil {
		return err
	}
	return s.orders.Delete(ctx, o.ID)
}

// Dashboard aggregates orders placed in the calendar window for period, plus
// catalog totals.
func (s *Service) Dashboard(ctx context.Context, period string) (*DashboardResponse, error) {
	p, err := order.ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	since := p.Since(s.now())

	stats, err := s.orders.Stats(ctx, since)
	if err != nil {
		return nil, err
	}
	recent, err := s.orders.Recent(ctx, since, RecentOrdersLimit)
	if err != nil {
		return nil, err
	}
	products, err := s.products.Count(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		Period:          string(p),
		TotalOrders:     stats.TotalOrders,
		TotalRevenue:    stats.TotalRevenue,
		PendingOrders:   stats.Pending,
		ShippedOrders:   stats.Shipped,
		DeliveredOrders: stats.Delivered,
		TotalProducts:   products,
		TotalCategories: categories,
		RecentOrders:    ToOrderResponses(recent),
	}, nil
}

// SlipHTML returns the printable slip document
func (s *Service) SlipHTML(ctx context.Context, number string) ([]byte, error) {
	o, err := s.orders.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	return s.slips.RenderHTML(o)
}

// SlipPDF renders the slip through the PDF renderer
func (s *Service) SlipPDF(ctx context.Context, number string) ([]byte, error) {
	html, err := s.SlipHTML(ctx, number)
	if err != nil {
		return nil, err
	}
	res, err := s.pdf.Render(ctx, string(html))
	if err != nil {
		return nil, err
	}
	return res.PDFData, nil
}
