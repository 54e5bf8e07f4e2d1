package tracking

import (
	"context"
	"crypto/rand"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/logger"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrNotConfigured is returned by a Sender that has no pixel id or token.
// The service treats it as a skip, not a failure.
var ErrNotConfigured = errors.New("tracking: conversion API not configured")

// Sender delivers one event to the Conversion API.
type Sender interface {
	Send(ctx context.Context, event Event) error
}

// Product is a product line as tracking sees it.
type Product struct {
	ID       string
	Name     string
	Category string
	Price    decimal.Decimal
	Quantity int
}

// Service builds events, sends them server-side in the background and
// returns the browser pixel instruction. Send failures never reach callers.
type Service struct {
	sender      Sender
	currency    string
	sendTimeout time.Duration
	now         func() time.Time
	logger      *zap.Logger
	metrics     *telemetry.StoreMetrics
	wg          sync.WaitGroup
}

// Option configures a Service
type Option func(*Service)

// WithLogger sets the fallback logger used when the context carries none
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithMetrics records event outcomes
func WithMetrics(m *telemetry.StoreMetrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithSendTimeout bounds each background send
func WithSendTimeout(d time.Duration) Option {
	return func(s *Service) { s.sendTimeout = d }
}

// NewService creates a tracking service. A nil sender disables server-side
// delivery; pixel instructions are still produced.
func NewService(sender Sender, currency string, opts ...Option) *Service {
	s := &Service{
		sender:      sender,
		currency:    currency,
		sendTimeout: 5 * time.Second,
		now:         time.Now,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close waits for in-flight sends.
func (s *Service) Close() {
	s.wg.Wait()
}

// Track builds and dispatches an arbitrary event. An empty eventID is
// generated as <name>_<unixMillis>_<random>.
func (s *Service) Track(ctx context.Context, rc RequestContext, contact Contact, name, eventID string, custom CustomData) PixelEvent {
	now := s.now()
	if eventID == "" {
		eventID = NewEventID(name, now)
	}
	if custom.Currency == "" {
		custom.Currency = s.currency
	}

	event := Event{
		EventName:      name,
		EventTime:      now.Unix(),
		EventID:        eventID,
		UserData:       buildUserData(rc, contact, now),
		CustomData:     custom,
		EventSourceURL: rc.SourceURL,
		ActionSource:   ActionSourceWebsite,
	}
	s.dispatch(ctx, event)
	return pixelFor(event)
}

// PageView tracks a page view.
func (s *Service) PageView(ctx context.Context, rc RequestContext) PixelEvent {
	return s.Track(ctx, rc, Contact{}, EventPageView, "", CustomData{})
}

// ViewContent tracks a product detail view.
func (s *Service) ViewContent(ctx context.Context, rc RequestContext, p Product) PixelEvent {
	return s.Track(ctx, rc, Contact{}, EventViewContent, "", CustomData{
		ContentType:     "product",
		ContentIDs:      []string{p.ID},
		ContentName:     p.Name,
		ContentCategory: p.Category,
		Value:           money(p.Price),
	})
}

// AddToCart tracks an add to cart of p.Quantity units.
func (s *Service) AddToCart(ctx context.Context, rc RequestContext, p Product) PixelEvent {
	return s.Track(ctx, rc, Contact{}, EventAddToCart, "", ProductData(p))
}

// BuyNow tracks the custom buy-now event.
func (s *Service) BuyNow(ctx context.Context, rc RequestContext, p Product) PixelEvent {
	return s.Track(ctx, rc, Contact{}, EventBuyNow, "", ProductData(p))
}

// InitiateCheckout tracks the start of checkout.
func (s *Service) InitiateCheckout(ctx context.Context, rc RequestContext, items []Product, total decimal.Decimal) PixelEvent {
	return s.Track(ctx, rc, Contact{}, EventInitiateCheckout, "", multiProduct(items, total))
}

// Purchase tracks a placed order. The event id is purchase_<orderID> so the
// browser and server events deduplicate.
func (s *Service) Purchase(ctx context.Context, rc RequestContext, contact Contact, orderID string, items []Product, total decimal.Decimal) PixelEvent {
	return s.Track(ctx, rc, contact, EventPurchase, PurchaseEventID(orderID), multiProduct(items, total))
}

// Search tracks a storefront search.
func (s *Service) Search(ctx context.Context, rc RequestContext, query string) PixelEvent {
	return s.Track(ctx, rc, Contact{}, EventSearch, "", CustomData{SearchString: query})
}

// Lead tracks a contact form submission.
func (s *Service) Lead(ctx context.Context, rc RequestContext, contact Contact) PixelEvent {
	return s.Track(ctx, rc, contact, EventLead, "", CustomData{})
}

func (s *Service) dispatch(ctx context.Context, event Event) {
	if s.sender == nil {
		s.metrics.TrackingEvent(ctx, event.EventName, telemetry.StatusSkipped)
		return
	}

	log := logger.WithTraceContext(ctx, logger.FromContextOr(ctx, s.logger))
	sendCtx := context.WithoutCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(sendCtx, s.sendTimeout)
		defer cancel()

		err := s.sender.Send(ctx, event)
		switch {
		case errors.Is(err, ErrNotConfigured):
			s.metrics.TrackingEvent(ctx, event.EventName, telemetry.StatusSkipped)
		case err != nil:
			s.metrics.TrackingEvent(ctx, event.EventName, telemetry.StatusFailed)
			log.Warn("Conversion API event failed",
				zap.String("event", event.EventName),
				zap.String("event_id", event.EventID),
				zap.Error(err),
			)
		default:
			s.metrics.TrackingEvent(ctx, event.EventName, telemetry.StatusSent)
		}
	}()
}

// PurchaseEventID is the deduplication id for an order's Purchase event
func PurchaseEventID(orderID string) string {
	return "purchase_" + orderID
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewEventID returns <name>_<unixMillis>_<9 random base36 chars>
func NewEventID(name string, now time.Time) string {
	buf := make([]byte, 9)
	_, _ = rand.Read(buf)
	for i, b := range buf {
		buf[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return name + "_" + strconv.FormatInt(now.UnixMilli(), 10) + "_" + string(buf)
}

func money(d decimal.Decimal) *float64 {
	f := d.InexactFloat64()
	return &f
}

// ProductData describes p.Quantity units of a single product
func ProductData(p Product) CustomData {
	return CustomData{
		ContentType:     "product",
		ContentIDs:      []string{p.ID},
		ContentName:     p.Name,
		ContentCategory: p.Category,
		Value:           money(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))),
		Contents:        []Content{{ID: p.ID, Quantity: p.Quantity, ItemPrice: p.Price.InexactFloat64()}},
	}
}

func multiProduct(items []Product, total decimal.Decimal) CustomData {
	cd := CustomData{
		ContentType: "product",
		ContentIDs:  make([]string, 0, len(items)),
		Contents:    make([]Content, 0, len(items)),
		Value:       money(total),
	}
	for _, p := range items {
		cd.ContentIDs = append(cd.ContentIDs, p.ID)
		cd.Contents = append(cd.Contents, Content{ID: p.ID, Quantity: p.Quantity, ItemPrice: p.Price.InexactFloat64()})
		cd.NumItems += p.Quantity
	}
	return cd
}
