package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingSender struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (r *recordingSender) Send(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}

func (r *recordingSender) all() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

var fixedNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newTestService(sender Sender, opts ...Option) *Service {
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewService(sender, "PKR", opts...)
}

func TestHashIdentifier(t *testing.T) {
	// sha256("test@example.com")
	want := "973dfe463ec85785f5f95af5ba3906eedb2d931c24e69824a89ea65dba4e813b"
	assert.Equal(t, want, HashIdentifier("  Test@Example.COM "))
	assert.Empty(t, HashIdentifier("   "))
}

func TestClickID(t *testing.T) {
	assert.Equal(t, "fb.1.1714557600000.abc", ClickID(RequestContext{Fbclid: "abc", FbcCookie: "old"}, fixedNow))
	assert.Equal(t, "old", ClickID(RequestContext{FbcCookie: "old"}, fixedNow))
	assert.Empty(t, ClickID(RequestContext{}, fixedNow))
}

func TestNewEventID(t *testing.T) {
	id := NewEventID("AddToCart", fixedNow)
	assert.Regexp(t, regexp.MustCompile(`^AddToCart_1714557600000_[0-9a-z]{9}$`), id)
	assert.NotEqual(t, id, NewEventID("AddToCart", fixedNow))
}

func TestService_AddToCart(t *testing.T) {
	sender := &recordingSender{}
	svc := newTestService(sender)

	rc := RequestContext{ClientIP: "10.0.0.1", UserAgent: "ua", FbpCookie: "fb.1.1.222", SourceURL: "https://shop/p/x"}
	pixel := svc.AddToCart(context.Background(), rc, Product{ID: "p1", Name: "Stethoscope", Price: decimal.NewFromInt(500), Quantity: 2})
	svc.Close()

	events := sender.all()
	require.Len(t, events, 1)
	e := events[0]
	assert.Equal(t, EventAddToCart, e.EventName)
	assert.Equal(t, fixedNow.Unix(), e.EventTime)
	assert.Equal(t, ActionSourceWebsite, e.ActionSource)
	assert.Equal(t, "https://shop/p/x", e.EventSourceURL)
	assert.Equal(t, "10.0.0.1", e.UserData.ClientIPAddress)
	assert.Equal(t, "fb.1.1.222", e.UserData.Fbp)
	assert.Empty(t, e.UserData.Em)
	assert.Equal(t, "PKR", e.CustomData.Currency)
	require.NotNil(t, e.CustomData.Value)
	assert.Equal(t, 1000.0, *e.CustomData.Value)
	assert.Equal(t, []Content{{ID: "p1", Quantity: 2, ItemPrice: 500}}, e.CustomData.Contents)

	assert.Equal(t, PixelTrack, pixel.Method)
	assert.Equal(t, EventAddToCart, pixel.Event)
	assert.Equal(t, e.EventID, pixel.EventID)
	assert.Equal(t, 1000.0, pixel.Params["value"])
	assert.Equal(t, "Stethoscope", pixel.Params["content_name"])
	assert.NotContains(t, pixel.Params, "num_items")
}

func TestService_BuyNowUsesTrackCustom(t *testing.T) {
	svc := newTestService(nil)
	pixel := svc.BuyNow(context.Background(), RequestContext{}, Product{ID: "p1", Name: "Mask", Price: decimal.NewFromInt(100), Quantity: 1})

	assert.Equal(t, PixelTrackCustom, pixel.Method)
	assert.Equal(t, EventBuyNow, pixel.Event)
}

func TestService_Purchase(t *testing.T) {
	sender := &recordingSender{}
	svc := newTestService(sender)

	items := []Product{
		{ID: "a", Price: decimal.NewFromInt(500), Quantity: 2},
		{ID: "b", Price: decimal.NewFromInt(300), Quantity: 1},
	}
	pixel := svc.Purchase(context.Background(), RequestContext{}, Contact{Email: "Buyer@Example.com", Phone: "03001234567"},
		"ORD-20240501-ABCDEF", items, decimal.NewFromInt(1500))
	svc.Close()

	assert.Equal(t, "purchase_ORD-20240501-ABCDEF", pixel.EventID)
	assert.Equal(t, 3, pixel.Params["num_items"])

	e := sender.all()[0]
	assert.Equal(t, "purchase_ORD-20240501-ABCDEF", e.EventID)
	assert.Equal(t, []string{"a", "b"}, e.CustomData.ContentIDs)
	assert.Equal(t, 3, e.CustomData.NumItems)
	assert.Equal(t, []string{HashIdentifier("buyer@example.com")}, e.UserData.Em)
	assert.Equal(t, []string{HashIdentifier("03001234567")}, e.UserData.Ph)
}

func TestService_PixelParamsPerEvent(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	pv := svc.PageView(ctx, RequestContext{})
	assert.Nil(t, pv.Params)

	lead := svc.Lead(ctx, RequestContext{}, Contact{Email: "a@b.c"})
	assert.Nil(t, lead.Params)

	search := svc.Search(ctx, RequestContext{}, "gloves")
	assert.Equal(t, map[string]any{"search_string": "gloves"}, search.Params)

	view := svc.ViewContent(ctx, RequestContext{}, Product{ID: "p", Name: "BP Monitor", Category: "Diagnostics", Price: decimal.NewFromInt(4500)})
	assert.Equal(t, "Diagnostics", view.Params["content_category"])
	assert.Equal(t, 4500.0, view.Params["value"])
	assert.NotContains(t, view.Params, "contents")
}

func TestService_SendFailureIsLoggedNotReturned(t *testing.T) {
	core, recorded := observer.New(zapcore.WarnLevel)
	sender := &recordingSender{err: errors.New("graph api 500")}
	svc := newTestService(sender, WithLogger(zap.New(core)))

	pixel := svc.Lead(context.Background(), RequestContext{}, Contact{})
	svc.Close()

	assert.Equal(t, EventLead, pixel.Event)
	require.Equal(t, 1, recorded.Len())
	assert.Equal(t, "Conversion API event failed", recorded.All()[0].Message)
}

func TestService_NotConfiguredIsSilent(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	svc := newTestService(&recordingSender{err: ErrNotConfigured}, WithLogger(zap.New(core)))

	svc.PageView(context.Background(), RequestContext{})
	svc.Close()

	assert.Zero(t, recorded.Len())
}

func TestService_CanceledRequestStillSends(t *testing.T) {
	sender := &recordingSender{}
	svc := newTestService(sender)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.PageView(ctx, RequestContext{})
	svc.Close()

	assert.Len(t, sender.all(), 1)
}

func TestEvent_JSONShape(t *testing.T) {
	e := Event{EventName: EventLead, EventTime: 1, EventID: "x", ActionSource: ActionSourceWebsite}
	data, err := json.Marshal(e)
	require.NoError(t, err)

	assert.JSONEq(t, `{"event_name":"Lead","event_time":1,"event_id":"x","user_data":{},"custom_data":{},"action_source":"website"}`, string(data))
}
