package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/hmehmood121/ZuhaSurgical/internal/application/tracking"
	"github.com/shopspring/decimal"
)

// EventTracker dispatches conversion events reported by the browser
type EventTracker interface {
	Track(ctx context.Context, rc tracking.RequestContext, contact tracking.Contact, name, eventID string, custom tracking.CustomData) tracking.PixelEvent
}

// TrackingHandler relays browser-side conversions to the Conversion API
type TrackingHandler struct {
	BaseHandler
	tracker EventTracker
}

// NewTrackingHandler creates a new TrackingHandler
func NewTrackingHandler(tracker EventTracker) *TrackingHandler {
	return &TrackingHandler{tracker: tracker}
}

// TrackedProduct is the product an event refers to
type TrackedProduct struct {
	ID       string          `json:"id" binding:"required,max=64"`
	Name     string          `json:"name" binding:"max=200"`
	Category string          `json:"category" binding:"max=100"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity" binding:"omitempty,min=1"`
}

// TrackEventRequest is a conversion reported by the front end. EventID lets
// the browser reuse the id it already fired so both sides deduplicate.
type TrackEventRequest struct {
	Event   string          `json:"event" binding:"required,oneof=PageView ViewContent Search Lead BuyNow"`
	EventID string          `json:"eventId" binding:"max=128"`
	Product *TrackedProduct `json:"product"`
	Query   string          `json:"query" binding:"max=200"`
	Email   string          `json:"email" binding:"omitempty,email,max=320"`
	Phone   string          `json:"phone" binding:"max=40"`
}

// TrackEventResponse is the pixel call the browser should fire
type TrackEventResponse struct {
	Pixel tracking.PixelEvent `json:"pixel"`
}

// Track handles POST /tracking/events
func (h *TrackingHandler) Track(c *gin.Context) {
	var req TrackEventRequest
	if !h.BindJSON(c, &req) {
		return
	}

	custom, ok := h.customData(c, req)
	if !ok {
		return
	}

	contact := tracking.Contact{Email: req.Email, Phone: req.Phone}
	pixel := h.tracker.Track(c.Request.Context(), requestContext(c), contact, req.Event, req.EventID, custom)
	h.Success(c, TrackEventResponse{Pixel: pixel})
}

func (h *TrackingHandler) customData(c *gin.Context, req TrackEventRequest) (tracking.CustomData, bool) {
	switch req.Event {
	case tracking.EventSearch:
		if req.Query == "" {
			h.BadRequest(c, "query is required for Search events")
			return tracking.CustomData{}, false
		}
		return tracking.CustomData{SearchString: req.Query}, true
	case tracking.EventViewContent, tracking.EventBuyNow:
		if req.Product == nil {
			h.BadRequest(c, "product is required for "+req.Event+" events")
			return tracking.CustomData{}, false
		}
		qty := req.Product.Quantity
		if qty < 1 {
			qty = 1
		}
		return tracking.ProductData(tracking.Product{
			ID:       req.Product.ID,
			Name:     req.Product.Name,
			Category: req.Product.Category,
			Price:    req.Product.Price,
			Quantity: qty,
		}), true
	}
	return tracking.CustomData{}, true
}
