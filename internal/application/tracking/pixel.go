package tracking

// Pixel methods for the browser fbq call
const (
	PixelTrack       = "track"
	PixelTrackCustom = "trackCustom"
)

// PixelEvent tells the browser which fbq call to make. EventID matches the
// server-side event so the two are deduplicated.
type PixelEvent struct {
	Method  string         `json:"method"`
	Event   string         `json:"event"`
	Params  map[string]any `json:"params,omitempty"`
	EventID string         `json:"eventID"`
}

// pixelFor selects the fields the browser pixel sends for each event.
func pixelFor(e Event) PixelEvent {
	pe := PixelEvent{Method: PixelTrack, Event: e.EventName, EventID: e.EventID}
	if IsCustomEvent(e.EventName) {
		pe.Method = PixelTrackCustom
	}

	cd := e.CustomData
	params := map[string]any{}
	put := func(key string, value any, present bool) {
		if present {
			params[key] = value
		}
	}

	switch e.EventName {
	case EventViewContent:
		put("content_type", cd.ContentType, cd.ContentType != "")
		put("content_ids", cd.ContentIDs, len(cd.ContentIDs) > 0)
		put("content_name", cd.ContentName, cd.ContentName != "")
		put("content_category", cd.ContentCategory, cd.ContentCategory != "")
		put("currency", cd.Currency, cd.Currency != "")
		put("value", derefValue(cd.Value), cd.Value != nil)
	case EventAddToCart, EventBuyNow:
		put("content_type", cd.ContentType, cd.ContentType != "")
		put("content_ids", cd.ContentIDs, len(cd.ContentIDs) > 0)
		put("content_name", cd.ContentName, cd.ContentName != "")
		put("currency", cd.Currency, cd.Currency != "")
		put("value", derefValue(cd.Value), cd.Value != nil)
		put("contents", cd.Contents, len(cd.Contents) > 0)
	case EventInitiateCheckout, EventPurchase:
		put("content_type", cd.ContentType, cd.ContentType != "")
		put("content_ids", cd.ContentIDs, len(cd.ContentIDs) > 0)
		put("currency", cd.Currency, cd.Currency != "")
		put("value", derefValue(cd.Value), cd.Value != nil)
		put("num_items", cd.NumItems, cd.NumItems > 0)
		put("contents", cd.Contents, len(cd.Contents) > 0)
	case EventSearch:
		put("search_string", cd.SearchString, true)
	}

	if len(params) > 0 {
		pe.Params = params
	}
	return pe
}

func derefValue(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
