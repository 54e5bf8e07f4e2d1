// Package tracking builds ad conversion events and dispatches them to the
// server-side Conversion API while returning the matching browser pixel call.
package tracking

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// Standard and custom event names
const (
	EventPageView         = "PageView"
	EventViewContent      = "ViewContent"
	EventAddToCart        = "AddToCart"
	EventInitiateCheckout = "InitiateCheckout"
	EventPurchase         = "Purchase"
	EventSearch           = "Search"
	EventLead             = "Lead"
	EventBuyNow           = "BuyNow"
)

// ActionSourceWebsite is the only action source the store reports
const ActionSourceWebsite = "website"

// IsCustomEvent reports whether name is sent with fbq("trackCustom")
func IsCustomEvent(name string) bool {
	return name == EventBuyNow
}

// Content is one product line inside custom data.
type Content struct {
	ID        string  `json:"id"`
	Quantity  int     `json:"quantity"`
	ItemPrice float64 `json:"item_price"`
}

// CustomData carries the commercial fields of an event.
type CustomData struct {
	Currency        string    `json:"currency,omitempty"`
	Value           *float64  `json:"value,omitempty"`
	ContentType     string    `json:"content_type,omitempty"`
	ContentIDs      []string  `json:"content_ids,omitempty"`
	ContentName     string    `json:"content_name,omitempty"`
	ContentCategory string    `json:"content_category,omitempty"`
	NumItems        int       `json:"num_items,omitempty"`
	SearchString    string    `json:"search_string,omitempty"`
	Contents        []Content `json:"contents,omitempty"`
}

// UserData carries matching keys. Email and phone are SHA-256 hashed.
type UserData struct {
	Em              []string `json:"em,omitempty"`
	Ph              []string `json:"ph,omitempty"`
	ClientIPAddress string   `json:"client_ip_address,omitempty"`
	ClientUserAgent string   `json:"client_user_agent,omitempty"`
	Fbc             string   `json:"fbc,omitempty"`
	Fbp             string   `json:"fbp,omitempty"`
}

// Event is one Conversion API event.
type Event struct {
	EventName      string     `json:"event_name"`
	EventTime      int64      `json:"event_time"`
	EventID        string     `json:"event_id"`
	UserData       UserData   `json:"user_data"`
	CustomData     CustomData `json:"custom_data"`
	EventSourceURL string     `json:"event_source_url,omitempty"`
	ActionSource   string     `json:"action_source"`
}

// RequestContext is what the HTTP layer knows about the visitor.
type RequestContext struct {
	ClientIP  string
	UserAgent string
	SourceURL string
	Fbclid    string // fbclid query parameter of the landing URL
	FbcCookie string // _fbc cookie
	FbpCookie string // _fbp cookie
}

// Contact holds optional personal identifiers used for matching.
type Contact struct {
	Email string
	Phone string
}

// HashIdentifier returns the hex SHA-256 of the trimmed, lowercased value,
// or "" for an empty value.
func HashIdentifier(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(v))
	return hex.EncodeToString(sum[:])
}

// ClickID resolves the fbc value. A fresh fbclid wins over the cookie.
func ClickID(rc RequestContext, now time.Time) string {
	if rc.Fbclid != "" {
		return "fb.1." + strconv.FormatInt(now.UnixMilli(), 10) + "." + rc.Fbclid
	}
	return rc.FbcCookie
}

func buildUserData(rc RequestContext, contact Contact, now time.Time) UserData {
	ud := UserData{
		ClientIPAddress: rc.ClientIP,
		ClientUserAgent: rc.UserAgent,
		Fbc:             ClickID(rc, now),
		Fbp:             rc.FbpCookie,
	}
	if h := HashIdentifier(contact.Email); h != "" {
		ud.Em = []string{h}
	}
	if h := HashIdentifier(contact.Phone); h != "" {
		ud.Ph = []string{h}
	}
	return ud
}
