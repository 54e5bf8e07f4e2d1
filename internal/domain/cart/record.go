package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNoRecord is returned by a Store when no cart is saved for a session.
var ErrNoRecord = errors.New("cart: no saved record")

// ErrMalformedRecord marks a persisted record that cannot be restored.
var ErrMalformedRecord = errors.New("cart: malformed record")

// ErrRevisionConflict is returned by a RevisionStore when the saved record
// changed since it was read.
var ErrRevisionConflict = errors.New("cart: record changed since it was read")

// Record is the persisted form of a cart. Revision grows by one with every
// write and lets writers detect a record changed by someone else.
type Record struct {
	Revision      int64           `json:"revision,omitempty"`
	Items         []LineItem      `json:"items"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	TotalQuantity int             `json:"totalQuantity"`
}

// Store persists cart records by session id.
type Store interface {
	// Load returns the raw record, or ErrNoRecord when nothing is saved.
	Load(ctx context.Context, sessionID string) ([]byte, error)
	Save(ctx context.Context, sessionID string, data []byte) error
	Delete(ctx context.Context, sessionID string) error
}

// RevisionStore is a Store that can refuse a write based on a stale read.
type RevisionStore interface {
	Store
	// SaveIfRevision writes data only while the saved record still has the
	// expected revision (0 for no record). Otherwise it returns
	// ErrRevisionConflict.
	SaveIfRevision(ctx context.Context, sessionID string, expected int64, data []byte) error
}

// Snapshot returns the record for the current state.
func (c *Cart) Snapshot() Record {
	return Record{
		Items:         c.Items(),
		TotalPrice:    c.totalPrice,
		TotalQuantity: c.totalQuantity,
	}
}

// Encode serializes the cart as a record with the given revision.
func Encode(c *Cart, revision int64) ([]byte, error) {
	rec := c.Snapshot()
	rec.Revision = revision
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("cart: encode record: %w", err)
	}
	return data, nil
}

// RevisionOf reads the revision of an encoded record. Data that does not
// parse has revision 0.
func RevisionOf(data []byte) int64 {
	var head struct {
		Revision int64 `json:"revision"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return 0
	}
	return head.Revision
}

// Decode parses a persisted record and rebuilds the cart. Any structural
// problem yields an error wrapping ErrMalformedRecord.
func Decode(data []byte, policy DeliveryPolicy) (*Cart, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	return Restore(rec, policy)
}

// Restore rebuilds a cart from a record. Totals are recomputed from the items,
// so a record whose stored totals drifted still restores consistently.
func Restore(rec Record, policy DeliveryPolicy) (*Cart, error) {
	c := New(policy)
	seen := make(map[string]struct{}, len(rec.Items))
	for i, item := range rec.Items {
		switch {
		case item.Key == "":
			return nil, fmt.Errorf("%w: item %d has no key", ErrMalformedRecord, i)
		case item.Quantity < 1 || item.Quantity > MaxLineQuantity:
			return nil, fmt.Errorf("%w: item %q has quantity %d", ErrMalformedRecord, item.Key, item.Quantity)
		case item.Product.validate() != nil:
			return nil, fmt.Errorf("%w: item %q has an invalid product", ErrMalformedRecord, item.Key)
		case item.Key != LineKey(item.Product.ID, item.SelectedSize, item.SelectedColor):
			return nil, fmt.Errorf("%w: item %q does not match its product and variant", ErrMalformedRecord, item.Key)
		}
		if _, dup := seen[item.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrMalformedRecord, item.Key)
		}
		seen[item.Key] = struct{}{}

		item.Product = cloneSnapshot(item.Product)
		c.items = append(c.items, item)
		c.addTotals(item.Product.Price, item.Quantity)
	}
	return c, nil
}
