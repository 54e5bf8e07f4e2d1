// Package cart serves per-session cart handles backed by a key-value store.
package cart

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hmehmood121/ZuhaSurgical/internal/domain/cart"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/logger"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PersistWarning is returned to callers when the cart could not be saved.
const PersistWarning = "Your cart could not be saved. Changes are kept for this visit only."

// View is a consistent read of a cart's state and derived values.
type View struct {
	Items                 []cart.LineItem `json:"items"`
	TotalPrice            decimal.Decimal `json:"totalPrice"`
	TotalQuantity         int             `json:"totalQuantity"`
	DeliveryFee           decimal.Decimal `json:"deliveryFee"`
	FinalTotal            decimal.Decimal `json:"finalTotal"`
	FreeDeliveryThreshold decimal.Decimal `json:"freeDeliveryThreshold"`
}

// MutationResult describes the outcome of one cart operation.
type MutationResult struct {
	View    View
	Item    *cart.LineItem // the affected line after AddItem
	Changed bool
	Warning string // non-empty when the write-back failed
}

// maxSaveAttempts bounds how often an operation is replayed after another
// writer changed the saved record underneath it.
const maxSaveAttempts = 3

// Manager is the handle for one session's cart. Operations are serialized
// by a mutex. Each operation starts from the latest saved record, so several
// handles for one session, in this process or another, see each other's
// writes. With a cart.RevisionStore a write based on a stale read is
// replayed against the newer record.
type Manager struct {
	mu             sync.Mutex
	sessionID      string
	state          *cart.Cart
	raw            []byte // record state was decoded from
	revision       int64  // revision of the record state is based on
	dirty          bool   // state holds changes the store has not accepted
	store          cart.Store
	policy         cart.DeliveryPolicy
	persistTimeout time.Duration
	logger         *zap.Logger
	metrics        *telemetry.StoreMetrics
}

func newManager(sessionID string, s *Service) *Manager {
	return &Manager{
		sessionID:      sessionID,
		state:          cart.New(s.policy),
		store:          s.store,
		policy:         s.policy,
		persistTimeout: s.persistTimeout,
		logger:         s.logger.With(zap.String("cart_session", sessionID)),
		metrics:        s.metrics,
	}
}

// SessionID returns the session this manager belongs to
func (m *Manager) SessionID() string {
	return m.sessionID
}

// AddItem adds quantity units of product in the given variant.
func (m *Manager) AddItem(ctx context.Context, product cart.ProductSnapshot, quantity int, size, color string) (MutationResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var item cart.LineItem
	warning, err := m.mutate(ctx, "add_item", func(c *cart.Cart) error {
		var err error
		item, err = c.AddItem(product, quantity, size, color)
		return err
	})
	if err != nil {
		return MutationResult{}, err
	}
	m.metrics.CartItemsAdded(ctx, quantity)

	return MutationResult{
		View:    m.view(),
		Item:    &item,
		Changed: true,
		Warning: warning,
	}, nil
}

// RemoveItem removes the line with key. An unknown key reports Changed=false.
func (m *Manager) RemoveItem(ctx context.Context, key string) MutationResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed bool
	warning, _ := m.mutate(ctx, "remove_item", func(c *cart.Cart) error {
		removed = c.RemoveItem(key)
		return nil
	})
	return MutationResult{
		View:    m.view(),
		Changed: removed,
		Warning: warning,
	}
}

// UpdateQuantity sets the quantity of key; quantity <= 0 removes the line.
// A quantity above cart.MaxLineQuantity fails with cart.ErrInvalidQuantity.
func (m *Manager) UpdateQuantity(ctx context.Context, key string, quantity int) (MutationResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var changed bool
	warning, err := m.mutate(ctx, "update_quantity", func(c *cart.Cart) error {
		var err error
		changed, err = c.UpdateQuantity(key, quantity)
		return err
	})
	if err != nil {
		return MutationResult{}, err
	}
	return MutationResult{
		View:    m.view(),
		Changed: changed,
		Warning: warning,
	}, nil
}

// Clear empties the cart.
func (m *Manager) Clear(ctx context.Context) MutationResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	var changed bool
	warning, _ := m.mutate(ctx, "clear", func(c *cart.Cart) error {
		changed = !c.IsEmpty()
		c.Clear()
		return nil
	})
	return MutationResult{
		View:    m.view(),
		Changed: changed,
		Warning: warning,
	}
}

// Checkout hands the cart's lines to place and removes them from the cart in
// one step. The lines are claimed (cleared and saved) before place runs, so a
// second checkout of the same session sees an empty cart. Items added while
// place runs stay in the cart. When place fails the claimed lines are put
// back and its error is returned.
func (m *Manager) Checkout(ctx context.Context, place func(View) error) (MutationResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var claimed View
	warning, _ := m.mutate(ctx, "checkout", func(c *cart.Cart) error {
		claimed = viewOf(c, m.policy)
		c.Clear()
		return nil
	})

	if err := place(claimed); err != nil {
		if len(claimed.Items) > 0 {
			m.giveBack(ctx, claimed.Items)
		}
		return MutationResult{View: m.view()}, err
	}
	return MutationResult{
		View:    claimed,
		Changed: len(claimed.Items) > 0,
		Warning: warning,
	}, nil
}

// giveBack returns claimed lines to the cart after a failed checkout.
func (m *Manager) giveBack(ctx context.Context, items []cart.LineItem) {
	_, err := m.mutate(ctx, "checkout_restore", func(c *cart.Cart) error {
		for _, item := range items {
			if _, err := c.AddItem(item.Product, item.Quantity, item.SelectedSize, item.SelectedColor); err != nil {
				m.log(ctx).Warn("Could not return line to cart", zap.String("key", item.Key), zap.Error(err))
			}
		}
		return nil
	})
	if err != nil {
		m.log(ctx).Warn("Could not return lines to cart", zap.Error(err))
	}
}

// View returns the current state.
func (m *Manager) View(ctx context.Context) View {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refresh(ctx)
	return m.view()
}

func (m *Manager) view() View {
	return viewOf(m.state, m.policy)
}

func viewOf(c *cart.Cart, policy cart.DeliveryPolicy) View {
	return View{
		Items:                 c.Items(),
		TotalPrice:            c.TotalPrice(),
		TotalQuantity:         c.TotalQuantity(),
		DeliveryFee:           c.DeliveryFee(),
		FinalTotal:            c.FinalTotal(),
		FreeDeliveryThreshold: policy.FreeThreshold,
	}
}

func (m *Manager) log(ctx context.Context) *zap.Logger {
	return logger.WithTraceContext(ctx, m.logger)
}

// refresh brings state up to date with the saved record. A missing or
// malformed record means an empty cart. While local changes are unsaved, or
// when the store cannot be read, the in-memory state is kept.
func (m *Manager) refresh(ctx context.Context) {
	if m.dirty {
		return
	}

	data, err := m.store.Load(ctx, m.sessionID)
	switch {
	case errors.Is(err, cart.ErrNoRecord):
		if m.raw != nil || m.revision != 0 {
			m.state, m.raw, m.revision = cart.New(m.policy), nil, 0
		}
		return
	case err != nil:
		m.log(ctx).Warn("Cart load failed, using in-memory state", zap.Error(err))
		return
	}
	if bytes.Equal(data, m.raw) {
		return
	}

	m.raw = data
	m.revision = cart.RevisionOf(data)
	restored, err := cart.Decode(data, m.policy)
	if err != nil {
		m.log(ctx).Warn("Saved cart is malformed, starting empty", zap.Error(err))
		m.state = cart.New(m.policy)
		return
	}
	m.state = restored
}

// mutate applies fn to a copy of the latest state and writes the result
// back. A write refused because the record moved on is replayed on the newer
// record. Any other write failure keeps the change in memory and returns
// PersistWarning. An error from fn leaves state and store untouched.
func (m *Manager) mutate(ctx context.Context, operation string, fn func(c *cart.Cart) error) (string, error) {
	m.refresh(ctx)

	for attempt := 1; ; attempt++ {
		work := m.state.Clone()
		if err := fn(work); err != nil {
			return "", err
		}

		data, err := m.save(ctx, work)
		if errors.Is(err, cart.ErrRevisionConflict) && attempt < maxSaveAttempts {
			m.log(ctx).Debug("Cart changed by another writer, replaying",
				zap.String("operation", operation),
				zap.Int("attempt", attempt),
			)
			m.refresh(ctx)
			continue
		}

		m.state = work
		if err != nil {
			m.dirty = true
			m.metrics.CartPersistFailed(ctx, operation)
			m.log(ctx).Warn("Cart persist failed",
				zap.String("operation", operation),
				zap.Error(err),
			)
			return PersistWarning, nil
		}
		m.raw = data
		m.revision = cart.RevisionOf(data)
		m.dirty = false
		return "", nil
	}
}

// save writes c as the next revision. Unsaved local changes are written over
// whatever the store holds now. The write outlives a canceled request so a
// client disconnect does not lose it.
func (m *Manager) save(ctx context.Context, c *cart.Cart) ([]byte, error) {
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.persistTimeout)
	defer cancel()

	if m.dirty {
		if current, err := m.store.Load(writeCtx, m.sessionID); err == nil {
			m.revision = cart.RevisionOf(current)
		} else if errors.Is(err, cart.ErrNoRecord) {
			m.revision = 0
		}
	}

	data, err := cart.Encode(c, m.revision+1)
	if err != nil {
		return nil, err
	}
	if rs, ok := m.store.(cart.RevisionStore); ok {
		err = rs.SaveIfRevision(writeCtx, m.sessionID, m.revision, data)
	} else {
		err = m.store.Save(writeCtx, m.sessionID, data)
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}
