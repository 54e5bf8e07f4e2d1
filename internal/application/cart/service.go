package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/cart"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/shared"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// DefaultSessionCacheSize bounds the number of in-memory session managers
const DefaultSessionCacheSize = 10000

// ErrInvalidSession is returned for an empty session id
var ErrInvalidSession = shared.NewDomainError("INVALID_SESSION", "Cart session id is required")

// Service hands out one Manager per cart session. Active managers are kept
// in a bounded LRU. Every manager operation re-reads the saved record, so an
// evicted manager still held by a request, or a manager in another instance
// sharing the store, never overwrites newer lines with a stale copy.
type Service struct {
	store          cart.Store
	policy         cart.DeliveryPolicy
	persistTimeout time.Duration
	logger         *zap.Logger
	metrics        *telemetry.StoreMetrics

	mu        sync.Mutex
	cacheSize int
	sessions  *lru.Cache // nil when caching is disabled
}

// Option configures a Service
type Option func(*Service)

// WithLogger sets the service logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithMetrics records cart counters
func WithMetrics(m *telemetry.StoreMetrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithSessionCacheSize sets the LRU size. A size <= 0 disables the cache and
// every Session call hydrates a fresh manager.
func WithSessionCacheSize(n int) Option {
	return func(s *Service) { s.cacheSize = n }
}

// WithPersistTimeout bounds each write to the store
func WithPersistTimeout(d time.Duration) Option {
	return func(s *Service) { s.persistTimeout = d }
}

// NewService creates the cart session service.
func NewService(store cart.Store, policy cart.DeliveryPolicy, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart: store is required")
	}

	s := &Service{
		store:          store,
		policy:         policy,
		persistTimeout: 2 * time.Second,
		logger:         zap.NewNop(),
		cacheSize:      DefaultSessionCacheSize,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.cacheSize > 0 {
		cache, err := lru.New(s.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("cart: session cache: %w", err)
		}
		s.sessions = cache
	}
	s.logger = s.logger.Named("cart")
	return s, nil
}

// Policy returns the delivery policy applied to every cart
func (s *Service) Policy() cart.DeliveryPolicy {
	return s.policy
}

// Session returns the manager for sessionID. The saved record is read by
// each operation on the manager, not here.
func (s *Service) Session(_ context.Context, sessionID string) (*Manager, error) {
	if sessionID == "" {
		return nil, ErrInvalidSession
	}
	return s.lookup(sessionID), nil
}

func (s *Service) lookup(sessionID string) *Manager {
	if s.sessions == nil {
		return newManager(sessionID, s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.sessions.Get(sessionID); ok {
		return v.(*Manager)
	}
	m := newManager(sessionID, s)
	s.sessions.Add(sessionID, m)
	return m
}

// Forget drops the in-memory manager for sessionID. The saved record is kept.
func (s *Service) Forget(sessionID string) {
	if s.sessions == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions.Remove(sessionID)
}

// ActiveSessions returns the number of cached managers
func (s *Service) ActiveSessions() int {
	if s.sessions == nil {
		return 0
	}
	return s.sessions.Len()
}
