package cache

import (
	"context"
	"fmt"
	"io"

	"github.com/hmehmood121/ZuhaSurgical/internal/domain/cart"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CartStoreFactory creates the cart store from configuration
type CartStoreFactory struct {
	redisConfig           config.RedisConfig
	cartConfig            config.CartConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// CartStoreFactoryOption is a functional option for configuring the factory
type CartStoreFactoryOption func(*CartStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) CartStoreFactoryOption {
	return func(f *CartStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to
// the in-memory store. Default is true.
func WithInMemoryFallback(allow bool) CartStoreFactoryOption {
	return func(f *CartStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewCartStoreFactory creates a new factory
func NewCartStoreFactory(redisCfg config.RedisConfig, cartCfg config.CartConfig, opts ...CartStoreFactoryOption) *CartStoreFactory {
	f := &CartStoreFactory{
		redisConfig:           redisCfg,
		cartConfig:            cartCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CartStore is a cart.Store that owns resources to release on shutdown
type CartStore interface {
	cart.Store
	io.Closer
}

type redisCartStoreCloser struct {
	*RedisCartStore
	client *redis.Client
}

func (r redisCartStoreCloser) Close() error {
	return r.client.Close()
}

// CreateStore returns a Redis store when Redis is enabled and reachable,
// otherwise the in-memory store
func (f *CartStoreFactory) CreateStore(ctx context.Context) (CartStore, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory cart store")
		return NewMemoryCartStore(f.cartConfig.TTL), nil
	}

	client, err := NewRedisClient(ctx, f.redisConfig)
	if err == nil {
		f.logger.Info("Using Redis cart store", zap.String("addr", f.redisConfig.Addr()))
		return redisCartStoreCloser{
			RedisCartStore: NewRedisCartStore(client, f.cartConfig.KeyPrefix, f.cartConfig.TTL),
			client:         client,
		}, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for carts but unavailable: %w", err)
	}
	f.logger.Warn("Redis unavailable, falling back to in-memory cart store. "+
		"Carts will not survive a restart or be shared between instances.",
		zap.Error(err),
	)
	return NewMemoryCartStore(f.cartConfig.TTL), nil
}

// RedisClient returns the Redis client behind store, or nil for the
// in-memory store
func RedisClient(store CartStore) *redis.Client {
	if r, ok := store.(redisCartStoreCloser); ok {
		return r.client
	}
	return nil
}
