package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hmehmood121/ZuhaSurgical/internal/domain/cart"
	"github.com/redis/go-redis/v9"
)

// DefaultCartKeyPrefix namespaces cart records
const DefaultCartKeyPrefix = "cart:"

// RedisCartStore keeps cart records as plain string values, one key per
// session
type RedisCartStore struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

// NewRedisCartStore uses an existing client. A zero ttl keeps records
// forever; otherwise every save refreshes the expiry.
func NewRedisCartStore(client redis.UniversalClient, keyPrefix string, ttl time.Duration) *RedisCartStore {
	if keyPrefix == "" {
		keyPrefix = DefaultCartKeyPrefix
	}
	return &RedisCartStore{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

func (s *RedisCartStore) key(sessionID string) string {
	return s.keyPrefix + sessionID
}

// Load returns the saved record or cart.ErrNoRecord
func (s *RedisCartStore) Load(ctx context.Context, sessionID string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, cart.ErrNoRecord
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return data, nil
}

// Save overwrites the record
func (s *RedisCartStore) Save(ctx context.Context, sessionID string, data []byte) error {
	if err := s.client.Set(ctx, s.key(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// saveIfRevision compares the revision field of the stored JSON record with
// ARGV[1] and writes ARGV[2] only on a match. A missing or unreadable record
// has revision 0. ARGV[3] is the ttl in milliseconds, 0 for none.
var saveIfRevision = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
local revision = 0
if current then
  local ok, rec = pcall(cjson.decode, current)
  if ok and type(rec) == 'table' and type(rec.revision) == 'number' then
    revision = rec.revision
  end
end
if revision ~= tonumber(ARGV[1]) then
  return 0
end
local ttl = tonumber(ARGV[3])
if ttl > 0 then
  redis.call('SET', KEYS[1], ARGV[2], 'PX', ttl)
else
  redis.call('SET', KEYS[1], ARGV[2])
end
return 1
`)

// SaveIfRevision writes the record atomically when the stored revision is
// still expected, or returns cart.ErrRevisionConflict
func (s *RedisCartStore) SaveIfRevision(ctx context.Context, sessionID string, expected int64, data []byte) error {
	written, err := saveIfRevision.Run(ctx, s.client,
		[]string{s.key(sessionID)},
		expected, data, s.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	if written == 0 {
		return cart.ErrRevisionConflict
	}
	return nil
}

// Delete removes the record; deleting a missing one is not an error
func (s *RedisCartStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

var _ cart.RevisionStore = (*RedisCartStore)(nil)
