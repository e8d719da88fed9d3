package cart

import (
	"context"
	"errors"
	"fmt"

	"framex/pkg/redis"
)

// DefaultStorageKey mirrors the storefront's storage key so a cart
// survives engine restarts on the same device profile.
const DefaultStorageKey = "framex:cart:v1"

// RedisStore persists the cart snapshot as one JSON blob under a fixed
// key with no expiry; the cart lives until cleared.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultStorageKey
	}
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Load(ctx context.Context) ([]Item, error) {
	data, err := s.client.Get(ctx, s.key)
	if errors.Is(err, redis.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	items, err := UnmarshalItems(data)
	if err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return items, nil
}

func (s *RedisStore) Save(ctx context.Context, items []Item) error {
	data, err := MarshalItems(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// MemoryStore keeps the snapshot in memory. Used by tests and by the
// quote tool, which has no persistence requirement.
type MemoryStore struct {
	items []Item
	// FailSave forces Save to error, for exercising rollback behavior.
	FailSave bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(context.Context) ([]Item, error) {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *MemoryStore) Save(_ context.Context, items []Item) error {
	if s.FailSave {
		return errors.New("save disabled")
	}
	s.items = make([]Item, len(items))
	copy(s.items, items)
	return nil
}
