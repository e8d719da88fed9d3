package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Store persists the full ordered list of cart lines. Implementations:
// RedisStore for the running app, MemoryStore for tests and offline use.
type Store interface {
	Load(ctx context.Context) ([]Item, error)
	Save(ctx context.Context, items []Item) error
}

// Service owns the cart. All mutations are synchronous and atomic from
// the caller's perspective: the new state is persisted before observers
// are notified, and a persistence failure leaves the in-memory cart on
// its previous state.
type Service struct {
	mu     sync.Mutex
	store  Store
	items  []Item
	subs   []func()
	logger *zap.Logger
}

// NewService loads any previously persisted cart. A load failure is
// degraded to an empty cart, matching the tolerant catalog policy.
func NewService(ctx context.Context, store Store, logger *zap.Logger) *Service {
	s := &Service{store: store, logger: logger}

	items, err := store.Load(ctx)
	if err != nil {
		logger.Warn("failed to load persisted cart, starting empty", zap.Error(err))
		items = nil
	}
	s.items = items
	return s
}

// Subscribe registers a callback invoked after every successful cart
// mutation, so observers (header badge, bottom sheet) can resynchronize.
func (s *Service) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Items returns a copy of the cart lines in insertion order.
func (s *Service) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Count returns the total quantity across all lines.
func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, it := range s.items {
		total += it.Quantity
	}
	return total
}

// Total returns the cart subtotal: selling price x quantity per line.
func (s *Service) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, it := range s.items {
		total += it.SellingPrice * float64(it.Quantity)
	}
	return total
}

// Add appends a line to the cart.
func (s *Service) Add(ctx context.Context, item Item) error {
	return s.mutate(ctx, func(items []Item) ([]Item, error) {
		return append(items, item), nil
	})
}

// AddAll appends several lines as one persisted mutation, used by the
// one-line-per-photo add-to-cart path.
func (s *Service) AddAll(ctx context.Context, items []Item) error {
	return s.mutate(ctx, func(cur []Item) ([]Item, error) {
		return append(cur, items...), nil
	})
}

// Remove deletes the line at index.
func (s *Service) Remove(ctx context.Context, index int) error {
	return s.mutate(ctx, func(items []Item) ([]Item, error) {
		if index < 0 || index >= len(items) {
			return nil, fmt.Errorf("cart index %d out of range", index)
		}
		return append(items[:index], items[index+1:]...), nil
	})
}

// UpdateQuantity sets the quantity of the line at index, floored at 1.
func (s *Service) UpdateQuantity(ctx context.Context, index, qty int) error {
	return s.mutate(ctx, func(items []Item) ([]Item, error) {
		if index < 0 || index >= len(items) {
			return nil, fmt.Errorf("cart index %d out of range", index)
		}
		if qty < 1 {
			qty = 1
		}
		items[index].Quantity = qty
		return items, nil
	})
}

// Clear drops every line, used after a placed order or an explicit
// clear action.
func (s *Service) Clear(ctx context.Context) error {
	return s.mutate(ctx, func([]Item) ([]Item, error) {
		return nil, nil
	})
}

func (s *Service) mutate(ctx context.Context, fn func([]Item) ([]Item, error)) error {
	s.mu.Lock()

	next := make([]Item, len(s.items))
	copy(next, s.items)

	next, err := fn(next)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	if err := s.store.Save(ctx, next); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("persist cart: %w", err)
	}

	s.items = next
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
	return nil
}

// MarshalItems is the canonical wire form of a cart snapshot, shared by
// the persistence stores.
func MarshalItems(items []Item) ([]byte, error) {
	if items == nil {
		items = []Item{}
	}
	return json.Marshal(items)
}

// UnmarshalItems reverses MarshalItems.
func UnmarshalItems(data []byte) ([]Item, error) {
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}
