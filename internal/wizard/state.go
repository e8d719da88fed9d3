package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"framex/pkg/redis"
)

// Wizard steps, in storefront order.
const (
	StepServiceSelection = "service_selection"
	StepSizeSelection    = "size_selection"
	StepQuantity         = "quantity"
	StepPhotoSelection   = "photo_selection"
	StepCrop             = "crop"
	StepFrameSelection   = "frame_selection"
	StepPreview          = "preview"
	StepCheckout         = "checkout"
)

// State is one shopper's in-progress wizard session: the current step,
// the configuration built so far and the photo references chosen for
// upload.
type State struct {
	Step      string    `json:"step"`
	Selection Selection `json:"selection"`
	Photos    []string  `json:"photos,omitempty"`
}

// SessionStore is the byte KV surface the session storage needs.
// *redis.Client satisfies it; tests use an in-memory stand-in.
type SessionStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// StateStorage persists wizard sessions keyed by session id, expiring
// after the configured TTL so abandoned sessions clean themselves up.
type StateStorage struct {
	kv  SessionStore
	ttl time.Duration
}

func NewStateStorage(kv SessionStore, ttl time.Duration) *StateStorage {
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &StateStorage{kv: kv, ttl: ttl}
}

func (s *StateStorage) Save(ctx context.Context, sessionID string, state State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := s.kv.Set(ctx, stateKey(sessionID), data, s.ttl); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// Get returns the session state; a session that never saved anything
// starts fresh at the first step.
func (s *StateStorage) Get(ctx context.Context, sessionID string) (State, error) {
	data, err := s.kv.Get(ctx, stateKey(sessionID))
	if errors.Is(err, redis.ErrNotFound) {
		return State{Step: StepServiceSelection}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("get state: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, fmt.Errorf("unmarshal state: %w", err)
	}
	return state, nil
}

func (s *StateStorage) Clear(ctx context.Context, sessionID string) error {
	if err := s.kv.Del(ctx, stateKey(sessionID)); err != nil {
		return fmt.Errorf("clear state: %w", err)
	}
	return nil
}

func (s *StateStorage) SetStep(ctx context.Context, sessionID, step string) error {
	return s.update(ctx, sessionID, func(st *State) {
		st.Step = step
	})
}

func (s *StateStorage) SetQuantity(ctx context.Context, sessionID string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	return s.update(ctx, sessionID, func(st *State) {
		st.Selection.Quantity = qty
	})
}

func (s *StateStorage) SetPhotos(ctx context.Context, sessionID string, photos []string) error {
	return s.update(ctx, sessionID, func(st *State) {
		st.Photos = photos
	})
}

// UpdateSelection applies a mutation to the stored selection through the
// Selection methods, so rules like "zero mat clears the color" hold no
// matter which caller mutates the session.
func (s *StateStorage) UpdateSelection(ctx context.Context, sessionID string, fn func(*Selection)) error {
	return s.update(ctx, sessionID, func(st *State) {
		fn(&st.Selection)
	})
}

func (s *StateStorage) update(ctx context.Context, sessionID string, fn func(*State)) error {
	state, err := s.Get(ctx, sessionID)
	if err != nil {
		state = State{Step: StepServiceSelection}
	}
	fn(&state)
	return s.Save(ctx, sessionID, state)
}

func stateKey(sessionID string) string {
	return fmt.Sprintf("wizard:%s", sessionID)
}
