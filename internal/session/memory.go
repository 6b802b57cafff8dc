package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/LiamF-2261667/fruckr-sub001/internal/cart"
)

// MemoryStore is an in-process Store used in tests and local development
// without redis. Values round-trip through JSON so behavior matches the
// redis store.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

var _ Store = (*MemoryStore)(nil)

func memKey(uid, field string) string {
	return uid + ":" + field
}

func (s *MemoryStore) LoadCart(ctx context.Context, uid string) (*cart.Cart, error) {
	var c cart.Cart
	ok, err := s.GetValue(ctx, uid, cartField, &c)
	if err != nil || !ok {
		return nil, err
	}
	return &c, nil
}

func (s *MemoryStore) SaveCart(ctx context.Context, uid string, c *cart.Cart) error {
	return s.SetValue(ctx, uid, cartField, c)
}

func (s *MemoryStore) DeleteCart(ctx context.Context, uid string) error {
	return s.DeleteValue(ctx, uid, cartField)
}

func (s *MemoryStore) SetValue(ctx context.Context, uid, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal session value: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[memKey(uid, key)] = data
	return nil
}

func (s *MemoryStore) GetValue(ctx context.Context, uid, key string, dst any) (bool, error) {
	s.mu.Lock()
	data, ok := s.data[memKey(uid, key)]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("unmarshal session value: %w", err)
	}
	return true, nil
}

func (s *MemoryStore) DeleteValue(ctx context.Context, uid, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, memKey(uid, key))
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, uid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.data {
		if strings.HasPrefix(k, uid+":") {
			delete(s.data, k)
		}
	}
	return nil
}
